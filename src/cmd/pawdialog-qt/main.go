// pawdialog-qt hosts the dialog service inside a Qt application built with
// miqt. Calls read from stdin land on a RunLoop that a repeating QTimer
// pumps on the Qt main thread; dialogs are deferred with single-shot timers.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mappu/miqt/qt"

	pawdialog "github.com/phroun/pawdialog/src"
	"github.com/phroun/pawdialog/src/pkg/qthost"
)

const appName = "PawDialog (Qt)"

// pumpInterval is how often, in milliseconds, queued calls are dispatched
const pumpInterval = 20

func main() {
	configPath := flag.String("config", pawdialog.GetConfigPath(), "Path to YAML config file")
	debug := flag.Bool("debug", false, "Enable debug logging in all categories")
	flag.Parse()

	logger := pawdialog.NewLogger(false)
	logger.SetOutput(os.Stderr, os.Stderr)

	config, err := pawdialog.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("%v", err)
		os.Exit(1)
	}
	if *debug {
		config.Debug = true
		config.LogCategories = []string{"all"}
	}
	config.Apply(logger)

	qt.NewQApplication(os.Args)

	mainWindow := qt.NewQMainWindow2()
	mainWindow.Resize(480, 200)

	windows := pawdialog.NewWindowRegistry()
	handle := windows.Add(mainWindow.QWidget)
	mainWindow.SetWindowTitle(fmt.Sprintf("%s - window %d", appName, handle))

	manager := pawdialog.NewMessageManager(logger)
	scheduler := qthost.NewScheduler(mainWindow.QObject, logger)

	service := pawdialog.New(&pawdialog.Context{
		Registry: manager,
		Windows:  windows,
		Loop:     scheduler,
		Adapter:  qthost.NewAdapter(config, logger),
		Logger:   logger,
		Config:   config,
	})
	defer service.Close()

	// Qt timers may only be created on the main thread, so the reader
	// goroutine posts to a RunLoop instead
	intake := pawdialog.NewRunLoop(logger)
	pump := qt.NewQTimer2(mainWindow.QObject)
	pump.OnTimeout(func() {
		intake.Turn()
	})
	pump.Start(pumpInterval)

	transport := pawdialog.NewTransport(os.Stdin, os.Stdout, manager, intake, logger)
	go func() {
		if err := transport.Serve(context.Background()); err != nil {
			logger.ErrorCat(pawdialog.CatTransport, "%v", err)
		}
		intake.Defer(func() {
			mainWindow.Close()
		}).Detach()
	}()

	logger.Notice("Main window handle: %d", handle)
	mainWindow.Show()
	qt.QApplication_Exec()
}
