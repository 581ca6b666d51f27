// pawdialog-fyne hosts the dialog service inside a Fyne application. The
// file dialog is Fyne's own, drawn over the parent window.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/widget"

	pawdialog "github.com/phroun/pawdialog/src"
	"github.com/phroun/pawdialog/src/pkg/fynehost"
)

const appName = "PawDialog (Fyne)"

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

	fyneApp := app.New()
	mainWindow := fyneApp.NewWindow(appName)
	mainWindow.Resize(fyne.NewSize(480, 200))

	windows := pawdialog.NewWindowRegistry()
	handle := windows.Add(mainWindow)
	mainWindow.SetContent(widget.NewLabel(fmt.Sprintf("Window handle: %d", handle)))

	manager := pawdialog.NewMessageManager(logger)
	scheduler := fynehost.Scheduler{}

	service := pawdialog.New(&pawdialog.Context{
		Registry: manager,
		Windows:  windows,
		Loop:     scheduler,
		Adapter:  fynehost.NewAdapter(logger),
		Logger:   logger,
		Config:   config,
	})
	defer service.Close()

	transport := pawdialog.NewTransport(os.Stdin, os.Stdout, manager, scheduler, logger)
	go func() {
		if err := transport.Serve(context.Background()); err != nil {
			logger.ErrorCat(pawdialog.CatTransport, "%v", err)
		}
		fyne.Do(fyneApp.Quit)
	}()

	logger.Notice("Main window handle: %d", handle)
	mainWindow.ShowAndRun()
}
