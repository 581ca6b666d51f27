// pawdialog-gtk hosts the dialog service inside a GTK 3 application. The GTK
// main loop is the run loop: calls read from stdin are posted to it with
// glib.IdleAdd and the dialog runs on a later idle turn.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"

	pawdialog "github.com/phroun/pawdialog/src"
	"github.com/phroun/pawdialog/src/pkg/gtkhost"
	"github.com/phroun/pawdialog/src/pkg/nativedialog"
)

const appName = "PawDialog (GTK)"

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

	gtk.Init(nil)

	windows := gtkhost.NewWindows(logger)
	mainWindow, handle, err := windows.NewWindow(appName, 480, 200)
	if err != nil {
		logger.Fatal("Failed to create window: %v", err)
		os.Exit(1)
	}
	mainWindow.Connect("destroy", gtk.MainQuit)

	label, err := gtk.LabelNew(fmt.Sprintf("Window handle: %d", handle))
	if err == nil {
		mainWindow.Add(label)
	}
	mainWindow.ShowAll()

	scheduler := gtkhost.NewScheduler(logger)
	manager := pawdialog.NewMessageManager(logger)

	adapter, err := nativedialog.ByName(config.Backend, scheduler, config, logger)
	if err != nil {
		logger.Fatal("%v", err)
		os.Exit(2)
	}

	service := pawdialog.New(&pawdialog.Context{
		Registry: manager,
		Windows:  windows,
		Loop:     scheduler,
		Adapter:  adapter,
		Logger:   logger,
		Config:   config,
	})
	defer service.Close()

	transport := pawdialog.NewTransport(os.Stdin, os.Stdout, manager, scheduler, logger)
	go func() {
		if err := transport.Serve(context.Background()); err != nil {
			logger.ErrorCat(pawdialog.CatTransport, "%v", err)
		}
		glib.IdleAdd(func() bool {
			gtk.MainQuit()
			return false
		})
	}()

	logger.Notice("Main window handle: %d", handle)
	gtk.Main()
}
