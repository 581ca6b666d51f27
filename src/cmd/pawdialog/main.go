// pawdialog is the stdio sidecar: it reads method calls as JSON lines on
// stdin and writes one reply line per call on stdout. Hosts announce their
// native windows on the window registry channel before opening dialogs.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	pawdialog "github.com/phroun/pawdialog/src"
	"github.com/phroun/pawdialog/src/pkg/nativedialog"
)

// drainTurns bounds the loop turns run after input closes, so calls already
// queued still get their replies
const drainTurns = 64

func main() {
	configPath := flag.String("config", pawdialog.GetConfigPath(), "Path to YAML config file")
	debug := flag.Bool("debug", false, "Enable debug logging in all categories")
	backend := flag.String("backend", "", "Dialog backend: native, zenity, or portal")
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
	if *backend != "" {
		config.Backend = *backend
	}
	config.Apply(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := pawdialog.NewRunLoop(logger)
	manager := pawdialog.NewMessageManager(logger)
	windows := pawdialog.NewWindowRegistry()

	adapter, err := nativedialog.ByName(sidecarBackend(config.Backend), loop, config, logger)
	if err != nil {
		logger.Fatal("%v", err)
		os.Exit(2)
	}

	windowChannel := pawdialog.NewWindowChannel(manager, windows, logger)
	defer windowChannel.Close()

	service := pawdialog.New(&pawdialog.Context{
		Registry: manager,
		Windows:  windows,
		Loop:     loop,
		Adapter:  adapter,
		Logger:   logger,
		Config:   config,
	})
	defer service.Close()

	if *configPath != "" {
		go func() {
			err := pawdialog.WatchConfig(ctx, *configPath, logger, func(next *pawdialog.Config) {
				// Apply between loop turns so a request is logged under one set of settings
				loop.Defer(func() {
					if *debug {
						next.Debug = true
						next.LogCategories = []string{"all"}
					}
					next.Apply(logger)
				}).Detach()
			})
			if err != nil {
				logger.WarnCat(pawdialog.CatConfig, "Config watch stopped: %v", err)
			}
		}()
	}

	transport := pawdialog.NewTransport(os.Stdin, os.Stdout, manager, loop, logger)
	go func() {
		if err := transport.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorCat(pawdialog.CatTransport, "%v", err)
		}
		stop()
	}()

	logger.DebugCat(pawdialog.CatTransport, "pawdialog sidecar ready (channels %v)", manager.Channels())

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "pawdialog: %v\n", err)
	}
	loop.Drain(drainTurns)
}

// sidecarBackend picks zenity where the native adapter needs an in-process
// toolkit window; Win32 accepts a foreign HWND directly
func sidecarBackend(configured string) string {
	if configured != "" {
		return configured
	}
	if runtime.GOOS == "windows" {
		return nativedialog.BackendDefault
	}
	return nativedialog.BackendZenity
}
