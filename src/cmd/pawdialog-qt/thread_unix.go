//go:build !windows

package main

import (
	"os"
	"os/signal"
	"runtime"
	"syscall"
)

func init() {
	// Qt must stay on the main OS thread
	runtime.LockOSThread()

	// Qt on macOS installs signal handlers without SA_ONSTACK; claim SIGURG
	// before it initializes
	if runtime.GOOS == "darwin" {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGURG)
		go func() {
			for range sigCh {
			}
		}()
	}
}
