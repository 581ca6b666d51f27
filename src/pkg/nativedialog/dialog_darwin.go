//go:build darwin && cgo

package nativedialog

import (
	"errors"

	"github.com/sqweek/dialog"

	pawdialog "github.com/phroun/pawdialog/src"
)

// Cocoa presents NSOpenPanel through github.com/sqweek/dialog. The panel is
// presented asynchronously and never re-enters the host loop, so OpenFile
// returns at once and the result is handed back on a later loop turn.
type Cocoa struct {
	title  string
	loop   pawdialog.Scheduler
	logger *pawdialog.Logger
	load   func(title string) (string, error)
}

func newPlatform(loop pawdialog.Scheduler, config *pawdialog.Config, logger *pawdialog.Logger) pawdialog.DialogAdapter {
	return NewCocoa(loop, config, logger)
}

// NewCocoa creates the macOS adapter
func NewCocoa(loop pawdialog.Scheduler, config *pawdialog.Config, logger *pawdialog.Logger) *Cocoa {
	return &Cocoa{
		title:  config.DialogTitle,
		loop:   loop,
		logger: logger,
		load: func(title string) (string, error) {
			return dialog.File().Title(title).Load()
		},
	}
}

// Blocking reports false: presentation does not block the loop
func (c *Cocoa) Blocking() bool {
	return false
}

// OpenFile implements pawdialog.DialogAdapter
func (c *Cocoa) OpenFile(win pawdialog.NativeWindow, done func(pawdialog.DialogResult)) {
	if win != nil {
		c.logger.WarnCat(pawdialog.CatDialog, "Open panel is app-modal and not attached to window %T", win)
	}
	go func() {
		path, err := c.load(c.title)
		result := pawdialog.ResultFromPath(path)
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				c.logger.WarnCat(pawdialog.CatDialog, "Open panel failed: %v", err)
			}
			result = pawdialog.Cancelled()
		}
		c.loop.Defer(func() { done(result) }).Detach()
	}()
}
