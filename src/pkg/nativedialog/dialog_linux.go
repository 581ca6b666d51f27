//go:build linux && cgo

package nativedialog

import (
	"github.com/gotk3/gotk3/gtk"

	pawdialog "github.com/phroun/pawdialog/src"
)

// GTK shows a GtkFileChooserDialog transient for the host's GTK window.
// Dialog.Run spins a nested main loop, so this adapter is blocking.
type GTK struct {
	title  string
	logger *pawdialog.Logger
}

func newPlatform(loop pawdialog.Scheduler, config *pawdialog.Config, logger *pawdialog.Logger) pawdialog.DialogAdapter {
	return NewGTK(config, logger)
}

// NewGTK creates the GTK adapter
func NewGTK(config *pawdialog.Config, logger *pawdialog.Logger) *GTK {
	return &GTK{title: config.DialogTitle, logger: logger}
}

// Blocking reports true: Run blocks in a nested main loop
func (g *GTK) Blocking() bool {
	return true
}

// OpenFile implements pawdialog.DialogAdapter
func (g *GTK) OpenFile(win pawdialog.NativeWindow, done func(pawdialog.DialogResult)) {
	parent, ok := win.(*gtk.Window)
	if !ok || parent == nil {
		g.logger.WarnCat(pawdialog.CatDialog, "GTK adapter cannot attach to %T", win)
		done(pawdialog.Cancelled())
		return
	}

	dialog, err := gtk.FileChooserDialogNewWith2Buttons(
		g.title,
		parent,
		gtk.FILE_CHOOSER_ACTION_OPEN,
		"Open", gtk.RESPONSE_OK,
		"Cancel", gtk.RESPONSE_CANCEL,
	)
	if err != nil {
		g.logger.WarnCat(pawdialog.CatDialog, "Failed to create file chooser: %v", err)
		done(pawdialog.Cancelled())
		return
	}
	dialog.SetModal(true)
	dialog.SetTransientFor(parent)

	response := dialog.Run()
	filename := ""
	if response == gtk.RESPONSE_OK {
		filename = dialog.GetFilename()
	}
	dialog.Destroy()

	done(responseResult(response == gtk.RESPONSE_OK, filename))
}
