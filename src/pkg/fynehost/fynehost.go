// Package fynehost connects the dialog service to a Fyne application.
// Fyne's file dialog is drawn inside the parent window and answers through a
// callback, so the adapter here is non-blocking.
package fynehost

import (
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	pawdialog "github.com/phroun/pawdialog/src"
)

// Scheduler queues tasks on the Fyne main goroutine with fyne.Do
type Scheduler struct{}

type doTask struct {
	cancelled atomic.Bool
}

func (t *doTask) Cancel() { t.cancelled.Store(true) }
func (t *doTask) Detach() {}

// Defer implements pawdialog.Scheduler
func (Scheduler) Defer(fn func()) pawdialog.TaskHandle {
	task := &doTask{}
	fyne.Do(func() {
		if task.cancelled.Load() {
			return
		}
		fn()
	})
	return task
}

// Adapter shows fyne's file open dialog over a fyne.Window
type Adapter struct {
	logger *pawdialog.Logger
}

// NewAdapter creates the Fyne adapter
func NewAdapter(logger *pawdialog.Logger) *Adapter {
	return &Adapter{logger: logger}
}

// Blocking reports false: the dialog answers through a callback
func (a *Adapter) Blocking() bool {
	return false
}

// OpenFile implements pawdialog.DialogAdapter
func (a *Adapter) OpenFile(win pawdialog.NativeWindow, done func(pawdialog.DialogResult)) {
	parent, ok := win.(fyne.Window)
	if !ok || parent == nil {
		a.logger.WarnCat(pawdialog.CatDialog, "Fyne adapter cannot attach to %T", win)
		done(pawdialog.Cancelled())
		return
	}

	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		done(readerResult(reader, err, a.logger))
	}, parent)
	fd.Show()
}

// readerResult maps fyne's callback arguments to a result
func readerResult(reader fyne.URIReadCloser, err error, logger *pawdialog.Logger) pawdialog.DialogResult {
	if err != nil {
		logger.WarnCat(pawdialog.CatDialog, "File dialog failed: %v", err)
		return pawdialog.Cancelled()
	}
	if reader == nil {
		return pawdialog.Cancelled()
	}
	defer reader.Close()

	uri := reader.URI()
	if uri == nil {
		return pawdialog.Cancelled()
	}
	return pawdialog.ResultFromPath(uri.Path())
}
