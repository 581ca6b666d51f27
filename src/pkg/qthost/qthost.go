// Package qthost connects the dialog service to a Qt application built with miqt.
package qthost

import (
	"github.com/mappu/miqt/qt"

	pawdialog "github.com/phroun/pawdialog/src"
)

// Scheduler defers tasks with single-shot zero-interval QTimers. Qt objects
// are not thread-safe: Defer must be called on the Qt main thread.
type Scheduler struct {
	parent *qt.QObject
	logger *pawdialog.Logger
}

// NewScheduler creates a scheduler whose timers are owned by parent
func NewScheduler(parent *qt.QObject, logger *pawdialog.Logger) *Scheduler {
	return &Scheduler{parent: parent, logger: logger}
}

type timerTask struct {
	timer    *qt.QTimer
	finished bool
}

func (t *timerTask) Cancel() {
	if t.finished {
		return
	}
	t.finished = true
	t.timer.Stop()
	t.timer.DeleteLater()
}

func (t *timerTask) Detach() {}

// Defer implements pawdialog.Scheduler
func (s *Scheduler) Defer(fn func()) pawdialog.TaskHandle {
	timer := qt.NewQTimer2(s.parent)
	timer.SetSingleShot(true)
	task := &timerTask{timer: timer}
	timer.OnTimeout(func() {
		if task.finished {
			return
		}
		task.finished = true
		timer.DeleteLater()
		fn()
	})
	timer.Start(0)
	return task
}

// Adapter shows QFileDialog::getOpenFileName, which runs a nested event loop
type Adapter struct {
	title  string
	logger *pawdialog.Logger
}

// NewAdapter creates the Qt adapter
func NewAdapter(config *pawdialog.Config, logger *pawdialog.Logger) *Adapter {
	if config == nil {
		config = pawdialog.DefaultConfig()
	}
	return &Adapter{title: config.DialogTitle, logger: logger}
}

// Blocking reports true
func (a *Adapter) Blocking() bool {
	return true
}

// OpenFile implements pawdialog.DialogAdapter
func (a *Adapter) OpenFile(win pawdialog.NativeWindow, done func(pawdialog.DialogResult)) {
	parent, ok := win.(*qt.QWidget)
	if !ok || parent == nil {
		a.logger.WarnCat(pawdialog.CatDialog, "Qt adapter cannot attach to %T", win)
		done(pawdialog.Cancelled())
		return
	}

	// Empty directory and filter: start in the working directory, show all files
	file := qt.QFileDialog_GetOpenFileName4(parent, a.title, "", "")
	done(pawdialog.ResultFromPath(file))
}
