// Package gtkhost connects the dialog service to a GTK 3 application: the
// GTK main loop is the run loop, and GTK windows are the native windows.
package gtkhost

import (
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"

	pawdialog "github.com/phroun/pawdialog/src"
)

// Scheduler defers tasks to the GTK main loop with glib.IdleAdd.
// Defer is safe to call from any goroutine.
type Scheduler struct {
	logger *pawdialog.Logger
}

// NewScheduler creates a scheduler on the default GLib main context
func NewScheduler(logger *pawdialog.Logger) *Scheduler {
	return &Scheduler{logger: logger}
}

type idleTask struct {
	source glib.SourceHandle
	ran    bool
	gone   bool
}

// Cancel removes the idle source if it has not fired yet
func (t *idleTask) Cancel() {
	if t.ran || t.gone {
		return
	}
	t.gone = true
	glib.SourceRemove(t.source)
}

func (t *idleTask) Detach() {}

// Defer implements pawdialog.Scheduler
func (s *Scheduler) Defer(fn func()) pawdialog.TaskHandle {
	task := &idleTask{}
	task.source = glib.IdleAdd(func() bool {
		task.ran = true
		fn()
		return false
	})
	s.logger.TraceCat(pawdialog.CatLoop, "Deferred idle source %d", task.source)
	return task
}

// Windows tracks the host's GTK windows under stable handles
type Windows struct {
	*pawdialog.WindowRegistry
	logger *pawdialog.Logger
}

// NewWindows creates an empty window table
func NewWindows(logger *pawdialog.Logger) *Windows {
	return &Windows{
		WindowRegistry: pawdialog.NewWindowRegistry(),
		logger:         logger,
	}
}

// Track registers win and forgets it once GTK destroys it
func (w *Windows) Track(win *gtk.Window) pawdialog.WindowHandle {
	handle := w.Add(win)
	win.Connect("destroy", func() {
		w.Remove(handle)
		w.logger.DebugCat(pawdialog.CatWindow, "Window %d destroyed", handle)
	})
	return handle
}

// NewWindow creates a top-level window and tracks it
func (w *Windows) NewWindow(title string, width, height int) (*gtk.Window, pawdialog.WindowHandle, error) {
	win, err := gtk.WindowNew(gtk.WINDOW_TOPLEVEL)
	if err != nil {
		return nil, 0, err
	}
	win.SetTitle(title)
	win.SetDefaultSize(width, height)
	return win, w.Track(win), nil
}
