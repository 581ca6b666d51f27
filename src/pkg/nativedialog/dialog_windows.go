//go:build windows

package nativedialog

import (
	"unsafe"

	"github.com/TheTitanrain/w32"
	"golang.org/x/sys/windows"

	pawdialog "github.com/phroun/pawdialog/src"
)

// Win32 shows the common open-file dialog with GetOpenFileNameW. The call
// pumps its own message loop, so this adapter is blocking.
type Win32 struct {
	title      string
	bufferSize int
	logger     *pawdialog.Logger
}

func newPlatform(loop pawdialog.Scheduler, config *pawdialog.Config, logger *pawdialog.Logger) pawdialog.DialogAdapter {
	return NewWin32(config, logger)
}

// NewWin32 creates the Windows adapter
func NewWin32(config *pawdialog.Config, logger *pawdialog.Logger) *Win32 {
	size := config.FileBufferSize
	if size <= 0 {
		size = pawdialog.DefaultFileBufferSize
	}
	return &Win32{title: config.DialogTitle, bufferSize: size, logger: logger}
}

// Blocking reports true
func (a *Win32) Blocking() bool {
	return true
}

// OpenFile implements pawdialog.DialogAdapter
func (a *Win32) OpenFile(win pawdialog.NativeWindow, done func(pawdialog.DialogResult)) {
	owner, ok := ownerWindow(win)
	if !ok {
		a.logger.WarnCat(pawdialog.CatDialog, "Win32 adapter cannot attach to %T", win)
		done(pawdialog.Cancelled())
		return
	}
	if !windows.IsWindow(windows.HWND(owner)) {
		a.logger.WarnCat(pawdialog.CatDialog, "Owner window %#x no longer exists", uintptr(owner))
		done(pawdialog.Cancelled())
		return
	}

	buf := make([]uint16, a.bufferSize)
	ofn := w32.OPENFILENAME{
		Owner:   owner,
		File:    &buf[0],
		MaxFile: uint32(len(buf)),
	}
	if title, err := windows.UTF16PtrFromString(a.title); err == nil {
		ofn.Title = title
	}
	ofn.StructSize = uint32(unsafe.Sizeof(ofn))

	selected := w32.GetOpenFileName(&ofn)
	if !selected {
		// Zero means the user cancelled; anything else is a dialog failure
		if code := w32.CommDlgExtendedError(); code != 0 {
			a.logger.WarnCat(pawdialog.CatDialog, "GetOpenFileName failed with %#x", code)
		}
	}
	done(pawdialog.DecodeFileBuffer(selected, buf))
}

func ownerWindow(win pawdialog.NativeWindow) (w32.HWND, bool) {
	switch w := win.(type) {
	case w32.HWND:
		return w, true
	case windows.HWND:
		return w32.HWND(w), true
	case uintptr:
		return w32.HWND(w), true
	case pawdialog.ForeignWindow:
		return w32.HWND(w), true
	}
	return 0, false
}
