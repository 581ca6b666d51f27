package nativedialog

import (
	"errors"
	"runtime"

	"github.com/ncruces/zenity"

	pawdialog "github.com/phroun/pawdialog/src"
)

// Zenity shows the open dialog through github.com/ncruces/zenity. It works
// without cgo and can attach to windows owned by other processes.
type Zenity struct {
	title      string
	logger     *pawdialog.Logger
	selectFile func(options ...zenity.Option) (string, error)
}

// NewZenity creates a zenity-backed adapter
func NewZenity(config *pawdialog.Config, logger *pawdialog.Logger) *Zenity {
	return &Zenity{
		title:      config.DialogTitle,
		logger:     logger,
		selectFile: zenity.SelectFile,
	}
}

// Blocking reports true: SelectFile waits for the user
func (z *Zenity) Blocking() bool {
	return true
}

// OpenFile implements pawdialog.DialogAdapter
func (z *Zenity) OpenFile(win pawdialog.NativeWindow, done func(pawdialog.DialogResult)) {
	options := []zenity.Option{zenity.Title(z.title), zenity.Modal()}
	if attach, ok := attachOption(win); ok {
		options = append(options, attach)
	}

	path, err := z.selectFile(options...)
	switch {
	case errors.Is(err, zenity.ErrCanceled):
		done(pawdialog.Cancelled())
	case err != nil:
		z.logger.WarnCat(pawdialog.CatDialog, "zenity file selection failed: %v", err)
		done(pawdialog.Cancelled())
	default:
		done(pawdialog.ResultFromPath(path))
	}
}

// attachOption converts a native window into zenity's parent window option:
// an int window id on Unix, a uintptr handle on Windows
func attachOption(win pawdialog.NativeWindow) (zenity.Option, bool) {
	var id uint64
	switch w := win.(type) {
	case pawdialog.ForeignWindow:
		id = uint64(w)
	case uintptr:
		id = uint64(w)
	case int:
		id = uint64(w)
	case uint64:
		id = w
	default:
		return nil, false
	}
	if id == 0 {
		return nil, false
	}
	if runtime.GOOS == "windows" {
		return zenity.Attach(uintptr(id)), true
	}
	return zenity.Attach(int(id)), true
}
