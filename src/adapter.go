package pawdialog

import (
	"unicode/utf16"
)

// DialogAdapter shows the platform's open-file dialog for one window.
// One implementation is selected per target OS at build time.
type DialogAdapter interface {
	// OpenFile presents a modal single-file open dialog owned by win and calls
	// done exactly once with the outcome
	OpenFile(win NativeWindow, done func(DialogResult))
	// Blocking reports whether OpenFile runs a nested platform message loop.
	// Blocking adapters are only ever invoked on a deferred run loop turn.
	Blocking() bool
}

// ResultFromPath maps a picker's returned path to a result; empty means nothing was chosen
func ResultFromPath(path string) DialogResult {
	if path == "" {
		return Cancelled()
	}
	return Selected(path)
}

// DecodeFileBuffer decodes a NUL-terminated UTF-16 path buffer filled by a
// native file picker. Unpaired surrogates become U+FFFD.
func DecodeFileBuffer(ok bool, buf []uint16) DialogResult {
	if !ok {
		return Cancelled()
	}
	n := 0
	for n < len(buf) && buf[n] != 0 {
		n++
	}
	return ResultFromPath(string(utf16.Decode(buf[:n])))
}
