//go:build !windows && !(linux && cgo) && !(darwin && cgo)

package nativedialog

import (
	pawdialog "github.com/phroun/pawdialog/src"
)

// Without a native adapter for this build, fall back to zenity
func newPlatform(loop pawdialog.Scheduler, config *pawdialog.Config, logger *pawdialog.Logger) pawdialog.DialogAdapter {
	return NewZenity(config, logger)
}
