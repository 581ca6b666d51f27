// Package nativedialog provides the platform open-file dialog adapters.
// Default returns the adapter compiled in for the target OS; the choice is
// made by build constraints, not at run time.
package nativedialog

import (
	"fmt"

	pawdialog "github.com/phroun/pawdialog/src"
)

// Backend names accepted by ByName
const (
	BackendDefault = ""
	BackendZenity  = "zenity"
	BackendPortal  = "portal"
)

// Default returns the platform adapter for this build
func Default(loop pawdialog.Scheduler, config *pawdialog.Config, logger *pawdialog.Logger) pawdialog.DialogAdapter {
	if config == nil {
		config = pawdialog.DefaultConfig()
	}
	return newPlatform(loop, config, logger)
}

// ByName returns the adapter for a configured backend name
func ByName(name string, loop pawdialog.Scheduler, config *pawdialog.Config, logger *pawdialog.Logger) (pawdialog.DialogAdapter, error) {
	if config == nil {
		config = pawdialog.DefaultConfig()
	}
	switch name {
	case BackendDefault, "native":
		return newPlatform(loop, config, logger), nil
	case BackendZenity:
		return NewZenity(config, logger), nil
	case BackendPortal:
		return newPortal(config, logger)
	default:
		return nil, fmt.Errorf("unknown dialog backend %q", name)
	}
}

// responseResult maps a dialog response to a result: only an accepted
// response with a filename counts as a selection
func responseResult(accepted bool, filename string) pawdialog.DialogResult {
	if !accepted {
		return pawdialog.Cancelled()
	}
	return pawdialog.ResultFromPath(filename)
}
