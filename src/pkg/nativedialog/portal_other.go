//go:build !linux

package nativedialog

import (
	"errors"

	pawdialog "github.com/phroun/pawdialog/src"
)

func newPortal(config *pawdialog.Config, logger *pawdialog.Logger) (pawdialog.DialogAdapter, error) {
	return nil, errors.New("portal backend is only available on Linux")
}
