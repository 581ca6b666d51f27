package nativedialog

import (
	"fmt"
	"net/url"

	"github.com/rymdport/portal/filechooser"

	pawdialog "github.com/phroun/pawdialog/src"
)

// Portal shows the open dialog through the xdg-desktop-portal FileChooser
// D-Bus interface, so the desktop's own picker is used under Flatpak and Snap.
type Portal struct {
	title    string
	logger   *pawdialog.Logger
	openFile func(parentWindow, title string, options *filechooser.OpenFileOptions) ([]string, error)
}

func newPortal(config *pawdialog.Config, logger *pawdialog.Logger) (pawdialog.DialogAdapter, error) {
	return &Portal{
		title:    config.DialogTitle,
		logger:   logger,
		openFile: filechooser.OpenFile,
	}, nil
}

// Blocking reports true: the portal request waits for the user's response
func (p *Portal) Blocking() bool {
	return true
}

// OpenFile implements pawdialog.DialogAdapter
func (p *Portal) OpenFile(win pawdialog.NativeWindow, done func(pawdialog.DialogResult)) {
	uris, err := p.openFile(portalParent(win), p.title, nil)
	if err != nil {
		p.logger.WarnCat(pawdialog.CatDialog, "portal file chooser failed: %v", err)
		done(pawdialog.Cancelled())
		return
	}
	if len(uris) == 0 {
		done(pawdialog.Cancelled())
		return
	}
	done(pawdialog.ResultFromPath(uriPath(uris[0])))
}

// portalParent formats the parent window identifier the portal expects
func portalParent(win pawdialog.NativeWindow) string {
	switch w := win.(type) {
	case pawdialog.ForeignWindow:
		if w != 0 {
			return fmt.Sprintf("x11:%x", uint64(w))
		}
	case uintptr:
		if w != 0 {
			return fmt.Sprintf("x11:%x", w)
		}
	}
	return ""
}

func uriPath(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil || parsed.Scheme != "file" {
		return ""
	}
	return parsed.Path
}
