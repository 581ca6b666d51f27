package pawdialog

import (
	"encoding/json"
)

// Channel and method names understood by the dialog service
const (
	ChannelName              = "file_open_dialog_channel"
	MethodShowFileOpenDialog = "showFileOpenDialog"
)

// Error codes carried in error replies
const (
	CodeInvalidMethod   = "invalid_method"
	CodeInvalidArgs     = "invalid_args"
	CodeNoWindow        = "no_window"
	CodeChannelNotFound = "channel_not_found"
	CodeParseError      = "parse_error"
)

// WindowHandle is an opaque, process-scoped window identifier.
// It only has meaning to a WindowResolver.
type WindowHandle int64

// NativeWindow is a concrete platform window reference (*gtk.Window, w32.HWND,
// fyne.Window, *qt.QWidget, or a foreign window id). Adapters borrow it read-only.
type NativeWindow interface{}

// FileOpenRequest is the decoded argument of showFileOpenDialog
type FileOpenRequest struct {
	ParentWindow WindowHandle `json:"parentWindow"`
}

// DialogResult is the outcome of one dialog: either a selected path or nothing
type DialogResult struct {
	path     string
	selected bool
}

// Selected returns a result carrying the chosen path
func Selected(path string) DialogResult {
	return DialogResult{path: path, selected: true}
}

// Cancelled returns the no-selection result. A native call that failed to
// show the dialog also produces this result.
func Cancelled() DialogResult {
	return DialogResult{}
}

// Path returns the selected path and whether there was a selection
func (r DialogResult) Path() (string, bool) {
	return r.path, r.selected
}

// IsCancelled reports whether nothing was selected
func (r DialogResult) IsCancelled() bool {
	return !r.selected
}

// Value encodes the result for the reply: a string or nil
func (r DialogResult) Value() interface{} {
	if !r.selected {
		return nil
	}
	return r.path
}

func (r DialogResult) String() string {
	if !r.selected {
		return "Cancelled"
	}
	return "Selected(" + r.path + ")"
}

// MethodCall is one inbound call on a channel
type MethodCall struct {
	ID     string          `json:"id"`
	Method string          `json:"method"`
	Args   json.RawMessage `json:"args,omitempty"`
}

// Response is the encoded reply for one call. Result is always present on the
// wire; a nil Result with no Error means "no selection".
type Response struct {
	ID     string       `json:"id"`
	Result interface{}  `json:"result"`
	Error  *MethodError `json:"error,omitempty"`
}

// MethodHandler handles calls delivered on a registered channel
type MethodHandler func(call *MethodCall, reply *Reply)

// Context bundles the collaborators the dialog service works with
type Context struct {
	Registry MessageRegistry
	Windows  WindowResolver
	Loop     Scheduler
	Adapter  DialogAdapter
	Logger   *Logger
	Config   *Config
}
