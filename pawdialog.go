// Package pawdialog provides a native "open file" dialog service that answers
// method calls on a named message channel.
//
// This package re-exports the public API from the implementation in src/.
// For full documentation, see the implementation package.
//
// Basic usage:
//
//	manager := pawdialog.NewMessageManager(logger)
//	windows := pawdialog.NewWindowRegistry()
//	handle := windows.Add(mainWindow)
//	service := pawdialog.New(&pawdialog.Context{
//		Registry: manager,
//		Windows:  windows,
//		Loop:     loop,
//		Adapter:  adapter,
//	})
//	defer service.Close()
package pawdialog

import (
	"context"
	"encoding/json"
	"io"

	impl "github.com/phroun/pawdialog/src"
)

// =============================================================================
// CORE TYPES
// =============================================================================

// Service answers showFileOpenDialog calls.
type Service = impl.Service

// Context bundles the collaborators the service works with.
type Context = impl.Context

// Config holds service configuration.
type Config = impl.Config

// Channel and method names.
const (
	ChannelName              = impl.ChannelName
	MethodShowFileOpenDialog = impl.MethodShowFileOpenDialog
	WindowChannelName        = impl.WindowChannelName
	MethodRegisterWindow     = impl.MethodRegisterWindow
	MethodUnregisterWindow   = impl.MethodUnregisterWindow
)

// =============================================================================
// DATA TYPES
// =============================================================================

// WindowHandle is an opaque window identifier.
type WindowHandle = impl.WindowHandle

// NativeWindow is a concrete platform window reference.
type NativeWindow = impl.NativeWindow

// ForeignWindow is a native window id owned by another process.
type ForeignWindow = impl.ForeignWindow

// FileOpenRequest is the decoded argument of showFileOpenDialog.
type FileOpenRequest = impl.FileOpenRequest

// DialogResult is a selected path or nothing.
type DialogResult = impl.DialogResult

// MethodCall is one inbound call.
type MethodCall = impl.MethodCall

// Response is one encoded reply.
type Response = impl.Response

// MethodHandler handles calls on a channel.
type MethodHandler = impl.MethodHandler

// =============================================================================
// ERRORS
// =============================================================================

// MethodError is an error reply.
type MethodError = impl.MethodError

// ErrorKind classifies request failures.
type ErrorKind = impl.ErrorKind

// Error kinds.
const (
	ProtocolError   = impl.ProtocolError
	ArgumentError   = impl.ArgumentError
	ResolutionError = impl.ResolutionError
	PlatformError   = impl.PlatformError
)

// Error codes.
const (
	CodeInvalidMethod   = impl.CodeInvalidMethod
	CodeInvalidArgs     = impl.CodeInvalidArgs
	CodeNoWindow        = impl.CodeNoWindow
	CodeChannelNotFound = impl.CodeChannelNotFound
	CodeParseError      = impl.CodeParseError
)

// ErrChannelNotFound is returned by Dispatch for unknown channels.
var ErrChannelNotFound = impl.ErrChannelNotFound

// =============================================================================
// COLLABORATORS
// =============================================================================

// MessageRegistry maps channel names to handlers.
type MessageRegistry = impl.MessageRegistry

// MessageManager is the in-process MessageRegistry.
type MessageManager = impl.MessageManager

// WindowResolver maps handles to native windows.
type WindowResolver = impl.WindowResolver

// WindowRegistry is a handle table implementing WindowResolver.
type WindowRegistry = impl.WindowRegistry

// WindowChannel serves the window registry channel.
type WindowChannel = impl.WindowChannel

// Scheduler defers work to a later run loop turn.
type Scheduler = impl.Scheduler

// TaskHandle is returned by Scheduler.Defer.
type TaskHandle = impl.TaskHandle

// RunLoop is a portable Scheduler.
type RunLoop = impl.RunLoop

// DialogAdapter presents the platform dialog.
type DialogAdapter = impl.DialogAdapter

// Reply is the single-use reply slot for one call.
type Reply = impl.Reply

// ReplySink receives encoded responses.
type ReplySink = impl.ReplySink

// Transport carries calls as JSON lines.
type Transport = impl.Transport

// Envelope is one inbound line on the wire.
type Envelope = impl.Envelope

// =============================================================================
// LOGGING
// =============================================================================

// Logger is the service logger.
type Logger = impl.Logger

// LogLevel represents log severity.
type LogLevel = impl.LogLevel

// LogCategory identifies the logging subsystem.
type LogCategory = impl.LogCategory

// =============================================================================
// CONSTRUCTORS
// =============================================================================

// New creates the dialog service and registers its channel.
func New(ctx *Context) *Service {
	return impl.New(ctx)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return impl.DefaultConfig()
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (*Config, error) {
	return impl.LoadConfig(path)
}

// WatchConfig reloads path on change until ctx is done.
func WatchConfig(ctx context.Context, path string, logger *Logger, onChange func(*Config)) error {
	return impl.WatchConfig(ctx, path, logger, onChange)
}

// NewLogger creates a logger.
func NewLogger(enabled bool) *Logger {
	return impl.NewLogger(enabled)
}

// NewMessageManager creates an empty channel registry.
func NewMessageManager(logger *Logger) *MessageManager {
	return impl.NewMessageManager(logger)
}

// NewWindowRegistry creates an empty window table.
func NewWindowRegistry() *WindowRegistry {
	return impl.NewWindowRegistry()
}

// NewWindowChannel registers the window registry channel.
func NewWindowChannel(registry MessageRegistry, windows *WindowRegistry, logger *Logger) *WindowChannel {
	return impl.NewWindowChannel(registry, windows, logger)
}

// NewRunLoop creates a portable run loop.
func NewRunLoop(logger *Logger) *RunLoop {
	return impl.NewRunLoop(logger)
}

// NewReply creates a reply slot.
func NewReply(id string, sink ReplySink, logger *Logger) *Reply {
	return impl.NewReply(id, sink, logger)
}

// NewTransport creates a JSON-lines transport.
func NewTransport(in io.Reader, out io.Writer, manager *MessageManager, loop Scheduler, logger *Logger) *Transport {
	return impl.NewTransport(in, out, manager, loop, logger)
}

// =============================================================================
// RESULTS AND CODEC
// =============================================================================

// Selected returns a result carrying path.
func Selected(path string) DialogResult {
	return impl.Selected(path)
}

// Cancelled returns the no-selection result.
func Cancelled() DialogResult {
	return impl.Cancelled()
}

// ResultFromPath maps an empty path to Cancelled.
func ResultFromPath(path string) DialogResult {
	return impl.ResultFromPath(path)
}

// DecodeFileOpenRequest decodes showFileOpenDialog arguments.
func DecodeFileOpenRequest(args json.RawMessage) (FileOpenRequest, error) {
	return impl.DecodeFileOpenRequest(args)
}

// EncodeFileOpenRequest encodes showFileOpenDialog arguments.
func EncodeFileOpenRequest(req FileOpenRequest) json.RawMessage {
	return impl.EncodeFileOpenRequest(req)
}
