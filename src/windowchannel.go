package pawdialog

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Window registry channel, used by out-of-process hosts to announce windows
const (
	WindowChannelName      = "window_registry_channel"
	MethodRegisterWindow   = "registerWindow"
	MethodUnregisterWindow = "unregisterWindow"
)

// ForeignWindow is a native window id owned by another process
// (an X11 window id or a Windows HWND value)
type ForeignWindow uint64

// WindowChannel lets a host map its window handles to foreign native windows
type WindowChannel struct {
	registry MessageRegistry
	windows  *WindowRegistry
	logger   *Logger
	closed   bool
}

type windowArgs struct {
	Handle *WindowHandle  `json:"handle"`
	Native *ForeignWindow `json:"native"`
}

// NewWindowChannel registers the window registry channel
func NewWindowChannel(registry MessageRegistry, windows *WindowRegistry, logger *Logger) *WindowChannel {
	wc := &WindowChannel{
		registry: registry,
		windows:  windows,
		logger:   logger,
	}
	registry.RegisterMethodHandler(WindowChannelName, wc.onMethodCall)
	return wc
}

// Close unregisters the channel
func (wc *WindowChannel) Close() {
	if wc.closed {
		return
	}
	wc.closed = true
	wc.registry.UnregisterMethodHandler(WindowChannelName)
}

func decodeWindowArgs(raw json.RawMessage, needNative bool) (windowArgs, error) {
	var args windowArgs
	if len(raw) == 0 {
		return args, errors.New("missing arguments")
	}
	if err := json.Unmarshal(raw, &args); err != nil {
		return args, fmt.Errorf("invalid arguments: %w", err)
	}
	if args.Handle == nil {
		return args, errors.New("missing handle")
	}
	if needNative && args.Native == nil {
		return args, errors.New("missing native")
	}
	return args, nil
}

func (wc *WindowChannel) onMethodCall(call *MethodCall, reply *Reply) {
	switch call.Method {
	case MethodRegisterWindow:
		args, err := decodeWindowArgs(call.Args, true)
		if err != nil {
			reply.SendErr(ErrInvalidArgs(err))
			return
		}
		wc.windows.Set(*args.Handle, *args.Native)
		wc.logger.DebugCat(CatWindow, "Registered window %d -> %#x", *args.Handle, uint64(*args.Native))
		reply.SendOK(nil)
	case MethodUnregisterWindow:
		args, err := decodeWindowArgs(call.Args, false)
		if err != nil {
			reply.SendErr(ErrInvalidArgs(err))
			return
		}
		if !wc.windows.Remove(*args.Handle) {
			reply.SendErr(ErrNoWindow())
			return
		}
		wc.logger.DebugCat(CatWindow, "Unregistered window %d", *args.Handle)
		reply.SendOK(nil)
	default:
		reply.SendErr(ErrInvalidMethod())
	}
}
