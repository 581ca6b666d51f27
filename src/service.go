package pawdialog

import (
	"runtime"
	"weak"
)

// Service answers showFileOpenDialog calls on the file_open_dialog_channel
type Service struct {
	ctx     *Context
	logger  *Logger
	config  *Config
	weakRef weak.Pointer[Service]
	cleanup runtime.Cleanup
	closed  bool
}

// New creates the dialog service and registers its channel handler.
// The registered handler only holds a weak reference to the service; a
// service collected without Close still has its channel unregistered.
func New(ctx *Context) *Service {
	logger := ctx.Logger
	if logger == nil {
		logger = NewLogger(false)
	}
	config := ctx.Config
	if config == nil {
		config = DefaultConfig()
	}

	s := &Service{
		ctx:    ctx,
		logger: logger,
		config: config,
	}
	s.weakRef = weak.Make(s)
	s.initialize()
	s.cleanup = runtime.AddCleanup(s, unregisterChannel, ctx.Registry)
	return s
}

func (s *Service) initialize() {
	weakSelf := s.weakRef
	s.ctx.Registry.RegisterMethodHandler(ChannelName, func(call *MethodCall, reply *Reply) {
		if svc := weakSelf.Value(); svc != nil && !svc.closed {
			svc.onMethodCall(call, reply)
		}
	})
}

func unregisterChannel(registry MessageRegistry) {
	registry.UnregisterMethodHandler(ChannelName)
}

// Close unregisters the channel handler. Requests already past window
// resolution still complete and reply. Calling Close twice is harmless.
func (s *Service) Close() {
	if s.closed {
		return
	}
	s.closed = true
	// A later service may own the channel by the time s is collected
	s.cleanup.Stop()
	s.ctx.Registry.UnregisterMethodHandler(ChannelName)
	s.logger.DebugCat(CatChannel, "Dialog service closed")
}

// Closed reports whether Close has been called
func (s *Service) Closed() bool {
	return s.closed
}

func (s *Service) onMethodCall(call *MethodCall, reply *Reply) {
	s.logger.TraceCat(CatChannel, "Received %s (call %s)", call.Method, call.ID)

	switch call.Method {
	case MethodShowFileOpenDialog:
		request, err := DecodeFileOpenRequest(call.Args)
		if err != nil {
			s.logger.DebugCat(CatDecode, "Rejecting call %s: %v", call.ID, err)
			reply.SendErr(ErrInvalidArgs(err))
			return
		}
		s.openFileDialog(call.ID, request, reply)
	default:
		s.logger.DebugCat(CatChannel, "Unknown method %q (call %s)", call.Method, call.ID)
		reply.SendErr(ErrInvalidMethod())
	}
}

// openFileDialog is phase one: resolve the window, then either schedule the
// blocking dialog for a later turn or hand off to an asynchronous adapter.
func (s *Service) openFileDialog(callID string, request FileOpenRequest, reply *Reply) {
	win, ok := s.ctx.Windows.LookupWindow(request.ParentWindow)
	if !ok {
		s.logger.DebugCat(CatWindow, "Window %d not found (call %s)", request.ParentWindow, callID)
		reply.SendErr(ErrNoWindow())
		return
	}
	s.logger.TraceCat(CatWindow, "Resolved window %d (call %s)", request.ParentWindow, callID)

	adapter := s.ctx.Adapter
	logger := s.logger
	show := func() {
		logger.DebugCat(CatDialog, "Showing open dialog (call %s)", callID)
		adapter.OpenFile(win, func(result DialogResult) {
			logger.DebugCat(CatDialog, "Dialog finished with %s (call %s)", result, callID)
			reply.SendOK(result.Value())
		})
	}

	// Phase two must not start inside the dispatch stack: the native call
	// pumps its own message loop.
	if adapter.Blocking() {
		s.ctx.Loop.Defer(show).Detach()
		return
	}
	show()
}
