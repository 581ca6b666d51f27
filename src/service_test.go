package pawdialog

import (
	"encoding/json"
	"errors"
	"io"
	"runtime"
	"testing"
	"time"
)

func quietLogger() *Logger {
	logger := NewLogger(false)
	logger.SetOutput(io.Discard, io.Discard)
	return logger
}

// fakeAdapter records presentations. With hold set, completions are kept
// in pending instead of being called.
type fakeAdapter struct {
	blocking bool
	result   DialogResult
	hold     bool
	twice    bool
	calls    []NativeWindow
	pending  []func(DialogResult)
}

func (a *fakeAdapter) Blocking() bool {
	return a.blocking
}

func (a *fakeAdapter) OpenFile(win NativeWindow, done func(DialogResult)) {
	a.calls = append(a.calls, win)
	if a.hold {
		a.pending = append(a.pending, done)
		return
	}
	done(a.result)
	if a.twice {
		done(Selected("/second/write"))
	}
}

type harness struct {
	manager   *MessageManager
	windows   *WindowRegistry
	loop      *RunLoop
	adapter   *fakeAdapter
	service   *Service
	responses []Response
}

func newHarness(adapter *fakeAdapter) *harness {
	logger := quietLogger()
	h := &harness{
		manager: NewMessageManager(logger),
		windows: NewWindowRegistry(),
		loop:    NewRunLoop(logger),
		adapter: adapter,
	}
	h.service = New(&Context{
		Registry: h.manager,
		Windows:  h.windows,
		Loop:     h.loop,
		Adapter:  adapter,
		Logger:   logger,
	})
	return h
}

func (h *harness) call(id, method string, args json.RawMessage) error {
	reply := NewReply(id, func(resp Response) {
		h.responses = append(h.responses, resp)
	}, nil)
	return h.manager.Dispatch(ChannelName, &MethodCall{ID: id, Method: method, Args: args}, reply)
}

func openArgs(handle WindowHandle) json.RawMessage {
	return EncodeFileOpenRequest(FileOpenRequest{ParentWindow: handle})
}

func TestShowFileOpenDialog(t *testing.T) {
	t.Run("Selection is deferred to a later turn", func(t *testing.T) {
		h := newHarness(&fakeAdapter{blocking: true, result: Selected("/tmp/a.txt")})
		handle := h.windows.Add("main-window")

		if err := h.call("1", MethodShowFileOpenDialog, openArgs(handle)); err != nil {
			t.Fatalf("Expected dispatch to succeed, got %v", err)
		}
		if len(h.adapter.calls) != 0 {
			t.Error("Expected no dialog inside the dispatch stack")
		}
		if len(h.responses) != 0 {
			t.Errorf("Expected no reply before the deferred turn, got %d", len(h.responses))
		}
		if h.loop.Pending() != 1 {
			t.Errorf("Expected 1 deferred task, got %d", h.loop.Pending())
		}

		h.loop.Turn()

		if len(h.adapter.calls) != 1 || h.adapter.calls[0] != "main-window" {
			t.Errorf("Expected dialog owned by main-window, got %v", h.adapter.calls)
		}
		if len(h.responses) != 1 {
			t.Fatalf("Expected 1 reply, got %d", len(h.responses))
		}
		resp := h.responses[0]
		if resp.ID != "1" || resp.Error != nil || resp.Result != "/tmp/a.txt" {
			t.Errorf("Expected /tmp/a.txt for call 1, got %+v", resp)
		}
	})

	t.Run("Cancel replies with no value", func(t *testing.T) {
		h := newHarness(&fakeAdapter{blocking: true, result: Cancelled()})
		handle := h.windows.Add("main-window")

		_ = h.call("2", MethodShowFileOpenDialog, openArgs(handle))
		h.loop.Drain(4)

		if len(h.responses) != 1 {
			t.Fatalf("Expected 1 reply, got %d", len(h.responses))
		}
		if h.responses[0].Error != nil || h.responses[0].Result != nil {
			t.Errorf("Expected nil result, got %+v", h.responses[0])
		}
	})

	t.Run("Reply encodes null result on cancel", func(t *testing.T) {
		h := newHarness(&fakeAdapter{blocking: true, result: Cancelled()})
		handle := h.windows.Add("w")
		_ = h.call("3", MethodShowFileOpenDialog, openArgs(handle))
		h.loop.Drain(4)

		data, err := json.Marshal(h.responses[0])
		if err != nil {
			t.Fatalf("Expected response to marshal, got %v", err)
		}
		if string(data) != `{"id":"3","result":null}` {
			t.Errorf("Expected null result on the wire, got %s", data)
		}
	})

	t.Run("Window lookup happens before deferral", func(t *testing.T) {
		h := newHarness(&fakeAdapter{blocking: true, result: Selected("/x")})
		handle := h.windows.Add("owner")

		_ = h.call("4", MethodShowFileOpenDialog, openArgs(handle))
		h.windows.Remove(handle)
		h.loop.Turn()

		if len(h.adapter.calls) != 1 || h.adapter.calls[0] != "owner" {
			t.Errorf("Expected the window resolved at dispatch, got %v", h.adapter.calls)
		}
		if len(h.responses) != 1 || h.responses[0].Result != "/x" {
			t.Errorf("Expected /x, got %+v", h.responses)
		}
	})

	t.Run("Non-blocking adapter is invoked at once", func(t *testing.T) {
		h := newHarness(&fakeAdapter{hold: true})
		handle := h.windows.Add("w")

		_ = h.call("5", MethodShowFileOpenDialog, openArgs(handle))

		if len(h.adapter.calls) != 1 {
			t.Fatalf("Expected adapter call during dispatch, got %d", len(h.adapter.calls))
		}
		if h.loop.Pending() != 0 {
			t.Errorf("Expected nothing deferred, got %d", h.loop.Pending())
		}
		if len(h.responses) != 0 {
			t.Error("Expected no reply until the dialog completes")
		}

		h.adapter.pending[0](Selected("/later.txt"))
		if len(h.responses) != 1 || h.responses[0].Result != "/later.txt" {
			t.Errorf("Expected /later.txt, got %+v", h.responses)
		}
	})
}

func TestShowFileOpenDialogErrors(t *testing.T) {
	t.Run("Unknown method", func(t *testing.T) {
		h := newHarness(&fakeAdapter{blocking: true})
		handle := h.windows.Add("w")

		_ = h.call("1", "showSaveDialog", openArgs(handle))

		if len(h.responses) != 1 || h.responses[0].Error == nil {
			t.Fatalf("Expected 1 error reply, got %+v", h.responses)
		}
		if h.responses[0].Error.Code != CodeInvalidMethod || h.responses[0].Error.Message != "Invalid method" {
			t.Errorf("Expected invalid_method, got %+v", h.responses[0].Error)
		}
		if h.loop.Pending() != 0 || len(h.adapter.calls) != 0 {
			t.Error("Expected no dialog for an unknown method")
		}
	})

	invalid := []struct {
		name string
		args string
	}{
		{"Missing arguments", ``},
		{"Null arguments", `null`},
		{"Missing parentWindow", `{}`},
		{"String parentWindow", `{"parentWindow":"abc"}`},
		{"Fractional parentWindow", `{"parentWindow":1.5}`},
		{"Array arguments", `[1]`},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(&fakeAdapter{blocking: true})
			h.windows.Add("w")

			_ = h.call("1", MethodShowFileOpenDialog, json.RawMessage(tc.args))

			if len(h.responses) != 1 || h.responses[0].Error == nil {
				t.Fatalf("Expected 1 error reply, got %+v", h.responses)
			}
			if h.responses[0].Error.Code != CodeInvalidArgs {
				t.Errorf("Expected invalid_args, got %s", h.responses[0].Error.Code)
			}
			if h.responses[0].Error.Message == "" {
				t.Error("Expected a decode message")
			}
			if h.loop.Pending() != 0 {
				t.Error("Expected nothing deferred")
			}
		})
	}

	t.Run("Unknown window", func(t *testing.T) {
		h := newHarness(&fakeAdapter{blocking: true})

		_ = h.call("1", MethodShowFileOpenDialog, openArgs(99))

		if len(h.responses) != 1 || h.responses[0].Error == nil {
			t.Fatalf("Expected 1 error reply, got %+v", h.responses)
		}
		if h.responses[0].Error.Code != CodeNoWindow || h.responses[0].Error.Message != "Platform window not found" {
			t.Errorf("Expected no_window, got %+v", h.responses[0].Error)
		}
		if h.loop.Pending() != 0 || len(h.adapter.calls) != 0 {
			t.Error("Expected no dialog for an unknown window")
		}
	})
}

func TestExactlyOneReply(t *testing.T) {
	h := newHarness(&fakeAdapter{blocking: true, result: Selected("/first"), twice: true})
	handle := h.windows.Add("w")

	_ = h.call("1", MethodShowFileOpenDialog, openArgs(handle))
	h.loop.Drain(4)

	if len(h.responses) != 1 {
		t.Fatalf("Expected exactly 1 reply, got %d", len(h.responses))
	}
	if h.responses[0].Result != "/first" {
		t.Errorf("Expected the first write to win, got %v", h.responses[0].Result)
	}
}

func TestConcurrentRequestsAreIndependent(t *testing.T) {
	h := newHarness(&fakeAdapter{hold: true})
	first := h.windows.Add("first")
	second := h.windows.Add("second")

	_ = h.call("a", MethodShowFileOpenDialog, openArgs(first))
	_ = h.call("b", MethodShowFileOpenDialog, openArgs(second))

	if len(h.adapter.pending) != 2 {
		t.Fatalf("Expected 2 open dialogs, got %d", len(h.adapter.pending))
	}

	h.adapter.pending[1](Selected("/b.txt"))
	h.adapter.pending[0](Cancelled())

	if len(h.responses) != 2 {
		t.Fatalf("Expected 2 replies, got %d", len(h.responses))
	}
	if h.responses[0].ID != "b" || h.responses[0].Result != "/b.txt" {
		t.Errorf("Expected b -> /b.txt, got %+v", h.responses[0])
	}
	if h.responses[1].ID != "a" || h.responses[1].Result != nil {
		t.Errorf("Expected a -> nil, got %+v", h.responses[1])
	}
}

func TestServiceClose(t *testing.T) {
	t.Run("Close unregisters the channel", func(t *testing.T) {
		h := newHarness(&fakeAdapter{blocking: true})
		handle := h.windows.Add("w")

		h.service.Close()
		if !h.service.Closed() {
			t.Error("Expected service to report closed")
		}

		err := h.call("1", MethodShowFileOpenDialog, openArgs(handle))
		if !errors.Is(err, ErrChannelNotFound) {
			t.Errorf("Expected ErrChannelNotFound, got %v", err)
		}
		if len(h.responses) != 1 || h.responses[0].Error == nil || h.responses[0].Error.Code != CodeChannelNotFound {
			t.Errorf("Expected channel_not_found reply, got %+v", h.responses)
		}
		if len(h.adapter.calls) != 0 {
			t.Error("Expected no dialog after Close")
		}
	})

	t.Run("Close twice is harmless", func(t *testing.T) {
		h := newHarness(&fakeAdapter{blocking: true})
		h.service.Close()
		h.service.Close()
		if len(h.manager.Channels()) != 0 {
			t.Errorf("Expected no channels, got %v", h.manager.Channels())
		}
	})

	t.Run("In-flight request still replies after Close", func(t *testing.T) {
		h := newHarness(&fakeAdapter{blocking: true, result: Selected("/kept")})
		handle := h.windows.Add("w")

		_ = h.call("1", MethodShowFileOpenDialog, openArgs(handle))
		h.service.Close()
		h.loop.Drain(4)

		if len(h.responses) != 1 || h.responses[0].Result != "/kept" {
			t.Errorf("Expected /kept, got %+v", h.responses)
		}
	})

	t.Run("Stale handler after Close does nothing", func(t *testing.T) {
		h := newHarness(&fakeAdapter{blocking: true})
		handle := h.windows.Add("w")

		// Capture the registered handler, then close behind its back
		var captured MethodHandler
		spy := &spyRegistry{MessageManager: h.manager, onRegister: func(handler MethodHandler) { captured = handler }}
		svc := New(&Context{Registry: spy, Windows: h.windows, Loop: h.loop, Adapter: h.adapter, Logger: quietLogger()})
		svc.Close()

		reply := NewReply("1", func(resp Response) { h.responses = append(h.responses, resp) }, nil)
		captured(&MethodCall{ID: "1", Method: MethodShowFileOpenDialog, Args: openArgs(handle)}, reply)

		if reply.Sent() || h.loop.Pending() != 0 {
			t.Error("Expected a closed service to ignore the call")
		}
	})
}

type spyRegistry struct {
	*MessageManager
	onRegister func(MethodHandler)
}

func (s *spyRegistry) RegisterMethodHandler(channel string, handler MethodHandler) {
	s.onRegister(handler)
	s.MessageManager.RegisterMethodHandler(channel, handler)
}

func TestServiceRegistersChannel(t *testing.T) {
	h := newHarness(&fakeAdapter{blocking: true})
	channels := h.manager.Channels()
	if len(channels) != 1 || channels[0] != ChannelName {
		t.Errorf("Expected [%s], got %v", ChannelName, channels)
	}
}

func TestServiceCollectedWithoutClose(t *testing.T) {
	logger := quietLogger()
	manager := NewMessageManager(logger)
	windows := NewWindowRegistry()
	loop := NewRunLoop(logger)
	handle := windows.Add("w")

	var captured MethodHandler
	func() {
		spy := &spyRegistry{MessageManager: manager, onRegister: func(handler MethodHandler) { captured = handler }}
		New(&Context{Registry: spy, Windows: windows, Loop: loop, Adapter: &fakeAdapter{blocking: true}, Logger: logger})
	}()

	for i := 0; i < 100 && len(manager.Channels()) > 0; i++ {
		runtime.GC()
		time.Sleep(10 * time.Millisecond)
	}
	if channels := manager.Channels(); len(channels) != 0 {
		t.Fatalf("Expected the channel to be unregistered once the service was collected, got %v", channels)
	}

	t.Run("Stale handler finds no service", func(t *testing.T) {
		reply := NewReply("1", nil, nil)
		captured(&MethodCall{ID: "1", Method: MethodShowFileOpenDialog, Args: openArgs(handle)}, reply)
		if reply.Sent() || loop.Pending() != 0 {
			t.Error("Expected the handler to do nothing without its service")
		}
	})

	t.Run("Call after collection gets channel_not_found", func(t *testing.T) {
		var got []Response
		reply := NewReply("2", func(resp Response) { got = append(got, resp) }, nil)
		err := manager.Dispatch(ChannelName, &MethodCall{ID: "2", Method: MethodShowFileOpenDialog, Args: openArgs(handle)}, reply)

		if !errors.Is(err, ErrChannelNotFound) {
			t.Errorf("Expected ErrChannelNotFound, got %v", err)
		}
		if len(got) != 1 || got[0].Error == nil || got[0].Error.Code != CodeChannelNotFound {
			t.Errorf("Expected one channel_not_found reply, got %+v", got)
		}
	})
}

func TestServiceCloseKeepsLaterOwner(t *testing.T) {
	logger := quietLogger()
	manager := NewMessageManager(logger)
	windows := NewWindowRegistry()
	loop := NewRunLoop(logger)

	func() {
		old := New(&Context{Registry: manager, Windows: windows, Loop: loop, Adapter: &fakeAdapter{blocking: true}, Logger: logger})
		old.Close()
	}()
	current := New(&Context{Registry: manager, Windows: windows, Loop: loop, Adapter: &fakeAdapter{blocking: true}, Logger: logger})
	defer current.Close()

	for i := 0; i < 5; i++ {
		runtime.GC()
		time.Sleep(10 * time.Millisecond)
	}
	if channels := manager.Channels(); len(channels) != 1 || channels[0] != ChannelName {
		t.Errorf("Expected the current service to keep %s, got %v", ChannelName, channels)
	}
}
