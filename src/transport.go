package pawdialog

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
)

// Envelope is one inbound line on the wire
type Envelope struct {
	ID      string          `json:"id"`
	Channel string          `json:"channel"`
	Method  string          `json:"method"`
	Args    json.RawMessage `json:"args,omitempty"`
}

// maxLineSize bounds a single inbound JSON line
const maxLineSize = 1024 * 1024

// Transport carries method calls as JSON lines. Inbound calls are posted to
// the loop; the handler then runs on a loop turn, never on the reader goroutine.
type Transport struct {
	in      io.Reader
	out     *bufio.Writer
	outMu   sync.Mutex
	manager *MessageManager
	loop    Scheduler
	logger  *Logger
}

// NewTransport creates a transport reading calls from in and writing replies to out
func NewTransport(in io.Reader, out io.Writer, manager *MessageManager, loop Scheduler, logger *Logger) *Transport {
	return &Transport{
		in:      in,
		out:     bufio.NewWriter(out),
		manager: manager,
		loop:    loop,
		logger:  logger,
	}
}

// WriteResponse encodes resp as one line and flushes it
func (t *Transport) WriteResponse(resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		t.logger.ErrorCat(CatTransport, "Failed to marshal response %s: %v", resp.ID, err)
		return
	}

	t.outMu.Lock()
	defer t.outMu.Unlock()
	if _, err := fmt.Fprintf(t.out, "%s\n", data); err != nil {
		t.logger.ErrorCat(CatTransport, "Failed to write response %s: %v", resp.ID, err)
		return
	}
	if err := t.out.Flush(); err != nil {
		t.logger.ErrorCat(CatTransport, "Failed to flush response %s: %v", resp.ID, err)
	}
}

// Deliver posts one decoded envelope onto the loop
func (t *Transport) Deliver(env Envelope) {
	if env.ID == "" {
		env.ID = uuid.New().String()
	}
	call := &MethodCall{ID: env.ID, Method: env.Method, Args: env.Args}
	reply := NewReply(env.ID, t.WriteResponse, t.logger)

	t.loop.Defer(func() {
		_ = t.manager.Dispatch(env.Channel, call, reply)
	}).Detach()
}

// Serve reads lines until input ends or ctx is done
func (t *Transport) Serve(ctx context.Context) error {
	scanner := bufio.NewScanner(t.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lines := make(chan []byte)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		errc <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-errc:
					if err != nil {
						return fmt.Errorf("transport read failed: %w", err)
					}
				default:
				}
				t.logger.DebugCat(CatTransport, "Input closed")
				return nil
			}
			if len(line) == 0 {
				continue
			}
			var env Envelope
			if err := json.Unmarshal(line, &env); err != nil {
				t.logger.WarnCat(CatTransport, "Failed to parse request: %v", err)
				t.WriteResponse(Response{Error: &MethodError{
					Code:    CodeParseError,
					Message: fmt.Sprintf("parse error: %v", err),
				}})
				continue
			}
			t.Deliver(env)
		}
	}
}
