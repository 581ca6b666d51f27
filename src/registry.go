package pawdialog

import (
	"sort"
	"sync"
)

// MessageRegistry binds channel names to method handlers.
// It is owned by the host; services only register and unregister.
type MessageRegistry interface {
	RegisterMethodHandler(channel string, handler MethodHandler)
	UnregisterMethodHandler(channel string)
}

// MessageManager is an in-process MessageRegistry that also routes calls
type MessageManager struct {
	mu       sync.RWMutex
	handlers map[string]MethodHandler
	logger   *Logger
}

// NewMessageManager creates an empty registry
func NewMessageManager(logger *Logger) *MessageManager {
	return &MessageManager{
		handlers: make(map[string]MethodHandler),
		logger:   logger,
	}
}

// RegisterMethodHandler installs handler for channel, replacing any previous one
func (m *MessageManager) RegisterMethodHandler(channel string, handler MethodHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.handlers[channel]; exists {
		m.logger.WarnCat(CatChannel, "Replacing handler already registered for %s", channel)
	}
	m.handlers[channel] = handler
	m.logger.DebugCat(CatChannel, "Registered handler for %s", channel)
}

// UnregisterMethodHandler removes the handler for channel
func (m *MessageManager) UnregisterMethodHandler(channel string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.handlers, channel)
	m.logger.DebugCat(CatChannel, "Unregistered handler for %s", channel)
}

// Channels returns the registered channel names, sorted
func (m *MessageManager) Channels() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.handlers))
	for name := range m.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch delivers call to the handler registered for channel. A call on an
// unregistered channel never reaches any handler; the reply slot receives
// channel_not_found and ErrChannelNotFound is returned.
func (m *MessageManager) Dispatch(channel string, call *MethodCall, reply *Reply) error {
	m.mu.RLock()
	handler, ok := m.handlers[channel]
	m.mu.RUnlock()

	if !ok {
		m.logger.WarnCat(CatChannel, "No handler for channel %s (call %s)", channel, call.ID)
		reply.SendError(CodeChannelNotFound, "No handler registered for "+channel, nil)
		return ErrChannelNotFound
	}

	m.logger.TraceCat(CatChannel, "Dispatching %s.%s (call %s)", channel, call.Method, call.ID)
	handler(call, reply)
	return nil
}
