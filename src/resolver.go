package pawdialog

import (
	"sync"
)

// WindowResolver maps a WindowHandle to a native window, or reports absence
type WindowResolver interface {
	LookupWindow(handle WindowHandle) (NativeWindow, bool)
}

// WindowRegistry is a WindowResolver backed by a handle table
type WindowRegistry struct {
	mu      sync.RWMutex
	windows map[WindowHandle]NativeWindow
	next    WindowHandle
}

// NewWindowRegistry creates an empty window table
func NewWindowRegistry() *WindowRegistry {
	return &WindowRegistry{
		windows: make(map[WindowHandle]NativeWindow),
		next:    1,
	}
}

// Add stores win under a fresh handle
func (r *WindowRegistry) Add(win NativeWindow) WindowHandle {
	r.mu.Lock()
	defer r.mu.Unlock()

	handle := r.next
	r.next++
	r.windows[handle] = win
	return handle
}

// Set stores win under a handle chosen by the caller
func (r *WindowRegistry) Set(handle WindowHandle, win NativeWindow) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.windows[handle] = win
	if handle >= r.next {
		r.next = handle + 1
	}
}

// Remove forgets a handle; later lookups report absence
func (r *WindowRegistry) Remove(handle WindowHandle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.windows[handle]; !ok {
		return false
	}
	delete(r.windows, handle)
	return true
}

// LookupWindow implements WindowResolver
func (r *WindowRegistry) LookupWindow(handle WindowHandle) (NativeWindow, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	win, ok := r.windows[handle]
	return win, ok
}

// Len returns the number of known windows
func (r *WindowRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.windows)
}
