// Package module models the source module a registration pass runs from
// and its hot-reload lifecycle.
package module

import "sync"

// Ref identifies the module that declares a kind. ID becomes the stories'
// fileName parameter. Hot is nil when the module cannot be hot-reloaded.
type Ref struct {
	ID  string
	Hot *Hot
}

// New creates a reloadable module reference.
func New(id string) *Ref {
	return &Ref{ID: id, Hot: &Hot{}}
}

// Static creates a module reference without a reload hook.
func Static(id string) *Ref {
	return &Ref{ID: id}
}

// Hot collects dispose callbacks to run before a module is re-executed.
type Hot struct {
	mu        sync.Mutex
	disposers []func()
}

// Dispose registers fn to run on the next Reload.
func (h *Hot) Dispose(fn func()) {
	if fn == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.disposers = append(h.disposers, fn)
}

// Reload runs every registered dispose callback once, in registration
// order, and forgets them. It returns the number of callbacks run.
func (h *Hot) Reload() int {
	h.mu.Lock()
	pending := h.disposers
	h.disposers = nil
	h.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
	return len(pending)
}

// Pending returns the number of dispose callbacks waiting for a reload.
func (h *Hot) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.disposers)
}
