package testutil

import (
	"sync"

	"github.com/arthur-debert/storyreg/pkg/types"
)

// Trace records labels in the order decorators and renders run.
type Trace struct {
	mu     sync.Mutex
	events []string
}

// Add appends a label.
func (t *Trace) Add(label string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, label)
}

// Events returns the recorded labels.
func (t *Trace) Events() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.events...)
}

// Reset forgets every recorded label.
func (t *Trace) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = nil
}

// Decorator returns a decorator that records label, then calls next.
func (t *Trace) Decorator(label string) types.Decorator {
	return func(next types.StoryFn, ctx types.StoryContext) types.Renderable {
		t.Add(label)
		return next()
	}
}

// Render returns a render that records label and returns it.
func (t *Trace) Render(label string) types.RenderFunc {
	return func(ctx types.StoryContext) types.Renderable {
		t.Add(label)
		return label
	}
}
