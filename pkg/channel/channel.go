package channel

import (
	"sync"

	"github.com/rs/zerolog"
)

// Well-known event names.
const (
	// EventRegisterSubscription asks the tracker of the story currently
	// rendering to register the *subscriptions.Subscription payload.
	EventRegisterSubscription = "registerSubscription"

	// EventStoryAdded is emitted by the catalog after a story is stored.
	EventStoryAdded = "storyAdded"
)

// Listener receives the arguments of events it was registered for.
type Listener interface {
	HandleEvent(args ...any)
}

// ListenerFunc adapts a function to a Listener. Function values are not
// comparable, so pass ListenerFunc through NewListener before registering.
type ListenerFunc func(args ...any)

type funcListener struct {
	fn ListenerFunc
}

func (l *funcListener) HandleEvent(args ...any) { l.fn(args...) }

// NewListener wraps fn in a Listener with pointer identity.
func NewListener(fn ListenerFunc) Listener {
	return &funcListener{fn: fn}
}

// Channel is the pub-sub transport between stories, addons and the engine.
type Channel interface {
	On(event string, listener Listener)
	RemoveListener(event string, listener Listener)
	Emit(event string, args ...any)
}

// Provider hands out the active channel, if any.
type Provider interface {
	HasChannel() bool
	GetChannel() Channel
}

// Holder is a Provider whose channel can be swapped at runtime.
type Holder struct {
	mu      sync.RWMutex
	channel Channel
}

// NewHolder creates a Holder. A nil channel means no channel is available.
func NewHolder(ch Channel) *Holder {
	return &Holder{channel: ch}
}

// HasChannel reports whether a channel has been set.
func (h *Holder) HasChannel() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.channel != nil
}

// GetChannel returns the current channel or nil.
func (h *Holder) GetChannel() Channel {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.channel
}

// SetChannel replaces the current channel.
func (h *Holder) SetChannel(ch Channel) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.channel = ch
}

// Bus is an in-memory Channel. Emit dispatches synchronously, in
// registration order, to a snapshot of the listeners taken when the event
// is emitted; listeners may add or remove listeners while handling.
type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]Listener
	logger    zerolog.Logger
}

// NewBus creates an empty bus.
func NewBus(logger zerolog.Logger) *Bus {
	return &Bus{
		listeners: make(map[string][]Listener),
		logger:    logger,
	}
}

// On registers listener for event. Registering the same listener twice
// delivers events to it twice.
func (b *Bus) On(event string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[event] = append(b.listeners[event], listener)
	b.logger.Trace().Str("event", event).Int("listeners", len(b.listeners[event])).Msg("Listener added")
}

// RemoveListener removes the first registration of listener for event.
func (b *Bus) RemoveListener(event string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	current := b.listeners[event]
	for i, l := range current {
		if l == listener {
			remaining := make([]Listener, 0, len(current)-1)
			remaining = append(remaining, current[:i]...)
			remaining = append(remaining, current[i+1:]...)
			if len(remaining) == 0 {
				delete(b.listeners, event)
			} else {
				b.listeners[event] = remaining
			}
			b.logger.Trace().Str("event", event).Int("listeners", len(remaining)).Msg("Listener removed")
			return
		}
	}
}

// Emit delivers args to every listener of event.
func (b *Bus) Emit(event string, args ...any) {
	b.mu.RLock()
	snapshot := append([]Listener(nil), b.listeners[event]...)
	b.mu.RUnlock()

	b.logger.Trace().Str("event", event).Int("listeners", len(snapshot)).Msg("Emitting event")
	for _, l := range snapshot {
		l.HandleEvent(args...)
	}
}

// ListenerCount returns the number of listeners registered for event.
func (b *Bus) ListenerCount(event string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[event])
}
