package testutil

import (
	"fmt"
	"sync"

	"github.com/arthur-debert/storyreg/pkg/channel"
)

// RecordingChannel is a channel.Channel that records every call and
// dispatches emitted events to its listeners synchronously.
type RecordingChannel struct {
	mu        sync.Mutex
	listeners map[string][]channel.Listener
	calls     []string
}

var _ channel.Channel = (*RecordingChannel)(nil)

// NewRecordingChannel creates an empty RecordingChannel.
func NewRecordingChannel() *RecordingChannel {
	return &RecordingChannel{
		listeners: make(map[string][]channel.Listener),
		calls:     []string{},
	}
}

// On implements channel.Channel.
func (c *RecordingChannel) On(event string, listener channel.Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls = append(c.calls, fmt.Sprintf("On(%s)", event))
	c.listeners[event] = append(c.listeners[event], listener)
}

// RemoveListener implements channel.Channel.
func (c *RecordingChannel) RemoveListener(event string, listener channel.Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls = append(c.calls, fmt.Sprintf("RemoveListener(%s)", event))
	listeners := c.listeners[event]
	for i, l := range listeners {
		if l == listener {
			c.listeners[event] = append(listeners[:i:i], listeners[i+1:]...)
			return
		}
	}
}

// Emit implements channel.Channel.
func (c *RecordingChannel) Emit(event string, args ...any) {
	c.mu.Lock()
	c.calls = append(c.calls, fmt.Sprintf("Emit(%s)", event))
	listeners := append([]channel.Listener(nil), c.listeners[event]...)
	c.mu.Unlock()

	for _, l := range listeners {
		l.HandleEvent(args...)
	}
}

// Calls returns the recorded calls in order.
func (c *RecordingChannel) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

// ListenerCount returns the number of listeners attached to event.
func (c *RecordingChannel) ListenerCount(event string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.listeners[event])
}
