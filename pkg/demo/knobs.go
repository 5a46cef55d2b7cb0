package demo

import (
	"fmt"
	"sync"

	"github.com/arthur-debert/storyreg/pkg/channel"
	"github.com/arthur-debert/storyreg/pkg/subscriptions"
)

// EventKnobChange carries (name, value) knob updates.
const EventKnobChange = "knobs:change"

// Knobs holds values editable over the channel while a story using them
// is rendered. Stories announce its subscription on every render; once no
// rendered story announces it, the tracker tears the listener down.
type Knobs struct {
	mu     sync.Mutex
	values map[string]string
	ch     channel.Channel
	sub    *subscriptions.Subscription
}

// NewKnobs creates knobs listening on ch. A nil ch disables updates.
func NewKnobs(ch channel.Channel) *Knobs {
	k := &Knobs{
		values: make(map[string]string),
		ch:     ch,
	}
	k.sub = subscriptions.New("knobs", func() func() {
		if ch == nil {
			return nil
		}
		listener := channel.NewListener(k.handleChange)
		ch.On(EventKnobChange, listener)
		return func() {
			ch.RemoveListener(EventKnobChange, listener)
		}
	})
	return k
}

// Subscription returns the knobs subscription.
func (k *Knobs) Subscription() *subscriptions.Subscription {
	return k.sub
}

// Announce asks the rendering story's tracker to keep the knobs
// subscription alive.
func (k *Knobs) Announce() {
	if k.ch == nil {
		return
	}
	k.ch.Emit(channel.EventRegisterSubscription, k.sub)
}

// Value returns the knob name, or fallback if it was never set.
func (k *Knobs) Value(name, fallback string) string {
	k.mu.Lock()
	defer k.mu.Unlock()
	if v, ok := k.values[name]; ok {
		return v
	}
	return fallback
}

func (k *Knobs) handleChange(args ...any) {
	if len(args) != 2 {
		return
	}
	name, ok := args[0].(string)
	if !ok {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.values[name] = fmt.Sprint(args[1])
}
