package subscriptions

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/storyreg/pkg/channel"
)

// Observer is notified when subscriptions start and stop.
type Observer interface {
	SubscriptionStarted()
	SubscriptionStopped()
}

type entry struct {
	sub      *Subscription
	teardown func()
	used     bool
}

// Tracker holds the subscriptions registered during renders and whether
// the current pass has used them.
type Tracker struct {
	mu       sync.Mutex
	entries  map[*Subscription]*entry
	order    []*Subscription
	logger   zerolog.Logger
	observer Observer

	registrar *registrar
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the tracker's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(t *Tracker) { t.logger = logger }
}

// WithObserver sets an observer for subscription start/stop events.
func WithObserver(o Observer) Option {
	return func(t *Tracker) { t.observer = o }
}

// NewTracker creates an empty tracker.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		entries: make(map[*Subscription]*entry),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.registrar = &registrar{tracker: t}
	return t
}

// MarkAllAsUnused flags every tracked subscription as unused.
func (t *Tracker) MarkAllAsUnused() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, e := range t.entries {
		e.used = false
	}
}

// Register marks sub as used. An untracked subscription is started first;
// a tracked one is revived without running its setup again.
func (t *Tracker) Register(sub *Subscription) {
	if sub == nil {
		t.logger.Warn().Msg("Ignoring nil subscription")
		return
	}

	t.mu.Lock()
	if e, ok := t.entries[sub]; ok {
		e.used = true
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()

	// Setup runs unlocked: it may emit events that register other
	// subscriptions on this tracker.
	teardown := sub.start()

	t.mu.Lock()
	if e, ok := t.entries[sub]; ok {
		// Registered re-entrantly while starting; keep the first one.
		e.used = true
		t.mu.Unlock()
		if teardown != nil {
			teardown()
		}
		return
	}
	t.entries[sub] = &entry{sub: sub, teardown: teardown, used: true}
	t.order = append(t.order, sub)
	t.mu.Unlock()

	t.logger.Debug().
		Str("subscription", sub.Name()).
		Str("id", sub.ID().String()).
		Msg("Subscription started")
	if t.observer != nil {
		t.observer.SubscriptionStarted()
	}
}

// ClearUnused tears down and forgets every subscription still marked
// unused, in registration order.
func (t *Tracker) ClearUnused() {
	t.mu.Lock()
	var stale []*entry
	kept := t.order[:0]
	for _, sub := range t.order {
		e := t.entries[sub]
		if e.used {
			kept = append(kept, sub)
			continue
		}
		stale = append(stale, e)
		delete(t.entries, sub)
	}
	t.order = kept
	t.mu.Unlock()

	t.stop(stale)
}

// Reset tears down every tracked subscription.
func (t *Tracker) Reset() {
	t.mu.Lock()
	all := make([]*entry, 0, len(t.order))
	for _, sub := range t.order {
		all = append(all, t.entries[sub])
	}
	t.entries = make(map[*Subscription]*entry)
	t.order = nil
	t.mu.Unlock()

	t.stop(all)
}

func (t *Tracker) stop(entries []*entry) {
	for _, e := range entries {
		if e.teardown != nil {
			e.teardown()
		}
		t.logger.Debug().
			Str("subscription", e.sub.Name()).
			Str("id", e.sub.ID().String()).
			Msg("Subscription torn down")
		if t.observer != nil {
			t.observer.SubscriptionStopped()
		}
	}
}

// IsTracked reports whether sub is currently tracked.
func (t *Tracker) IsTracked(sub *Subscription) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.entries[sub]
	return ok
}

// Len returns the number of tracked subscriptions.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Active returns the names of tracked subscriptions in registration order.
func (t *Tracker) Active() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	names := make([]string, 0, len(t.order))
	for _, sub := range t.order {
		names = append(names, sub.Name())
	}
	return names
}

// Registrar returns a channel listener that registers every
// *Subscription it receives with this tracker. The same listener is
// returned on every call.
func (t *Tracker) Registrar() channel.Listener {
	return t.registrar
}

type registrar struct {
	tracker *Tracker
}

func (r *registrar) HandleEvent(args ...any) {
	for _, arg := range args {
		sub, ok := arg.(*Subscription)
		if !ok {
			r.tracker.logger.Warn().
				Str("type", fmt.Sprintf("%T", arg)).
				Msg("Ignoring subscription registration with unexpected payload")
			continue
		}
		r.tracker.Register(sub)
	}
}
