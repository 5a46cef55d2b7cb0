package subscriptions

import "github.com/google/uuid"

// SetupFunc performs a subscription's side effect and returns the function
// that undoes it. A nil teardown is allowed.
type SetupFunc func() (teardown func())

// Subscription is a named subscription factory with a stable identity.
type Subscription struct {
	id    uuid.UUID
	name  string
	setup SetupFunc
}

// New creates a subscription. The returned pointer is its identity.
func New(name string, setup SetupFunc) *Subscription {
	return &Subscription{
		id:    uuid.New(),
		name:  name,
		setup: setup,
	}
}

// ID returns the unique id assigned at creation.
func (s *Subscription) ID() uuid.UUID { return s.id }

// Name returns the human-readable name.
func (s *Subscription) Name() string { return s.name }

func (s *Subscription) start() func() {
	if s.setup == nil {
		return nil
	}
	return s.setup()
}
