package channel_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/storyreg/pkg/channel"
)

func TestBus_EmitDeliversArgsInOrder(t *testing.T) {
	bus := channel.NewBus(zerolog.Nop())

	var got []string
	first := channel.NewListener(func(args ...any) { got = append(got, "first:"+args[0].(string)) })
	second := channel.NewListener(func(args ...any) { got = append(got, "second:"+args[0].(string)) })

	bus.On("evt", first)
	bus.On("evt", second)
	bus.Emit("evt", "payload")

	assert.Equal(t, []string{"first:payload", "second:payload"}, got)
}

func TestBus_EmitWithoutListeners(t *testing.T) {
	bus := channel.NewBus(zerolog.Nop())
	assert.NotPanics(t, func() { bus.Emit("nobody-listens", 1, 2) })
}

func TestBus_RemoveListener(t *testing.T) {
	bus := channel.NewBus(zerolog.Nop())

	calls := 0
	l := channel.NewListener(func(args ...any) { calls++ })

	bus.On("evt", l)
	require.Equal(t, 1, bus.ListenerCount("evt"))

	bus.RemoveListener("evt", l)
	bus.Emit("evt")

	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, bus.ListenerCount("evt"))
}

func TestBus_RemoveListenerOnlyRemovesMatchingIdentity(t *testing.T) {
	bus := channel.NewBus(zerolog.Nop())

	fn := func(args ...any) {}
	a := channel.NewListener(fn)
	b := channel.NewListener(fn)

	bus.On("evt", a)
	bus.On("evt", b)
	bus.RemoveListener("evt", a)

	assert.Equal(t, 1, bus.ListenerCount("evt"))

	// Removing an unknown listener is a no-op
	bus.RemoveListener("evt", a)
	bus.RemoveListener("other", b)
	assert.Equal(t, 1, bus.ListenerCount("evt"))
}

func TestBus_ListenerMayRemoveItselfWhileHandling(t *testing.T) {
	bus := channel.NewBus(zerolog.Nop())

	calls := 0
	var self channel.Listener
	self = channel.NewListener(func(args ...any) {
		calls++
		bus.RemoveListener("evt", self)
	})
	bus.On("evt", self)

	bus.Emit("evt")
	bus.Emit("evt")

	assert.Equal(t, 1, calls)
}

func TestHolder(t *testing.T) {
	holder := channel.NewHolder(nil)
	assert.False(t, holder.HasChannel())
	assert.Nil(t, holder.GetChannel())

	bus := channel.NewBus(zerolog.Nop())
	holder.SetChannel(bus)

	assert.True(t, holder.HasChannel())
	assert.Same(t, bus, holder.GetChannel())
}
