package demo

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/storyreg/pkg/catalog"
	"github.com/arthur-debert/storyreg/pkg/channel"
	"github.com/arthur-debert/storyreg/pkg/clientapi"
	"github.com/arthur-debert/storyreg/pkg/errors"
	"github.com/arthur-debert/storyreg/pkg/export"
)

type fixture struct {
	api   *clientapi.ClientAPI
	store *catalog.Store
	bus   *channel.Bus
	book  *Storybook
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	bus := channel.NewBus(zerolog.Nop())
	store := catalog.NewStore()
	api := clientapi.New(
		clientapi.WithCatalog(store),
		clientapi.WithChannel(channel.NewHolder(bus)),
		clientapi.WithLogger(zerolog.Nop()),
	)
	return fixture{api: api, store: store, bus: bus, book: New(api, bus)}
}

func TestRegisterAll(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.book.Register(nil))

	listing := export.FromStorybook(f.api.GetStorybook(), false)
	require.Len(t, listing.Kinds, 3)

	assert.Equal(t, []string{"Button", "Badge", "Knobs"}, f.book.Kinds())
	assert.Equal(t, "Button", listing.Kinds[0].Kind)
	assert.Equal(t, "components/button.stories", listing.Kinds[0].FileName)
	assert.Equal(t, []string{"primary", "secondary", "large", "disabled"}, f.store.GetStories("Button"))
	assert.Equal(t, []string{"addWithNotes"}, f.api.Addons())
}

func TestRegisterSelectedKinds(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.book.Register([]string{"Badge"}))

	assert.Equal(t, []string{"Badge"}, f.store.GetStoryKinds())
}

func TestRegisterUnknownKind(t *testing.T) {
	f := newFixture(t)
	err := f.book.Register([]string{"Badge", "Nope"})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	assert.Empty(t, f.store.GetStoryKinds(), "nothing registered")
}

func TestRegisterTwiceDoesNotStackGlobals(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.book.Register([]string{"Button"}))
	require.NoError(t, f.book.Register([]string{"Badge"}))

	assert.Equal(t, 1, f.api.GlobalDecorators())
}

func TestStoriesRenderThroughDecorators(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.book.Register(nil))

	out := f.store.GetStoryWithContext("Button", "large")()
	assert.Equal(t, `<div class="frame" data-layout="centered"><button class="primary" data-size="large">Continue</button></div>`, out)

	out = f.store.GetStoryWithContext("Badge", "count")()
	assert.Equal(t, `<div class="frame" data-layout="centered"><span class="badge-row"><span class="badge">7</span></span></div>`, out)
}

func TestParameters(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.book.Register(nil))

	primary := f.store.GetParameters("Button", "primary")
	assert.Equal(t, "medium", primary["size"])
	assert.Equal(t, "components/button.stories", primary["fileName"])

	disabled := f.store.GetParameters("Button", "disabled")
	assert.Equal(t, "Rendered while a form is invalid", disabled["notes"])

	count := f.store.GetParameters("Badge", "count")
	assert.Equal(t, map[string]any{
		"default": "dark",
		"values":  []string{"light", "dark"},
	}, count["backgrounds"])
}

func TestReload(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.book.Register(nil))
	revision := f.store.Revision()

	disposed, err := f.book.Reload("Button")
	require.NoError(t, err)

	assert.Equal(t, 1, disposed)
	assert.Equal(t, revision+1, f.store.Revision())
	// Reloaded kinds move to the end, and are not duplicated
	assert.Equal(t, []string{"Badge", "Knobs", "Button"}, f.store.GetStoryKinds())
	assert.Len(t, f.store.GetStories("Button"), 4)

	_, err = f.book.Reload("Nope")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestKnobsSubscriptionFollowsRenderedStory(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.book.Register(nil))
	knobs := f.book.Env().Knobs

	editable := f.store.GetStoryWithContext("Knobs", "editable label")
	static := f.store.GetStoryWithContext("Knobs", "static")

	assert.Contains(t, editable(), "Edit me")
	assert.True(t, f.api.Tracker().IsTracked(knobs.Subscription()))
	assert.Equal(t, 1, f.bus.ListenerCount(EventKnobChange))

	f.bus.Emit(EventKnobChange, "label", "Changed")
	assert.Contains(t, editable(), "Changed")

	static()
	assert.False(t, f.api.Tracker().IsTracked(knobs.Subscription()))
	assert.Equal(t, 0, f.bus.ListenerCount(EventKnobChange))

	// Updates sent while no story listens are lost
	f.bus.Emit(EventKnobChange, "label", "Ignored")
	assert.Contains(t, editable(), "Changed")
}

func TestKnobsWithoutChannel(t *testing.T) {
	knobs := NewKnobs(nil)
	knobs.Announce()
	assert.Equal(t, "fallback", knobs.Value("label", "fallback"))

	knobs.handleChange("label")
	knobs.handleChange(1, "x")
	assert.Equal(t, "fallback", knobs.Value("label", "fallback"))
}

func TestAddWithNotesRejectsBadArguments(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.book.Register([]string{"Badge"}))

	b, err := f.api.StoriesOf("Extra", nil)
	require.NoError(t, err)
	b.Call("addWithNotes", "x")
	assert.True(t, errors.IsErrorCode(b.Err(), errors.ErrInvalidArgument))

	b, err = f.api.StoriesOf("Extra", nil)
	require.NoError(t, err)
	b.Call("addWithNotes", "x", "not a render", "notes")
	assert.True(t, errors.IsErrorCode(b.Err(), errors.ErrInvalidArgument))
}
