package clientapi

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/storyreg/pkg/catalog"
	"github.com/arthur-debert/storyreg/pkg/errors"
	"github.com/arthur-debert/storyreg/pkg/metrics"
	"github.com/arthur-debert/storyreg/pkg/module"
	"github.com/arthur-debert/storyreg/pkg/testutil"
	"github.com/arthur-debert/storyreg/pkg/types"
)

func constant(v types.Renderable) types.RenderFunc {
	return func(types.StoryContext) types.Renderable { return v }
}

func newTestAPI(t *testing.T, opts ...Option) (*ClientAPI, *catalog.Store) {
	t.Helper()
	store := catalog.NewStore()
	opts = append([]Option{WithCatalog(store), WithLogger(zerolog.Nop())}, opts...)
	return New(opts...), store
}

func render(t *testing.T, c catalog.Catalog, kind, name string) types.Renderable {
	t.Helper()
	fn := c.GetStoryWithContext(kind, name)
	require.NotNil(t, fn, "story %s/%s not found", kind, name)
	return fn()
}

func TestStoriesOf_ReturnsBuilderForKind(t *testing.T) {
	api, _ := newTestAPI(t)

	for _, kind := range []string{"Button", "a", "Forms/Input", " "} {
		b, err := api.StoriesOf(kind, module.Static("x"))
		require.NoError(t, err)
		assert.Equal(t, kind, b.Kind())
	}
}

func TestStoriesOf_EmptyKindFailsBeforeCatalogMutation(t *testing.T) {
	cat := new(testutil.MockCatalog)
	api := New(WithCatalog(cat), WithLogger(zerolog.Nop()))
	m := module.New("button.stories")

	b, err := api.StoriesOf("", m)

	require.Error(t, err)
	assert.Nil(t, b)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidArgument))
	assert.Equal(t, 0, m.Hot.Pending(), "no dispose hook registered")
	cat.AssertExpectations(t)
	assert.Empty(t, cat.Calls)
}

func TestStoriesOf_MissingModuleWarns(t *testing.T) {
	var buf bytes.Buffer
	api, store := newTestAPI(t, WithLogger(zerolog.New(&buf)))

	b, err := api.StoriesOf("Button", nil)
	require.NoError(t, err)
	b.Add("primary", constant("p"), nil)

	require.NoError(t, b.Err())
	assert.Contains(t, buf.String(), string(errors.ErrMissingModule))
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.True(t, store.HasStory("Button", "primary"))
}

func TestStoriesOf_DisposeRemovesKindAndBumpsRevision(t *testing.T) {
	api, store := newTestAPI(t)
	buttons := module.New("button.stories")
	badges := module.New("badge.stories")

	b, err := api.StoriesOf("Button", buttons)
	require.NoError(t, err)
	b.Add("primary", constant("p"), nil)
	b, err = api.StoriesOf("Badge", badges)
	require.NoError(t, err)
	b.Add("new", constant("n"), nil)

	require.Len(t, api.GetStorybook(), 2)
	revision := store.Revision()

	assert.Equal(t, 1, buttons.Hot.Reload())

	book := api.GetStorybook()
	require.Len(t, book, 1)
	assert.Equal(t, "Badge", book[0].Kind)
	assert.Equal(t, revision+1, store.Revision())
}

func TestStoriesOf_ReloadDoesNotDuplicateKinds(t *testing.T) {
	api, _ := newTestAPI(t)
	m := module.New("button.stories")

	register := func() {
		b, err := api.StoriesOf("Button", m)
		require.NoError(t, err)
		b.Add("primary", constant("p"), nil).Add("secondary", constant("s"), nil)
		require.NoError(t, b.Err())
	}

	register()
	m.Hot.Reload()
	register()

	book := api.GetStorybook()
	require.Len(t, book, 1)
	assert.Equal(t, []string{"primary", "secondary"}, storyNames(book[0]))
}

func TestStoriesOf_DisposeWithMockCatalog(t *testing.T) {
	cat := new(testutil.MockCatalog)
	cat.On("RemoveStoryKind", "Button").Return().Once()
	cat.On("IncrementRevision").Return().Once()

	api := New(WithCatalog(cat), WithLogger(zerolog.Nop()))
	m := module.New("button.stories")
	_, err := api.StoriesOf("Button", m)
	require.NoError(t, err)

	m.Hot.Reload()

	cat.AssertExpectations(t)
	require.Len(t, cat.Calls, 2)
	assert.Equal(t, "RemoveStoryKind", cat.Calls[0].Method)
	assert.Equal(t, "IncrementRevision", cat.Calls[1].Method)
}

func TestAddParameters_GlobalReplaces(t *testing.T) {
	api, _ := newTestAPI(t)

	api.AddParameters(types.Parameters{"a": 1})
	api.AddParameters(types.Parameters{"b": 2})

	assert.Equal(t, types.Parameters{"b": 2}, api.GlobalParameters())
}

func TestAddParameters_GlobalNilClears(t *testing.T) {
	api, _ := newTestAPI(t)

	api.AddParameters(types.Parameters{"a": 1})
	api.AddParameters(nil)

	assert.Empty(t, api.GlobalParameters())
}

func TestDecorators_GlobalAndClear(t *testing.T) {
	api, _ := newTestAPI(t)
	trace := &testutil.Trace{}

	api.AddDecorator(trace.Decorator("A"))
	api.AddDecorator(trace.Decorator("B"))
	api.AddDecorator(nil)
	assert.Equal(t, 2, api.GlobalDecorators())

	api.ClearDecorators()
	assert.Equal(t, 0, api.GlobalDecorators())
}

func TestSetAddon_LaterRegistrationOverwrites(t *testing.T) {
	api, _ := newTestAPI(t)
	var got []string

	api.SetAddon(map[string]Addon{
		"foo": AddonFunc(func(b *Builder, args ...any) { got = append(got, "first") }),
	})
	api.SetAddon(map[string]Addon{
		"foo": AddonFunc(func(b *Builder, args ...any) { got = append(got, "second") }),
		"bar": AddonFunc(func(b *Builder, args ...any) {}),
		"nil": nil,
	})

	assert.Equal(t, []string{"foo", "bar"}, api.Addons())

	b, err := api.StoriesOf("Button", module.Static("x"))
	require.NoError(t, err)
	b.Call("foo")

	assert.Equal(t, []string{"second"}, got)
}

func TestReset(t *testing.T) {
	api, store := newTestAPI(t)
	api.AddDecorator(func(next types.StoryFn, ctx types.StoryContext) types.Renderable { return next() })
	api.AddParameters(types.Parameters{"a": 1})
	api.SetAddon(map[string]Addon{"foo": AddonFunc(func(*Builder, ...any) {})})
	b, err := api.StoriesOf("Button", module.Static("x"))
	require.NoError(t, err)
	b.Add("primary", constant("p"), nil)

	api.Reset()

	assert.Equal(t, 0, api.GlobalDecorators())
	assert.Empty(t, api.GlobalParameters())
	assert.Empty(t, api.Addons())
	assert.True(t, store.HasStory("Button", "primary"), "catalog is kept")
}

func TestGetStorybook_Projection(t *testing.T) {
	api, _ := newTestAPI(t)

	b, err := api.StoriesOf("Button", module.Static("button.stories"))
	require.NoError(t, err)
	b.Add("primary", constant("p"), nil).Add("secondary", constant("s"), nil)

	b, err = api.StoriesOf("Loose", nil)
	require.NoError(t, err)
	b.Add("only", func(ctx types.StoryContext) types.Renderable {
		return ctx.Kind + "/" + ctx.Story
	}, nil)

	book := api.GetStorybook()
	require.Len(t, book, 2)

	assert.Equal(t, "Button", book[0].Kind)
	assert.Equal(t, "button.stories", book[0].FileName)
	assert.Equal(t, []string{"primary", "secondary"}, storyNames(book[0]))
	assert.Equal(t, "p", book[0].Stories[0].Render())
	assert.Equal(t, "s", book[0].Stories[1].Render())

	assert.Equal(t, "Loose", book[1].Kind)
	assert.Empty(t, book[1].FileName)
	assert.Equal(t, "Loose/only", book[1].Stories[0].Render())
}

func TestGetStorybook_IsPure(t *testing.T) {
	api, store := newTestAPI(t)

	b, err := api.StoriesOf("Button", module.New("button.stories"))
	require.NoError(t, err)
	b.Add("primary", constant("p"), nil)
	b, err = api.StoriesOf("Badge", module.New("badge.stories"))
	require.NoError(t, err)
	b.Add("new", constant("n"), nil).Add("old", constant("o"), nil)

	revision := store.Revision()
	first := api.GetStorybook()
	second := api.GetStorybook()

	assert.Equal(t, summarize(first), summarize(second))
	assert.Equal(t, revision, store.Revision())
}

func TestGetStorybook_EmptyCatalog(t *testing.T) {
	api, _ := newTestAPI(t)
	assert.Empty(t, api.GetStorybook())
}

func TestMetrics_RecordRegistration(t *testing.T) {
	m, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)
	api, _ := newTestAPI(t, WithMetrics(m))

	mod := module.New("button.stories")
	b, err := api.StoriesOf("Button", mod)
	require.NoError(t, err)
	b.Add("primary", constant("p"), nil).Add("primary", constant("p"), nil)
	mod.Hot.Reload()

	assert.Equal(t, float64(1), promtest.ToFloat64(m.KindsDeclared))
	assert.Equal(t, float64(2), promtest.ToFloat64(m.StoriesRegistered.WithLabelValues("Button")))
	assert.Equal(t, float64(1), promtest.ToFloat64(m.DuplicateStories))
	assert.Equal(t, float64(1), promtest.ToFloat64(m.KindsDisposed))
}

func TestNew_Defaults(t *testing.T) {
	api := New(WithLogger(zerolog.Nop()))

	require.NotNil(t, api.Catalog())
	require.NotNil(t, api.Tracker())

	b, err := api.StoriesOf("Button", module.Static("x"))
	require.NoError(t, err)
	b.Add("primary", constant("p"), nil)

	assert.Equal(t, "p", render(t, api.Catalog(), "Button", "primary"))
	assert.Equal(t, 0, api.Tracker().Len(), "no channel, no tracking")
}

func TestNew_WithDecorateStory(t *testing.T) {
	var seen int
	compose := func(base types.RenderFunc, decorators []types.Decorator) types.RenderFunc {
		seen = len(decorators)
		return constant("custom")
	}
	api, store := newTestAPI(t, WithDecorateStory(compose))
	api.AddDecorator(func(next types.StoryFn, ctx types.StoryContext) types.Renderable { return next() })

	b, err := api.StoriesOf("Button", module.Static("x"))
	require.NoError(t, err)
	b.Add("primary", constant("p"), nil)

	assert.Equal(t, 2, seen, "global decorator plus tracking")
	assert.Equal(t, "custom", render(t, store, "Button", "primary"))
}

func TestMockCatalog_AddStoryArguments(t *testing.T) {
	cat := new(testutil.MockCatalog)
	cat.On("HasStory", "Button", "primary").Return(false)
	cat.On("AddStory", "Button", "primary", mock.Anything, mock.MatchedBy(func(p types.Parameters) bool {
		return p["fileName"] == "button.stories" && p["size"] == "l"
	})).Return().Once()

	api := New(WithCatalog(cat), WithLogger(zerolog.Nop()))
	b, err := api.StoriesOf("Button", module.Static("button.stories"))
	require.NoError(t, err)
	b.Add("primary", constant("p"), types.Parameters{"size": "l"})

	require.NoError(t, b.Err())
	cat.AssertExpectations(t)
}

func storyNames(record types.KindRecord) []string {
	names := make([]string, 0, len(record.Stories))
	for _, s := range record.Stories {
		names = append(names, s.Name)
	}
	return names
}

type storySummary struct {
	Kind     string
	FileName string
	Stories  []string
	Outputs  []types.Renderable
}

func summarize(book []types.KindRecord) []storySummary {
	out := make([]storySummary, 0, len(book))
	for _, record := range book {
		s := storySummary{Kind: record.Kind, FileName: record.FileName, Stories: storyNames(record)}
		for _, story := range record.Stories {
			s.Outputs = append(s.Outputs, story.Render())
		}
		out = append(out, s)
	}
	return out
}
