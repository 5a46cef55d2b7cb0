package clientapi

import (
	"maps"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/storyreg/pkg/catalog"
	"github.com/arthur-debert/storyreg/pkg/channel"
	"github.com/arthur-debert/storyreg/pkg/decorate"
	"github.com/arthur-debert/storyreg/pkg/errors"
	"github.com/arthur-debert/storyreg/pkg/logging"
	"github.com/arthur-debert/storyreg/pkg/metrics"
	"github.com/arthur-debert/storyreg/pkg/module"
	"github.com/arthur-debert/storyreg/pkg/registry"
	"github.com/arthur-debert/storyreg/pkg/subscriptions"
	"github.com/arthur-debert/storyreg/pkg/types"
)

// ClientAPI holds the state shared by every kind builder: global
// decorators, global parameters and addons. Builders read it live, so a
// decorator added after StoriesOf still applies to later Add calls.
type ClientAPI struct {
	mu         sync.RWMutex
	decorators []types.Decorator
	parameters types.Parameters
	addons     registry.Registry[Addon]

	catalog       catalog.Catalog
	decorateStory types.DecorateStoryFunc
	channel       channel.Provider
	tracker       *subscriptions.Tracker
	logger        zerolog.Logger
	metrics       *metrics.Metrics

	// renderMu serializes the mark/register/render/clear sequence of
	// tracked renders. meta and metaChannel are guarded by it.
	renderMu    sync.Mutex
	meta        *subscriptions.Subscription
	metaChannel channel.Channel
}

// Option configures a ClientAPI.
type Option func(*ClientAPI)

// WithCatalog sets the catalog stories are written to.
func WithCatalog(c catalog.Catalog) Option {
	return func(a *ClientAPI) { a.catalog = c }
}

// WithDecorateStory replaces the decorator composer.
func WithDecorateStory(fn types.DecorateStoryFunc) Option {
	return func(a *ClientAPI) { a.decorateStory = fn }
}

// WithChannel sets the channel provider used by subscription tracking.
func WithChannel(p channel.Provider) Option {
	return func(a *ClientAPI) { a.channel = p }
}

// WithTracker sets the subscription tracker.
func WithTracker(t *subscriptions.Tracker) Option {
	return func(a *ClientAPI) { a.tracker = t }
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *ClientAPI) { a.logger = logger }
}

// WithMetrics sets the metrics collectors. Nil disables metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *ClientAPI) { a.metrics = m }
}

// New creates a ClientAPI. Without options it writes to a fresh in-memory
// catalog, composes with decorate.Compose and has no channel, so renders
// skip subscription tracking.
func New(opts ...Option) *ClientAPI {
	a := &ClientAPI{
		parameters:    types.Parameters{},
		addons:        registry.New[Addon](),
		decorateStory: decorate.Compose,
		logger:        logging.GetLogger("clientapi"),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.catalog == nil {
		a.catalog = catalog.NewStore(catalog.WithLogger(a.logger))
	}
	if a.channel == nil {
		a.channel = channel.NewHolder(nil)
	}
	if a.tracker == nil {
		a.tracker = subscriptions.NewTracker(
			subscriptions.WithLogger(a.logger),
			subscriptions.WithObserver(a.metrics),
		)
	}
	return a
}

// SetAddon registers addons by name. A name that is already registered is
// replaced.
func (a *ClientAPI) SetAddon(addons map[string]Addon) {
	for _, name := range slices.Sorted(maps.Keys(addons)) {
		addon := addons[name]
		if addon == nil {
			a.logger.Warn().Str("addon", name).Msg("Ignoring nil addon")
			continue
		}
		if err := a.addons.Set(name, addon); err != nil {
			a.logger.Warn().Err(err).Str("addon", name).Msg("Failed to register addon")
			continue
		}
		a.logger.Debug().Str("addon", name).Msg("Addon registered")
	}
}

// AddDecorator appends a global decorator. Later decorators wrap earlier
// ones.
func (a *ClientAPI) AddDecorator(d types.Decorator) {
	if d == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.decorators = append(a.decorators, d)
}

// AddParameters replaces the global parameters with p. Unlike
// Builder.AddParameters, nothing from the previous call is kept.
func (a *ClientAPI) AddParameters(p types.Parameters) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if p == nil {
		p = types.Parameters{}
	}
	a.parameters = p
}

// ClearDecorators removes every global decorator.
func (a *ClientAPI) ClearDecorators() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.decorators = nil
}

// Reset clears global decorators, global parameters and addons, ready for
// a fresh registration pass. The catalog is left untouched.
func (a *ClientAPI) Reset() {
	a.mu.Lock()
	a.decorators = nil
	a.parameters = types.Parameters{}
	a.mu.Unlock()
	a.addons.Clear()
}

// GlobalParameters returns the current global parameters.
func (a *ClientAPI) GlobalParameters() types.Parameters {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.parameters
}

// GlobalDecorators returns the number of global decorators.
func (a *ClientAPI) GlobalDecorators() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.decorators)
}

// Addons lists registered addon names in registration order.
func (a *ClientAPI) Addons() []string {
	return a.addons.List()
}

// Catalog returns the catalog stories are written to.
func (a *ClientAPI) Catalog() catalog.Catalog {
	return a.catalog
}

// Tracker returns the subscription tracker used by tracked renders.
func (a *ClientAPI) Tracker() *subscriptions.Tracker {
	return a.tracker
}

// StoriesOf declares kind and returns its builder. m identifies the
// module doing the registration; when it carries a Hot handle, disposing
// the module removes kind from the catalog and bumps the revision. A nil
// m is accepted with a warning since reloads would then duplicate kinds.
func (a *ClientAPI) StoriesOf(kind string, m *module.Ref) (*Builder, error) {
	if kind == "" {
		return nil, errors.New(errors.ErrInvalidArgument, "kind must be a non-empty string")
	}

	switch {
	case m == nil:
		a.logger.Warn().
			Str("code", string(errors.ErrMissingModule)).
			Str("kind", kind).
			Msg("Missing module for kind; reloading it will duplicate its stories")
	case m.Hot != nil:
		m.Hot.Dispose(func() {
			a.catalog.RemoveStoryKind(kind)
			a.catalog.IncrementRevision()
			a.metrics.KindDisposed()
			a.logger.Debug().Str("kind", kind).Str("module", m.ID).Msg("Kind disposed")
		})
	}

	a.metrics.KindDeclared()
	a.logger.Debug().Str("kind", kind).Msg("Kind declared")

	return newBuilder(a, kind, m), nil
}

// GetStorybook lists every kind in catalog order with its stories bound
// to their default context. It does not modify the catalog.
func (a *ClientAPI) GetStorybook() []types.KindRecord {
	kinds := a.catalog.GetStoryKinds()
	records := make([]types.KindRecord, 0, len(kinds))
	for _, kind := range kinds {
		fileName, _ := a.catalog.GetStoryFileName(kind)
		names := a.catalog.GetStories(kind)

		stories := make([]types.StoryRecord, 0, len(names))
		for _, name := range names {
			stories = append(stories, types.StoryRecord{
				Name:   name,
				Render: a.catalog.GetStoryWithContext(kind, name),
			})
		}
		records = append(records, types.KindRecord{
			Kind:     kind,
			FileName: fileName,
			Stories:  stories,
		})
	}
	return records
}

// globals returns the global decorators and parameters as they are now.
func (a *ClientAPI) globals() ([]types.Decorator, types.Parameters) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.decorators), a.parameters
}
