package clientapi

import (
	"github.com/arthur-debert/storyreg/pkg/errors"
	"github.com/arthur-debert/storyreg/pkg/module"
	"github.com/arthur-debert/storyreg/pkg/params"
	"github.com/arthur-debert/storyreg/pkg/types"
)

// Builder adds stories to one kind. Local decorators and parameters are
// private to the builder. The first error aborts the failing call before
// it touches the catalog, and turns every later call into a no-op.
type Builder struct {
	api    *ClientAPI
	kind   string
	module *module.Ref
	addons map[string]Addon

	decorators []types.Decorator
	parameters types.Parameters
	err        error
}

func newBuilder(api *ClientAPI, kind string, m *module.Ref) *Builder {
	b := &Builder{
		api:        api,
		kind:       kind,
		module:     m,
		addons:     make(map[string]Addon),
		parameters: types.Parameters{},
	}
	// Addons registered after StoriesOf are not visible to this builder.
	for _, name := range api.addons.List() {
		if addon, err := api.addons.Get(name); err == nil {
			b.addons[name] = addon
		}
	}
	return b
}

// Kind returns the kind this builder adds stories to.
func (b *Builder) Kind() string { return b.kind }

// Err returns the first error recorded on the builder.
func (b *Builder) Err() error { return b.err }

// Fail records err on the builder unless an error is already recorded.
// Addons use it to reject their arguments.
func (b *Builder) Fail(err error) *Builder {
	if b.err == nil && err != nil {
		b.err = err
	}
	return b
}

// Add registers a story. Adding a name that already exists in the kind
// logs a warning and registers it again.
func (b *Builder) Add(name string, render types.RenderFunc, parameters types.Parameters) *Builder {
	if b.skip("add") {
		return b
	}
	if name == "" {
		b.err = errors.New(errors.ErrInvalidArgument, "story name must be a non-empty string").
			WithDetail("kind", b.kind)
		return b
	}
	if render == nil {
		b.err = errors.Newf(errors.ErrInvalidArgument, "story %q has no render function", name).
			WithDetail("kind", b.kind)
		return b
	}

	api := b.api
	duplicate := api.catalog.HasStory(b.kind, name)
	if duplicate {
		api.logger.Warn().
			Str("code", string(errors.ErrDuplicateStory)).
			Str("kind", b.kind).
			Str("story", name).
			Msg("Story already exists in kind; registering it again")
	}

	globalDecorators, globalParameters := api.globals()

	decorators := make([]types.Decorator, 0, len(b.decorators)+len(globalDecorators)+1)
	decorators = append(decorators, b.decorators...)
	decorators = append(decorators, globalDecorators...)
	decorators = append(decorators, api.withSubscriptionTracking)
	composed := api.decorateStory(render, decorators)

	base := types.Parameters{}
	if b.module != nil {
		base[types.FileNameParameter] = b.module.ID
	}
	merged := params.Merge(base, globalParameters, b.parameters, parameters)

	api.catalog.AddStory(b.kind, name, composed, merged)
	api.metrics.StoryRegistered(b.kind, duplicate)
	api.logger.Debug().
		Str("kind", b.kind).
		Str("story", name).
		Int("decorators", len(decorators)).
		Msg("Story registered")

	return b
}

// AddDecorator appends a decorator applied to stories added afterwards.
// Local decorators always wrap inside the global ones.
func (b *Builder) AddDecorator(d types.Decorator) *Builder {
	if b.skip("addDecorator") || d == nil {
		return b
	}
	b.decorators = append(b.decorators, d)
	return b
}

// AddParameters merges p into the builder's parameters, key by key.
func (b *Builder) AddParameters(p types.Parameters) *Builder {
	if b.skip("addParameters") {
		return b
	}
	b.parameters = params.Assign(b.parameters, p)
	return b
}

// Call invokes the addon registered as name with the builder and args.
func (b *Builder) Call(name string, args ...any) *Builder {
	if b.skip("call") {
		return b
	}
	addon, ok := b.addons[name]
	if !ok {
		b.err = errors.Newf(errors.ErrAddonNotFound, "addon %q is not registered", name).
			WithDetail("kind", b.kind)
		return b
	}
	addon.Apply(b, args...)
	return b
}

// skip reports whether a recorded error turns call into a no-op.
func (b *Builder) skip(call string) bool {
	if b.err == nil {
		return false
	}
	b.api.logger.Debug().
		Err(b.err).
		Str("kind", b.kind).
		Str("call", call).
		Msg("Builder call skipped after earlier error")
	return true
}
