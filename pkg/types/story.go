package types

// Renderable is whatever a render function produces. The engine never
// inspects it; it is handed back to whoever invoked the render.
type Renderable = any

// StoryContext is passed to every render function and decorator.
type StoryContext struct {
	// Kind is the name of the kind the story belongs to
	Kind string

	// Story is the story name within its kind
	Story string

	// Parameters is the merged parameter bag stored with the story
	Parameters Parameters
}

// RenderFunc renders one state of a component for the given context.
// Both the caller-supplied base render and the fully decorated render
// stored in the catalog have this shape.
type RenderFunc func(ctx StoryContext) Renderable

// StoryFn is a zero-argument render thunk. Decorators receive one that
// invokes the next inner render, and exported catalog entries carry one
// bound to a default context.
type StoryFn func() Renderable

// Decorator wraps a render. It may call next zero, one or several times,
// or return its own value without calling it at all.
type Decorator func(next StoryFn, ctx StoryContext) Renderable

// DecorateStoryFunc folds a list of decorators around a base render.
type DecorateStoryFunc func(base RenderFunc, decorators []Decorator) RenderFunc

// KindRecord is one entry of the exported storybook.
type KindRecord struct {
	Kind     string
	FileName string
	Stories  []StoryRecord
}

// StoryRecord is a story of an exported kind. Render invokes the story's
// decorated render with a fresh default context.
type StoryRecord struct {
	Name   string
	Render StoryFn
}
