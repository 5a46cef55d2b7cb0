// Package decorate folds decorators around a render function.
package decorate

import "github.com/arthur-debert/storyreg/pkg/types"

// Compose wraps base with each decorator in list order. The first
// decorator wraps base, the second wraps the first, and so on, so the last
// decorator in the list ends up outermost.
//
// Every decorator receives a thunk that renders the next inner layer with
// the context its own layer was invoked with.
func Compose(base types.RenderFunc, decorators []types.Decorator) types.RenderFunc {
	decorated := base
	for _, decorator := range decorators {
		inner := decorated
		d := decorator
		decorated = func(ctx types.StoryContext) types.Renderable {
			return d(func() types.Renderable { return inner(ctx) }, ctx)
		}
	}
	return decorated
}

// Ensure Compose satisfies the pluggable decorate signature
var _ types.DecorateStoryFunc = Compose
