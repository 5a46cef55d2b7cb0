package demo

import (
	"fmt"

	"github.com/arthur-debert/storyreg/pkg/clientapi"
	"github.com/arthur-debert/storyreg/pkg/errors"
	"github.com/arthur-debert/storyreg/pkg/module"
	"github.com/arthur-debert/storyreg/pkg/types"
)

func globalParameters() types.Parameters {
	return types.Parameters{
		"layout": "centered",
		"backgrounds": map[string]any{
			"default": "light",
			"values":  []string{"light", "dark"},
		},
	}
}

// withFrame wraps every story in a frame honoring the layout parameter.
func withFrame(next types.StoryFn, ctx types.StoryContext) types.Renderable {
	layout, _ := ctx.Parameters["layout"].(string)
	return fmt.Sprintf(`<div class="frame" data-layout=%q>%v</div>`, layout, next())
}

func addons() map[string]clientapi.Addon {
	return map[string]clientapi.Addon{
		// addWithNotes(name, render, notes) adds a story with a notes parameter
		"addWithNotes": clientapi.AddonFunc(func(b *clientapi.Builder, args ...any) {
			if len(args) != 3 {
				b.Fail(errors.Newf(errors.ErrInvalidArgument, "addWithNotes takes 3 arguments, got %d", len(args)))
				return
			}
			name, _ := args[0].(string)
			render, ok := args[1].(types.RenderFunc)
			if !ok {
				b.Fail(errors.Newf(errors.ErrInvalidArgument, "addWithNotes: render must be a types.RenderFunc, got %T", args[1]))
				return
			}
			b.Add(name, render, types.Parameters{"notes": fmt.Sprint(args[2])})
		}),
	}
}

func button(class, label string) types.RenderFunc {
	return func(ctx types.StoryContext) types.Renderable {
		size, _ := ctx.Parameters["size"].(string)
		return fmt.Sprintf(`<button class=%q data-size=%q>%s</button>`, class, size, label)
	}
}

func registerButton(api *clientapi.ClientAPI, m *module.Ref, _ *Env) error {
	b, err := api.StoriesOf("Button", m)
	if err != nil {
		return err
	}
	b.AddParameters(types.Parameters{"size": "medium"}).
		Add("primary", button("primary", "Submit"), nil).
		Add("secondary", button("secondary", "Cancel"), nil).
		Add("large", button("primary", "Continue"), types.Parameters{"size": "large"}).
		Call("addWithNotes", "disabled", button("primary disabled", "Submit"), "Rendered while a form is invalid")
	return b.Err()
}

func registerBadge(api *clientapi.ClientAPI, m *module.Ref, _ *Env) error {
	b, err := api.StoriesOf("Badge", m)
	if err != nil {
		return err
	}
	b.AddDecorator(func(next types.StoryFn, ctx types.StoryContext) types.Renderable {
		return fmt.Sprintf(`<span class="badge-row">%v</span>`, next())
	}).
		Add("new", func(ctx types.StoryContext) types.Renderable {
			return `<span class="badge">new</span>`
		}, nil).
		Add("count", func(ctx types.StoryContext) types.Renderable {
			return fmt.Sprintf(`<span class="badge">%v</span>`, ctx.Parameters["count"])
		}, types.Parameters{"count": 7, "backgrounds": map[string]any{"default": "dark"}})
	return b.Err()
}

func registerKnobs(api *clientapi.ClientAPI, m *module.Ref, env *Env) error {
	b, err := api.StoriesOf("Knobs", m)
	if err != nil {
		return err
	}
	b.Add("editable label", func(ctx types.StoryContext) types.Renderable {
		env.Knobs.Announce()
		return fmt.Sprintf(`<button class="primary">%s</button>`, env.Knobs.Value("label", "Edit me"))
	}, nil).
		Add("static", func(ctx types.StoryContext) types.Renderable {
			return `<button class="primary">Static</button>`
		}, nil)
	return b.Err()
}
