// Package clientapi is the story registration surface.
//
// A ClientAPI owns the global decorators, global parameters and addons
// shared by every kind. StoriesOf returns a Builder scoped to one kind;
// each Builder.Add composes the story's render with the local decorators,
// the global decorators and a subscription-tracking wrapper (outermost),
// merges global, local and per-story parameters, and writes the result to
// the catalog:
//
//	api := clientapi.New()
//	api.AddDecorator(withTheme)
//
//	b, err := api.StoriesOf("Button", module.New("button.stories"))
//	if err != nil {
//		return err
//	}
//	b.AddParameters(types.Parameters{"layout": "centered"}).
//		Add("primary", renderPrimary, nil).
//		Add("disabled", renderDisabled, types.Parameters{"disabled": true})
//	if err := b.Err(); err != nil {
//		return err
//	}
//
// GetStorybook projects the catalog into kinds and bound renders.
package clientapi
