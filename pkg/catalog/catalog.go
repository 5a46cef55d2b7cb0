// Package catalog stores registered stories, indexed by kind and story
// name, in registration order.
package catalog

import "github.com/arthur-debert/storyreg/pkg/types"

// Catalog is the story storage the registration engine writes into.
type Catalog interface {
	// HasStory reports whether kind contains a story called name
	HasStory(kind, name string) bool

	// AddStory stores a decorated render and its parameters. Adding a name
	// that already exists replaces the previous entry.
	AddStory(kind, name string, render types.RenderFunc, params types.Parameters)

	// RemoveStoryKind drops a kind and all of its stories
	RemoveStoryKind(kind string)

	// IncrementRevision bumps the revision counter used to invalidate
	// caches built from the catalog
	IncrementRevision()

	// Revision returns the current revision counter
	Revision() int

	// GetStoryKinds lists kinds that have at least one story
	GetStoryKinds() []string

	// GetStories lists the story names of kind
	GetStories(kind string) []string

	// GetStoryFileName returns the file name recorded for kind
	GetStoryFileName(kind string) (string, bool)

	// GetStoryWithContext returns a thunk rendering the story with its
	// default context, or nil if the story does not exist
	GetStoryWithContext(kind, name string) types.StoryFn

	// GetParameters returns a copy of the story's parameters, or nil
	GetParameters(kind, name string) types.Parameters
}
