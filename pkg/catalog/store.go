package catalog

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/storyreg/pkg/channel"
	"github.com/arthur-debert/storyreg/pkg/registry"
	"github.com/arthur-debert/storyreg/pkg/types"
)

type kindEntry struct {
	kind     string
	fileName string
	stories  registry.Registry[*storyEntry]
}

type storyEntry struct {
	name   string
	render types.RenderFunc
	params types.Parameters
}

// Store is the in-memory Catalog. Kinds are listed in the order they were
// created and stories in the order they were last added, so re-adding a
// story moves it to the end of its kind.
type Store struct {
	mu       sync.RWMutex
	kinds    registry.Registry[*kindEntry]
	revision int
	channel  channel.Channel
	logger   zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithChannel makes the store emit channel.EventStoryAdded after each add.
func WithChannel(ch channel.Channel) Option {
	return func(s *Store) { s.channel = ch }
}

// WithLogger sets the store's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		kinds:  registry.New[*kindEntry](),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ Catalog = (*Store)(nil)

// HasStory implements Catalog.
func (s *Store) HasStory(kind, name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.kind(kind)
	return ok && entry.stories.Has(name)
}

// AddStory implements Catalog. The kind's file name is taken from the
// fileName parameter of the first story added to it.
func (s *Store) AddStory(kind, name string, render types.RenderFunc, params types.Parameters) {
	s.mu.Lock()
	entry, ok := s.kind(kind)
	if !ok {
		fileName, _ := params.FileName()
		entry = &kindEntry{
			kind:     kind,
			fileName: fileName,
			stories:  registry.New[*storyEntry](),
		}
		_ = s.kinds.Register(kind, entry)
	}
	if entry.stories.Has(name) {
		_ = entry.stories.Remove(name)
	}
	_ = entry.stories.Register(name, &storyEntry{name: name, render: render, params: params})
	s.mu.Unlock()

	s.logger.Debug().Str("kind", kind).Str("story", name).Msg("Story stored")
	if s.channel != nil {
		s.channel.Emit(channel.EventStoryAdded, kind, name)
	}
}

// RemoveStoryKind implements Catalog.
func (s *Store) RemoveStoryKind(kind string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kinds.Remove(kind); err == nil {
		s.logger.Debug().Str("kind", kind).Msg("Kind removed")
	}
}

// IncrementRevision implements Catalog.
func (s *Store) IncrementRevision() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revision++
}

// Revision implements Catalog.
func (s *Store) Revision() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// GetStoryKinds implements Catalog.
func (s *Store) GetStoryKinds() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var kinds []string
	for _, name := range s.kinds.List() {
		entry, ok := s.kind(name)
		if ok && entry.stories.Count() > 0 {
			kinds = append(kinds, name)
		}
	}
	return kinds
}

// GetStories implements Catalog.
func (s *Store) GetStories(kind string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.kind(kind)
	if !ok {
		return nil
	}
	return entry.stories.List()
}

// GetStoryFileName implements Catalog.
func (s *Store) GetStoryFileName(kind string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.kind(kind)
	if !ok || entry.fileName == "" {
		return "", false
	}
	return entry.fileName, true
}

// GetStoryWithContext implements Catalog. Each call of the returned thunk
// renders with a fresh context holding a copy of the story's parameters.
func (s *Store) GetStoryWithContext(kind, name string) types.StoryFn {
	story, ok := s.story(kind, name)
	if !ok {
		return nil
	}
	return func() types.Renderable {
		return story.render(types.StoryContext{
			Kind:       kind,
			Story:      name,
			Parameters: story.params.Clone(),
		})
	}
}

// GetParameters implements Catalog.
func (s *Store) GetParameters(kind, name string) types.Parameters {
	story, ok := s.story(kind, name)
	if !ok {
		return nil
	}
	return story.params.Clone()
}

func (s *Store) story(kind, name string) (*storyEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.kind(kind)
	if !ok {
		return nil, false
	}
	story, err := entry.stories.Get(name)
	if err != nil {
		return nil, false
	}
	return story, true
}

// kind looks up a kind entry; callers hold s.mu.
func (s *Store) kind(kind string) (*kindEntry, bool) {
	entry, err := s.kinds.Get(kind)
	if err != nil {
		return nil, false
	}
	return entry, true
}
