package export

import (
	"fmt"

	"github.com/arthur-debert/storyreg/pkg/types"
)

// Listing is the serializable form of a storybook.
type Listing struct {
	Revision int    `json:"revision" yaml:"revision" toml:"revision"`
	Kinds    []Kind `json:"kinds" yaml:"kinds" toml:"kinds"`
}

// Kind is one kind of a Listing.
type Kind struct {
	Kind     string  `json:"kind" yaml:"kind" toml:"kind"`
	FileName string  `json:"fileName,omitempty" yaml:"fileName,omitempty" toml:"fileName,omitempty"`
	Stories  []Story `json:"stories" yaml:"stories" toml:"stories"`
}

// Story is one story of a Kind. Output holds the rendered value when the
// listing was built with rendering enabled.
type Story struct {
	Name   string `json:"name" yaml:"name" toml:"name"`
	Output string `json:"output,omitempty" yaml:"output,omitempty" toml:"output,omitempty"`
}

// FromStorybook converts storybook records. With render set, every bound
// render is invoked once and its result recorded as Output.
func FromStorybook(records []types.KindRecord, render bool) Listing {
	listing := Listing{Kinds: make([]Kind, 0, len(records))}
	for _, record := range records {
		kind := Kind{
			Kind:     record.Kind,
			FileName: record.FileName,
			Stories:  make([]Story, 0, len(record.Stories)),
		}
		for _, story := range record.Stories {
			s := Story{Name: story.Name}
			if render && story.Render != nil {
				s.Output = fmt.Sprint(story.Render())
			}
			kind.Stories = append(kind.Stories, s)
		}
		listing.Kinds = append(listing.Kinds, kind)
	}
	return listing
}

// StoryCount returns the number of stories across all kinds.
func (l Listing) StoryCount() int {
	n := 0
	for _, k := range l.Kinds {
		n += len(k.Stories)
	}
	return n
}
