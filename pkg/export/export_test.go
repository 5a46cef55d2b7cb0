package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/beevik/etree"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/storyreg/pkg/errors"
	"github.com/arthur-debert/storyreg/pkg/types"
	"github.com/arthur-debert/storyreg/pkg/ui"
)

func sampleRecords(calls *int) []types.KindRecord {
	return []types.KindRecord{
		{
			Kind:     "Button",
			FileName: "button.stories",
			Stories: []types.StoryRecord{
				{Name: "primary", Render: func() types.Renderable { *calls++; return "<button>primary</button>" }},
				{Name: "disabled", Render: func() types.Renderable { *calls++; return 42 }},
			},
		},
		{
			Kind: "Loose",
			Stories: []types.StoryRecord{
				{Name: "only", Render: func() types.Renderable { *calls++; return nil }},
			},
		},
	}
}

func sampleListing(t *testing.T) Listing {
	t.Helper()
	calls := 0
	listing := FromStorybook(sampleRecords(&calls), true)
	listing.Revision = 3
	return listing
}

func TestFromStorybook(t *testing.T) {
	calls := 0

	listing := FromStorybook(sampleRecords(&calls), false)
	assert.Equal(t, 0, calls, "renders are not invoked")
	assert.Equal(t, 3, listing.StoryCount())
	assert.Empty(t, listing.Kinds[0].Stories[0].Output)

	listing = FromStorybook(sampleRecords(&calls), true)
	assert.Equal(t, 3, calls)
	assert.Equal(t, Listing{Kinds: []Kind{
		{
			Kind:     "Button",
			FileName: "button.stories",
			Stories: []Story{
				{Name: "primary", Output: "<button>primary</button>"},
				{Name: "disabled", Output: "42"},
			},
		},
		{
			Kind:    "Loose",
			Stories: []Story{{Name: "only", Output: "<nil>"}},
		},
	}}, listing)
}

func TestFromStorybookEmpty(t *testing.T) {
	listing := FromStorybook(nil, true)
	assert.NotNil(t, listing.Kinds)
	assert.Equal(t, 0, listing.StoryCount())
}

func TestEncodeJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleListing(t), ui.FormatJSON, Options{}))

	var decoded Listing
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleListing(t), decoded)
	assert.NotContains(t, buf.String(), `"fileName": ""`)
}

func TestEncodeYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleListing(t), ui.FormatYAML, Options{}))

	var decoded Listing
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleListing(t), decoded)
}

func TestEncodeTOML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleListing(t), ui.FormatTOML, Options{}))

	var decoded Listing
	require.NoError(t, toml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleListing(t), decoded)
}

func TestEncodeXML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleListing(t), ui.FormatXML, Options{}))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(buf.Bytes()))

	root := doc.SelectElement("storybook")
	require.NotNil(t, root)
	assert.Equal(t, "3", root.SelectAttrValue("revision", ""))

	kinds := root.SelectElements("kind")
	require.Len(t, kinds, 2)
	assert.Equal(t, "Button", kinds[0].SelectAttrValue("name", ""))
	assert.Equal(t, "button.stories", kinds[0].SelectAttrValue("fileName", ""))
	assert.Nil(t, kinds[1].SelectAttr("fileName"))

	stories := kinds[0].SelectElements("story")
	require.Len(t, stories, 2)
	assert.Equal(t, "primary", stories[0].SelectAttrValue("name", ""))
	assert.Equal(t, "<button>primary</button>", stories[0].Text())
}

func TestEncodeText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleListing(t), ui.FormatText, Options{}))

	assert.Equal(t, `Button (button.stories)
  primary
    <button>primary</button>
  disabled
    42
Loose
  only
    <nil>
`, buf.String())
}

func TestEncodeTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, Listing{}, ui.FormatText, Options{}))
	assert.Equal(t, "No stories registered\n", buf.String())
}

func TestEncodeTerminal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleListing(t), ui.FormatTerminal, Options{}))

	assert.Contains(t, buf.String(), "Button")
	assert.Contains(t, buf.String(), "primary")
	assert.Contains(t, buf.String(), "button.stories")
}

func TestEncodeTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleListing(t), ui.FormatTable, Options{}))

	for _, want := range []string{"Kind", "Story", "Button", "primary", "disabled", "Loose", "only"} {
		assert.Contains(t, buf.String(), want)
	}
}

func TestEncodeMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleListing(t), ui.FormatMarkdown, Options{}))

	out := buf.String()
	assert.Contains(t, out, "# Storybook")
	assert.Contains(t, out, "## Button")
	assert.Contains(t, out, "_button.stories_")
	assert.Contains(t, out, "- **primary**: `<button>primary</button>`")
}

func TestEncodeStyledMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleListing(t), ui.FormatMarkdown, Options{Styled: true, WordWrap: 60}))

	assert.Contains(t, buf.String(), "Button")
	assert.Contains(t, buf.String(), "primary")
}

func TestEncodeUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, sampleListing(t), ui.FormatAuto, Options{})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrExportFormat))
	assert.Empty(t, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, assert.AnError }

func TestEncodeWriteError(t *testing.T) {
	err := Encode(failingWriter{}, sampleListing(t), ui.FormatText, Options{})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrExportWrite))
}
