package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/charmbracelet/glamour"
	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/storyreg/pkg/errors"
	"github.com/arthur-debert/storyreg/pkg/ui"
	"github.com/arthur-debert/storyreg/pkg/ui/styles"
)

// Options tune the human-readable encoders.
type Options struct {
	// Theme styles FormatTerminal output; nil uses styles.Default()
	Theme *styles.Theme

	// Styled renders markdown through glamour
	Styled bool

	// WordWrap is the glamour wrap width; 0 keeps glamour's default
	WordWrap int
}

// Encode writes listing to w in format. FormatAuto must be resolved by
// the caller (see ui.Resolve).
func Encode(w io.Writer, listing Listing, format ui.Format, opts Options) error {
	var err error
	switch format {
	case ui.FormatJSON:
		err = encodeJSON(w, listing)
	case ui.FormatYAML:
		err = encodeYAML(w, listing)
	case ui.FormatTOML:
		err = toml.NewEncoder(w).Encode(listing)
	case ui.FormatXML:
		err = encodeXML(w, listing)
	case ui.FormatText:
		_, err = io.WriteString(w, Text(listing, nil))
	case ui.FormatTerminal:
		theme := opts.Theme
		if theme == nil {
			theme = styles.Default()
		}
		_, err = io.WriteString(w, Text(listing, theme))
	case ui.FormatTable:
		err = encodeTable(w, listing)
	case ui.FormatMarkdown:
		_, err = io.WriteString(w, renderMarkdown(Markdown(listing), opts))
	default:
		return errors.Newf(errors.ErrExportFormat, "cannot encode listing as %s", format).
			WithDetail("format", format.String())
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrExportWrite, "failed to write %s listing", format)
	}
	return nil
}

func encodeJSON(w io.Writer, listing Listing) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(listing)
}

func encodeYAML(w io.Writer, listing Listing) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(listing); err != nil {
		return err
	}
	return enc.Close()
}

// encodeXML writes
//
//	<storybook revision="N">
//	  <kind name="Button" fileName="button.stories">
//	    <story name="primary">output</story>
//	  </kind>
//	</storybook>
func encodeXML(w io.Writer, listing Listing) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("storybook")
	root.CreateAttr("revision", fmt.Sprint(listing.Revision))
	for _, kind := range listing.Kinds {
		el := root.CreateElement("kind")
		el.CreateAttr("name", kind.Kind)
		if kind.FileName != "" {
			el.CreateAttr("fileName", kind.FileName)
		}
		for _, story := range kind.Stories {
			s := el.CreateElement("story")
			s.CreateAttr("name", story.Name)
			if story.Output != "" {
				s.SetText(story.Output)
			}
		}
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}

func encodeTable(w io.Writer, listing Listing) error {
	data := pterm.TableData{{"Kind", "Story", "File", "Output"}}
	for _, kind := range listing.Kinds {
		for _, story := range kind.Stories {
			data = append(data, []string{kind.Kind, story.Name, kind.FileName, story.Output})
		}
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out+"\n")
	return err
}

// Text renders the listing as an indented outline. A nil theme renders
// plain text.
func Text(listing Listing, theme *styles.Theme) string {
	style := func(name, text string) string {
		if theme == nil {
			return text
		}
		return theme.Render(name, text)
	}

	var sb strings.Builder
	if len(listing.Kinds) == 0 {
		sb.WriteString(style("Warning", "No stories registered"))
		sb.WriteString("\n")
		return sb.String()
	}

	for _, kind := range listing.Kinds {
		sb.WriteString(style("Kind", kind.Kind))
		if kind.FileName != "" {
			sb.WriteString(" ")
			sb.WriteString(style("FileName", "("+kind.FileName+")"))
		}
		sb.WriteString("\n")
		for _, story := range kind.Stories {
			sb.WriteString(style("Story", "  "+story.Name))
			sb.WriteString("\n")
			if story.Output != "" {
				sb.WriteString(style("Output", "    "+story.Output))
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}

// Markdown renders the listing as a markdown document.
func Markdown(listing Listing) string {
	var sb strings.Builder
	sb.WriteString("# Storybook\n")
	for _, kind := range listing.Kinds {
		sb.WriteString("\n## ")
		sb.WriteString(kind.Kind)
		sb.WriteString("\n\n")
		if kind.FileName != "" {
			fmt.Fprintf(&sb, "_%s_\n\n", kind.FileName)
		}
		for _, story := range kind.Stories {
			if story.Output != "" {
				fmt.Fprintf(&sb, "- **%s**: `%s`\n", story.Name, story.Output)
				continue
			}
			fmt.Fprintf(&sb, "- **%s**\n", story.Name)
		}
	}
	return sb.String()
}

// renderMarkdown styles content with glamour when opts.Styled is set,
// falling back to the raw markdown on error.
func renderMarkdown(content string, opts Options) string {
	if !opts.Styled {
		return content
	}

	options := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if opts.WordWrap > 0 {
		options = append(options, glamour.WithWordWrap(opts.WordWrap))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
