package styles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/storyreg/pkg/errors"
)

func TestDefaultThemeDefinesListingStyles(t *testing.T) {
	theme := Default()
	for _, name := range []string{"Header", "Kind", "Story", "FileName", "Output", "Warning"} {
		assert.True(t, theme.Has(name), "missing style %s", name)
	}
}

func TestLoad(t *testing.T) {
	data := []byte(`
colors:
  brand:
    light: "#000000"
    dark: "#FFFFFF"
styles:
  Title:
    bold: true
    foreground: brand
    align: center
    width: 20
`)
	theme, err := Load(data)
	require.NoError(t, err)

	assert.True(t, theme.Has("Title"))
	assert.False(t, theme.Has("Kind"))
	assert.True(t, theme.Get("Title").GetBold())
	assert.Equal(t, 20, theme.Get("Title").GetWidth())
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load([]byte("colors: [unclosed"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "styles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("styles:\n  Kind:\n    italic: true\n"), 0644))

	theme, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, theme.Get("Kind").GetItalic())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestGetUnknownReturnsEmptyStyle(t *testing.T) {
	theme := Default()
	assert.Equal(t, "plain", theme.Render("NoSuchStyle", "plain"))
}
