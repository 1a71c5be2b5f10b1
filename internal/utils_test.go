package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastTitleRoundTrip(t *testing.T) {
	stateDir := filepath.Join(t.TempDir(), "state", "ytapp")

	_, err := LoadLastTitle(stateDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no video loaded yet")

	require.NoError(t, SaveLastTitle(stateDir, "Never Gonna Give You Up"))
	title, err := LoadLastTitle(stateDir)
	require.NoError(t, err)
	assert.Equal(t, "Never Gonna Give You Up", title)

	require.NoError(t, SaveLastTitle(stateDir, "Second Video"))
	title, err = LoadLastTitle(stateDir)
	require.NoError(t, err)
	assert.Equal(t, "Second Video", title)
}

func TestLoadLastTitleBlankFile(t *testing.T) {
	stateDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(stateDir, lastTitleFile), []byte("  \n"), 0644))

	_, err := LoadLastTitle(stateDir)
	require.Error(t, err)
}

func TestFormatMetadataMarkdown(t *testing.T) {
	md := FormatMetadataMarkdown(&VideoMetadata{
		Title:           "Never Gonna Give You Up",
		ChannelName:     "Rick Astley",
		DurationDisplay: "3:33",
		ThumbnailURL:    "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg",
	})

	assert.Contains(t, md, "# Never Gonna Give You Up\n")
	assert.Contains(t, md, "**Channel:** Rick Astley")
	assert.Contains(t, md, "**Duration:** 3:33")
	assert.Contains(t, md, "**Thumbnail:** https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg")

	noThumb := FormatMetadataMarkdown(&VideoMetadata{Title: "T", ChannelName: "C", DurationDisplay: "0:00"})
	assert.NotContains(t, noThumb, "Thumbnail")
}

func TestFormatVariationsMarkdown(t *testing.T) {
	md := FormatVariationsMarkdown([]TitleVariation{
		{Tone: "casual", Title: "First"},
		{Tone: "academic", Title: "Second"},
	})

	assert.Equal(t, "## Title variations\n\n1. **casual**: First\n2. **academic**: Second\n", md)
}

func TestValidateModel(t *testing.T) {
	assert.NoError(t, ValidateModel("gpt-4o-mini"))

	err := ValidateModel("gpt-2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported model: gpt-2")
}

func TestEnsureDirs(t *testing.T) {
	base := t.TempDir()
	a := filepath.Join(base, "a", "b")
	c := filepath.Join(base, "c")

	require.NoError(t, EnsureDirs(a, c, a))
	assert.DirExists(t, a)
	assert.DirExists(t, c)
}

func TestTitleVariationString(t *testing.T) {
	assert.Equal(t, "[casual] Hello", TitleVariation{Tone: "casual", Title: "Hello"}.String())
}

func TestWatchURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/watch?v=abc", VideoReference{ID: "abc"}.WatchURL())
}
