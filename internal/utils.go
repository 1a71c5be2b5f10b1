package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// SupportedModels lists the chat models accepted for title generation
var SupportedModels = []string{"gpt-4o", "gpt-4o-mini", "gpt-4.1", "gpt-4.1-mini", "gpt-4.1-nano"}

// lastTitleFile holds the most recently displayed title for regeneration
const lastTitleFile = "last_title"

// getTerminalWidth gets terminal width with fallback
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80
	}

	if width > 10 {
		return width - 4
	}

	return width
}

// IsTerminal reports whether stdout is an interactive terminal
func IsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// RenderMarkdown renders markdown content with glamour.
// Output that is not going to a terminal is returned unchanged.
func RenderMarkdown(content string) (string, error) {
	if !IsTerminal() {
		return content, nil
	}

	width := getTerminalWidth()
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.EnvColorProfile()),
	)
	if err != nil {
		return "", fmt.Errorf("creating terminal renderer: %w", err)
	}

	renderedContent, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	return renderedContent, nil
}

// FormatMetadataMarkdown renders a metadata record as markdown
func FormatMetadataMarkdown(metadata *VideoMetadata) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", metadata.Title)
	fmt.Fprintf(&sb, "**Channel:** %s  \n", metadata.ChannelName)
	fmt.Fprintf(&sb, "**Duration:** %s  \n", metadata.DurationDisplay)
	if metadata.ThumbnailURL != "" {
		fmt.Fprintf(&sb, "**Thumbnail:** %s  \n", metadata.ThumbnailURL)
	}
	return sb.String()
}

// FormatVariationsMarkdown renders variations as a numbered list
func FormatVariationsMarkdown(variations []TitleVariation) string {
	var sb strings.Builder
	sb.WriteString("## Title variations\n\n")
	for i, v := range variations {
		fmt.Fprintf(&sb, "%d. **%s**: %s\n", i+1, v.Tone, v.Title)
	}
	return sb.String()
}

// FileExists checks if a file exists
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

// EnsureDirs creates directories if needed
func EnsureDirs(dirs ...string) error {
	for _, dir := range dirs {
		if !FileExists(dir) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
		}
	}
	return nil
}

// ValidateModel checks if the model is supported
func ValidateModel(model string) error {
	if slices.Contains(SupportedModels, model) {
		return nil
	}
	return fmt.Errorf("unsupported model: %s (supported: %s)", model, strings.Join(SupportedModels, ", "))
}

// LastTitlePath returns the file holding the most recently displayed title
func LastTitlePath(stateDir string) string {
	return filepath.Join(stateDir, lastTitleFile)
}

// SaveLastTitle remembers title for a later regenerate
func SaveLastTitle(stateDir, title string) error {
	if err := EnsureDirs(stateDir); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	if err := os.WriteFile(LastTitlePath(stateDir), []byte(title), 0644); err != nil {
		return fmt.Errorf("saving last title: %w", err)
	}
	return nil
}

// LoadLastTitle returns the remembered title, or an error if nothing was loaded yet
func LoadLastTitle(stateDir string) (string, error) {
	data, err := os.ReadFile(LastTitlePath(stateDir))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("no video loaded yet - pass a title or load a video first")
		}
		return "", fmt.Errorf("reading last title: %w", err)
	}

	title := strings.TrimSpace(string(data))
	if title == "" {
		return "", fmt.Errorf("no video loaded yet - pass a title or load a video first")
	}
	return title, nil
}
