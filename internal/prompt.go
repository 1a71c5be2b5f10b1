package internal

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
)

// DefaultSystemPrompt instructs the model to rewrite one title in four tones
const DefaultSystemPrompt = `You rewrite YouTube video titles.

Given one title, produce exactly four alternative titles, one for each of these tones:
- casual: relaxed and conversational
- professional: clear, neutral and businesslike
- clickbait: attention-grabbing but never misleading about the content
- academic: precise and scholarly

Respond with a JSON array of objects, each with a "tone" field and a "title" field, for example:
[{"tone": "casual", "title": "..."}, {"tone": "professional", "title": "..."}]

Return only the JSON. No prose, no markdown, no code fences.`

// defaultUserTemplate embeds the source title in the user message
const defaultUserTemplate = `Original title: {{.Title}}`

// PromptData for template injection
type PromptData struct {
	Title string
}

// PromptManager builds the instruction and user messages for title generation
type PromptManager struct {
	promptFile   string
	promptString string
}

// NewPromptManager creates a prompt manager. promptSetting may be a file path,
// an inline instruction, or empty for the built-in instruction.
func NewPromptManager(promptSetting string) *PromptManager {
	pm := &PromptManager{}

	if promptSetting != "" {
		if IsLikelyFilePath(promptSetting) && FileExists(promptSetting) {
			pm.promptFile = promptSetting
		} else {
			pm.promptString = promptSetting
		}
	}

	return pm
}

// SystemPrompt returns the instruction message
func (pm *PromptManager) SystemPrompt() (string, error) {
	if pm.promptString != "" {
		return pm.promptString, nil
	}
	if pm.promptFile == "" {
		return DefaultSystemPrompt, nil
	}

	content, err := os.ReadFile(pm.promptFile)
	if err != nil {
		return "", fmt.Errorf("reading prompt file: %w", err)
	}
	return string(content), nil
}

// UserPrompt renders the user message for a source title
func (pm *PromptManager) UserPrompt(title string) (string, error) {
	tmpl, err := template.New("user").Parse(defaultUserTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing prompt template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, PromptData{Title: title}); err != nil {
		return "", fmt.Errorf("executing prompt template: %w", err)
	}
	return buf.String(), nil
}

// IsLikelyFilePath uses heuristics to determine if a string is likely a file path
func IsLikelyFilePath(s string) bool {
	if strings.Contains(s, "/") || strings.Contains(s, "\\") {
		return true
	}

	if strings.HasSuffix(s, ".txt") || strings.HasSuffix(s, ".md") || strings.HasSuffix(s, ".tmpl") {
		return true
	}

	// Long strings are prompts, not paths
	if len(s) > 200 {
		return false
	}

	return !strings.Contains(s, " ") && !strings.Contains(s, "\n")
}
