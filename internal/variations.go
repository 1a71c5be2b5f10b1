package internal

import (
	"strings"

	"github.com/tidwall/gjson"
)

// listFieldNames are the wrapper keys models use around the variation list.
// Checked in order; the first key holding an array wins.
var listFieldNames = []string{"alternatives", "variations", "titles", "rewrites", "suggestions"}

// parsePath records which route produced the candidate list, for logging
type parsePath string

const (
	pathDirect   parsePath = "direct"
	pathEmbedded parsePath = "embedded"
)

// ParseVariations turns raw model output into title variations.
//
// Accepted shapes: a JSON array of {tone,title} objects; an object wrapping
// such an array under one of listFieldNames; a single {tone,title} object; or
// an object mapping tone names to either a title string or an object with a
// title field. Output wrapped in prose is retried on the first balanced JSON
// span it contains. Entries without both a tone and a title are dropped.
func ParseVariations(content string) ([]TitleVariation, error) {
	variations, _, err := parseVariations(content)
	return variations, err
}

func parseVariations(content string) ([]TitleVariation, parsePath, error) {
	doc, path, ok := locateJSON(content)
	if !ok {
		return nil, "", newExcerptError(KindUnparsableModelResponse, "", content)
	}

	variations := filterUsable(candidatesFrom(doc))
	if len(variations) == 0 {
		return nil, path, newExcerptError(KindNoUsableVariations, "", content)
	}
	return variations, path, nil
}

// locateJSON parses the whole content, or failing that its first embedded JSON span
func locateJSON(content string) (gjson.Result, parsePath, bool) {
	trimmed := strings.TrimSpace(content)
	if gjson.Valid(trimmed) {
		return gjson.Parse(trimmed), pathDirect, true
	}

	span, ok := firstEmbeddedJSON(content)
	if !ok {
		return gjson.Result{}, "", false
	}
	return gjson.Parse(span), pathEmbedded, true
}

// firstEmbeddedJSON returns the first balanced [...] or {...} span that is valid JSON.
// Brackets inside string literals do not count towards the balance.
func firstEmbeddedJSON(content string) (string, bool) {
	for start := 0; start < len(content); start++ {
		if content[start] != '[' && content[start] != '{' {
			continue
		}
		end := matchingClose(content, start)
		if end < 0 {
			continue
		}
		if span := content[start : end+1]; gjson.Valid(span) {
			return span, true
		}
	}
	return "", false
}

// matchingClose returns the index closing the bracket at start, or -1
func matchingClose(content string, start int) int {
	var (
		expected []byte
		inString bool
		escaped  bool
	)
	for i := start; i < len(content); i++ {
		c := content[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '[':
			expected = append(expected, ']')
		case '{':
			expected = append(expected, '}')
		case ']', '}':
			if len(expected) == 0 || expected[len(expected)-1] != c {
				return -1
			}
			expected = expected[:len(expected)-1]
			if len(expected) == 0 {
				return i
			}
		}
	}
	return -1
}

// candidatesFrom extracts unfiltered variations from any accepted shape
func candidatesFrom(doc gjson.Result) []TitleVariation {
	if doc.IsArray() {
		return fromList(doc)
	}
	if !doc.IsObject() {
		return nil
	}

	for _, name := range listFieldNames {
		if field := doc.Get(name); field.IsArray() {
			return fromList(field)
		}
	}

	// A lone variation, common when the endpoint forces a JSON object reply
	if doc.Get("tone").Type == gjson.String && doc.Get("title").Type == gjson.String {
		return []TitleVariation{{Tone: doc.Get("tone").Str, Title: doc.Get("title").Str}}
	}

	return fromToneMap(doc)
}

// fromList reads [{"tone": ..., "title": ...}, ...]
func fromList(list gjson.Result) []TitleVariation {
	var out []TitleVariation
	list.ForEach(func(_, item gjson.Result) bool {
		out = append(out, TitleVariation{
			Tone:  stringField(item, "tone"),
			Title: stringField(item, "title"),
		})
		return true
	})
	return out
}

// fromToneMap reads {"casual": "title", "formal": {"title": "title"}, ...} in document order
func fromToneMap(obj gjson.Result) []TitleVariation {
	var out []TitleVariation
	obj.ForEach(func(key, value gjson.Result) bool {
		var title string
		switch {
		case value.Type == gjson.String:
			title = value.Str
		case value.IsObject():
			title = stringField(value, "title")
		}
		out = append(out, TitleVariation{Tone: key.String(), Title: title})
		return true
	})
	return out
}

func stringField(obj gjson.Result, name string) string {
	if !obj.IsObject() {
		return ""
	}
	field := obj.Get(name)
	if field.Type != gjson.String {
		return ""
	}
	return field.Str
}

// filterUsable trims tone and title and drops entries missing either
func filterUsable(candidates []TitleVariation) []TitleVariation {
	usable := make([]TitleVariation, 0, len(candidates))
	for _, c := range candidates {
		c.Tone = strings.TrimSpace(c.Tone)
		c.Title = strings.TrimSpace(c.Title)
		if c.Tone == "" || c.Title == "" {
			continue
		}
		usable = append(usable, c)
	}
	return usable
}
