package internal

import (
	"fmt"
)

// VideoReference identifies one video on the platform
type VideoReference struct {
	ID string `json:"id"`
}

// WatchURL returns the canonical watch URL for the reference
func (r VideoReference) WatchURL() string {
	return "https://www.youtube.com/watch?v=" + r.ID
}

// VideoMetadata is the normalized record built from one metadata lookup
type VideoMetadata struct {
	Title           string `json:"title"`
	ChannelName     string `json:"channel_name"`
	DurationDisplay string `json:"duration"`
	ThumbnailURL    string `json:"thumbnail_url"`
	Description     string `json:"description,omitempty"`
}

// TitleVariation is one rewrite of a title in a named tone
type TitleVariation struct {
	Tone  string `json:"tone"`
	Title string `json:"title"`
}

// String returns a formatted representation of the variation
func (v TitleVariation) String() string {
	return fmt.Sprintf("[%s] %s", v.Tone, v.Title)
}

// VideoReport is the result of the load-a-video sequence
type VideoReport struct {
	Video      VideoReference   `json:"video"`
	Metadata   *VideoMetadata   `json:"metadata,omitempty"`
	Variations []TitleVariation `json:"variations,omitempty"`
}
