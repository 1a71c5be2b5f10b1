package internal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantID string
	}{
		{
			name:   "watch url",
			input:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantID: "dQw4w9WgXcQ",
		},
		{
			name:   "watch url with extra params",
			input:  "https://www.youtube.com/watch?list=PL123&v=dQw4w9WgXcQ&t=42s",
			wantID: "dQw4w9WgXcQ",
		},
		{
			name:   "mobile host",
			input:  "https://m.youtube.com/watch?v=abc123",
			wantID: "abc123",
		},
		{
			name:   "uppercase host",
			input:  "HTTPS://WWW.YOUTUBE.COM/watch?v=abc123",
			wantID: "abc123",
		},
		{
			name:   "short link",
			input:  "https://youtu.be/dQw4w9WgXcQ",
			wantID: "dQw4w9WgXcQ",
		},
		{
			name:   "short link with timestamp",
			input:  "https://youtu.be/dQw4w9WgXcQ?t=10&si=xyz",
			wantID: "dQw4w9WgXcQ",
		},
		{
			name:   "embed url",
			input:  "https://www.youtube.com/embed/dQw4w9WgXcQ",
			wantID: "dQw4w9WgXcQ",
		},
		{
			name:   "embed url with params and trailing segment",
			input:  "https://www.youtube.com/embed/dQw4w9WgXcQ/extra?start=5&autoplay=1",
			wantID: "dQw4w9WgXcQ",
		},
		{
			name:   "surrounding whitespace",
			input:  "  https://youtu.be/dQw4w9WgXcQ \n",
			wantID: "dQw4w9WgXcQ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ResolveURL(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, ref.ID)
		})
	}
}

func TestResolveURLMalformed(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"not a url",
		"dQw4w9WgXcQ",
		"www.youtube.com/watch?v=dQw4w9WgXcQ",
		"://missing-scheme",
		"http://",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ResolveURL(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedURL), "got %v", err)
		})
	}
}

func TestResolveURLUnsupported(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"watch without id", "https://www.youtube.com/watch"},
		{"watch with empty id", "https://www.youtube.com/watch?v="},
		{"watch with other params only", "https://www.youtube.com/watch?list=PL123"},
		{"short link without path", "https://youtu.be/"},
		{"embed without id", "https://www.youtube.com/embed/"},
		{"channel page", "https://www.youtube.com/@somechannel"},
		{"shorts", "https://www.youtube.com/shorts/dQw4w9WgXcQ"},
		{"other site", "https://vimeo.com/123456"},
		{"short link domain as subdomain", "https://www.youtu.be/dQw4w9WgXcQ"},
		{"opaque url", "mailto:someone@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ResolveURL(tt.input)
			require.Error(t, err)
			assert.Equal(t, KindUnsupportedURLShape, KindOf(err))
			assert.Empty(t, ref.ID)
		})
	}
}

func TestResolveURLIsDeterministic(t *testing.T) {
	input := "https://youtu.be/dQw4w9WgXcQ"
	first, err := ResolveURL(input)
	require.NoError(t, err)
	for range 3 {
		again, err := ResolveURL(input)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestNormalizeArg(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", NormalizeArg("dQw4w9WgXcQ"))
	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", NormalizeArg("https://youtu.be/dQw4w9WgXcQ"))
	assert.Equal(t, "too-short", NormalizeArg("too-short"))
}

func TestIsValidYouTubeID(t *testing.T) {
	assert.True(t, IsValidYouTubeID("dQw4w9WgXcQ"))
	assert.True(t, IsValidYouTubeID("a_b-c_d-e_f"))
	assert.False(t, IsValidYouTubeID("dQw4w9WgXc"))
	assert.False(t, IsValidYouTubeID("dQw4w9WgXcQQ"))
	assert.False(t, IsValidYouTubeID("dQw4w9WgX!Q"))
}
