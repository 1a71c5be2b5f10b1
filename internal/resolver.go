package internal

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	primaryDomain   = "youtube.com"
	shortLinkDomain = "youtu.be"
	watchPath       = "/watch"
	embedPrefix     = "/embed/"
	videoIDParam    = "v"
)

var youtubeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ResolveURL extracts the video identifier from a watch, short-link or embed URL.
// Shapes are tried in that order and the first match wins.
func ResolveURL(text string) (VideoReference, error) {
	u, err := url.Parse(strings.TrimSpace(text))
	if err != nil || u.Scheme == "" || (u.Opaque == "" && u.Host == "" && u.Path == "") {
		return VideoReference{}, newError(KindMalformedURL, "", err)
	}

	host := strings.ToLower(u.Hostname())

	if strings.Contains(host, primaryDomain) && u.Path == watchPath {
		if id := u.Query().Get(videoIDParam); id != "" {
			return VideoReference{ID: id}, nil
		}
	}

	if host == shortLinkDomain {
		if id := strings.TrimPrefix(u.Path, "/"); id != "" {
			return VideoReference{ID: id}, nil
		}
	}

	if strings.Contains(host, primaryDomain) && strings.HasPrefix(u.Path, embedPrefix) {
		segment := strings.TrimPrefix(u.Path, embedPrefix)
		if i := strings.Index(segment, "/"); i >= 0 {
			segment = segment[:i]
		}
		if segment != "" {
			return VideoReference{ID: segment}, nil
		}
	}

	return VideoReference{}, newError(KindUnsupportedURLShape, "", nil)
}

// IsValidYouTubeID checks if a string looks like a bare YouTube video ID
func IsValidYouTubeID(id string) bool {
	return youtubeIDPattern.MatchString(id)
}

// NormalizeArg turns a bare video ID into a watch URL; anything else is returned unchanged
func NormalizeArg(arg string) string {
	arg = strings.TrimSpace(arg)
	if IsValidYouTubeID(arg) {
		return VideoReference{ID: arg}.WatchURL()
	}
	return arg
}
