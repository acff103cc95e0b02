package domain

import (
	"regexp"
	"strings"
)

const (
	embedMarker  = "/embed/"
	embedBaseURL = "https://www.youtube.com/embed/"
)

// Host markers accepted for new entries.
var videoHostMarkers = []string{"youtube.com", "youtu.be"}

var (
	// https://www.youtube.com/watch?v=ID&t=10s -> ID
	watchPattern = regexp.MustCompile(`watch\?v=([^&]*)`)
	// https://youtu.be/ID?t=5 -> ID
	shortPattern = regexp.MustCompile(`youtu\.be/([^?]*)`)
)

// IsVideoHostLink reports whether link mentions one of the accepted video hosts.
func IsVideoHostLink(link string) bool {
	for _, marker := range videoHostMarkers {
		if strings.Contains(link, marker) {
			return true
		}
	}
	return false
}

// IsEmbeddable reports whether link is already in the embeddable form.
func IsEmbeddable(link string) bool {
	return strings.Contains(link, embedMarker)
}

// ExtractVideoID pulls the video identifier out of the query-parameter form
// (watch?v=ID) or the short-path form (youtu.be/ID). ok is false when neither
// shape matches or the identifier is empty.
func ExtractVideoID(link string) (id string, ok bool) {
	for _, re := range []*regexp.Regexp{watchPattern, shortPattern} {
		m := re.FindStringSubmatch(link)
		if m == nil {
			continue
		}
		if m[1] == "" {
			return "", false
		}
		return m[1], true
	}
	return "", false
}

// NormalizeLink rewrites a watch or short link to the embeddable URL.
// Embeddable links and links without an extractable identifier are returned unchanged.
func NormalizeLink(link string) string {
	if link == "" || IsEmbeddable(link) {
		return link
	}
	if id, ok := ExtractVideoID(link); ok {
		return embedBaseURL + id
	}
	return link
}
