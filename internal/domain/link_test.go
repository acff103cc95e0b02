package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLink(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "watch link",
			in:   "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want: "https://www.youtube.com/embed/dQw4w9WgXcQ",
		},
		{
			name: "watch link with extra parameters",
			in:   "https://www.youtube.com/watch?v=abc123&t=10s",
			want: "https://www.youtube.com/embed/abc123",
		},
		{
			name: "short link",
			in:   "https://youtu.be/xyz789",
			want: "https://www.youtube.com/embed/xyz789",
		},
		{
			name: "short link with query",
			in:   "https://youtu.be/xyz789?t=5",
			want: "https://www.youtube.com/embed/xyz789",
		},
		{
			name: "already embeddable",
			in:   "https://www.youtube.com/embed/abc123",
			want: "https://www.youtube.com/embed/abc123",
		},
		{
			name: "no extractable identifier",
			in:   "https://www.youtube.com/channel/UC123",
			want: "https://www.youtube.com/channel/UC123",
		},
		{
			name: "empty identifier left unchanged",
			in:   "https://www.youtube.com/watch?v=&t=1",
			want: "https://www.youtube.com/watch?v=&t=1",
		},
		{
			name: "empty short identifier left unchanged",
			in:   "https://youtu.be/?t=5",
			want: "https://youtu.be/?t=5",
		},
		{
			name: "empty link",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLink(tt.in))
		})
	}
}

func TestNormalizeLinkIsIdempotent(t *testing.T) {
	links := []string{
		"https://www.youtube.com/watch?v=abc123&t=10s",
		"https://youtu.be/xyz789",
		"https://www.youtube.com/embed/abc123",
		"https://www.youtube.com/playlist?list=PL1",
	}
	for _, l := range links {
		once := NormalizeLink(l)
		assert.Equal(t, once, NormalizeLink(once), l)
	}
}

func TestIsVideoHostLink(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://www.youtube.com/watch?v=a", true},
		{"https://youtu.be/a", true},
		{"https://m.youtube.com/watch?v=a", true},
		{"https://vimeo.com/123", false},
		{"not a url", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsVideoHostLink(tt.in))
		})
	}
}

func TestExtractVideoID(t *testing.T) {
	id, ok := ExtractVideoID("https://www.youtube.com/watch?v=abc123&list=x")
	assert.True(t, ok)
	assert.Equal(t, "abc123", id)

	id, ok = ExtractVideoID("https://youtu.be/short1?si=foo")
	assert.True(t, ok)
	assert.Equal(t, "short1", id)

	_, ok = ExtractVideoID("https://youtu.be/?si=foo")
	assert.False(t, ok)

	_, ok = ExtractVideoID("https://example.com/video")
	assert.False(t, ok)
}

func TestEmbedID(t *testing.T) {
	v := &Video{Link: "https://www.youtube.com/embed/abc123"}
	assert.Equal(t, "abc123", v.EmbedID())

	v = &Video{Link: "https://www.youtube.com/channel/UC123"}
	assert.Empty(t, v.EmbedID())
}
