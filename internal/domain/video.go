package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Video is one entry of the playlist.
//
// JSON names are the persisted and wire format; they must not change
// without migrating existing documents.
type Video struct {
	// ID is generated once at creation and never changes.
	ID string `json:"id"`

	// Name is the display name. Never blank.
	Name string `json:"nombre"`

	// Link is the playable URL, normalized to the embeddable form when possible.
	Link string `json:"link"`

	// Likes only ever increases.
	Likes int `json:"likes"`

	// Favorite marks the entry for the favorites view.
	Favorite bool `json:"favorito"`

	// AddedAt is set at creation.
	AddedAt Timestamp `json:"fechaAgregado"`
}

// NewVideo builds a fresh entry: new identifier, zero likes, not favorite.
func NewVideo(name, link string, now time.Time) *Video {
	return &Video{
		ID:      uuid.NewString(),
		Name:    name,
		Link:    NormalizeLink(link),
		AddedAt: Timestamp{now},
	}
}

// AddLike increments the like counter by one.
func (v *Video) AddLike() {
	v.Likes++
}

// ToggleFavorite flips the favorite flag.
func (v *Video) ToggleFavorite() {
	v.Favorite = !v.Favorite
}

// EmbedID returns the video identifier of an embeddable link, or "" if the link is not embeddable.
func (v *Video) EmbedID() string {
	if !strings.Contains(v.Link, embedMarker) {
		return ""
	}
	return v.Link[strings.LastIndex(v.Link, "/")+1:]
}

// Clone returns a copy that can be mutated without touching v.
func (v *Video) Clone() *Video {
	c := *v
	return &c
}
