package memory

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/playlist/internal/domain"
)

// Backend keeps the playlist document in process memory.
// Load hands out copies so callers can mutate entries freely before storing them back.
type Backend struct {
	mu        sync.RWMutex
	videos    []*domain.Video
	lastWrite time.Time
}

// New creates a backend, optionally seeded with videos.
func New(videos ...*domain.Video) *Backend {
	b := &Backend{}
	if len(videos) > 0 {
		b.videos = cloneAll(videos)
	}
	return b
}

// Load returns a snapshot of the collection.
func (b *Backend) Load(_ context.Context) ([]*domain.Video, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return cloneAll(b.videos), nil
}

// Store replaces the collection.
func (b *Backend) Store(_ context.Context, videos []*domain.Video) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.videos = cloneAll(videos)
	b.lastWrite = time.Now()
	return nil
}

// Ping always succeeds.
func (b *Backend) Ping(_ context.Context) error { return nil }

// Len returns the number of stored entries.
func (b *Backend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.videos)
}

// LastWrite returns when Store was last called, zero if never.
func (b *Backend) LastWrite() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.lastWrite
}

func cloneAll(videos []*domain.Video) []*domain.Video {
	out := make([]*domain.Video, 0, len(videos))
	for _, v := range videos {
		out = append(out, v.Clone())
	}
	return out
}
