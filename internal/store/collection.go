// Package store implements domain.Repository over a whole-document backend.
//
// Every operation loads the full collection; every mutation writes the full
// collection back. There is no locking: two concurrent read-modify-write
// cycles race and the last writer wins. The service targets a single
// interactive user and keeps that limitation on purpose.
package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/MrSnakeDoc/playlist/internal/domain"
	"github.com/MrSnakeDoc/playlist/internal/logger"
)

// Backend loads and stores the whole playlist document.
type Backend interface {
	// Load returns the stored collection. A missing document is an empty collection, not an error.
	Load(ctx context.Context) ([]*domain.Video, error)
	// Store replaces the stored collection.
	Store(ctx context.Context, videos []*domain.Video) error
	// Ping reports whether the backend is usable.
	Ping(ctx context.Context) error
}

// Options tunes a Collection.
type Options struct {
	// StrictReads surfaces load failures instead of degrading to an empty collection.
	StrictReads bool
}

// Collection is the playlist repository.
type Collection struct {
	backend Backend
	logger  logger.Logger
	opts    Options
}

var _ domain.Repository = (*Collection)(nil)

// NewCollection wraps a backend.
func NewCollection(backend Backend, log logger.Logger, opts Options) *Collection {
	return &Collection{
		backend: backend,
		logger:  log,
		opts:    opts,
	}
}

// ReadAll returns every entry. Unless StrictReads is set, a failing load is
// logged and reported as an empty collection.
func (c *Collection) ReadAll(ctx context.Context) ([]*domain.Video, error) {
	videos, err := c.backend.Load(ctx)
	if err != nil {
		if c.opts.StrictReads {
			return nil, fmt.Errorf("failed to read videos: %w", err)
		}
		c.logger.Warn("failed to read videos, treating collection as empty", logger.Error(err))
		return []*domain.Video{}, nil
	}
	// A null element decodes to a nil entry.
	videos = slices.DeleteFunc(videos, func(v *domain.Video) bool { return v == nil })
	if videos == nil {
		videos = []*domain.Video{}
	}
	return videos, nil
}

// FindByID scans the collection for id.
func (c *Collection) FindByID(ctx context.Context, id string) (*domain.Video, bool, error) {
	videos, err := c.ReadAll(ctx)
	if err != nil {
		return nil, false, err
	}
	for _, v := range videos {
		if v.ID == id {
			return v, true, nil
		}
	}
	return nil, false, nil
}

// Save replaces the entry with the same id, or appends it, then writes the collection.
func (c *Collection) Save(ctx context.Context, video *domain.Video) (*domain.Video, error) {
	videos, err := c.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	idx := slices.IndexFunc(videos, func(v *domain.Video) bool { return v.ID == video.ID })
	if idx >= 0 {
		videos[idx] = video
	} else {
		videos = append(videos, video)
	}

	if err := c.backend.Store(ctx, videos); err != nil {
		return nil, fmt.Errorf("failed to write videos: %w", err)
	}
	return video, nil
}

// DeleteByID removes the entry with id. The collection is only written when something was removed.
func (c *Collection) DeleteByID(ctx context.Context, id string) (bool, error) {
	videos, err := c.ReadAll(ctx)
	if err != nil {
		return false, err
	}

	before := len(videos)
	videos = slices.DeleteFunc(videos, func(v *domain.Video) bool { return v.ID == id })
	if len(videos) == before {
		return false, nil
	}

	if err := c.backend.Store(ctx, videos); err != nil {
		return false, fmt.Errorf("failed to write videos: %w", err)
	}
	return true, nil
}

// FindFavorites returns entries flagged as favorite, in storage order.
func (c *Collection) FindFavorites(ctx context.Context) ([]*domain.Video, error) {
	videos, err := c.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	favorites := make([]*domain.Video, 0, len(videos))
	for _, v := range videos {
		if v.Favorite {
			favorites = append(favorites, v)
		}
	}
	return favorites, nil
}

// FindTopByLikes returns at most limit entries, most liked first.
// Equal like counts keep their storage order.
func (c *Collection) FindTopByLikes(ctx context.Context, limit int) ([]*domain.Video, error) {
	videos, err := c.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(videos, func(a, b *domain.Video) int {
		return cmp.Compare(b.Likes, a.Likes)
	})

	if limit >= 0 && len(videos) > limit {
		videos = videos[:limit]
	}
	return videos, nil
}

// Count returns the number of stored entries.
func (c *Collection) Count(ctx context.Context) (int, error) {
	videos, err := c.ReadAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(videos), nil
}

// DeleteAll empties the collection.
func (c *Collection) DeleteAll(ctx context.Context) error {
	if err := c.backend.Store(ctx, []*domain.Video{}); err != nil {
		return fmt.Errorf("failed to clear videos: %w", err)
	}
	return nil
}

// Ping checks the backend.
func (c *Collection) Ping(ctx context.Context) error {
	return c.backend.Ping(ctx)
}
