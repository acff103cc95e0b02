package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MrSnakeDoc/playlist/internal/logger"
)

const (
	// MinTop and MaxTop bound the size of a top-by-likes ranking.
	MinTop = 1
	MaxTop = 100
)

// Repository persists the playlist. Implementations operate on the whole
// collection: every call reads it, mutations write it back entirely.
type Repository interface {
	ReadAll(ctx context.Context) ([]*Video, error)
	FindByID(ctx context.Context, id string) (*Video, bool, error)
	Save(ctx context.Context, v *Video) (*Video, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
	FindFavorites(ctx context.Context) ([]*Video, error)
	FindTopByLikes(ctx context.Context, limit int) ([]*Video, error)
}

// Observer is notified after successful mutations. Metrics hook in here.
type Observer interface {
	VideoAdded()
	VideoDeleted()
	LikeAdded()
	FavoriteToggled(favorite bool)
}

// Stats aggregates the whole collection.
type Stats struct {
	TotalVideos    int64 `json:"totalVideos"`
	TotalFavorites int64 `json:"totalFavoritos"`
	TotalLikes     int64 `json:"totalLikes"`
}

// Service holds the playlist rules on top of a Repository. It keeps no state of its own.
type Service struct {
	repo     Repository
	logger   logger.Logger
	observer Observer
	now      func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithObserver registers an Observer for mutations.
func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// WithClock overrides the time source used to stamp new entries.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a playlist service.
func NewService(repo Repository, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		logger:   log,
		observer: nopObserver{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every entry in storage order.
func (s *Service) List(ctx context.Context) ([]*Video, error) {
	s.logger.Debug("listing videos")
	return s.repo.ReadAll(ctx)
}

// Get returns the entry with the given id or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*Video, error) {
	s.logger.Debug("looking up video", logger.String("id", id))
	v, ok, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

// AddEntry validates the input, builds a new entry and persists it.
// Nothing is written when validation fails.
func (s *Service) AddEntry(ctx context.Context, name, link string) (*Video, error) {
	if err := validateEntry(name, link); err != nil {
		s.logger.Warn("rejected video", logger.String("reason", err.Error()))
		return nil, err
	}

	saved, err := s.repo.Save(ctx, NewVideo(name, link, s.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to save video: %w", err)
	}

	s.observer.VideoAdded()
	s.logger.Info("video added",
		logger.String("id", saved.ID),
		logger.String("name", saved.Name))
	return saved, nil
}

// DeleteEntry removes the entry and reports whether it existed.
func (s *Service) DeleteEntry(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete video: %w", err)
	}

	if !deleted {
		s.logger.Warn("video to delete not found", logger.String("id", id))
		return false, nil
	}

	s.observer.VideoDeleted()
	s.logger.Info("video deleted", logger.String("id", id))
	return true, nil
}

// AddLike increments the like counter of an entry.
func (s *Service) AddLike(ctx context.Context, id string) (*Video, error) {
	v, err := s.mutate(ctx, id, (*Video).AddLike)
	if err != nil {
		return nil, err
	}

	s.observer.LikeAdded()
	s.logger.Info("like added", logger.String("id", id), logger.Int("likes", v.Likes))
	return v, nil
}

// ToggleFavorite flips the favorite flag of an entry.
func (s *Service) ToggleFavorite(ctx context.Context, id string) (*Video, error) {
	v, err := s.mutate(ctx, id, (*Video).ToggleFavorite)
	if err != nil {
		return nil, err
	}

	s.observer.FavoriteToggled(v.Favorite)
	s.logger.Info("favorite toggled", logger.String("id", id), logger.Bool("favorite", v.Favorite))
	return v, nil
}

// Favorites returns the entries marked as favorite.
func (s *Service) Favorites(ctx context.Context) ([]*Video, error) {
	s.logger.Debug("listing favorites")
	return s.repo.FindFavorites(ctx)
}

// TopByLikes returns the n most liked entries, n clamped into [MinTop, MaxTop].
func (s *Service) TopByLikes(ctx context.Context, n int) ([]*Video, error) {
	n = ClampTop(n)
	s.logger.Debug("ranking videos by likes", logger.Int("n", n))
	return s.repo.FindTopByLikes(ctx, n)
}

// Statistics recomputes the aggregates over the full collection.
func (s *Service) Statistics(ctx context.Context) (Stats, error) {
	videos, err := s.repo.ReadAll(ctx)
	if err != nil {
		return Stats{}, err
	}

	var st Stats
	for _, v := range videos {
		st.TotalVideos++
		if v.Favorite {
			st.TotalFavorites++
		}
		st.TotalLikes += int64(v.Likes)
	}
	return st, nil
}

// ClampTop bounds a requested ranking size.
func ClampTop(n int) int {
	return min(max(n, MinTop), MaxTop)
}

// mutate loads an entry, applies fn and writes the collection back.
func (s *Service) mutate(ctx context.Context, id string, fn func(*Video)) (*Video, error) {
	v, ok, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Warn("video not found", logger.String("id", id))
		return nil, ErrNotFound
	}

	fn(v)

	if _, err := s.repo.Save(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to save video: %w", err)
	}
	return v, nil
}

func validateEntry(name, link string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Message: MsgEmptyName}
	}
	if strings.TrimSpace(link) == "" {
		return &ValidationError{Message: MsgEmptyLink}
	}
	if !IsVideoHostLink(link) {
		return &ValidationError{Message: MsgInvalidLink}
	}
	return nil
}

type nopObserver struct{}

func (nopObserver) VideoAdded()          {}
func (nopObserver) VideoDeleted()        {}
func (nopObserver) LikeAdded()           {}
func (nopObserver) FavoriteToggled(bool) {}
