package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/playlist/internal/domain"
)

// Backend stores the whole playlist document as one JSON value in Redis.
// Same read-modify-write semantics as the file backend: no WATCH, no MULTI.
type Backend struct {
	client *goredis.Client
	key    string
}

// New creates a Redis backend writing under key (DefaultDocumentKey when empty).
func New(client *goredis.Client, key string) *Backend {
	return &Backend{
		client: client,
		key:    DocumentKey(key),
	}
}

// Key returns the Redis key holding the document.
func (b *Backend) Key() string { return b.key }

// Load fetches and decodes the document. A missing key is an empty collection.
func (b *Backend) Load(ctx context.Context) ([]*domain.Video, error) {
	data, err := b.client.Get(ctx, b.key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get videos: %w", err)
	}

	var videos []*domain.Video
	if err := json.Unmarshal(data, &videos); err != nil {
		return nil, fmt.Errorf("failed to unmarshal videos: %w", err)
	}
	return videos, nil
}

// Store encodes and writes the document without expiry.
func (b *Backend) Store(ctx context.Context, videos []*domain.Video) error {
	if videos == nil {
		videos = []*domain.Video{}
	}
	data, err := json.Marshal(videos)
	if err != nil {
		return fmt.Errorf("failed to marshal videos: %w", err)
	}
	if err := b.client.Set(ctx, b.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save videos: %w", err)
	}
	return nil
}

// Ping checks the connection.
func (b *Backend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}
