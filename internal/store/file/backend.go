package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MrSnakeDoc/playlist/internal/domain"
)

// DefaultPath is where the playlist document lives unless configured otherwise.
const DefaultPath = "data/videos.json"

// Backend keeps the playlist as a pretty-printed JSON array in one file.
// Writes overwrite the file in place; they are not atomic.
type Backend struct {
	path string
}

// New returns a backend for path and makes sure the document exists,
// creating parent directories and an empty array when it does not.
func New(path string) (*Backend, error) {
	if path == "" {
		path = DefaultPath
	}
	b := &Backend{path: path}
	if err := b.init(); err != nil {
		return nil, err
	}
	return b, nil
}

// Path returns the document location.
func (b *Backend) Path() string { return b.path }

func (b *Backend) init() error {
	_, err := os.Stat(b.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat data file: %w", err)
	}

	if dir := filepath.Dir(b.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	return b.write([]*domain.Video{})
}

// Load parses the document. A missing file is an empty collection.
func (b *Backend) Load(_ context.Context) ([]*domain.Video, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	var videos []*domain.Video
	if err := json.Unmarshal(data, &videos); err != nil {
		return nil, fmt.Errorf("failed to parse data file: %w", err)
	}
	return videos, nil
}

// Store overwrites the document with videos.
func (b *Backend) Store(_ context.Context, videos []*domain.Video) error {
	return b.write(videos)
}

// Ping checks that the document is readable.
func (b *Backend) Ping(_ context.Context) error {
	f, err := os.Open(b.path)
	if err != nil {
		return fmt.Errorf("data file unavailable: %w", err)
	}
	return f.Close()
}

func (b *Backend) write(videos []*domain.Video) error {
	if videos == nil {
		videos = []*domain.Video{}
	}
	data, err := json.MarshalIndent(videos, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode videos: %w", err)
	}
	if err := os.WriteFile(b.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}
	return nil
}
