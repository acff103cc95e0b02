package seed

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/playlist/internal/domain"
	"github.com/MrSnakeDoc/playlist/internal/logger"
)

// Counter reports how many entries are stored.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// Adder creates entries with the usual validation.
type Adder interface {
	AddEntry(ctx context.Context, name, link string) (*domain.Video, error)
}

// Importer loads a seed playlist into an empty collection.
type Importer struct {
	loader  *Loader
	counter Counter
	adder   Adder
	logger  logger.Logger
}

// NewImporter wires an importer.
func NewImporter(loader *Loader, counter Counter, adder Adder, log logger.Logger) *Importer {
	return &Importer{
		loader:  loader,
		counter: counter,
		adder:   adder,
		logger:  log,
	}
}

// Import adds the seed entries when the collection is empty and returns how many were added.
// Invalid entries are logged and skipped; a non-empty collection is left untouched.
func (i *Importer) Import(ctx context.Context) (int, error) {
	n, err := i.counter.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count videos: %w", err)
	}
	if n > 0 {
		i.logger.Debug("collection not empty, skipping seed", logger.Int("videos", n))
		return 0, nil
	}

	playlist, err := i.loader.Load()
	if err != nil {
		return 0, err
	}

	added := 0
	for idx, entry := range playlist.Videos {
		if _, err := i.adder.AddEntry(ctx, entry.Name, entry.Link); err != nil {
			if domain.IsValidation(err) {
				i.logger.Warn("skipping seed entry",
					logger.Int("index", idx),
					logger.String("name", entry.Name),
					logger.Error(err))
				continue
			}
			return added, err
		}
		added++
	}

	i.logger.Info("seed playlist imported",
		logger.Int("added", added),
		logger.Int("skipped", len(playlist.Videos)-added))
	return added, nil
}
