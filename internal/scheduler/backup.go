package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/MrSnakeDoc/playlist/internal/domain"
	"github.com/MrSnakeDoc/playlist/internal/logger"
)

const (
	backupPrefix = "videos-"
	backupSuffix = ".json"
	// Sortable and filesystem-safe; lexical order is chronological order.
	backupStamp = "20060102T150405.000000000Z"
)

// Source provides the collection to snapshot. A read failure must be returned,
// not reported as an empty collection, or good snapshots get pruned.
type Source interface {
	ReadAll(ctx context.Context) ([]*domain.Video, error)
}

// BackupScheduler periodically writes a JSON snapshot of the playlist and
// prunes old snapshots.
type BackupScheduler struct {
	source        Source
	dir           string
	keep          int
	logger        logger.Logger
	interval      time.Duration
	now           func() time.Time
	stopCh        chan struct{}
	stopOnce      sync.Once
	manualTrigger chan struct{}

	mu         sync.RWMutex
	lastBackup time.Time
}

// NewBackupScheduler creates a scheduler writing into dir and keeping the newest keep snapshots.
// manualTrigger may be nil.
func NewBackupScheduler(
	source Source,
	dir string,
	keep int,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *BackupScheduler {
	if keep < 1 {
		keep = 1
	}
	return &BackupScheduler{
		source:        source,
		dir:           dir,
		keep:          keep,
		logger:        log,
		interval:      interval,
		now:           time.Now,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start creates the backup directory, takes a first snapshot and begins the periodic loop.
func (bs *BackupScheduler) Start(ctx context.Context) error {
	if err := os.MkdirAll(bs.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	if _, err := bs.Snapshot(ctx); err != nil {
		bs.logger.Warn("initial backup failed", logger.Error(err))
	}

	ticker := time.NewTicker(bs.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				bs.run(ctx)
			case <-bs.manualTrigger:
				bs.logger.Info("manual backup triggered")
				bs.run(ctx)
			case <-bs.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop ends the periodic loop. Safe to call more than once.
func (bs *BackupScheduler) Stop() {
	bs.stopOnce.Do(func() { close(bs.stopCh) })
}

// LastBackup returns the time of the last successful snapshot, zero if none.
func (bs *BackupScheduler) LastBackup() time.Time {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.lastBackup
}

func (bs *BackupScheduler) run(ctx context.Context) {
	if _, err := bs.Snapshot(ctx); err != nil {
		bs.logger.Error("backup failed", logger.Error(err))
	}
}

// Snapshot writes the current collection to a new file, prunes old ones and returns the new path.
func (bs *BackupScheduler) Snapshot(ctx context.Context) (string, error) {
	videos, err := bs.source.ReadAll(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read videos: %w", err)
	}
	if videos == nil {
		videos = []*domain.Video{}
	}

	data, err := json.MarshalIndent(videos, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	now := bs.now().UTC()
	path := filepath.Join(bs.dir, backupPrefix+now.Format(backupStamp)+backupSuffix)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}

	bs.mu.Lock()
	bs.lastBackup = now
	bs.mu.Unlock()

	removed, err := bs.prune()
	if err != nil {
		bs.logger.Warn("failed to prune backups", logger.Error(err))
	}

	bs.logger.Info("backup written",
		logger.String("path", path),
		logger.Int("videos", len(videos)),
		logger.Int("pruned", removed))
	return path, nil
}

// prune removes the oldest snapshots beyond keep.
func (bs *BackupScheduler) prune() (int, error) {
	names, err := bs.snapshots()
	if err != nil {
		return 0, err
	}
	if len(names) <= bs.keep {
		return 0, nil
	}

	removed := 0
	for _, name := range names[:len(names)-bs.keep] {
		if err := os.Remove(filepath.Join(bs.dir, name)); err != nil {
			bs.logger.Warn("failed to remove old backup",
				logger.String("file", name),
				logger.Error(err))
			continue
		}
		removed++
	}
	return removed, nil
}

// snapshots lists snapshot file names, oldest first.
func (bs *BackupScheduler) snapshots() ([]string, error) {
	entries, err := os.ReadDir(bs.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, backupSuffix) {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}
