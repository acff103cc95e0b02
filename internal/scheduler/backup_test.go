package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MrSnakeDoc/playlist/internal/domain"
	"github.com/MrSnakeDoc/playlist/internal/logger"
	"github.com/MrSnakeDoc/playlist/internal/store"
	"github.com/MrSnakeDoc/playlist/internal/store/file"
	"github.com/MrSnakeDoc/playlist/internal/store/memory"
)

type failingSource struct{}

func (failingSource) ReadAll(context.Context) ([]*domain.Video, error) {
	return nil, errors.New("storage down")
}

func newTestCollection(videos ...*domain.Video) *store.Collection {
	return store.NewCollection(memory.New(videos...), logger.New("error", false), store.Options{})
}

// steppingClock returns a clock advancing one second per call.
func steppingClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func TestBackupScheduler_Snapshot(t *testing.T) {
	dir := t.TempDir()
	coll := newTestCollection(
		&domain.Video{ID: "a", Name: "A", Link: "https://www.youtube.com/embed/a", Likes: 2},
		&domain.Video{ID: "b", Name: "B", Link: "https://www.youtube.com/embed/b", Favorite: true},
	)

	bs := NewBackupScheduler(coll, dir, 3, logger.New("error", false), time.Hour, nil)

	path, err := bs.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("snapshot written to %s, want directory %s", path, dir)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read snapshot: %v", err)
	}

	var got []*domain.Video
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("snapshot holds %d videos, want 2", len(got))
	}
	if got[0].Likes != 2 || !got[1].Favorite {
		t.Errorf("snapshot content mismatch: %+v %+v", got[0], got[1])
	}

	if bs.LastBackup().IsZero() {
		t.Error("LastBackup should be set after a snapshot")
	}
}

func TestBackupScheduler_Prune(t *testing.T) {
	dir := t.TempDir()
	coll := newTestCollection()

	bs := NewBackupScheduler(coll, dir, 2, logger.New("error", false), time.Hour, nil)
	bs.now = steppingClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	var paths []string
	for i := 0; i < 4; i++ {
		p, err := bs.Snapshot(context.Background())
		if err != nil {
			t.Fatalf("Snapshot %d failed: %v", i, err)
		}
		paths = append(paths, p)
	}

	// Unrelated files are never touched.
	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(other, []byte("keep me"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := bs.prune(); err != nil {
		t.Fatalf("prune failed: %v", err)
	}

	names, err := bs.snapshots()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 snapshots after pruning, got %d (%v)", len(names), names)
	}

	for _, p := range paths[:2] {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("old snapshot %s should have been removed", p)
		}
	}
	for _, p := range paths[2:] {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("recent snapshot %s should be kept: %v", p, err)
		}
	}
	if _, err := os.Stat(other); err != nil {
		t.Errorf("unrelated file removed: %v", err)
	}
}

func TestBackupScheduler_SnapshotSourceError(t *testing.T) {
	dir := t.TempDir()
	bs := NewBackupScheduler(failingSource{}, dir, 1, logger.New("error", false), time.Hour, nil)

	if _, err := bs.Snapshot(context.Background()); err == nil {
		t.Fatal("Snapshot should fail when the source fails")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("no file should be written on failure, found %d", len(entries))
	}
	if !bs.LastBackup().IsZero() {
		t.Error("LastBackup should stay zero on failure")
	}
}

func TestBackupScheduler_CorruptDocumentKeepsSnapshots(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "videos.json")
	backend, err := file.New(dataPath)
	if err != nil {
		t.Fatal(err)
	}
	source := store.NewCollection(backend, logger.New("error", false), store.Options{StrictReads: true})
	if _, err := source.Save(context.Background(), &domain.Video{ID: "a", Name: "A"}); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	bs := NewBackupScheduler(source, dir, 2, logger.New("error", false), time.Hour, nil)
	bs.now = steppingClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	var good []string
	for i := 0; i < 2; i++ {
		p, err := bs.Snapshot(context.Background())
		if err != nil {
			t.Fatalf("Snapshot %d failed: %v", i, err)
		}
		good = append(good, p)
	}
	last := bs.LastBackup()

	if err := os.WriteFile(dataPath, []byte("{corrupt"), 0o644); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if _, err := bs.Snapshot(context.Background()); err == nil {
			t.Fatalf("Snapshot %d should fail on a corrupt document", i)
		}
	}

	names, err := bs.snapshots()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 {
		t.Fatalf("expected the 2 good snapshots to survive, got %v", names)
	}
	for _, p := range good {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("good snapshot %s removed: %v", p, err)
		}
		var videos []*domain.Video
		if err := json.Unmarshal(data, &videos); err != nil || len(videos) != 1 {
			t.Errorf("good snapshot %s altered: %s", p, data)
		}
	}
	if !bs.LastBackup().Equal(last) {
		t.Error("LastBackup must not move on a failed snapshot")
	}
}

func TestBackupScheduler_StartAndManualTrigger(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "backups")
	coll := newTestCollection(&domain.Video{ID: "a"})
	trigger := make(chan struct{}, 1)

	bs := NewBackupScheduler(coll, dir, 10, logger.New("error", false), time.Hour, trigger)
	bs.now = steppingClock(time.Now())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := bs.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer bs.Stop()

	names, err := bs.snapshots()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 {
		t.Fatalf("expected initial snapshot, got %d", len(names))
	}

	trigger <- struct{}{}

	deadline := time.After(2 * time.Second)
	for {
		names, _ = bs.snapshots()
		if len(names) == 2 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("manual trigger did not produce a snapshot, have %d", len(names))
		case <-time.After(10 * time.Millisecond):
		}
	}

	bs.Stop()
	bs.Stop()
}
