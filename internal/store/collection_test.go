package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/playlist/internal/domain"
	"github.com/MrSnakeDoc/playlist/internal/logger"
	"github.com/MrSnakeDoc/playlist/internal/store/file"
)

// fakeBackend records writes and can be told to fail.
type fakeBackend struct {
	videos  []*domain.Video
	loadErr error
	stores  int
}

func (f *fakeBackend) Load(context.Context) ([]*domain.Video, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	out := make([]*domain.Video, 0, len(f.videos))
	for _, v := range f.videos {
		if v == nil {
			out = append(out, nil)
			continue
		}
		out = append(out, v.Clone())
	}
	return out, nil
}

func (f *fakeBackend) Store(_ context.Context, videos []*domain.Video) error {
	f.stores++
	f.videos = videos
	return nil
}

func (f *fakeBackend) Ping(context.Context) error { return f.loadErr }

func video(id string, likes int, fav bool) *domain.Video {
	return &domain.Video{ID: id, Name: id, Link: "https://www.youtube.com/embed/" + id, Likes: likes, Favorite: fav}
}

func TestReadAllEmpty(t *testing.T) {
	c := NewCollection(&fakeBackend{}, logger.Nop(), Options{})

	videos, err := c.ReadAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, videos)
	assert.Empty(t, videos)
}

func TestReadAllLenientOnLoadError(t *testing.T) {
	backend := &fakeBackend{loadErr: errors.New("corrupt document")}
	c := NewCollection(backend, logger.Nop(), Options{})

	videos, err := c.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, videos)
}

func TestReadAllDropsNullEntries(t *testing.T) {
	backend := &fakeBackend{videos: []*domain.Video{nil, video("a", 2, true), nil}}
	c := NewCollection(backend, logger.Nop(), Options{})
	ctx := context.Background()

	videos, err := c.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "a", videos[0].ID)

	_, found, err := c.FindByID(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	top, err := c.FindTopByLikes(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, top, 1)

	favorites, err := c.FindFavorites(ctx)
	require.NoError(t, err)
	assert.Len(t, favorites, 1)

	n, err := c.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = c.Save(ctx, video("b", 0, false))
	require.NoError(t, err)
	assert.NotContains(t, backend.videos, (*domain.Video)(nil))
}

func TestReadAllNullEntriesInFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "videos.json")
	require.NoError(t, os.WriteFile(path, []byte(`[null, {"id":"a","nombre":"A","link":"https://youtu.be/a","likes":1,"favorito":false,"fechaAgregado":"2024-01-15T10:30:00"}]`), 0o644))

	backend, err := file.New(path)
	require.NoError(t, err)
	c := NewCollection(backend, logger.Nop(), Options{StrictReads: true})

	videos, err := c.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "a", videos[0].ID)
}

func TestReadAllStrictOnLoadError(t *testing.T) {
	loadErr := errors.New("corrupt document")
	c := NewCollection(&fakeBackend{loadErr: loadErr}, logger.Nop(), Options{StrictReads: true})

	_, err := c.ReadAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, loadErr)

	_, err = c.Save(context.Background(), video("a", 0, false))
	assert.ErrorIs(t, err, loadErr)
}

func TestSaveAppendsAndReplaces(t *testing.T) {
	backend := &fakeBackend{}
	c := NewCollection(backend, logger.Nop(), Options{})
	ctx := context.Background()

	_, err := c.Save(ctx, video("a", 0, false))
	require.NoError(t, err)
	_, err = c.Save(ctx, video("b", 0, false))
	require.NoError(t, err)

	updated := video("a", 4, true)
	_, err = c.Save(ctx, updated)
	require.NoError(t, err)

	require.Len(t, backend.videos, 2)
	assert.Equal(t, "a", backend.videos[0].ID, "replacement keeps position")
	assert.Equal(t, 4, backend.videos[0].Likes)
	assert.True(t, backend.videos[0].Favorite)
	assert.Equal(t, 3, backend.stores)
}

func TestFindByID(t *testing.T) {
	c := NewCollection(&fakeBackend{videos: []*domain.Video{video("a", 1, false)}}, logger.Nop(), Options{})
	ctx := context.Background()

	v, ok, err := c.FindByID(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, v.Likes)

	_, ok, err = c.FindByID(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteByID(t *testing.T) {
	backend := &fakeBackend{videos: []*domain.Video{video("a", 0, false), video("b", 0, false)}}
	c := NewCollection(backend, logger.Nop(), Options{})
	ctx := context.Background()

	deleted, err := c.DeleteByID(ctx, "a")
	require.NoError(t, err)
	assert.True(t, deleted)
	require.Len(t, backend.videos, 1)
	assert.Equal(t, "b", backend.videos[0].ID)
	assert.Equal(t, 1, backend.stores)
}

func TestDeleteByIDUnknownDoesNotWrite(t *testing.T) {
	backend := &fakeBackend{videos: []*domain.Video{video("a", 0, false)}}
	c := NewCollection(backend, logger.Nop(), Options{})

	deleted, err := c.DeleteByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Zero(t, backend.stores)
}

func TestFindFavorites(t *testing.T) {
	backend := &fakeBackend{videos: []*domain.Video{
		video("a", 0, true),
		video("b", 0, false),
		video("c", 0, true),
	}}
	c := NewCollection(backend, logger.Nop(), Options{})

	favs, err := c.FindFavorites(context.Background())
	require.NoError(t, err)
	require.Len(t, favs, 2)
	assert.Equal(t, "a", favs[0].ID)
	assert.Equal(t, "c", favs[1].ID)
}

func TestFindTopByLikes(t *testing.T) {
	backend := &fakeBackend{videos: []*domain.Video{
		video("a", 2, false),
		video("b", 7, false),
		video("c", 2, false),
		video("d", 9, false),
	}}
	c := NewCollection(backend, logger.Nop(), Options{})
	ctx := context.Background()

	top, err := c.FindTopByLikes(ctx, 10)
	require.NoError(t, err)

	ids := make([]string, 0, len(top))
	for _, v := range top {
		ids = append(ids, v.ID)
	}
	assert.Equal(t, []string{"d", "b", "a", "c"}, ids, "ties keep storage order")

	top, err = c.FindTopByLikes(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "d", top[0].ID)

	assert.Zero(t, backend.stores, "ranking must not write")
}

func TestCountAndDeleteAll(t *testing.T) {
	backend := &fakeBackend{videos: []*domain.Video{video("a", 0, false), video("b", 0, false)}}
	c := NewCollection(backend, logger.Nop(), Options{})
	ctx := context.Background()

	n, err := c.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, c.DeleteAll(ctx))

	n, err = c.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
