package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/playlist/internal/domain"
)

func TestObserverCounters(t *testing.T) {
	m := New()

	m.VideoAdded()
	m.VideoAdded()
	m.VideoDeleted()
	m.LikeAdded()
	m.FavoriteToggled(true)
	m.FavoriteToggled(true)
	m.FavoriteToggled(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.videosAdded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.videosDeleted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.likes))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.favoriteToggles.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.favoriteToggles.WithLabelValues("false")))
}

func TestCollectionGauges(t *testing.T) {
	m := New()
	m.RegisterCollection(func(context.Context) (domain.Stats, error) {
		return domain.Stats{TotalVideos: 3, TotalFavorites: 1, TotalLikes: 12}, nil
	}, time.Second)

	expected := `
# HELP playlist_stored_likes Sum of likes over the playlist.
# TYPE playlist_stored_likes gauge
playlist_stored_likes 12
# HELP playlist_videos Videos currently in the playlist.
# TYPE playlist_videos gauge
playlist_videos 3
`
	err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "playlist_videos", "playlist_stored_likes")
	require.NoError(t, err)
}

func TestCollectionGaugesOnError(t *testing.T) {
	m := New()
	m.RegisterCollection(func(context.Context) (domain.Stats, error) {
		return domain.Stats{}, errors.New("boom")
	}, time.Second)

	expected := `
# HELP playlist_favorite_videos Videos currently marked as favorite.
# TYPE playlist_favorite_videos gauge
playlist_favorite_videos 0
`
	err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "playlist_favorite_videos")
	require.NoError(t, err)
}

func TestInstrumentUsesRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.Instrument)
	r.Get("/api/videos/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/videos/"+id, nil))
	}

	got := testutil.ToFloat64(m.httpRequests.WithLabelValues(http.MethodGet, "/api/videos/{id}", "404"))
	assert.Equal(t, 3.0, got)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.httpInFlight))
}

func TestHandler(t *testing.T) {
	m := New()
	m.VideoAdded()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "playlist_videos_added_total 1")
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
