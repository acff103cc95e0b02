package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/playlist/internal/httpserver/deps"
	"github.com/MrSnakeDoc/playlist/internal/httpserver/views"
	"github.com/MrSnakeDoc/playlist/internal/logger"
)

// Index renders every entry with the collection statistics.
func Index(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		videos, err := d.Playlist.List(ctx)
		if err != nil {
			renderFailure(w, err, d.Logger)
			return
		}
		stats, err := d.Playlist.Statistics(ctx)
		if err != nil {
			renderFailure(w, err, d.Logger)
			return
		}

		render(w, d, views.PageData{
			Title:  views.TitleIndex,
			Videos: videos,
			Stats:  &stats,
		})
	}
}

// Favorites renders the favorite entries only.
func Favorites(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		videos, err := d.Playlist.Favorites(r.Context())
		if err != nil {
			renderFailure(w, err, d.Logger)
			return
		}

		render(w, d, views.PageData{
			Title:     views.TitleFavorites,
			Videos:    videos,
			Favorites: true,
		})
	}
}

func render(w http.ResponseWriter, d deps.Deps, data views.PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := d.Pages.Render(w, data); err != nil {
		renderFailure(w, err, d.Logger)
	}
}

func renderFailure(w http.ResponseWriter, err error, log logger.Logger) {
	log.Error("failed to render page", logger.Error(err))
	http.Error(w, msgInternalError+err.Error(), http.StatusInternalServerError)
}
