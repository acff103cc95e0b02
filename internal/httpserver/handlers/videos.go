package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/playlist/internal/httpserver/deps"
)

// ListVideos returns every entry.
func ListVideos(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		videos, err := d.Playlist.List(r.Context())
		if err != nil {
			writeError(w, r, err, d.Logger)
			return
		}
		writeJSON(w, http.StatusOK, videos, d.Logger)
	}
}

// GetVideo returns one entry or 404.
func GetVideo(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := d.Playlist.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, err, d.Logger)
			return
		}
		writeJSON(w, http.StatusOK, v, d.Logger)
	}
}

// CreateVideo adds an entry from the form fields nombre and link.
func CreateVideo(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			writeFailure(w, http.StatusBadRequest, err.Error(), d.Logger)
			return
		}

		v, err := d.Playlist.AddEntry(r.Context(), r.PostForm.Get("nombre"), r.PostForm.Get("link"))
		if err != nil {
			writeError(w, r, err, d.Logger)
			return
		}
		writeJSON(w, http.StatusCreated, result{Success: true, Message: msgVideoAdded, Video: v}, d.Logger)
	}
}

// DeleteVideo removes an entry.
func DeleteVideo(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deleted, err := d.Playlist.DeleteEntry(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, err, d.Logger)
			return
		}
		if !deleted {
			writeFailure(w, http.StatusNotFound, msgVideoNotFound, d.Logger)
			return
		}
		writeJSON(w, http.StatusOK, result{Success: true, Message: msgVideoDeleted}, d.Logger)
	}
}

// LikeVideo adds one like and returns the new count.
func LikeVideo(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := d.Playlist.AddLike(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, err, d.Logger)
			return
		}
		writeJSON(w, http.StatusOK, result{Success: true, Likes: &v.Likes}, d.Logger)
	}
}

// ToggleFavorite flips the favorite flag and returns the new value.
func ToggleFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := d.Playlist.ToggleFavorite(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, err, d.Logger)
			return
		}
		writeJSON(w, http.StatusOK, result{Success: true, Favorito: &v.Favorite}, d.Logger)
	}
}

// TopVideos returns the n most liked entries; n is clamped by the service.
func TopVideos(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := strconv.Atoi(chi.URLParam(r, "n"))
		if err != nil {
			writeFailure(w, http.StatusBadRequest, msgInvalidTop, d.Logger)
			return
		}

		videos, err := d.Playlist.TopByLikes(r.Context(), n)
		if err != nil {
			writeError(w, r, err, d.Logger)
			return
		}
		writeJSON(w, http.StatusOK, videos, d.Logger)
	}
}

// Stats returns the collection aggregates.
func Stats(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := d.Playlist.Statistics(r.Context())
		if err != nil {
			writeError(w, r, err, d.Logger)
			return
		}
		writeJSON(w, http.StatusOK, st, d.Logger)
	}
}
