package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/playlist/internal/httpserver/deps"
	"github.com/MrSnakeDoc/playlist/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/playlist/internal/httpserver/mw"
)

func init() { Register(registerVideos) }

func registerVideos(r chi.Router, d deps.Deps) {
	r.Get("/api/videos", handlers.ListVideos(d))
	r.Get("/api/videos/top/{n}", handlers.TopVideos(d))
	r.Get("/api/videos/{id}", handlers.GetVideo(d))
	r.Get("/api/stats", handlers.Stats(d))

	// Mutations write the whole document; limit them per client.
	w := r
	if d.RateLimitBurst > 0 {
		w = r.With(mw.RateLimit(mw.RateLimitConfig{
			Burst:             d.RateLimitBurst,
			RefillPerIPPerMin: d.RateLimitPerMin,
			MaxEntries:        10_000,
			TrustProxy:        d.TrustProxy,
			Logger:            d.Logger,
		}))
	}
	w.Post("/api/videos", handlers.CreateVideo(d))
	w.Delete("/api/videos/{id}", handlers.DeleteVideo(d))
	w.Post("/api/videos/{id}/like", handlers.LikeVideo(d))
	w.Post("/api/videos/{id}/favorito", handlers.ToggleFavorite(d))
}
