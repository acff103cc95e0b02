package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/playlist/internal/httpserver/deps"
	"github.com/MrSnakeDoc/playlist/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/playlist/internal/httpserver/views"
)

func init() { Register(registerPages) }

func registerPages(r chi.Router, d deps.Deps) {
	r.Get("/", handlers.Index(d))
	r.Get("/favoritos", handlers.Favorites(d))
	r.Handle("/static/*", views.Static())
}
