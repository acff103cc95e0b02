// Package routes mounts the playlist HTTP surface. Each file registers one
// group from init(): the JSON API (videos.go), the rendered pages (pages.go),
// health checks (health.go) and operator endpoints (admin.go).
package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/playlist/internal/httpserver/deps"
)

type (
	// Registrar mounts a route group. Middlewares that depend on configuration
	// (CIDR allow list, host guard, rate limit) are built inside it from d.
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
)

type group struct {
	mount Registrar
	mws   []Middleware
}

var groups []group

// Register adds a route group, optionally wrapped in static middlewares.
func Register(mount Registrar, mws ...Middleware) {
	groups = append(groups, group{mount: mount, mws: mws})
}

// RegisterAll mounts every group on r. The server calls it once per router.
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, g := range groups {
		if len(g.mws) == 0 {
			g.mount(r, d)
			continue
		}
		g.mount(r.With(g.mws...), d)
	}
}
