package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/playlist/internal/httpserver/deps"
	"github.com/MrSnakeDoc/playlist/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/playlist/internal/httpserver/mw"
)

func init() { Register(registerAdmin) }

func registerAdmin(r chi.Router, d deps.Deps) {
	allow := mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger)

	r.With(allow, mw.EnforceHost(d.AllowedHosts, d.Logger)).Post("/api/backup", handlers.Backup(d))

	if d.Metrics != nil {
		r.With(allow).Handle("/metrics", d.Metrics.Handler())
	}
}
