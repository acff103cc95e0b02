package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/playlist/internal/httpserver/deps"
	"github.com/MrSnakeDoc/playlist/internal/logger"
)

const defaultReadyTimeout = 2 * time.Second

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Error string `json:"error,omitempty"`
}

// Readyz answers 200 when the storage backend responds to a ping, 503 otherwise.
func Readyz(d deps.Deps) http.HandlerFunc {
	timeout := d.ReadyTimeout
	if timeout <= 0 {
		timeout = defaultReadyTimeout
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := d.Pinger.Ping(ctx); err != nil {
			d.Logger.Warn("storage not ready", logger.String("storage", d.Storage), logger.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(readyzResponse{Ready: false, Error: err.Error()})
			return
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(readyzResponse{Ready: true})
	}
}
