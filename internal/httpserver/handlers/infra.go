package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/playlist/internal/httpserver/deps"
)

type componentStatus struct {
	OK          bool   `json:"ok"`
	Backend     string `json:"backend,omitempty"`
	VideosCount *int64 `json:"videos,omitempty"`
	LastBackup  string `json:"last_backup,omitempty"`
	Enabled     *bool  `json:"enabled,omitempty"`
	Error       string `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of storage, backups and metrics.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")

		components := map[string]componentStatus{
			"storage": checkStorage(r.Context(), d),
			"backup":  backupStatus(d),
			"metrics": {OK: true, Enabled: boolPtr(d.Metrics != nil)},
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(infraResponse{
			Status:     determineStatus(components),
			Components: components,
		})
	}
}

func determineStatus(components map[string]componentStatus) string {
	if storage, ok := components["storage"]; ok && !storage.OK {
		return "critical"
	}
	if backup, ok := components["backup"]; ok && !backup.OK {
		return "degraded"
	}
	return "ok"
}

func checkStorage(ctx context.Context, d deps.Deps) componentStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.Pinger.Ping(ctx); err != nil {
		return componentStatus{OK: false, Backend: d.Storage, Error: err.Error()}
	}

	st, err := d.Playlist.Statistics(ctx)
	if err != nil {
		return componentStatus{OK: false, Backend: d.Storage, Error: err.Error()}
	}
	return componentStatus{OK: true, Backend: d.Storage, VideosCount: &st.TotalVideos}
}

func backupStatus(d deps.Deps) componentStatus {
	if d.LastBackup == nil {
		return componentStatus{OK: true, Enabled: boolPtr(false)}
	}

	last := d.LastBackup()
	if last.IsZero() {
		return componentStatus{OK: false, Enabled: boolPtr(true), LastBackup: "never"}
	}
	return componentStatus{OK: true, Enabled: boolPtr(true), LastBackup: last.Format(time.RFC3339)}
}

func boolPtr(b bool) *bool { return &b }
