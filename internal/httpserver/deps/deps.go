package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/playlist/internal/domain"
	"github.com/MrSnakeDoc/playlist/internal/httpserver/views"
	"github.com/MrSnakeDoc/playlist/internal/logger"
	"github.com/MrSnakeDoc/playlist/internal/metrics"
)

// Pinger reports whether the storage backend is usable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Logger          logger.Logger
	StartTime       time.Time
	Version         string
	Commit          string
	BuildDate       string
	GoVersion       string
	Playlist        *domain.Service  // Playlist operations
	Storage         string           // Storage backend name (file, redis, memory)
	Pinger          Pinger           // Storage liveness for readyz/infra
	Pages           *views.Pages     // HTML templates for / and /favoritos
	Metrics         *metrics.Metrics // nil when metrics are disabled
	AllowedHosts    []string         // Host headers allowed on admin endpoints
	AllowedCIDRS    []string         // IPs allowed to access healthz/readyz/infra/metrics/backup
	TrustProxy      bool             // true if running behind a trusted reverse proxy
	RateLimitBurst  int              // Per-IP burst on mutating API routes, 0 disables limiting
	RateLimitPerMin int              // Per-IP refill rate on mutating API routes
	BackupTrigger   chan struct{}    // Channel to trigger a manual backup (nil if backups disabled)
	LastBackup      func() time.Time // Time of the last successful backup (nil if backups disabled)
	ReadyTimeout    time.Duration    // Timeout for the storage ping in readyz
}
