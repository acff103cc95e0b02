package version

import (
	"runtime"
	"time"
)

// Set at build time with -ldflags "-X github.com/MrSnakeDoc/playlist/internal/version.Version=...".
var (
	Version   = "dev"                           // ex: v0.3.0
	Commit    = "none"                          // ex: 1f2e3d4
	BuildDate = time.Now().Format(time.RFC3339) // ex: 2026-10-18T09:12:00Z
	GoVersion = runtime.Version()
)
