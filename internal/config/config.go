package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends.
const (
	StorageFile   = "file"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

type Config struct {
	ListenAddr      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request timeout

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	Storage     string // "file" | "redis" | "memory"
	DataFile    string // JSON document path for the file backend
	StrictReads bool   // surface unreadable documents instead of treating them as empty

	SeedFile       string        // optional YAML playlist imported into an empty collection
	BackupDir      string        // optional snapshot directory, empty = backups disabled
	BackupInterval time.Duration // time between snapshots
	BackupKeep     int           // snapshots kept, oldest removed first

	MetricsEnabled bool     // expose /metrics
	AllowedCIDRS   []string // optional, restrict /healthz, /readyz, /infra, /metrics and /api/backup
	AllowedHosts   []string // optional, Host headers accepted on /infra and /api/backup
	TrustProxy     bool     // true => resolve client IP from proxy headers

	RateLimitBurst  int // requests allowed at once per client IP on mutating routes, 0 = disabled
	RateLimitPerMin int // tokens refilled per minute per client IP

	// Redis (storage=redis only)
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisKey            string
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait        time.Duration // cap on the wait between retries
	RedisPingTimeout    time.Duration // per-ping timeout
	RedisWarnThreshold  int           // warn for this many attempts, then log errors
}

func Load() *Config {
	cfg := &Config{
		// Server
		ListenAddr:      getenv("PLAYLIST_LISTEN_ADDR", ":8080"),
		ShutdownTimeout: mustDuration("PLAYLIST_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("PLAYLIST_REQUEST_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("PLAYLIST_LOG_LEVEL", "info"),
		PrettyLog: mustBool("PLAYLIST_PRETTY_LOG", true),

		// Storage
		Storage:     strings.ToLower(getenv("PLAYLIST_STORAGE", StorageFile)),
		DataFile:    getenv("PLAYLIST_DATA_FILE", "data/videos.json"),
		StrictReads: mustBool("PLAYLIST_STRICT_READS", false),

		// Seed & backups
		SeedFile:       getenv("PLAYLIST_SEED_FILE", ""),
		BackupDir:      getenv("PLAYLIST_BACKUP_DIR", ""),
		BackupInterval: mustDuration("PLAYLIST_BACKUP_INTERVAL", 24*time.Hour),
		BackupKeep:     getenvInt("PLAYLIST_BACKUP_KEEP", 7),

		// Observability & access
		MetricsEnabled: mustBool("PLAYLIST_METRICS_ENABLED", true),
		AllowedCIDRS:   splitAndTrim(getenv("PLAYLIST_ALLOWED_CIDRS", "")),
		AllowedHosts:   splitAndTrim(getenv("PLAYLIST_ALLOWED_HOSTS", "")),
		TrustProxy:     mustBool("PLAYLIST_TRUST_PROXY", false),

		// Rate limiting
		RateLimitBurst:  getenvInt("PLAYLIST_RATE_LIMIT_BURST", 30),
		RateLimitPerMin: getenvInt("PLAYLIST_RATE_LIMIT_PER_MIN", 120),

		// Redis
		RedisAddr:           getenv("PLAYLIST_REDIS_ADDR", ""),
		RedisUser:           getenv("PLAYLIST_REDIS_USERNAME", ""),
		RedisPassword:       getenv("PLAYLIST_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("PLAYLIST_REDIS_DB", 0),
		RedisKey:            getenv("PLAYLIST_REDIS_KEY", "playlist:videos"),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),
	}

	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("❌ FATAL: %v", err))
	}

	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfgCopy.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// Validate rejects inconsistent settings.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageFile:
		if c.DataFile == "" {
			return fmt.Errorf("PLAYLIST_DATA_FILE must not be empty when PLAYLIST_STORAGE=file")
		}
	case StorageRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("PLAYLIST_REDIS_ADDR is required when PLAYLIST_STORAGE=redis")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown PLAYLIST_STORAGE %q (want file, redis or memory)", c.Storage)
	}

	if c.RateLimitBurst < 0 {
		return fmt.Errorf("PLAYLIST_RATE_LIMIT_BURST must be >= 0, got %d", c.RateLimitBurst)
	}
	if c.RateLimitBurst > 0 && c.RateLimitPerMin < 1 {
		return fmt.Errorf("PLAYLIST_RATE_LIMIT_PER_MIN must be >= 1 when rate limiting is enabled, got %d", c.RateLimitPerMin)
	}

	if c.BackupDir != "" {
		if c.BackupInterval <= 0 {
			return fmt.Errorf("PLAYLIST_BACKUP_INTERVAL must be > 0, got %v", c.BackupInterval)
		}
		if c.BackupKeep < 1 {
			return fmt.Errorf("PLAYLIST_BACKUP_KEEP must be >= 1, got %d", c.BackupKeep)
		}
	}
	return nil
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		// Remove surrounding quotes if present
		trimmed := strings.Trim(strings.TrimSpace(part), `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
