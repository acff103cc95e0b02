package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/playlist/internal/config"
	"github.com/MrSnakeDoc/playlist/internal/domain"
	"github.com/MrSnakeDoc/playlist/internal/httpserver"
	"github.com/MrSnakeDoc/playlist/internal/httpserver/deps"
	"github.com/MrSnakeDoc/playlist/internal/httpserver/views"
	"github.com/MrSnakeDoc/playlist/internal/logger"
	"github.com/MrSnakeDoc/playlist/internal/metrics"
	"github.com/MrSnakeDoc/playlist/internal/redis"
	"github.com/MrSnakeDoc/playlist/internal/scheduler"
	"github.com/MrSnakeDoc/playlist/internal/seed"
	"github.com/MrSnakeDoc/playlist/internal/store"
	"github.com/MrSnakeDoc/playlist/internal/store/file"
	"github.com/MrSnakeDoc/playlist/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/playlist/internal/store/redis"
	"github.com/MrSnakeDoc/playlist/internal/utils"
	"github.com/MrSnakeDoc/playlist/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	collection  *store.Collection
	importer    *seed.Importer
	backup      *scheduler.BackupScheduler
}

func New() (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	backend, redisClient, err := newBackend(cfg, loggerClient)
	if err != nil {
		return nil, err
	}

	collection := store.NewCollection(backend, loggerClient.With(logger.String("component", "store")), store.Options{
		StrictReads: cfg.StrictReads,
	})

	// Backups and the seed check must see a corrupt document as an error, never as an empty playlist.
	strict := store.NewCollection(backend, loggerClient.With(logger.String("component", "store")), store.Options{
		StrictReads: true,
	})

	var m *metrics.Metrics
	opts := []domain.Option{}
	if cfg.MetricsEnabled {
		m = metrics.New()
		opts = append(opts, domain.WithObserver(m))
	}

	svc := domain.NewService(collection, loggerClient.With(logger.String("component", "playlist")), opts...)

	if m != nil {
		m.RegisterCollection(svc.Statistics, 2*time.Second)
	}

	var importer *seed.Importer
	if cfg.SeedFile != "" {
		importer = seed.NewImporter(seed.NewLoader(cfg.SeedFile), strict, svc, loggerClient)
	}

	// Backups (optional) with a manual trigger exposed on /api/backup
	var (
		backup        *scheduler.BackupScheduler
		backupTrigger chan struct{}
		lastBackup    func() time.Time
	)
	if cfg.BackupDir != "" {
		backupTrigger = make(chan struct{}, 1)
		backup = scheduler.NewBackupScheduler(
			strict,
			cfg.BackupDir,
			cfg.BackupKeep,
			loggerClient.With(logger.String("component", "backup")),
			cfg.BackupInterval,
			backupTrigger,
		)
		lastBackup = backup.LastBackup
	} else {
		loggerClient.Info("backup directory not configured, backups disabled")
	}

	pages, err := views.New()
	if err != nil {
		return nil, err
	}

	// Dependencies passed to routes.
	d := deps.Deps{
		Logger:          loggerClient,
		StartTime:       time.Now(),
		Version:         version.Version,
		Commit:          version.Commit,
		BuildDate:       version.BuildDate,
		GoVersion:       version.GoVersion,
		Playlist:        svc,
		Storage:         cfg.Storage,
		Pinger:          collection,
		Pages:           pages,
		Metrics:         m,
		AllowedHosts:    cfg.AllowedHosts,
		AllowedCIDRS:    cfg.AllowedCIDRS,
		TrustProxy:      cfg.TrustProxy,
		RateLimitBurst:  cfg.RateLimitBurst,
		RateLimitPerMin: cfg.RateLimitPerMin,
		BackupTrigger:   backupTrigger,
		LastBackup:      lastBackup,
		ReadyTimeout:    2 * time.Second,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		collection:  collection,
		importer:    importer,
		backup:      backup,
	}, nil
}

// newBackend opens the storage selected by PLAYLIST_STORAGE.
// The Redis client is returned so it can be closed on shutdown; nil otherwise.
func newBackend(cfg *config.Config, log logger.Logger) (store.Backend, *goredis.Client, error) {
	switch cfg.Storage {
	case config.StorageRedis:
		client, err := redis.Connect(context.Background(), redis.Options{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		b := redisstore.New(client, cfg.RedisKey)
		log.Info("using redis storage", logger.String("key", b.Key()))
		return b, client, nil

	case config.StorageMemory:
		log.Warn("using in-memory storage, the playlist is lost on restart")
		return memory.New(), nil, nil

	default:
		b, err := file.New(cfg.DataFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open data file: %w", err)
		}
		log.Info("using file storage", logger.String("path", b.Path()))
		return b, nil, nil
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting playlist v%s on %s", version.Version, a.cfg.ListenAddr)
	a.logger.Infof("playlist %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.importer != nil {
		if _, err := a.importer.Import(ctx); err != nil {
			a.logger.Warn("seed import failed", logger.Error(err))
		}
	}

	if a.backup != nil {
		if err := a.backup.Start(ctx); err != nil {
			return fmt.Errorf("failed to start backup scheduler: %w", err)
		}
		a.logger.Info("backup scheduler started",
			logger.String("dir", a.cfg.BackupDir),
			logger.Duration("interval", a.cfg.BackupInterval),
			logger.Int("keep", a.cfg.BackupKeep))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		a.close()
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.close()
	a.logger.Info("✅ playlist stopped cleanly")
	_ = a.logger.Sync()
	return nil
}

// close stops background work and releases connections.
func (a *App) close() {
	if a.backup != nil {
		a.backup.Stop()
	}
	if a.redisClient != nil {
		utils.MustClose(a.redisClient, "redis", a.logger)
	}
}
