// Command server runs the portal API.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/relawan/portal"
	"github.com/relawan/portal/internal/config"
	"github.com/relawan/portal/internal/controllers"
	"github.com/relawan/portal/internal/services"
	"github.com/relawan/portal/internal/store"
	"github.com/relawan/portal/middlewares"
	"github.com/relawan/portal/pkg/cache"
	"github.com/relawan/portal/pkg/db"
	"github.com/relawan/portal/pkg/jwt"
	"github.com/relawan/portal/pkg/logger"
	"github.com/relawan/portal/pkg/password"
	"github.com/relawan/portal/pkg/redis"
)

const flushTimeout = 2 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New().Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log, flush := newLogger(cfg)
	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server stopped", slog.String("error", err.Error()))
		flush(flushTimeout)
		os.Exit(1)
	}
	flush(flushTimeout)
}

func newLogger(cfg config.Config) (*slog.Logger, func(time.Duration)) {
	if cfg.Sentry.DSN != "" {
		return logger.NewWithSentry(cfg.Sentry, middlewares.RequestIDExtractor())
	}
	return logger.NewWithConfig(os.Stdout, cfg.Log, middlewares.RequestIDExtractor()), func(time.Duration) {}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	pool, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	if err := db.Migrate(ctx, pool, store.Migrations, cfg.Database.MigrationsTable, log); err != nil {
		pool.Close()
		return err
	}

	var (
		client   goredis.UniversalClient
		sessions cache.Store[int64]
		profiles cache.Store[store.User]
	)
	if cfg.RedisURL != "" {
		if client, err = redis.Open(ctx, cfg.RedisURL); err != nil {
			pool.Close()
			return err
		}
		sessions = cache.NewRedis[int64](client, cache.WithPrefix("session:"))
		profiles = cache.NewRedis[store.User](client, cache.WithPrefix("profile:"))
	} else {
		log.Warn("REDIS_URL not set, sessions are kept in memory")
		sessions = cache.NewMemory[int64]()
		profiles = cache.NewMemory[store.User]()
	}

	access, err := jwt.New(cfg.JWT.AccessSecret,
		jwt.WithTTL(cfg.JWT.AccessTTL),
		jwt.WithNotBefore(cfg.JWT.NotBefore),
		jwt.WithIssuer(cfg.JWT.Issuer),
	)
	if err != nil {
		return err
	}
	refresh, err := jwt.New(cfg.JWT.RefreshSecret,
		jwt.WithTTL(cfg.JWT.RefreshTTL),
		jwt.WithNotBefore(cfg.JWT.NotBefore),
		jwt.WithIssuer(cfg.JWT.Issuer),
	)
	if err != nil {
		return err
	}

	repos := store.New(pool)
	svc := services.New(services.Deps{
		Users:     repos.Users,
		Articles:  repos.Articles,
		Reports:   repos.Reports,
		Donations: repos.Donations,
		Locations: repos.Locations,
		Hasher:    password.New(cfg.Password.HashCost),
		Access:    access,
		Refresh:   refresh,
		Sessions:  sessions,
		Profiles:  profiles,
		Logger:    log,
	})

	health := []portal.HealthOption{portal.WithReadinessCheck("postgres", db.Healthcheck(pool))}
	if client != nil {
		health = append(health, portal.WithReadinessCheck("redis", redis.Healthcheck(client)))
	}

	app := portal.New(
		portal.WithCustomLogger(log),
		portal.WithMiddleware(
			middlewares.RequestID(),
			middlewares.AccessLog(),
			middlewares.Recover(),
			middlewares.Secure(),
			middlewares.CORS(),
			middlewares.Timeout(cfg.RequestTimeout),
		),
		portal.WithHealthChecks(health...),
		portal.WithModules(controllers.Modules(&controllers.Deps{Services: svc, Access: access})...),
	)

	// Hooks run in registration order: caches, then redis, then the pool.
	hooks := []portal.RunOption{
		portal.ShutdownTimeout(cfg.ShutdownTimeout),
		portal.Logger(log),
		portal.ShutdownHook(closeStore(sessions)),
		portal.ShutdownHook(closeStore(profiles)),
	}
	if client != nil {
		hooks = append(hooks, portal.ShutdownHook(redis.Shutdown(client)))
	}
	hooks = append(hooks, portal.ShutdownHook(db.Shutdown(pool)))

	return app.Run(cfg.Addr(), hooks...)
}

func closeStore[V any](s cache.Store[V]) func(context.Context) error {
	return func(context.Context) error { return s.Close() }
}
