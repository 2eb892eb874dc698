package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Hanjarang/news/internal/auth/resolver"
	"github.com/Hanjarang/news/internal/config"
	"github.com/Hanjarang/news/internal/db"
	"github.com/Hanjarang/news/internal/logger"
	"github.com/Hanjarang/news/internal/redis"
	"github.com/Hanjarang/news/internal/session"
	"github.com/Hanjarang/news/internal/summary"

	_ "github.com/lib/pq"
)

// infra holds the stateful backends the HTTP layer is wired against.
// Unconfigured backends fall back to in-memory stores so the service
// still runs locally without postgres or redis.
type infra struct {
	sessions  session.Store
	users     resolver.UserStore
	summaries summary.Store

	cleanup []func() error
}

func setupInfra(ctx context.Context, cfg config.Config) (*infra, error) {
	inf := &infra{}

	if cfg.DatabaseDSN != "" {
		sqlDB, err := sql.Open("postgres", cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return nil, fmt.Errorf("failed to ping postgres: %w", err)
		}
		if err := db.RunMigration(ctx, sqlDB); err != nil {
			return nil, fmt.Errorf("failed to run migration: %w", err)
		}

		wrapped := &db.DB{DB: sqlDB}
		inf.users = resolver.NewSQLStore(wrapped)
		inf.summaries = summary.NewSQLStore(wrapped)
		inf.cleanup = append(inf.cleanup, sqlDB.Close)
	} else {
		logger.Warn("DATABASE_DSN not set, using in-memory user and summary stores", nil)
		inf.users = resolver.NewMemStore()
		inf.summaries = summary.NewMemStore()
	}

	redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logger.Warn("redis unavailable, using in-memory session store", map[string]any{
			"addr":  cfg.RedisAddr,
			"error": err.Error(),
		})
		inf.sessions = session.NewMemStore()
	} else {
		inf.sessions = session.NewRedisStore(redisClient.Client)
		inf.cleanup = append(inf.cleanup, redisClient.Close)
	}

	return inf, nil
}

func (i *infra) close() {
	for idx := len(i.cleanup) - 1; idx >= 0; idx-- {
		if err := i.cleanup[idx](); err != nil {
			logger.Warn("infra cleanup failed", map[string]any{"error": err.Error()})
		}
	}
}
