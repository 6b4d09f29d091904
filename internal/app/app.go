package app

import (
	"context"
	"errors"
	"fmt"

	"employee-management/internal/config"
	"employee-management/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// App owns the long-lived resources of the API process.
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

// BuildApp connects to the database (and redis when configured), applies
// migrations if enabled and assembles the router.
func BuildApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	db, err := connection.ConnectGORMWithRetry(
		cfg.Database.DSN(),
		connection.PoolConfig{
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		},
		cfg.Database.ConnectRetries,
	)
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	a := &App{DB: db}

	if cfg.Database.AutoMigrate {
		sqlDB, err := db.DB()
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		if err := connection.Migrate(ctx, sqlDB, "up"); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
	}

	if cfg.Redis.Addr != "" {
		rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Database.ConnectRetries)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.Redis = rdb
		logger.Info("redis connection established")
	} else {
		logger.Info("redis not configured, Idempotency-Key handling disabled")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if sqlDB, err := db.DB(); err == nil {
		reg.MustRegister(collectors.NewDBStatsCollector(sqlDB, cfg.Database.Name))
	}

	a.Router = NewRouter(RouterDeps{
		DB:         db,
		Redis:      a.Redis,
		Registry:   reg,
		Logger:     logger,
		RateLimit:  rate.Limit(cfg.RateLimit.RPS),
		RateBurst:  cfg.RateLimit.Burst,
		Production: cfg.IsProduction(),
	})

	return a, nil
}

// Close releases the database pool and the redis client.
func (a *App) Close() error {
	var errs []error
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	return errors.Join(errs...)
}
