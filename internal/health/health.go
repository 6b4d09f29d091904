// Package health reports whether the service's backing stores are reachable.
package health

import (
	"context"
	"net/http"
	"time"

	"employee-management/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const checkTimeout = 3 * time.Second

type DBPinger interface {
	Ping(ctx context.Context) error
}

type Checker struct {
	db     DBPinger
	rdb    *redis.Client
	logger *zap.Logger
}

// NewChecker builds a checker for db and, when rdb is non-nil, redis.
func NewChecker(db DBPinger, rdb *redis.Client, logger ...*zap.Logger) *Checker {
	l := zap.L().Named("health")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("health")
	}
	return &Checker{db: db, rdb: rdb, logger: l}
}

// Handle answers 200 when every dependency responds and 503 otherwise, with
// the per-dependency status in data.
func (h *Checker) Handle(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
	defer cancel()
	log := contextutil.GetLogger(c.Request.Context(), h.logger)

	status := map[string]string{}
	healthy := true

	if err := h.db.Ping(ctx); err != nil {
		status["database"] = "unavailable"
		healthy = false
		log.Warn("health check failed: database ping", zap.Error(err))
	} else {
		status["database"] = "ok"
	}

	if h.rdb != nil {
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			status["redis"] = "unavailable"
			healthy = false
			log.Warn("health check failed: redis ping", zap.Error(err))
		} else {
			status["redis"] = "ok"
		}
	}

	code, message := http.StatusOK, "Service is healthy"
	if !healthy {
		code, message = http.StatusServiceUnavailable, "Service is unhealthy"
	}
	c.JSON(code, gin.H{
		"success": healthy,
		"message": message,
		"data":    status,
	})
}
