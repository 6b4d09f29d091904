package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	IdempotencyHeader = "Idempotency-Key"

	ctxIdempotencyCacheKey = "idempotency_cache_key"

	idempotencyTTL     = 24 * time.Hour
	idempotencyLockTTL = 30 * time.Second
)

type idempotentResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

// Idempotency replays the stored response of a completed POST carrying the
// same Idempotency-Key, and rejects a duplicate that arrives while the first
// one is still running. Requests without the header pass through.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader(IdempotencyHeader)
		if rdb == nil || idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), c.ClientIP(), idempKey)
		lockKey := cacheKey + ":lock"
		ctx := c.Request.Context()

		if val, err := rdb.Get(ctx, cacheKey).Result(); err == nil {
			var stored idempotentResponse
			if json.Unmarshal([]byte(val), &stored) == nil && stored.Status != 0 {
				c.Header("Idempotent-Replayed", "true")
				c.Data(stored.Status, "application/json; charset=utf-8", stored.Body)
				c.Abort()
				return
			}
		}

		// SetNX with a short expiry so a crashed request does not hold the
		// key forever.
		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			zap.L().Named("middleware.idempotency").Warn("idempotency lock failed, continuing without it",
				zap.String("key", lockKey),
				zap.Error(err),
			)
			c.Next()
			return
		}
		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"success": false,
				"message": "Request is already being processed",
			})
			return
		}

		// released whatever the rest of the chain does, including an abort
		// by a later validator
		defer func() {
			if err := rdb.Del(context.WithoutCancel(ctx), lockKey).Err(); err != nil {
				zap.L().Named("middleware.idempotency").Warn("release idempotency lock failed",
					zap.String("key", lockKey),
					zap.Error(err),
				)
			}
		}()

		c.Set(ctxIdempotencyCacheKey, cacheKey)
		c.Next()
	}
}

// StoreIdempotentResponse saves a successful response for later replay.
func StoreIdempotentResponse(c *gin.Context, rdb *redis.Client, status int, body any) {
	if rdb == nil {
		return
	}
	ck := c.GetString(ctxIdempotencyCacheKey)
	if ck == "" {
		return
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return
	}
	payload, err := json.Marshal(idempotentResponse{Status: status, Body: raw})
	if err != nil {
		return
	}
	if err := rdb.Set(c.Request.Context(), ck, payload, idempotencyTTL).Err(); err != nil {
		zap.L().Named("middleware.idempotency").Warn("store idempotent response failed",
			zap.String("key", ck),
			zap.Error(err),
		)
	}
}
