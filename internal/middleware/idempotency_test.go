package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"employee-management/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

const (
	idempCacheKey = "idemp:/api/employees:192.0.2.1:abc-123"
	idempLockKey  = idempCacheKey + ":lock"
)

func setupIdempotencyRouter(rdb *redis.Client, calls *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/employees", middleware.Idempotency(rdb), func(c *gin.Context) {
		*calls++
		body := gin.H{"ok": true}
		middleware.StoreIdempotentResponse(c, rdb, http.StatusCreated, body)
		c.JSON(http.StatusCreated, body)
	})
	return r
}

func postWithKey(r http.Handler, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/employees", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(middleware.IdempotencyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency(t *testing.T) {
	t.Run("first request stores its response", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		calls := 0

		mock.ExpectGet(idempCacheKey).RedisNil()
		mock.ExpectSetNX(idempLockKey, "locked", 30*time.Second).SetVal(true)
		mock.ExpectSet(idempCacheKey, []byte(`{"status":201,"body":{"ok":true}}`), 24*time.Hour).SetVal("OK")
		mock.ExpectDel(idempLockKey).SetVal(1)

		w := postWithKey(setupIdempotencyRouter(rdb, &calls), "abc-123")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lock is released when a later middleware aborts", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		calls := 0

		mock.ExpectGet(idempCacheKey).RedisNil()
		mock.ExpectSetNX(idempLockKey, "locked", 30*time.Second).SetVal(true)
		mock.ExpectDel(idempLockKey).SetVal(1)

		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.POST("/api/employees",
			middleware.Idempotency(rdb),
			func(c *gin.Context) {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": "Validation failed"})
			},
			func(c *gin.Context) {
				calls++
				c.Status(http.StatusCreated)
			},
		)

		w := postWithKey(r, "abc-123")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("completed request is replayed", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		calls := 0

		mock.ExpectGet(idempCacheKey).SetVal(`{"status":201,"body":{"ok":true}}`)

		w := postWithKey(setupIdempotencyRouter(rdb, &calls), "abc-123")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"ok":true}`, w.Body.String())
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
		assert.Zero(t, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("in-flight duplicate is rejected", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		calls := 0

		mock.ExpectGet(idempCacheKey).RedisNil()
		mock.ExpectSetNX(idempLockKey, "locked", 30*time.Second).SetVal(false)

		w := postWithKey(setupIdempotencyRouter(rdb, &calls), "abc-123")

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "Request is already being processed")
		assert.Zero(t, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis failure lets the request through", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		calls := 0

		mock.ExpectGet(idempCacheKey).SetErr(errors.New("connection refused"))
		mock.ExpectSetNX(idempLockKey, "locked", 30*time.Second).SetErr(errors.New("connection refused"))

		w := postWithKey(setupIdempotencyRouter(rdb, &calls), "abc-123")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no header skips redis", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		calls := 0

		w := postWithKey(setupIdempotencyRouter(rdb, &calls), "")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nil client disables the middleware", func(t *testing.T) {
		calls := 0

		w := postWithKey(setupIdempotencyRouter(nil, &calls), "abc-123")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
	})
}
