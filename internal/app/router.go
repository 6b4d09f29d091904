package app

import (
	"net/http"
	"time"

	"employee-management/internal/employee"
	"employee-management/internal/health"
	"employee-management/internal/metrics"
	"employee-management/internal/middleware"
	"employee-management/internal/shared/validation"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

const apiVersion = "1.0.0"

// RouterDeps is everything NewRouter wires into the HTTP surface. Redis and
// Clock are optional.
type RouterDeps struct {
	DB         *gorm.DB
	Redis      *redis.Client
	Registry   *prometheus.Registry
	Logger     *zap.Logger
	RateLimit  rate.Limit
	RateBurst  int
	Clock      validation.Clock
	Production bool
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	if deps.Logger == nil {
		deps.Logger = zap.L()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Registry == nil {
		deps.Registry = prometheus.NewRegistry()
	}

	m := metrics.NewMetrics(deps.Registry)

	r := gin.New()
	r.Use(
		middleware.Recovery(deps.Logger),
		middleware.RequestID(),
		middleware.ContextLogger(deps.Logger),
		m.Middleware(),
		middleware.RateLimitByIP(deps.RateLimit, deps.RateBurst),
	)

	v := validation.New(deps.Clock)
	employeeRepo := employee.NewRepository(deps.DB)
	employeeService := employee.NewServiceWithMetrics(employeeRepo, m, deps.Logger)
	employeeHandler := employee.NewHandlerWithRedis(employeeService, deps.Redis, deps.Logger)
	checker := health.NewChecker(employeeRepo, deps.Redis, deps.Logger)

	r.GET("/", banner)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	{
		api.GET("/health", checker.Handle)
		employee.RegisterRoutes(api, employeeHandler, v, deps.Redis)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Route not found",
		})
	})

	return r
}

func banner(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Employee Management API",
		"version": apiVersion,
		"endpoints": gin.H{
			"employees":   "/api/employees",
			"departments": "/api/departments",
			"health":      "/api/health",
			"metrics":     "/metrics",
		},
	})
}
