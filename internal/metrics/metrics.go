package metrics

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"employee-management/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors exported on /metrics: HTTP traffic by route
// and the outcome of every employee mutation.
type Metrics struct {
	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
	EmployeeMutations *prometheus.CounterVec
}

// NewMetrics registers all collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "employees_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "employees_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		EmployeeMutations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "employees_mutations_total",
			Help: "Employee create/update/delete operations by result",
		}, []string{"operation", "result"}),
	}

	for _, op := range []string{"create", "update", "delete"} {
		m.EmployeeMutations.WithLabelValues(op, "success")
	}

	return m
}

func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveEmployeeMutation labels the result with the lower-cased apperror
// code ("not_found", "conflict"), "success" or "error".
func (m *Metrics) ObserveEmployeeMutation(operation string, err error) {
	result := "success"
	if err != nil {
		result = "error"
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			result = strings.ToLower(appErr.Code)
		}
	}
	m.EmployeeMutations.WithLabelValues(operation, result).Inc()
}

// Middleware records every request under its route template, so /employees/1
// and /employees/2 share one series.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
