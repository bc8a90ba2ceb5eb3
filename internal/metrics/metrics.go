package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/dasturxon/internal/utils"
)

var (
	// RequestCounter counts all HTTP requests with labels.
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDurationHistogram records request duration in seconds.
	RequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

func init() {
	prometheus.MustRegister(RequestCounter, RequestDurationHistogram)
}

// Middleware records request count and latency. The route pattern is used
// as the path label to keep cardinality bounded.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		// The error handler writes the response after this middleware
		// unwinds, so the status must come from the error itself.
		status := c.Response().StatusCode()
		if err != nil {
			status = statusFromError(err)
		}

		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}

		labels := prometheus.Labels{
			"method": c.Method(),
			"path":   path,
			"status": strconv.Itoa(status),
		}
		RequestCounter.With(labels).Inc()
		RequestDurationHistogram.With(labels).Observe(time.Since(start).Seconds())

		return err
	}
}

func statusFromError(err error) int {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
