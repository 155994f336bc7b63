package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by command name. The cache
	// layer is best effort, so failures surface here rather than as request
	// errors.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// FeedCacheRequests counts global feed cache lookups by outcome (hit/miss).
	FeedCacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_feed_cache_requests_total",
		Help: "Global feed page cache lookups by outcome",
	}, []string{"outcome"})
)

var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus middleware for the given service name.
// The underlying collectors are registered once per process.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		prom = fiberprometheus.New(serviceName)
	})
	return prom
}

// MetricsMiddleware returns the request instrumentation handler.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
