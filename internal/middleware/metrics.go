package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LikeToggles counts like/unlike attempts by action and outcome.
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postboard_like_toggles_total",
		Help: "Like and unlike attempts by action and result",
	}, []string{"action", "result"})

	// StoreErrors counts classified store errors by operation and error kind.
	StoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postboard_store_errors_total",
		Help: "Store errors by operation and classified kind",
	}, []string{"operation", "kind"})

	// RedisErrors counts Redis command failures by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postboard_redis_errors_total",
		Help: "Redis command errors by command",
	}, []string{"command"})

	// EventPublishFailures counts domain events that could not be delivered.
	EventPublishFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postboard_event_publish_failures_total",
		Help: "Domain events that failed to publish, by event type",
	}, []string{"type"})
)

var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// InitMetrics builds the HTTP request metrics middleware for the named service.
// The collectors live in the default registry, so the instance is created once per process.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		prom = fiberprometheus.New(serviceName)
	})
	return prom
}
