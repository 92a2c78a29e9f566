package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dream_alchemy",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dream_alchemy",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"method", "route"},
	)

	modelCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dream_alchemy",
			Subsystem: "ai",
			Name:      "calls_total",
			Help:      "Calls made to hosted AI models.",
		},
		[]string{"provider", "operation", "status"},
	)

	modelDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dream_alchemy",
			Subsystem: "ai",
			Name:      "call_duration_seconds",
			Help:      "Latency of hosted AI model calls.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"provider", "operation"},
	)

	rewardsIssued = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dream_alchemy",
			Subsystem: "rewards",
			Name:      "issued_total",
			Help:      "Mining rewards written to the ledger.",
		},
		[]string{"activity"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		modelCalls,
		modelDuration,
		rewardsIssued,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler exposes the registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// ObserveModelCall records one hosted model call.
func ObserveModelCall(provider, operation string, started time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	modelCalls.WithLabelValues(provider, operation, status).Inc()
	modelDuration.WithLabelValues(provider, operation).Observe(time.Since(started).Seconds())
}

func RewardIssued(activity string) {
	rewardsIssued.WithLabelValues(activity).Inc()
}
