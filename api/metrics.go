package api

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// APIMetrics holds the Prometheus metrics of the HTTP API
type APIMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RateLimited     prometheus.Counter
}

var (
	apiMetricsOnce sync.Once
	apiMetrics     *APIMetrics
)

// NewAPIMetrics creates and registers API metrics (singleton pattern)
func NewAPIMetrics() *APIMetrics {
	apiMetricsOnce.Do(func() {
		apiMetrics = &APIMetrics{
			RequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "amm",
					Subsystem: "api",
					Name:      "requests_total",
					Help:      "HTTP requests served",
				},
				[]string{"method", "route", "status"},
			),
			RequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: "amm",
					Subsystem: "api",
					Name:      "request_duration_seconds",
					Help:      "HTTP request latency",
					Buckets:   prometheus.DefBuckets,
				},
				[]string{"method", "route"},
			),
			RateLimited: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "amm",
					Subsystem: "api",
					Name:      "rate_limited_total",
					Help:      "Requests rejected by the rate limiter",
				},
			),
		}
	})
	return apiMetrics
}
