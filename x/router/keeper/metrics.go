package keeper

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RouterMetrics holds all Prometheus metrics for the router module
type RouterMetrics struct {
	OperationsTotal           *prometheus.CounterVec
	OperationDuration         *prometheus.HistogramVec
	PendingRefundsOutstanding prometheus.Gauge
}

var (
	routerMetricsOnce sync.Once
	routerMetrics     *RouterMetrics
)

// NewRouterMetrics creates and registers router metrics (singleton pattern)
func NewRouterMetrics() *RouterMetrics {
	routerMetricsOnce.Do(func() {
		routerMetrics = &RouterMetrics{
			OperationsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "amm",
					Subsystem: "router",
					Name:      "operations_total",
					Help:      "Router operations by outcome",
				},
				[]string{"operation", "status"},
			),
			OperationDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: "amm",
					Subsystem: "router",
					Name:      "operation_duration_seconds",
					Help:      "Router operation latency",
					Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
				},
				[]string{"operation"},
			),
			PendingRefundsOutstanding: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "amm",
					Subsystem: "router",
					Name:      "pending_refunds_outstanding",
					Help:      "Users with pending refunds awaiting recovery",
				},
			),
		}
	})
	return routerMetrics
}

func (m *RouterMetrics) observe(op string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "failed"
	}
	m.OperationsTotal.WithLabelValues(op, status).Inc()
	m.OperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
