// Package metrics holds the Prometheus metrics of the service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for tripsplit.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration     *prometheus.HistogramVec
	settlementRuns      prometheus.Counter
	settlementTransfers prometheus.Histogram
	tripOperations      *prometheus.CounterVec
}

// New creates a dedicated registry and registers all metrics in it, so that
// several instances (e.g. one per test) never collide.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tripsplit_http_request_duration_seconds",
				Help:    "Duration of HTTP requests by route, method and status.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method", "status"},
		),
		settlementRuns: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "tripsplit_settlement_runs_total",
				Help: "Total settlement computations.",
			},
		),
		settlementTransfers: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tripsplit_settlement_transfers",
				Help:    "Number of transfers produced per settlement computation.",
				Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
			},
		),
		tripOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tripsplit_trip_operations_total",
				Help: "Trip mutations by operation.",
			},
			[]string{"operation"},
		),
	}
}

// ObserveRequest records the duration of one HTTP request.
func (m *Metrics) ObserveRequest(route, method string, status int, d time.Duration) {
	m.requestDuration.WithLabelValues(route, method, strconv.Itoa(status)).Observe(d.Seconds())
}

// ObserveSettlement records one settlement computation and its number of transfers.
func (m *Metrics) ObserveSettlement(transfers int) {
	m.settlementRuns.Inc()
	m.settlementTransfers.Observe(float64(transfers))
}

// IncTripOperation counts a trip mutation (create_trip, add_expense, ...).
func (m *Metrics) IncTripOperation(operation string) {
	m.tripOperations.WithLabelValues(operation).Inc()
}
