package orders

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// storeOperationDuration tracks order store calls by operation and outcome.
	storeOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "order_store_operation_duration_seconds",
		Help:    "Duration of order store operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "result"})

	// breakerState exposes the circuit breaker state (0 closed, 1 open, 2 half-open).
	breakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "order_store_circuit_breaker_state",
		Help: "Circuit breaker state: 0 closed, 1 open, 2 half-open",
	}, []string{"name"})

	// ordersPlaced counts placed orders.
	ordersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Total number of orders placed",
	})
)

// MetricsRecorder provides methods to record order metrics.
type MetricsRecorder struct{}

// NewMetricsRecorder creates a new metrics recorder.
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{}
}

// RecordOperation records one store call.
func (m *MetricsRecorder) RecordOperation(operation, result string, duration time.Duration) {
	storeOperationDuration.WithLabelValues(operation, result).Observe(duration.Seconds())
}

// RecordBreakerState records a breaker transition.
func (m *MetricsRecorder) RecordBreakerState(name string, state BreakerState) {
	breakerState.WithLabelValues(name).Set(float64(state))
}

// RecordOrderPlaced increments the placed orders counter.
func (m *MetricsRecorder) RecordOrderPlaced() {
	ordersPlaced.Inc()
}
