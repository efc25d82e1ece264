package pricing

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// quotesTotal counts fee quotes by outcome.
	quotesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "delivery_fee_quotes_total",
		Help: "Total number of delivery fee quotes by result",
	}, []string{"result"}) // result: ok, invalid, unknown_restaurant, error

	// quoteDuration tracks the time taken to produce a quote, including location lookups.
	quoteDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "delivery_fee_quote_duration_seconds",
		Help:    "Time taken to produce a delivery fee quote",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})

	// legDistance tracks the distribution of quoted leg distances.
	legDistance = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "delivery_fee_leg_distance_km",
		Help:    "Distance of quoted restaurant legs in kilometers",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 50, 200},
	})

	// quotedFee tracks the distribution of quoted fees.
	quotedFee = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "delivery_fee_quoted_amount",
		Help:    "Quoted delivery fee in currency units",
		Buckets: []float64{30, 60, 100, 200, 500, 1000, 2500, 5000},
	})
)

// MetricsRecorder provides methods to record pricing metrics.
type MetricsRecorder struct{}

// NewMetricsRecorder creates a new metrics recorder.
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{}
}

// RecordQuote records the outcome and duration of a quote.
func (m *MetricsRecorder) RecordQuote(result string, duration time.Duration) {
	quotesTotal.WithLabelValues(result).Inc()
	quoteDuration.Observe(duration.Seconds())
}

// RecordLeg records the distance of a single priced leg.
func (m *MetricsRecorder) RecordLeg(distanceKm float64) {
	legDistance.Observe(distanceKm)
}

// RecordFee records a quoted fee.
func (m *MetricsRecorder) RecordFee(fee int64) {
	quotedFee.Observe(float64(fee))
}
