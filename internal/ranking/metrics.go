package ranking

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// rankingDuration tracks the time taken to rank the available order pool.
	rankingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "order_ranking_duration_seconds",
		Help:    "Time taken to rank available orders by sort key",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	}, []string{"sort_by"})

	// poolSize tracks how many orders were ranked per request.
	poolSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_ranking_pool_size",
		Help:    "Number of orders in each ranking request",
		Buckets: []float64{0, 1, 5, 10, 20, 50, 100, 500},
	})

	// missingGeodata tracks orders that had no located restaurant.
	missingGeodata = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_ranking_missing_geodata_total",
		Help: "Total number of ranked orders without any restaurant location",
	})
)

// MetricsRecorder provides methods to record ranking metrics.
type MetricsRecorder struct{}

// NewMetricsRecorder creates a new metrics recorder.
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{}
}

// RecordRanking records one ranking pass.
func (m *MetricsRecorder) RecordRanking(sortBy string, orders int, duration time.Duration) {
	if sortBy == "" {
		sortBy = string(SortByCreatedAt)
	}
	rankingDuration.WithLabelValues(sortBy).Observe(duration.Seconds())
	poolSize.Observe(float64(orders))
}

// RecordMissingGeodata records the number of orders ranked without a distance.
func (m *MetricsRecorder) RecordMissingGeodata(count int) {
	missingGeodata.Add(float64(count))
}
