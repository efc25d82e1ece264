package chat

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// connectedClients tracks clients across all rooms.
	connectedClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chat_connected_clients",
		Help: "Number of clients connected to order chat rooms",
	})

	// messagesTotal counts per-recipient deliveries by outcome.
	messagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_messages_total",
		Help: "Chat messages queued per recipient, by result",
	}, []string{"result"})
)

// MetricsRecorder provides methods to record chat metrics.
type MetricsRecorder struct{}

// NewMetricsRecorder creates a new metrics recorder.
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{}
}

// RecordJoin records a client joining a room.
func (m *MetricsRecorder) RecordJoin() {
	connectedClients.Inc()
}

// RecordLeave records a client leaving a room.
func (m *MetricsRecorder) RecordLeave() {
	connectedClients.Dec()
}

// RecordBroadcast records one broadcast.
func (m *MetricsRecorder) RecordBroadcast(delivered, dropped int) {
	messagesTotal.WithLabelValues("delivered").Add(float64(delivered))
	messagesTotal.WithLabelValues("dropped").Add(float64(dropped))
}
