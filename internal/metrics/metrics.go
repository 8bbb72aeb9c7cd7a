package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "luxurystay"

var (
	once sync.Once

	dispatchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatch_total",
			Help:      "Frames handed to live connections, by event and outcome.",
		},
		[]string{"event", "outcome"},
	)

	wsConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ws_connections",
			Help:      "Currently open websocket connections.",
		},
	)

	bookingTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_transitions_total",
			Help:      "Persisted booking status transitions.",
		},
		[]string{"from", "to"},
	)

	bookingCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_created_total",
			Help:      "Bookings created.",
		},
	)

	messagesSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_messages_total",
			Help:      "Chat messages persisted.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(dispatchTotal, wsConnections, bookingTransitions, bookingCreated, messagesSent)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

const (
	OutcomeDelivered = "delivered"
	OutcomeDropped   = "dropped"
)

func IncDispatch(event, outcome string) {
	dispatchTotal.WithLabelValues(event, outcome).Inc()
}

func ConnectionOpened() { wsConnections.Inc() }

func ConnectionClosed() { wsConnections.Dec() }

func IncBookingTransition(from, to string) {
	bookingTransitions.WithLabelValues(from, to).Inc()
}

func IncBookingCreated() {
	bookingCreated.Inc()
}

func IncMessageSent() {
	messagesSent.Inc()
}
