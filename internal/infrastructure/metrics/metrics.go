package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records the realtime core's activity. It satisfies the domain
// Recorder so services never import prometheus.
type Metrics struct {
	registry *prometheus.Registry

	// OpenConnections is the number of open transport connections.
	OpenConnections prometheus.Gauge

	// OnlineUsers is the number of users with at least one identified connection.
	OnlineUsers prometheus.Gauge

	// RegistrationCounter counts identification attempts.
	// Labels: outcome (accepted|rejected)
	RegistrationCounter *prometheus.CounterVec

	// EventCounter counts pushed events.
	// Labels: event, status (delivered|dropped)
	EventCounter *prometheus.CounterVec

	// RoomCounter counts rooms minted by the broker.
	RoomCounter prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		OpenConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "socialchat_connections",
			Help: "Number of open realtime connections",
		}),
		OnlineUsers: factory.NewGauge(prometheus.GaugeOpts{
			Name: "socialchat_users_online",
			Help: "Number of users with at least one identified connection",
		}),
		RegistrationCounter: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "socialchat_registrations_total",
			Help: "Total number of identification attempts by outcome",
		}, []string{"outcome"}),
		EventCounter: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "socialchat_events_total",
			Help: "Total number of pushed events by name and status",
		}, []string{"event", "status"}),
		RoomCounter: factory.NewCounter(prometheus.CounterOpts{
			Name: "socialchat_rooms_created_total",
			Help: "Total number of rooms created",
		}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ConnectionOpened() {
	m.OpenConnections.Inc()
}

func (m *Metrics) ConnectionClosed() {
	m.OpenConnections.Dec()
}

func (m *Metrics) Registration(outcome string) {
	m.RegistrationCounter.WithLabelValues(outcome).Inc()
}

func (m *Metrics) UsersOnline(n int) {
	m.OnlineUsers.Set(float64(n))
}

func (m *Metrics) EventDelivered(event string) {
	m.EventCounter.WithLabelValues(event, "delivered").Inc()
}

func (m *Metrics) EventDropped(event string) {
	m.EventCounter.WithLabelValues(event, "dropped").Inc()
}

func (m *Metrics) RoomCreated() {
	m.RoomCounter.Inc()
}
