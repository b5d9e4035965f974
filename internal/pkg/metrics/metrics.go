package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dorm"

// Metrics methods are nil-safe so use cases can run without a registry.
type Metrics struct {
	registry *prometheus.Registry

	reservations    *prometheus.CounterVec
	cancellations   prometheus.Counter
	promotions      prometheus.Counter
	complaints      *prometheus.CounterVec
	publishFailures prometheus.Counter
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		reservations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_created_total",
			Help:      "Reservations created, by initial status.",
		}, []string{"space", "status"}),
		cancellations: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_canceled_total",
			Help:      "Reservations canceled.",
		}),
		promotions: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_promoted_total",
			Help:      "Waitlisted reservations promoted to confirmed.",
		}),
		complaints: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "complaints_submitted_total",
			Help:      "Maintenance complaints submitted, by urgency.",
		}, []string{"urgency"}),
		publishFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_publish_failures_total",
			Help:      "Reservation events that could not be published.",
		}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests, by route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ReservationCreated(spaceID, status string) {
	if m == nil {
		return
	}
	m.reservations.WithLabelValues(spaceID, status).Inc()
}

func (m *Metrics) ReservationCanceled(promoted bool) {
	if m == nil {
		return
	}
	m.cancellations.Inc()
	if promoted {
		m.promotions.Inc()
	}
}

func (m *Metrics) ComplaintSubmitted(urgency string) {
	if m == nil {
		return
	}
	m.complaints.WithLabelValues(urgency).Inc()
}

func (m *Metrics) PublishFailed() {
	if m == nil {
		return
	}
	m.publishFailures.Inc()
}

func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(seconds)
}
