package apiclient

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts backend calls. A nil *Metrics records nothing.
type Metrics struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	authExpiredTotal prometheus.Counter
}

// NewMetrics creates the client metrics and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pgadmin_api_requests_total",
				Help: "Total number of backend API requests.",
			},
			[]string{"method", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pgadmin_api_request_duration_seconds",
				Help:    "Backend API request latencies in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		authExpiredTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pgadmin_api_auth_expired_total",
			Help: "Requests rejected with 401 that ended the session.",
		}),
	}
	reg.MustRegister(m.requestsTotal, m.requestDuration, m.authExpiredTotal)
	return m
}

func (m *Metrics) observe(method, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, status).Inc()
	m.requestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func (m *Metrics) authExpired() {
	if m == nil {
		return
	}
	m.authExpiredTotal.Inc()
}

// AuthExpiredCounter exposes the 401 counter, mainly for tests.
func (m *Metrics) AuthExpiredCounter() prometheus.Counter {
	return m.authExpiredTotal
}
