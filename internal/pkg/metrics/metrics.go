package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestsTotal   *prometheus.CounterVec
	MembersJoined       prometheus.Counter
	MembersLeft         prometheus.Counter
	UsersApproved       prometheus.Counter
	UsersRejected       prometheus.Counter
}

// IncMembersJoined increments the chapter join counter. Safe on a nil
// receiver so metrics stay optional in tests.
func (m *Metrics) IncMembersJoined() {
	if m == nil {
		return
	}
	m.MembersJoined.Inc()
}

// IncMembersLeft increments the chapter leave counter
func (m *Metrics) IncMembersLeft() {
	if m == nil {
		return
	}
	m.MembersLeft.Inc()
}

// IncUsersApproved increments the approved accounts counter
func (m *Metrics) IncUsersApproved() {
	if m == nil {
		return
	}
	m.UsersApproved.Inc()
}

// IncUsersRejected increments the rejected accounts counter
func (m *Metrics) IncUsersRejected() {
	if m == nil {
		return
	}
	m.UsersRejected.Inc()
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "alumni_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "alumni_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		MembersJoined: promauto.NewCounter(prometheus.CounterOpts{
			Name: "alumni_chapter_joins_total",
			Help: "Total number of chapter join operations",
		}),
		MembersLeft: promauto.NewCounter(prometheus.CounterOpts{
			Name: "alumni_chapter_leaves_total",
			Help: "Total number of chapter leave operations",
		}),
		UsersApproved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "alumni_users_approved_total",
			Help: "Total number of approved alumni accounts",
		}),
		UsersRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "alumni_users_rejected_total",
			Help: "Total number of rejected alumni accounts",
		}),
	}
}
