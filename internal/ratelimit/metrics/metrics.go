package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the rate limiter.
type Metrics struct {
	// Requests blocked by endpoint class
	Blocked *prometheus.CounterVec

	// Store failures that made the limiter fail open
	CheckFailures prometheus.Counter
}

// New creates a new Metrics instance with all rate limiter metrics registered.
func New() *Metrics {
	return &Metrics{
		Blocked: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "talentry_ratelimit_blocked_total",
			Help: "Total requests rejected by the rate limiter by endpoint class",
		}, []string{"class"}), // class: "read", "write"

		CheckFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "talentry_ratelimit_check_failures_total",
			Help: "Total rate limit checks that failed open due to store errors",
		}),
	}
}

// IncrementBlocked records a rejected request for the given endpoint class.
func (m *Metrics) IncrementBlocked(class string) {
	if m != nil {
		m.Blocked.WithLabelValues(class).Inc()
	}
}

// IncrementCheckFailure records a limiter store failure.
func (m *Metrics) IncrementCheckFailure() {
	if m != nil {
		m.CheckFailures.Inc()
	}
}
