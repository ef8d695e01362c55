package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the organization module.
type Metrics struct {
	OrganizationsEstablished prometheus.Counter
	OrganizationsDissolved   prometheus.Counter
	OrganizationsVerified    prometheus.Counter
	EstablishDuration        prometheus.Histogram
	UpdateDuration           prometheus.Histogram
}

// New creates a new Metrics instance with all organization module metrics registered.
func New() *Metrics {
	return &Metrics{
		OrganizationsEstablished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "talentry_organization_established_total",
			Help: "Total number of organizations established",
		}),
		OrganizationsDissolved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "talentry_organization_dissolved_total",
			Help: "Total number of organizations dissolved",
		}),
		OrganizationsVerified: promauto.NewCounter(prometheus.CounterOpts{
			Name: "talentry_organization_verified_total",
			Help: "Total number of organizations verified by an admin",
		}),
		EstablishDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "talentry_organization_establish_duration_seconds",
			Help:    "Duration of organization establish operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		UpdateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "talentry_organization_update_duration_seconds",
			Help:    "Duration of organization update operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementEstablished records a successful establish.
func (m *Metrics) IncrementEstablished() {
	if m != nil {
		m.OrganizationsEstablished.Inc()
	}
}

// IncrementDissolved records a successful dissolution.
func (m *Metrics) IncrementDissolved() {
	if m != nil {
		m.OrganizationsDissolved.Inc()
	}
}

// IncrementVerified records a successful admin verification.
func (m *Metrics) IncrementVerified() {
	if m != nil {
		m.OrganizationsVerified.Inc()
	}
}

// ObserveEstablish records the duration of an establish operation.
// Call with time.Now() from the start of the operation.
func (m *Metrics) ObserveEstablish(start time.Time) {
	if m != nil {
		m.EstablishDuration.Observe(time.Since(start).Seconds())
	}
}

// ObserveUpdate records the duration of an update operation.
// Call with time.Now() from the start of the operation.
func (m *Metrics) ObserveUpdate(start time.Time) {
	if m != nil {
		m.UpdateDuration.Observe(time.Since(start).Seconds())
	}
}
