package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the talent module.
type Metrics struct {
	ProfilesEstablished prometheus.Counter
	ProfilesDeactivated prometheus.Counter
	EstablishDuration   prometheus.Histogram
	UpdateDuration      prometheus.Histogram
}

// New creates a new Metrics instance with all talent module metrics registered.
func New() *Metrics {
	return &Metrics{
		ProfilesEstablished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "talentry_talent_profiles_established_total",
			Help: "Total number of talent profiles established",
		}),
		ProfilesDeactivated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "talentry_talent_profiles_deactivated_total",
			Help: "Total number of talent profiles deactivated",
		}),
		EstablishDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "talentry_talent_establish_duration_seconds",
			Help:    "Duration of profile establish operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		UpdateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "talentry_talent_update_duration_seconds",
			Help:    "Duration of profile update operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementEstablished records a successful profile establish.
func (m *Metrics) IncrementEstablished() {
	if m != nil {
		m.ProfilesEstablished.Inc()
	}
}

// IncrementDeactivated records a successful profile deactivation.
func (m *Metrics) IncrementDeactivated() {
	if m != nil {
		m.ProfilesDeactivated.Inc()
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
