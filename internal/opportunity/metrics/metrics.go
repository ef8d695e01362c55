package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the opportunity module.
type Metrics struct {
	ListingsPublished  prometheus.Counter
	ListingsTerminated prometheus.Counter
	PublishDuration    prometheus.Histogram
	UpdateDuration     prometheus.Histogram
}

// New creates a new Metrics instance with all opportunity module metrics registered.
func New() *Metrics {
	return &Metrics{
		ListingsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "talentry_opportunity_listings_published_total",
			Help: "Total number of opportunities published",
		}),
		ListingsTerminated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "talentry_opportunity_listings_terminated_total",
			Help: "Total number of opportunities terminated",
		}),
		PublishDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "talentry_opportunity_publish_duration_seconds",
			Help:    "Duration of opportunity publish operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		UpdateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "talentry_opportunity_update_duration_seconds",
			Help:    "Duration of opportunity update operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementPublished records a successful publish.
func (m *Metrics) IncrementPublished() {
	if m != nil {
		m.ListingsPublished.Inc()
	}
}

// IncrementTerminated records a successful termination.
func (m *Metrics) IncrementTerminated() {
	if m != nil {
		m.ListingsTerminated.Inc()
	}
}

// ObservePublish records the duration of a publish operation.
// Call with time.Now() from the start of the operation.
func (m *Metrics) ObservePublish(start time.Time) {
	if m != nil {
		m.PublishDuration.Observe(time.Since(start).Seconds())
	}
}

// ObserveUpdate records the duration of an update operation.
// Call with time.Now() from the start of the operation.
func (m *Metrics) ObserveUpdate(start time.Time) {
	if m != nil {
		m.UpdateDuration.Observe(time.Since(start).Seconds())
	}
}
