package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the audit pipeline.
type Metrics struct {
	Published        prometheus.Counter
	Dropped          prometheus.Counter
	DeliveryFailures prometheus.Counter
}

// New creates a new Metrics instance with all audit pipeline metrics registered.
func New() *Metrics {
	return &Metrics{
		Published: promauto.NewCounter(prometheus.CounterOpts{
			Name: "talentry_audit_published_total",
			Help: "Total number of audit events accepted for delivery",
		}),
		Dropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "talentry_audit_dropped_total",
			Help: "Total number of audit events dropped because the buffer was full",
		}),
		DeliveryFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "talentry_audit_delivery_failures_total",
			Help: "Total number of audit events that failed to reach a store or sink",
		}),
	}
}

// IncrementPublished records an event accepted for delivery.
func (m *Metrics) IncrementPublished() {
	if m != nil {
		m.Published.Inc()
	}
}

// IncrementDropped records an event dropped on a full buffer.
func (m *Metrics) IncrementDropped() {
	if m != nil {
		m.Dropped.Inc()
	}
}

// IncrementDeliveryFailure records a failed store append or sink publish.
func (m *Metrics) IncrementDeliveryFailure() {
	if m != nil {
		m.DeliveryFailures.Inc()
	}
}
