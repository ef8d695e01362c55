package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the directory module.
type Metrics struct {
	// Lookups by record kind
	Lookups *prometheus.CounterVec

	// Lookup latency by record kind
	LookupDuration *prometheus.HistogramVec
}

// New creates a new Metrics instance with all directory module metrics registered.
func New() *Metrics {
	return &Metrics{
		Lookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "talentry_directory_lookups_total",
			Help: "Total directory lookups served by record kind",
		}, []string{"kind"}), // kind: "talent", "opportunity", "organization", "match"

		LookupDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "talentry_directory_lookup_duration_seconds",
			Help:    "Duration of directory lookups by record kind",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"kind"}),
	}
}

// IncrementLookup records a served lookup for the given record kind.
func (m *Metrics) IncrementLookup(kind string) {
	if m != nil {
		m.Lookups.WithLabelValues(kind).Inc()
	}
}

// ObserveLookup records the duration of a lookup for the given record kind.
// Call with time.Now() from the start of the operation.
func (m *Metrics) ObserveLookup(kind string, start time.Time) {
	if m != nil {
		m.LookupDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	}
}
