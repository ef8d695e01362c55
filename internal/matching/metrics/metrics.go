package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the matching module.
type Metrics struct {
	EvaluationsCompleted prometheus.Counter
	EvaluateDuration     prometheus.Histogram
	CacheHits            prometheus.Counter
	CacheMisses          prometheus.Counter
}

// New creates a new Metrics instance with all matching module metrics registered.
func New() *Metrics {
	return &Metrics{
		EvaluationsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "talentry_matching_evaluations_total",
			Help: "Total number of compatibility evaluations completed",
		}),
		EvaluateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "talentry_matching_evaluate_duration_seconds",
			Help:    "Duration of compatibility evaluate operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "talentry_matching_cache_hits_total",
			Help: "Total number of compatibility lookups served from cache",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "talentry_matching_cache_misses_total",
			Help: "Total number of compatibility lookups that missed the cache",
		}),
	}
}

// IncrementEvaluations records a completed evaluation.
func (m *Metrics) IncrementEvaluations() {
	if m != nil {
		m.EvaluationsCompleted.Inc()
	}
}

// ObserveEvaluate records the duration of an evaluate operation.
// Call with time.Now() from the start of the operation.
func (m *Metrics) ObserveEvaluate(start time.Time) {
	if m != nil {
		m.EvaluateDuration.Observe(time.Since(start).Seconds())
	}
}

// IncrementCacheHit records a lookup served from the cache.
func (m *Metrics) IncrementCacheHit() {
	if m != nil {
		m.CacheHits.Inc()
	}
}

// IncrementCacheMiss records a lookup that fell through to the primary store.
func (m *Metrics) IncrementCacheMiss() {
	if m != nil {
		m.CacheMisses.Inc()
	}
}
