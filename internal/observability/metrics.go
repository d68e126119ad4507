package observability

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "incidentscope"

// Metrics holds the Prometheus collectors of a session, on a private
// registry.
type Metrics struct {
	RecordsLoaded       prometheus.Counter
	RowsRejected        prometheus.Counter
	LoadFailures        prometheus.Counter
	Aggregations        prometheus.Counter
	AggregationDuration prometheus.Histogram
	SceneTransitions    *prometheus.CounterVec // labels: direction={next,prev,jump}
	Exports             *prometheus.CounterVec // labels: format={svg,html,xlsx,csv}

	registry *prometheus.Registry
	clock    clockwork.Clock
}

// NewMetrics creates and registers all collectors. Durations are measured
// with clock.
func NewMetrics(clock clockwork.Clock) *Metrics {
	m := &Metrics{
		RecordsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_loaded_total",
			Help:      "Total incident records loaded.",
		}),
		RowsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_rejected_total",
			Help:      "Total CSV rows skipped because a field failed coercion.",
		}),
		LoadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_failures_total",
			Help:      "Total dataset loads that failed.",
		}),
		Aggregations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "aggregations_total",
			Help:      "Total daily aggregations computed.",
		}),
		AggregationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "aggregation_duration_seconds",
			Help:      "Duration of a window aggregation.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		SceneTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scene_transitions_total",
			Help:      "Scene changes by direction.",
		}, []string{"direction"}),
		Exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Rendered exports by format.",
		}, []string{"format"}),
		registry: prometheus.NewRegistry(),
		clock:    clock,
	}

	m.registry.MustRegister(
		m.RecordsLoaded,
		m.RowsRejected,
		m.LoadFailures,
		m.Aggregations,
		m.AggregationDuration,
		m.SceneTransitions,
		m.Exports,
	)

	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Now returns the current time of the metrics clock.
func (m *Metrics) Now() time.Time {
	return m.clock.Now()
}

// Loaded records a successful load.
func (m *Metrics) Loaded(records, rejected int) {
	m.RecordsLoaded.Add(float64(records))
	m.RowsRejected.Add(float64(rejected))
}

// LoadFailed counts a failed load.
func (m *Metrics) LoadFailed() {
	m.LoadFailures.Inc()
}

// ObserveAggregation counts an aggregation that started at start.
func (m *Metrics) ObserveAggregation(start time.Time) {
	m.Aggregations.Inc()
	m.AggregationDuration.Observe(m.clock.Since(start).Seconds())
}

// Transition counts a scene change.
func (m *Metrics) Transition(direction string) {
	m.SceneTransitions.WithLabelValues(direction).Inc()
}

// Exported counts a rendered export.
func (m *Metrics) Exported(format string) {
	m.Exports.WithLabelValues(format).Inc()
}
