package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks screening outcomes and latency.
type Metrics struct {
	ChecksTotal      *prometheus.CounterVec
	CheckDuration    prometheus.Histogram
	LogEventsQueued  prometheus.Counter
	LogEventsDropped prometheus.Counter
}

// New creates and registers the screening metrics.
func New() *Metrics {
	return &Metrics{
		ChecksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "foyer_screening_checks_total",
			Help: "Screening checks by outcome (match, no_match, error)",
		}, []string{"outcome"}),
		CheckDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "foyer_screening_check_duration_seconds",
			Help:    "End-to-end screening check latency including store loads",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
		LogEventsQueued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "foyer_screening_log_events_queued_total",
			Help: "Screening-log events accepted by the publisher",
		}),
		LogEventsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "foyer_screening_log_events_dropped_total",
			Help: "Screening-log events dropped because the buffer was full",
		}),
	}
}

// RecordCheck increments the outcome counter. Nil-safe so services without
// metrics wired (tests) can skip the setup.
func (m *Metrics) RecordCheck(outcome string) {
	if m == nil {
		return
	}
	m.ChecksTotal.WithLabelValues(outcome).Inc()
}

// ObserveCheckDuration records one check's latency in seconds.
func (m *Metrics) ObserveCheckDuration(seconds float64) {
	if m == nil {
		return
	}
	m.CheckDuration.Observe(seconds)
}

// RecordQueued counts an accepted log event.
func (m *Metrics) RecordQueued() {
	if m == nil {
		return
	}
	m.LogEventsQueued.Inc()
}

// RecordDropped counts a dropped log event.
func (m *Metrics) RecordDropped() {
	if m == nil {
		return
	}
	m.LogEventsDropped.Inc()
}
