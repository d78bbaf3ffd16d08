package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks the visit lifecycle.
type Metrics struct {
	Registrations *prometheus.CounterVec
	Decisions     *prometheus.CounterVec
	CheckIns      prometheus.Counter
	CheckOuts     prometheus.Counter
}

// New creates and registers the visit metrics.
func New() *Metrics {
	return &Metrics{
		Registrations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "foyer_visit_registrations_total",
			Help: "Visit registrations by initial status (approved, pending_approval)",
		}, []string{"status"}),
		Decisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "foyer_visit_decisions_total",
			Help: "Admin decisions on pending visits (approved, denied)",
		}, []string{"decision"}),
		CheckIns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "foyer_visit_checkins_total",
			Help: "Completed visitor check-ins",
		}),
		CheckOuts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "foyer_visit_checkouts_total",
			Help: "Completed visitor check-outs",
		}),
	}
}

// RecordRegistration counts one registration by initial status. Nil-safe.
func (m *Metrics) RecordRegistration(status string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(status).Inc()
}

// RecordDecision counts one admin decision.
func (m *Metrics) RecordDecision(decision string) {
	if m == nil {
		return
	}
	m.Decisions.WithLabelValues(decision).Inc()
}

// RecordCheckIn counts one check-in.
func (m *Metrics) RecordCheckIn() {
	if m == nil {
		return
	}
	m.CheckIns.Inc()
}

// RecordCheckOut counts one check-out.
func (m *Metrics) RecordCheckOut() {
	if m == nil {
		return
	}
	m.CheckOuts.Inc()
}
