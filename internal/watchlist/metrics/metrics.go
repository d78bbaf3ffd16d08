package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the watchlist configuration module.
type Metrics struct {
	EntriesCreated     prometheus.Counter
	EntriesDeactivated prometheus.Counter
	LevelsCreated      prometheus.Counter
	RuleSetUpdates     prometheus.Counter
}

// New creates a new Metrics instance with all watchlist module metrics registered.
func New() *Metrics {
	return &Metrics{
		EntriesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "foyer_watchlist_entries_created_total",
			Help: "Total number of watchlist entries created",
		}),
		EntriesDeactivated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "foyer_watchlist_entries_deactivated_total",
			Help: "Total number of watchlist entries deactivated",
		}),
		LevelsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "foyer_watchlist_levels_created_total",
			Help: "Total number of watchlist levels created",
		}),
		RuleSetUpdates: promauto.NewCounter(prometheus.CounterOpts{
			Name: "foyer_watchlist_rule_set_updates_total",
			Help: "Total number of rule set mutations saved",
		}),
	}
}

// IncrementEntriesCreated records a successful entry creation.
func (m *Metrics) IncrementEntriesCreated() {
	if m != nil {
		m.EntriesCreated.Inc()
	}
}

// IncrementEntriesDeactivated records an entry deactivation.
func (m *Metrics) IncrementEntriesDeactivated() {
	if m != nil {
		m.EntriesDeactivated.Inc()
	}
}

// IncrementLevelsCreated records a successful level creation.
func (m *Metrics) IncrementLevelsCreated() {
	if m != nil {
		m.LevelsCreated.Inc()
	}
}

// IncrementRuleSetUpdates records a saved rule set mutation.
func (m *Metrics) IncrementRuleSetUpdates() {
	if m != nil {
		m.RuleSetUpdates.Inc()
	}
}
