package rules

import (
	"context"
	"sync"

	"foyer/internal/watchlist/models"
	"foyer/pkg/platform/sentinel"
)

// InMemory holds the single active rule set. The rule set is configuration,
// not a collection: there is exactly one per deployment and writers replace
// it wholesale.
type InMemory struct {
	mu      sync.RWMutex
	ruleSet *models.RuleSet
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

// Get returns the current rule set, or sentinel.ErrNotFound before the
// first Save.
func (s *InMemory) Get(_ context.Context) (*models.RuleSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.ruleSet == nil {
		return nil, sentinel.ErrNotFound
	}
	return cloneRuleSet(s.ruleSet), nil
}

// Save replaces the rule set atomically.
func (s *InMemory) Save(_ context.Context, ruleSet *models.RuleSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ruleSet = cloneRuleSet(ruleSet)
	return nil
}

func cloneRuleSet(ruleSet *models.RuleSet) *models.RuleSet {
	clone := &models.RuleSet{DefaultGroupID: ruleSet.DefaultGroupID}
	clone.Groups = make([]models.RuleGroup, len(ruleSet.Groups))
	for i, group := range ruleSet.Groups {
		clone.Groups[i] = group
		clone.Groups[i].Rules = append([]models.Rule(nil), group.Rules...)
	}
	return clone
}
