package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	watchlistmetrics "foyer/internal/watchlist/metrics"
	"foyer/internal/watchlist/models"
	id "foyer/pkg/domain"
	dErrors "foyer/pkg/domain-errors"
	"foyer/pkg/platform/sentinel"
	"foyer/pkg/requestcontext"
)

// RuleSetService is the rule editor: it owns the policies the engine itself
// does not enforce. Within one group a parameter may appear in at most one
// rule, and the default group always retains at least one rule. The engine
// tolerates rule sets that break these policies; this service never
// produces one.
type RuleSetService struct {
	ruleSets RuleSetStore
	logger   *slog.Logger
	metrics  *watchlistmetrics.Metrics
}

func NewRuleSetService(ruleSets RuleSetStore, opts ...Option) *RuleSetService {
	cfg := applyOptions(opts)
	return &RuleSetService{
		ruleSets: ruleSets,
		logger:   cfg.logger,
		metrics:  cfg.metrics,
	}
}

// RuleParams carries the caller-supplied attributes for adding or updating
// a rule.
type RuleParams struct {
	Parameter string
	Operator  string
	Value     string
}

func (s *RuleSetService) GetRuleSet(ctx context.Context) (*models.RuleSet, error) {
	return s.load(ctx)
}

// load returns the stored rule set, or an empty one when none was ever
// saved. The store row is created lazily on the first mutation, so a fresh
// deployment can bootstrap its first group through AddGroup.
func (s *RuleSetService) load(ctx context.Context) (*models.RuleSet, error) {
	ruleSet, err := s.ruleSets.Get(ctx)
	if errors.Is(err, sentinel.ErrNotFound) {
		return &models.RuleSet{}, nil
	}
	if err != nil {
		return nil, translateStoreErr(err, "rule set")
	}
	return ruleSet, nil
}

// AddGroup appends an empty group. Empty groups never match; they exist so
// an admin can build up rules before the group takes effect.
func (s *RuleSetService) AddGroup(ctx context.Context, name string) (*models.RuleSet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "group name is required")
	}

	ruleSet, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	group := models.RuleGroup{
		ID:   id.GroupID(uuid.New()),
		Name: name,
	}
	ruleSet.Groups = append(ruleSet.Groups, group)
	// The first group a deployment creates becomes the default group.
	if ruleSet.DefaultGroupID.IsZero() {
		ruleSet.DefaultGroupID = group.ID
	}

	return s.save(ctx, ruleSet)
}

// RenameGroup changes a group's display name.
func (s *RuleSetService) RenameGroup(ctx context.Context, groupID id.GroupID, name string) (*models.RuleSet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "group name is required")
	}

	ruleSet, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	group, ok := ruleSet.FindGroup(groupID)
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "rule group not found")
	}
	group.Name = name

	return s.save(ctx, ruleSet)
}

// DeleteGroup removes a group. The default group cannot be deleted.
func (s *RuleSetService) DeleteGroup(ctx context.Context, groupID id.GroupID) (*models.RuleSet, error) {
	ruleSet, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if ruleSet.IsDefaultGroup(groupID) {
		return nil, dErrors.New(dErrors.CodeConflict, "the default group cannot be deleted")
	}

	found := false
	groups := ruleSet.Groups[:0]
	for _, group := range ruleSet.Groups {
		if group.ID == groupID {
			found = true
			continue
		}
		groups = append(groups, group)
	}
	if !found {
		return nil, dErrors.New(dErrors.CodeNotFound, "rule group not found")
	}
	ruleSet.Groups = groups

	return s.save(ctx, ruleSet)
}

// AddRule appends a rule to a group, enforcing the one-rule-per-parameter
// editor policy.
func (s *RuleSetService) AddRule(ctx context.Context, groupID id.GroupID, p RuleParams) (*models.RuleSet, error) {
	rule, err := buildRule(id.RuleID(uuid.New()), p)
	if err != nil {
		return nil, err
	}

	ruleSet, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	group, ok := ruleSet.FindGroup(groupID)
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "rule group not found")
	}
	if group.HasParameter(rule.Parameter) {
		return nil, dErrors.New(dErrors.CodeConflict,
			"parameter "+string(rule.Parameter)+" is already used in this group")
	}
	group.Rules = append(group.Rules, rule)

	return s.save(ctx, ruleSet)
}

// UpdateRule replaces a rule's parameter, operator, and value.
func (s *RuleSetService) UpdateRule(ctx context.Context, groupID id.GroupID, ruleID id.RuleID, p RuleParams) (*models.RuleSet, error) {
	updated, err := buildRule(ruleID, p)
	if err != nil {
		return nil, err
	}

	ruleSet, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	group, ok := ruleSet.FindGroup(groupID)
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "rule group not found")
	}

	idx := -1
	for i, rule := range group.Rules {
		if rule.ID == ruleID {
			idx = i
			continue
		}
		if rule.Parameter == updated.Parameter {
			return nil, dErrors.New(dErrors.CodeConflict,
				"parameter "+string(updated.Parameter)+" is already used in this group")
		}
	}
	if idx < 0 {
		return nil, dErrors.New(dErrors.CodeNotFound, "rule not found")
	}
	group.Rules[idx] = updated

	return s.save(ctx, ruleSet)
}

// DeleteRule removes a rule. The default group must retain at least one
// rule so a deployment always has a working screening configuration.
func (s *RuleSetService) DeleteRule(ctx context.Context, groupID id.GroupID, ruleID id.RuleID) (*models.RuleSet, error) {
	ruleSet, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	group, ok := ruleSet.FindGroup(groupID)
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "rule group not found")
	}
	if ruleSet.IsDefaultGroup(groupID) && len(group.Rules) <= 1 {
		return nil, dErrors.New(dErrors.CodeConflict, "the default group must keep at least one rule")
	}

	found := false
	rules := group.Rules[:0]
	for _, rule := range group.Rules {
		if rule.ID == ruleID {
			found = true
			continue
		}
		rules = append(rules, rule)
	}
	if !found {
		return nil, dErrors.New(dErrors.CodeNotFound, "rule not found")
	}
	group.Rules = rules

	return s.save(ctx, ruleSet)
}

// AvailableParameters returns the parameters not yet used in the group, for
// the console's add-rule picker.
func (s *RuleSetService) AvailableParameters(ctx context.Context, groupID id.GroupID) ([]models.RuleParameter, error) {
	ruleSet, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	group, ok := ruleSet.FindGroup(groupID)
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "rule group not found")
	}
	return group.AvailableParameters(), nil
}

func (s *RuleSetService) save(ctx context.Context, ruleSet *models.RuleSet) (*models.RuleSet, error) {
	if err := s.ruleSets.Save(ctx, ruleSet); err != nil {
		return nil, translateStoreErr(err, "rule set")
	}
	s.logger.InfoContext(ctx, "rule set updated",
		"groups", len(ruleSet.Groups),
		"request_id", requestcontext.RequestID(ctx),
	)
	s.metrics.IncrementRuleSetUpdates()
	return ruleSet, nil
}

func buildRule(ruleID id.RuleID, p RuleParams) (models.Rule, error) {
	parameter, err := models.ParseRuleParameter(p.Parameter)
	if err != nil {
		return models.Rule{}, err
	}
	operator, err := models.ParseRuleOperator(p.Operator)
	if err != nil {
		return models.Rule{}, err
	}

	value := strings.TrimSpace(p.Value)
	if operator == models.OperatorContains && value == "" {
		return models.Rule{}, dErrors.New(dErrors.CodeInvalidInput, "contains rules require a value")
	}
	if operator != models.OperatorContains {
		value = ""
	}

	return models.Rule{ID: ruleID, Parameter: parameter, Operator: operator, Value: value}, nil
}
