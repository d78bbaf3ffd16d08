package models

import (
	id "foyer/pkg/domain"
	dErrors "foyer/pkg/domain-errors"
)

// RuleParameter names the identity field a rule compares.
// The string values are the canonical field names the console displays, so
// they travel unchanged from configuration storage to match explanations.
type RuleParameter string

const (
	ParameterFirstName RuleParameter = "firstName"
	ParameterLastName  RuleParameter = "lastName"
	ParameterEmail     RuleParameter = "email"
	ParameterPhone     RuleParameter = "phone"
)

// AllParameters lists the supported parameters in display order.
var AllParameters = []RuleParameter{
	ParameterFirstName,
	ParameterLastName,
	ParameterEmail,
	ParameterPhone,
}

// IsValid reports whether the parameter is one the engine understands.
// The engine itself tolerates unknown parameters (the rule simply never
// matches); validation here is for the rule editor boundary.
func (p RuleParameter) IsValid() bool {
	switch p {
	case ParameterFirstName, ParameterLastName, ParameterEmail, ParameterPhone:
		return true
	}
	return false
}

// ParseRuleParameter constructs a RuleParameter from external input.
func ParseRuleParameter(s string) (RuleParameter, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "rule parameter cannot be empty")
	}
	p := RuleParameter(s)
	if !p.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unsupported rule parameter: "+s)
	}
	return p, nil
}

// RuleOperator selects the comparison semantics for one rule.
type RuleOperator string

const (
	// OperatorExact matches when candidate and entry values are equal
	// after case normalization.
	OperatorExact RuleOperator = "exact"
	// OperatorContains matches when the rule's own configured value is a
	// substring of the candidate value.
	OperatorContains RuleOperator = "contains"
	// OperatorPartial matches when either value is a substring of the other.
	OperatorPartial RuleOperator = "partial"
)

// IsValid reports whether the operator is supported.
func (o RuleOperator) IsValid() bool {
	switch o {
	case OperatorExact, OperatorContains, OperatorPartial:
		return true
	}
	return false
}

// ParseRuleOperator constructs a RuleOperator from external input.
func ParseRuleOperator(s string) (RuleOperator, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "rule operator cannot be empty")
	}
	o := RuleOperator(s)
	if !o.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unsupported rule operator: "+s)
	}
	return o, nil
}

// Rule is one atomic comparison: candidate field vs. entry field (exact,
// partial) or candidate field vs. the rule's own literal value (contains).
type Rule struct {
	ID        id.RuleID     `json:"id"`
	Parameter RuleParameter `json:"parameter"`
	Operator  RuleOperator  `json:"operator"`
	// Value is only meaningful for OperatorContains: the literal substring
	// to search for in the candidate value.
	Value string `json:"value,omitempty"`
}

// RuleGroup is a conjunction of rules: a candidate satisfies the group only
// when every rule matches. A group with no rules never matches.
type RuleGroup struct {
	ID    id.GroupID `json:"id"`
	Name  string     `json:"name"`
	Rules []Rule     `json:"rules"`
}

// HasParameter reports whether any rule in the group already uses p.
func (g *RuleGroup) HasParameter(p RuleParameter) bool {
	for _, r := range g.Rules {
		if r.Parameter == p {
			return true
		}
	}
	return false
}

// AvailableParameters returns the parameters not yet used in this group,
// in display order. The rule editor uses this to filter its parameter picker.
func (g *RuleGroup) AvailableParameters() []RuleParameter {
	available := make([]RuleParameter, 0, len(AllParameters))
	for _, p := range AllParameters {
		if !g.HasParameter(p) {
			available = append(available, p)
		}
	}
	return available
}

// RuleSet is the ordered collection of rule groups. Groups are OR'd: a
// candidate matches the set when any group matches. One group is designated
// the default group; console policy keeps at least one rule in it.
type RuleSet struct {
	Groups         []RuleGroup `json:"groups"`
	DefaultGroupID id.GroupID  `json:"default_group_id"`
}

// FindGroup returns a pointer to the group with the given ID, if present.
func (rs *RuleSet) FindGroup(groupID id.GroupID) (*RuleGroup, bool) {
	for i := range rs.Groups {
		if rs.Groups[i].ID == groupID {
			return &rs.Groups[i], true
		}
	}
	return nil, false
}

// IsDefaultGroup reports whether groupID designates the default group.
func (rs *RuleSet) IsDefaultGroup(groupID id.GroupID) bool {
	return rs.DefaultGroupID == groupID && !groupID.IsZero()
}
