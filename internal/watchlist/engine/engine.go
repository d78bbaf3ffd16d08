// Package engine implements watchlist match evaluation.
//
// This is pure domain logic - no I/O, no side effects. Evaluate receives the
// candidate, the current rule set, and the entry collection as arguments and
// never reads ambient state, so callers can re-evaluate against freshly
// loaded configuration on every check and tests can drive it directly.
package engine

import (
	"strings"

	"foyer/internal/watchlist/models"
	id "foyer/pkg/domain"
)

// Candidate is the incoming visitor identity being checked against the
// watchlist. Any field may be empty.
type Candidate struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// Options tunes evaluation behavior.
type Options struct {
	// RequireNonEmpty guards the exact and partial operators against
	// counting two empty values as a match. Off by default: the shipped
	// console treated empty-equals-empty as a match, and deployments that
	// rely on that behavior keep it until they opt in to the guard.
	RequireNonEmpty bool
}

// Result is the outcome of one evaluation: the verdict, the matched entry
// IDs in entry-collection order, and the per-entry matched field names used
// for the console's match explanation.
type Result struct {
	IsMatch         bool
	MatchedEntryIDs []id.EntryID

	fields map[id.EntryID][]string
}

// MatchedFields returns the display field names recorded for a matched
// entry, or nil when the entry did not match.
func (r Result) MatchedFields(entryID id.EntryID) []string {
	return r.fields[entryID]
}

// Evaluate checks the candidate against every active entry using the rule
// set. Groups are OR'd in order with the first matching group deciding the
// entry; rules within a group are AND'd; a group with no rules never
// matches. The function is total: malformed rules (unknown parameter or
// operator) simply never match, and missing values compare as empty strings.
func Evaluate(c Candidate, rs models.RuleSet, entries []models.Entry, opts Options) Result {
	result := Result{fields: make(map[id.EntryID][]string)}

	for i := range entries {
		entry := &entries[i]
		if !entry.IsActive() {
			continue
		}
		if !entryMatches(c, rs, entry, opts) {
			continue
		}
		result.MatchedEntryIDs = append(result.MatchedEntryIDs, entry.ID)
		result.fields[entry.ID] = MatchedFields(c, entry)
	}

	result.IsMatch = len(result.MatchedEntryIDs) > 0
	return result
}

// entryMatches reports whether any group matches the (candidate, entry)
// pair. Evaluation stops at the first matching group: groups are OR'd, so
// one suffices and later groups carry no extra information.
func entryMatches(c Candidate, rs models.RuleSet, entry *models.Entry, opts Options) bool {
	for _, group := range rs.Groups {
		if len(group.Rules) == 0 {
			// An empty group contributes nothing, not a vacuous true.
			continue
		}
		if groupMatches(c, group, entry, opts) {
			return true
		}
	}
	return false
}

// groupMatches AND's every rule in the group. Short-circuits on the first
// failing rule; rule evaluation has no side effects to skip.
func groupMatches(c Candidate, group models.RuleGroup, entry *models.Entry, opts Options) bool {
	for _, rule := range group.Rules {
		if !ruleMatches(c, rule, entry, opts) {
			return false
		}
	}
	return true
}

// ruleMatches applies one rule's operator to the candidate field and the
// entry's corresponding primary field. Both sides are lower-cased and
// missing values become empty strings; whitespace is preserved as-is.
func ruleMatches(c Candidate, rule models.Rule, entry *models.Entry, opts Options) bool {
	candVal, ok := candidateField(c, rule.Parameter)
	if !ok {
		// Unknown parameter: never match. Keeps the engine robust against
		// configuration written by a newer rule editor.
		return false
	}
	entryVal, _ := entryField(entry, rule.Parameter)

	candVal = strings.ToLower(candVal)
	entryVal = strings.ToLower(entryVal)

	switch rule.Operator {
	case models.OperatorExact:
		if opts.RequireNonEmpty && (candVal == "" || entryVal == "") {
			return false
		}
		return candVal == entryVal
	case models.OperatorContains:
		needle := strings.ToLower(rule.Value)
		if needle == "" {
			return false
		}
		return strings.Contains(candVal, needle)
	case models.OperatorPartial:
		if opts.RequireNonEmpty && (candVal == "" || entryVal == "") {
			return false
		}
		return strings.Contains(candVal, entryVal) || strings.Contains(entryVal, candVal)
	default:
		// Unknown operator: never match.
		return false
	}
}

// candidateField reads the candidate value for a parameter.
func candidateField(c Candidate, p models.RuleParameter) (string, bool) {
	switch p {
	case models.ParameterFirstName:
		return c.FirstName, true
	case models.ParameterLastName:
		return c.LastName, true
	case models.ParameterEmail:
		return c.Email, true
	case models.ParameterPhone:
		return c.Phone, true
	}
	return "", false
}

// entryField reads the entry's primary value for a parameter. Alias names
// and additional emails/phones are deliberately not consulted: base
// evaluation compares primary fields only.
func entryField(e *models.Entry, p models.RuleParameter) (string, bool) {
	switch p {
	case models.ParameterFirstName:
		return e.FirstName, true
	case models.ParameterLastName:
		return e.LastName, true
	case models.ParameterEmail:
		return e.PrimaryEmail, true
	case models.ParameterPhone:
		return e.PrimaryPhone, true
	}
	return "", false
}

// MatchedFields determines which field names to show the console for a
// (candidate, entry) pair. This is a presentation concern recomputed
// independently of the rule verdict: names count on symmetric overlap,
// email and phone on case-insensitive equality. When nothing specific is
// detected it falls back to the generic first/last name pair so the
// explanation panel is never empty.
func MatchedFields(c Candidate, e *models.Entry) []string {
	var fields []string

	if nameOverlaps(c.FirstName, e.FirstName) {
		fields = append(fields, string(models.ParameterFirstName))
	}
	if nameOverlaps(c.LastName, e.LastName) {
		fields = append(fields, string(models.ParameterLastName))
	}
	if equalsFold(c.Email, e.PrimaryEmail) {
		fields = append(fields, string(models.ParameterEmail))
	}
	if equalsFold(c.Phone, e.PrimaryPhone) {
		fields = append(fields, string(models.ParameterPhone))
	}

	if len(fields) == 0 {
		return []string{string(models.ParameterFirstName), string(models.ParameterLastName)}
	}
	return fields
}

func nameOverlaps(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func equalsFold(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}
