// Package models defines the screening module's result types. The raw
// engine verdict is enriched here with level data so callers get one
// self-contained answer per check.
package models

import (
	id "foyer/pkg/domain"
)

// LevelSummary is the slice of a watchlist level a screening caller needs:
// identity, console display attributes, and the approval flag.
type LevelSummary struct {
	ID                     id.LevelID `json:"id"`
	Name                   string     `json:"name"`
	Color                  string     `json:"color,omitempty"`
	RequiresManualApproval bool       `json:"requires_manual_approval"`
}

// Match is one matched watchlist entry with its level and the display
// fields that explain the match to an operator.
type Match struct {
	EntryID       id.EntryID   `json:"entry_id"`
	EntryName     string       `json:"entry_name"`
	MatchedFields []string     `json:"matched_fields"`
	Level         LevelSummary `json:"level"`
}

// Result is the outcome of one screening check.
type Result struct {
	IsMatch bool    `json:"is_match"`
	Matches []Match `json:"matches,omitempty"`

	// RequiresManualApproval is true when any matched entry's level carries
	// the manual-approval flag. The visit flow forces pending approval on it.
	RequiresManualApproval bool `json:"requires_manual_approval"`
}

// MatchedEntryIDs lists the matched entries in evaluation order.
func (r Result) MatchedEntryIDs() []id.EntryID {
	if len(r.Matches) == 0 {
		return nil
	}
	ids := make([]id.EntryID, len(r.Matches))
	for i, m := range r.Matches {
		ids[i] = m.EntryID
	}
	return ids
}

// HighestLevel returns the level of the first match, which the visit flow
// records on the visit. Entry order is the admin's curation order, so the
// first match is the one the console surfaces.
func (r Result) HighestLevel() (LevelSummary, bool) {
	if len(r.Matches) == 0 {
		return LevelSummary{}, false
	}
	return r.Matches[0].Level, true
}
