// Package domain defines typed identifiers shared across foyer modules.
//
// Each ID is a distinct uuid-backed type so the compiler rejects cross-type
// assignment (a VisitID can never be passed where an EntryID is expected).
// Construct IDs from external input via the Parse helpers, which enforce the
// invariant "IDs are valid, non-nil UUIDs" at trust boundaries.
package domain

import (
	"github.com/google/uuid"

	dErrors "foyer/pkg/domain-errors"
)

// VisitorID identifies a visitor profile.
type VisitorID uuid.UUID

// VisitID identifies a single visit (check-in log row).
type VisitID uuid.UUID

// EntryID identifies a watchlist entry.
type EntryID uuid.UUID

// LevelID identifies a watchlist severity level.
type LevelID uuid.UUID

// RuleID identifies one atomic matching rule.
type RuleID uuid.UUID

// GroupID identifies a rule group within the rule set.
type GroupID uuid.UUID

func (id VisitorID) String() string { return uuid.UUID(id).String() }
func (id VisitID) String() string   { return uuid.UUID(id).String() }
func (id EntryID) String() string   { return uuid.UUID(id).String() }
func (id LevelID) String() string   { return uuid.UUID(id).String() }
func (id RuleID) String() string    { return uuid.UUID(id).String() }
func (id GroupID) String() string   { return uuid.UUID(id).String() }

func (id VisitorID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }
func (id VisitID) IsZero() bool   { return uuid.UUID(id) == uuid.Nil }
func (id EntryID) IsZero() bool   { return uuid.UUID(id) == uuid.Nil }
func (id LevelID) IsZero() bool   { return uuid.UUID(id) == uuid.Nil }
func (id RuleID) IsZero() bool    { return uuid.UUID(id) == uuid.Nil }
func (id GroupID) IsZero() bool   { return uuid.UUID(id) == uuid.Nil }

// parseUUID is the single validation point for all ID types.
// It rejects empty strings, malformed UUIDs, and the nil UUID.
func parseUUID(s, what string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" id cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" id must be a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" id cannot be the nil UUID")
	}
	return u, nil
}

// ParseVisitorID constructs a VisitorID from external input.
func ParseVisitorID(s string) (VisitorID, error) {
	u, err := parseUUID(s, "visitor")
	return VisitorID(u), err
}

// ParseVisitID constructs a VisitID from external input.
func ParseVisitID(s string) (VisitID, error) {
	u, err := parseUUID(s, "visit")
	return VisitID(u), err
}

// ParseEntryID constructs an EntryID from external input.
func ParseEntryID(s string) (EntryID, error) {
	u, err := parseUUID(s, "entry")
	return EntryID(u), err
}

// ParseLevelID constructs a LevelID from external input.
func ParseLevelID(s string) (LevelID, error) {
	u, err := parseUUID(s, "level")
	return LevelID(u), err
}

// ParseRuleID constructs a RuleID from external input.
func ParseRuleID(s string) (RuleID, error) {
	u, err := parseUUID(s, "rule")
	return RuleID(u), err
}

// ParseGroupID constructs a GroupID from external input.
func ParseGroupID(s string) (GroupID, error) {
	u, err := parseUUID(s, "group")
	return GroupID(u), err
}

// NewVisitorID returns a freshly generated VisitorID.
func NewVisitorID() VisitorID { return VisitorID(uuid.New()) }

// NewVisitID returns a freshly generated VisitID.
func NewVisitID() VisitID { return VisitID(uuid.New()) }

// NewEntryID returns a freshly generated EntryID.
func NewEntryID() EntryID { return EntryID(uuid.New()) }

// NewLevelID returns a freshly generated LevelID.
func NewLevelID() LevelID { return LevelID(uuid.New()) }

// NewRuleID returns a freshly generated RuleID.
func NewRuleID() RuleID { return RuleID(uuid.New()) }

// NewGroupID returns a freshly generated GroupID.
func NewGroupID() GroupID { return GroupID(uuid.New()) }
