package models

import (
	"strings"
	"time"

	id "foyer/pkg/domain"
	dErrors "foyer/pkg/domain-errors"
	pstrings "foyer/pkg/platform/strings"
)

// maxLevelNameLength bounds level names for console display.
const maxLevelNameLength = 64

// Level is a watchlist severity tier (e.g. "High risk"). Every entry
// references exactly one level. Level flags drive what happens when a
// screening match lands on an entry of that level:
//
//   - SendEmailNotifications: notify Recipients
//   - SystemLogging: emit a screening-log event
//   - RequiresManualApproval: force the visit into pending approval
//
// Name uniqueness (case-insensitive) is enforced by the level store.
type Level struct {
	ID                     id.LevelID `json:"id"`
	Name                   string     `json:"name"`
	Color                  string     `json:"color,omitempty"`
	SendEmailNotifications bool       `json:"send_email_notifications"`
	Recipients             []string   `json:"recipients,omitempty"`
	SystemLogging          bool       `json:"system_logging"`
	RequiresManualApproval bool       `json:"requires_manual_approval"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// NewLevelParams carries the caller-supplied attributes for NewLevel.
type NewLevelParams struct {
	Name                   string
	Color                  string
	SendEmailNotifications bool
	Recipients             []string
	SystemLogging          bool
	RequiresManualApproval bool
}

// NewLevel constructs a level, enforcing the name invariants.
func NewLevel(levelID id.LevelID, p NewLevelParams, now time.Time) (*Level, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "level name cannot be empty")
	}
	if len(name) > maxLevelNameLength {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "level name must be 64 characters or less")
	}

	return &Level{
		ID:                     levelID,
		Name:                   name,
		Color:                  strings.TrimSpace(p.Color),
		SendEmailNotifications: p.SendEmailNotifications,
		Recipients:             pstrings.DedupeAndTrimLower(p.Recipients),
		SystemLogging:          p.SystemLogging,
		RequiresManualApproval: p.RequiresManualApproval,
		CreatedAt:              now,
		UpdatedAt:              now,
	}, nil
}

// ApplyUpdate overwrites the mutable attributes from p, re-validating the
// name invariants.
func (l *Level) ApplyUpdate(p NewLevelParams, now time.Time) error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "level name cannot be empty")
	}
	if len(name) > maxLevelNameLength {
		return dErrors.New(dErrors.CodeInvariantViolation, "level name must be 64 characters or less")
	}

	l.Name = name
	l.Color = strings.TrimSpace(p.Color)
	l.SendEmailNotifications = p.SendEmailNotifications
	l.Recipients = pstrings.DedupeAndTrimLower(p.Recipients)
	l.SystemLogging = p.SystemLogging
	l.RequiresManualApproval = p.RequiresManualApproval
	l.UpdatedAt = now
	return nil
}
