package models

import (
	"strings"
	"time"

	id "foyer/pkg/domain"
	dErrors "foyer/pkg/domain-errors"
	pstrings "foyer/pkg/platform/strings"
)

// EntryStatus is the lifecycle state of a watchlist entry.
type EntryStatus string

const (
	EntryStatusActive   EntryStatus = "active"
	EntryStatusInactive EntryStatus = "inactive"
)

// CanTransitionTo reports whether the status may move to target.
// Transitions: active <-> inactive only.
func (s EntryStatus) CanTransitionTo(target EntryStatus) bool {
	switch s {
	case EntryStatusActive:
		return target == EntryStatusInactive
	case EntryStatusInactive:
		return target == EntryStatusActive
	}
	return false
}

// Entry is a flagged individual on the watchlist.
//
// Invariants:
//   - FirstName and LastName are non-empty
//   - Status is either active or inactive; only active entries participate
//     in match evaluation
//   - LastUpdated moves forward on every mutation
//
// Inactive entries are excluded from screening but retained in storage so
// the console can show history and reactivate them.
type Entry struct {
	ID               id.EntryID  `json:"id"`
	FirstName        string      `json:"first_name"`
	LastName         string      `json:"last_name"`
	AltFirstNames    []string    `json:"alt_first_names,omitempty"`
	AltLastNames     []string    `json:"alt_last_names,omitempty"`
	PrimaryEmail     string      `json:"primary_email,omitempty"`
	PrimaryPhone     string      `json:"primary_phone,omitempty"`
	AdditionalEmails []string    `json:"additional_emails,omitempty"`
	AdditionalPhones []string    `json:"additional_phones,omitempty"`
	LevelID          id.LevelID  `json:"level_id"`
	Notes            string      `json:"notes,omitempty"`
	ReportedBy       string      `json:"reported_by,omitempty"`
	Status           EntryStatus `json:"status"`
	LastUpdated      time.Time   `json:"last_updated"`
}

// NewEntryParams carries the caller-supplied attributes for NewEntry.
type NewEntryParams struct {
	FirstName        string
	LastName         string
	AltFirstNames    []string
	AltLastNames     []string
	PrimaryEmail     string
	PrimaryPhone     string
	AdditionalEmails []string
	AdditionalPhones []string
	LevelID          id.LevelID
	Notes            string
	ReportedBy       string
}

// NewEntry constructs an active watchlist entry, enforcing the non-empty
// name invariant and normalizing list fields.
func NewEntry(entryID id.EntryID, p NewEntryParams, now time.Time) (*Entry, error) {
	firstName := strings.TrimSpace(p.FirstName)
	lastName := strings.TrimSpace(p.LastName)
	if firstName == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "entry first name cannot be empty")
	}
	if lastName == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "entry last name cannot be empty")
	}
	if p.LevelID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "entry must reference a watchlist level")
	}

	return &Entry{
		ID:               entryID,
		FirstName:        firstName,
		LastName:         lastName,
		AltFirstNames:    pstrings.DedupeAndTrim(p.AltFirstNames),
		AltLastNames:     pstrings.DedupeAndTrim(p.AltLastNames),
		PrimaryEmail:     strings.TrimSpace(p.PrimaryEmail),
		PrimaryPhone:     strings.TrimSpace(p.PrimaryPhone),
		AdditionalEmails: pstrings.DedupeAndTrimLower(p.AdditionalEmails),
		AdditionalPhones: pstrings.DedupeAndTrim(p.AdditionalPhones),
		LevelID:          p.LevelID,
		Notes:            p.Notes,
		ReportedBy:       strings.TrimSpace(p.ReportedBy),
		Status:           EntryStatusActive,
		LastUpdated:      now,
	}, nil
}

// IsActive reports whether the entry participates in match evaluation.
func (e *Entry) IsActive() bool {
	return e.Status == EntryStatusActive
}

// CanDeactivate checks if the entry can transition to inactive status.
// Use with ApplyDeactivation in Execute callbacks.
func (e *Entry) CanDeactivate() error {
	if !e.Status.CanTransitionTo(EntryStatusInactive) {
		return dErrors.New(dErrors.CodeInvariantViolation, "entry is already inactive")
	}
	return nil
}

// ApplyDeactivation transitions the entry to inactive status.
// Call CanDeactivate first to validate the transition.
func (e *Entry) ApplyDeactivation(now time.Time) {
	e.Status = EntryStatusInactive
	e.LastUpdated = now
}

// CanReactivate checks if the entry can transition to active status.
// Use with ApplyReactivation in Execute callbacks.
func (e *Entry) CanReactivate() error {
	if !e.Status.CanTransitionTo(EntryStatusActive) {
		return dErrors.New(dErrors.CodeInvariantViolation, "entry is already active")
	}
	return nil
}

// ApplyReactivation transitions the entry to active status.
// Call CanReactivate first to validate the transition.
func (e *Entry) ApplyReactivation(now time.Time) {
	e.Status = EntryStatusActive
	e.LastUpdated = now
}

// ApplyUpdate overwrites the mutable attributes from p, re-validating the
// name invariant. Status is not touched; use the activation methods.
func (e *Entry) ApplyUpdate(p NewEntryParams, now time.Time) error {
	firstName := strings.TrimSpace(p.FirstName)
	lastName := strings.TrimSpace(p.LastName)
	if firstName == "" || lastName == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "entry first and last name cannot be empty")
	}
	if p.LevelID.IsZero() {
		return dErrors.New(dErrors.CodeInvariantViolation, "entry must reference a watchlist level")
	}

	e.FirstName = firstName
	e.LastName = lastName
	e.AltFirstNames = pstrings.DedupeAndTrim(p.AltFirstNames)
	e.AltLastNames = pstrings.DedupeAndTrim(p.AltLastNames)
	e.PrimaryEmail = strings.TrimSpace(p.PrimaryEmail)
	e.PrimaryPhone = strings.TrimSpace(p.PrimaryPhone)
	e.AdditionalEmails = pstrings.DedupeAndTrimLower(p.AdditionalEmails)
	e.AdditionalPhones = pstrings.DedupeAndTrim(p.AdditionalPhones)
	e.LevelID = p.LevelID
	e.Notes = p.Notes
	e.ReportedBy = strings.TrimSpace(p.ReportedBy)
	e.LastUpdated = now
	return nil
}
