package models

import (
	"strings"
	"time"

	id "foyer/pkg/domain"
	dErrors "foyer/pkg/domain-errors"
)

// VisitStatus is the visit lifecycle state.
type VisitStatus string

const (
	// VisitStatusPendingApproval: the screening flagged the visitor, or a
	// matched level requires manual approval. An admin must decide.
	VisitStatusPendingApproval VisitStatus = "pending_approval"
	// VisitStatusApproved: cleared for check-in.
	VisitStatusApproved VisitStatus = "approved"
	// VisitStatusCheckedIn: the visitor is on site.
	VisitStatusCheckedIn VisitStatus = "checked_in"
	// VisitStatusCheckedOut: the visit completed. Terminal.
	VisitStatusCheckedOut VisitStatus = "checked_out"
	// VisitStatusDenied: an admin rejected the visit. Terminal.
	VisitStatusDenied VisitStatus = "denied"
)

// Visit is one registration-to-checkout pass through the lobby.
type Visit struct {
	ID        id.VisitID   `json:"id"`
	VisitorID id.VisitorID `json:"visitor_id"`
	HostName  string       `json:"host_name,omitempty"`
	Purpose   string       `json:"purpose,omitempty"`
	Status    VisitStatus  `json:"status"`

	// Screening outcome recorded at registration time. The entry IDs give
	// the approval console the match context without re-screening.
	ScreeningMatched bool         `json:"screening_matched"`
	MatchedEntryIDs  []id.EntryID `json:"matched_entry_ids,omitempty"`

	DenialReason string `json:"denial_reason,omitempty"`

	// BadgeCodeHash is the bcrypt hash of the visitor's badge code, set on
	// approval. Never serialized.
	BadgeCodeHash string `json:"-"`

	ScheduledFor *time.Time `json:"scheduled_for,omitempty"`
	CheckedInAt  *time.Time `json:"checked_in_at,omitempty"`
	CheckedOutAt *time.Time `json:"checked_out_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewVisitParams carries the caller-supplied attributes for NewVisit.
type NewVisitParams struct {
	VisitorID    id.VisitorID
	HostName     string
	Purpose      string
	ScheduledFor *time.Time
}

// NewVisit constructs a visit in its initial status: approved when the
// screening cleared the visitor, pending approval otherwise.
func NewVisit(visitID id.VisitID, p NewVisitParams, matched bool, matchedEntryIDs []id.EntryID, needsApproval bool, now time.Time) (*Visit, error) {
	if p.VisitorID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "visit must reference a visitor")
	}

	status := VisitStatusApproved
	if matched || needsApproval {
		status = VisitStatusPendingApproval
	}

	return &Visit{
		ID:               visitID,
		VisitorID:        p.VisitorID,
		HostName:         strings.TrimSpace(p.HostName),
		Purpose:          strings.TrimSpace(p.Purpose),
		Status:           status,
		ScreeningMatched: matched,
		MatchedEntryIDs:  matchedEntryIDs,
		ScheduledFor:     p.ScheduledFor,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// IsPending reports whether the visit awaits an admin decision.
func (v *Visit) IsPending() bool {
	return v.Status == VisitStatusPendingApproval
}

// CanApprove validates the approve transition.
func (v *Visit) CanApprove() error {
	if v.Status != VisitStatusPendingApproval {
		return dErrors.New(dErrors.CodeConflict, "only pending visits can be approved")
	}
	return nil
}

// ApplyApproval moves the visit to approved and records the badge hash.
func (v *Visit) ApplyApproval(badgeCodeHash string, now time.Time) {
	v.Status = VisitStatusApproved
	v.BadgeCodeHash = badgeCodeHash
	v.UpdatedAt = now
}

// CanDeny validates the deny transition.
func (v *Visit) CanDeny() error {
	if v.Status != VisitStatusPendingApproval {
		return dErrors.New(dErrors.CodeConflict, "only pending visits can be denied")
	}
	return nil
}

// ApplyDenial moves the visit to denied with the operator's reason.
func (v *Visit) ApplyDenial(reason string, now time.Time) {
	v.Status = VisitStatusDenied
	v.DenialReason = strings.TrimSpace(reason)
	v.UpdatedAt = now
}

// CanCheckIn validates the check-in transition.
func (v *Visit) CanCheckIn() error {
	switch v.Status {
	case VisitStatusApproved:
		return nil
	case VisitStatusPendingApproval:
		return dErrors.New(dErrors.CodeConflict, "visit is awaiting approval")
	case VisitStatusDenied:
		return dErrors.New(dErrors.CodeForbidden, "visit was denied")
	default:
		return dErrors.New(dErrors.CodeConflict, "visit cannot be checked in from status "+string(v.Status))
	}
}

// ApplyCheckIn records the visitor's arrival.
func (v *Visit) ApplyCheckIn(now time.Time) {
	v.Status = VisitStatusCheckedIn
	v.CheckedInAt = &now
	v.UpdatedAt = now
}

// CanCheckOut validates the check-out transition.
func (v *Visit) CanCheckOut() error {
	if v.Status != VisitStatusCheckedIn {
		return dErrors.New(dErrors.CodeConflict, "only checked-in visits can be checked out")
	}
	return nil
}

// ApplyCheckOut records the visitor's departure.
func (v *Visit) ApplyCheckOut(now time.Time) {
	v.Status = VisitStatusCheckedOut
	v.CheckedOutAt = &now
	v.UpdatedAt = now
}
