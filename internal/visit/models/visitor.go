// Package models defines the visit module's domain types: visitor
// profiles and the visit lifecycle state machine.
package models

import (
	"strings"
	"time"

	id "foyer/pkg/domain"
	dErrors "foyer/pkg/domain-errors"
	"foyer/pkg/email"
)

// Visitor is a person who registers for visits. Profiles are reused across
// visits so a returning visitor keeps their history.
type Visitor struct {
	ID        id.VisitorID `json:"id"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Email     string       `json:"email,omitempty"`
	Phone     string       `json:"phone,omitempty"`
	Company   string       `json:"company,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// NewVisitorParams carries the caller-supplied attributes for NewVisitor.
type NewVisitorParams struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Company   string
}

// NewVisitor constructs a visitor profile. A registration must identify the
// person by name or by email; when only an email arrives (kiosk quick
// check-in) the names are derived from it for display.
func NewVisitor(visitorID id.VisitorID, p NewVisitorParams, now time.Time) (*Visitor, error) {
	firstName := strings.TrimSpace(p.FirstName)
	lastName := strings.TrimSpace(p.LastName)
	emailAddr := strings.TrimSpace(p.Email)

	if firstName == "" && lastName == "" {
		if emailAddr == "" {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "visitor needs a name or an email")
		}
		firstName, lastName = email.DeriveNameFromEmail(emailAddr)
	}

	return &Visitor{
		ID:        visitorID,
		FirstName: firstName,
		LastName:  lastName,
		Email:     emailAddr,
		Phone:     strings.TrimSpace(p.Phone),
		Company:   strings.TrimSpace(p.Company),
		CreatedAt: now,
	}, nil
}
