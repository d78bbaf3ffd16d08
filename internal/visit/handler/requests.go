package handler

import (
	"strings"
	"time"

	"foyer/internal/visit/models"
	"foyer/internal/visit/service"
	id "foyer/pkg/domain"
	dErrors "foyer/pkg/domain-errors"
)

// RegisterRequest is the HTTP request body for registering a visit.
type RegisterRequest struct {
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Company      string     `json:"company"`
	HostName     string     `json:"host_name"`
	Purpose      string     `json:"purpose"`
	ScheduledFor *time.Time `json:"scheduled_for"`
}

// Validate validates the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *RegisterRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	hasName := strings.TrimSpace(r.FirstName) != "" || strings.TrimSpace(r.LastName) != ""
	if !hasName && strings.TrimSpace(r.Email) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "a name or an email is required")
	}
	return nil
}

// Params converts the request into service parameters.
func (r *RegisterRequest) Params() service.RegisterParams {
	return service.RegisterParams{
		Visitor: models.NewVisitorParams{
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Email:     r.Email,
			Phone:     r.Phone,
			Company:   r.Company,
		},
		HostName:     r.HostName,
		Purpose:      r.Purpose,
		ScheduledFor: r.ScheduledFor,
	}
}

// DenyRequest is the HTTP request body for denying a pending visit.
type DenyRequest struct {
	Reason string `json:"reason"`
}

// Validate validates the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *DenyRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if strings.TrimSpace(r.Reason) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "reason is required")
	}
	return nil
}

// CheckInRequest is the HTTP request body for a kiosk check-in. Either a
// pass token or a visit ID (with its badge code when one was issued)
// identifies the visit.
type CheckInRequest struct {
	VisitID   string `json:"visit_id"`
	PassToken string `json:"pass_token"`
	BadgeCode string `json:"badge_code"`

	parsedVisitID id.VisitID
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *CheckInRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.VisitID == "" && r.PassToken == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "visit_id or pass_token is required")
	}
	if r.VisitID != "" {
		visitID, err := id.ParseVisitID(r.VisitID)
		if err != nil {
			return dErrors.New(dErrors.CodeInvalidInput, "visit_id must be a valid UUID")
		}
		r.parsedVisitID = visitID
	}
	return nil
}

// Params converts the request into service parameters.
func (r *CheckInRequest) Params() service.CheckInParams {
	return service.CheckInParams{
		VisitID:   r.parsedVisitID,
		PassToken: r.PassToken,
		BadgeCode: r.BadgeCode,
	}
}
