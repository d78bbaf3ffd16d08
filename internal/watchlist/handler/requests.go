package handler

import (
	"strings"

	"foyer/internal/watchlist/models"
	"foyer/internal/watchlist/service"
	id "foyer/pkg/domain"
	dErrors "foyer/pkg/domain-errors"
)

const maxListField = 20

// EntryRequest is the HTTP request body for creating or updating a
// watchlist entry.
type EntryRequest struct {
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
	AltFirstNames    []string `json:"alt_first_names"`
	AltLastNames     []string `json:"alt_last_names"`
	PrimaryEmail     string   `json:"primary_email"`
	PrimaryPhone     string   `json:"primary_phone"`
	AdditionalEmails []string `json:"additional_emails"`
	AdditionalPhones []string `json:"additional_phones"`
	LevelID          string   `json:"level_id"`
	Notes            string   `json:"notes"`
	ReportedBy       string   `json:"reported_by"`

	parsedLevelID id.LevelID
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *EntryRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if strings.TrimSpace(r.FirstName) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "first_name is required")
	}
	if strings.TrimSpace(r.LastName) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "last_name is required")
	}
	for _, list := range [][]string{r.AltFirstNames, r.AltLastNames, r.AdditionalEmails, r.AdditionalPhones} {
		if len(list) > maxListField {
			return dErrors.New(dErrors.CodeInvalidInput, "alias lists must have at most 20 items")
		}
	}

	levelID, err := id.ParseLevelID(r.LevelID)
	if err != nil {
		return dErrors.New(dErrors.CodeInvalidInput, "level_id must be a valid UUID")
	}
	r.parsedLevelID = levelID
	return nil
}

// Params converts the request into domain construction parameters.
func (r *EntryRequest) Params() models.NewEntryParams {
	return models.NewEntryParams{
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		AltFirstNames:    r.AltFirstNames,
		AltLastNames:     r.AltLastNames,
		PrimaryEmail:     r.PrimaryEmail,
		PrimaryPhone:     r.PrimaryPhone,
		AdditionalEmails: r.AdditionalEmails,
		AdditionalPhones: r.AdditionalPhones,
		LevelID:          r.parsedLevelID,
		Notes:            r.Notes,
		ReportedBy:       r.ReportedBy,
	}
}

// LevelRequest is the HTTP request body for creating or updating a level.
type LevelRequest struct {
	Name                   string   `json:"name"`
	Color                  string   `json:"color"`
	SendEmailNotifications bool     `json:"send_email_notifications"`
	Recipients             []string `json:"recipients"`
	SystemLogging          bool     `json:"system_logging"`
	RequiresManualApproval bool     `json:"requires_manual_approval"`
}

// Validate validates the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *LevelRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "name is required")
	}
	if len(r.Recipients) > maxListField {
		return dErrors.New(dErrors.CodeInvalidInput, "recipients must have at most 20 items")
	}
	if r.SendEmailNotifications && len(r.Recipients) == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "recipients are required when email notifications are enabled")
	}
	return nil
}

// Params converts the request into domain construction parameters.
func (r *LevelRequest) Params() models.NewLevelParams {
	return models.NewLevelParams{
		Name:                   r.Name,
		Color:                  r.Color,
		SendEmailNotifications: r.SendEmailNotifications,
		Recipients:             r.Recipients,
		SystemLogging:          r.SystemLogging,
		RequiresManualApproval: r.RequiresManualApproval,
	}
}

// GroupRequest is the HTTP request body for creating or renaming a rule group.
type GroupRequest struct {
	Name string `json:"name"`
}

// Validate validates the request.
func (r *GroupRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "name is required")
	}
	return nil
}

// RuleRequest is the HTTP request body for adding or updating a rule.
type RuleRequest struct {
	Parameter string `json:"parameter"`
	Operator  string `json:"operator"`
	Value     string `json:"value"`
}

// Validate validates the request. Parameter and operator values are parsed
// by the rule editor service, which owns the policy; here we only require
// presence.
func (r *RuleRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if strings.TrimSpace(r.Parameter) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "parameter is required")
	}
	if strings.TrimSpace(r.Operator) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "operator is required")
	}
	return nil
}

// Params converts the request into service parameters.
func (r *RuleRequest) Params() service.RuleParams {
	return service.RuleParams{
		Parameter: strings.TrimSpace(r.Parameter),
		Operator:  strings.TrimSpace(r.Operator),
		Value:     r.Value,
	}
}
