package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"foyer/internal/visit/badge"
	visitmetrics "foyer/internal/visit/metrics"
	"foyer/internal/visit/models"
	"foyer/internal/watchlist/engine"
	id "foyer/pkg/domain"
	dErrors "foyer/pkg/domain-errors"
	"foyer/pkg/platform/sentinel"
	"foyer/pkg/requestcontext"
)

// Service implements the visit lifecycle operations.
type Service struct {
	visitors VisitorStore
	visits   VisitStore
	screener Screener
	passes   PassIssuer

	logger  *slog.Logger
	metrics *visitmetrics.Metrics
}

// New constructs the visit service.
func New(visitors VisitorStore, visits VisitStore, screener Screener, passes PassIssuer, opts ...Option) *Service {
	cfg := applyOptions(opts)
	return &Service{
		visitors: visitors,
		visits:   visits,
		screener: screener,
		passes:   passes,
		logger:   cfg.logger,
		metrics:  cfg.metrics,
	}
}

// RegisterParams is a visit registration as submitted from the kiosk or
// the scheduling console.
type RegisterParams struct {
	Visitor      models.NewVisitorParams
	HostName     string
	Purpose      string
	ScheduledFor *time.Time
}

// RegistrationResult is the registration outcome. Screening match details
// are included for the console; the kiosk only shows the status.
type RegistrationResult struct {
	Visitor   *models.Visitor `json:"visitor"`
	Visit     *models.Visit   `json:"visit"`
	PassToken string          `json:"pass_token,omitempty"`
}

// RegisterVisit screens the visitor against the watchlist and creates the
// visit. A clean screening auto-approves and issues a pass; a match, or a
// matched level requiring manual approval, parks the visit for an admin.
func (s *Service) RegisterVisit(ctx context.Context, p RegisterParams) (*RegistrationResult, error) {
	now := requestcontext.Now(ctx)

	visitor, err := s.findOrCreateVisitor(ctx, p.Visitor, now)
	if err != nil {
		return nil, err
	}

	screening, err := s.screener.Screen(ctx, engine.Candidate{
		FirstName: visitor.FirstName,
		LastName:  visitor.LastName,
		Email:     visitor.Email,
		Phone:     visitor.Phone,
	})
	if err != nil {
		return nil, err
	}

	visit, err := models.NewVisit(
		id.VisitID(uuid.New()),
		models.NewVisitParams{
			VisitorID:    visitor.ID,
			HostName:     p.HostName,
			Purpose:      p.Purpose,
			ScheduledFor: p.ScheduledFor,
		},
		screening.IsMatch,
		screening.MatchedEntryIDs(),
		screening.RequiresManualApproval,
		now,
	)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid visit")
	}
	if err := s.visits.Create(ctx, visit); err != nil {
		return nil, translateStoreErr(err, "visit")
	}

	result := &RegistrationResult{Visitor: visitor, Visit: visit}
	if visit.Status == models.VisitStatusApproved {
		token, err := s.passes.Issue(visit.ID, visitor.ID, now)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue pass")
		}
		result.PassToken = token
	}

	s.metrics.RecordRegistration(string(visit.Status))
	s.logger.InfoContext(ctx, "visit registered",
		"request_id", requestcontext.RequestID(ctx),
		"visit_id", visit.ID,
		"status", visit.Status,
		"screening_matched", visit.ScreeningMatched,
	)
	return result, nil
}

// findOrCreateVisitor reuses an existing profile by email when possible so
// a returning visitor keeps one history.
func (s *Service) findOrCreateVisitor(ctx context.Context, p models.NewVisitorParams, now time.Time) (*models.Visitor, error) {
	if email := strings.TrimSpace(p.Email); email != "" {
		existing, err := s.visitors.FindByEmail(ctx, email)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			return nil, translateStoreErr(err, "visitor")
		}
	}

	visitor, err := models.NewVisitor(id.VisitorID(uuid.New()), p, now)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid visitor")
	}
	if err := s.visitors.Create(ctx, visitor); err != nil {
		return nil, translateStoreErr(err, "visitor")
	}
	return visitor, nil
}

// ApprovalResult carries the credentials minted on approval. BadgeCode is
// shown once and never stored in the clear.
type ApprovalResult struct {
	Visit     *models.Visit `json:"visit"`
	BadgeCode string        `json:"badge_code"`
	PassToken string        `json:"pass_token"`
}

// Approve clears a pending visit, minting a badge code and a pass token.
func (s *Service) Approve(ctx context.Context, visitID id.VisitID) (*ApprovalResult, error) {
	visit, err := s.visits.FindByID(ctx, visitID)
	if err != nil {
		return nil, translateStoreErr(err, "visit")
	}
	if err := visit.CanApprove(); err != nil {
		return nil, err
	}

	code, hash, err := badge.Generate()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate badge code")
	}

	now := requestcontext.Now(ctx)
	visit.ApplyApproval(hash, now)
	if err := s.visits.Update(ctx, visit); err != nil {
		return nil, translateStoreErr(err, "visit")
	}

	token, err := s.passes.Issue(visit.ID, visit.VisitorID, now)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue pass")
	}

	s.metrics.RecordDecision("approved")
	s.logger.InfoContext(ctx, "visit approved",
		"request_id", requestcontext.RequestID(ctx),
		"visit_id", visit.ID,
	)
	return &ApprovalResult{Visit: visit, BadgeCode: code, PassToken: token}, nil
}

// Deny rejects a pending visit with the operator's reason.
func (s *Service) Deny(ctx context.Context, visitID id.VisitID, reason string) (*models.Visit, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "denial reason is required")
	}

	visit, err := s.visits.FindByID(ctx, visitID)
	if err != nil {
		return nil, translateStoreErr(err, "visit")
	}
	if err := visit.CanDeny(); err != nil {
		return nil, err
	}

	visit.ApplyDenial(reason, requestcontext.Now(ctx))
	if err := s.visits.Update(ctx, visit); err != nil {
		return nil, translateStoreErr(err, "visit")
	}

	s.metrics.RecordDecision("denied")
	s.logger.InfoContext(ctx, "visit denied",
		"request_id", requestcontext.RequestID(ctx),
		"visit_id", visit.ID,
	)
	return visit, nil
}

// CheckInParams are the credentials a kiosk collects. Either a pass token
// or the visit ID plus its badge code identifies the visit.
type CheckInParams struct {
	VisitID   id.VisitID
	PassToken string
	BadgeCode string
}

// CheckIn records the visitor's arrival. Visits approved through the admin
// queue carry a badge hash and demand a matching credential; auto-approved
// walk-ins check in on the visit ID alone.
func (s *Service) CheckIn(ctx context.Context, p CheckInParams) (*models.Visit, error) {
	visitID := p.VisitID
	if p.PassToken != "" {
		fromToken, err := s.passes.Verify(p.PassToken)
		if err != nil {
			return nil, err
		}
		if !visitID.IsZero() && visitID != fromToken {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "pass does not belong to this visit")
		}
		visitID = fromToken
	}
	if visitID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "a visit id or pass token is required")
	}

	visit, err := s.visits.FindByID(ctx, visitID)
	if err != nil {
		return nil, translateStoreErr(err, "visit")
	}
	if err := visit.CanCheckIn(); err != nil {
		return nil, err
	}

	if visit.BadgeCodeHash != "" && p.PassToken == "" {
		if err := badge.Verify(visit.BadgeCodeHash, p.BadgeCode); err != nil {
			return nil, err
		}
	}

	visit.ApplyCheckIn(requestcontext.Now(ctx))
	if err := s.visits.Update(ctx, visit); err != nil {
		return nil, translateStoreErr(err, "visit")
	}

	s.metrics.RecordCheckIn()
	s.logger.InfoContext(ctx, "visitor checked in",
		"request_id", requestcontext.RequestID(ctx),
		"visit_id", visit.ID,
		"kiosk_id", requestcontext.KioskID(ctx),
	)
	return visit, nil
}

// CheckOut records the visitor's departure.
func (s *Service) CheckOut(ctx context.Context, visitID id.VisitID) (*models.Visit, error) {
	visit, err := s.visits.FindByID(ctx, visitID)
	if err != nil {
		return nil, translateStoreErr(err, "visit")
	}
	if err := visit.CanCheckOut(); err != nil {
		return nil, err
	}

	visit.ApplyCheckOut(requestcontext.Now(ctx))
	if err := s.visits.Update(ctx, visit); err != nil {
		return nil, translateStoreErr(err, "visit")
	}

	s.metrics.RecordCheckOut()
	s.logger.InfoContext(ctx, "visitor checked out",
		"request_id", requestcontext.RequestID(ctx),
		"visit_id", visit.ID,
	)
	return visit, nil
}

// GetVisit returns one visit.
func (s *Service) GetVisit(ctx context.Context, visitID id.VisitID) (*models.Visit, error) {
	visit, err := s.visits.FindByID(ctx, visitID)
	if err != nil {
		return nil, translateStoreErr(err, "visit")
	}
	return visit, nil
}

// GetVisitor returns one visitor profile.
func (s *Service) GetVisitor(ctx context.Context, visitorID id.VisitorID) (*models.Visitor, error) {
	visitor, err := s.visitors.FindByID(ctx, visitorID)
	if err != nil {
		return nil, translateStoreErr(err, "visitor")
	}
	return visitor, nil
}

// ListRecent returns the latest visits for the console dashboard.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*models.Visit, error) {
	visits, err := s.visits.ListRecent(ctx, limit)
	if err != nil {
		return nil, translateStoreErr(err, "visits")
	}
	return visits, nil
}

// ListPending returns the approval queue.
func (s *Service) ListPending(ctx context.Context) ([]*models.Visit, error) {
	visits, err := s.visits.ListPending(ctx)
	if err != nil {
		return nil, translateStoreErr(err, "visits")
	}
	return visits, nil
}

// ListByVisitor returns a visitor's history.
func (s *Service) ListByVisitor(ctx context.Context, visitorID id.VisitorID) ([]*models.Visit, error) {
	visits, err := s.visits.ListByVisitor(ctx, visitorID)
	if err != nil {
		return nil, translateStoreErr(err, "visits")
	}
	return visits, nil
}
