package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	smodels "foyer/internal/screening/models"
	"foyer/internal/visit/models"
	"foyer/internal/visit/pass"
	visitstore "foyer/internal/visit/store/visit"
	visitorstore "foyer/internal/visit/store/visitor"
	"foyer/internal/watchlist/engine"
	id "foyer/pkg/domain"
	dErrors "foyer/pkg/domain-errors"
)

// stubScreener returns a fixed screening result and records the candidate.
type stubScreener struct {
	result    smodels.Result
	candidate engine.Candidate
}

func (s *stubScreener) Screen(_ context.Context, candidate engine.Candidate) (smodels.Result, error) {
	s.candidate = candidate
	return s.result, nil
}

type VisitServiceSuite struct {
	suite.Suite
	visitors *visitorstore.InMemory
	visits   *visitstore.InMemory
	screener *stubScreener
	service  *Service
}

func TestVisitServiceSuite(t *testing.T) {
	suite.Run(t, new(VisitServiceSuite))
}

func (s *VisitServiceSuite) SetupTest() {
	s.visitors = visitorstore.NewInMemory()
	s.visits = visitstore.NewInMemory()
	s.screener = &stubScreener{}
	s.service = New(s.visitors, s.visits, s.screener, pass.NewIssuer("test-key", time.Hour))
}

func (s *VisitServiceSuite) register(email string) *RegistrationResult {
	s.T().Helper()

	result, err := s.service.RegisterVisit(context.Background(), RegisterParams{
		Visitor: models.NewVisitorParams{
			FirstName: "Jane",
			LastName:  "Smith",
			Email:     email,
		},
		HostName: "Dana Ops",
		Purpose:  "interview",
	})
	s.Require().NoError(err)
	return result
}

func matchResult(entryID id.EntryID, manual bool) smodels.Result {
	return smodels.Result{
		IsMatch: true,
		Matches: []smodels.Match{{
			EntryID:   entryID,
			EntryName: "Jane Smith",
			Level:     smodels.LevelSummary{ID: id.LevelID(uuid.New()), Name: "High risk", RequiresManualApproval: manual},
		}},
		RequiresManualApproval: manual,
	}
}

func (s *VisitServiceSuite) TestRegisterCleanScreeningApproves() {
	result := s.register("jane@example.com")

	s.Equal(models.VisitStatusApproved, result.Visit.Status)
	s.False(result.Visit.ScreeningMatched)
	s.NotEmpty(result.PassToken)
	s.Equal("Jane", s.screener.candidate.FirstName)
	s.Equal("jane@example.com", s.screener.candidate.Email)
}

func (s *VisitServiceSuite) TestRegisterMatchParksForApproval() {
	entryID := id.EntryID(uuid.New())
	s.screener.result = matchResult(entryID, false)

	result := s.register("jane@example.com")

	s.Equal(models.VisitStatusPendingApproval, result.Visit.Status)
	s.True(result.Visit.ScreeningMatched)
	s.Equal([]id.EntryID{entryID}, result.Visit.MatchedEntryIDs)
	s.Empty(result.PassToken)
}

func (s *VisitServiceSuite) TestRegisterManualApprovalLevelForcesPending() {
	s.screener.result = matchResult(id.EntryID(uuid.New()), true)

	result := s.register("jane@example.com")

	s.Equal(models.VisitStatusPendingApproval, result.Visit.Status)
}

func (s *VisitServiceSuite) TestRegisterReusesVisitorByEmail() {
	first := s.register("jane@example.com")
	second := s.register("JANE@example.com")

	s.Equal(first.Visitor.ID, second.Visitor.ID)

	visits, err := s.service.ListByVisitor(context.Background(), first.Visitor.ID)
	s.Require().NoError(err)
	s.Len(visits, 2)
}

func (s *VisitServiceSuite) TestRegisterRejectsAnonymous() {
	_, err := s.service.RegisterVisit(context.Background(), RegisterParams{
		Visitor: models.NewVisitorParams{Phone: "555-0100"},
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *VisitServiceSuite) TestApproveFlow() {
	ctx := context.Background()
	s.screener.result = matchResult(id.EntryID(uuid.New()), false)
	registered := s.register("jane@example.com")

	approval, err := s.service.Approve(ctx, registered.Visit.ID)
	s.Require().NoError(err)
	s.Equal(models.VisitStatusApproved, approval.Visit.Status)
	s.Len(approval.BadgeCode, 6)
	s.NotEmpty(approval.PassToken)

	// The minted badge code admits the visitor at the kiosk.
	visit, err := s.service.CheckIn(ctx, CheckInParams{
		VisitID:   registered.Visit.ID,
		BadgeCode: approval.BadgeCode,
	})
	s.Require().NoError(err)
	s.Equal(models.VisitStatusCheckedIn, visit.Status)
}

func (s *VisitServiceSuite) TestApproveIsPendingOnly() {
	registered := s.register("jane@example.com")

	_, err := s.service.Approve(context.Background(), registered.Visit.ID)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *VisitServiceSuite) TestApproveMissingVisit() {
	_, err := s.service.Approve(context.Background(), id.VisitID(uuid.New()))
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *VisitServiceSuite) TestDenyFlow() {
	ctx := context.Background()
	s.screener.result = matchResult(id.EntryID(uuid.New()), false)
	registered := s.register("jane@example.com")

	visit, err := s.service.Deny(ctx, registered.Visit.ID, "known bad actor")
	s.Require().NoError(err)
	s.Equal(models.VisitStatusDenied, visit.Status)
	s.Equal("known bad actor", visit.DenialReason)

	// Denied visits never check in.
	_, err = s.service.CheckIn(ctx, CheckInParams{VisitID: registered.Visit.ID})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
}

func (s *VisitServiceSuite) TestDenyRequiresReason() {
	s.screener.result = matchResult(id.EntryID(uuid.New()), false)
	registered := s.register("jane@example.com")

	_, err := s.service.Deny(context.Background(), registered.Visit.ID, "   ")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *VisitServiceSuite) TestCheckInWithPassToken() {
	ctx := context.Background()
	registered := s.register("jane@example.com")

	visit, err := s.service.CheckIn(ctx, CheckInParams{PassToken: registered.PassToken})
	s.Require().NoError(err)
	s.Equal(registered.Visit.ID, visit.ID)
	s.Equal(models.VisitStatusCheckedIn, visit.Status)
	s.NotNil(visit.CheckedInAt)
}

func (s *VisitServiceSuite) TestCheckInWrongBadgeCode() {
	ctx := context.Background()
	s.screener.result = matchResult(id.EntryID(uuid.New()), false)
	registered := s.register("jane@example.com")

	approval, err := s.service.Approve(ctx, registered.Visit.ID)
	s.Require().NoError(err)

	wrong := "000000"
	if approval.BadgeCode == wrong {
		wrong = "000001"
	}
	_, err = s.service.CheckIn(ctx, CheckInParams{VisitID: registered.Visit.ID, BadgeCode: wrong})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *VisitServiceSuite) TestCheckInRequiresSomeIdentifier() {
	_, err := s.service.CheckIn(context.Background(), CheckInParams{})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *VisitServiceSuite) TestCheckInRejectsForeignPass() {
	ctx := context.Background()
	first := s.register("jane@example.com")
	second := s.register("bob@example.com")

	_, err := s.service.CheckIn(ctx, CheckInParams{
		VisitID:   first.Visit.ID,
		PassToken: second.PassToken,
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *VisitServiceSuite) TestCheckOutFlow() {
	ctx := context.Background()
	registered := s.register("jane@example.com")

	_, err := s.service.CheckIn(ctx, CheckInParams{VisitID: registered.Visit.ID})
	s.Require().NoError(err)

	visit, err := s.service.CheckOut(ctx, registered.Visit.ID)
	s.Require().NoError(err)
	s.Equal(models.VisitStatusCheckedOut, visit.Status)
	s.NotNil(visit.CheckedOutAt)

	_, err = s.service.CheckOut(ctx, registered.Visit.ID)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *VisitServiceSuite) TestListPendingQueue() {
	ctx := context.Background()
	s.screener.result = matchResult(id.EntryID(uuid.New()), false)
	s.register("jane@example.com")
	s.screener.result = smodels.Result{}
	s.register("bob@example.com")

	pending, err := s.service.ListPending(ctx)
	s.Require().NoError(err)
	s.Len(pending, 1)

	recent, err := s.service.ListRecent(ctx, 10)
	s.Require().NoError(err)
	s.Len(recent, 2)
}
