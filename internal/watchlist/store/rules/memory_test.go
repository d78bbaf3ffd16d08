package rules

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"foyer/internal/watchlist/models"
	id "foyer/pkg/domain"
	"foyer/pkg/platform/sentinel"
)

type RuleSetStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *RuleSetStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestRuleSetStoreSuite(t *testing.T) {
	suite.Run(t, new(RuleSetStoreSuite))
}

func (s *RuleSetStoreSuite) newRuleSet() *models.RuleSet {
	group := models.RuleGroup{
		ID:   id.GroupID(uuid.New()),
		Name: "Default",
		Rules: []models.Rule{
			{ID: id.RuleID(uuid.New()), Parameter: models.ParameterLastName, Operator: models.OperatorExact},
		},
	}
	return &models.RuleSet{Groups: []models.RuleGroup{group}, DefaultGroupID: group.ID}
}

func (s *RuleSetStoreSuite) TestGetBeforeSave() {
	_, err := s.store.Get(s.ctx)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RuleSetStoreSuite) TestSaveAndGet() {
	ruleSet := s.newRuleSet()
	s.Require().NoError(s.store.Save(s.ctx, ruleSet))

	found, err := s.store.Get(s.ctx)
	s.Require().NoError(err)
	s.Equal(ruleSet.DefaultGroupID, found.DefaultGroupID)
	s.Require().Len(found.Groups, 1)
	s.Equal(ruleSet.Groups[0].ID, found.Groups[0].ID)
}

func (s *RuleSetStoreSuite) TestSaveReplacesWholesale() {
	s.Require().NoError(s.store.Save(s.ctx, s.newRuleSet()))

	replacement := s.newRuleSet()
	replacement.Groups = append(replacement.Groups, models.RuleGroup{
		ID:   id.GroupID(uuid.New()),
		Name: "Second",
		Rules: []models.Rule{
			{ID: id.RuleID(uuid.New()), Parameter: models.ParameterEmail, Operator: models.OperatorContains, Value: "corp"},
		},
	})
	s.Require().NoError(s.store.Save(s.ctx, replacement))

	found, err := s.store.Get(s.ctx)
	s.Require().NoError(err)
	s.Len(found.Groups, 2)
	s.Equal(replacement.DefaultGroupID, found.DefaultGroupID)
}

func (s *RuleSetStoreSuite) TestIsolation() {
	ruleSet := s.newRuleSet()
	s.Require().NoError(s.store.Save(s.ctx, ruleSet))

	found, err := s.store.Get(s.ctx)
	s.Require().NoError(err)
	found.Groups[0].Rules[0].Parameter = models.ParameterPhone

	again, err := s.store.Get(s.ctx)
	s.Require().NoError(err)
	s.Equal(models.ParameterLastName, again.Groups[0].Rules[0].Parameter)
}
