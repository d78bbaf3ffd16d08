//go:build integration

package rules_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"foyer/internal/watchlist/models"
	"foyer/internal/watchlist/store/rules"
	id "foyer/pkg/domain"
	"foyer/pkg/platform/sentinel"
	"foyer/pkg/testutil/containers"
)

type PostgresRuleSetSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *rules.PostgresStore
}

func TestPostgresRuleSetSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresRuleSetSuite))
}

func (s *PostgresRuleSetSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = rules.NewPostgres(s.postgres.DB)
}

func (s *PostgresRuleSetSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "watchlist_rule_sets")
	s.Require().NoError(err)
}

func newRuleSet() *models.RuleSet {
	group := models.RuleGroup{
		ID:   id.GroupID(uuid.New()),
		Name: "Default",
		Rules: []models.Rule{
			{ID: id.RuleID(uuid.New()), Parameter: models.ParameterFirstName, Operator: models.OperatorPartial},
			{ID: id.RuleID(uuid.New()), Parameter: models.ParameterLastName, Operator: models.OperatorExact},
		},
	}
	return &models.RuleSet{Groups: []models.RuleGroup{group}, DefaultGroupID: group.ID}
}

func (s *PostgresRuleSetSuite) TestGetBeforeSave() {
	_, err := s.store.Get(context.Background())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresRuleSetSuite) TestDocumentRoundTrip() {
	ctx := context.Background()

	ruleSet := newRuleSet()
	s.Require().NoError(s.store.Save(ctx, ruleSet))

	found, err := s.store.Get(ctx)
	s.Require().NoError(err)
	s.Equal(ruleSet.DefaultGroupID, found.DefaultGroupID)
	s.Require().Len(found.Groups, 1)
	s.Equal(ruleSet.Groups[0].Rules, found.Groups[0].Rules)
}

func (s *PostgresRuleSetSuite) TestSaveIsUpsert() {
	ctx := context.Background()

	s.Require().NoError(s.store.Save(ctx, newRuleSet()))

	replacement := newRuleSet()
	replacement.Groups[0].Rules = append(replacement.Groups[0].Rules, models.Rule{
		ID:        id.RuleID(uuid.New()),
		Parameter: models.ParameterEmail,
		Operator:  models.OperatorContains,
		Value:     "corp",
	})
	s.Require().NoError(s.store.Save(ctx, replacement))

	found, err := s.store.Get(ctx)
	s.Require().NoError(err)
	s.Equal(replacement.DefaultGroupID, found.DefaultGroupID)
	s.Len(found.Groups[0].Rules, 3)
}
