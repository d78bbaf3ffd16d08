package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"foyer/internal/watchlist/models"
	rulesstore "foyer/internal/watchlist/store/rules"
	id "foyer/pkg/domain"
	dErrors "foyer/pkg/domain-errors"
)

type RuleSetServiceSuite struct {
	suite.Suite
	store   *rulesstore.InMemory
	service *RuleSetService
	ctx     context.Context

	defaultGroupID id.GroupID
}

func TestRuleSetServiceSuite(t *testing.T) {
	suite.Run(t, new(RuleSetServiceSuite))
}

func (s *RuleSetServiceSuite) SetupTest() {
	s.store = rulesstore.NewInMemory()
	s.service = NewRuleSetService(s.store)
	s.ctx = context.Background()

	defaultGroup := models.RuleGroup{
		ID:   id.GroupID(uuid.New()),
		Name: "Default",
		Rules: []models.Rule{
			{ID: id.RuleID(uuid.New()), Parameter: models.ParameterLastName, Operator: models.OperatorExact},
		},
	}
	s.defaultGroupID = defaultGroup.ID
	s.Require().NoError(s.store.Save(s.ctx, &models.RuleSet{
		Groups:         []models.RuleGroup{defaultGroup},
		DefaultGroupID: defaultGroup.ID,
	}))
}

func (s *RuleSetServiceSuite) TestGroupLifecycle() {
	s.Run("adds an empty group", func() {
		ruleSet, err := s.service.AddGroup(s.ctx, "Escalation")
		s.Require().NoError(err)
		s.Require().Len(ruleSet.Groups, 2)
		s.Equal("Escalation", ruleSet.Groups[1].Name)
		s.Empty(ruleSet.Groups[1].Rules)
	})

	s.Run("renames a group", func() {
		ruleSet, err := s.service.AddGroup(s.ctx, "Temp")
		s.Require().NoError(err)
		groupID := ruleSet.Groups[len(ruleSet.Groups)-1].ID

		renamed, err := s.service.RenameGroup(s.ctx, groupID, "Renamed")
		s.Require().NoError(err)
		group, ok := renamed.FindGroup(groupID)
		s.Require().True(ok)
		s.Equal("Renamed", group.Name)
	})

	s.Run("deletes a non-default group", func() {
		ruleSet, err := s.service.AddGroup(s.ctx, "Doomed")
		s.Require().NoError(err)
		groupID := ruleSet.Groups[len(ruleSet.Groups)-1].ID

		after, err := s.service.DeleteGroup(s.ctx, groupID)
		s.Require().NoError(err)
		_, ok := after.FindGroup(groupID)
		s.False(ok)
	})

	s.Run("refuses to delete the default group", func() {
		_, err := s.service.DeleteGroup(s.ctx, s.defaultGroupID)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("rejects a blank group name", func() {
		_, err := s.service.AddGroup(s.ctx, "  ")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *RuleSetServiceSuite) TestAddRule() {
	s.Run("adds a valid rule", func() {
		ruleSet, err := s.service.AddRule(s.ctx, s.defaultGroupID, RuleParams{
			Parameter: "firstName",
			Operator:  "partial",
		})
		s.Require().NoError(err)
		group, ok := ruleSet.FindGroup(s.defaultGroupID)
		s.Require().True(ok)
		s.Len(group.Rules, 2)
	})

	s.Run("rejects a duplicate parameter in the same group", func() {
		_, err := s.service.AddRule(s.ctx, s.defaultGroupID, RuleParams{
			Parameter: "lastName",
			Operator:  "partial",
		})
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("allows the same parameter in another group", func() {
		ruleSet, err := s.service.AddGroup(s.ctx, "Second")
		s.Require().NoError(err)
		groupID := ruleSet.Groups[len(ruleSet.Groups)-1].ID

		_, err = s.service.AddRule(s.ctx, groupID, RuleParams{
			Parameter: "lastName",
			Operator:  "exact",
		})
		s.NoError(err)
	})

	s.Run("rejects unknown parameters and operators", func() {
		_, err := s.service.AddRule(s.ctx, s.defaultGroupID, RuleParams{
			Parameter: "passportNumber",
			Operator:  "exact",
		})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

		_, err = s.service.AddRule(s.ctx, s.defaultGroupID, RuleParams{
			Parameter: "email",
			Operator:  "fuzzy",
		})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("contains rules require a value", func() {
		_, err := s.service.AddRule(s.ctx, s.defaultGroupID, RuleParams{
			Parameter: "email",
			Operator:  "contains",
		})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("value is dropped for non-contains operators", func() {
		ruleSet, err := s.service.AddRule(s.ctx, s.defaultGroupID, RuleParams{
			Parameter: "phone",
			Operator:  "exact",
			Value:     "ignored",
		})
		s.Require().NoError(err)
		group, _ := ruleSet.FindGroup(s.defaultGroupID)
		last := group.Rules[len(group.Rules)-1]
		s.Empty(last.Value)
	})
}

func (s *RuleSetServiceSuite) TestUpdateRule() {
	ruleSet, err := s.service.AddRule(s.ctx, s.defaultGroupID, RuleParams{
		Parameter: "email",
		Operator:  "contains",
		Value:     "corp",
	})
	s.Require().NoError(err)
	group, _ := ruleSet.FindGroup(s.defaultGroupID)
	ruleID := group.Rules[len(group.Rules)-1].ID

	s.Run("replaces operator and value", func() {
		updated, err := s.service.UpdateRule(s.ctx, s.defaultGroupID, ruleID, RuleParams{
			Parameter: "email",
			Operator:  "exact",
		})
		s.Require().NoError(err)
		g, _ := updated.FindGroup(s.defaultGroupID)
		var found models.Rule
		for _, r := range g.Rules {
			if r.ID == ruleID {
				found = r
			}
		}
		s.Equal(models.OperatorExact, found.Operator)
		s.Empty(found.Value)
	})

	s.Run("rejects moving onto a parameter used by another rule", func() {
		_, err := s.service.UpdateRule(s.ctx, s.defaultGroupID, ruleID, RuleParams{
			Parameter: "lastName",
			Operator:  "exact",
		})
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("unknown rule returns not found", func() {
		_, err := s.service.UpdateRule(s.ctx, s.defaultGroupID, id.RuleID(uuid.New()), RuleParams{
			Parameter: "phone",
			Operator:  "exact",
		})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *RuleSetServiceSuite) TestDeleteRule() {
	s.Run("default group keeps its last rule", func() {
		ruleSet, err := s.service.GetRuleSet(s.ctx)
		s.Require().NoError(err)
		group, _ := ruleSet.FindGroup(s.defaultGroupID)
		s.Require().Len(group.Rules, 1)

		_, err = s.service.DeleteRule(s.ctx, s.defaultGroupID, group.Rules[0].ID)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("removes a rule from a group with several", func() {
		ruleSet, err := s.service.AddRule(s.ctx, s.defaultGroupID, RuleParams{
			Parameter: "phone",
			Operator:  "exact",
		})
		s.Require().NoError(err)
		group, _ := ruleSet.FindGroup(s.defaultGroupID)
		ruleID := group.Rules[len(group.Rules)-1].ID

		after, err := s.service.DeleteRule(s.ctx, s.defaultGroupID, ruleID)
		s.Require().NoError(err)
		g, _ := after.FindGroup(s.defaultGroupID)
		s.Len(g.Rules, 1)
	})

	s.Run("non-default group may be emptied", func() {
		ruleSet, err := s.service.AddGroup(s.ctx, "Emptyable")
		s.Require().NoError(err)
		groupID := ruleSet.Groups[len(ruleSet.Groups)-1].ID

		withRule, err := s.service.AddRule(s.ctx, groupID, RuleParams{
			Parameter: "email",
			Operator:  "contains",
			Value:     "corp",
		})
		s.Require().NoError(err)
		group, _ := withRule.FindGroup(groupID)

		after, err := s.service.DeleteRule(s.ctx, groupID, group.Rules[0].ID)
		s.Require().NoError(err)
		g, _ := after.FindGroup(groupID)
		s.Empty(g.Rules)
	})
}

func (s *RuleSetServiceSuite) TestBootstrapOnFreshStore() {
	// A postgres deployment starts with no rule-set row at all; the editor
	// must still be able to create the first group.
	service := NewRuleSetService(rulesstore.NewInMemory())

	s.Run("an unsaved rule set reads as empty", func() {
		ruleSet, err := service.GetRuleSet(s.ctx)
		s.Require().NoError(err)
		s.Empty(ruleSet.Groups)
		s.True(ruleSet.DefaultGroupID.IsZero())
	})

	s.Run("the first group becomes the default group", func() {
		ruleSet, err := service.AddGroup(s.ctx, "Default")
		s.Require().NoError(err)
		s.Require().Len(ruleSet.Groups, 1)
		s.True(ruleSet.IsDefaultGroup(ruleSet.Groups[0].ID))
	})

	s.Run("later groups leave the default designation alone", func() {
		ruleSet, err := service.AddGroup(s.ctx, "Escalation")
		s.Require().NoError(err)
		s.Require().Len(ruleSet.Groups, 2)
		s.True(ruleSet.IsDefaultGroup(ruleSet.Groups[0].ID))
		s.False(ruleSet.IsDefaultGroup(ruleSet.Groups[1].ID))
	})
}

func (s *RuleSetServiceSuite) TestAvailableParameters() {
	available, err := s.service.AvailableParameters(s.ctx, s.defaultGroupID)
	s.Require().NoError(err)
	s.Equal([]models.RuleParameter{
		models.ParameterFirstName,
		models.ParameterEmail,
		models.ParameterPhone,
	}, available, "lastName is taken by the seeded rule")
}
