package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"foyer/internal/watchlist/models"
	levelstore "foyer/internal/watchlist/store/level"
	rulesstore "foyer/internal/watchlist/store/rules"
	id "foyer/pkg/domain"
)

// SeedDefaults creates the shipped default configuration: one "Standard"
// level and a default rule group matching on partial first name, exact last
// name, and exact phone. Fresh deployments get a working screening setup
// before an admin touches the console.
func SeedDefaults(ls *levelstore.InMemory, rs *rulesstore.InMemory) (*models.Level, *models.RuleSet) {
	now := time.Now()

	level := &models.Level{
		ID:            id.LevelID(uuid.New()),
		Name:          "Standard",
		Color:         "#d9534f",
		SystemLogging: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	_ = ls.CreateIfNameAvailable(context.Background(), level)

	defaultGroup := models.RuleGroup{
		ID:   id.GroupID(uuid.New()),
		Name: "Default",
		Rules: []models.Rule{
			{ID: id.RuleID(uuid.New()), Parameter: models.ParameterFirstName, Operator: models.OperatorPartial},
			{ID: id.RuleID(uuid.New()), Parameter: models.ParameterLastName, Operator: models.OperatorExact},
			{ID: id.RuleID(uuid.New()), Parameter: models.ParameterPhone, Operator: models.OperatorExact},
		},
	}
	ruleSet := &models.RuleSet{
		Groups:         []models.RuleGroup{defaultGroup},
		DefaultGroupID: defaultGroup.ID,
	}
	_ = rs.Save(context.Background(), ruleSet)

	return level, ruleSet
}
