package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"foyer/internal/watchlist/models"
	entrystore "foyer/internal/watchlist/store/entry"
	levelstore "foyer/internal/watchlist/store/level"
	id "foyer/pkg/domain"
	dErrors "foyer/pkg/domain-errors"
)

type LevelServiceSuite struct {
	suite.Suite
	levels  *levelstore.InMemory
	entries *entrystore.InMemory
	service *LevelService
	ctx     context.Context
}

func TestLevelServiceSuite(t *testing.T) {
	suite.Run(t, new(LevelServiceSuite))
}

func (s *LevelServiceSuite) SetupTest() {
	s.levels = levelstore.NewInMemory()
	s.entries = entrystore.NewInMemory()
	s.service = NewLevelService(s.levels, s.entries)
	s.ctx = context.Background()
}

func (s *LevelServiceSuite) TestCreateLevel() {
	s.Run("creates a level with normalized recipients", func() {
		level, err := s.service.CreateLevel(s.ctx, models.NewLevelParams{
			Name:                   "High risk",
			SendEmailNotifications: true,
			Recipients:             []string{" Security@example.com ", "security@example.com"},
		})
		s.Require().NoError(err)
		s.Equal("High risk", level.Name)
		s.Equal([]string{"security@example.com"}, level.Recipients)
	})

	s.Run("rejects duplicate names", func() {
		_, err := s.service.CreateLevel(s.ctx, models.NewLevelParams{Name: "Duplicate"})
		s.Require().NoError(err)

		_, err = s.service.CreateLevel(s.ctx, models.NewLevelParams{Name: "duplicate"})
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("rejects empty name as invalid input", func() {
		_, err := s.service.CreateLevel(s.ctx, models.NewLevelParams{Name: "   "})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *LevelServiceSuite) TestUpdateLevel() {
	level, err := s.service.CreateLevel(s.ctx, models.NewLevelParams{Name: "Mutable"})
	s.Require().NoError(err)

	updated, err := s.service.UpdateLevel(s.ctx, level.ID, models.NewLevelParams{
		Name:                   "Mutable",
		RequiresManualApproval: true,
	})
	s.Require().NoError(err)
	s.True(updated.RequiresManualApproval)
	s.True(updated.UpdatedAt.After(level.CreatedAt) || updated.UpdatedAt.Equal(level.CreatedAt))
}

func (s *LevelServiceSuite) TestDeleteLevel() {
	s.Run("deletes an unreferenced level", func() {
		level, err := s.service.CreateLevel(s.ctx, models.NewLevelParams{Name: "Unused"})
		s.Require().NoError(err)

		s.Require().NoError(s.service.DeleteLevel(s.ctx, level.ID))

		_, err = s.service.GetLevel(s.ctx, level.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("refuses to delete a level with entries", func() {
		level, err := s.service.CreateLevel(s.ctx, models.NewLevelParams{Name: "InUse"})
		s.Require().NoError(err)

		entryService := NewEntryService(s.entries, s.levels)
		_, err = entryService.CreateEntry(s.ctx, models.NewEntryParams{
			FirstName: "Jane",
			LastName:  "Smith",
			LevelID:   level.ID,
		})
		s.Require().NoError(err)

		err = s.service.DeleteLevel(s.ctx, level.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("unknown level returns not found", func() {
		err := s.service.DeleteLevel(s.ctx, id.LevelID(uuid.New()))
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
