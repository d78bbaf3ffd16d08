package entry

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"foyer/internal/watchlist/models"
	id "foyer/pkg/domain"
	"foyer/pkg/platform/sentinel"
)

type EntryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *EntryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *EntryStoreSuite) SetupSubTest() {
	s.SetupTest()
}

func TestEntryStoreSuite(t *testing.T) {
	suite.Run(t, new(EntryStoreSuite))
}

func (s *EntryStoreSuite) newEntry(firstName, lastName string) *models.Entry {
	return &models.Entry{
		ID:          id.EntryID(uuid.New()),
		FirstName:   firstName,
		LastName:    lastName,
		LevelID:     id.LevelID(uuid.New()),
		Status:      models.EntryStatusActive,
		LastUpdated: time.Now(),
	}
}

func (s *EntryStoreSuite) TestCreationAndLookups() {
	s.Run("creates and finds entry by ID", func() {
		entry := s.newEntry("Jane", "Smith")
		s.Require().NoError(s.store.Create(s.ctx, entry))

		found, err := s.store.FindByID(s.ctx, entry.ID)
		s.Require().NoError(err)
		s.Equal("Jane", found.FirstName)
		s.Equal("Smith", found.LastName)
	})

	s.Run("rejects duplicate ID", func() {
		entry := s.newEntry("Jane", "Smith")
		s.Require().NoError(s.store.Create(s.ctx, entry))
		s.Require().ErrorIs(s.store.Create(s.ctx, entry), sentinel.ErrConflict)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, id.EntryID(uuid.New()))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *EntryStoreSuite) TestListing() {
	s.Run("List includes inactive entries, ListActive excludes them", func() {
		active := s.newEntry("Jane", "Smith")
		inactive := s.newEntry("John", "Doe")
		inactive.Status = models.EntryStatusInactive

		s.Require().NoError(s.store.Create(s.ctx, active))
		s.Require().NoError(s.store.Create(s.ctx, inactive))

		all, err := s.store.List(s.ctx)
		s.Require().NoError(err)
		s.Len(all, 2)

		activeOnly, err := s.store.ListActive(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(activeOnly, 1)
		s.Equal(active.ID, activeOnly[0].ID)
	})

	s.Run("orders newest mutation first", func() {
		older := s.newEntry("Old", "Entry")
		older.LastUpdated = time.Now().Add(-time.Hour)
		newer := s.newEntry("New", "Entry")

		s.Require().NoError(s.store.Create(s.ctx, older))
		s.Require().NoError(s.store.Create(s.ctx, newer))

		all, err := s.store.List(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(all, 2)
		s.Equal(newer.ID, all[0].ID)
	})
}

func (s *EntryStoreSuite) TestUpdates() {
	s.Run("persists status transitions", func() {
		entry := s.newEntry("Jane", "Smith")
		s.Require().NoError(s.store.Create(s.ctx, entry))

		entry.ApplyDeactivation(time.Now())
		s.Require().NoError(s.store.Update(s.ctx, entry))

		found, err := s.store.FindByID(s.ctx, entry.ID)
		s.Require().NoError(err)
		s.Equal(models.EntryStatusInactive, found.Status)
	})

	s.Run("returns ErrNotFound for non-existent entry", func() {
		s.Require().ErrorIs(s.store.Update(s.ctx, s.newEntry("Ghost", "Entry")), sentinel.ErrNotFound)
	})
}

func (s *EntryStoreSuite) TestCountByLevel() {
	levelID := id.LevelID(uuid.New())

	first := s.newEntry("Jane", "Smith")
	first.LevelID = levelID
	second := s.newEntry("John", "Doe")
	second.LevelID = levelID
	other := s.newEntry("Mary", "Jones")

	s.Require().NoError(s.store.Create(s.ctx, first))
	s.Require().NoError(s.store.Create(s.ctx, second))
	s.Require().NoError(s.store.Create(s.ctx, other))

	count, err := s.store.CountByLevel(s.ctx, levelID)
	s.Require().NoError(err)
	s.Equal(2, count)
}

func (s *EntryStoreSuite) TestIsolation() {
	s.Run("mutating returned slices does not affect the store", func() {
		entry := s.newEntry("Jane", "Smith")
		entry.AltFirstNames = []string{"Janey"}
		s.Require().NoError(s.store.Create(s.ctx, entry))

		found, err := s.store.FindByID(s.ctx, entry.ID)
		s.Require().NoError(err)
		found.AltFirstNames[0] = "Mutated"

		again, err := s.store.FindByID(s.ctx, entry.ID)
		s.Require().NoError(err)
		s.Equal([]string{"Janey"}, again.AltFirstNames)
	})
}
