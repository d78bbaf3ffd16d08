//go:build integration

package entry_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"foyer/internal/watchlist/models"
	"foyer/internal/watchlist/store/entry"
	"foyer/internal/watchlist/store/level"
	id "foyer/pkg/domain"
	"foyer/pkg/platform/sentinel"
	"foyer/pkg/testutil/containers"
)

type PostgresEntrySuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *entry.PostgresStore
	levels   *level.PostgresStore
	levelID  id.LevelID
}

func TestPostgresEntrySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresEntrySuite))
}

func (s *PostgresEntrySuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = entry.NewPostgres(s.postgres.DB)
	s.levels = level.NewPostgres(s.postgres.DB)
}

func (s *PostgresEntrySuite) SetupTest() {
	ctx := context.Background()
	err := s.postgres.TruncateTables(ctx, "watchlist_entries", "watchlist_levels")
	s.Require().NoError(err)

	// Entries carry a level foreign key; seed one per test.
	now := time.Now()
	seeded := &models.Level{
		ID:        id.LevelID(uuid.New()),
		Name:      "Seed " + uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Require().NoError(s.levels.CreateIfNameAvailable(ctx, seeded))
	s.levelID = seeded.ID
}

func (s *PostgresEntrySuite) newEntry(firstName, lastName string) *models.Entry {
	return &models.Entry{
		ID:          id.EntryID(uuid.New()),
		FirstName:   firstName,
		LastName:    lastName,
		LevelID:     s.levelID,
		Status:      models.EntryStatusActive,
		LastUpdated: time.Now(),
	}
}

func (s *PostgresEntrySuite) TestRoundTripWithArrays() {
	ctx := context.Background()

	created := s.newEntry("Jane", "Smith")
	created.AltFirstNames = []string{"Janey", "JJ"}
	created.AltLastNames = []string{"Smythe"}
	created.PrimaryEmail = "jane@example.com"
	created.PrimaryPhone = "555-0456"
	created.AdditionalEmails = []string{"jane.alt@example.com"}
	created.AdditionalPhones = []string{"555-9999"}
	created.Notes = "escorted only"
	created.ReportedBy = "front desk"

	s.Require().NoError(s.store.Create(ctx, created))

	found, err := s.store.FindByID(ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(created.FirstName, found.FirstName)
	s.Equal(created.AltFirstNames, found.AltFirstNames)
	s.Equal(created.AltLastNames, found.AltLastNames)
	s.Equal(created.AdditionalEmails, found.AdditionalEmails)
	s.Equal(created.AdditionalPhones, found.AdditionalPhones)
	s.Equal(created.Notes, found.Notes)
	s.Equal(s.levelID, found.LevelID)
}

func (s *PostgresEntrySuite) TestListActiveExcludesInactive() {
	ctx := context.Background()

	active := s.newEntry("Jane", "Smith")
	inactive := s.newEntry("John", "Doe")
	inactive.Status = models.EntryStatusInactive

	s.Require().NoError(s.store.Create(ctx, active))
	s.Require().NoError(s.store.Create(ctx, inactive))

	all, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Len(all, 2)

	activeOnly, err := s.store.ListActive(ctx)
	s.Require().NoError(err)
	s.Require().Len(activeOnly, 1)
	s.Equal(active.ID, activeOnly[0].ID)
}

func (s *PostgresEntrySuite) TestStatusTransitionsPersist() {
	ctx := context.Background()

	created := s.newEntry("Jane", "Smith")
	s.Require().NoError(s.store.Create(ctx, created))

	created.ApplyDeactivation(time.Now())
	s.Require().NoError(s.store.Update(ctx, created))

	found, err := s.store.FindByID(ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(models.EntryStatusInactive, found.Status)

	created.ApplyReactivation(time.Now())
	s.Require().NoError(s.store.Update(ctx, created))

	found, err = s.store.FindByID(ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(models.EntryStatusActive, found.Status)
}

func (s *PostgresEntrySuite) TestCountByLevel() {
	ctx := context.Background()

	s.Require().NoError(s.store.Create(ctx, s.newEntry("Jane", "Smith")))
	s.Require().NoError(s.store.Create(ctx, s.newEntry("John", "Doe")))

	count, err := s.store.CountByLevel(ctx, s.levelID)
	s.Require().NoError(err)
	s.Equal(2, count)

	count, err = s.store.CountByLevel(ctx, id.LevelID(uuid.New()))
	s.Require().NoError(err)
	s.Equal(0, count)
}

func (s *PostgresEntrySuite) TestNotFoundError() {
	ctx := context.Background()

	_, err := s.store.FindByID(ctx, id.EntryID(uuid.New()))
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.ErrorIs(s.store.Update(ctx, s.newEntry("Ghost", "Entry")), sentinel.ErrNotFound)
}
