//go:build integration

package log_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"foyer/internal/screening/log"
	id "foyer/pkg/domain"
	"foyer/pkg/testutil/containers"
)

type PostgresLogSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *log.Postgres
}

func TestPostgresLogSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresLogSuite))
}

func (s *PostgresLogSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = log.NewPostgres(s.postgres.DB)
}

func (s *PostgresLogSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "screening_log_events"))
}

func (s *PostgresLogSuite) TestArchiveRoundTrip() {
	ctx := context.Background()

	event := log.Event{
		ID:              uuid.New(),
		Timestamp:       time.Now().UTC().Truncate(time.Microsecond),
		RequestID:       "req-1",
		ClientIP:        "203.0.113.9",
		UserAgent:       "Chrome/120 on Windows 10",
		KioskID:         "lobby-north-1",
		FirstName:       "Jane",
		LastName:        "Smith",
		Email:           "jane@example.com",
		Phone:           "555-0100",
		MatchedEntryIDs: []id.EntryID{id.EntryID(uuid.New()), id.EntryID(uuid.New())},
		LevelNames:      []string{"High risk", "Standard"},
	}
	s.Require().NoError(s.store.Append(ctx, event))

	events, err := s.store.ListRecent(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(event.ID, events[0].ID)
	s.Equal(event.MatchedEntryIDs, events[0].MatchedEntryIDs)
	s.Equal(event.LevelNames, []string(events[0].LevelNames))
	s.True(event.Timestamp.Equal(events[0].Timestamp))
}

func (s *PostgresLogSuite) TestReplayIsIdempotent() {
	ctx := context.Background()

	event := log.Event{
		ID:              uuid.New(),
		Timestamp:       time.Now().UTC(),
		FirstName:       "Jane",
		LastName:        "Smith",
		MatchedEntryIDs: []id.EntryID{id.EntryID(uuid.New())},
	}
	s.Require().NoError(s.store.Append(ctx, event))
	s.Require().NoError(s.store.Append(ctx, event))

	events, err := s.store.ListRecent(ctx, 10)
	s.Require().NoError(err)
	s.Len(events, 1)
}

func (s *PostgresLogSuite) TestNewestFirst() {
	ctx := context.Background()
	now := time.Now().UTC()

	older := log.Event{ID: uuid.New(), Timestamp: now.Add(-time.Hour), FirstName: "Old"}
	newer := log.Event{ID: uuid.New(), Timestamp: now, FirstName: "New"}
	s.Require().NoError(s.store.Append(ctx, older))
	s.Require().NoError(s.store.Append(ctx, newer))

	events, err := s.store.ListRecent(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal(newer.ID, events[0].ID)
}
