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

type RedisLogSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *log.Redis
}

func TestRedisLogSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisLogSuite))
}

func (s *RedisLogSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redis = mgr.GetRedis(s.T())
	s.store = log.NewRedis(s.redis.Client, 24*time.Hour)
}

func (s *RedisLogSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func eventAt(ts time.Time) log.Event {
	return log.Event{
		ID:              uuid.New(),
		Timestamp:       ts,
		FirstName:       "Jane",
		LastName:        "Smith",
		ClientIP:        "203.0.113.9",
		KioskID:         "lobby-north-1",
		MatchedEntryIDs: []id.EntryID{id.EntryID(uuid.New())},
		LevelNames:      []string{"High risk"},
	}
}

func (s *RedisLogSuite) TestRoundTrip() {
	ctx := context.Background()
	event := eventAt(time.Now().UTC().Truncate(time.Millisecond))

	s.Require().NoError(s.store.Append(ctx, event))

	events, err := s.store.ListRecent(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(event.ID, events[0].ID)
	s.Equal(event.MatchedEntryIDs, events[0].MatchedEntryIDs)
	s.Equal(event.KioskID, events[0].KioskID)
}

func (s *RedisLogSuite) TestNewestFirst() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	older := eventAt(now.Add(-time.Hour))
	newer := eventAt(now)
	s.Require().NoError(s.store.Append(ctx, older))
	s.Require().NoError(s.store.Append(ctx, newer))

	events, err := s.store.ListRecent(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal(newer.ID, events[0].ID)
	s.Equal(older.ID, events[1].ID)
}

func (s *RedisLogSuite) TestRetentionTrimsOldEvents() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	expired := eventAt(now.Add(-48 * time.Hour))
	s.Require().NoError(s.store.Append(ctx, expired))

	// Appending a fresh event trims everything past the retention window.
	fresh := eventAt(now)
	s.Require().NoError(s.store.Append(ctx, fresh))

	events, err := s.store.ListRecent(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(fresh.ID, events[0].ID)
}

func (s *RedisLogSuite) TestLimit() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	for i := range 5 {
		s.Require().NoError(s.store.Append(ctx, eventAt(now.Add(time.Duration(i)*time.Minute))))
	}

	events, err := s.store.ListRecent(ctx, 2)
	s.Require().NoError(err)
	s.Len(events, 2)
}
