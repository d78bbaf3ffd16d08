package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	screeninglog "foyer/internal/screening/log"
	"foyer/internal/screening/service"
	"foyer/internal/screening/service/mocks"
	"foyer/internal/watchlist/engine"
	wmodels "foyer/internal/watchlist/models"
	id "foyer/pkg/domain"
	dErrors "foyer/pkg/domain-errors"
	"foyer/pkg/platform/sentinel"
	"foyer/pkg/requestcontext"
)

type fixture struct {
	entries  *mocks.MockEntryStore
	rules    *mocks.MockRuleSetStore
	levels   *mocks.MockLevelStore
	logs     *mocks.MockLogPublisher
	notifier *mocks.MockNotifier
	service  *service.Service
}

func newFixture(t *testing.T, opts ...service.Option) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		entries:  mocks.NewMockEntryStore(ctrl),
		rules:    mocks.NewMockRuleSetStore(ctrl),
		levels:   mocks.NewMockLevelStore(ctrl),
		logs:     mocks.NewMockLogPublisher(ctrl),
		notifier: mocks.NewMockNotifier(ctrl),
	}
	f.service = service.New(f.entries, f.rules, f.levels, f.logs, f.notifier, opts...)
	return f
}

func defaultRuleSet() *wmodels.RuleSet {
	group := wmodels.RuleGroup{
		ID:   id.GroupID(uuid.New()),
		Name: "Default",
		Rules: []wmodels.Rule{
			{ID: id.RuleID(uuid.New()), Parameter: wmodels.ParameterFirstName, Operator: wmodels.OperatorPartial},
			{ID: id.RuleID(uuid.New()), Parameter: wmodels.ParameterLastName, Operator: wmodels.OperatorExact},
		},
	}
	return &wmodels.RuleSet{Groups: []wmodels.RuleGroup{group}, DefaultGroupID: group.ID}
}

func newLevel(name string, logging, email, approval bool) *wmodels.Level {
	return &wmodels.Level{
		ID:                     id.LevelID(uuid.New()),
		Name:                   name,
		SystemLogging:          logging,
		SendEmailNotifications: email,
		Recipients:             []string{"security@example.com"},
		RequiresManualApproval: approval,
	}
}

func newEntry(first, last string, levelID id.LevelID) *wmodels.Entry {
	return &wmodels.Entry{
		ID:        id.EntryID(uuid.New()),
		FirstName: first,
		LastName:  last,
		LevelID:   levelID,
		Status:    wmodels.EntryStatusActive,
	}
}

func (f *fixture) expectState(ruleSet *wmodels.RuleSet, entries []*wmodels.Entry, levels []*wmodels.Level) {
	f.rules.EXPECT().Get(gomock.Any()).Return(ruleSet, nil)
	f.entries.EXPECT().ListActive(gomock.Any()).Return(entries, nil)
	f.levels.EXPECT().List(gomock.Any()).Return(levels, nil)
}

func TestScreenNoMatch(t *testing.T) {
	f := newFixture(t)
	level := newLevel("Standard", true, true, false)
	f.expectState(defaultRuleSet(), []*wmodels.Entry{newEntry("Jane", "Smith", level.ID)}, []*wmodels.Level{level})

	result, err := f.service.Screen(context.Background(), engine.Candidate{FirstName: "Bob", LastName: "Jones"})

	require.NoError(t, err)
	assert.False(t, result.IsMatch)
	assert.Empty(t, result.Matches)
}

func TestScreenMatchEnrichment(t *testing.T) {
	f := newFixture(t)
	level := newLevel("High risk", false, false, false)
	entry := newEntry("Jane", "Smith", level.ID)
	f.expectState(defaultRuleSet(), []*wmodels.Entry{entry}, []*wmodels.Level{level})

	result, err := f.service.Screen(context.Background(), engine.Candidate{FirstName: "Jane", LastName: "Smith"})

	require.NoError(t, err)
	require.True(t, result.IsMatch)
	require.Len(t, result.Matches, 1)
	match := result.Matches[0]
	assert.Equal(t, entry.ID, match.EntryID)
	assert.Equal(t, "Jane Smith", match.EntryName)
	assert.Equal(t, []string{"firstName", "lastName"}, match.MatchedFields)
	assert.Equal(t, level.ID, match.Level.ID)
	assert.Equal(t, "High risk", match.Level.Name)
	assert.False(t, result.RequiresManualApproval)
}

func TestScreenEmitsLogEventForLoggingLevel(t *testing.T) {
	f := newFixture(t)
	level := newLevel("Standard", true, false, false)
	entry := newEntry("Jane", "Smith", level.ID)
	f.expectState(defaultRuleSet(), []*wmodels.Entry{entry}, []*wmodels.Level{level})

	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)
	ctx = requestcontext.WithRequestID(ctx, "req-42")
	ctx = requestcontext.WithClientMetadata(ctx, "203.0.113.9", "Chrome/120 on Windows 10")
	ctx = requestcontext.WithKioskID(ctx, "lobby-north-1")

	var captured screeninglog.Event
	f.logs.EXPECT().Emit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event screeninglog.Event) error {
			captured = event
			return nil
		})

	result, err := f.service.Screen(ctx, engine.Candidate{FirstName: "Jane", LastName: "Smith", Email: "jane@corp.com"})

	require.NoError(t, err)
	require.True(t, result.IsMatch)
	assert.NotEqual(t, uuid.Nil, captured.ID)
	assert.Equal(t, now, captured.Timestamp)
	assert.Equal(t, "req-42", captured.RequestID)
	assert.Equal(t, "203.0.113.9", captured.ClientIP)
	assert.Equal(t, "lobby-north-1", captured.KioskID)
	assert.Equal(t, "Jane", captured.FirstName)
	assert.Equal(t, "jane@corp.com", captured.Email)
	assert.Equal(t, []id.EntryID{entry.ID}, captured.MatchedEntryIDs)
	assert.Equal(t, []string{"Standard"}, captured.LevelNames)
}

func TestScreenSkipsLogWhenLevelNotLogging(t *testing.T) {
	f := newFixture(t)
	level := newLevel("Quiet", false, false, false)
	f.expectState(defaultRuleSet(), []*wmodels.Entry{newEntry("Jane", "Smith", level.ID)}, []*wmodels.Level{level})

	// No Emit expectation: a call would fail the controller.
	result, err := f.service.Screen(context.Background(), engine.Candidate{FirstName: "Jane", LastName: "Smith"})

	require.NoError(t, err)
	assert.True(t, result.IsMatch)
}

func TestScreenNotifiesRecipients(t *testing.T) {
	f := newFixture(t)
	level := newLevel("High risk", false, true, false)
	f.expectState(defaultRuleSet(), []*wmodels.Entry{newEntry("Jane", "Smith", level.ID)}, []*wmodels.Level{level})

	f.notifier.EXPECT().
		Notify(gomock.Any(), []string{"security@example.com"}, gomock.Any(), gomock.Any()).
		Return(nil)

	_, err := f.service.Screen(context.Background(), engine.Candidate{FirstName: "Jane", LastName: "Smith"})
	require.NoError(t, err)
}

func TestScreenManualApprovalPropagates(t *testing.T) {
	f := newFixture(t)
	level := newLevel("Escort required", false, false, true)
	f.expectState(defaultRuleSet(), []*wmodels.Entry{newEntry("Jane", "Smith", level.ID)}, []*wmodels.Level{level})

	result, err := f.service.Screen(context.Background(), engine.Candidate{FirstName: "Jane", LastName: "Smith"})

	require.NoError(t, err)
	assert.True(t, result.RequiresManualApproval)
	assert.True(t, result.Matches[0].Level.RequiresManualApproval)
}

func TestScreenUnsavedRuleSetMeansNoMatch(t *testing.T) {
	f := newFixture(t)
	level := newLevel("Standard", true, false, false)
	f.rules.EXPECT().Get(gomock.Any()).Return(nil, sentinel.ErrNotFound)
	f.entries.EXPECT().ListActive(gomock.Any()).Return([]*wmodels.Entry{newEntry("Jane", "Smith", level.ID)}, nil)
	f.levels.EXPECT().List(gomock.Any()).Return([]*wmodels.Level{level}, nil)

	result, err := f.service.Screen(context.Background(), engine.Candidate{FirstName: "Jane", LastName: "Smith"})

	require.NoError(t, err)
	assert.False(t, result.IsMatch)
}

func TestScreenStoreFailure(t *testing.T) {
	f := newFixture(t)
	f.rules.EXPECT().Get(gomock.Any()).Return(defaultRuleSet(), nil).AnyTimes()
	f.entries.EXPECT().ListActive(gomock.Any()).Return(nil, errors.New("db down"))
	f.levels.EXPECT().List(gomock.Any()).Return(nil, nil).AnyTimes()

	_, err := f.service.Screen(context.Background(), engine.Candidate{FirstName: "Jane"})

	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}

func TestScreenSideEffectFailureDoesNotFailCheck(t *testing.T) {
	f := newFixture(t)
	level := newLevel("Standard", true, true, false)
	f.expectState(defaultRuleSet(), []*wmodels.Entry{newEntry("Jane", "Smith", level.ID)}, []*wmodels.Level{level})

	f.logs.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(errors.New("sink down"))
	f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))

	result, err := f.service.Screen(context.Background(), engine.Candidate{FirstName: "Jane", LastName: "Smith"})

	require.NoError(t, err)
	assert.True(t, result.IsMatch)
}

func TestScreenSharedLevelReportedOnce(t *testing.T) {
	f := newFixture(t)
	level := newLevel("Standard", true, false, false)
	entries := []*wmodels.Entry{
		newEntry("Jane", "Smith", level.ID),
		newEntry("Janet", "Smith", level.ID),
	}
	f.expectState(defaultRuleSet(), entries, []*wmodels.Level{level})

	var captured screeninglog.Event
	f.logs.EXPECT().Emit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event screeninglog.Event) error {
			captured = event
			return nil
		})

	result, err := f.service.Screen(context.Background(), engine.Candidate{FirstName: "Jane", LastName: "Smith"})

	require.NoError(t, err)
	require.Len(t, result.Matches, 2)
	assert.Equal(t, []string{"Standard"}, captured.LevelNames)
}
