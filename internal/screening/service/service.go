// Package service runs screening checks: it loads the current watchlist
// configuration, evaluates the candidate through the match engine, and
// fans out the side effects the matched levels ask for (log events, email
// notifications).
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	screeninglog "foyer/internal/screening/log"
	screeningmetrics "foyer/internal/screening/metrics"
	"foyer/internal/screening/models"
	"foyer/internal/watchlist/engine"
	wmodels "foyer/internal/watchlist/models"
	id "foyer/pkg/domain"
	dErrors "foyer/pkg/domain-errors"
	"foyer/pkg/platform/sentinel"
	"foyer/pkg/requestcontext"
)

// EntryStore supplies the active watchlist entries.
type EntryStore interface {
	ListActive(ctx context.Context) ([]*wmodels.Entry, error)
}

// RuleSetStore supplies the current match rule set.
type RuleSetStore interface {
	Get(ctx context.Context) (*wmodels.RuleSet, error)
}

// LevelStore supplies the watchlist levels for match enrichment.
type LevelStore interface {
	List(ctx context.Context) ([]*wmodels.Level, error)
}

// LogPublisher receives screening-log events for matches on levels with
// system logging enabled.
type LogPublisher interface {
	Emit(ctx context.Context, event screeninglog.Event) error
}

// Notifier delivers match notifications to a level's recipients.
type Notifier interface {
	Notify(ctx context.Context, recipients []string, subject, body string) error
}

// Service is the screening orchestrator.
type Service struct {
	entries  EntryStore
	rules    RuleSetStore
	levels   LevelStore
	logs     LogPublisher
	notifier Notifier

	opts    engine.Options
	logger  *slog.Logger
	metrics *screeningmetrics.Metrics
	tracer  trace.Tracer
}

// Option configures the screening service.
type Option func(*Service)

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics wires the screening metrics.
func WithMetrics(m *screeningmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithEngineOptions tunes match evaluation (the empty-value guard).
func WithEngineOptions(opts engine.Options) Option {
	return func(s *Service) {
		s.opts = opts
	}
}

// New constructs the screening service. logs and notifier may be nil when
// the deployment runs without those side effects.
func New(entries EntryStore, rules RuleSetStore, levels LevelStore, logs LogPublisher, notifier Notifier, opts ...Option) *Service {
	s := &Service{
		entries:  entries,
		rules:    rules,
		levels:   levels,
		logs:     logs,
		notifier: notifier,
		logger:   slog.Default(),
		tracer:   otel.Tracer("foyer/screening"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Screen evaluates the candidate against the live watchlist configuration.
// Rule set and entries are loaded fresh on every call so an admin edit is
// visible to the very next check, with no caching in between.
func (s *Service) Screen(ctx context.Context, candidate engine.Candidate) (models.Result, error) {
	ctx, span := s.tracer.Start(ctx, "screening.Screen")
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.ObserveCheckDuration(time.Since(start).Seconds())
	}()

	ruleSet, entries, levels, err := s.loadState(ctx)
	if err != nil {
		s.metrics.RecordCheck("error")
		return models.Result{}, err
	}

	verdict := engine.Evaluate(candidate, *ruleSet, entries, s.opts)
	result := s.enrich(verdict, candidate, entries, levels)

	span.SetAttributes(
		attribute.Bool("screening.match", result.IsMatch),
		attribute.Int("screening.matched_entries", len(result.Matches)),
	)

	if !result.IsMatch {
		s.metrics.RecordCheck("no_match")
		return result, nil
	}
	s.metrics.RecordCheck("match")

	s.logger.InfoContext(ctx, "screening match",
		"request_id", requestcontext.RequestID(ctx),
		"matched_entries", len(result.Matches),
	)

	s.fanOut(ctx, candidate, result, levels)
	return result, nil
}

// loadState fetches the rule set, active entries, and levels concurrently.
// A rule set that was never saved behaves as empty: nothing matches, but
// the check itself succeeds.
func (s *Service) loadState(ctx context.Context) (*wmodels.RuleSet, []wmodels.Entry, map[id.LevelID]*wmodels.Level, error) {
	var (
		ruleSet *wmodels.RuleSet
		entries []wmodels.Entry
		levels  map[id.LevelID]*wmodels.Level
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rs, err := s.rules.Get(gctx)
		if errors.Is(err, sentinel.ErrNotFound) {
			ruleSet = &wmodels.RuleSet{}
			return nil
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load rule set")
		}
		ruleSet = rs
		return nil
	})
	g.Go(func() error {
		active, err := s.entries.ListActive(gctx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load watchlist entries")
		}
		entries = make([]wmodels.Entry, len(active))
		for i, entry := range active {
			entries[i] = *entry
		}
		return nil
	})
	g.Go(func() error {
		all, err := s.levels.List(gctx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load watchlist levels")
		}
		levels = make(map[id.LevelID]*wmodels.Level, len(all))
		for _, level := range all {
			levels[level.ID] = level
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return ruleSet, entries, levels, nil
}

// enrich joins the engine verdict with entry and level data into the
// self-contained result callers consume.
func (s *Service) enrich(verdict engine.Result, candidate engine.Candidate, entries []wmodels.Entry, levels map[id.LevelID]*wmodels.Level) models.Result {
	if !verdict.IsMatch {
		return models.Result{}
	}

	byID := make(map[id.EntryID]*wmodels.Entry, len(entries))
	for i := range entries {
		byID[entries[i].ID] = &entries[i]
	}

	result := models.Result{IsMatch: true}
	for _, entryID := range verdict.MatchedEntryIDs {
		entry := byID[entryID]
		match := models.Match{
			EntryID:       entryID,
			EntryName:     entry.FirstName + " " + entry.LastName,
			MatchedFields: verdict.MatchedFields(entryID),
		}
		if level, ok := levels[entry.LevelID]; ok {
			match.Level = models.LevelSummary{
				ID:                     level.ID,
				Name:                   level.Name,
				Color:                  level.Color,
				RequiresManualApproval: level.RequiresManualApproval,
			}
			if level.RequiresManualApproval {
				result.RequiresManualApproval = true
			}
		}
		result.Matches = append(result.Matches, match)
	}
	return result
}

// fanOut performs the per-level side effects of a match. Failures are
// logged and swallowed: the verdict already stands, and a broken log sink
// or mail path must not turn a completed check into an error.
func (s *Service) fanOut(ctx context.Context, candidate engine.Candidate, result models.Result, levels map[id.LevelID]*wmodels.Level) {
	var (
		logIt      bool
		levelNames []string
		recipients []string
	)
	seenLevel := make(map[id.LevelID]bool)
	for _, match := range result.Matches {
		level, ok := levels[match.Level.ID]
		if !ok || seenLevel[level.ID] {
			continue
		}
		seenLevel[level.ID] = true
		levelNames = append(levelNames, level.Name)
		if level.SystemLogging {
			logIt = true
		}
		if level.SendEmailNotifications {
			recipients = append(recipients, level.Recipients...)
		}
	}

	if logIt && s.logs != nil {
		event := screeninglog.Event{
			ID:              uuid.New(),
			Timestamp:       requestcontext.Now(ctx).UTC(),
			RequestID:       requestcontext.RequestID(ctx),
			ClientIP:        requestcontext.ClientIP(ctx),
			UserAgent:       requestcontext.UserAgent(ctx),
			KioskID:         requestcontext.KioskID(ctx),
			FirstName:       candidate.FirstName,
			LastName:        candidate.LastName,
			Email:           candidate.Email,
			Phone:           candidate.Phone,
			MatchedEntryIDs: result.MatchedEntryIDs(),
			LevelNames:      levelNames,
		}
		if err := s.logs.Emit(ctx, event); err != nil {
			s.logger.ErrorContext(ctx, "failed to emit screening-log event",
				"event_id", event.ID, "error", err)
		}
	}

	if len(recipients) > 0 && s.notifier != nil {
		subject := "Watchlist match: " + candidate.FirstName + " " + candidate.LastName
		body := matchSummary(result)
		if err := s.notifier.Notify(ctx, recipients, subject, body); err != nil {
			s.logger.ErrorContext(ctx, "failed to send match notification", "error", err)
		}
	}
}

// matchSummary renders a plain-text notification body.
func matchSummary(result models.Result) string {
	body := "A visitor registration matched the watchlist.\n\nMatched entries:\n"
	for _, match := range result.Matches {
		body += " - " + match.EntryName
		if match.Level.Name != "" {
			body += " (" + match.Level.Name + ")"
		}
		body += "\n"
	}
	return body
}
