package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	watchlistmetrics "foyer/internal/watchlist/metrics"
	"foyer/internal/watchlist/models"
	id "foyer/pkg/domain"
	dErrors "foyer/pkg/domain-errors"
	"foyer/pkg/requestcontext"
)

// EntryService manages the lifecycle of watchlist entries.
type EntryService struct {
	entries EntryStore
	levels  LevelStore
	logger  *slog.Logger
	metrics *watchlistmetrics.Metrics
}

func NewEntryService(entries EntryStore, levels LevelStore, opts ...Option) *EntryService {
	cfg := applyOptions(opts)
	return &EntryService{
		entries: entries,
		levels:  levels,
		logger:  cfg.logger,
		metrics: cfg.metrics,
	}
}

// CreateEntry adds a new active entry after verifying the level exists.
func (s *EntryService) CreateEntry(ctx context.Context, p models.NewEntryParams) (*models.Entry, error) {
	if _, err := s.levels.FindByID(ctx, p.LevelID); err != nil {
		return nil, translateStoreErr(err, "watchlist level")
	}

	entry, err := models.NewEntry(id.EntryID(uuid.New()), p, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeInvalidInput, dErrors.MessageOf(err))
		}
		return nil, err
	}

	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, translateStoreErr(err, "watchlist entry")
	}

	s.logger.InfoContext(ctx, "watchlist entry created",
		"entry_id", entry.ID,
		"level_id", entry.LevelID,
		"request_id", requestcontext.RequestID(ctx),
	)
	s.metrics.IncrementEntriesCreated()
	return entry, nil
}

func (s *EntryService) GetEntry(ctx context.Context, entryID id.EntryID) (*models.Entry, error) {
	entry, err := s.entries.FindByID(ctx, entryID)
	if err != nil {
		return nil, translateStoreErr(err, "watchlist entry")
	}
	return entry, nil
}

// ListEntries returns every entry, including inactive ones, for the console.
func (s *EntryService) ListEntries(ctx context.Context) ([]*models.Entry, error) {
	entries, err := s.entries.List(ctx)
	if err != nil {
		return nil, translateStoreErr(err, "watchlist entries")
	}
	return entries, nil
}

// UpdateEntry overwrites an entry's attributes. Status is managed through
// Deactivate/Reactivate, not here.
func (s *EntryService) UpdateEntry(ctx context.Context, entryID id.EntryID, p models.NewEntryParams) (*models.Entry, error) {
	entry, err := s.entries.FindByID(ctx, entryID)
	if err != nil {
		return nil, translateStoreErr(err, "watchlist entry")
	}
	if entry.LevelID != p.LevelID {
		if _, err := s.levels.FindByID(ctx, p.LevelID); err != nil {
			return nil, translateStoreErr(err, "watchlist level")
		}
	}

	if err := entry.ApplyUpdate(p, requestcontext.Now(ctx)); err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeInvalidInput, dErrors.MessageOf(err))
		}
		return nil, err
	}

	if err := s.entries.Update(ctx, entry); err != nil {
		return nil, translateStoreErr(err, "watchlist entry")
	}
	return entry, nil
}

// DeactivateEntry removes the entry from screening without deleting it.
func (s *EntryService) DeactivateEntry(ctx context.Context, entryID id.EntryID) (*models.Entry, error) {
	entry, err := s.entries.FindByID(ctx, entryID)
	if err != nil {
		return nil, translateStoreErr(err, "watchlist entry")
	}

	if err := entry.CanDeactivate(); err != nil {
		return nil, dErrors.New(dErrors.CodeConflict, "entry is already inactive")
	}
	entry.ApplyDeactivation(requestcontext.Now(ctx))

	if err := s.entries.Update(ctx, entry); err != nil {
		return nil, translateStoreErr(err, "watchlist entry")
	}

	s.logger.InfoContext(ctx, "watchlist entry deactivated",
		"entry_id", entry.ID,
		"request_id", requestcontext.RequestID(ctx),
	)
	s.metrics.IncrementEntriesDeactivated()
	return entry, nil
}

// ReactivateEntry returns a previously deactivated entry to screening.
func (s *EntryService) ReactivateEntry(ctx context.Context, entryID id.EntryID) (*models.Entry, error) {
	entry, err := s.entries.FindByID(ctx, entryID)
	if err != nil {
		return nil, translateStoreErr(err, "watchlist entry")
	}

	if err := entry.CanReactivate(); err != nil {
		return nil, dErrors.New(dErrors.CodeConflict, "entry is already active")
	}
	entry.ApplyReactivation(requestcontext.Now(ctx))

	if err := s.entries.Update(ctx, entry); err != nil {
		return nil, translateStoreErr(err, "watchlist entry")
	}

	s.logger.InfoContext(ctx, "watchlist entry reactivated",
		"entry_id", entry.ID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return entry, nil
}
