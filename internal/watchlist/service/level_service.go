package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	watchlistmetrics "foyer/internal/watchlist/metrics"
	"foyer/internal/watchlist/models"
	id "foyer/pkg/domain"
	dErrors "foyer/pkg/domain-errors"
	"foyer/pkg/requestcontext"
)

// LevelService manages watchlist severity levels.
type LevelService struct {
	levels  LevelStore
	entries EntryStore
	logger  *slog.Logger
	metrics *watchlistmetrics.Metrics
}

func NewLevelService(levels LevelStore, entries EntryStore, opts ...Option) *LevelService {
	cfg := applyOptions(opts)
	return &LevelService{
		levels:  levels,
		entries: entries,
		logger:  cfg.logger,
		metrics: cfg.metrics,
	}
}

func (s *LevelService) CreateLevel(ctx context.Context, p models.NewLevelParams) (*models.Level, error) {
	level, err := models.NewLevel(id.LevelID(uuid.New()), p, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeInvalidInput, dErrors.MessageOf(err))
		}
		return nil, err
	}

	if err := s.levels.CreateIfNameAvailable(ctx, level); err != nil {
		if dErrors.HasCode(translateStoreErr(err, "watchlist level"), dErrors.CodeConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "level name must be unique")
		}
		return nil, translateStoreErr(err, "watchlist level")
	}

	s.logger.InfoContext(ctx, "watchlist level created",
		"level_id", level.ID,
		"name", level.Name,
		"request_id", requestcontext.RequestID(ctx),
	)
	s.metrics.IncrementLevelsCreated()
	return level, nil
}

func (s *LevelService) GetLevel(ctx context.Context, levelID id.LevelID) (*models.Level, error) {
	level, err := s.levels.FindByID(ctx, levelID)
	if err != nil {
		return nil, translateStoreErr(err, "watchlist level")
	}
	return level, nil
}

func (s *LevelService) ListLevels(ctx context.Context) ([]*models.Level, error) {
	levels, err := s.levels.List(ctx)
	if err != nil {
		return nil, translateStoreErr(err, "watchlist levels")
	}
	return levels, nil
}

func (s *LevelService) UpdateLevel(ctx context.Context, levelID id.LevelID, p models.NewLevelParams) (*models.Level, error) {
	level, err := s.levels.FindByID(ctx, levelID)
	if err != nil {
		return nil, translateStoreErr(err, "watchlist level")
	}

	if err := level.ApplyUpdate(p, requestcontext.Now(ctx)); err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeInvalidInput, dErrors.MessageOf(err))
		}
		return nil, err
	}

	if err := s.levels.Update(ctx, level); err != nil {
		if dErrors.HasCode(translateStoreErr(err, "watchlist level"), dErrors.CodeConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "level name must be unique")
		}
		return nil, translateStoreErr(err, "watchlist level")
	}
	return level, nil
}

// DeleteLevel removes a level that no entry references. Levels still in use
// must keep existing so entries never dangle.
func (s *LevelService) DeleteLevel(ctx context.Context, levelID id.LevelID) error {
	count, err := s.entries.CountByLevel(ctx, levelID)
	if err != nil {
		return translateStoreErr(err, "watchlist entries")
	}
	if count > 0 {
		return dErrors.New(dErrors.CodeConflict,
			fmt.Sprintf("level is referenced by %d entries", count))
	}

	if err := s.levels.Delete(ctx, levelID); err != nil {
		return translateStoreErr(err, "watchlist level")
	}

	s.logger.InfoContext(ctx, "watchlist level deleted",
		"level_id", levelID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}
