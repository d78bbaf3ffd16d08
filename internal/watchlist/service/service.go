// Package service orchestrates watchlist configuration: entries, levels,
// and the match rule set. Handlers call these services; the screening
// module reads through them as well.
package service

import (
	"context"
	"errors"
	"log/slog"

	watchlistmetrics "foyer/internal/watchlist/metrics"
	"foyer/internal/watchlist/models"
	id "foyer/pkg/domain"
	dErrors "foyer/pkg/domain-errors"
	"foyer/pkg/platform/sentinel"
)

// EntryStore is the persistence surface required by EntryService.
type EntryStore interface {
	Create(ctx context.Context, entry *models.Entry) error
	FindByID(ctx context.Context, entryID id.EntryID) (*models.Entry, error)
	List(ctx context.Context) ([]*models.Entry, error)
	ListActive(ctx context.Context) ([]*models.Entry, error)
	Update(ctx context.Context, entry *models.Entry) error
	CountByLevel(ctx context.Context, levelID id.LevelID) (int, error)
}

// LevelStore is the persistence surface required by LevelService.
type LevelStore interface {
	CreateIfNameAvailable(ctx context.Context, level *models.Level) error
	FindByID(ctx context.Context, levelID id.LevelID) (*models.Level, error)
	List(ctx context.Context) ([]*models.Level, error)
	Update(ctx context.Context, level *models.Level) error
	Delete(ctx context.Context, levelID id.LevelID) error
}

// RuleSetStore is the persistence surface required by RuleSetService.
type RuleSetStore interface {
	Get(ctx context.Context) (*models.RuleSet, error)
	Save(ctx context.Context, ruleSet *models.RuleSet) error
}

type serviceConfig struct {
	logger  *slog.Logger
	metrics *watchlistmetrics.Metrics
}

// Option configures the watchlist services.
type Option func(cfg *serviceConfig)

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *serviceConfig) {
		cfg.logger = logger
	}
}

func WithMetrics(m *watchlistmetrics.Metrics) Option {
	return func(cfg *serviceConfig) {
		cfg.metrics = m
	}
}

func applyOptions(opts []Option) *serviceConfig {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return cfg
}

// translateStoreErr maps store sentinels onto domain errors with the given
// resource name in the message.
func translateStoreErr(err error, resource string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, resource+" not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, resource+" already exists")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to access "+resource)
	}
}
