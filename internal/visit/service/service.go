// Package service orchestrates the visit lifecycle: registration with
// screening, the admin approval queue, and kiosk check-in/check-out.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	smodels "foyer/internal/screening/models"
	visitmetrics "foyer/internal/visit/metrics"
	"foyer/internal/visit/models"
	"foyer/internal/watchlist/engine"
	id "foyer/pkg/domain"
	dErrors "foyer/pkg/domain-errors"
	"foyer/pkg/platform/sentinel"
)

// VisitorStore is the persistence surface for visitor profiles.
type VisitorStore interface {
	Create(ctx context.Context, visitor *models.Visitor) error
	FindByID(ctx context.Context, visitorID id.VisitorID) (*models.Visitor, error)
	FindByEmail(ctx context.Context, email string) (*models.Visitor, error)
}

// VisitStore is the persistence surface for visits.
type VisitStore interface {
	Create(ctx context.Context, visit *models.Visit) error
	FindByID(ctx context.Context, visitID id.VisitID) (*models.Visit, error)
	Update(ctx context.Context, visit *models.Visit) error
	ListRecent(ctx context.Context, limit int) ([]*models.Visit, error)
	ListPending(ctx context.Context) ([]*models.Visit, error)
	ListByVisitor(ctx context.Context, visitorID id.VisitorID) ([]*models.Visit, error)
}

// Screener runs the watchlist check during registration.
type Screener interface {
	Screen(ctx context.Context, candidate engine.Candidate) (smodels.Result, error)
}

// PassIssuer signs and verifies visitor pass tokens.
type PassIssuer interface {
	Issue(visitID id.VisitID, visitorID id.VisitorID, now time.Time) (string, error)
	Verify(token string) (id.VisitID, error)
}

type serviceConfig struct {
	logger  *slog.Logger
	metrics *visitmetrics.Metrics
}

// Option configures the visit service.
type Option func(cfg *serviceConfig)

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *serviceConfig) {
		cfg.logger = logger
	}
}

func WithMetrics(m *visitmetrics.Metrics) Option {
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
