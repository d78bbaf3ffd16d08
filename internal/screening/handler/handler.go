// Package handler exposes the screening API: an evaluate endpoint for the
// console and ops tooling, and the recent screening log.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	screeninglog "foyer/internal/screening/log"
	"foyer/internal/screening/models"
	"foyer/internal/watchlist/engine"
	"foyer/pkg/platform/httputil"
	"foyer/pkg/requestcontext"
)

// Screener runs one screening check.
type Screener interface {
	Screen(ctx context.Context, candidate engine.Candidate) (models.Result, error)
}

// LogReader lists recent screening-log events.
type LogReader interface {
	ListRecent(ctx context.Context, limit int) ([]screeninglog.Event, error)
}

// Handler serves the screening endpoints.
type Handler struct {
	screener Screener
	logs     LogReader
	logger   *slog.Logger
}

// New constructs the handler. logs may be nil when no queryable log store
// is configured; the log endpoint then returns an empty list.
func New(screener Screener, logs LogReader, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{screener: screener, logs: logs, logger: logger}
}

// Register mounts the screening routes.
func (h *Handler) Register(r chi.Router) {
	r.Route("/screening", func(r chi.Router) {
		r.Post("/evaluate", h.evaluate)
		r.Get("/log", h.listLog)
	})
}

// EvaluateRequest is the screening candidate as submitted. All fields are
// optional: evaluation treats absent values as empty strings.
type EvaluateRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func (h *Handler) evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[EvaluateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.screener.Screen(ctx, engine.Candidate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "screening check failed",
			"request_id", requestID, "error", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) listLog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.logs == nil {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{"events": []screeninglog.Event{}})
		return
	}

	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil && parsed > 0 && parsed <= 1000 {
			limit = parsed
		}
	}

	events, err := h.logs.ListRecent(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list screening log",
			"request_id", requestcontext.RequestID(ctx), "error", err)
		httputil.WriteError(w, err)
		return
	}
	if events == nil {
		events = []screeninglog.Event{}
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{"events": events})
}
