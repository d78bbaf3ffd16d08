// Package handler exposes the visit API: kiosk-facing registration and
// check-in routes, plus the admin approval queue.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"foyer/internal/visit/models"
	"foyer/internal/visit/service"
	id "foyer/pkg/domain"
	dErrors "foyer/pkg/domain-errors"
	"foyer/pkg/platform/httputil"
	"foyer/pkg/requestcontext"
)

// VisitService is the service surface required by the handler.
type VisitService interface {
	RegisterVisit(ctx context.Context, p service.RegisterParams) (*service.RegistrationResult, error)
	Approve(ctx context.Context, visitID id.VisitID) (*service.ApprovalResult, error)
	Deny(ctx context.Context, visitID id.VisitID, reason string) (*models.Visit, error)
	CheckIn(ctx context.Context, p service.CheckInParams) (*models.Visit, error)
	CheckOut(ctx context.Context, visitID id.VisitID) (*models.Visit, error)
	GetVisit(ctx context.Context, visitID id.VisitID) (*models.Visit, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Visit, error)
	ListPending(ctx context.Context) ([]*models.Visit, error)
	ListByVisitor(ctx context.Context, visitorID id.VisitorID) ([]*models.Visit, error)
}

// Handler serves the visit endpoints.
type Handler struct {
	visits VisitService
	logger *slog.Logger
}

// New constructs the handler.
func New(visits VisitService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{visits: visits, logger: logger}
}

// Register mounts the kiosk-facing routes.
func (h *Handler) Register(r chi.Router) {
	r.Route("/visits", func(r chi.Router) {
		r.Post("/", h.register)
		r.Post("/checkin", h.checkIn)
		r.Get("/{visitID}", h.getVisit)
		r.Post("/{visitID}/checkout", h.checkOut)
	})
}

// RegisterAdmin mounts the approval-queue routes. The caller wraps them in
// the admin-token middleware.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Route("/visits", func(r chi.Router) {
		r.Get("/", h.listRecent)
		r.Get("/pending", h.listPending)
		r.Post("/{visitID}/approve", h.approve)
		r.Post("/{visitID}/deny", h.deny)
	})
	r.Get("/visitors/{visitorID}/visits", h.listByVisitor)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.DecodeAndPrepare[RegisterRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	result, err := h.visits.RegisterVisit(ctx, req.Params())
	if err != nil {
		h.writeErr(ctx, w, "register visit", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, result)
}

func (h *Handler) checkIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.DecodeAndPrepare[CheckInRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	visit, err := h.visits.CheckIn(ctx, req.Params())
	if err != nil {
		h.writeErr(ctx, w, "check in", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, visit)
}

func (h *Handler) checkOut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	visitID, ok := h.visitID(w, r)
	if !ok {
		return
	}

	visit, err := h.visits.CheckOut(ctx, visitID)
	if err != nil {
		h.writeErr(ctx, w, "check out", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, visit)
}

func (h *Handler) getVisit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	visitID, ok := h.visitID(w, r)
	if !ok {
		return
	}

	visit, err := h.visits.GetVisit(ctx, visitID)
	if err != nil {
		h.writeErr(ctx, w, "get visit", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, visit)
}

func (h *Handler) listRecent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	visits, err := h.visits.ListRecent(ctx, limit)
	if err != nil {
		h.writeErr(ctx, w, "list visits", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, visitList(visits))
}

func (h *Handler) listPending(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	visits, err := h.visits.ListPending(ctx)
	if err != nil {
		h.writeErr(ctx, w, "list pending visits", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, visitList(visits))
}

func (h *Handler) listByVisitor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	visitorID, err := id.ParseVisitorID(chi.URLParam(r, "visitorID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid visitor id"))
		return
	}

	visits, err := h.visits.ListByVisitor(ctx, visitorID)
	if err != nil {
		h.writeErr(ctx, w, "list visitor history", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, visitList(visits))
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	visitID, ok := h.visitID(w, r)
	if !ok {
		return
	}

	result, err := h.visits.Approve(ctx, visitID)
	if err != nil {
		h.writeErr(ctx, w, "approve visit", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) deny(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	visitID, ok := h.visitID(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[DenyRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	visit, err := h.visits.Deny(ctx, visitID, req.Reason)
	if err != nil {
		h.writeErr(ctx, w, "deny visit", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, visit)
}

func (h *Handler) visitID(w http.ResponseWriter, r *http.Request) (id.VisitID, bool) {
	visitID, err := id.ParseVisitID(chi.URLParam(r, "visitID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid visit id"))
		return id.VisitID{}, false
	}
	return visitID, true
}

func (h *Handler) writeErr(ctx context.Context, w http.ResponseWriter, op string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, op+" failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}

// visitList wraps visits so the JSON body is an object, never a bare array.
func visitList(visits []*models.Visit) map[string]any {
	if visits == nil {
		visits = []*models.Visit{}
	}
	return map[string]any{"visits": visits}
}
