// Package handler exposes the watchlist administration API under
// /admin/watchlist. All endpoints sit behind the admin-token middleware
// mounted by the server.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"foyer/internal/watchlist/models"
	"foyer/internal/watchlist/service"
	id "foyer/pkg/domain"
	dErrors "foyer/pkg/domain-errors"
	"foyer/pkg/platform/httputil"
	"foyer/pkg/requestcontext"
)

// EntryService manages watchlist entries.
type EntryService interface {
	CreateEntry(ctx context.Context, p models.NewEntryParams) (*models.Entry, error)
	GetEntry(ctx context.Context, entryID id.EntryID) (*models.Entry, error)
	ListEntries(ctx context.Context) ([]*models.Entry, error)
	UpdateEntry(ctx context.Context, entryID id.EntryID, p models.NewEntryParams) (*models.Entry, error)
	DeactivateEntry(ctx context.Context, entryID id.EntryID) (*models.Entry, error)
	ReactivateEntry(ctx context.Context, entryID id.EntryID) (*models.Entry, error)
}

// LevelService manages watchlist levels.
type LevelService interface {
	CreateLevel(ctx context.Context, p models.NewLevelParams) (*models.Level, error)
	GetLevel(ctx context.Context, levelID id.LevelID) (*models.Level, error)
	ListLevels(ctx context.Context) ([]*models.Level, error)
	UpdateLevel(ctx context.Context, levelID id.LevelID, p models.NewLevelParams) (*models.Level, error)
	DeleteLevel(ctx context.Context, levelID id.LevelID) error
}

// RuleSetService is the rule editor.
type RuleSetService interface {
	GetRuleSet(ctx context.Context) (*models.RuleSet, error)
	AddGroup(ctx context.Context, name string) (*models.RuleSet, error)
	RenameGroup(ctx context.Context, groupID id.GroupID, name string) (*models.RuleSet, error)
	DeleteGroup(ctx context.Context, groupID id.GroupID) (*models.RuleSet, error)
	AddRule(ctx context.Context, groupID id.GroupID, p service.RuleParams) (*models.RuleSet, error)
	UpdateRule(ctx context.Context, groupID id.GroupID, ruleID id.RuleID, p service.RuleParams) (*models.RuleSet, error)
	DeleteRule(ctx context.Context, groupID id.GroupID, ruleID id.RuleID) (*models.RuleSet, error)
	AvailableParameters(ctx context.Context, groupID id.GroupID) ([]models.RuleParameter, error)
}

// Handler wires the watchlist admin endpoints to the watchlist services.
type Handler struct {
	entries  EntryService
	levels   LevelService
	ruleSets RuleSetService
	logger   *slog.Logger
}

// New constructs a watchlist handler with its dependencies.
func New(entries EntryService, levels LevelService, ruleSets RuleSetService, logger *slog.Logger) *Handler {
	return &Handler{
		entries:  entries,
		levels:   levels,
		ruleSets: ruleSets,
		logger:   logger,
	}
}

// Register mounts the watchlist admin endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/admin/watchlist", func(r chi.Router) {
		r.Route("/entries", func(r chi.Router) {
			r.Post("/", h.HandleCreateEntry)
			r.Get("/", h.HandleListEntries)
			r.Get("/{entryID}", h.HandleGetEntry)
			r.Put("/{entryID}", h.HandleUpdateEntry)
			r.Post("/{entryID}/deactivate", h.HandleDeactivateEntry)
			r.Post("/{entryID}/reactivate", h.HandleReactivateEntry)
		})
		r.Route("/levels", func(r chi.Router) {
			r.Post("/", h.HandleCreateLevel)
			r.Get("/", h.HandleListLevels)
			r.Get("/{levelID}", h.HandleGetLevel)
			r.Put("/{levelID}", h.HandleUpdateLevel)
			r.Delete("/{levelID}", h.HandleDeleteLevel)
		})
		r.Route("/rules", func(r chi.Router) {
			r.Get("/", h.HandleGetRuleSet)
			r.Post("/groups", h.HandleAddGroup)
			r.Put("/groups/{groupID}", h.HandleRenameGroup)
			r.Delete("/groups/{groupID}", h.HandleDeleteGroup)
			r.Get("/groups/{groupID}/parameters", h.HandleAvailableParameters)
			r.Post("/groups/{groupID}/rules", h.HandleAddRule)
			r.Put("/groups/{groupID}/rules/{ruleID}", h.HandleUpdateRule)
			r.Delete("/groups/{groupID}/rules/{ruleID}", h.HandleDeleteRule)
		})
	})
}

func (h *Handler) HandleCreateEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[EntryRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	entry, err := h.entries.CreateEntry(ctx, req.Params())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, entry)
}

func (h *Handler) HandleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.entries.ListEntries(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (h *Handler) HandleGetEntry(w http.ResponseWriter, r *http.Request) {
	entryID, ok := h.entryID(w, r)
	if !ok {
		return
	}
	entry, err := h.entries.GetEntry(r.Context(), entryID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entry)
}

func (h *Handler) HandleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entryID, ok := h.entryID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[EntryRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	entry, err := h.entries.UpdateEntry(ctx, entryID, req.Params())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entry)
}

func (h *Handler) HandleDeactivateEntry(w http.ResponseWriter, r *http.Request) {
	entryID, ok := h.entryID(w, r)
	if !ok {
		return
	}
	entry, err := h.entries.DeactivateEntry(r.Context(), entryID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entry)
}

func (h *Handler) HandleReactivateEntry(w http.ResponseWriter, r *http.Request) {
	entryID, ok := h.entryID(w, r)
	if !ok {
		return
	}
	entry, err := h.entries.ReactivateEntry(r.Context(), entryID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entry)
}

func (h *Handler) HandleCreateLevel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[LevelRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	level, err := h.levels.CreateLevel(ctx, req.Params())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, level)
}

func (h *Handler) HandleListLevels(w http.ResponseWriter, r *http.Request) {
	levels, err := h.levels.ListLevels(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"levels": levels})
}

func (h *Handler) HandleGetLevel(w http.ResponseWriter, r *http.Request) {
	levelID, ok := h.levelID(w, r)
	if !ok {
		return
	}
	level, err := h.levels.GetLevel(r.Context(), levelID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, level)
}

func (h *Handler) HandleUpdateLevel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	levelID, ok := h.levelID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[LevelRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	level, err := h.levels.UpdateLevel(ctx, levelID, req.Params())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, level)
}

func (h *Handler) HandleDeleteLevel(w http.ResponseWriter, r *http.Request) {
	levelID, ok := h.levelID(w, r)
	if !ok {
		return
	}
	if err := h.levels.DeleteLevel(r.Context(), levelID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleGetRuleSet(w http.ResponseWriter, r *http.Request) {
	ruleSet, err := h.ruleSets.GetRuleSet(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ruleSet)
}

func (h *Handler) HandleAddGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[GroupRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	ruleSet, err := h.ruleSets.AddGroup(ctx, req.Name)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, ruleSet)
}

func (h *Handler) HandleRenameGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	groupID, ok := h.groupID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[GroupRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	ruleSet, err := h.ruleSets.RenameGroup(ctx, groupID, req.Name)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ruleSet)
}

func (h *Handler) HandleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	groupID, ok := h.groupID(w, r)
	if !ok {
		return
	}
	ruleSet, err := h.ruleSets.DeleteGroup(r.Context(), groupID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ruleSet)
}

func (h *Handler) HandleAvailableParameters(w http.ResponseWriter, r *http.Request) {
	groupID, ok := h.groupID(w, r)
	if !ok {
		return
	}
	parameters, err := h.ruleSets.AvailableParameters(r.Context(), groupID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"parameters": parameters})
}

func (h *Handler) HandleAddRule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	groupID, ok := h.groupID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[RuleRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	ruleSet, err := h.ruleSets.AddRule(ctx, groupID, req.Params())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, ruleSet)
}

func (h *Handler) HandleUpdateRule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	groupID, ok := h.groupID(w, r)
	if !ok {
		return
	}
	ruleID, ok := h.ruleID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[RuleRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	ruleSet, err := h.ruleSets.UpdateRule(ctx, groupID, ruleID, req.Params())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ruleSet)
}

func (h *Handler) HandleDeleteRule(w http.ResponseWriter, r *http.Request) {
	groupID, ok := h.groupID(w, r)
	if !ok {
		return
	}
	ruleID, ok := h.ruleID(w, r)
	if !ok {
		return
	}
	ruleSet, err := h.ruleSets.DeleteRule(r.Context(), groupID, ruleID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ruleSet)
}

func (h *Handler) entryID(w http.ResponseWriter, r *http.Request) (id.EntryID, bool) {
	entryID, err := id.ParseEntryID(chi.URLParam(r, "entryID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "entry id must be a valid UUID"))
		return id.EntryID{}, false
	}
	return entryID, true
}

func (h *Handler) levelID(w http.ResponseWriter, r *http.Request) (id.LevelID, bool) {
	levelID, err := id.ParseLevelID(chi.URLParam(r, "levelID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "level id must be a valid UUID"))
		return id.LevelID{}, false
	}
	return levelID, true
}

func (h *Handler) groupID(w http.ResponseWriter, r *http.Request) (id.GroupID, bool) {
	groupID, err := id.ParseGroupID(chi.URLParam(r, "groupID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "group id must be a valid UUID"))
		return id.GroupID{}, false
	}
	return groupID, true
}

func (h *Handler) ruleID(w http.ResponseWriter, r *http.Request) (id.RuleID, bool) {
	ruleID, err := id.ParseRuleID(chi.URLParam(r, "ruleID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "rule id must be a valid UUID"))
		return id.RuleID{}, false
	}
	return ruleID, true
}
