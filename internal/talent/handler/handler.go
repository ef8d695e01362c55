// Package handler exposes the talent profile HTTP API.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"talentry/internal/talent/models"
	id "talentry/pkg/domain"
	dErrors "talentry/pkg/domain-errors"
	"talentry/pkg/platform/httputil"
	"talentry/pkg/requestcontext"
)

// Service defines the talent operations the handler depends on.
type Service interface {
	Establish(ctx context.Context, accountID id.AccountID, draft models.TalentDraft) (*models.TalentProfile, error)
	Update(ctx context.Context, accountID id.AccountID, update models.TalentProfileUpdate) (*models.TalentProfile, error)
	Deactivate(ctx context.Context, accountID id.AccountID) error
}

// Handler handles talent profile HTTP requests.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New creates a talent handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the talent routes on the given router. All routes operate
// on the authenticated account; there is no talent ID in the path.
func (h *Handler) Register(r chi.Router) {
	r.Post("/talent", h.HandleEstablish)
	r.Put("/talent", h.HandleUpdate)
	r.Delete("/talent", h.HandleDeactivate)
}

// HandleEstablish handles POST /talent.
func (h *Handler) HandleEstablish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	accountID := requestcontext.AccountID(ctx)
	if accountID.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[EstablishTalentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	profile, err := h.service.Establish(ctx, accountID, req.ParsedDraft())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to establish talent profile",
			"error", err,
			"account_id", accountID,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "talent profile established",
		"account_id", accountID,
		"skills", len(profile.Skills),
		"request_id", requestID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusCreated, FromProfile(profile))
}

// HandleUpdate handles PUT /talent.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	accountID := requestcontext.AccountID(ctx)
	if accountID.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateTalentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	profile, err := h.service.Update(ctx, accountID, req.ParsedUpdate())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to update talent profile",
			"error", err,
			"account_id", accountID,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "talent profile updated",
		"account_id", accountID,
		"request_id", requestID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusAccepted, FromProfile(profile))
}

// HandleDeactivate handles DELETE /talent.
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	accountID := requestcontext.AccountID(ctx)
	if accountID.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	if err := h.service.Deactivate(ctx, accountID); err != nil {
		h.logger.ErrorContext(ctx, "failed to deactivate talent profile",
			"error", err,
			"account_id", accountID,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "talent profile deactivated",
		"account_id", accountID,
		"request_id", requestID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	w.WriteHeader(http.StatusNoContent)
}
