// Package handler exposes the opportunity HTTP API.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"talentry/internal/opportunity/models"
	id "talentry/pkg/domain"
	dErrors "talentry/pkg/domain-errors"
	"talentry/pkg/platform/httputil"
	"talentry/pkg/requestcontext"
)

// Service defines the opportunity operations the handler depends on.
type Service interface {
	Publish(ctx context.Context, accountID id.AccountID, draft models.OpportunityDraft) (*models.Opportunity, error)
	Update(ctx context.Context, accountID id.AccountID, update models.OpportunityUpdate) (*models.Opportunity, error)
	Terminate(ctx context.Context, accountID id.AccountID) error
}

// Handler handles opportunity HTTP requests.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New creates an opportunity handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the opportunity routes on the given router. All routes
// operate on the authenticated account; there is no listing ID in the path.
func (h *Handler) Register(r chi.Router) {
	r.Post("/opportunities", h.HandlePublish)
	r.Put("/opportunities", h.HandleUpdate)
	r.Delete("/opportunities", h.HandleTerminate)
}

// HandlePublish handles POST /opportunities.
func (h *Handler) HandlePublish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	accountID := requestcontext.AccountID(ctx)
	if accountID.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[PublishOpportunityRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	listing, err := h.service.Publish(ctx, accountID, req.ParsedDraft())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to publish opportunity",
			"error", err,
			"account_id", accountID,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "opportunity published",
		"account_id", accountID,
		"competencies", len(listing.Competencies),
		"request_id", requestID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusCreated, FromOpportunity(listing))
}

// HandleUpdate handles PUT /opportunities.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	accountID := requestcontext.AccountID(ctx)
	if accountID.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateOpportunityRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	listing, err := h.service.Update(ctx, accountID, req.ParsedUpdate())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to update opportunity",
			"error", err,
			"account_id", accountID,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "opportunity updated",
		"account_id", accountID,
		"request_id", requestID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusAccepted, FromOpportunity(listing))
}

// HandleTerminate handles DELETE /opportunities.
func (h *Handler) HandleTerminate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	accountID := requestcontext.AccountID(ctx)
	if accountID.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	if err := h.service.Terminate(ctx, accountID); err != nil {
		h.logger.ErrorContext(ctx, "failed to terminate opportunity",
			"error", err,
			"account_id", accountID,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "opportunity terminated",
		"account_id", accountID,
		"request_id", requestID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	w.WriteHeader(http.StatusNoContent)
}
