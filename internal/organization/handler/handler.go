// Package handler exposes the organization HTTP API, including the admin-only
// verification endpoint.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"talentry/internal/organization/models"
	id "talentry/pkg/domain"
	dErrors "talentry/pkg/domain-errors"
	"talentry/pkg/platform/httputil"
	"talentry/pkg/requestcontext"
)

// Service defines the organization operations the handler depends on.
type Service interface {
	Establish(ctx context.Context, accountID id.AccountID, draft models.OrganizationDraft) (*models.Organization, error)
	Update(ctx context.Context, accountID id.AccountID, update models.OrganizationUpdate) (*models.Organization, error)
	Dissolve(ctx context.Context, accountID id.AccountID) error
	Verify(ctx context.Context, accountID id.AccountID) (*models.Organization, error)
}

// Handler handles organization HTTP requests.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New creates an organization handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the caller-facing organization routes. All routes operate
// on the authenticated account.
func (h *Handler) Register(r chi.Router) {
	r.Post("/organizations", h.HandleEstablish)
	r.Put("/organizations", h.HandleUpdate)
	r.Delete("/organizations", h.HandleDissolve)
}

// RegisterAdmin mounts the verification route. The caller mounts this under
// the admin-token-protected subtree.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/organizations/{accountID}/verification", h.HandleVerify)
}

// HandleEstablish handles POST /organizations.
func (h *Handler) HandleEstablish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	accountID := requestcontext.AccountID(ctx)
	if accountID.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[EstablishOrganizationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	org, err := h.service.Establish(ctx, accountID, req.ParsedDraft())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to establish organization",
			"error", err,
			"account_id", accountID,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "organization established",
		"account_id", accountID,
		"request_id", requestID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusCreated, FromOrganization(org))
}

// HandleUpdate handles PUT /organizations.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	accountID := requestcontext.AccountID(ctx)
	if accountID.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateOrganizationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	org, err := h.service.Update(ctx, accountID, req.ParsedUpdate())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to update organization",
			"error", err,
			"account_id", accountID,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "organization updated",
		"account_id", accountID,
		"request_id", requestID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusAccepted, FromOrganization(org))
}

// HandleDissolve handles DELETE /organizations.
func (h *Handler) HandleDissolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	accountID := requestcontext.AccountID(ctx)
	if accountID.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	if err := h.service.Dissolve(ctx, accountID); err != nil {
		h.logger.ErrorContext(ctx, "failed to dissolve organization",
			"error", err,
			"account_id", accountID,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "organization dissolved",
		"account_id", accountID,
		"request_id", requestID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	w.WriteHeader(http.StatusNoContent)
}

// HandleVerify handles POST /admin/organizations/{accountID}/verification.
// Admin authentication happens in middleware; the target account comes from
// the path, not the bearer token.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	accountID, err := id.ParseAccountID(chi.URLParam(r, "accountID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	org, err := h.service.Verify(ctx, accountID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to verify organization",
			"error", err,
			"account_id", accountID,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "organization verified",
		"account_id", accountID,
		"request_id", requestID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusAccepted, FromOrganization(org))
}
