// Package handler exposes the directory HTTP API: the public GET surface over
// talent profiles, opportunities, organizations, and the compatibility matrix.
// The mutation routes live with their owning modules.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	matchinghandler "talentry/internal/matching/handler"
	matchingmodels "talentry/internal/matching/models"
	opportunityhandler "talentry/internal/opportunity/handler"
	opportunitymodels "talentry/internal/opportunity/models"
	organizationhandler "talentry/internal/organization/handler"
	organizationmodels "talentry/internal/organization/models"
	talenthandler "talentry/internal/talent/handler"
	talentmodels "talentry/internal/talent/models"
	id "talentry/pkg/domain"
	dErrors "talentry/pkg/domain-errors"
	"talentry/pkg/platform/httputil"
	"talentry/pkg/requestcontext"
)

// Service defines the directory lookups the handler depends on.
type Service interface {
	Talent(ctx context.Context, accountID id.AccountID) (*talentmodels.TalentProfile, error)
	Opportunity(ctx context.Context, accountID id.AccountID) (*opportunitymodels.Opportunity, error)
	Organization(ctx context.Context, accountID id.AccountID) (*organizationmodels.Organization, error)
	Match(ctx context.Context, talentID, opportunityID id.AccountID) (*matchingmodels.CompatibilityRecord, error)
}

// Handler handles directory HTTP requests.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New creates a directory handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the directory routes on the given router. Responses reuse
// the owning module's representations so a record always reads the same no
// matter which route served it.
func (h *Handler) Register(r chi.Router) {
	r.Get("/talent/{accountID}", h.HandleTalent)
	r.Get("/opportunities/{accountID}", h.HandleOpportunity)
	r.Get("/organizations/{accountID}", h.HandleOrganization)
	r.Get("/matches/{talentID}/{opportunityID}", h.HandleMatch)
}

// HandleTalent handles GET /talent/{accountID}.
func (h *Handler) HandleTalent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	if requestcontext.AccountID(ctx).IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	accountID, err := id.ParseAccountID(chi.URLParam(r, "accountID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	profile, err := h.service.Talent(ctx, accountID)
	if err != nil {
		h.logLookupFailure(ctx, "talent", err)
		httputil.WriteError(w, err)
		return
	}

	h.logLookupServed(ctx, "talent", start)
	httputil.WriteJSON(w, http.StatusOK, talenthandler.FromProfile(profile))
}

// HandleOpportunity handles GET /opportunities/{accountID}.
func (h *Handler) HandleOpportunity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	if requestcontext.AccountID(ctx).IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	accountID, err := id.ParseAccountID(chi.URLParam(r, "accountID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	listing, err := h.service.Opportunity(ctx, accountID)
	if err != nil {
		h.logLookupFailure(ctx, "opportunity", err)
		httputil.WriteError(w, err)
		return
	}

	h.logLookupServed(ctx, "opportunity", start)
	httputil.WriteJSON(w, http.StatusOK, opportunityhandler.FromOpportunity(listing))
}

// HandleOrganization handles GET /organizations/{accountID}.
func (h *Handler) HandleOrganization(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	if requestcontext.AccountID(ctx).IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	accountID, err := id.ParseAccountID(chi.URLParam(r, "accountID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	org, err := h.service.Organization(ctx, accountID)
	if err != nil {
		h.logLookupFailure(ctx, "organization", err)
		httputil.WriteError(w, err)
		return
	}

	h.logLookupServed(ctx, "organization", start)
	httputil.WriteJSON(w, http.StatusOK, organizationhandler.FromOrganization(org))
}

// HandleMatch handles GET /matches/{talentID}/{opportunityID}.
func (h *Handler) HandleMatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	if requestcontext.AccountID(ctx).IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	talentID, err := id.ParseAccountID(chi.URLParam(r, "talentID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	opportunityID, err := id.ParseAccountID(chi.URLParam(r, "opportunityID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	record, err := h.service.Match(ctx, talentID, opportunityID)
	if err != nil {
		h.logLookupFailure(ctx, "match", err)
		httputil.WriteError(w, err)
		return
	}

	h.logLookupServed(ctx, "match", start)
	httputil.WriteJSON(w, http.StatusOK, matchinghandler.FromRecord(record))
}

// logLookupFailure skips not-found: absence is routine directory traffic, not
// a failure worth an error line.
func (h *Handler) logLookupFailure(ctx context.Context, kind string, err error) {
	if dErrors.HasCode(err, dErrors.CodeNotFound) {
		return
	}
	h.logger.ErrorContext(ctx, "failed to serve directory lookup",
		"kind", kind,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
}

func (h *Handler) logLookupServed(ctx context.Context, kind string, start time.Time) {
	h.logger.DebugContext(ctx, "directory lookup served",
		"kind", kind,
		"request_id", requestcontext.RequestID(ctx),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
