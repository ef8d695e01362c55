// Package handler exposes the compatibility evaluation HTTP API. Reads of the
// matrix go through the directory API; this package only triggers evaluations.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"talentry/internal/matching/models"
	id "talentry/pkg/domain"
	dErrors "talentry/pkg/domain-errors"
	"talentry/pkg/platform/httputil"
	"talentry/pkg/requestcontext"
)

// Service defines the matching operations the handler depends on.
type Service interface {
	Evaluate(ctx context.Context, accountID, talentID, opportunityID id.AccountID, criteria []string) (*models.CompatibilityRecord, error)
}

// Handler handles compatibility evaluation HTTP requests.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New creates a matching handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the matching routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/matches/evaluate", h.HandleEvaluate)
}

// HandleEvaluate handles POST /matches/evaluate. Evaluation is an upsert:
// re-evaluating a pair replaces its record, so the response is 200 rather
// than 201 even when the cell is new.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	accountID := requestcontext.AccountID(ctx)
	if accountID.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[EvaluateMatchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	record, err := h.service.Evaluate(ctx, accountID, req.ParsedTalentID(), req.ParsedOpportunityID(), req.ParsedCriteria())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to evaluate compatibility",
			"error", err,
			"account_id", accountID,
			"talent_id", req.ParsedTalentID(),
			"opportunity_id", req.ParsedOpportunityID(),
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "compatibility evaluated",
		"account_id", accountID,
		"talent_id", record.TalentID,
		"opportunity_id", record.OpportunityID,
		"score", record.Score,
		"confidence", record.Confidence,
		"request_id", requestID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromRecord(record))
}
