// Package service orchestrates compatibility evaluation: load the pair's
// snapshots, score them, derive confidence, and upsert the matrix cell.
// Absence of either snapshot never fails an evaluation; the scorer simply
// receives less information.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"

	"talentry/internal/audit"
	"talentry/internal/matching"
	"talentry/internal/matching/metrics"
	"talentry/internal/matching/models"
	opportunitymodels "talentry/internal/opportunity/models"
	talentmodels "talentry/internal/talent/models"
	"talentry/pkg/attrs"
	id "talentry/pkg/domain"
	dErrors "talentry/pkg/domain-errors"
	"talentry/pkg/platform/sentinel"
	"talentry/pkg/requestcontext"
	"talentry/pkg/timesource"
)

var tracer = otel.Tracer("matching")

// Store is the write port for the compatibility matrix. Reads go through the
// directory module, which declares its own port.
type Store interface {
	Upsert(ctx context.Context, record *models.CompatibilityRecord) error
}

// TalentReader loads talent snapshots for scoring.
type TalentReader interface {
	FindByAccount(ctx context.Context, accountID id.AccountID) (*talentmodels.TalentProfile, error)
}

// OpportunityReader loads opportunity snapshots for scoring.
type OpportunityReader interface {
	FindByAccount(ctx context.Context, accountID id.AccountID) (*opportunitymodels.Opportunity, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates compatibility evaluation.
type Service struct {
	records        Store
	talents        TalentReader
	opportunities  OpportunityReader
	scorer         matching.Scorer
	clock          timesource.Source
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithScorer swaps the scoring strategy. The default is the baseline scorer.
func WithScorer(scorer matching.Scorer) Option {
	return func(s *Service) {
		if scorer != nil {
			s.scorer = scorer
		}
	}
}

// New constructs a Service. A nil clock falls back to the system source.
func New(records Store, talents TalentReader, opportunities OpportunityReader, clock timesource.Source, opts ...Option) *Service {
	if clock == nil {
		clock = timesource.System{}
	}
	s := &Service{
		records:       records,
		talents:       talents,
		opportunities: opportunities,
		scorer:        matching.NewBaselineScorer(),
		clock:         clock,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Evaluate scores the talent/opportunity pair and upserts the matrix cell.
// Re-evaluating a pair replaces the previous record wholesale, stamped with
// this request's clock reading.
func (s *Service) Evaluate(ctx context.Context, accountID, talentID, opportunityID id.AccountID, criteria []string) (*models.CompatibilityRecord, error) {
	ctx, span := tracer.Start(ctx, "Matching.Service.Evaluate")
	defer span.End()
	start := time.Now()

	now, err := s.clock.Now(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeClockUnavailable, "no trustworthy clock for evaluate")
	}

	talent, err := s.loadTalent(ctx, talentID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	opportunity, err := s.loadOpportunity(ctx, opportunityID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	score := s.scorer.Score(matching.EvaluationInput{
		Talent:      talent,
		Opportunity: opportunity,
		Criteria:    criteria,
	})
	confidence := matching.ConfidenceFor(score)

	record, err := models.NewCompatibilityRecord(talentID, opportunityID, score, confidence, criteria, now)
	if err != nil {
		// Convert invariant violations to validation errors for API response
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	if err := s.records.Upsert(ctx, record); err != nil {
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store compatibility record")
	}

	s.logAudit(ctx, string(audit.EventCompatibilityEvaluated),
		"account_id", accountID.String(),
		"talent_id", talentID.String(),
		"opportunity_id", opportunityID.String(),
		"score", record.Score,
		"confidence", record.Confidence)
	s.metrics.IncrementEvaluations()
	s.metrics.ObserveEvaluate(start)

	return record, nil
}

// loadTalent fetches the talent snapshot. Absence is not an error: the scorer
// receives a nil snapshot and judges with what it has.
func (s *Service) loadTalent(ctx context.Context, talentID id.AccountID) (*talentmodels.TalentProfile, error) {
	profile, err := s.talents.FindByAccount(ctx, talentID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load talent snapshot")
	}
	return profile, nil
}

// loadOpportunity fetches the opportunity snapshot under the same absence rule.
func (s *Service) loadOpportunity(ctx context.Context, opportunityID id.AccountID) (*opportunitymodels.Opportunity, error) {
	listing, err := s.opportunities.FindByAccount(ctx, opportunityID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load opportunity snapshot")
	}
	return listing, nil
}

func (s *Service) logAudit(ctx context.Context, event string, attributes ...any) {
	// Add request_id from context if available
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", event, "log_type", "audit")
	if s.logger != nil {
		s.logger.InfoContext(ctx, event, args...)
	}
	if s.auditPublisher == nil {
		return
	}
	rawAccount := attrs.ExtractString(attributes, "account_id")
	accountID, _ := id.ParseAccountID(rawAccount)
	_ = s.auditPublisher.Emit(ctx, audit.Event{
		AccountID:   accountID,
		Subject:     rawAccount,
		Action:      event,
		RequestID:   requestcontext.RequestID(ctx),
		ClientIP:    requestcontext.ClientIP(ctx),
		DeviceLabel: requestcontext.DeviceLabel(ctx),
	})
}
