// Package service orchestrates the opportunity lifecycle: publish, partial
// update, terminate. All writes are stamped from the injected time source and
// recorded in the audit trail. Expiration is validated against the same
// instant that stamps the write, so a listing can never be born expired.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"

	"talentry/internal/audit"
	"talentry/internal/opportunity/metrics"
	"talentry/internal/opportunity/models"
	"talentry/pkg/attrs"
	id "talentry/pkg/domain"
	dErrors "talentry/pkg/domain-errors"
	"talentry/pkg/platform/sentinel"
	"talentry/pkg/requestcontext"
	"talentry/pkg/timesource"
)

var tracer = otel.Tracer("opportunity")

// Store is the persistence port for opportunities.
type Store interface {
	CreateIfAbsent(ctx context.Context, listing *models.Opportunity) error
	FindByAccount(ctx context.Context, accountID id.AccountID) (*models.Opportunity, error)
	Update(ctx context.Context, listing *models.Opportunity) error
	Delete(ctx context.Context, accountID id.AccountID) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates opportunity management.
type Service struct {
	listings       Store
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

// New constructs a Service. A nil clock falls back to the system source.
func New(listings Store, clock timesource.Source, opts ...Option) *Service {
	if clock == nil {
		clock = timesource.System{}
	}
	s := &Service{listings: listings, clock: clock}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Publish creates the caller's opportunity listing. The expiration is checked
// against the publish instant: strictly earlier fails validation, exactly
// equal is accepted.
func (s *Service) Publish(ctx context.Context, accountID id.AccountID, draft models.OpportunityDraft) (*models.Opportunity, error) {
	ctx, span := tracer.Start(ctx, "Opportunity.Service.Publish")
	defer span.End()
	start := time.Now()

	now, err := s.clock.Now(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeClockUnavailable, "no trustworthy clock for publish")
	}

	listing, err := models.NewOpportunity(accountID, draft, now)
	if err != nil {
		// Convert invariant violations to validation errors for API response
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	if err := s.listings.CreateIfAbsent(ctx, listing); err != nil {
		span.RecordError(err)
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "opportunity already exists for this account")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to publish opportunity")
	}

	s.logAudit(ctx, string(audit.EventOpportunityPublished),
		"account_id", accountID.String())
	s.metrics.IncrementPublished()
	s.metrics.ObservePublish(start)

	return listing, nil
}

// Update applies a partial update to the caller's listing. A provided
// expiration is re-checked against the update instant; an absent one is left
// alone even if already past.
func (s *Service) Update(ctx context.Context, accountID id.AccountID, update models.OpportunityUpdate) (*models.Opportunity, error) {
	ctx, span := tracer.Start(ctx, "Opportunity.Service.Update")
	defer span.End()
	start := time.Now()

	now, err := s.clock.Now(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeClockUnavailable, "no trustworthy clock for update")
	}

	listing, err := s.listings.FindByAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "opportunity not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load opportunity")
	}

	if err := listing.Apply(update, now); err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	if err := s.listings.Update(ctx, listing); err != nil {
		span.RecordError(err)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "opportunity not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update opportunity")
	}

	s.logAudit(ctx, string(audit.EventOpportunityUpdated),
		"account_id", accountID.String())
	s.metrics.ObserveUpdate(start)

	return listing, nil
}

// Terminate removes the caller's listing. The delete is physical; a
// subsequent publish starts from scratch.
func (s *Service) Terminate(ctx context.Context, accountID id.AccountID) error {
	ctx, span := tracer.Start(ctx, "Opportunity.Service.Terminate")
	defer span.End()

	if err := s.listings.Delete(ctx, accountID); err != nil {
		span.RecordError(err)
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "opportunity not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to terminate opportunity")
	}

	s.logAudit(ctx, string(audit.EventOpportunityTerminated),
		"account_id", accountID.String())
	s.metrics.IncrementTerminated()

	return nil
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
