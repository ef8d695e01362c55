// Package service orchestrates the organization lifecycle: establish, partial
// update, dissolve, and the admin-only verification transition. All writes are
// stamped from the injected time source and recorded in the audit trail.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"

	"talentry/internal/audit"
	"talentry/internal/organization/metrics"
	"talentry/internal/organization/models"
	"talentry/pkg/attrs"
	id "talentry/pkg/domain"
	dErrors "talentry/pkg/domain-errors"
	"talentry/pkg/platform/sentinel"
	"talentry/pkg/requestcontext"
	"talentry/pkg/timesource"
)

var tracer = otel.Tracer("organization")

// Store is the persistence port for organizations.
type Store interface {
	CreateIfAbsent(ctx context.Context, org *models.Organization) error
	FindByAccount(ctx context.Context, accountID id.AccountID) (*models.Organization, error)
	Update(ctx context.Context, org *models.Organization) error
	Delete(ctx context.Context, accountID id.AccountID) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates organization management.
type Service struct {
	orgs           Store
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
func New(orgs Store, clock timesource.Source, opts ...Option) *Service {
	if clock == nil {
		clock = timesource.System{}
	}
	s := &Service{orgs: orgs, clock: clock}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Establish creates the caller's organization. Verification always starts
// Unverified regardless of input.
func (s *Service) Establish(ctx context.Context, accountID id.AccountID, draft models.OrganizationDraft) (*models.Organization, error) {
	ctx, span := tracer.Start(ctx, "Organization.Service.Establish")
	defer span.End()
	start := time.Now()

	now, err := s.clock.Now(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeClockUnavailable, "no trustworthy clock for establish")
	}

	org, err := models.NewOrganization(accountID, draft, now)
	if err != nil {
		// Convert invariant violations to validation errors for API response
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	if err := s.orgs.CreateIfAbsent(ctx, org); err != nil {
		span.RecordError(err)
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "organization already exists for this account")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to establish organization")
	}

	s.logAudit(ctx, string(audit.EventOrganizationEstablished),
		"account_id", accountID.String())
	s.metrics.IncrementEstablished()
	s.metrics.ObserveEstablish(start)

	return org, nil
}

// Update applies a partial update to the caller's organization. Verification
// has no update path here; only Verify moves it.
func (s *Service) Update(ctx context.Context, accountID id.AccountID, update models.OrganizationUpdate) (*models.Organization, error) {
	ctx, span := tracer.Start(ctx, "Organization.Service.Update")
	defer span.End()
	start := time.Now()

	now, err := s.clock.Now(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeClockUnavailable, "no trustworthy clock for update")
	}

	org, err := s.orgs.FindByAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "organization not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load organization")
	}

	if err := org.Apply(update, now); err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	if err := s.orgs.Update(ctx, org); err != nil {
		span.RecordError(err)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "organization not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update organization")
	}

	s.logAudit(ctx, string(audit.EventOrganizationUpdated),
		"account_id", accountID.String())
	s.metrics.ObserveUpdate(start)

	return org, nil
}

// Dissolve removes the caller's organization. The delete is physical.
func (s *Service) Dissolve(ctx context.Context, accountID id.AccountID) error {
	ctx, span := tracer.Start(ctx, "Organization.Service.Dissolve")
	defer span.End()

	if err := s.orgs.Delete(ctx, accountID); err != nil {
		span.RecordError(err)
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "organization not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to dissolve organization")
	}

	s.logAudit(ctx, string(audit.EventOrganizationDissolved),
		"account_id", accountID.String())
	s.metrics.IncrementDissolved()

	return nil
}

// Verify performs the admin verification transition on the target account's
// organization. Verifying an already verified organization is an invalid
// state transition.
func (s *Service) Verify(ctx context.Context, accountID id.AccountID) (*models.Organization, error) {
	ctx, span := tracer.Start(ctx, "Organization.Service.Verify")
	defer span.End()

	now, err := s.clock.Now(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeClockUnavailable, "no trustworthy clock for verify")
	}

	org, err := s.orgs.FindByAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "organization not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load organization")
	}

	if err := org.MarkVerified(now); err != nil {
		return nil, err
	}

	if err := s.orgs.Update(ctx, org); err != nil {
		span.RecordError(err)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "organization not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify organization")
	}

	s.logAudit(ctx, string(audit.EventOrganizationVerified),
		"account_id", accountID.String())
	s.metrics.IncrementVerified()

	return org, nil
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
