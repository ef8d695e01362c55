// Package service orchestrates the talent profile lifecycle: establish,
// partial update, deactivate. All writes are stamped from the injected time
// source and recorded in the audit trail.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"

	"talentry/internal/audit"
	"talentry/internal/talent/metrics"
	"talentry/internal/talent/models"
	"talentry/pkg/attrs"
	id "talentry/pkg/domain"
	dErrors "talentry/pkg/domain-errors"
	"talentry/pkg/platform/sentinel"
	"talentry/pkg/requestcontext"
	"talentry/pkg/timesource"
)

var tracer = otel.Tracer("talent")

// Store is the persistence port for talent profiles.
type Store interface {
	CreateIfAbsent(ctx context.Context, profile *models.TalentProfile) error
	FindByAccount(ctx context.Context, accountID id.AccountID) (*models.TalentProfile, error)
	Update(ctx context.Context, profile *models.TalentProfile) error
	Delete(ctx context.Context, accountID id.AccountID) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates talent profile management.
type Service struct {
	profiles       Store
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
func New(profiles Store, clock timesource.Source, opts ...Option) *Service {
	if clock == nil {
		clock = timesource.System{}
	}
	s := &Service{profiles: profiles, clock: clock}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Establish creates the caller's talent profile. Created and last-active
// timestamps are identical on establish.
func (s *Service) Establish(ctx context.Context, accountID id.AccountID, draft models.TalentDraft) (*models.TalentProfile, error) {
	ctx, span := tracer.Start(ctx, "Talent.Service.Establish")
	defer span.End()
	start := time.Now()

	now, err := s.clock.Now(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeClockUnavailable, "no trustworthy clock for establish")
	}

	profile, err := models.NewTalentProfile(accountID, draft, now)
	if err != nil {
		// Convert invariant violations to validation errors for API response
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	if err := s.profiles.CreateIfAbsent(ctx, profile); err != nil {
		span.RecordError(err)
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "talent profile already exists for this account")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to establish talent profile")
	}

	s.logAudit(ctx, string(audit.EventTalentEstablished),
		"account_id", accountID.String())
	s.metrics.IncrementEstablished()
	s.metrics.ObserveEstablish(start)

	return profile, nil
}

// Update applies a partial update to the caller's profile and refreshes the
// last-activity timestamp.
func (s *Service) Update(ctx context.Context, accountID id.AccountID, update models.TalentProfileUpdate) (*models.TalentProfile, error) {
	ctx, span := tracer.Start(ctx, "Talent.Service.Update")
	defer span.End()
	start := time.Now()

	now, err := s.clock.Now(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeClockUnavailable, "no trustworthy clock for update")
	}

	profile, err := s.profiles.FindByAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "talent profile not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load talent profile")
	}

	if err := profile.Apply(update, now); err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		span.RecordError(err)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "talent profile not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update talent profile")
	}

	s.logAudit(ctx, string(audit.EventTalentUpdated),
		"account_id", accountID.String())
	s.metrics.ObserveUpdate(start)

	return profile, nil
}

// Deactivate removes the caller's profile. The delete is physical; a
// subsequent establish starts from scratch.
func (s *Service) Deactivate(ctx context.Context, accountID id.AccountID) error {
	ctx, span := tracer.Start(ctx, "Talent.Service.Deactivate")
	defer span.End()

	if err := s.profiles.Delete(ctx, accountID); err != nil {
		span.RecordError(err)
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "talent profile not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to deactivate talent profile")
	}

	s.logAudit(ctx, string(audit.EventTalentDeactivated),
		"account_id", accountID.String())
	s.metrics.IncrementDeactivated()

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
