// Package service serves directory lookups: read-only access to any
// account's registry records by ID. Lookups are open to every authenticated
// account, so nothing here checks ownership.
package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"

	"talentry/internal/directory/metrics"
	matchingmodels "talentry/internal/matching/models"
	opportunitymodels "talentry/internal/opportunity/models"
	organizationmodels "talentry/internal/organization/models"
	talentmodels "talentry/internal/talent/models"
	id "talentry/pkg/domain"
	dErrors "talentry/pkg/domain-errors"
	"talentry/pkg/platform/sentinel"
)

var tracer = otel.Tracer("directory")

// TalentReader loads talent profiles.
type TalentReader interface {
	FindByAccount(ctx context.Context, accountID id.AccountID) (*talentmodels.TalentProfile, error)
}

// OpportunityReader loads opportunity listings.
type OpportunityReader interface {
	FindByAccount(ctx context.Context, accountID id.AccountID) (*opportunitymodels.Opportunity, error)
}

// OrganizationReader loads organization records.
type OrganizationReader interface {
	FindByAccount(ctx context.Context, accountID id.AccountID) (*organizationmodels.Organization, error)
}

// MatchReader loads compatibility records by pair.
type MatchReader interface {
	FindByPair(ctx context.Context, talentID, opportunityID id.AccountID) (*matchingmodels.CompatibilityRecord, error)
}

// Service serves read-only directory lookups across the registry stores.
type Service struct {
	talents       TalentReader
	opportunities OpportunityReader
	organizations OrganizationReader
	matches       MatchReader
	metrics       *metrics.Metrics
}

type Option func(s *Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service over the four registry read ports.
func New(talents TalentReader, opportunities OpportunityReader, organizations OrganizationReader, matches MatchReader, opts ...Option) *Service {
	s := &Service{
		talents:       talents,
		opportunities: opportunities,
		organizations: organizations,
		matches:       matches,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Talent returns the talent profile owned by the given account.
func (s *Service) Talent(ctx context.Context, accountID id.AccountID) (*talentmodels.TalentProfile, error) {
	ctx, span := tracer.Start(ctx, "Directory.Service.Talent")
	defer span.End()
	start := time.Now()

	profile, err := s.talents.FindByAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "talent profile not found")
		}
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load talent profile")
	}

	s.metrics.IncrementLookup("talent")
	s.metrics.ObserveLookup("talent", start)
	return profile, nil
}

// Opportunity returns the opportunity listing owned by the given account.
func (s *Service) Opportunity(ctx context.Context, accountID id.AccountID) (*opportunitymodels.Opportunity, error) {
	ctx, span := tracer.Start(ctx, "Directory.Service.Opportunity")
	defer span.End()
	start := time.Now()

	listing, err := s.opportunities.FindByAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "opportunity not found")
		}
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load opportunity")
	}

	s.metrics.IncrementLookup("opportunity")
	s.metrics.ObserveLookup("opportunity", start)
	return listing, nil
}

// Organization returns the organization record owned by the given account.
func (s *Service) Organization(ctx context.Context, accountID id.AccountID) (*organizationmodels.Organization, error) {
	ctx, span := tracer.Start(ctx, "Directory.Service.Organization")
	defer span.End()
	start := time.Now()

	org, err := s.organizations.FindByAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "organization not found")
		}
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load organization")
	}

	s.metrics.IncrementLookup("organization")
	s.metrics.ObserveLookup("organization", start)
	return org, nil
}

// Match returns the compatibility record for the talent/opportunity pair.
// Absence means the pair was never evaluated.
func (s *Service) Match(ctx context.Context, talentID, opportunityID id.AccountID) (*matchingmodels.CompatibilityRecord, error) {
	ctx, span := tracer.Start(ctx, "Directory.Service.Match")
	defer span.End()
	start := time.Now()

	record, err := s.matches.FindByPair(ctx, talentID, opportunityID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "compatibility record not found")
		}
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load compatibility record")
	}

	s.metrics.IncrementLookup("match")
	s.metrics.ObserveLookup("match", start)
	return record, nil
}
