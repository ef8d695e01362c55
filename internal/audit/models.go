// Package audit captures the registry's append-only activity trail. Domain
// services emit events through the Publisher; stores persist them and sinks
// fan them out to external systems.
package audit

import (
	"time"

	id "talentry/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies, storage backends, and routing.
type EventCategory string

const (
	// CategoryCompliance covers record lifecycle events with contractual or
	// regulatory significance. These require long retention.
	// Examples: profile establishment, organization verification, deletions.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers events relevant to abuse monitoring and
	// forensics. These feed into alerting pipelines.
	// Examples: rate limit hits, rejected admin tokens.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers events useful for debugging and operational
	// visibility. These can be sampled or aggregated with shorter retention.
	// Examples: record updates, compatibility evaluations.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	// AccountID is the registry account the event concerns. Zero when the
	// event has no account (e.g. anonymous rate limit hits).
	AccountID id.AccountID
	Subject   string
	Action    string
	// Reason records why the action happened where that is not obvious from
	// the action itself (verification decisions, limit breaches).
	Reason string
	// Correlation and client forensics, populated from request context.
	RequestID   string
	ClientIP    string
	DeviceLabel string
}

// AuditEvent names every action the registry records.
type AuditEvent string

const (
	// Talent profile events
	EventTalentEstablished AuditEvent = "talent_established"
	EventTalentUpdated     AuditEvent = "talent_updated"
	EventTalentDeactivated AuditEvent = "talent_deactivated"

	// Opportunity events
	EventOpportunityPublished  AuditEvent = "opportunity_published"
	EventOpportunityUpdated    AuditEvent = "opportunity_updated"
	EventOpportunityTerminated AuditEvent = "opportunity_terminated"

	// Organization events
	EventOrganizationEstablished AuditEvent = "organization_established"
	EventOrganizationUpdated     AuditEvent = "organization_updated"
	EventOrganizationDissolved   AuditEvent = "organization_dissolved"
	EventOrganizationVerified    AuditEvent = "organization_verified"

	// Matching events
	EventCompatibilityEvaluated AuditEvent = "compatibility_evaluated"

	// Abuse control events
	EventRateLimitExceeded AuditEvent = "rate_limit_exceeded"
)

// eventCategories maps each audit event to its category.
// Compliance: record lifecycle, long retention required.
// Security: abuse monitoring and alerting.
// Operations: routine activity, can be sampled.
var eventCategories = map[AuditEvent]EventCategory{
	// Compliance events - record lifecycle
	EventTalentEstablished:       CategoryCompliance,
	EventTalentDeactivated:       CategoryCompliance,
	EventOpportunityPublished:    CategoryCompliance,
	EventOpportunityTerminated:   CategoryCompliance,
	EventOrganizationEstablished: CategoryCompliance,
	EventOrganizationDissolved:   CategoryCompliance,
	EventOrganizationVerified:    CategoryCompliance,

	// Security events - abuse monitoring
	EventRateLimitExceeded: CategorySecurity,

	// Operations events - routine activity
	EventTalentUpdated:          CategoryOperations,
	EventOpportunityUpdated:     CategoryOperations,
	EventOrganizationUpdated:    CategoryOperations,
	EventCompatibilityEvaluated: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}
