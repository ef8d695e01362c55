// Package models defines the organization aggregate.
package models

import (
	"time"

	id "talentry/pkg/domain"
	dErrors "talentry/pkg/domain-errors"
)

// Field limits enforced at the trust boundary. Lengths are in runes.
const (
	MaxNameLength         = 100
	MaxIndustryLength     = 100
	MaxJurisdictionLength = 100
	MaxContactEmailLength = 200
	MaxTierLength         = 30
)

// DefaultTier is assigned when an organization is established without one.
const DefaultTier = "Standard"

// VerificationStatus tracks the admin-managed vetting state. Callers can
// never write this field; it only moves through the admin verify operation.
type VerificationStatus string

const (
	VerificationUnverified VerificationStatus = "Unverified"
	VerificationPending    VerificationStatus = "Pending"
	VerificationVerified   VerificationStatus = "Verified"
)

// Organization is the aggregate root for an organization registration.
//
// Invariants:
//   - At most one organization per account
//   - Name, Industry, Jurisdiction, ContactEmail are non-empty within limits
//   - EstablishedAt is required and immutable in meaning (it is the real-world
//     founding date, not a system timestamp)
//   - Verification starts Unverified and moves to Verified exactly once,
//     through MarkVerified only
//   - CreatedAt is immutable after construction
type Organization struct {
	AccountID     id.AccountID       `json:"account_id"`
	Name          string             `json:"name"`
	Industry      string             `json:"industry"`
	Jurisdiction  string             `json:"jurisdiction"`
	EstablishedAt time.Time          `json:"established_at"`
	ContactEmail  string             `json:"contact_email"`
	Tier          string             `json:"tier"`
	Verification  VerificationStatus `json:"verification"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// OrganizationDraft carries the validated establish input into the factory.
// An empty Tier takes the default.
type OrganizationDraft struct {
	Name          string
	Industry      string
	Jurisdiction  string
	EstablishedAt time.Time
	ContactEmail  string
	Tier          string
}

// OrganizationUpdate carries a partial update. Nil fields are left unchanged.
// Verification is deliberately absent: it is not caller-writable.
type OrganizationUpdate struct {
	Name          *string
	Industry      *string
	Jurisdiction  *string
	EstablishedAt *time.Time
	ContactEmail  *string
	Tier          *string
}

// NewOrganization constructs an organization with establish-time defaults.
func NewOrganization(accountID id.AccountID, draft OrganizationDraft, now time.Time) (*Organization, error) {
	if accountID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "account id is required")
	}
	tier := draft.Tier
	if tier == "" {
		tier = DefaultTier
	}
	org := &Organization{
		AccountID:     accountID,
		Name:          draft.Name,
		Industry:      draft.Industry,
		Jurisdiction:  draft.Jurisdiction,
		EstablishedAt: draft.EstablishedAt,
		ContactEmail:  draft.ContactEmail,
		Tier:          tier,
		Verification:  VerificationUnverified,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := org.validate(); err != nil {
		return nil, err
	}
	return org, nil
}

// Apply merges a partial update into the organization and refreshes
// UpdatedAt. CreatedAt and Verification are never touched. On validation
// failure the organization is left unchanged.
func (o *Organization) Apply(update OrganizationUpdate, now time.Time) error {
	next := *o
	if update.Name != nil {
		next.Name = *update.Name
	}
	if update.Industry != nil {
		next.Industry = *update.Industry
	}
	if update.Jurisdiction != nil {
		next.Jurisdiction = *update.Jurisdiction
	}
	if update.EstablishedAt != nil {
		next.EstablishedAt = *update.EstablishedAt
	}
	if update.ContactEmail != nil {
		next.ContactEmail = *update.ContactEmail
	}
	if update.Tier != nil {
		next.Tier = *update.Tier
	}

	if err := next.validate(); err != nil {
		return err
	}

	next.UpdatedAt = now
	*o = next
	return nil
}

// MarkVerified performs the admin verification transition. Only Unverified
// and Pending organizations can be verified; verifying twice is an invalid
// state transition, not an idempotent no-op, so the admin sees stale actions.
func (o *Organization) MarkVerified(now time.Time) error {
	if o.Verification == VerificationVerified {
		return dErrors.New(dErrors.CodeInvalidState, "organization is already verified")
	}
	o.Verification = VerificationVerified
	o.UpdatedAt = now
	return nil
}

func (o *Organization) validate() error {
	if o.Name == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "name cannot be empty")
	}
	if len([]rune(o.Name)) > MaxNameLength {
		return dErrors.New(dErrors.CodeInvariantViolation, "name exceeds length limit")
	}
	if o.Industry == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "industry cannot be empty")
	}
	if len([]rune(o.Industry)) > MaxIndustryLength {
		return dErrors.New(dErrors.CodeInvariantViolation, "industry exceeds length limit")
	}
	if o.Jurisdiction == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "jurisdiction cannot be empty")
	}
	if len([]rune(o.Jurisdiction)) > MaxJurisdictionLength {
		return dErrors.New(dErrors.CodeInvariantViolation, "jurisdiction exceeds length limit")
	}
	if o.EstablishedAt.IsZero() {
		return dErrors.New(dErrors.CodeInvariantViolation, "establishment date is required")
	}
	if o.ContactEmail == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "contact email cannot be empty")
	}
	if len([]rune(o.ContactEmail)) > MaxContactEmailLength {
		return dErrors.New(dErrors.CodeInvariantViolation, "contact email exceeds length limit")
	}
	if len([]rune(o.Tier)) > MaxTierLength {
		return dErrors.New(dErrors.CodeInvariantViolation, "tier exceeds length limit")
	}
	return nil
}
