// Package models defines the opportunity aggregate.
package models

import (
	"time"

	id "talentry/pkg/domain"
	dErrors "talentry/pkg/domain-errors"
	liststr "talentry/pkg/platform/strings"
)

// Field limits enforced at the trust boundary. Lengths are in runes.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
	MaxLocationLength    = 100
	MaxCompetencies      = 10
	MaxCompetencyLength  = 50
)

// OpportunityStatus tracks the listing lifecycle. Expiration never changes the
// status on its own; it is data the owner manages.
type OpportunityStatus string

const (
	StatusActive OpportunityStatus = "Active"
	StatusPaused OpportunityStatus = "Paused"
	StatusFilled OpportunityStatus = "Filled"
)

// ParseOpportunityStatus validates a caller-supplied status value.
func ParseOpportunityStatus(value string) (OpportunityStatus, error) {
	switch OpportunityStatus(value) {
	case StatusActive, StatusPaused, StatusFilled:
		return OpportunityStatus(value), nil
	default:
		return "", dErrors.New(dErrors.CodeValidation,
			"status must be one of Active, Paused, Filled")
	}
}

// Opportunity is the aggregate root for a published listing.
//
// Invariants:
//   - At most one opportunity per publishing account
//   - Title, Description, Location are non-empty within limits
//   - Competencies is non-empty, deduplicated, at most MaxCompetencies entries
//   - ExpiresAt is never earlier than the instant that stamped it in
//   - PublishedAt is immutable after construction
type Opportunity struct {
	AccountID    id.AccountID      `json:"account_id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Location     string            `json:"location"`
	Competencies []string          `json:"competencies"`
	Status       OpportunityStatus `json:"status"`
	PublishedAt  time.Time         `json:"published_at"`
	ExpiresAt    time.Time         `json:"expires_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// OpportunityDraft carries the validated publish input into the factory.
type OpportunityDraft struct {
	Title        string
	Description  string
	Location     string
	Competencies []string
	ExpiresAt    time.Time
}

// OpportunityUpdate carries a partial update. Nil fields are left unchanged; a
// provided expiration is re-checked against the update instant.
type OpportunityUpdate struct {
	Title        *string
	Description  *string
	Location     *string
	Competencies []string
	Status       *OpportunityStatus
	ExpiresAt    *time.Time
}

// NewOpportunity constructs a listing with publish-time defaults.
func NewOpportunity(accountID id.AccountID, draft OpportunityDraft, now time.Time) (*Opportunity, error) {
	if accountID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "account id is required")
	}
	if err := validateListingFields(draft.Title, draft.Description, draft.Location); err != nil {
		return nil, err
	}
	competencies := liststr.DedupeAndTrim(draft.Competencies)
	if err := validateCompetencies(competencies); err != nil {
		return nil, err
	}
	if err := validateExpiration(draft.ExpiresAt, now); err != nil {
		return nil, err
	}

	return &Opportunity{
		AccountID:    accountID,
		Title:        draft.Title,
		Description:  draft.Description,
		Location:     draft.Location,
		Competencies: competencies,
		Status:       StatusActive,
		PublishedAt:  now,
		ExpiresAt:    draft.ExpiresAt,
		UpdatedAt:    now,
	}, nil
}

// Apply merges a partial update into the listing and refreshes UpdatedAt.
// PublishedAt is never touched; a stored expiration already in the past is
// left alone unless the update provides a replacement. On validation failure
// the listing is left unchanged.
func (o *Opportunity) Apply(update OpportunityUpdate, now time.Time) error {
	next := *o
	if update.Title != nil {
		next.Title = *update.Title
	}
	if update.Description != nil {
		next.Description = *update.Description
	}
	if update.Location != nil {
		next.Location = *update.Location
	}
	if update.Competencies != nil {
		next.Competencies = liststr.DedupeAndTrim(update.Competencies)
	}
	if update.Status != nil {
		next.Status = *update.Status
	}
	if update.ExpiresAt != nil {
		if err := validateExpiration(*update.ExpiresAt, now); err != nil {
			return err
		}
		next.ExpiresAt = *update.ExpiresAt
	}

	if err := validateListingFields(next.Title, next.Description, next.Location); err != nil {
		return err
	}
	if err := validateCompetencies(next.Competencies); err != nil {
		return err
	}

	next.UpdatedAt = now
	*o = next
	return nil
}

func validateListingFields(title, description, location string) error {
	if title == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "title cannot be empty")
	}
	if len([]rune(title)) > MaxTitleLength {
		return dErrors.New(dErrors.CodeInvariantViolation, "title exceeds length limit")
	}
	if description == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "description cannot be empty")
	}
	if len([]rune(description)) > MaxDescriptionLength {
		return dErrors.New(dErrors.CodeInvariantViolation, "description exceeds length limit")
	}
	if location == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "location cannot be empty")
	}
	if len([]rune(location)) > MaxLocationLength {
		return dErrors.New(dErrors.CodeInvariantViolation, "location exceeds length limit")
	}
	return nil
}

func validateCompetencies(competencies []string) error {
	if len(competencies) == 0 {
		return dErrors.New(dErrors.CodeInvariantViolation, "at least one competency is required")
	}
	if len(competencies) > MaxCompetencies {
		return dErrors.New(dErrors.CodeInvariantViolation, "too many competencies")
	}
	if liststr.LongestEntry(competencies) > MaxCompetencyLength {
		return dErrors.New(dErrors.CodeInvariantViolation, "competency exceeds length limit")
	}
	return nil
}

// validateExpiration rejects instants strictly earlier than now. An expiration
// exactly equal to now is accepted.
func validateExpiration(expiresAt, now time.Time) error {
	if expiresAt.IsZero() {
		return dErrors.New(dErrors.CodeInvariantViolation, "expiration is required")
	}
	if expiresAt.Before(now) {
		return dErrors.New(dErrors.CodeInvariantViolation, "expiration cannot be in the past")
	}
	return nil
}
