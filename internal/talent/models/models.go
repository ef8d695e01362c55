// Package models defines the talent profile aggregate.
package models

import (
	"time"

	id "talentry/pkg/domain"
	dErrors "talentry/pkg/domain-errors"
	liststr "talentry/pkg/platform/strings"
)

// Field limits enforced at the trust boundary. Lengths are in runes.
const (
	MaxDisplayNameLength     = 100
	MaxLocationLength        = 100
	MaxNarrativeLength       = 500
	MaxExperienceLevelLength = 30
	MaxSkills                = 10
	MaxSkillLength           = 50
)

// AvailabilityStatus tracks whether a talent profile is open to matching.
type AvailabilityStatus string

const (
	AvailabilityAvailable   AvailabilityStatus = "Available"
	AvailabilityUnavailable AvailabilityStatus = "Unavailable"
	AvailabilityEngaged     AvailabilityStatus = "Engaged"
)

// ParseAvailability validates a caller-supplied availability value.
func ParseAvailability(value string) (AvailabilityStatus, error) {
	switch AvailabilityStatus(value) {
	case AvailabilityAvailable, AvailabilityUnavailable, AvailabilityEngaged:
		return AvailabilityStatus(value), nil
	default:
		return "", dErrors.New(dErrors.CodeValidation,
			"availability must be one of Available, Unavailable, Engaged")
	}
}

// TalentProfile is the aggregate root for a talent registration.
//
// Invariants:
//   - At most one profile per account (enforced by the store's conditional create)
//   - DisplayName, Location, Narrative, ExperienceLevel are non-empty within limits
//   - Skills is non-empty, deduplicated, at most MaxSkills entries
//   - CreatedAt is immutable after construction; on establish it equals LastActiveAt
//   - LastActiveAt moves forward only through updates
type TalentProfile struct {
	AccountID       id.AccountID       `json:"account_id"`
	DisplayName     string             `json:"display_name"`
	Skills          []string           `json:"skills"`
	Location        string             `json:"location"`
	Narrative       string             `json:"narrative"`
	ExperienceLevel string             `json:"experience_level"`
	Availability    AvailabilityStatus `json:"availability"`
	CreatedAt       time.Time          `json:"created_at"`
	LastActiveAt    time.Time          `json:"last_active_at"`
}

// TalentDraft carries the validated establish input into the factory.
type TalentDraft struct {
	DisplayName     string
	Skills          []string
	Location        string
	Narrative       string
	ExperienceLevel string
}

// TalentProfileUpdate carries a partial update. Nil fields are left unchanged;
// a provided field replaces the stored value.
type TalentProfileUpdate struct {
	DisplayName     *string
	Skills          []string
	Location        *string
	Narrative       *string
	ExperienceLevel *string
	Availability    *AvailabilityStatus
}

// NewTalentProfile constructs a profile with establish-time defaults. The
// handler layer validates first with user-facing errors; these checks guard
// the aggregate against non-HTTP callers.
func NewTalentProfile(accountID id.AccountID, draft TalentDraft, now time.Time) (*TalentProfile, error) {
	if accountID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "account id is required")
	}
	if err := validateProfileFields(draft.DisplayName, draft.Location, draft.Narrative, draft.ExperienceLevel); err != nil {
		return nil, err
	}
	skills := liststr.DedupeAndTrim(draft.Skills)
	if err := validateSkills(skills); err != nil {
		return nil, err
	}

	return &TalentProfile{
		AccountID:       accountID,
		DisplayName:     draft.DisplayName,
		Skills:          skills,
		Location:        draft.Location,
		Narrative:       draft.Narrative,
		ExperienceLevel: draft.ExperienceLevel,
		Availability:    AvailabilityAvailable,
		CreatedAt:       now,
		LastActiveAt:    now,
	}, nil
}

// Apply merges a partial update into the profile and refreshes LastActiveAt.
// CreatedAt is never touched. On validation failure the profile is left
// unchanged.
func (p *TalentProfile) Apply(update TalentProfileUpdate, now time.Time) error {
	next := *p
	if update.DisplayName != nil {
		next.DisplayName = *update.DisplayName
	}
	if update.Skills != nil {
		next.Skills = liststr.DedupeAndTrim(update.Skills)
	}
	if update.Location != nil {
		next.Location = *update.Location
	}
	if update.Narrative != nil {
		next.Narrative = *update.Narrative
	}
	if update.ExperienceLevel != nil {
		next.ExperienceLevel = *update.ExperienceLevel
	}
	if update.Availability != nil {
		next.Availability = *update.Availability
	}

	if err := validateProfileFields(next.DisplayName, next.Location, next.Narrative, next.ExperienceLevel); err != nil {
		return err
	}
	if err := validateSkills(next.Skills); err != nil {
		return err
	}

	next.LastActiveAt = now
	*p = next
	return nil
}

func validateProfileFields(displayName, location, narrative, experienceLevel string) error {
	if displayName == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "display name cannot be empty")
	}
	if len([]rune(displayName)) > MaxDisplayNameLength {
		return dErrors.New(dErrors.CodeInvariantViolation, "display name exceeds length limit")
	}
	if location == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "location cannot be empty")
	}
	if len([]rune(location)) > MaxLocationLength {
		return dErrors.New(dErrors.CodeInvariantViolation, "location exceeds length limit")
	}
	if narrative == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "narrative cannot be empty")
	}
	if len([]rune(narrative)) > MaxNarrativeLength {
		return dErrors.New(dErrors.CodeInvariantViolation, "narrative exceeds length limit")
	}
	if experienceLevel == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "experience level cannot be empty")
	}
	if len([]rune(experienceLevel)) > MaxExperienceLevelLength {
		return dErrors.New(dErrors.CodeInvariantViolation, "experience level exceeds length limit")
	}
	return nil
}

func validateSkills(skills []string) error {
	if len(skills) == 0 {
		return dErrors.New(dErrors.CodeInvariantViolation, "at least one skill is required")
	}
	if len(skills) > MaxSkills {
		return dErrors.New(dErrors.CodeInvariantViolation, "too many skills")
	}
	if liststr.LongestEntry(skills) > MaxSkillLength {
		return dErrors.New(dErrors.CodeInvariantViolation, "skill exceeds length limit")
	}
	return nil
}
