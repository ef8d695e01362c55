// Package models defines the compatibility matrix record.
package models

import (
	"time"

	id "talentry/pkg/domain"
	dErrors "talentry/pkg/domain-errors"
	liststr "talentry/pkg/platform/strings"
)

// Criteria limits enforced at the trust boundary. Lengths are in runes.
const (
	MaxCriteria        = 5
	MaxCriterionLength = 50
)

// MaxScore bounds both score and confidence.
const MaxScore = 100

// CompatibilityRecord is one cell of the compatibility matrix, keyed by the
// talent/opportunity account pair.
//
// Invariants:
//   - Both pair IDs are non-zero
//   - Score and Confidence are within [0, MaxScore]
//   - Criteria is deduplicated with at most MaxCriteria entries; empty is fine
//   - EvaluatedAt reflects the most recent evaluation of the pair
type CompatibilityRecord struct {
	TalentID      id.AccountID `json:"talent_id"`
	OpportunityID id.AccountID `json:"opportunity_id"`
	Score         int          `json:"score"`
	Confidence    int          `json:"confidence"`
	Criteria      []string     `json:"criteria"`
	EvaluatedAt   time.Time    `json:"evaluated_at"`
}

// NewCompatibilityRecord constructs a matrix record.
func NewCompatibilityRecord(talentID, opportunityID id.AccountID, score, confidence int, criteria []string, now time.Time) (*CompatibilityRecord, error) {
	if talentID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "talent id is required")
	}
	if opportunityID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "opportunity id is required")
	}
	if score < 0 || score > MaxScore {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "score out of range")
	}
	if confidence < 0 || confidence > MaxScore {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "confidence out of range")
	}

	cleaned := liststr.DedupeAndTrim(criteria)
	if len(cleaned) > MaxCriteria {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "too many criteria")
	}
	if liststr.LongestEntry(cleaned) > MaxCriterionLength {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "criterion exceeds length limit")
	}
	if cleaned == nil {
		cleaned = []string{}
	}

	return &CompatibilityRecord{
		TalentID:      talentID,
		OpportunityID: opportunityID,
		Score:         score,
		Confidence:    confidence,
		Criteria:      cleaned,
		EvaluatedAt:   now,
	}, nil
}
