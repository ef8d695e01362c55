package handler

import (
	"time"

	"talentry/internal/matching/models"
)

// CompatibilityResponse is the HTTP representation of a matrix cell.
type CompatibilityResponse struct {
	TalentID      string    `json:"talent_id"`
	OpportunityID string    `json:"opportunity_id"`
	Score         int       `json:"score"`
	Confidence    int       `json:"confidence"`
	Criteria      []string  `json:"criteria"`
	EvaluatedAt   time.Time `json:"evaluated_at"`
}

// FromRecord converts a compatibility record to its response representation.
func FromRecord(record *models.CompatibilityRecord) CompatibilityResponse {
	return CompatibilityResponse{
		TalentID:      record.TalentID.String(),
		OpportunityID: record.OpportunityID.String(),
		Score:         record.Score,
		Confidence:    record.Confidence,
		Criteria:      record.Criteria,
		EvaluatedAt:   record.EvaluatedAt,
	}
}
