package handler

import (
	"strings"

	"talentry/internal/matching/models"
	id "talentry/pkg/domain"
	dErrors "talentry/pkg/domain-errors"
	liststr "talentry/pkg/platform/strings"
)

// EvaluateMatchRequest is the HTTP request body for POST /matches/evaluate.
// Any authenticated account may evaluate any pair; neither ID has to be the
// caller's own.
type EvaluateMatchRequest struct {
	TalentID      string   `json:"talent_id"`
	OpportunityID string   `json:"opportunity_id"`
	Criteria      []string `json:"criteria"`

	// Parsed values (populated by Validate)
	talentID      id.AccountID
	opportunityID id.AccountID
	criteria      []string
}

// Validate validates and normalizes the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *EvaluateMatchRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	talentID, err := id.ParseAccountID(strings.TrimSpace(r.TalentID))
	if err != nil {
		return dErrors.New(dErrors.CodeInvalidInput, "talent_id must be a valid account id")
	}
	opportunityID, err := id.ParseAccountID(strings.TrimSpace(r.OpportunityID))
	if err != nil {
		return dErrors.New(dErrors.CodeInvalidInput, "opportunity_id must be a valid account id")
	}

	criteria, err := normalizeCriteria(r.Criteria)
	if err != nil {
		return err
	}

	r.talentID = talentID
	r.opportunityID = opportunityID
	r.criteria = criteria
	return nil
}

// ParsedTalentID returns the parsed talent account ID.
func (r *EvaluateMatchRequest) ParsedTalentID() id.AccountID { return r.talentID }

// ParsedOpportunityID returns the parsed opportunity account ID.
func (r *EvaluateMatchRequest) ParsedOpportunityID() id.AccountID { return r.opportunityID }

// ParsedCriteria returns the normalized criteria list.
func (r *EvaluateMatchRequest) ParsedCriteria() []string { return r.criteria }

// normalizeCriteria dedupes and bounds the criteria list. Unlike skills and
// competencies an empty list is legal: criteria only annotate the evaluation.
func normalizeCriteria(raw []string) ([]string, error) {
	criteria := liststr.DedupeAndTrim(raw)
	if len(criteria) > models.MaxCriteria {
		return nil, dErrors.New(dErrors.CodeValidation, "at most 5 criteria are allowed")
	}
	if liststr.LongestEntry(criteria) > models.MaxCriterionLength {
		return nil, dErrors.New(dErrors.CodeValidation, "each criterion must be at most 50 characters")
	}
	return criteria, nil
}
