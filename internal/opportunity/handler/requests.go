package handler

import (
	"strings"
	"time"

	"github.com/asaskevich/govalidator"

	"talentry/internal/opportunity/models"
	dErrors "talentry/pkg/domain-errors"
	liststr "talentry/pkg/platform/strings"
)

// PublishOpportunityRequest is the HTTP request body for POST /opportunities.
type PublishOpportunityRequest struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	Competencies []string  `json:"competencies"`
	ExpiresAt    time.Time `json:"expires_at"`

	// Parsed values (populated by Validate)
	parsedDraft models.OpportunityDraft
}

// Validate validates and normalizes the request. Expiration ordering against
// the request instant is checked in the service, where the clock lives.
func (r *PublishOpportunityRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.Title = strings.TrimSpace(r.Title)
	if !govalidator.StringLength(r.Title, "1", "100") {
		return dErrors.New(dErrors.CodeValidation, "title is required and must be at most 100 characters")
	}

	r.Description = strings.TrimSpace(r.Description)
	if !govalidator.StringLength(r.Description, "1", "500") {
		return dErrors.New(dErrors.CodeValidation, "description is required and must be at most 500 characters")
	}

	r.Location = strings.TrimSpace(r.Location)
	if !govalidator.StringLength(r.Location, "1", "100") {
		return dErrors.New(dErrors.CodeValidation, "location is required and must be at most 100 characters")
	}

	if r.ExpiresAt.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "expires_at is required")
	}

	competencies, err := normalizeCompetencies(r.Competencies)
	if err != nil {
		return err
	}

	r.parsedDraft = models.OpportunityDraft{
		Title:        r.Title,
		Description:  r.Description,
		Location:     r.Location,
		Competencies: competencies,
		ExpiresAt:    r.ExpiresAt,
	}
	return nil
}

// ParsedDraft returns the validated publish input.
func (r *PublishOpportunityRequest) ParsedDraft() models.OpportunityDraft {
	return r.parsedDraft
}

// UpdateOpportunityRequest is the HTTP request body for PUT /opportunities.
// All fields are optional; provided fields are validated like publish and
// replace the stored value.
type UpdateOpportunityRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Location     *string    `json:"location"`
	Competencies []string   `json:"competencies"`
	Status       *string    `json:"status"`
	ExpiresAt    *time.Time `json:"expires_at"`

	// Parsed values (populated by Validate)
	parsedUpdate models.OpportunityUpdate
}

// Validate validates the provided fields and builds the partial update.
func (r *UpdateOpportunityRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	update := models.OpportunityUpdate{}

	if r.Title != nil {
		trimmed := strings.TrimSpace(*r.Title)
		if !govalidator.StringLength(trimmed, "1", "100") {
			return dErrors.New(dErrors.CodeValidation, "title must be 1-100 characters")
		}
		update.Title = &trimmed
	}

	if r.Description != nil {
		trimmed := strings.TrimSpace(*r.Description)
		if !govalidator.StringLength(trimmed, "1", "500") {
			return dErrors.New(dErrors.CodeValidation, "description must be 1-500 characters")
		}
		update.Description = &trimmed
	}

	if r.Location != nil {
		trimmed := strings.TrimSpace(*r.Location)
		if !govalidator.StringLength(trimmed, "1", "100") {
			return dErrors.New(dErrors.CodeValidation, "location must be 1-100 characters")
		}
		update.Location = &trimmed
	}

	if r.Status != nil {
		parsed, err := models.ParseOpportunityStatus(strings.TrimSpace(*r.Status))
		if err != nil {
			return err
		}
		update.Status = &parsed
	}

	if r.ExpiresAt != nil {
		if r.ExpiresAt.IsZero() {
			return dErrors.New(dErrors.CodeValidation, "expires_at cannot be empty")
		}
		update.ExpiresAt = r.ExpiresAt
	}

	if r.Competencies != nil {
		competencies, err := normalizeCompetencies(r.Competencies)
		if err != nil {
			return err
		}
		update.Competencies = competencies
	}

	r.parsedUpdate = update
	return nil
}

// ParsedUpdate returns the validated partial update.
func (r *UpdateOpportunityRequest) ParsedUpdate() models.OpportunityUpdate {
	return r.parsedUpdate
}

// normalizeCompetencies dedupes and bounds a competency list. Deduplication
// happens first so repeated entries never count against the size limit.
func normalizeCompetencies(raw []string) ([]string, error) {
	competencies := liststr.DedupeAndTrim(raw)
	if len(competencies) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "at least one competency is required")
	}
	if len(competencies) > models.MaxCompetencies {
		return nil, dErrors.New(dErrors.CodeValidation, "at most 10 competencies are allowed")
	}
	if liststr.LongestEntry(competencies) > models.MaxCompetencyLength {
		return nil, dErrors.New(dErrors.CodeValidation, "each competency must be at most 50 characters")
	}
	return competencies, nil
}
