package handler

import (
	"strings"

	"github.com/asaskevich/govalidator"

	"talentry/internal/talent/models"
	dErrors "talentry/pkg/domain-errors"
	liststr "talentry/pkg/platform/strings"
)

// EstablishTalentRequest is the HTTP request body for POST /talent.
type EstablishTalentRequest struct {
	DisplayName     string   `json:"display_name"`
	Skills          []string `json:"skills"`
	Location        string   `json:"location"`
	Narrative       string   `json:"narrative"`
	ExperienceLevel string   `json:"experience_level"`

	// Parsed values (populated by Validate)
	parsedDraft models.TalentDraft
}

// Validate validates and normalizes the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *EstablishTalentRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.DisplayName = strings.TrimSpace(r.DisplayName)
	if !govalidator.StringLength(r.DisplayName, "1", "100") {
		return dErrors.New(dErrors.CodeValidation, "display_name is required and must be at most 100 characters")
	}

	r.Location = strings.TrimSpace(r.Location)
	if !govalidator.StringLength(r.Location, "1", "100") {
		return dErrors.New(dErrors.CodeValidation, "location is required and must be at most 100 characters")
	}

	r.Narrative = strings.TrimSpace(r.Narrative)
	if !govalidator.StringLength(r.Narrative, "1", "500") {
		return dErrors.New(dErrors.CodeValidation, "narrative is required and must be at most 500 characters")
	}

	r.ExperienceLevel = strings.TrimSpace(r.ExperienceLevel)
	if !govalidator.StringLength(r.ExperienceLevel, "1", "30") {
		return dErrors.New(dErrors.CodeValidation, "experience_level is required and must be at most 30 characters")
	}

	skills, err := normalizeSkills(r.Skills)
	if err != nil {
		return err
	}

	r.parsedDraft = models.TalentDraft{
		DisplayName:     r.DisplayName,
		Skills:          skills,
		Location:        r.Location,
		Narrative:       r.Narrative,
		ExperienceLevel: r.ExperienceLevel,
	}
	return nil
}

// ParsedDraft returns the validated establish input.
func (r *EstablishTalentRequest) ParsedDraft() models.TalentDraft {
	return r.parsedDraft
}

// UpdateTalentRequest is the HTTP request body for PUT /talent. All fields are
// optional; provided fields are validated like establish and replace the
// stored value. An empty body is a touch: it only refreshes last activity.
type UpdateTalentRequest struct {
	DisplayName     *string  `json:"display_name"`
	Skills          []string `json:"skills"`
	Location        *string  `json:"location"`
	Narrative       *string  `json:"narrative"`
	ExperienceLevel *string  `json:"experience_level"`
	Availability    *string  `json:"availability"`

	// Parsed values (populated by Validate)
	parsedUpdate models.TalentProfileUpdate
}

// Validate validates the provided fields and builds the partial update.
func (r *UpdateTalentRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	update := models.TalentProfileUpdate{}

	if r.DisplayName != nil {
		trimmed := strings.TrimSpace(*r.DisplayName)
		if !govalidator.StringLength(trimmed, "1", "100") {
			return dErrors.New(dErrors.CodeValidation, "display_name must be 1-100 characters")
		}
		update.DisplayName = &trimmed
	}

	if r.Location != nil {
		trimmed := strings.TrimSpace(*r.Location)
		if !govalidator.StringLength(trimmed, "1", "100") {
			return dErrors.New(dErrors.CodeValidation, "location must be 1-100 characters")
		}
		update.Location = &trimmed
	}

	if r.Narrative != nil {
		trimmed := strings.TrimSpace(*r.Narrative)
		if !govalidator.StringLength(trimmed, "1", "500") {
			return dErrors.New(dErrors.CodeValidation, "narrative must be 1-500 characters")
		}
		update.Narrative = &trimmed
	}

	if r.ExperienceLevel != nil {
		trimmed := strings.TrimSpace(*r.ExperienceLevel)
		if !govalidator.StringLength(trimmed, "1", "30") {
			return dErrors.New(dErrors.CodeValidation, "experience_level must be 1-30 characters")
		}
		update.ExperienceLevel = &trimmed
	}

	if r.Availability != nil {
		parsed, err := models.ParseAvailability(strings.TrimSpace(*r.Availability))
		if err != nil {
			return err
		}
		update.Availability = &parsed
	}

	if r.Skills != nil {
		skills, err := normalizeSkills(r.Skills)
		if err != nil {
			return err
		}
		update.Skills = skills
	}

	r.parsedUpdate = update
	return nil
}

// ParsedUpdate returns the validated partial update.
func (r *UpdateTalentRequest) ParsedUpdate() models.TalentProfileUpdate {
	return r.parsedUpdate
}

// normalizeSkills dedupes and bounds a skill list. Deduplication happens
// first so repeated entries never count against the size limit.
func normalizeSkills(raw []string) ([]string, error) {
	skills := liststr.DedupeAndTrim(raw)
	if len(skills) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "at least one skill is required")
	}
	if len(skills) > models.MaxSkills {
		return nil, dErrors.New(dErrors.CodeValidation, "at most 10 skills are allowed")
	}
	if liststr.LongestEntry(skills) > models.MaxSkillLength {
		return nil, dErrors.New(dErrors.CodeValidation, "each skill must be at most 50 characters")
	}
	return skills, nil
}
