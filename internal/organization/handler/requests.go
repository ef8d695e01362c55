package handler

import (
	"strings"
	"time"

	"github.com/asaskevich/govalidator"

	"talentry/internal/organization/models"
	dErrors "talentry/pkg/domain-errors"
)

// EstablishOrganizationRequest is the HTTP request body for POST /organizations.
// Verification is absent on purpose: every organization starts Unverified.
type EstablishOrganizationRequest struct {
	Name          string    `json:"name"`
	Industry      string    `json:"industry"`
	Jurisdiction  string    `json:"jurisdiction"`
	EstablishedAt time.Time `json:"established_at"`
	ContactEmail  string    `json:"contact_email"`
	Tier          string    `json:"tier"`

	// Parsed values (populated by Validate)
	parsedDraft models.OrganizationDraft
}

// Validate validates and normalizes the request.
func (r *EstablishOrganizationRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.Name = strings.TrimSpace(r.Name)
	if !govalidator.StringLength(r.Name, "1", "100") {
		return dErrors.New(dErrors.CodeValidation, "name is required and must be at most 100 characters")
	}

	r.Industry = strings.TrimSpace(r.Industry)
	if !govalidator.StringLength(r.Industry, "1", "100") {
		return dErrors.New(dErrors.CodeValidation, "industry is required and must be at most 100 characters")
	}

	r.Jurisdiction = strings.TrimSpace(r.Jurisdiction)
	if !govalidator.StringLength(r.Jurisdiction, "1", "100") {
		return dErrors.New(dErrors.CodeValidation, "jurisdiction is required and must be at most 100 characters")
	}

	if r.EstablishedAt.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "established_at is required")
	}

	r.ContactEmail = strings.TrimSpace(r.ContactEmail)
	if err := validateContactEmail(r.ContactEmail); err != nil {
		return err
	}

	r.Tier = strings.TrimSpace(r.Tier)
	if !govalidator.StringLength(r.Tier, "0", "30") {
		return dErrors.New(dErrors.CodeValidation, "tier must be at most 30 characters")
	}

	r.parsedDraft = models.OrganizationDraft{
		Name:          r.Name,
		Industry:      r.Industry,
		Jurisdiction:  r.Jurisdiction,
		EstablishedAt: r.EstablishedAt,
		ContactEmail:  r.ContactEmail,
		Tier:          r.Tier,
	}
	return nil
}

// ParsedDraft returns the validated establish input.
func (r *EstablishOrganizationRequest) ParsedDraft() models.OrganizationDraft {
	return r.parsedDraft
}

// UpdateOrganizationRequest is the HTTP request body for PUT /organizations.
// All fields are optional; provided fields are validated like establish and
// replace the stored value. There is no verification field: that transition
// belongs to the admin API.
type UpdateOrganizationRequest struct {
	Name          *string    `json:"name"`
	Industry      *string    `json:"industry"`
	Jurisdiction  *string    `json:"jurisdiction"`
	EstablishedAt *time.Time `json:"established_at"`
	ContactEmail  *string    `json:"contact_email"`
	Tier          *string    `json:"tier"`

	// Parsed values (populated by Validate)
	parsedUpdate models.OrganizationUpdate
}

// Validate validates the provided fields and builds the partial update.
func (r *UpdateOrganizationRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	update := models.OrganizationUpdate{}

	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		if !govalidator.StringLength(trimmed, "1", "100") {
			return dErrors.New(dErrors.CodeValidation, "name must be 1-100 characters")
		}
		update.Name = &trimmed
	}

	if r.Industry != nil {
		trimmed := strings.TrimSpace(*r.Industry)
		if !govalidator.StringLength(trimmed, "1", "100") {
			return dErrors.New(dErrors.CodeValidation, "industry must be 1-100 characters")
		}
		update.Industry = &trimmed
	}

	if r.Jurisdiction != nil {
		trimmed := strings.TrimSpace(*r.Jurisdiction)
		if !govalidator.StringLength(trimmed, "1", "100") {
			return dErrors.New(dErrors.CodeValidation, "jurisdiction must be 1-100 characters")
		}
		update.Jurisdiction = &trimmed
	}

	if r.EstablishedAt != nil {
		if r.EstablishedAt.IsZero() {
			return dErrors.New(dErrors.CodeValidation, "established_at cannot be empty")
		}
		update.EstablishedAt = r.EstablishedAt
	}

	if r.ContactEmail != nil {
		trimmed := strings.TrimSpace(*r.ContactEmail)
		if err := validateContactEmail(trimmed); err != nil {
			return err
		}
		update.ContactEmail = &trimmed
	}

	if r.Tier != nil {
		trimmed := strings.TrimSpace(*r.Tier)
		if !govalidator.StringLength(trimmed, "1", "30") {
			return dErrors.New(dErrors.CodeValidation, "tier must be 1-30 characters")
		}
		update.Tier = &trimmed
	}

	r.parsedUpdate = update
	return nil
}

// ParsedUpdate returns the validated partial update.
func (r *UpdateOrganizationRequest) ParsedUpdate() models.OrganizationUpdate {
	return r.parsedUpdate
}

func validateContactEmail(email string) error {
	if !govalidator.StringLength(email, "1", "200") {
		return dErrors.New(dErrors.CodeValidation, "contact_email is required and must be at most 200 characters")
	}
	if !govalidator.IsEmail(email) {
		return dErrors.New(dErrors.CodeValidation, "contact_email must be a valid email address")
	}
	return nil
}
