package handler

import (
	"time"

	"talentry/internal/organization/models"
)

// OrganizationResponse is the HTTP representation of an organization.
type OrganizationResponse struct {
	AccountID     string    `json:"account_id"`
	Name          string    `json:"name"`
	Industry      string    `json:"industry"`
	Jurisdiction  string    `json:"jurisdiction"`
	EstablishedAt time.Time `json:"established_at"`
	ContactEmail  string    `json:"contact_email"`
	Tier          string    `json:"tier"`
	Verification  string    `json:"verification"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FromOrganization converts an organization to its response representation.
func FromOrganization(org *models.Organization) OrganizationResponse {
	return OrganizationResponse{
		AccountID:     org.AccountID.String(),
		Name:          org.Name,
		Industry:      org.Industry,
		Jurisdiction:  org.Jurisdiction,
		EstablishedAt: org.EstablishedAt,
		ContactEmail:  org.ContactEmail,
		Tier:          org.Tier,
		Verification:  string(org.Verification),
		CreatedAt:     org.CreatedAt,
		UpdatedAt:     org.UpdatedAt,
	}
}
