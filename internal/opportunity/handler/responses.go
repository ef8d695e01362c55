package handler

import (
	"time"

	"talentry/internal/opportunity/models"
)

// OpportunityResponse is the HTTP representation of an opportunity listing.
type OpportunityResponse struct {
	AccountID    string    `json:"account_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	Competencies []string  `json:"competencies"`
	Status       string    `json:"status"`
	PublishedAt  time.Time `json:"published_at"`
	ExpiresAt    time.Time `json:"expires_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FromOpportunity converts a listing to its response representation.
func FromOpportunity(listing *models.Opportunity) OpportunityResponse {
	return OpportunityResponse{
		AccountID:    listing.AccountID.String(),
		Title:        listing.Title,
		Description:  listing.Description,
		Location:     listing.Location,
		Competencies: listing.Competencies,
		Status:       string(listing.Status),
		PublishedAt:  listing.PublishedAt,
		ExpiresAt:    listing.ExpiresAt,
		UpdatedAt:    listing.UpdatedAt,
	}
}
