package handler

import (
	"time"

	"talentry/internal/talent/models"
)

// TalentProfileResponse is the HTTP representation of a talent profile.
type TalentProfileResponse struct {
	AccountID       string    `json:"account_id"`
	DisplayName     string    `json:"display_name"`
	Skills          []string  `json:"skills"`
	Location        string    `json:"location"`
	Narrative       string    `json:"narrative"`
	ExperienceLevel string    `json:"experience_level"`
	Availability    string    `json:"availability"`
	CreatedAt       time.Time `json:"created_at"`
	LastActiveAt    time.Time `json:"last_active_at"`
}

// FromProfile converts a talent profile to its response representation.
func FromProfile(profile *models.TalentProfile) TalentProfileResponse {
	return TalentProfileResponse{
		AccountID:       profile.AccountID.String(),
		DisplayName:     profile.DisplayName,
		Skills:          profile.Skills,
		Location:        profile.Location,
		Narrative:       profile.Narrative,
		ExperienceLevel: profile.ExperienceLevel,
		Availability:    string(profile.Availability),
		CreatedAt:       profile.CreatedAt,
		LastActiveAt:    profile.LastActiveAt,
	}
}
