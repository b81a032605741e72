package dto

import (
	"time"

	"github.com/winrydberg/alumni-backend/internal/app/models"
)

// HallFilterRequest filters the hall directory listing
type HallFilterRequest struct {
	Search string `form:"search"`
	Gender string `form:"gender"`
}

// HallResponse represents a hall of residence returned by the API
type HallResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	HallCode    string    `json:"hallCode"`
	Description *string   `json:"description,omitempty"`
	Gender      string    `json:"gender" example:"mixed"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FromHall converts a models.Hall to a HallResponse
func FromHall(hall *models.Hall) *HallResponse {
	if hall == nil {
		return nil
	}
	return &HallResponse{
		ID:          hall.ID,
		Name:        hall.Name,
		HallCode:    hall.HallCode,
		Description: hall.Description,
		Gender:      string(hall.Gender),
		IsActive:    hall.IsActive,
		CreatedAt:   hall.CreatedAt,
	}
}

// FromHalls converts a slice of halls
func FromHalls(halls []*models.Hall) []*HallResponse {
	out := make([]*HallResponse, 0, len(halls))
	for _, h := range halls {
		out = append(out, FromHall(h))
	}
	return out
}
