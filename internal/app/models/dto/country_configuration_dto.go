package dto

import (
	"time"

	"github.com/winrydberg/alumni-backend/internal/app/models"
)

// UpsertCountryConfigurationRequest creates or replaces the configuration
// for a country, keyed by its ISO country code
type UpsertCountryConfigurationRequest struct {
	CountryCode           string             `json:"countryCode" binding:"required,len=2"`
	CountryName           string             `json:"countryName" binding:"required"`
	ChapterType           models.ChapterType `json:"chapterType" binding:"required"`
	AllowMultipleChapters bool               `json:"allowMultipleChapters"`
	IsActive              *bool              `json:"isActive,omitempty"`
	Notes                 *string            `json:"notes,omitempty"`
}

// CountryConfigurationResponse represents a country chapter configuration
type CountryConfigurationResponse struct {
	ID                    int64     `json:"id"`
	CountryCode           string    `json:"countryCode"`
	CountryName           string    `json:"countryName"`
	ChapterType           string    `json:"chapterType" example:"country"`
	AllowMultipleChapters bool      `json:"allowMultipleChapters"`
	IsActive              bool      `json:"isActive"`
	Notes                 *string   `json:"notes,omitempty"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// FromCountryConfiguration converts a model to its response form
func FromCountryConfiguration(cfg *models.CountryChapterConfiguration) *CountryConfigurationResponse {
	if cfg == nil {
		return nil
	}
	return &CountryConfigurationResponse{
		ID:                    cfg.ID,
		CountryCode:           cfg.CountryCode,
		CountryName:           cfg.CountryName,
		ChapterType:           string(cfg.ChapterType),
		AllowMultipleChapters: cfg.AllowMultipleChapters,
		IsActive:              cfg.IsActive,
		Notes:                 cfg.Notes,
		CreatedAt:             cfg.CreatedAt,
		UpdatedAt:             cfg.UpdatedAt,
	}
}

// FromCountryConfigurations converts a slice of configurations
func FromCountryConfigurations(cfgs []*models.CountryChapterConfiguration) []*CountryConfigurationResponse {
	out := make([]*CountryConfigurationResponse, 0, len(cfgs))
	for _, c := range cfgs {
		out = append(out, FromCountryConfiguration(c))
	}
	return out
}
