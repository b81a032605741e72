package models

import "time"

// CountryChapterConfiguration declares, per country, whether chapters are
// organized nationwide or per city. Keyed by ISO-3166 alpha-2 country code.
type CountryChapterConfiguration struct {
	ID          int64       `json:"id" db:"id"`
	CountryCode string      `json:"countryCode" db:"country_code" example:"US"`
	CountryName string      `json:"countryName" db:"country_name" example:"United States"`
	ChapterType ChapterType `json:"chapterType" db:"chapter_type" example:"city"`
	// AllowMultipleChapters anticipates multi-chapter membership per user.
	// Stored and returned but not consulted by the assignment logic, which
	// enforces the single-primary-chapter policy.
	AllowMultipleChapters bool      `json:"allowMultipleChapters" db:"allow_multiple_chapters"`
	IsActive              bool      `json:"isActive" db:"is_active"`
	Notes                 *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt             time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt             time.Time `json:"updatedAt" db:"updated_at"`
}

// UsesCityChapters reports whether the country organizes chapters per city
func (c *CountryChapterConfiguration) UsesCityChapters() bool {
	return c.ChapterType == ChapterTypeCity
}

// UsesCountryChapter reports whether the country has a single nationwide chapter
func (c *CountryChapterConfiguration) UsesCountryChapter() bool {
	return c.ChapterType == ChapterTypeCountry
}
