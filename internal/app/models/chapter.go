package models

import "time"

// ChapterType distinguishes nationwide chapters from city-scoped ones
type ChapterType string

const (
	ChapterTypeCountry ChapterType = "country"
	ChapterTypeCity    ChapterType = "city"
)

// Valid reports whether the value is a known chapter type
func (t ChapterType) Valid() bool {
	return t == ChapterTypeCountry || t == ChapterTypeCity
}

// Chapter represents a regional alumni organizational unit
type Chapter struct {
	ID            int64       `json:"id" db:"id"`
	ChapterUUID   string      `json:"chapterUuid" db:"chapter_uuid"`
	Name          string      `json:"name" db:"name" example:"Ghana Chapter"`
	Code          string      `json:"code" db:"code" example:"GH"`
	Description   *string     `json:"description,omitempty" db:"description"`
	Type          ChapterType `json:"type" db:"type" example:"country"`
	CountryCode   string      `json:"countryCode" db:"country_code" example:"GH"`
	CountryName   string      `json:"countryName" db:"country_name" example:"Ghana"`
	StateProvince *string     `json:"stateProvince,omitempty" db:"state_province"`
	City          *string     `json:"city,omitempty" db:"city"`
	ContactEmail  *string     `json:"contactEmail,omitempty" db:"contact_email"`
	ContactPhone  *string     `json:"contactPhone,omitempty" db:"contact_phone"`
	IsActive      bool        `json:"isActive" db:"is_active"`
	CreatedAt     time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time   `json:"updatedAt" db:"updated_at"`

	// Derived, always computed from chapter_memberships, never stored
	MemberCount int64 `json:"memberCount" db:"-"`
}
