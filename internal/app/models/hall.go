package models

import "time"

// HallGender restricts who a hall of residence housed
type HallGender string

const (
	HallMale   HallGender = "male"
	HallFemale HallGender = "female"
	HallMixed  HallGender = "mixed"
)

// Valid reports whether the value is a known hall gender
func (g HallGender) Valid() bool {
	return g == HallMale || g == HallFemale || g == HallMixed
}

// Hall represents a hall of residence alumni can pick on their profile
type Hall struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name" example:"Unity Hall"`
	HallCode    string     `json:"hallCode" db:"hall_code" example:"UH"`
	Description *string    `json:"description,omitempty" db:"description"`
	Gender      HallGender `json:"gender" db:"gender" example:"mixed"`
	IsActive    bool       `json:"isActive" db:"is_active"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}
