package models

import (
	"time"
)

// RoleType identifies the kind of principal a token belongs to
type RoleType string

const (
	RoleAlumni RoleType = "ALUMNI"
	RoleAdmin  RoleType = "ADMIN"
)

// User defines the user model based on the 'users' table
type User struct {
	ID                 int64      `json:"id" db:"id" example:"1"`
	Email              string     `json:"email" db:"email" example:"ama.mensah@example.com"`
	Password           *string    `json:"-" db:"password"` // nil until the user sets one or approval generates one
	Title              *string    `json:"title,omitempty" db:"title" example:"Dr"`
	FirstName          string     `json:"firstName" db:"first_name" example:"Ama"`
	LastName           string     `json:"lastName" db:"last_name" example:"Mensah"`
	OtherNames         *string    `json:"otherNames,omitempty" db:"other_names"`
	PhoneNumber        string     `json:"phoneNumber" db:"phone_number" example:"+233201234567"`
	Nationality        *string    `json:"nationality,omitempty" db:"nationality" example:"Ghanaian"`
	CountryOfResidence *string    `json:"countryOfResidence,omitempty" db:"country_of_residence" example:"GH"`
	CityOfResidence    *string    `json:"cityOfResidence,omitempty" db:"city_of_residence" example:"Accra"`
	Bio                *string    `json:"bio,omitempty" db:"bio"`
	HallOfResidence    *string    `json:"hallOfResidence,omitempty" db:"hall_of_residence"`
	RoleType           RoleType   `json:"roleType" db:"role_type" example:"ALUMNI"`
	IsVerified         bool       `json:"isVerified" db:"is_verified" example:"true"`
	IsApproved         bool       `json:"isApproved" db:"is_approved" example:"false"`
	IsActive           bool       `json:"isActive" db:"is_active" example:"false"`
	ApprovedAt         *time.Time `json:"approvedAt,omitempty" db:"approved_at"`
	RejectedAt         *time.Time `json:"rejectedAt,omitempty" db:"rejected_at"`
	RejectionReason    *string    `json:"rejectionReason,omitempty" db:"rejection_reason"`
	LastLoginAt        *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt          time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time  `json:"updatedAt" db:"updated_at"`
}

// FullName joins the optional title and name parts the way they are displayed
func (u *User) FullName() string {
	name := ""
	if u.Title != nil && *u.Title != "" {
		name = *u.Title + " "
	}
	name += u.FirstName
	if u.OtherNames != nil && *u.OtherNames != "" {
		name += " " + *u.OtherNames
	}
	name += " " + u.LastName
	return name
}

// HasPassword reports whether the user has set (or been issued) a password
func (u *User) HasPassword() bool {
	return u.Password != nil && *u.Password != ""
}
