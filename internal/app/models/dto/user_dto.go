package dto

import (
	"time"

	"github.com/winrydberg/alumni-backend/internal/app/models"
)

// UserResponse represents basic user information
type UserResponse struct {
	ID                 int64      `json:"id"`
	Email              string     `json:"email"`
	Title              *string    `json:"title,omitempty"`
	FirstName          string     `json:"firstName"`
	LastName           string     `json:"lastName"`
	OtherNames         *string    `json:"otherNames,omitempty"`
	PhoneNumber        string     `json:"phoneNumber"`
	Nationality        *string    `json:"nationality,omitempty"`
	CountryOfResidence *string    `json:"countryOfResidence,omitempty"`
	CityOfResidence    *string    `json:"cityOfResidence,omitempty"`
	HallOfResidence    *string    `json:"hallOfResidence,omitempty"`
	Bio                *string    `json:"bio,omitempty"`
	RoleType           string     `json:"roleType" example:"ALUMNI"`
	IsVerified         bool       `json:"isVerified"`
	IsApproved         bool       `json:"isApproved"`
	IsActive           bool       `json:"isActive"`
	ApprovedAt         *time.Time `json:"approvedAt,omitempty"`
	RejectedAt         *time.Time `json:"rejectedAt,omitempty"`
	RejectionReason    *string    `json:"rejectionReason,omitempty"`
	LastLoginAt        *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

// FromUser converts a models.User to a UserResponse
func FromUser(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:                 user.ID,
		Email:              user.Email,
		Title:              user.Title,
		FirstName:          user.FirstName,
		LastName:           user.LastName,
		OtherNames:         user.OtherNames,
		PhoneNumber:        user.PhoneNumber,
		Nationality:        user.Nationality,
		CountryOfResidence: user.CountryOfResidence,
		CityOfResidence:    user.CityOfResidence,
		HallOfResidence:    user.HallOfResidence,
		Bio:                user.Bio,
		RoleType:           string(user.RoleType),
		IsVerified:         user.IsVerified,
		IsApproved:         user.IsApproved,
		IsActive:           user.IsActive,
		ApprovedAt:         user.ApprovedAt,
		RejectedAt:         user.RejectedAt,
		RejectionReason:    user.RejectionReason,
		LastLoginAt:        user.LastLoginAt,
		CreatedAt:          user.CreatedAt,
	}
}

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	Title              *string `json:"title,omitempty"`
	FirstName          string  `json:"firstName" binding:"required"`
	LastName           string  `json:"lastName" binding:"required"`
	OtherNames         *string `json:"otherNames,omitempty"`
	PhoneNumber        string  `json:"phoneNumber" binding:"required"`
	Nationality        *string `json:"nationality,omitempty"`
	CountryOfResidence *string `json:"countryOfResidence,omitempty"`
	CityOfResidence    *string `json:"cityOfResidence,omitempty"`
	HallOfResidence    *string `json:"hallOfResidence,omitempty"`
	Bio                *string `json:"bio,omitempty"`
}

// UserFilterRequest filters the admin account listing
type UserFilterRequest struct {
	Search     string `form:"search"`
	IsApproved *bool  `form:"isApproved"`
	IsActive   *bool  `form:"isActive"`
	Page       int    `form:"page"`
	PageSize   int    `form:"pageSize"`
}

// ApproveUsersRequest approves one or more pending accounts
type ApproveUsersRequest struct {
	UserIDs []int64 `json:"userIds" binding:"required,min=1"`
}

// RejectUserRequest rejects a pending account with a reason
type RejectUserRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ApprovalResultResponse reports the outcome of an approval batch
type ApprovalResultResponse struct {
	ApprovedCount int     `json:"approvedCount"`
	ApprovedIDs   []int64 `json:"approvedIds"`
}
