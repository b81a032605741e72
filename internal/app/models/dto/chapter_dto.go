package dto

import (
	"time"

	"github.com/winrydberg/alumni-backend/internal/app/models"
)

// CreateChapterRequest represents a request to create a chapter
type CreateChapterRequest struct {
	Name          string             `json:"name" binding:"required"`
	Code          string             `json:"code" binding:"required"`
	Description   *string            `json:"description,omitempty"`
	Type          models.ChapterType `json:"type" binding:"required"`
	CountryCode   string             `json:"countryCode" binding:"required,len=2"`
	CountryName   string             `json:"countryName" binding:"required"`
	StateProvince *string            `json:"stateProvince,omitempty"`
	City          *string            `json:"city,omitempty"`
	ContactEmail  *string            `json:"contactEmail,omitempty" binding:"omitempty,email"`
	ContactPhone  *string            `json:"contactPhone,omitempty"`
	IsActive      *bool              `json:"isActive,omitempty"`
}

// UpdateChapterRequest represents a request to update a chapter.
// Pointer fields distinguish "not sent" from "set to zero value".
type UpdateChapterRequest struct {
	Name          *string             `json:"name,omitempty"`
	Code          *string             `json:"code,omitempty"`
	Description   *string             `json:"description,omitempty"`
	Type          *models.ChapterType `json:"type,omitempty"`
	CountryCode   *string             `json:"countryCode,omitempty" binding:"omitempty,len=2"`
	CountryName   *string             `json:"countryName,omitempty"`
	StateProvince *string             `json:"stateProvince,omitempty"`
	City          *string             `json:"city,omitempty"`
	ContactEmail  *string             `json:"contactEmail,omitempty" binding:"omitempty,email"`
	ContactPhone  *string             `json:"contactPhone,omitempty"`
	IsActive      *bool               `json:"isActive,omitempty"`
}

// ChapterFilterRequest filters the admin chapter listing
type ChapterFilterRequest struct {
	Search      string `form:"search"`
	CountryCode string `form:"countryCode"`
	Type        string `form:"type"`
	IsActive    *bool  `form:"isActive"`
	Page        int    `form:"page"`
	PageSize    int    `form:"pageSize"`
}

// ChapterResponse represents chapter information returned by the API
type ChapterResponse struct {
	ID            int64     `json:"id"`
	ChapterUUID   string    `json:"chapterUuid"`
	Name          string    `json:"name"`
	Code          string    `json:"code"`
	Description   *string   `json:"description,omitempty"`
	Type          string    `json:"type" example:"country"`
	CountryCode   string    `json:"countryCode"`
	CountryName   string    `json:"countryName"`
	StateProvince *string   `json:"stateProvince,omitempty"`
	City          *string   `json:"city,omitempty"`
	ContactEmail  *string   `json:"contactEmail,omitempty"`
	ContactPhone  *string   `json:"contactPhone,omitempty"`
	IsActive      bool      `json:"isActive"`
	MemberCount   int64     `json:"memberCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FromChapter converts a models.Chapter to a ChapterResponse
func FromChapter(chapter *models.Chapter) *ChapterResponse {
	if chapter == nil {
		return nil
	}
	return &ChapterResponse{
		ID:            chapter.ID,
		ChapterUUID:   chapter.ChapterUUID,
		Name:          chapter.Name,
		Code:          chapter.Code,
		Description:   chapter.Description,
		Type:          string(chapter.Type),
		CountryCode:   chapter.CountryCode,
		CountryName:   chapter.CountryName,
		StateProvince: chapter.StateProvince,
		City:          chapter.City,
		ContactEmail:  chapter.ContactEmail,
		ContactPhone:  chapter.ContactPhone,
		IsActive:      chapter.IsActive,
		MemberCount:   chapter.MemberCount,
		CreatedAt:     chapter.CreatedAt,
	}
}

// FromChapters converts a slice of chapters
func FromChapters(chapters []*models.Chapter) []*ChapterResponse {
	out := make([]*ChapterResponse, 0, len(chapters))
	for _, c := range chapters {
		out = append(out, FromChapter(c))
	}
	return out
}

// SuggestedChapterResponse is the residence-based suggestion result.
// Chapter is nil when no suggestion could be made; Reason explains why.
type SuggestedChapterResponse struct {
	Chapter *ChapterResponse `json:"chapter"`
	Reason  string           `json:"reason,omitempty" example:"no configuration for country"`
}

// AvailableChaptersResponse lists chapters joinable from the user's residence
type AvailableChaptersResponse struct {
	CountryCode string             `json:"countryCode"`
	Chapters    []*ChapterResponse `json:"chapters"`
}

// JoinChapterRequest asks to join a chapter as the primary membership
type JoinChapterRequest struct {
	ChapterID int64 `json:"chapterId" binding:"required,min=1"`
}

// MembershipResponse represents a user's chapter membership
type MembershipResponse struct {
	ID        int64            `json:"id"`
	ChapterID int64            `json:"chapterId"`
	IsPrimary bool             `json:"isPrimary"`
	Status    string           `json:"membershipStatus" example:"active"`
	JoinedAt  time.Time        `json:"joinedAt"`
	Chapter   *ChapterResponse `json:"chapter,omitempty"`
}

// FromMembership converts a models.ChapterMembership to a MembershipResponse
func FromMembership(m *models.ChapterMembership) *MembershipResponse {
	if m == nil {
		return nil
	}
	return &MembershipResponse{
		ID:        m.ID,
		ChapterID: m.ChapterID,
		IsPrimary: m.IsPrimary,
		Status:    string(m.Status),
		JoinedAt:  m.JoinedAt,
		Chapter:   FromChapter(m.Chapter),
	}
}

// ChapterMemberResponse represents a member row in the admin member listing
type ChapterMemberResponse struct {
	User      *UserResponse `json:"user"`
	IsPrimary bool          `json:"isPrimary"`
	Status    string        `json:"membershipStatus"`
	JoinedAt  time.Time     `json:"joinedAt"`
}

// ChapterStatisticsResponse aggregates counts for the admin dashboard
type ChapterStatisticsResponse struct {
	TotalChapters    int64            `json:"totalChapters"`
	ActiveChapters   int64            `json:"activeChapters"`
	TotalMemberships int64            `json:"totalMemberships"`
	MembersByChapter map[string]int64 `json:"membersByChapter"`
}
