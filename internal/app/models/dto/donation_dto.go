package dto

import (
	"time"

	"github.com/winrydberg/alumni-backend/internal/app/models"
)

// CreateDonationRequest represents a request to create a donation campaign
type CreateDonationRequest struct {
	Title         string     `json:"title" binding:"required"`
	Description   *string    `json:"description,omitempty"`
	TargetAmount  *float64   `json:"targetAmount,omitempty" binding:"omitempty,gt=0"`
	MinimumAmount float64    `json:"minimumAmount" binding:"required,gt=0"`
	Category      *string    `json:"category,omitempty"`
	StartDate     *time.Time `json:"startDate,omitempty"`
	EndDate       *time.Time `json:"endDate,omitempty"`
	IsActive      *bool      `json:"isActive,omitempty"`
	IsFeatured    *bool      `json:"isFeatured,omitempty"`
}

// UpdateDonationRequest represents a request to update a donation campaign.
// Pointer fields distinguish "not sent" from "set to zero value".
type UpdateDonationRequest struct {
	Title         *string    `json:"title,omitempty"`
	Description   *string    `json:"description,omitempty"`
	TargetAmount  *float64   `json:"targetAmount,omitempty" binding:"omitempty,gt=0"`
	MinimumAmount *float64   `json:"minimumAmount,omitempty" binding:"omitempty,gt=0"`
	Category      *string    `json:"category,omitempty"`
	StartDate     *time.Time `json:"startDate,omitempty"`
	EndDate       *time.Time `json:"endDate,omitempty"`
	IsActive      *bool      `json:"isActive,omitempty"`
	IsFeatured    *bool      `json:"isFeatured,omitempty"`
}

// DonationFilterRequest filters the donation listings
type DonationFilterRequest struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	IsActive *bool  `form:"isActive"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// DonationResponse represents donation campaign information returned by the API
type DonationResponse struct {
	ID            int64      `json:"id"`
	DonationUUID  string     `json:"donationUuid"`
	Title         string     `json:"title"`
	Description   *string    `json:"description,omitempty"`
	TargetAmount  *float64   `json:"targetAmount,omitempty"`
	MinimumAmount float64    `json:"minimumAmount"`
	Category      *string    `json:"category,omitempty"`
	StartDate     *time.Time `json:"startDate,omitempty"`
	EndDate       *time.Time `json:"endDate,omitempty"`
	IsActive      bool       `json:"isActive"`
	IsFeatured    bool       `json:"isFeatured"`
	TotalRaised   float64    `json:"totalRaised"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// FromDonation converts a models.Donation to a DonationResponse
func FromDonation(donation *models.Donation) *DonationResponse {
	if donation == nil {
		return nil
	}
	return &DonationResponse{
		ID:            donation.ID,
		DonationUUID:  donation.DonationUUID,
		Title:         donation.Title,
		Description:   donation.Description,
		TargetAmount:  donation.TargetAmount,
		MinimumAmount: donation.MinimumAmount,
		Category:      donation.Category,
		StartDate:     donation.StartDate,
		EndDate:       donation.EndDate,
		IsActive:      donation.IsActive,
		IsFeatured:    donation.IsFeatured,
		TotalRaised:   donation.TotalRaised,
		CreatedAt:     donation.CreatedAt,
	}
}

// FromDonations converts a slice of donations
func FromDonations(donations []*models.Donation) []*DonationResponse {
	out := make([]*DonationResponse, 0, len(donations))
	for _, d := range donations {
		out = append(out, FromDonation(d))
	}
	return out
}

// MakePaymentRequest records a contribution toward a donation campaign
type MakePaymentRequest struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" binding:"required"`
	Notes         *string `json:"paymentNotes,omitempty"`
}

// PaymentResponse represents a payment returned by the API
type PaymentResponse struct {
	ID               int64             `json:"id"`
	PaymentReference string            `json:"paymentReference"`
	DonationID       int64             `json:"donationId"`
	Amount           float64           `json:"amount"`
	PaymentMethod    string            `json:"paymentMethod"`
	Status           string            `json:"paymentStatus" example:"pending"`
	TransactionID    *string           `json:"transactionId,omitempty"`
	Notes            *string           `json:"paymentNotes,omitempty"`
	PaidAt           *time.Time        `json:"paidAt,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	Donation         *DonationResponse `json:"donation,omitempty"`
}

// FromPayment converts a models.Payment to a PaymentResponse
func FromPayment(p *models.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}
	return &PaymentResponse{
		ID:               p.ID,
		PaymentReference: p.PaymentReference,
		DonationID:       p.DonationID,
		Amount:           p.Amount,
		PaymentMethod:    p.Method,
		Status:           string(p.Status),
		TransactionID:    p.TransactionID,
		Notes:            p.Notes,
		PaidAt:           p.PaidAt,
		CreatedAt:        p.CreatedAt,
		Donation:         FromDonation(p.Donation),
	}
}

// FromPayments converts a slice of payments
func FromPayments(payments []*models.Payment) []*PaymentResponse {
	out := make([]*PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, FromPayment(p))
	}
	return out
}

// DonationStatisticsResponse aggregates fundraising totals for the admin dashboard
type DonationStatisticsResponse struct {
	TotalDonations    int64              `json:"totalDonations"`
	ActiveDonations   int64              `json:"activeDonations"`
	TotalRaised       float64            `json:"totalRaised"`
	CompletedPayments int64              `json:"completedPayments"`
	RaisedByCategory  map[string]float64 `json:"raisedByCategory"`
}
