package models

import "time"

// PaymentStatus is the lifecycle state of a donation payment
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Valid reports whether the value is a known payment status
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// Donation represents a fundraising campaign alumni can contribute to
type Donation struct {
	ID            int64      `json:"id" db:"id"`
	DonationUUID  string     `json:"donationUuid" db:"donation_uuid"`
	Title         string     `json:"title" db:"title" example:"Library Renovation Fund"`
	Description   *string    `json:"description,omitempty" db:"description"`
	TargetAmount  *float64   `json:"targetAmount,omitempty" db:"target_amount"`
	MinimumAmount float64    `json:"minimumAmount" db:"minimum_amount"`
	Category      *string    `json:"category,omitempty" db:"category" example:"library"`
	StartDate     *time.Time `json:"startDate,omitempty" db:"start_date"`
	EndDate       *time.Time `json:"endDate,omitempty" db:"end_date"`
	IsActive      bool       `json:"isActive" db:"is_active"`
	IsFeatured    bool       `json:"isFeatured" db:"is_featured"`
	CreatedBy     *int64     `json:"createdBy,omitempty" db:"created_by"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`

	// TotalRaised is the sum of completed payments, derived per query
	TotalRaised float64 `json:"totalRaised" db:"-"`
}

// AcceptsPayments reports whether the campaign is active and inside its
// date window at the given instant
func (d *Donation) AcceptsPayments(now time.Time) bool {
	if !d.IsActive {
		return false
	}
	if d.StartDate != nil && now.Before(*d.StartDate) {
		return false
	}
	if d.EndDate != nil && now.After(*d.EndDate) {
		return false
	}
	return true
}

// Payment represents one contribution toward a donation campaign
type Payment struct {
	ID               int64         `json:"id" db:"id"`
	PaymentReference string        `json:"paymentReference" db:"payment_reference"`
	DonationID       int64         `json:"donationId" db:"donation_id"`
	UserID           *int64        `json:"userId,omitempty" db:"user_id"`
	DonorName        *string       `json:"donorName,omitempty" db:"donor_name"`
	DonorEmail       *string       `json:"donorEmail,omitempty" db:"donor_email"`
	Amount           float64       `json:"amount" db:"amount"`
	Method           string        `json:"paymentMethod" db:"payment_method" example:"mobile_money"`
	Status           PaymentStatus `json:"paymentStatus" db:"payment_status"`
	TransactionID    *string       `json:"transactionId,omitempty" db:"transaction_id"`
	Notes            *string       `json:"paymentNotes,omitempty" db:"payment_notes"`
	PaidAt           *time.Time    `json:"paidAt,omitempty" db:"paid_at"`
	CreatedAt        time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time     `json:"updatedAt" db:"updated_at"`

	// Related entities
	Donation *Donation `json:"donation,omitempty" db:"-"`
}

// DonationCategories enumerates the categories offered in the donation
// creation UI. Category remains free-form in storage.
var DonationCategories = map[string]string{
	"infrastructure": "Infrastructure",
	"scholarships":   "Scholarships",
	"research":       "Research",
	"sports":         "Sports",
	"library":        "Library",
	"technology":     "Technology",
	"healthcare":     "Healthcare",
	"general":        "General Fund",
	"other":          "Other",
}
