package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/winrydberg/alumni-backend/internal/app/models"
	"github.com/winrydberg/alumni-backend/internal/app/models/dto"
	"github.com/winrydberg/alumni-backend/internal/pkg/apperrors"
)

// DonationService defines the interface for donation campaign operations
type DonationService interface {
	ListDonations(ctx context.Context, filter *dto.DonationFilterRequest) ([]*models.Donation, int64, error)
	ListFeaturedDonations(ctx context.Context) ([]*models.Donation, error)
	GetDonation(ctx context.Context, donationUUID string) (*models.Donation, error)
	GetCategories() map[string]string
	MakePayment(ctx context.Context, userID int64, donationUUID string, req *dto.MakePaymentRequest) (*models.Payment, error)
	CompletePayment(ctx context.Context, reference string, transactionID *string) (*models.Payment, error)
	FailPayment(ctx context.Context, reference string) (*models.Payment, error)
	GetUserPayments(ctx context.Context, userID int64, page, pageSize int) ([]*models.Payment, int64, error)
	ListAllDonations(ctx context.Context, filter *dto.DonationFilterRequest) ([]*models.Donation, int64, error)
	CreateDonation(ctx context.Context, req *dto.CreateDonationRequest, createdBy int64) (*models.Donation, error)
	UpdateDonation(ctx context.Context, id int64, req *dto.UpdateDonationRequest) (*models.Donation, error)
	DeleteDonation(ctx context.Context, id int64) error
	GetStatistics(ctx context.Context) (*dto.DonationStatisticsResponse, error)
}

// donationServiceImpl implements the DonationService interface
type donationServiceImpl struct {
	donationStore DonationStore
	paymentStore  PaymentStore
	logger        zerolog.Logger
	now           func() time.Time
}

// NewDonationService creates a new donation service instance
func NewDonationService(donationStore DonationStore, paymentStore PaymentStore, logger zerolog.Logger) DonationService {
	return &donationServiceImpl{
		donationStore: donationStore,
		paymentStore:  paymentStore,
		logger:        logger,
		now:           time.Now,
	}
}

const featuredDonationsLimit = 5

// ListDonations lists active campaigns for the alumni-facing surface
func (s *donationServiceImpl) ListDonations(ctx context.Context, filter *dto.DonationFilterRequest) ([]*models.Donation, int64, error) {
	active := true
	return s.donationStore.GetAll(ctx, filter.Search, filter.Category, &active, filter.Page, filter.PageSize)
}

// ListFeaturedDonations lists the campaigns highlighted on the home surface
func (s *donationServiceImpl) ListFeaturedDonations(ctx context.Context) ([]*models.Donation, error) {
	return s.donationStore.GetFeatured(ctx, featuredDonationsLimit)
}

// GetDonation retrieves a campaign by its public identifier
func (s *donationServiceImpl) GetDonation(ctx context.Context, donationUUID string) (*models.Donation, error) {
	if _, err := uuid.Parse(donationUUID); err != nil {
		return nil, apperrors.ErrDonationNotFound
	}
	return s.donationStore.GetByUUID(ctx, donationUUID)
}

// GetCategories returns the category choices offered when creating a campaign
func (s *donationServiceImpl) GetCategories() map[string]string {
	return models.DonationCategories
}

// newPaymentReference builds the public reference handed to the payer and
// the payment gateway
func newPaymentReference() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "PAY-" + raw[:16]
}

// MakePayment records a pending contribution toward a campaign. The payment
// stays pending until the gateway callback completes or fails it.
func (s *donationServiceImpl) MakePayment(ctx context.Context, userID int64, donationUUID string, req *dto.MakePaymentRequest) (*models.Payment, error) {
	donation, err := s.GetDonation(ctx, donationUUID)
	if err != nil {
		return nil, err
	}

	if !donation.AcceptsPayments(s.now()) {
		return nil, apperrors.ErrDonationClosed
	}
	if req.Amount < donation.MinimumAmount {
		return nil, apperrors.ErrAmountBelowMinimum
	}

	payment := &models.Payment{
		PaymentReference: newPaymentReference(),
		DonationID:       donation.ID,
		UserID:           &userID,
		Amount:           req.Amount,
		Method:           strings.TrimSpace(req.PaymentMethod),
		Status:           models.PaymentPending,
		Notes:            req.Notes,
	}

	if err := s.paymentStore.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("reference", payment.PaymentReference).
		Int64("donationID", donation.ID).
		Float64("amount", payment.Amount).
		Msg("Payment recorded")

	payment.Donation = donation
	return payment, nil
}

// CompletePayment marks a pending payment as completed, stamping the paid
// time and the gateway transaction ID
func (s *donationServiceImpl) CompletePayment(ctx context.Context, reference string, transactionID *string) (*models.Payment, error) {
	payment, err := s.paymentStore.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if payment.Status != models.PaymentPending {
		return nil, apperrors.NewConflictError(fmt.Sprintf("payment is already %s", payment.Status))
	}

	if err := s.paymentStore.UpdateStatus(ctx, reference, models.PaymentCompleted, transactionID); err != nil {
		return nil, err
	}

	s.logger.Info().Str("reference", reference).Msg("Payment completed")
	return s.paymentStore.GetByReference(ctx, reference)
}

// FailPayment marks a pending payment as failed
func (s *donationServiceImpl) FailPayment(ctx context.Context, reference string) (*models.Payment, error) {
	payment, err := s.paymentStore.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if payment.Status != models.PaymentPending {
		return nil, apperrors.NewConflictError(fmt.Sprintf("payment is already %s", payment.Status))
	}

	if err := s.paymentStore.UpdateStatus(ctx, reference, models.PaymentFailed, nil); err != nil {
		return nil, err
	}

	return s.paymentStore.GetByReference(ctx, reference)
}

// GetUserPayments lists a user's own contributions, newest first
func (s *donationServiceImpl) GetUserPayments(ctx context.Context, userID int64, page, pageSize int) ([]*models.Payment, int64, error) {
	return s.paymentStore.GetByUser(ctx, userID, page, pageSize)
}

// ListAllDonations lists campaigns for the admin surface with full filtering
func (s *donationServiceImpl) ListAllDonations(ctx context.Context, filter *dto.DonationFilterRequest) ([]*models.Donation, int64, error) {
	return s.donationStore.GetAll(ctx, filter.Search, filter.Category, filter.IsActive, filter.Page, filter.PageSize)
}

// validateDonationShape enforces the cross-field requirements
func validateDonationShape(donation *models.Donation) error {
	if strings.TrimSpace(donation.Title) == "" {
		return apperrors.NewValidationError("title", "cannot be empty")
	}
	if donation.MinimumAmount <= 0 {
		return apperrors.NewValidationError("minimumAmount", "must be greater than zero")
	}
	if donation.TargetAmount != nil && *donation.TargetAmount < donation.MinimumAmount {
		return apperrors.NewValidationError("targetAmount", "cannot be below the minimum amount")
	}
	if donation.StartDate != nil && donation.EndDate != nil && donation.EndDate.Before(*donation.StartDate) {
		return apperrors.NewValidationError("endDate", "cannot be before the start date")
	}
	return nil
}

// CreateDonation creates a campaign after validating its shape
func (s *donationServiceImpl) CreateDonation(ctx context.Context, req *dto.CreateDonationRequest, createdBy int64) (*models.Donation, error) {
	donation := &models.Donation{
		DonationUUID:  uuid.New().String(),
		Title:         strings.TrimSpace(req.Title),
		Description:   req.Description,
		TargetAmount:  req.TargetAmount,
		MinimumAmount: req.MinimumAmount,
		Category:      req.Category,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		IsActive:      true,
		CreatedBy:     &createdBy,
	}
	if req.IsActive != nil {
		donation.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		donation.IsFeatured = *req.IsFeatured
	}

	if err := validateDonationShape(donation); err != nil {
		return nil, err
	}

	if err := s.donationStore.Create(ctx, donation); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("donationID", donation.ID).
		Str("title", donation.Title).
		Msg("Donation campaign created")

	return donation, nil
}

// UpdateDonation applies a partial update to a campaign
func (s *donationServiceImpl) UpdateDonation(ctx context.Context, id int64, req *dto.UpdateDonationRequest) (*models.Donation, error) {
	donation, err := s.donationStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		donation.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		donation.Description = req.Description
	}
	if req.TargetAmount != nil {
		donation.TargetAmount = req.TargetAmount
	}
	if req.MinimumAmount != nil {
		donation.MinimumAmount = *req.MinimumAmount
	}
	if req.Category != nil {
		donation.Category = req.Category
	}
	if req.StartDate != nil {
		donation.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		donation.EndDate = req.EndDate
	}
	if req.IsActive != nil {
		donation.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		donation.IsFeatured = *req.IsFeatured
	}

	if err := validateDonationShape(donation); err != nil {
		return nil, err
	}

	if err := s.donationStore.Update(ctx, donation); err != nil {
		return nil, err
	}

	return donation, nil
}

// DeleteDonation removes a campaign together with its payment history
func (s *donationServiceImpl) DeleteDonation(ctx context.Context, id int64) error {
	if _, err := s.donationStore.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.donationStore.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("donationID", id).Msg("Donation campaign deleted")
	return nil
}

// GetStatistics aggregates fundraising totals for the admin dashboard
func (s *donationServiceImpl) GetStatistics(ctx context.Context) (*dto.DonationStatisticsResponse, error) {
	totalDonations, activeDonations, totalRaised, completedPayments, raisedByCategory, err := s.donationStore.GetStatistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("error collecting donation statistics: %w", err)
	}

	return &dto.DonationStatisticsResponse{
		TotalDonations:    totalDonations,
		ActiveDonations:   activeDonations,
		TotalRaised:       totalRaised,
		CompletedPayments: completedPayments,
		RaisedByCategory:  raisedByCategory,
	}, nil
}
