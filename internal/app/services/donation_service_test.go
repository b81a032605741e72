package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/winrydberg/alumni-backend/internal/app/models"
	"github.com/winrydberg/alumni-backend/internal/app/models/dto"
	"github.com/winrydberg/alumni-backend/internal/pkg/apperrors"
)

func floatPtr(f float64) *float64 { return &f }

type donationFixture struct {
	donations *fakeDonationStore
	payments  *fakePaymentStore
	service   DonationService
	now       time.Time
}

func newDonationFixture() *donationFixture {
	payments := newFakePaymentStore()
	f := &donationFixture{
		donations: newFakeDonationStore(payments),
		payments:  payments,
		now:       time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC),
	}
	payments.donations = f.donations
	svc := NewDonationService(f.donations, f.payments, zerolog.Nop()).(*donationServiceImpl)
	svc.now = func() time.Time { return f.now }
	f.service = svc
	return f
}

func (f *donationFixture) addDonation(title string, minimum float64, active bool) *models.Donation {
	return f.donations.add(&models.Donation{
		DonationUUID:  uuid.New().String(),
		Title:         title,
		MinimumAmount: minimum,
		IsActive:      active,
	})
}

func TestMakePaymentRecordsPending(t *testing.T) {
	f := newDonationFixture()
	donation := f.addDonation("Library Renovation", 10, true)

	payment, err := f.service.MakePayment(context.Background(), 7, donation.DonationUUID, &dto.MakePaymentRequest{
		Amount:        50,
		PaymentMethod: "mobile_money",
	})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentPending, payment.Status)
	assert.Equal(t, float64(50), payment.Amount)
	assert.NotEmpty(t, payment.PaymentReference)
	require.NotNil(t, payment.UserID)
	assert.Equal(t, int64(7), *payment.UserID)
	assert.Nil(t, payment.PaidAt)

	// A pending payment must not count toward the raised total
	fetched, err := f.service.GetDonation(context.Background(), donation.DonationUUID)
	require.NoError(t, err)
	assert.Zero(t, fetched.TotalRaised)
}

func TestMakePaymentRejectsBelowMinimum(t *testing.T) {
	f := newDonationFixture()
	donation := f.addDonation("Scholarship Fund", 25, true)

	_, err := f.service.MakePayment(context.Background(), 1, donation.DonationUUID, &dto.MakePaymentRequest{
		Amount:        24.99,
		PaymentMethod: "card",
	})
	assert.ErrorIs(t, err, apperrors.ErrAmountBelowMinimum)
}

func TestMakePaymentRejectsClosedCampaigns(t *testing.T) {
	f := newDonationFixture()

	inactive := f.addDonation("Paused Fund", 10, false)
	_, err := f.service.MakePayment(context.Background(), 1, inactive.DonationUUID, &dto.MakePaymentRequest{
		Amount:        20,
		PaymentMethod: "card",
	})
	assert.ErrorIs(t, err, apperrors.ErrDonationClosed)

	ended := f.addDonation("Ended Fund", 10, true)
	past := f.now.Add(-24 * time.Hour)
	ended.EndDate = &past
	_, err = f.service.MakePayment(context.Background(), 1, ended.DonationUUID, &dto.MakePaymentRequest{
		Amount:        20,
		PaymentMethod: "card",
	})
	assert.ErrorIs(t, err, apperrors.ErrDonationClosed)

	upcoming := f.addDonation("Upcoming Fund", 10, true)
	future := f.now.Add(24 * time.Hour)
	upcoming.StartDate = &future
	_, err = f.service.MakePayment(context.Background(), 1, upcoming.DonationUUID, &dto.MakePaymentRequest{
		Amount:        20,
		PaymentMethod: "card",
	})
	assert.ErrorIs(t, err, apperrors.ErrDonationClosed)
}

func TestMakePaymentUnknownDonation(t *testing.T) {
	f := newDonationFixture()

	_, err := f.service.MakePayment(context.Background(), 1, uuid.New().String(), &dto.MakePaymentRequest{
		Amount:        20,
		PaymentMethod: "card",
	})
	assert.ErrorIs(t, err, apperrors.ErrDonationNotFound)

	_, err = f.service.MakePayment(context.Background(), 1, "not-a-uuid", &dto.MakePaymentRequest{
		Amount:        20,
		PaymentMethod: "card",
	})
	assert.ErrorIs(t, err, apperrors.ErrDonationNotFound)
}

func TestCompletePaymentStampsPaidAt(t *testing.T) {
	f := newDonationFixture()
	donation := f.addDonation("Sports Complex", 5, true)

	payment, err := f.service.MakePayment(context.Background(), 3, donation.DonationUUID, &dto.MakePaymentRequest{
		Amount:        100,
		PaymentMethod: "bank_transfer",
	})
	require.NoError(t, err)

	txID := "TXN-12345"
	completed, err := f.service.CompletePayment(context.Background(), payment.PaymentReference, &txID)
	require.NoError(t, err)

	assert.Equal(t, models.PaymentCompleted, completed.Status)
	require.NotNil(t, completed.PaidAt)
	require.NotNil(t, completed.TransactionID)
	assert.Equal(t, "TXN-12345", *completed.TransactionID)

	// The raised total now includes the completed payment
	fetched, err := f.service.GetDonation(context.Background(), donation.DonationUUID)
	require.NoError(t, err)
	assert.Equal(t, float64(100), fetched.TotalRaised)

	// Completing twice is a conflict
	_, err = f.service.CompletePayment(context.Background(), payment.PaymentReference, nil)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestFailPaymentKeepsRaisedTotal(t *testing.T) {
	f := newDonationFixture()
	donation := f.addDonation("Research Fund", 5, true)

	payment, err := f.service.MakePayment(context.Background(), 3, donation.DonationUUID, &dto.MakePaymentRequest{
		Amount:        40,
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	failed, err := f.service.FailPayment(context.Background(), payment.PaymentReference)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentFailed, failed.Status)

	fetched, err := f.service.GetDonation(context.Background(), donation.DonationUUID)
	require.NoError(t, err)
	assert.Zero(t, fetched.TotalRaised)
}

func TestGetUserPaymentsIncludesCampaign(t *testing.T) {
	f := newDonationFixture()
	donation := f.addDonation("Technology Fund", 5, true)

	_, err := f.service.MakePayment(context.Background(), 9, donation.DonationUUID, &dto.MakePaymentRequest{
		Amount:        30,
		PaymentMethod: "card",
	})
	require.NoError(t, err)
	_, err = f.service.MakePayment(context.Background(), 4, donation.DonationUUID, &dto.MakePaymentRequest{
		Amount:        15,
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	payments, total, err := f.service.GetUserPayments(context.Background(), 9, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, payments, 1)
	require.NotNil(t, payments[0].Donation)
	assert.Equal(t, "Technology Fund", payments[0].Donation.Title)
}

func TestListDonationsShowsActiveOnly(t *testing.T) {
	f := newDonationFixture()
	f.addDonation("Open Fund", 5, true)
	f.addDonation("Closed Fund", 5, false)

	donations, total, err := f.service.ListDonations(context.Background(), &dto.DonationFilterRequest{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, donations, 1)
	assert.Equal(t, "Open Fund", donations[0].Title)

	// The admin listing still sees both
	all, allTotal, err := f.service.ListAllDonations(context.Background(), &dto.DonationFilterRequest{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(2), allTotal)
	assert.Len(t, all, 2)
}

func TestCreateDonationValidatesShape(t *testing.T) {
	f := newDonationFixture()

	_, err := f.service.CreateDonation(context.Background(), &dto.CreateDonationRequest{
		Title:         "Healthcare Fund",
		MinimumAmount: 100,
		TargetAmount:  floatPtr(50),
	}, 1)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	start := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)
	_, err = f.service.CreateDonation(context.Background(), &dto.CreateDonationRequest{
		Title:         "Healthcare Fund",
		MinimumAmount: 10,
		StartDate:     &start,
		EndDate:       &end,
	}, 1)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	donation, err := f.service.CreateDonation(context.Background(), &dto.CreateDonationRequest{
		Title:         "Healthcare Fund",
		MinimumAmount: 10,
	}, 1)
	require.NoError(t, err)
	assert.True(t, donation.IsActive)
	assert.NotEmpty(t, donation.DonationUUID)
	require.NotNil(t, donation.CreatedBy)
	assert.Equal(t, int64(1), *donation.CreatedBy)
}

func TestUpdateDonationPartial(t *testing.T) {
	f := newDonationFixture()
	donation := f.addDonation("General Fund", 10, true)

	updated, err := f.service.UpdateDonation(context.Background(), donation.ID, &dto.UpdateDonationRequest{
		MinimumAmount: floatPtr(20),
	})
	require.NoError(t, err)
	assert.Equal(t, float64(20), updated.MinimumAmount)
	assert.Equal(t, "General Fund", updated.Title)

	_, err = f.service.UpdateDonation(context.Background(), 999, &dto.UpdateDonationRequest{})
	assert.ErrorIs(t, err, apperrors.ErrDonationNotFound)
}

func TestDonationStatistics(t *testing.T) {
	f := newDonationFixture()
	library := f.addDonation("Library Fund", 5, true)
	library.Category = strPtr("library")
	f.addDonation("Dormant Fund", 5, false)

	payment, err := f.service.MakePayment(context.Background(), 2, library.DonationUUID, &dto.MakePaymentRequest{
		Amount:        60,
		PaymentMethod: "card",
	})
	require.NoError(t, err)
	_, err = f.service.CompletePayment(context.Background(), payment.PaymentReference, nil)
	require.NoError(t, err)

	stats, err := f.service.GetStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalDonations)
	assert.Equal(t, int64(1), stats.ActiveDonations)
	assert.Equal(t, float64(60), stats.TotalRaised)
	assert.Equal(t, int64(1), stats.CompletedPayments)
	assert.Equal(t, float64(60), stats.RaisedByCategory["library"])
}
