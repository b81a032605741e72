package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/winrydberg/alumni-backend/internal/app/models"
	"github.com/winrydberg/alumni-backend/internal/pkg/apperrors"
	"github.com/winrydberg/alumni-backend/internal/pkg/logger"
)

const paymentColumns = `payments.id, payments.payment_reference, payments.donation_id,
	payments.user_id, payments.donor_name, payments.donor_email, payments.amount,
	payments.payment_method, payments.payment_status, payments.transaction_id,
	payments.payment_notes, payments.paid_at, payments.created_at, payments.updated_at`

// PaymentRepository handles database operations for donation payments
type PaymentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanPayment(row pgx.Row) (*models.Payment, error) {
	p := &models.Payment{}
	err := row.Scan(
		&p.ID,
		&p.PaymentReference,
		&p.DonationID,
		&p.UserID,
		&p.DonorName,
		&p.DonorEmail,
		&p.Amount,
		&p.Method,
		&p.Status,
		&p.TransactionID,
		&p.Notes,
		&p.PaidAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a new payment and sets the generated ID on the model
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (
			payment_reference, donation_id, user_id, donor_name, donor_email,
			amount, payment_method, payment_status, transaction_id, payment_notes, paid_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		payment.PaymentReference, payment.DonationID, payment.UserID,
		payment.DonorName, payment.DonorEmail, payment.Amount,
		payment.Method, payment.Status, payment.TransactionID,
		payment.Notes, payment.PaidAt,
	).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create payment query")
		return fmt.Errorf("error creating payment: %w", err)
	}

	return nil
}

// GetByReference retrieves a payment by its public reference
func (r *PaymentRepository) GetByReference(ctx context.Context, reference string) (*models.Payment, error) {
	query := fmt.Sprintf(`SELECT %s FROM payments WHERE payment_reference = $1`, paymentColumns)

	payment, err := scanPayment(r.db.QueryRow(ctx, query, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPaymentNotFound
		}
		logger.Error().Err(err).Str("reference", reference).Msg("Error scanning payment row")
		return nil, fmt.Errorf("error getting payment by reference: %w", err)
	}

	return payment, nil
}

// GetByUser lists a user's payments, newest first, with the campaign attached
func (r *PaymentRepository) GetByUser(ctx context.Context, userID int64, page, pageSize int) ([]*models.Payment, int64, error) {
	offset := (page - 1) * pageSize
	query := fmt.Sprintf(`
		SELECT %s,
			%s, %s,
			COUNT(*) OVER() AS total_count
		FROM payments
		JOIN donations ON donations.id = payments.donation_id
		WHERE payments.user_id = $1
		ORDER BY payments.created_at DESC
		LIMIT $2 OFFSET $3
	`, paymentColumns, donationColumns, totalRaisedExpr)

	rows, err := r.db.Query(ctx, query, userID, pageSize, offset)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error querying user payments")
		return nil, 0, fmt.Errorf("error querying user payments: %w", err)
	}
	defer rows.Close()

	payments := []*models.Payment{}
	var total int64
	for rows.Next() {
		p := &models.Payment{Donation: &models.Donation{}}
		err := rows.Scan(
			&p.ID,
			&p.PaymentReference,
			&p.DonationID,
			&p.UserID,
			&p.DonorName,
			&p.DonorEmail,
			&p.Amount,
			&p.Method,
			&p.Status,
			&p.TransactionID,
			&p.Notes,
			&p.PaidAt,
			&p.CreatedAt,
			&p.UpdatedAt,
			&p.Donation.ID,
			&p.Donation.DonationUUID,
			&p.Donation.Title,
			&p.Donation.Description,
			&p.Donation.TargetAmount,
			&p.Donation.MinimumAmount,
			&p.Donation.Category,
			&p.Donation.StartDate,
			&p.Donation.EndDate,
			&p.Donation.IsActive,
			&p.Donation.IsFeatured,
			&p.Donation.CreatedBy,
			&p.Donation.CreatedAt,
			&p.Donation.UpdatedAt,
			&p.Donation.TotalRaised,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning payment row: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

// UpdateStatus transitions a payment to the given status. Completing a
// payment also stamps paid_at and the gateway transaction ID.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, reference string, status models.PaymentStatus, transactionID *string) error {
	builder := r.sb.Update("payments").
		Set("payment_status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"payment_reference": reference})

	if status == models.PaymentCompleted {
		builder = builder.Set("paid_at", squirrel.Expr("NOW()"))
	}
	if transactionID != nil {
		builder = builder.Set("transaction_id", *transactionID)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update payment query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("reference", reference).Msg("Error updating payment status")
		return fmt.Errorf("error updating payment status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPaymentNotFound
	}

	return nil
}
