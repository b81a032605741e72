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

// totalRaisedExpr sums only completed payments so the displayed progress
// never counts pending or failed contributions
const totalRaisedExpr = `COALESCE((SELECT SUM(p.amount) FROM payments p
	WHERE p.donation_id = donations.id AND p.payment_status = 'completed'), 0) AS total_raised`

const donationColumns = `donations.id, donations.donation_uuid, donations.title, donations.description,
	donations.target_amount, donations.minimum_amount, donations.category,
	donations.start_date, donations.end_date, donations.is_active, donations.is_featured,
	donations.created_by, donations.created_at, donations.updated_at`

// DonationRepository handles database operations for donation campaigns
type DonationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDonationRepository creates a new DonationRepository
func NewDonationRepository(db *pgxpool.Pool) *DonationRepository {
	return &DonationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanDonation(row pgx.Row) (*models.Donation, error) {
	donation := &models.Donation{}
	err := row.Scan(
		&donation.ID,
		&donation.DonationUUID,
		&donation.Title,
		&donation.Description,
		&donation.TargetAmount,
		&donation.MinimumAmount,
		&donation.Category,
		&donation.StartDate,
		&donation.EndDate,
		&donation.IsActive,
		&donation.IsFeatured,
		&donation.CreatedBy,
		&donation.CreatedAt,
		&donation.UpdatedAt,
		&donation.TotalRaised,
	)
	if err != nil {
		return nil, err
	}
	return donation, nil
}

// Create inserts a new donation campaign and sets the generated ID on the model
func (r *DonationRepository) Create(ctx context.Context, donation *models.Donation) error {
	query := `
		INSERT INTO donations (
			donation_uuid, title, description, target_amount, minimum_amount,
			category, start_date, end_date, is_active, is_featured, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		donation.DonationUUID, donation.Title, donation.Description,
		donation.TargetAmount, donation.MinimumAmount, donation.Category,
		donation.StartDate, donation.EndDate, donation.IsActive, donation.IsFeatured,
		donation.CreatedBy,
	).Scan(&donation.ID, &donation.CreatedAt, &donation.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create donation query")
		return fmt.Errorf("error creating donation: %w", err)
	}

	return nil
}

// GetByID retrieves a donation by ID, including its raised total
func (r *DonationRepository) GetByID(ctx context.Context, id int64) (*models.Donation, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM donations WHERE id = $1`, donationColumns, totalRaisedExpr)

	donation, err := scanDonation(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDonationNotFound
		}
		logger.Error().Err(err).Int64("donationID", id).Msg("Error scanning donation row")
		return nil, fmt.Errorf("error getting donation by ID: %w", err)
	}

	return donation, nil
}

// GetByUUID retrieves a donation by its public UUID
func (r *DonationRepository) GetByUUID(ctx context.Context, donationUUID string) (*models.Donation, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM donations WHERE donation_uuid = $1`, donationColumns, totalRaisedExpr)

	donation, err := scanDonation(r.db.QueryRow(ctx, query, donationUUID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDonationNotFound
		}
		return nil, fmt.Errorf("error getting donation by UUID: %w", err)
	}

	return donation, nil
}

// GetAll retrieves donations with filtering and pagination. Featured
// campaigns sort ahead of the rest, newest first within each group.
func (r *DonationRepository) GetAll(ctx context.Context, search, category string, isActive *bool, page, pageSize int) ([]*models.Donation, int64, error) {
	base := r.sb.Select(donationColumns, totalRaisedExpr, "COUNT(*) OVER() AS total_count").
		From("donations")

	if search != "" {
		pattern := "%" + search + "%"
		base = base.Where(squirrel.Or{
			squirrel.ILike{"donations.title": pattern},
			squirrel.ILike{"donations.description": pattern},
		})
	}
	if category != "" {
		base = base.Where(squirrel.Eq{"donations.category": category})
	}
	if isActive != nil {
		base = base.Where(squirrel.Eq{"donations.is_active": *isActive})
	}

	offset := (page - 1) * pageSize
	sql, args, err := base.
		OrderBy("donations.is_featured DESC", "donations.created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list donations SQL")
		return nil, 0, fmt.Errorf("failed to build list donations query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list donations query")
		return nil, 0, fmt.Errorf("error querying donations: %w", err)
	}
	defer rows.Close()

	donations := []*models.Donation{}
	var total int64
	for rows.Next() {
		donation := &models.Donation{}
		err := rows.Scan(
			&donation.ID,
			&donation.DonationUUID,
			&donation.Title,
			&donation.Description,
			&donation.TargetAmount,
			&donation.MinimumAmount,
			&donation.Category,
			&donation.StartDate,
			&donation.EndDate,
			&donation.IsActive,
			&donation.IsFeatured,
			&donation.CreatedBy,
			&donation.CreatedAt,
			&donation.UpdatedAt,
			&donation.TotalRaised,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning donation row: %w", err)
		}
		donations = append(donations, donation)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return donations, total, nil
}

// GetFeatured retrieves active featured campaigns, newest first
func (r *DonationRepository) GetFeatured(ctx context.Context, limit int) ([]*models.Donation, error) {
	sql, args, err := r.sb.Select(donationColumns, totalRaisedExpr).
		From("donations").
		Where(squirrel.Eq{"donations.is_active": true}).
		Where(squirrel.Eq{"donations.is_featured": true}).
		OrderBy("donations.created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build featured donations query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying featured donations")
		return nil, fmt.Errorf("error querying featured donations: %w", err)
	}
	defer rows.Close()

	donations := []*models.Donation{}
	for rows.Next() {
		donation := &models.Donation{}
		err := rows.Scan(
			&donation.ID,
			&donation.DonationUUID,
			&donation.Title,
			&donation.Description,
			&donation.TargetAmount,
			&donation.MinimumAmount,
			&donation.Category,
			&donation.StartDate,
			&donation.EndDate,
			&donation.IsActive,
			&donation.IsFeatured,
			&donation.CreatedBy,
			&donation.CreatedAt,
			&donation.UpdatedAt,
			&donation.TotalRaised,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning donation row: %w", err)
		}
		donations = append(donations, donation)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return donations, nil
}

// Update updates an existing donation campaign
func (r *DonationRepository) Update(ctx context.Context, donation *models.Donation) error {
	sql, args, err := r.sb.Update("donations").
		Set("title", donation.Title).
		Set("description", donation.Description).
		Set("target_amount", donation.TargetAmount).
		Set("minimum_amount", donation.MinimumAmount).
		Set("category", donation.Category).
		Set("start_date", donation.StartDate).
		Set("end_date", donation.EndDate).
		Set("is_active", donation.IsActive).
		Set("is_featured", donation.IsFeatured).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": donation.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update donation query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("donationID", donation.ID).Msg("Error updating donation")
		return fmt.Errorf("error updating donation: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDonationNotFound
	}

	return nil
}

// Delete removes a donation campaign. Payment rows cascade at the schema level.
func (r *DonationRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM donations WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Int64("donationID", id).Msg("Error deleting donation")
		return fmt.Errorf("error deleting donation: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDonationNotFound
	}
	return nil
}

// GetStatistics aggregates campaign and fundraising totals
func (r *DonationRepository) GetStatistics(ctx context.Context) (totalDonations, activeDonations int64, totalRaised float64, completedPayments int64, raisedByCategory map[string]float64, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM donations),
			(SELECT COUNT(*) FROM donations WHERE is_active = TRUE),
			(SELECT COALESCE(SUM(amount), 0) FROM payments WHERE payment_status = 'completed'),
			(SELECT COUNT(*) FROM payments WHERE payment_status = 'completed')
	`).Scan(&totalDonations, &activeDonations, &totalRaised, &completedPayments)
	if err != nil {
		return 0, 0, 0, 0, nil, fmt.Errorf("error querying donation statistics: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT COALESCE(donations.category, 'other'), COALESCE(SUM(p.amount), 0)
		FROM donations
		LEFT JOIN payments p
			ON p.donation_id = donations.id AND p.payment_status = 'completed'
		GROUP BY COALESCE(donations.category, 'other')
		ORDER BY 1
	`)
	if err != nil {
		return 0, 0, 0, 0, nil, fmt.Errorf("error querying raised by category: %w", err)
	}
	defer rows.Close()

	raisedByCategory = map[string]float64{}
	for rows.Next() {
		var category string
		var raised float64
		if err := rows.Scan(&category, &raised); err != nil {
			return 0, 0, 0, 0, nil, fmt.Errorf("error scanning statistics row: %w", err)
		}
		raisedByCategory[category] = raised
	}
	if err := rows.Err(); err != nil {
		return 0, 0, 0, 0, nil, err
	}

	return totalDonations, activeDonations, totalRaised, completedPayments, raisedByCategory, nil
}
