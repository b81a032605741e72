package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/winrydberg/alumni-backend/internal/app/models"
	"github.com/winrydberg/alumni-backend/internal/pkg/apperrors"
	"github.com/winrydberg/alumni-backend/internal/pkg/logger"
)

const membershipColumns = `cm.id, cm.user_id, cm.chapter_id, cm.is_primary,
	cm.membership_status, cm.joined_at, cm.created_at, cm.updated_at`

// MembershipRepository handles database operations for chapter memberships
type MembershipRepository struct {
	db *pgxpool.Pool
}

// NewMembershipRepository creates a new MembershipRepository
func NewMembershipRepository(db *pgxpool.Pool) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func scanMembership(row pgx.Row) (*models.ChapterMembership, error) {
	m := &models.ChapterMembership{}
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.ChapterID,
		&m.IsPrimary,
		&m.Status,
		&m.JoinedAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// GetPrimaryActive retrieves the user's primary active membership with its
// chapter. Returns apperrors.ErrNotAMember when the user has none.
func (r *MembershipRepository) GetPrimaryActive(ctx context.Context, userID int64) (*models.ChapterMembership, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM chapter_memberships cm
		JOIN chapters ON chapters.id = cm.chapter_id
		WHERE cm.user_id = $1 AND cm.is_primary = TRUE AND cm.membership_status = 'active'
	`, membershipColumns, chapterColumns, memberCountExpr)

	m := &models.ChapterMembership{Chapter: &models.Chapter{}}
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&m.ID,
		&m.UserID,
		&m.ChapterID,
		&m.IsPrimary,
		&m.Status,
		&m.JoinedAt,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.Chapter.ID,
		&m.Chapter.ChapterUUID,
		&m.Chapter.Name,
		&m.Chapter.Code,
		&m.Chapter.Description,
		&m.Chapter.Type,
		&m.Chapter.CountryCode,
		&m.Chapter.CountryName,
		&m.Chapter.StateProvince,
		&m.Chapter.City,
		&m.Chapter.ContactEmail,
		&m.Chapter.ContactPhone,
		&m.Chapter.IsActive,
		&m.Chapter.CreatedAt,
		&m.Chapter.UpdatedAt,
		&m.Chapter.MemberCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotAMember
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning primary membership")
		return nil, fmt.Errorf("error getting primary membership: %w", err)
	}

	return m, nil
}

// HasPrimaryActive checks whether the user currently has a primary active membership
func (r *MembershipRepository) HasPrimaryActive(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM chapter_memberships
			WHERE user_id = $1 AND is_primary = TRUE AND membership_status = 'active'
		)`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking primary membership: %w", err)
	}
	return exists, nil
}

// FindByUserAndChapter retrieves the membership row for a user-chapter pair
// regardless of its status. Returns nil without error when none exists.
func (r *MembershipRepository) FindByUserAndChapter(ctx context.Context, userID, chapterID int64) (*models.ChapterMembership, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM chapter_memberships cm
		WHERE cm.user_id = $1 AND cm.chapter_id = $2
	`, membershipColumns)

	m, err := scanMembership(r.db.QueryRow(ctx, query, userID, chapterID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting membership: %w", err)
	}

	return m, nil
}

// GetAllByUser lists every membership row of a user with chapters attached
func (r *MembershipRepository) GetAllByUser(ctx context.Context, userID int64) ([]*models.ChapterMembership, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM chapter_memberships cm
		JOIN chapters ON chapters.id = cm.chapter_id
		WHERE cm.user_id = $1
		ORDER BY cm.joined_at DESC
	`, membershipColumns, chapterColumns, memberCountExpr)

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying user memberships: %w", err)
	}
	defer rows.Close()

	memberships := []*models.ChapterMembership{}
	for rows.Next() {
		m := &models.ChapterMembership{Chapter: &models.Chapter{}}
		err := rows.Scan(
			&m.ID,
			&m.UserID,
			&m.ChapterID,
			&m.IsPrimary,
			&m.Status,
			&m.JoinedAt,
			&m.CreatedAt,
			&m.UpdatedAt,
			&m.Chapter.ID,
			&m.Chapter.ChapterUUID,
			&m.Chapter.Name,
			&m.Chapter.Code,
			&m.Chapter.Description,
			&m.Chapter.Type,
			&m.Chapter.CountryCode,
			&m.Chapter.CountryName,
			&m.Chapter.StateProvince,
			&m.Chapter.City,
			&m.Chapter.ContactEmail,
			&m.Chapter.ContactPhone,
			&m.Chapter.IsActive,
			&m.Chapter.CreatedAt,
			&m.Chapter.UpdatedAt,
			&m.Chapter.MemberCount,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning membership row: %w", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return memberships, nil
}

// DemoteAllPrimariesTx clears the primary flag and deactivates every
// membership of the user, inside an existing transaction. This is the first
// half of a primary chapter change.
func (r *MembershipRepository) DemoteAllPrimariesTx(ctx context.Context, tx pgx.Tx, userID int64) error {
	_, err := tx.Exec(ctx, `
		UPDATE chapter_memberships
		SET is_primary = FALSE, membership_status = 'inactive', updated_at = NOW()
		WHERE user_id = $1 AND is_primary = TRUE`, userID)
	if err != nil {
		return fmt.Errorf("error demoting primary memberships: %w", err)
	}
	return nil
}

// InsertTx inserts a new membership row inside an existing transaction
func (r *MembershipRepository) InsertTx(ctx context.Context, tx pgx.Tx, m *models.ChapterMembership) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO chapter_memberships (user_id, chapter_id, is_primary, membership_status, joined_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, joined_at, created_at, updated_at`,
		m.UserID, m.ChapterID, m.IsPrimary, m.Status,
	).Scan(&m.ID, &m.JoinedAt, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrAlreadyMember
		}
		return fmt.Errorf("error inserting membership: %w", err)
	}
	return nil
}

// ReactivateTx reactivates an existing membership row as the primary one,
// refreshing its join timestamp, inside an existing transaction
func (r *MembershipRepository) ReactivateTx(ctx context.Context, tx pgx.Tx, membershipID int64) error {
	cmdTag, err := tx.Exec(ctx, `
		UPDATE chapter_memberships
		SET is_primary = TRUE, membership_status = 'active', joined_at = NOW(), updated_at = NOW()
		WHERE id = $1`, membershipID)
	if err != nil {
		return fmt.Errorf("error reactivating membership: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotAMember
	}
	return nil
}

// Deactivate marks the membership of a user in a chapter as inactive and
// non-primary. The row is kept so the membership history survives.
func (r *MembershipRepository) Deactivate(ctx context.Context, userID, chapterID int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE chapter_memberships
		SET is_primary = FALSE, membership_status = 'inactive', updated_at = NOW()
		WHERE user_id = $1 AND chapter_id = $2 AND membership_status = 'active'`,
		userID, chapterID)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Int64("chapterID", chapterID).Msg("Error deactivating membership")
		return fmt.Errorf("error deactivating membership: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotAMember
	}
	return nil
}
