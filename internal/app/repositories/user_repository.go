package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/winrydberg/alumni-backend/internal/app/models"
	"github.com/winrydberg/alumni-backend/internal/pkg/apperrors"
	"github.com/winrydberg/alumni-backend/internal/pkg/logger"
)

const userColumns = `id, email, password, title, first_name, last_name, other_names,
	phone_number, nationality, country_of_residence, city_of_residence, bio,
	hall_of_residence, role_type, is_verified, is_approved, is_active,
	approved_at, rejected_at, rejection_reason, last_login_at, created_at, updated_at`

// UserRepository handles database operations for user accounts
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.Title,
		&user.FirstName,
		&user.LastName,
		&user.OtherNames,
		&user.PhoneNumber,
		&user.Nationality,
		&user.CountryOfResidence,
		&user.CityOfResidence,
		&user.Bio,
		&user.HallOfResidence,
		&user.RoleType,
		&user.IsVerified,
		&user.IsApproved,
		&user.IsActive,
		&user.ApprovedAt,
		&user.RejectedAt,
		&user.RejectionReason,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create inserts a new user and sets the generated ID on the model
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (
			email, password, title, first_name, last_name, other_names,
			phone_number, nationality, country_of_residence, city_of_residence,
			bio, hall_of_residence, role_type, is_verified, is_approved, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		user.Email, user.Password, user.Title, user.FirstName, user.LastName, user.OtherNames,
		user.PhoneNumber, user.Nationality, user.CountryOfResidence, user.CityOfResidence,
		user.Bio, user.HallOfResidence, user.RoleType, user.IsVerified, user.IsApproved, user.IsActive,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			if strings.Contains(duplicateConstraint(err), "phone") {
				return apperrors.ErrPhoneAlreadyExists
			}
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create user query")
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", id).Msg("Error scanning user row")
		return nil, fmt.Errorf("error getting user by ID: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email (case-insensitive)
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE LOWER(email) = LOWER($1)`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error scanning user row by email")
		return nil, fmt.Errorf("error getting user by email: %w", err)
	}

	return user, nil
}

// ExistsByEmail checks if a user exists with the given email
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking user existence: %w", err)
	}
	return exists, nil
}

// GetAll retrieves users with filtering and pagination
func (r *UserRepository) GetAll(ctx context.Context, search string, isApproved, isActive *bool, page, pageSize int) ([]*models.User, int64, error) {
	base := r.sb.Select(userColumns, "COUNT(*) OVER() AS total_count").From("users")

	if search != "" {
		pattern := "%" + search + "%"
		base = base.Where(squirrel.Or{
			squirrel.ILike{"email": pattern},
			squirrel.ILike{"first_name": pattern},
			squirrel.ILike{"last_name": pattern},
			squirrel.ILike{"phone_number": pattern},
		})
	}
	if isApproved != nil {
		base = base.Where(squirrel.Eq{"is_approved": *isApproved})
	}
	if isActive != nil {
		base = base.Where(squirrel.Eq{"is_active": *isActive})
	}

	offset := (page - 1) * pageSize
	sql, args, err := base.
		OrderBy("created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list users SQL")
		return nil, 0, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list users query")
		return nil, 0, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	var total int64
	for rows.Next() {
		user := &models.User{}
		err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.Password,
			&user.Title,
			&user.FirstName,
			&user.LastName,
			&user.OtherNames,
			&user.PhoneNumber,
			&user.Nationality,
			&user.CountryOfResidence,
			&user.CityOfResidence,
			&user.Bio,
			&user.HallOfResidence,
			&user.RoleType,
			&user.IsVerified,
			&user.IsApproved,
			&user.IsActive,
			&user.ApprovedAt,
			&user.RejectedAt,
			&user.RejectionReason,
			&user.LastLoginAt,
			&user.CreatedAt,
			&user.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// GetPendingApproval retrieves verified accounts awaiting approval
func (r *UserRepository) GetPendingApproval(ctx context.Context, page, pageSize int) ([]*models.User, int64, error) {
	pending := true
	users, total, err := r.getByApprovalState(ctx, &pending, page, pageSize)
	return users, total, err
}

func (r *UserRepository) getByApprovalState(ctx context.Context, pending *bool, page, pageSize int) ([]*models.User, int64, error) {
	base := r.sb.Select(userColumns, "COUNT(*) OVER() AS total_count").
		From("users").
		Where(squirrel.Eq{"role_type": models.RoleAlumni})

	if pending != nil && *pending {
		base = base.Where(squirrel.Eq{"is_approved": false}).
			Where(squirrel.Eq{"rejected_at": nil})
	}

	offset := (page - 1) * pageSize
	sql, args, err := base.
		OrderBy("created_at ASC").
		Limit(uint64(pageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build pending users query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying pending users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	var total int64
	for rows.Next() {
		user := &models.User{}
		err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.Password,
			&user.Title,
			&user.FirstName,
			&user.LastName,
			&user.OtherNames,
			&user.PhoneNumber,
			&user.Nationality,
			&user.CountryOfResidence,
			&user.CityOfResidence,
			&user.Bio,
			&user.HallOfResidence,
			&user.RoleType,
			&user.IsVerified,
			&user.IsApproved,
			&user.IsActive,
			&user.ApprovedAt,
			&user.RejectedAt,
			&user.RejectionReason,
			&user.LastLoginAt,
			&user.CreatedAt,
			&user.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// UpdateProfile updates the mutable profile fields of a user
func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	sql, args, err := r.sb.Update("users").
		Set("title", user.Title).
		Set("first_name", user.FirstName).
		Set("last_name", user.LastName).
		Set("other_names", user.OtherNames).
		Set("phone_number", user.PhoneNumber).
		Set("nationality", user.Nationality).
		Set("country_of_residence", user.CountryOfResidence).
		Set("city_of_residence", user.CityOfResidence).
		Set("hall_of_residence", user.HallOfResidence).
		Set("bio", user.Bio).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update profile query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrPhoneAlreadyExists
		}
		logger.Error().Err(err).Int64("userID", user.ID).Msg("Error updating user profile")
		return fmt.Errorf("error updating user profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateLastLogin records a successful login timestamp
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET last_login_at = NOW() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("error updating last login: %w", err)
	}
	return nil
}

// SetVerified marks the user's email address as verified
func (r *UserRepository) SetVerified(ctx context.Context, userID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE users SET is_verified = TRUE, updated_at = NOW() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("error marking user verified: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// ApproveTx approves a user inside an existing transaction. A non-nil
// passwordHash also sets the account's generated password.
func (r *UserRepository) ApproveTx(ctx context.Context, tx pgx.Tx, userID int64, passwordHash *string, approvedAt time.Time) error {
	var cmdTag pgconn.CommandTag
	var err error
	if passwordHash != nil {
		cmdTag, err = tx.Exec(ctx, `
			UPDATE users
			SET is_approved = TRUE, is_active = TRUE, approved_at = $1,
				rejected_at = NULL, rejection_reason = NULL,
				password = $2, updated_at = NOW()
			WHERE id = $3`, approvedAt, *passwordHash, userID)
	} else {
		cmdTag, err = tx.Exec(ctx, `
			UPDATE users
			SET is_approved = TRUE, is_active = TRUE, approved_at = $1,
				rejected_at = NULL, rejection_reason = NULL,
				updated_at = NOW()
			WHERE id = $2`, approvedAt, userID)
	}
	if err != nil {
		return fmt.Errorf("error approving user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Reject marks a pending user as rejected with a reason
func (r *UserRepository) Reject(ctx context.Context, userID int64, reason string, rejectedAt time.Time) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE users
		SET is_active = FALSE, rejection_reason = $1, rejected_at = $2, updated_at = NOW()
		WHERE id = $3`, reason, rejectedAt, userID)
	if err != nil {
		return fmt.Errorf("error rejecting user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// SetActive toggles an account's active flag
func (r *UserRepository) SetActive(ctx context.Context, userID int64, active bool) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE users SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, userID)
	if err != nil {
		return fmt.Errorf("error updating account state: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
