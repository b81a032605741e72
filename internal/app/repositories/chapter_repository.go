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

// memberCountExpr counts only active memberships, so counts reflect the
// members a chapter actually has rather than historical rows
const memberCountExpr = `(SELECT COUNT(*) FROM chapter_memberships cm
	WHERE cm.chapter_id = chapters.id AND cm.membership_status = 'active') AS member_count`

const chapterColumns = `chapters.id, chapters.chapter_uuid, chapters.name, chapters.code,
	chapters.description, chapters.type, chapters.country_code, chapters.country_name,
	chapters.state_province, chapters.city, chapters.contact_email, chapters.contact_phone,
	chapters.is_active, chapters.created_at, chapters.updated_at`

// ChapterRepository handles database operations for chapters
type ChapterRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewChapterRepository creates a new ChapterRepository
func NewChapterRepository(db *pgxpool.Pool) *ChapterRepository {
	return &ChapterRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanChapter(row pgx.Row) (*models.Chapter, error) {
	chapter := &models.Chapter{}
	err := row.Scan(
		&chapter.ID,
		&chapter.ChapterUUID,
		&chapter.Name,
		&chapter.Code,
		&chapter.Description,
		&chapter.Type,
		&chapter.CountryCode,
		&chapter.CountryName,
		&chapter.StateProvince,
		&chapter.City,
		&chapter.ContactEmail,
		&chapter.ContactPhone,
		&chapter.IsActive,
		&chapter.CreatedAt,
		&chapter.UpdatedAt,
		&chapter.MemberCount,
	)
	if err != nil {
		return nil, err
	}
	return chapter, nil
}

// Create inserts a new chapter and sets the generated ID on the model
func (r *ChapterRepository) Create(ctx context.Context, chapter *models.Chapter) error {
	query := `
		INSERT INTO chapters (
			chapter_uuid, name, code, description, type, country_code, country_name,
			state_province, city, contact_email, contact_phone, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		chapter.ChapterUUID, chapter.Name, chapter.Code, chapter.Description,
		chapter.Type, chapter.CountryCode, chapter.CountryName,
		chapter.StateProvince, chapter.City, chapter.ContactEmail, chapter.ContactPhone,
		chapter.IsActive,
	).Scan(&chapter.ID, &chapter.CreatedAt, &chapter.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrChapterCodeExists
		}
		logger.Error().Err(err).Msg("Error executing create chapter query")
		return fmt.Errorf("error creating chapter: %w", err)
	}

	return nil
}

// GetByID retrieves a chapter by ID, including its live member count
func (r *ChapterRepository) GetByID(ctx context.Context, id int64) (*models.Chapter, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM chapters WHERE id = $1`, chapterColumns, memberCountExpr)

	chapter, err := scanChapter(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrChapterNotFound
		}
		logger.Error().Err(err).Int64("chapterID", id).Msg("Error scanning chapter row")
		return nil, fmt.Errorf("error getting chapter by ID: %w", err)
	}

	return chapter, nil
}

// GetByUUID retrieves a chapter by its public UUID
func (r *ChapterRepository) GetByUUID(ctx context.Context, chapterUUID string) (*models.Chapter, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM chapters WHERE chapter_uuid = $1`, chapterColumns, memberCountExpr)

	chapter, err := scanChapter(r.db.QueryRow(ctx, query, chapterUUID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrChapterNotFound
		}
		return nil, fmt.Errorf("error getting chapter by UUID: %w", err)
	}

	return chapter, nil
}

// ExistsByCode checks if a chapter code is taken, optionally excluding one ID
func (r *ChapterRepository) ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM chapters WHERE LOWER(code) = LOWER($1) AND id != $2)`,
		code, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking chapter code: %w", err)
	}
	return exists, nil
}

// ExistsByCountryCode checks if any chapter references the given country
func (r *ChapterRepository) ExistsByCountryCode(ctx context.Context, countryCode string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM chapters WHERE country_code = $1)`, countryCode).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking chapters for country: %w", err)
	}
	return exists, nil
}

// GetAll retrieves chapters with filtering and pagination
func (r *ChapterRepository) GetAll(ctx context.Context, search, countryCode, chapterType string, isActive *bool, page, pageSize int) ([]*models.Chapter, int64, error) {
	base := r.sb.Select(chapterColumns, memberCountExpr, "COUNT(*) OVER() AS total_count").
		From("chapters")

	if search != "" {
		pattern := "%" + search + "%"
		base = base.Where(squirrel.Or{
			squirrel.ILike{"chapters.name": pattern},
			squirrel.ILike{"chapters.code": pattern},
			squirrel.ILike{"chapters.country_name": pattern},
			squirrel.ILike{"chapters.city": pattern},
		})
	}
	if countryCode != "" {
		base = base.Where(squirrel.Eq{"chapters.country_code": countryCode})
	}
	if chapterType != "" {
		base = base.Where(squirrel.Eq{"chapters.type": chapterType})
	}
	if isActive != nil {
		base = base.Where(squirrel.Eq{"chapters.is_active": *isActive})
	}

	offset := (page - 1) * pageSize
	sql, args, err := base.
		OrderBy("chapters.name ASC").
		Limit(uint64(pageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list chapters SQL")
		return nil, 0, fmt.Errorf("failed to build list chapters query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list chapters query")
		return nil, 0, fmt.Errorf("error querying chapters: %w", err)
	}
	defer rows.Close()

	chapters := []*models.Chapter{}
	var total int64
	for rows.Next() {
		chapter := &models.Chapter{}
		err := rows.Scan(
			&chapter.ID,
			&chapter.ChapterUUID,
			&chapter.Name,
			&chapter.Code,
			&chapter.Description,
			&chapter.Type,
			&chapter.CountryCode,
			&chapter.CountryName,
			&chapter.StateProvince,
			&chapter.City,
			&chapter.ContactEmail,
			&chapter.ContactPhone,
			&chapter.IsActive,
			&chapter.CreatedAt,
			&chapter.UpdatedAt,
			&chapter.MemberCount,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning chapter row: %w", err)
		}
		chapters = append(chapters, chapter)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return chapters, total, nil
}

// GetActiveByCountry retrieves active chapters for a country, ordered by ID
// so callers can pick a deterministic first candidate. An optional type and
// city narrow the result.
func (r *ChapterRepository) GetActiveByCountry(ctx context.Context, countryCode string, chapterType models.ChapterType, city string) ([]*models.Chapter, error) {
	base := r.sb.Select(chapterColumns, memberCountExpr).
		From("chapters").
		Where(squirrel.Eq{"chapters.country_code": countryCode}).
		Where(squirrel.Eq{"chapters.is_active": true})

	if chapterType != "" {
		base = base.Where(squirrel.Eq{"chapters.type": chapterType})
	}
	if city != "" {
		base = base.Where(squirrel.Expr("LOWER(chapters.city) = LOWER(?)", city))
	}

	sql, args, err := base.OrderBy("chapters.id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build active chapters query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("countryCode", countryCode).Msg("Error querying active chapters")
		return nil, fmt.Errorf("error querying active chapters: %w", err)
	}
	defer rows.Close()

	chapters := []*models.Chapter{}
	for rows.Next() {
		chapter := &models.Chapter{}
		err := rows.Scan(
			&chapter.ID,
			&chapter.ChapterUUID,
			&chapter.Name,
			&chapter.Code,
			&chapter.Description,
			&chapter.Type,
			&chapter.CountryCode,
			&chapter.CountryName,
			&chapter.StateProvince,
			&chapter.City,
			&chapter.ContactEmail,
			&chapter.ContactPhone,
			&chapter.IsActive,
			&chapter.CreatedAt,
			&chapter.UpdatedAt,
			&chapter.MemberCount,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning chapter row: %w", err)
		}
		chapters = append(chapters, chapter)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return chapters, nil
}

// GetAvailableByResidence retrieves the active chapters a resident of the
// country may join. With a city given, country-wide chapters stay visible
// while city chapters are narrowed to that city.
func (r *ChapterRepository) GetAvailableByResidence(ctx context.Context, countryCode, city string) ([]*models.Chapter, error) {
	base := r.sb.Select(chapterColumns, memberCountExpr).
		From("chapters").
		Where(squirrel.Eq{"chapters.country_code": countryCode}).
		Where(squirrel.Eq{"chapters.is_active": true})

	if city != "" {
		base = base.Where(squirrel.Or{
			squirrel.Eq{"chapters.type": models.ChapterTypeCountry},
			squirrel.And{
				squirrel.Eq{"chapters.type": models.ChapterTypeCity},
				squirrel.Expr("LOWER(chapters.city) = LOWER(?)", city),
			},
		})
	}

	sql, args, err := base.OrderBy("chapters.id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build available chapters query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("countryCode", countryCode).Msg("Error querying available chapters")
		return nil, fmt.Errorf("error querying available chapters: %w", err)
	}
	defer rows.Close()

	chapters := []*models.Chapter{}
	for rows.Next() {
		chapter := &models.Chapter{}
		err := rows.Scan(
			&chapter.ID,
			&chapter.ChapterUUID,
			&chapter.Name,
			&chapter.Code,
			&chapter.Description,
			&chapter.Type,
			&chapter.CountryCode,
			&chapter.CountryName,
			&chapter.StateProvince,
			&chapter.City,
			&chapter.ContactEmail,
			&chapter.ContactPhone,
			&chapter.IsActive,
			&chapter.CreatedAt,
			&chapter.UpdatedAt,
			&chapter.MemberCount,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning chapter row: %w", err)
		}
		chapters = append(chapters, chapter)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return chapters, nil
}

// Update updates an existing chapter
func (r *ChapterRepository) Update(ctx context.Context, chapter *models.Chapter) error {
	sql, args, err := r.sb.Update("chapters").
		Set("name", chapter.Name).
		Set("code", chapter.Code).
		Set("description", chapter.Description).
		Set("type", chapter.Type).
		Set("country_code", chapter.CountryCode).
		Set("country_name", chapter.CountryName).
		Set("state_province", chapter.StateProvince).
		Set("city", chapter.City).
		Set("contact_email", chapter.ContactEmail).
		Set("contact_phone", chapter.ContactPhone).
		Set("is_active", chapter.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": chapter.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update chapter query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrChapterCodeExists
		}
		logger.Error().Err(err).Int64("chapterID", chapter.ID).Msg("Error updating chapter")
		return fmt.Errorf("error updating chapter: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrChapterNotFound
	}

	return nil
}

// HasActiveMembers checks whether any active membership references the chapter
func (r *ChapterRepository) HasActiveMembers(ctx context.Context, chapterID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM chapter_memberships
			WHERE chapter_id = $1 AND membership_status = 'active'
		)`, chapterID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking chapter members: %w", err)
	}
	return exists, nil
}

// Delete removes a chapter. Membership rows cascade at the schema level;
// the service refuses deletion while active members remain.
func (r *ChapterRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM chapters WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Int64("chapterID", id).Msg("Error deleting chapter")
		return fmt.Errorf("error deleting chapter: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrChapterNotFound
	}
	return nil
}

// GetMembers lists memberships of a chapter together with the member accounts
func (r *ChapterRepository) GetMembers(ctx context.Context, chapterID int64, page, pageSize int) ([]*models.ChapterMembership, int64, error) {
	offset := (page - 1) * pageSize
	query := fmt.Sprintf(`
		SELECT cm.id, cm.user_id, cm.chapter_id, cm.is_primary, cm.membership_status,
			cm.joined_at, cm.created_at, cm.updated_at,
			%s,
			COUNT(*) OVER() AS total_count
		FROM chapter_memberships cm
		JOIN users ON users.id = cm.user_id
		WHERE cm.chapter_id = $1
		ORDER BY cm.joined_at DESC
		LIMIT $2 OFFSET $3
	`, userColumns)

	rows, err := r.db.Query(ctx, query, chapterID, pageSize, offset)
	if err != nil {
		logger.Error().Err(err).Int64("chapterID", chapterID).Msg("Error querying chapter members")
		return nil, 0, fmt.Errorf("error querying chapter members: %w", err)
	}
	defer rows.Close()

	memberships := []*models.ChapterMembership{}
	var total int64
	for rows.Next() {
		m := &models.ChapterMembership{User: &models.User{}}
		err := rows.Scan(
			&m.ID,
			&m.UserID,
			&m.ChapterID,
			&m.IsPrimary,
			&m.Status,
			&m.JoinedAt,
			&m.CreatedAt,
			&m.UpdatedAt,
			&m.User.ID,
			&m.User.Email,
			&m.User.Password,
			&m.User.Title,
			&m.User.FirstName,
			&m.User.LastName,
			&m.User.OtherNames,
			&m.User.PhoneNumber,
			&m.User.Nationality,
			&m.User.CountryOfResidence,
			&m.User.CityOfResidence,
			&m.User.Bio,
			&m.User.HallOfResidence,
			&m.User.RoleType,
			&m.User.IsVerified,
			&m.User.IsApproved,
			&m.User.IsActive,
			&m.User.ApprovedAt,
			&m.User.RejectedAt,
			&m.User.RejectionReason,
			&m.User.LastLoginAt,
			&m.User.CreatedAt,
			&m.User.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning member row: %w", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return memberships, total, nil
}

// GetStatistics aggregates chapter and membership counts
func (r *ChapterRepository) GetStatistics(ctx context.Context) (totalChapters, activeChapters, totalMemberships int64, membersByChapter map[string]int64, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM chapters),
			(SELECT COUNT(*) FROM chapters WHERE is_active = TRUE),
			(SELECT COUNT(*) FROM chapter_memberships WHERE membership_status = 'active')
	`).Scan(&totalChapters, &activeChapters, &totalMemberships)
	if err != nil {
		return 0, 0, 0, nil, fmt.Errorf("error querying chapter statistics: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT chapters.name, COUNT(cm.id)
		FROM chapters
		LEFT JOIN chapter_memberships cm
			ON cm.chapter_id = chapters.id AND cm.membership_status = 'active'
		GROUP BY chapters.name
		ORDER BY chapters.name
	`)
	if err != nil {
		return 0, 0, 0, nil, fmt.Errorf("error querying members by chapter: %w", err)
	}
	defer rows.Close()

	membersByChapter = map[string]int64{}
	for rows.Next() {
		var name string
		var count int64
		if err := rows.Scan(&name, &count); err != nil {
			return 0, 0, 0, nil, fmt.Errorf("error scanning statistics row: %w", err)
		}
		membersByChapter[name] = count
	}
	if err := rows.Err(); err != nil {
		return 0, 0, 0, nil, err
	}

	return totalChapters, activeChapters, totalMemberships, membersByChapter, nil
}
