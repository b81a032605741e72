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

const configurationColumns = `id, country_code, country_name, chapter_type,
	allow_multiple_chapters, is_active, notes, created_at, updated_at`

// CountryConfigurationRepository handles database operations for
// country chapter configurations
type CountryConfigurationRepository struct {
	db *pgxpool.Pool
}

// NewCountryConfigurationRepository creates a new CountryConfigurationRepository
func NewCountryConfigurationRepository(db *pgxpool.Pool) *CountryConfigurationRepository {
	return &CountryConfigurationRepository{db: db}
}

func scanConfiguration(row pgx.Row) (*models.CountryChapterConfiguration, error) {
	cfg := &models.CountryChapterConfiguration{}
	err := row.Scan(
		&cfg.ID,
		&cfg.CountryCode,
		&cfg.CountryName,
		&cfg.ChapterType,
		&cfg.AllowMultipleChapters,
		&cfg.IsActive,
		&cfg.Notes,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetByCountryCode retrieves the active configuration for a country
func (r *CountryConfigurationRepository) GetByCountryCode(ctx context.Context, countryCode string) (*models.CountryChapterConfiguration, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM country_chapter_configurations
		WHERE country_code = $1 AND is_active = TRUE
	`, configurationColumns)

	cfg, err := scanConfiguration(r.db.QueryRow(ctx, query, countryCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrConfigurationNotFound
		}
		logger.Error().Err(err).Str("countryCode", countryCode).Msg("Error scanning configuration row")
		return nil, fmt.Errorf("error getting configuration: %w", err)
	}

	return cfg, nil
}

// GetByID retrieves a configuration by ID
func (r *CountryConfigurationRepository) GetByID(ctx context.Context, id int64) (*models.CountryChapterConfiguration, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM country_chapter_configurations WHERE id = $1
	`, configurationColumns)

	cfg, err := scanConfiguration(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrConfigurationNotFound
		}
		return nil, fmt.Errorf("error getting configuration by ID: %w", err)
	}

	return cfg, nil
}

// GetAll retrieves every configuration ordered by country name
func (r *CountryConfigurationRepository) GetAll(ctx context.Context) ([]*models.CountryChapterConfiguration, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM country_chapter_configurations ORDER BY country_name ASC
	`, configurationColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying configurations")
		return nil, fmt.Errorf("error querying configurations: %w", err)
	}
	defer rows.Close()

	configs := []*models.CountryChapterConfiguration{}
	for rows.Next() {
		cfg := &models.CountryChapterConfiguration{}
		err := rows.Scan(
			&cfg.ID,
			&cfg.CountryCode,
			&cfg.CountryName,
			&cfg.ChapterType,
			&cfg.AllowMultipleChapters,
			&cfg.IsActive,
			&cfg.Notes,
			&cfg.CreatedAt,
			&cfg.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning configuration row: %w", err)
		}
		configs = append(configs, cfg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return configs, nil
}

// Upsert creates the configuration for a country or replaces the existing
// one, keyed by country code
func (r *CountryConfigurationRepository) Upsert(ctx context.Context, cfg *models.CountryChapterConfiguration) error {
	query := fmt.Sprintf(`
		INSERT INTO country_chapter_configurations (
			country_code, country_name, chapter_type, allow_multiple_chapters, is_active, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (country_code) DO UPDATE SET
			country_name = EXCLUDED.country_name,
			chapter_type = EXCLUDED.chapter_type,
			allow_multiple_chapters = EXCLUDED.allow_multiple_chapters,
			is_active = EXCLUDED.is_active,
			notes = EXCLUDED.notes,
			updated_at = NOW()
		RETURNING %s
	`, configurationColumns)

	updated, err := scanConfiguration(r.db.QueryRow(ctx, query,
		cfg.CountryCode, cfg.CountryName, cfg.ChapterType,
		cfg.AllowMultipleChapters, cfg.IsActive, cfg.Notes))
	if err != nil {
		logger.Error().Err(err).Str("countryCode", cfg.CountryCode).Msg("Error upserting configuration")
		return fmt.Errorf("error upserting configuration: %w", err)
	}

	*cfg = *updated
	return nil
}

// Delete removes a configuration by ID
func (r *CountryConfigurationRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM country_chapter_configurations WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Int64("configurationID", id).Msg("Error deleting configuration")
		return fmt.Errorf("error deleting configuration: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrConfigurationNotFound
	}
	return nil
}
