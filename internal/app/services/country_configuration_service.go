package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/winrydberg/alumni-backend/internal/app/models"
	"github.com/winrydberg/alumni-backend/internal/app/models/dto"
	"github.com/winrydberg/alumni-backend/internal/pkg/apperrors"
)

// CountryConfigurationService manages per-country chapter policy records
type CountryConfigurationService interface {
	GetConfigurations(ctx context.Context) ([]*models.CountryChapterConfiguration, error)
	GetConfigurationByID(ctx context.Context, id int64) (*models.CountryChapterConfiguration, error)
	GetConfigurationByCountry(ctx context.Context, countryCode string) (*models.CountryChapterConfiguration, error)
	UpsertConfiguration(ctx context.Context, req *dto.UpsertCountryConfigurationRequest) (*models.CountryChapterConfiguration, error)
	DeleteConfiguration(ctx context.Context, id int64) error
}

// countryConfigurationServiceImpl implements CountryConfigurationService
type countryConfigurationServiceImpl struct {
	configStore  ConfigurationStore
	chapterStore ChapterStore
	logger       zerolog.Logger
}

// NewCountryConfigurationService creates a new configuration service instance
func NewCountryConfigurationService(configStore ConfigurationStore, chapterStore ChapterStore, logger zerolog.Logger) CountryConfigurationService {
	return &countryConfigurationServiceImpl{
		configStore:  configStore,
		chapterStore: chapterStore,
		logger:       logger,
	}
}

// GetConfigurations lists every country configuration
func (s *countryConfigurationServiceImpl) GetConfigurations(ctx context.Context) ([]*models.CountryChapterConfiguration, error) {
	return s.configStore.GetAll(ctx)
}

// GetConfigurationByID retrieves a configuration by ID
func (s *countryConfigurationServiceImpl) GetConfigurationByID(ctx context.Context, id int64) (*models.CountryChapterConfiguration, error) {
	return s.configStore.GetByID(ctx, id)
}

// GetConfigurationByCountry retrieves the active configuration for a country code
func (s *countryConfigurationServiceImpl) GetConfigurationByCountry(ctx context.Context, countryCode string) (*models.CountryChapterConfiguration, error) {
	code := strings.ToUpper(strings.TrimSpace(countryCode))
	if len(code) != 2 {
		return nil, apperrors.NewValidationError("countryCode", "must be a two-letter ISO country code")
	}
	return s.configStore.GetByCountryCode(ctx, code)
}

// UpsertConfiguration creates the configuration for a country or replaces
// the existing one, keyed by country code
func (s *countryConfigurationServiceImpl) UpsertConfiguration(ctx context.Context, req *dto.UpsertCountryConfigurationRequest) (*models.CountryChapterConfiguration, error) {
	if !req.ChapterType.Valid() {
		return nil, apperrors.NewValidationError("chapterType", "must be 'country' or 'city'")
	}
	code := strings.ToUpper(strings.TrimSpace(req.CountryCode))
	if len(code) != 2 {
		return nil, apperrors.NewValidationError("countryCode", "must be a two-letter ISO country code")
	}
	if strings.TrimSpace(req.CountryName) == "" {
		return nil, apperrors.NewValidationError("countryName", "cannot be empty")
	}

	cfg := &models.CountryChapterConfiguration{
		CountryCode:           code,
		CountryName:           strings.TrimSpace(req.CountryName),
		ChapterType:           req.ChapterType,
		AllowMultipleChapters: req.AllowMultipleChapters,
		IsActive:              true,
		Notes:                 req.Notes,
	}
	if req.IsActive != nil {
		cfg.IsActive = *req.IsActive
	}

	if err := s.configStore.Upsert(ctx, cfg); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("countryCode", cfg.CountryCode).
		Str("chapterType", string(cfg.ChapterType)).
		Msg("Country configuration saved")

	return cfg, nil
}

// DeleteConfiguration removes a configuration unless chapters still
// reference its country
func (s *countryConfigurationServiceImpl) DeleteConfiguration(ctx context.Context, id int64) error {
	cfg, err := s.configStore.GetByID(ctx, id)
	if err != nil {
		return err
	}

	hasChapters, err := s.chapterStore.ExistsByCountryCode(ctx, cfg.CountryCode)
	if err != nil {
		return err
	}
	if hasChapters {
		return apperrors.ErrConfigurationHasChapters
	}

	if err := s.configStore.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("countryCode", cfg.CountryCode).Msg("Country configuration deleted")
	return nil
}
