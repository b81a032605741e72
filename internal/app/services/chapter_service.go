package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/winrydberg/alumni-backend/internal/app/models"
	"github.com/winrydberg/alumni-backend/internal/app/models/dto"
	"github.com/winrydberg/alumni-backend/internal/pkg/apperrors"
)

// Suggestion outcome reasons returned alongside an empty suggestion
const (
	ReasonResidenceNotSet     = "country of residence not set"
	ReasonNoConfiguration     = "no chapter configuration for country of residence"
	ReasonCityNotSet          = "city of residence required for city-based chapters"
	ReasonNoMatchingChapter   = "no active chapter matches the residence"
	ReasonConfigurationBroken = "configuration references no usable chapter type"
)

// ChapterService defines the interface for chapter-related operations
type ChapterService interface {
	GetSuggestedChapter(ctx context.Context, userID int64) (*models.Chapter, string, error)
	GetAvailableChapters(ctx context.Context, userID int64) (string, []*models.Chapter, error)
	BrowseChapters(ctx context.Context, search, countryCode string, page, pageSize int) ([]*models.Chapter, int64, error)
	GetChapterByID(ctx context.Context, id int64) (*models.Chapter, error)
	GetChapterByUUID(ctx context.Context, chapterUUID string) (*models.Chapter, error)
	ListChapters(ctx context.Context, filter *dto.ChapterFilterRequest) ([]*models.Chapter, int64, error)
	CreateChapter(ctx context.Context, req *dto.CreateChapterRequest) (*models.Chapter, error)
	UpdateChapter(ctx context.Context, id int64, req *dto.UpdateChapterRequest) (*models.Chapter, error)
	DeleteChapter(ctx context.Context, id int64) error
	GetChapterMembers(ctx context.Context, chapterID int64, page, pageSize int) ([]*models.ChapterMembership, int64, error)
	GetStatistics(ctx context.Context) (*dto.ChapterStatisticsResponse, error)
}

// chapterServiceImpl implements the ChapterService interface
type chapterServiceImpl struct {
	chapterStore ChapterStore
	configStore  ConfigurationStore
	userStore    UserStore
	logger       zerolog.Logger
}

// NewChapterService creates a new chapter service instance
func NewChapterService(chapterStore ChapterStore, configStore ConfigurationStore, userStore UserStore, logger zerolog.Logger) ChapterService {
	return &chapterServiceImpl{
		chapterStore: chapterStore,
		configStore:  configStore,
		userStore:    userStore,
		logger:       logger,
	}
}

// GetSuggestedChapter resolves which chapter a user should join based on
// their residence and the country's chapter configuration. It is a pure
// read: an empty result with a reason is a normal outcome, not an error.
func (s *chapterServiceImpl) GetSuggestedChapter(ctx context.Context, userID int64) (*models.Chapter, string, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	if user.CountryOfResidence == nil || strings.TrimSpace(*user.CountryOfResidence) == "" {
		return nil, ReasonResidenceNotSet, nil
	}
	countryCode := strings.ToUpper(strings.TrimSpace(*user.CountryOfResidence))

	cfg, err := s.configStore.GetByCountryCode(ctx, countryCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrConfigurationNotFound) {
			return nil, ReasonNoConfiguration, nil
		}
		return nil, "", err
	}

	switch {
	case cfg.UsesCountryChapter():
		return s.suggestFromCandidates(ctx, countryCode, models.ChapterTypeCountry, "")

	case cfg.UsesCityChapters():
		if user.CityOfResidence == nil || strings.TrimSpace(*user.CityOfResidence) == "" {
			return nil, ReasonCityNotSet, nil
		}
		return s.suggestFromCandidates(ctx, countryCode, models.ChapterTypeCity, strings.TrimSpace(*user.CityOfResidence))

	default:
		s.logger.Warn().
			Str("countryCode", countryCode).
			Str("chapterType", string(cfg.ChapterType)).
			Msg("Country configuration has an unknown chapter type")
		return nil, ReasonConfigurationBroken, nil
	}
}

// suggestFromCandidates picks the lowest-ID active candidate so repeated
// calls with unchanged data return the same chapter
func (s *chapterServiceImpl) suggestFromCandidates(ctx context.Context, countryCode string, chapterType models.ChapterType, city string) (*models.Chapter, string, error) {
	candidates, err := s.chapterStore.GetActiveByCountry(ctx, countryCode, chapterType, city)
	if err != nil {
		return nil, "", err
	}
	if len(candidates) == 0 {
		return nil, ReasonNoMatchingChapter, nil
	}
	if len(candidates) > 1 {
		s.logger.Warn().
			Str("countryCode", countryCode).
			Str("chapterType", string(chapterType)).
			Str("city", city).
			Int("candidates", len(candidates)).
			Msg("Multiple chapters match a single residence, suggesting the oldest")
	}

	return candidates[0], "", nil
}

// GetAvailableChapters lists the chapters a user may join from their
// residence. Requires countryOfResidence to be set. Country-wide chapters
// are always offered; city chapters only when they match the user's city.
func (s *chapterServiceImpl) GetAvailableChapters(ctx context.Context, userID int64) (string, []*models.Chapter, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return "", nil, err
	}

	if user.CountryOfResidence == nil || strings.TrimSpace(*user.CountryOfResidence) == "" {
		return "", nil, apperrors.ErrResidenceRequired
	}
	countryCode := strings.ToUpper(strings.TrimSpace(*user.CountryOfResidence))

	city := ""
	if user.CityOfResidence != nil {
		city = strings.TrimSpace(*user.CityOfResidence)
	}

	chapters, err := s.chapterStore.GetAvailableByResidence(ctx, countryCode, city)
	if err != nil {
		return "", nil, err
	}

	return countryCode, chapters, nil
}

// BrowseChapters lists active chapters for the alumni-facing directory
func (s *chapterServiceImpl) BrowseChapters(ctx context.Context, search, countryCode string, page, pageSize int) ([]*models.Chapter, int64, error) {
	active := true
	return s.chapterStore.GetAll(ctx, search, countryCode, "", &active, page, pageSize)
}

// GetChapterByID retrieves a chapter with its live member count
func (s *chapterServiceImpl) GetChapterByID(ctx context.Context, id int64) (*models.Chapter, error) {
	return s.chapterStore.GetByID(ctx, id)
}

// GetChapterByUUID retrieves a chapter by its public identifier
func (s *chapterServiceImpl) GetChapterByUUID(ctx context.Context, chapterUUID string) (*models.Chapter, error) {
	if _, err := uuid.Parse(chapterUUID); err != nil {
		return nil, apperrors.ErrChapterNotFound
	}
	return s.chapterStore.GetByUUID(ctx, chapterUUID)
}

// ListChapters lists chapters for the admin surface with full filtering
func (s *chapterServiceImpl) ListChapters(ctx context.Context, filter *dto.ChapterFilterRequest) ([]*models.Chapter, int64, error) {
	if filter.Type != "" && !models.ChapterType(filter.Type).Valid() {
		return nil, 0, apperrors.NewValidationError("type", "must be 'country' or 'city'")
	}
	return s.chapterStore.GetAll(ctx, filter.Search, strings.ToUpper(filter.CountryCode), filter.Type, filter.IsActive, filter.Page, filter.PageSize)
}

// validateChapterShape enforces the type-dependent field requirements
func validateChapterShape(chapter *models.Chapter) error {
	if !chapter.Type.Valid() {
		return apperrors.NewValidationError("type", "must be 'country' or 'city'")
	}
	if len(chapter.CountryCode) != 2 {
		return apperrors.NewValidationError("countryCode", "must be a two-letter ISO country code")
	}
	if strings.TrimSpace(chapter.Name) == "" {
		return apperrors.NewValidationError("name", "cannot be empty")
	}
	if strings.TrimSpace(chapter.Code) == "" {
		return apperrors.NewValidationError("code", "cannot be empty")
	}
	if chapter.Type == models.ChapterTypeCity {
		if chapter.City == nil || strings.TrimSpace(*chapter.City) == "" {
			return apperrors.NewValidationError("city", "required for city chapters")
		}
		if chapter.StateProvince == nil || strings.TrimSpace(*chapter.StateProvince) == "" {
			return apperrors.NewValidationError("stateProvince", "required for city chapters")
		}
	}
	return nil
}

// CreateChapter creates a chapter after validating its shape and code uniqueness
func (s *chapterServiceImpl) CreateChapter(ctx context.Context, req *dto.CreateChapterRequest) (*models.Chapter, error) {
	chapter := &models.Chapter{
		ChapterUUID:   uuid.New().String(),
		Name:          strings.TrimSpace(req.Name),
		Code:          strings.ToUpper(strings.TrimSpace(req.Code)),
		Description:   req.Description,
		Type:          req.Type,
		CountryCode:   strings.ToUpper(strings.TrimSpace(req.CountryCode)),
		CountryName:   strings.TrimSpace(req.CountryName),
		StateProvince: req.StateProvince,
		City:          req.City,
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
		IsActive:      true,
	}
	if req.IsActive != nil {
		chapter.IsActive = *req.IsActive
	}

	if err := validateChapterShape(chapter); err != nil {
		return nil, err
	}

	exists, err := s.chapterStore.ExistsByCode(ctx, chapter.Code, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrChapterCodeExists
	}

	if err := s.chapterStore.Create(ctx, chapter); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("chapterID", chapter.ID).
		Str("code", chapter.Code).
		Msg("Chapter created")

	return chapter, nil
}

// UpdateChapter applies a partial update to a chapter
func (s *chapterServiceImpl) UpdateChapter(ctx context.Context, id int64, req *dto.UpdateChapterRequest) (*models.Chapter, error) {
	chapter, err := s.chapterStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		chapter.Name = strings.TrimSpace(*req.Name)
	}
	if req.Code != nil {
		chapter.Code = strings.ToUpper(strings.TrimSpace(*req.Code))
	}
	if req.Description != nil {
		chapter.Description = req.Description
	}
	if req.Type != nil {
		chapter.Type = *req.Type
	}
	if req.CountryCode != nil {
		chapter.CountryCode = strings.ToUpper(strings.TrimSpace(*req.CountryCode))
	}
	if req.CountryName != nil {
		chapter.CountryName = strings.TrimSpace(*req.CountryName)
	}
	if req.StateProvince != nil {
		chapter.StateProvince = req.StateProvince
	}
	if req.City != nil {
		chapter.City = req.City
	}
	if req.ContactEmail != nil {
		chapter.ContactEmail = req.ContactEmail
	}
	if req.ContactPhone != nil {
		chapter.ContactPhone = req.ContactPhone
	}
	if req.IsActive != nil {
		chapter.IsActive = *req.IsActive
	}

	if err := validateChapterShape(chapter); err != nil {
		return nil, err
	}

	if req.Code != nil {
		exists, err := s.chapterStore.ExistsByCode(ctx, chapter.Code, chapter.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.ErrChapterCodeExists
		}
	}

	if err := s.chapterStore.Update(ctx, chapter); err != nil {
		return nil, err
	}

	return chapter, nil
}

// DeleteChapter removes a chapter unless active members still reference it
func (s *chapterServiceImpl) DeleteChapter(ctx context.Context, id int64) error {
	if _, err := s.chapterStore.GetByID(ctx, id); err != nil {
		return err
	}

	hasMembers, err := s.chapterStore.HasActiveMembers(ctx, id)
	if err != nil {
		return err
	}
	if hasMembers {
		return apperrors.ErrChapterHasActiveMembers
	}

	if err := s.chapterStore.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("chapterID", id).Msg("Chapter deleted")
	return nil
}

// GetChapterMembers lists the membership rows of a chapter
func (s *chapterServiceImpl) GetChapterMembers(ctx context.Context, chapterID int64, page, pageSize int) ([]*models.ChapterMembership, int64, error) {
	if _, err := s.chapterStore.GetByID(ctx, chapterID); err != nil {
		return nil, 0, err
	}
	return s.chapterStore.GetMembers(ctx, chapterID, page, pageSize)
}

// GetStatistics aggregates chapter counts for the admin dashboard
func (s *chapterServiceImpl) GetStatistics(ctx context.Context) (*dto.ChapterStatisticsResponse, error) {
	totalChapters, activeChapters, totalMemberships, membersByChapter, err := s.chapterStore.GetStatistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("error collecting chapter statistics: %w", err)
	}

	return &dto.ChapterStatisticsResponse{
		TotalChapters:    totalChapters,
		ActiveChapters:   activeChapters,
		TotalMemberships: totalMemberships,
		MembersByChapter: membersByChapter,
	}, nil
}
