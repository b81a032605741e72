package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/winrydberg/alumni-backend/internal/app/models"
	"github.com/winrydberg/alumni-backend/internal/app/models/dto"
	"github.com/winrydberg/alumni-backend/internal/pkg/apperrors"
)

// UserService handles profile operations for authenticated users
type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error)
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	userStore UserStore
	logger    zerolog.Logger
}

// NewUserService creates a new user service instance
func NewUserService(userStore UserStore, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		userStore: userStore,
		logger:    logger,
	}
}

// GetProfile retrieves the authenticated user's account
func (s *userServiceImpl) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.userStore.GetByID(ctx, userID)
}

// UpdateProfile applies profile changes to the authenticated user's account
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.FirstName) == "" {
		return nil, apperrors.NewValidationError("firstName", "cannot be empty")
	}
	if strings.TrimSpace(req.LastName) == "" {
		return nil, apperrors.NewValidationError("lastName", "cannot be empty")
	}
	if strings.TrimSpace(req.PhoneNumber) == "" {
		return nil, apperrors.NewValidationError("phoneNumber", "cannot be empty")
	}

	user.Title = req.Title
	user.FirstName = strings.TrimSpace(req.FirstName)
	user.LastName = strings.TrimSpace(req.LastName)
	user.OtherNames = req.OtherNames
	user.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	user.Nationality = req.Nationality
	user.CountryOfResidence = normalizeCountryCode(req.CountryOfResidence)
	user.CityOfResidence = req.CityOfResidence
	user.HallOfResidence = req.HallOfResidence
	user.Bio = req.Bio

	if err := s.userStore.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Msg("Profile updated")
	return user, nil
}
