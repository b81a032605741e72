package services

import (
	"context"

	"github.com/winrydberg/alumni-backend/internal/app/models"
	"github.com/winrydberg/alumni-backend/internal/app/models/dto"
	"github.com/winrydberg/alumni-backend/internal/pkg/apperrors"
)

// HallService defines the interface for the hall of residence directory
type HallService interface {
	ListHalls(ctx context.Context, filter *dto.HallFilterRequest) ([]*models.Hall, error)
}

type hallServiceImpl struct {
	hallStore HallStore
}

// NewHallService creates a new hall service instance
func NewHallService(hallStore HallStore) HallService {
	return &hallServiceImpl{hallStore: hallStore}
}

// ListHalls lists active halls, optionally narrowed by gender or name
func (s *hallServiceImpl) ListHalls(ctx context.Context, filter *dto.HallFilterRequest) ([]*models.Hall, error) {
	if filter.Gender != "" && !models.HallGender(filter.Gender).Valid() {
		return nil, apperrors.NewValidationError("gender", "must be 'male', 'female' or 'mixed'")
	}
	return s.hallStore.GetActive(ctx, filter.Search, filter.Gender)
}
