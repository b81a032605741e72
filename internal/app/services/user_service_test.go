package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/winrydberg/alumni-backend/internal/app/models"
	"github.com/winrydberg/alumni-backend/internal/app/models/dto"
	"github.com/winrydberg/alumni-backend/internal/pkg/apperrors"
)

func TestUpdateProfile(t *testing.T) {
	users := newFakeUserStore()
	service := NewUserService(users, zerolog.Nop())
	user := users.add(&models.User{
		Email:       "ama@example.com",
		FirstName:   "Ama",
		LastName:    "Mensah",
		PhoneNumber: "+233201234567",
		RoleType:    models.RoleAlumni,
	})

	updated, err := service.UpdateProfile(context.Background(), user.ID, &dto.UpdateProfileRequest{
		FirstName:          "Ama",
		LastName:           "Mensah-Boateng",
		PhoneNumber:        "+233201234567",
		CountryOfResidence: strPtr("us"),
		CityOfResidence:    strPtr("New York"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Mensah-Boateng", updated.LastName)
	require.NotNil(t, updated.CountryOfResidence)
	assert.Equal(t, "US", *updated.CountryOfResidence)

	stored, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mensah-Boateng", stored.LastName)
}

func TestUpdateProfileValidation(t *testing.T) {
	users := newFakeUserStore()
	service := NewUserService(users, zerolog.Nop())
	user := users.add(&models.User{
		Email:       "ama@example.com",
		FirstName:   "Ama",
		LastName:    "Mensah",
		PhoneNumber: "+233201234567",
		RoleType:    models.RoleAlumni,
	})

	_, err := service.UpdateProfile(context.Background(), user.ID, &dto.UpdateProfileRequest{
		FirstName:   "  ",
		LastName:    "Mensah",
		PhoneNumber: "+233201234567",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	users := newFakeUserStore()
	service := NewUserService(users, zerolog.Nop())

	_, err := service.UpdateProfile(context.Background(), 99, &dto.UpdateProfileRequest{
		FirstName:   "Ama",
		LastName:    "Mensah",
		PhoneNumber: "+233201234567",
	})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
