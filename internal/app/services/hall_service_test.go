package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/winrydberg/alumni-backend/internal/app/models"
	"github.com/winrydberg/alumni-backend/internal/app/models/dto"
	"github.com/winrydberg/alumni-backend/internal/pkg/apperrors"
)

func newHallService() HallService {
	return NewHallService(&fakeHallStore{halls: []*models.Hall{
		{ID: 1, Name: "Unity Hall", HallCode: "UH", Gender: models.HallMixed, IsActive: true},
		{ID: 2, Name: "Africa Hall", HallCode: "AF", Gender: models.HallFemale, IsActive: true},
		{ID: 3, Name: "Commonwealth Hall", HallCode: "CW", Gender: models.HallMale, IsActive: false},
	}})
}

func TestListHallsSkipsInactive(t *testing.T) {
	halls, err := newHallService().ListHalls(context.Background(), &dto.HallFilterRequest{})
	require.NoError(t, err)
	require.Len(t, halls, 2)
	assert.Equal(t, "Africa Hall", halls[0].Name)
	assert.Equal(t, "Unity Hall", halls[1].Name)
}

func TestListHallsFilterByGender(t *testing.T) {
	halls, err := newHallService().ListHalls(context.Background(), &dto.HallFilterRequest{Gender: "female"})
	require.NoError(t, err)
	require.Len(t, halls, 1)
	assert.Equal(t, "AF", halls[0].HallCode)
}

func TestListHallsRejectsUnknownGender(t *testing.T) {
	_, err := newHallService().ListHalls(context.Background(), &dto.HallFilterRequest{Gender: "coed"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
