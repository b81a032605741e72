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

type configurationFixture struct {
	configs  *fakeConfigurationStore
	chapters *fakeChapterStore
	service  CountryConfigurationService
}

func newConfigurationFixture() *configurationFixture {
	f := &configurationFixture{
		configs:  newFakeConfigurationStore(),
		chapters: newFakeChapterStore(nil),
	}
	f.service = NewCountryConfigurationService(f.configs, f.chapters, zerolog.Nop())
	return f
}

func TestUpsertConfiguration(t *testing.T) {
	f := newConfigurationFixture()
	ctx := context.Background()

	cfg, err := f.service.UpsertConfiguration(ctx, &dto.UpsertCountryConfigurationRequest{
		CountryCode: "gh",
		CountryName: "Ghana",
		ChapterType: models.ChapterTypeCountry,
	})
	require.NoError(t, err)
	assert.Equal(t, "GH", cfg.CountryCode)
	assert.True(t, cfg.IsActive)

	// A second upsert for the same country replaces the record
	updated, err := f.service.UpsertConfiguration(ctx, &dto.UpsertCountryConfigurationRequest{
		CountryCode: "GH",
		CountryName: "Ghana",
		ChapterType: models.ChapterTypeCity,
	})
	require.NoError(t, err)
	assert.Equal(t, cfg.ID, updated.ID)
	assert.Equal(t, models.ChapterTypeCity, updated.ChapterType)

	all, err := f.service.GetConfigurations(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUpsertConfigurationValidation(t *testing.T) {
	f := newConfigurationFixture()
	ctx := context.Background()

	t.Run("invalid chapter type", func(t *testing.T) {
		_, err := f.service.UpsertConfiguration(ctx, &dto.UpsertCountryConfigurationRequest{
			CountryCode: "GH",
			CountryName: "Ghana",
			ChapterType: "region",
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("invalid country code", func(t *testing.T) {
		_, err := f.service.UpsertConfiguration(ctx, &dto.UpsertCountryConfigurationRequest{
			CountryCode: "GHA",
			CountryName: "Ghana",
			ChapterType: models.ChapterTypeCountry,
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("missing country name", func(t *testing.T) {
		_, err := f.service.UpsertConfiguration(ctx, &dto.UpsertCountryConfigurationRequest{
			CountryCode: "GH",
			CountryName: "  ",
			ChapterType: models.ChapterTypeCountry,
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestGetConfigurationByCountry(t *testing.T) {
	f := newConfigurationFixture()
	ctx := context.Background()

	_, err := f.service.UpsertConfiguration(ctx, &dto.UpsertCountryConfigurationRequest{
		CountryCode: "US",
		CountryName: "United States",
		ChapterType: models.ChapterTypeCity,
	})
	require.NoError(t, err)

	cfg, err := f.service.GetConfigurationByCountry(ctx, "us")
	require.NoError(t, err)
	assert.Equal(t, "US", cfg.CountryCode)

	_, err = f.service.GetConfigurationByCountry(ctx, "GH")
	assert.ErrorIs(t, err, apperrors.ErrConfigurationNotFound)
}

func TestDeleteConfigurationBlockedByChapters(t *testing.T) {
	f := newConfigurationFixture()
	ctx := context.Background()

	cfg, err := f.service.UpsertConfiguration(ctx, &dto.UpsertCountryConfigurationRequest{
		CountryCode: "GH",
		CountryName: "Ghana",
		ChapterType: models.ChapterTypeCountry,
	})
	require.NoError(t, err)

	f.chapters.add(&models.Chapter{
		ChapterUUID: "gh-uuid",
		Name:        "Ghana Chapter",
		Code:        "GH",
		Type:        models.ChapterTypeCountry,
		CountryCode: "GH",
		CountryName: "Ghana",
		IsActive:    true,
	})

	err = f.service.DeleteConfiguration(ctx, cfg.ID)
	assert.ErrorIs(t, err, apperrors.ErrConfigurationHasChapters)
}

func TestDeleteConfiguration(t *testing.T) {
	f := newConfigurationFixture()
	ctx := context.Background()

	cfg, err := f.service.UpsertConfiguration(ctx, &dto.UpsertCountryConfigurationRequest{
		CountryCode: "GH",
		CountryName: "Ghana",
		ChapterType: models.ChapterTypeCountry,
	})
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteConfiguration(ctx, cfg.ID))

	_, err = f.service.GetConfigurationByID(ctx, cfg.ID)
	assert.ErrorIs(t, err, apperrors.ErrConfigurationNotFound)
}
