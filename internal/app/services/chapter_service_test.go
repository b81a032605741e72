package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/winrydberg/alumni-backend/internal/app/models"
	"github.com/winrydberg/alumni-backend/internal/app/models/dto"
	"github.com/winrydberg/alumni-backend/internal/pkg/apperrors"
)

func strPtr(s string) *string { return &s }

type chapterFixture struct {
	users       *fakeUserStore
	chapters    *fakeChapterStore
	configs     *fakeConfigurationStore
	memberships *fakeMembershipStore
	service     ChapterService
}

func newChapterFixture() *chapterFixture {
	memberships := newFakeMembershipStore()
	f := &chapterFixture{
		users:       newFakeUserStore(),
		chapters:    newFakeChapterStore(memberships),
		configs:     newFakeConfigurationStore(),
		memberships: memberships,
	}
	f.service = NewChapterService(f.chapters, f.configs, f.users, zerolog.Nop())
	return f
}

func (f *chapterFixture) addUser(country, city string) *models.User {
	user := &models.User{
		Email:     "user@example.com",
		FirstName: "Ama",
		LastName:  "Mensah",
		RoleType:  models.RoleAlumni,
	}
	if country != "" {
		user.CountryOfResidence = strPtr(country)
	}
	if city != "" {
		user.CityOfResidence = strPtr(city)
	}
	return f.users.add(user)
}

func (f *chapterFixture) addConfig(country string, chapterType models.ChapterType) {
	_ = f.configs.Upsert(context.Background(), &models.CountryChapterConfiguration{
		CountryCode: country,
		CountryName: country,
		ChapterType: chapterType,
		IsActive:    true,
	})
}

func (f *chapterFixture) addChapter(code, country string, chapterType models.ChapterType, city string, active bool) *models.Chapter {
	chapter := &models.Chapter{
		ChapterUUID: code + "-uuid",
		Name:        code + " Chapter",
		Code:        code,
		Type:        chapterType,
		CountryCode: country,
		CountryName: country,
		IsActive:    active,
	}
	if city != "" {
		chapter.City = strPtr(city)
		chapter.StateProvince = strPtr(city + " Region")
	}
	return f.chapters.add(chapter)
}

func TestSuggestionWithoutResidence(t *testing.T) {
	f := newChapterFixture()
	user := f.addUser("", "")

	chapter, reason, err := f.service.GetSuggestedChapter(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Nil(t, chapter)
	assert.Equal(t, ReasonResidenceNotSet, reason)
}

func TestSuggestionWithoutConfiguration(t *testing.T) {
	f := newChapterFixture()
	user := f.addUser("GH", "Accra")
	f.addChapter("GH", "GH", models.ChapterTypeCountry, "", true)

	chapter, reason, err := f.service.GetSuggestedChapter(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Nil(t, chapter)
	assert.Equal(t, ReasonNoConfiguration, reason)
}

func TestSuggestionCountryType(t *testing.T) {
	f := newChapterFixture()
	user := f.addUser("GH", "Kumasi")
	f.addConfig("GH", models.ChapterTypeCountry)
	gh := f.addChapter("GH", "GH", models.ChapterTypeCountry, "", true)

	chapter, reason, err := f.service.GetSuggestedChapter(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, chapter)
	assert.Equal(t, gh.ID, chapter.ID)
	assert.Empty(t, reason)
}

func TestSuggestionCityType(t *testing.T) {
	f := newChapterFixture()
	f.addConfig("US", models.ChapterTypeCity)
	ny := f.addChapter("US-NY", "US", models.ChapterTypeCity, "New York", true)
	f.addChapter("US-DC", "US", models.ChapterTypeCity, "Washington", true)

	t.Run("matching city", func(t *testing.T) {
		user := f.addUser("US", "New York")
		chapter, reason, err := f.service.GetSuggestedChapter(context.Background(), user.ID)
		require.NoError(t, err)
		require.NotNil(t, chapter)
		assert.Equal(t, ny.ID, chapter.ID)
		assert.Empty(t, reason)
	})

	t.Run("city match is case-insensitive", func(t *testing.T) {
		user := f.addUser("US", "new york")
		chapter, _, err := f.service.GetSuggestedChapter(context.Background(), user.ID)
		require.NoError(t, err)
		require.NotNil(t, chapter)
		assert.Equal(t, ny.ID, chapter.ID)
	})

	t.Run("non-matching city", func(t *testing.T) {
		user := f.addUser("US", "Miami")
		chapter, reason, err := f.service.GetSuggestedChapter(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Nil(t, chapter)
		assert.Equal(t, ReasonNoMatchingChapter, reason)
	})

	t.Run("missing city of residence", func(t *testing.T) {
		user := f.addUser("US", "")
		chapter, reason, err := f.service.GetSuggestedChapter(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Nil(t, chapter)
		assert.Equal(t, ReasonCityNotSet, reason)
	})
}

func TestSuggestionIgnoresInactiveChapters(t *testing.T) {
	f := newChapterFixture()
	user := f.addUser("GH", "")
	f.addConfig("GH", models.ChapterTypeCountry)
	f.addChapter("GH", "GH", models.ChapterTypeCountry, "", false)

	chapter, reason, err := f.service.GetSuggestedChapter(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Nil(t, chapter)
	assert.Equal(t, ReasonNoMatchingChapter, reason)
}

func TestSuggestionPicksOldestWhenAmbiguous(t *testing.T) {
	f := newChapterFixture()
	user := f.addUser("GH", "")
	f.addConfig("GH", models.ChapterTypeCountry)
	first := f.addChapter("GH-1", "GH", models.ChapterTypeCountry, "", true)
	f.addChapter("GH-2", "GH", models.ChapterTypeCountry, "", true)

	chapter, _, err := f.service.GetSuggestedChapter(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, chapter)
	assert.Equal(t, first.ID, chapter.ID)
}

func TestSuggestionIsIdempotent(t *testing.T) {
	f := newChapterFixture()
	user := f.addUser("GH", "")
	f.addConfig("GH", models.ChapterTypeCountry)
	f.addChapter("GH", "GH", models.ChapterTypeCountry, "", true)

	first, _, err := f.service.GetSuggestedChapter(context.Background(), user.ID)
	require.NoError(t, err)
	second, _, err := f.service.GetSuggestedChapter(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestAvailableChaptersRequiresResidence(t *testing.T) {
	f := newChapterFixture()
	user := f.addUser("", "")

	_, _, err := f.service.GetAvailableChapters(context.Background(), user.ID)
	assert.ErrorIs(t, err, apperrors.ErrResidenceRequired)
}

func TestAvailableChaptersWithCityKeepCountryWide(t *testing.T) {
	f := newChapterFixture()
	user := f.addUser("US", "New York")
	f.addConfig("US", models.ChapterTypeCity)
	f.addChapter("US-NY", "US", models.ChapterTypeCity, "New York", true)
	f.addChapter("US-DC", "US", models.ChapterTypeCity, "Washington", true)
	f.addChapter("US", "US", models.ChapterTypeCountry, "", true)
	f.addChapter("US-LA", "US", models.ChapterTypeCity, "Los Angeles", false)

	countryCode, chapters, err := f.service.GetAvailableChapters(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "US", countryCode)

	codes := make([]string, 0, len(chapters))
	for _, c := range chapters {
		codes = append(codes, c.Code)
	}
	// The country-wide chapter stays visible; city chapters narrow to the
	// user's own city
	assert.ElementsMatch(t, []string{"US-NY", "US"}, codes)
}

func TestAvailableChaptersWithoutCityListAllActive(t *testing.T) {
	f := newChapterFixture()
	user := f.addUser("GH", "")
	f.addChapter("GH", "GH", models.ChapterTypeCountry, "", true)
	f.addChapter("GH-ACC", "GH", models.ChapterTypeCity, "Accra", true)
	f.addChapter("GH-KSI", "GH", models.ChapterTypeCity, "Kumasi", false)

	_, chapters, err := f.service.GetAvailableChapters(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, chapters, 2)
}

func TestAvailableChaptersIgnoreOtherCountries(t *testing.T) {
	f := newChapterFixture()
	user := f.addUser("GH", "Accra")
	f.addChapter("GH-ACC", "GH", models.ChapterTypeCity, "Accra", true)
	f.addChapter("US", "US", models.ChapterTypeCountry, "", true)

	_, chapters, err := f.service.GetAvailableChapters(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, chapters, 1)
	assert.Equal(t, "GH-ACC", chapters[0].Code)
}

func TestCreateChapterValidation(t *testing.T) {
	f := newChapterFixture()
	ctx := context.Background()

	t.Run("city chapter requires city", func(t *testing.T) {
		_, err := f.service.CreateChapter(ctx, &dto.CreateChapterRequest{
			Name:        "New York Chapter",
			Code:        "US-NY",
			Type:        models.ChapterTypeCity,
			CountryCode: "US",
			CountryName: "United States",
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("invalid type", func(t *testing.T) {
		_, err := f.service.CreateChapter(ctx, &dto.CreateChapterRequest{
			Name:        "Ghana Chapter",
			Code:        "GH",
			Type:        "region",
			CountryCode: "GH",
			CountryName: "Ghana",
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("duplicate code", func(t *testing.T) {
		_, err := f.service.CreateChapter(ctx, &dto.CreateChapterRequest{
			Name:        "Ghana Chapter",
			Code:        "GH",
			Type:        models.ChapterTypeCountry,
			CountryCode: "GH",
			CountryName: "Ghana",
		})
		require.NoError(t, err)

		_, err = f.service.CreateChapter(ctx, &dto.CreateChapterRequest{
			Name:        "Ghana Again",
			Code:        "gh",
			Type:        models.ChapterTypeCountry,
			CountryCode: "GH",
			CountryName: "Ghana",
		})
		assert.ErrorIs(t, err, apperrors.ErrChapterCodeExists)
	})
}

func TestCreateChapterDefaults(t *testing.T) {
	f := newChapterFixture()

	chapter, err := f.service.CreateChapter(context.Background(), &dto.CreateChapterRequest{
		Name:        "Ghana Chapter",
		Code:        "gh",
		Type:        models.ChapterTypeCountry,
		CountryCode: "gh",
		CountryName: "Ghana",
	})
	require.NoError(t, err)
	assert.Equal(t, "GH", chapter.Code)
	assert.Equal(t, "GH", chapter.CountryCode)
	assert.True(t, chapter.IsActive)
	assert.NotEmpty(t, chapter.ChapterUUID)
}

func TestGetChapterByUUID(t *testing.T) {
	f := newChapterFixture()

	created, err := f.service.CreateChapter(context.Background(), &dto.CreateChapterRequest{
		Name:        "Ghana Chapter",
		Code:        "GH",
		Type:        models.ChapterTypeCountry,
		CountryCode: "GH",
		CountryName: "Ghana",
	})
	require.NoError(t, err)

	found, err := f.service.GetChapterByUUID(context.Background(), created.ChapterUUID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = f.service.GetChapterByUUID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, apperrors.ErrChapterNotFound)

	_, err = f.service.GetChapterByUUID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, apperrors.ErrChapterNotFound)
}

func TestUpdateChapterPartial(t *testing.T) {
	f := newChapterFixture()
	chapter := f.addChapter("GH", "GH", models.ChapterTypeCountry, "", true)

	updated, err := f.service.UpdateChapter(context.Background(), chapter.ID, &dto.UpdateChapterRequest{
		Name: strPtr("Ghana National Chapter"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ghana National Chapter", updated.Name)
	assert.Equal(t, "GH", updated.Code)
}

func TestDeleteChapterWithActiveMembersFails(t *testing.T) {
	f := newChapterFixture()
	chapter := f.addChapter("GH", "GH", models.ChapterTypeCountry, "", true)
	f.memberships.rows[1] = &models.ChapterMembership{
		ID: 1, UserID: 5, ChapterID: chapter.ID,
		IsPrimary: true, Status: models.MembershipActive,
	}

	err := f.service.DeleteChapter(context.Background(), chapter.ID)
	assert.ErrorIs(t, err, apperrors.ErrChapterHasActiveMembers)
}

func TestDeleteChapterWithOnlyInactiveMembersSucceeds(t *testing.T) {
	f := newChapterFixture()
	chapter := f.addChapter("GH", "GH", models.ChapterTypeCountry, "", true)
	f.memberships.rows[1] = &models.ChapterMembership{
		ID: 1, UserID: 5, ChapterID: chapter.ID,
		IsPrimary: false, Status: models.MembershipInactive,
	}

	err := f.service.DeleteChapter(context.Background(), chapter.ID)
	require.NoError(t, err)

	_, err = f.service.GetChapterByID(context.Background(), chapter.ID)
	assert.ErrorIs(t, err, apperrors.ErrChapterNotFound)
}

func TestGetStatistics(t *testing.T) {
	f := newChapterFixture()
	gh := f.addChapter("GH", "GH", models.ChapterTypeCountry, "", true)
	f.addChapter("US-NY", "US", models.ChapterTypeCity, "New York", false)
	f.memberships.rows[1] = &models.ChapterMembership{
		ID: 1, UserID: 5, ChapterID: gh.ID,
		IsPrimary: true, Status: models.MembershipActive,
	}

	stats, err := f.service.GetStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalChapters)
	assert.Equal(t, int64(1), stats.ActiveChapters)
	assert.Equal(t, int64(1), stats.TotalMemberships)
	assert.Equal(t, int64(1), stats.MembersByChapter[gh.Name])
}
