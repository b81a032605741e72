package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/winrydberg/alumni-backend/internal/app/models"
	appRepos "github.com/winrydberg/alumni-backend/internal/app/repositories"
	"github.com/winrydberg/alumni-backend/internal/pkg/auth"
)

// userStore is the slice of the user repository the seeder needs
type userStore interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *appModels.User) error
}

// configStore is the slice of the configuration repository the seeder needs
type configStore interface {
	GetAll(ctx context.Context) ([]*appModels.CountryChapterConfiguration, error)
	Upsert(ctx context.Context, cfg *appModels.CountryChapterConfiguration) error
}

// CreateDefaultData creates the default admin account and the starter
// country configurations if they don't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	return createDefaultData(ctx, appRepos.NewUserRepository(dbPool), appRepos.NewCountryConfigurationRepository(dbPool), lgr)
}

func createDefaultData(ctx context.Context, users userStore, configs configStore, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	// --- Default admin account --- //
	exists, err := users.ExistsByEmail(ctx, "admin@alumni-association.org")
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		lgr.Info().Msg("Creating default admin user...")

		hash, err := auth.HashPassword("Admin123!")
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing admin password")
			finalErr = errors.Join(finalErr, err)
		} else {
			admin := &appModels.User{
				Email:       "admin@alumni-association.org",
				Password:    &hash,
				FirstName:   "System",
				LastName:    "Administrator",
				PhoneNumber: "+10000000000",
				RoleType:    appModels.RoleAdmin,
				IsVerified:  true,
				IsApproved:  true,
				IsActive:    true,
			}
			if err := users.Create(ctx, admin); err != nil {
				lgr.Error().Err(err).Msg("Error creating admin user")
				finalErr = errors.Join(finalErr, err)
			} else {
				lgr.Info().Int64("adminID", admin.ID).Msg("Default admin user created successfully")
			}
		}
	} else {
		lgr.Info().Msg("Admin user already exists, skipping creation")
	}

	// --- Starter country configurations --- //
	// The existence check must see deactivated rows too, so an admin's
	// decision to disable a country survives restarts
	seen := map[string]bool{}
	existing, err := configs.GetAll(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error listing country configurations")
		finalErr = errors.Join(finalErr, err)
	} else {
		for _, cfg := range existing {
			seen[cfg.CountryCode] = true
		}
	}

	// Small countries get one national chapter, large ones per-city chapters
	starters := []*appModels.CountryChapterConfiguration{
		{
			CountryCode: "GH",
			CountryName: "Ghana",
			ChapterType: appModels.ChapterTypeCountry,
			IsActive:    true,
		},
		{
			CountryCode: "US",
			CountryName: "United States",
			ChapterType: appModels.ChapterTypeCity,
			IsActive:    true,
		},
		{
			CountryCode: "GB",
			CountryName: "United Kingdom",
			ChapterType: appModels.ChapterTypeCountry,
			IsActive:    true,
		},
	}
	for _, cfg := range starters {
		if seen[cfg.CountryCode] {
			continue
		}
		if err := configs.Upsert(ctx, cfg); err != nil {
			lgr.Error().Err(err).Str("countryCode", cfg.CountryCode).Msg("Error creating country configuration")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}
