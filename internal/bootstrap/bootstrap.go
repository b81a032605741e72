package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/winrydberg/alumni-backend/internal/app/controllers"
	appMigrations "github.com/winrydberg/alumni-backend/internal/app/migrations"
	appRepos "github.com/winrydberg/alumni-backend/internal/app/repositories"
	appRoutes "github.com/winrydberg/alumni-backend/internal/app/routes"
	appServices "github.com/winrydberg/alumni-backend/internal/app/services"
	"github.com/winrydberg/alumni-backend/internal/config"
	"github.com/winrydberg/alumni-backend/internal/db"
	appMiddleware "github.com/winrydberg/alumni-backend/internal/middleware"
	pkgAuth "github.com/winrydberg/alumni-backend/internal/pkg/auth"
	"github.com/winrydberg/alumni-backend/internal/pkg/email"
	"github.com/winrydberg/alumni-backend/internal/pkg/helpers"
	"github.com/winrydberg/alumni-backend/internal/pkg/logger"
	"github.com/winrydberg/alumni-backend/internal/pkg/metrics"
	"github.com/winrydberg/alumni-backend/internal/pkg/tokenstore"
	"github.com/winrydberg/alumni-backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService                 appServices.AuthService
	UserService                 appServices.UserService
	ChapterService              appServices.ChapterService
	MembershipService           appServices.MembershipService
	ConfigurationService        appServices.CountryConfigurationService
	ApprovalService             appServices.ApprovalService
	DonationService             appServices.DonationService
	HallService                 appServices.HallService
	AuthController              *appControllers.AuthController
	UserController              *appControllers.UserController
	MemberChapterController     *appControllers.MemberChapterController
	ChapterManagementController *appControllers.ChapterManagementController
	ConfigurationController     *appControllers.CountryConfigurationController
	ApprovalController          *appControllers.ApprovalController
	MemberDonationController    *appControllers.MemberDonationController
	DonationManagementCtrl      *appControllers.DonationManagementController
	HallController              *appControllers.HallController
	AuthMiddleware              *appMiddleware.AuthMiddleware
	Repos                       *appRepos.Repositories
	JWTService                  *pkgAuth.JWTService
	TokenStore                  *tokenstore.TokenStore
	EmailService                email.EmailService
	Metrics                     *metrics.Metrics
	Logger                      zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		// Missing seed data should not stop the service
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// SetupRedis establishes the Redis connection used for auth tokens.
func SetupRedis(cfg *config.Config, lgr zerolog.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		lgr.Error().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to connect to Redis")
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connection established")
	return client, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, redisClient *redis.Client, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)
	deps.TokenStore = tokenstore.NewTokenStore(redisClient)
	deps.Metrics = metrics.New()

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
		BaseURL:   cfg.Server.BaseURL,
	}, lgr)

	// Services
	deps.MembershipService = appServices.NewMembershipService(
		deps.Repos.MembershipRepository,
		deps.Repos.ChapterRepository,
		database,
		deps.Metrics,
		lgr,
	)
	deps.ChapterService = appServices.NewChapterService(
		deps.Repos.ChapterRepository,
		deps.Repos.CountryConfigurationRepository,
		deps.Repos.UserRepository,
		lgr,
	)
	deps.ConfigurationService = appServices.NewCountryConfigurationService(
		deps.Repos.CountryConfigurationRepository,
		deps.Repos.ChapterRepository,
		lgr,
	)
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.TokenStore,
		deps.MembershipService,
		deps.JWTService,
		deps.EmailService,
		lgr,
	)
	deps.ApprovalService = appServices.NewApprovalService(
		deps.Repos.UserRepository,
		database,
		deps.EmailService,
		deps.Metrics,
		lgr,
	)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository, lgr)
	deps.DonationService = appServices.NewDonationService(
		deps.Repos.DonationRepository,
		deps.Repos.PaymentRepository,
		lgr,
	)
	deps.HallService = appServices.NewHallService(deps.Repos.HallRepository)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	// Controllers
	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.UserController = appControllers.NewUserController(deps.UserService, lgr)
	deps.MemberChapterController = appControllers.NewMemberChapterController(deps.ChapterService, deps.MembershipService, lgr)
	deps.ChapterManagementController = appControllers.NewChapterManagementController(deps.ChapterService, lgr)
	deps.ConfigurationController = appControllers.NewCountryConfigurationController(deps.ConfigurationService, lgr)
	deps.ApprovalController = appControllers.NewApprovalController(deps.ApprovalService, deps.MembershipService, lgr)
	deps.MemberDonationController = appControllers.NewMemberDonationController(deps.DonationService, lgr)
	deps.DonationManagementCtrl = appControllers.NewDonationManagementController(deps.DonationService, lgr)
	deps.HallController = appControllers.NewHallController(deps.HallService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()
	router.Use(appMiddleware.Metrics(deps.Metrics))

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.MemberChapterController,
		deps.ChapterManagementController,
		deps.ConfigurationController,
		deps.ApprovalController,
		deps.MemberDonationController,
		deps.DonationManagementCtrl,
		deps.HallController,
		deps.AuthMiddleware,
	)

	return router
}
