package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/winrydberg/alumni-backend/internal/app/models"
	"github.com/winrydberg/alumni-backend/internal/db"
)

// Services defined in this package:
// - AuthService: registration, login, token refresh, verification and password flows
// - ChapterService: chapter suggestion, discovery and admin CRUD
// - MembershipService: join/leave and primary chapter resolution
// - CountryConfigurationService: per-country chapter policy records
// - ApprovalService: admin review of pending alumni accounts
// - DonationService: fundraising campaigns and payment tracking
// - HallService: the hall of residence directory
//
// Each service depends on narrow store interfaces satisfied by the
// repositories package, so tests can substitute in-memory fakes.

// UserStore is the persistence surface the services need for users
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetAll(ctx context.Context, search string, isApproved, isActive *bool, page, pageSize int) ([]*models.User, int64, error)
	GetPendingApproval(ctx context.Context, page, pageSize int) ([]*models.User, int64, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	UpdateLastLogin(ctx context.Context, userID int64) error
	SetVerified(ctx context.Context, userID int64) error
	ApproveTx(ctx context.Context, tx pgx.Tx, userID int64, passwordHash *string, approvedAt time.Time) error
	Reject(ctx context.Context, userID int64, reason string, rejectedAt time.Time) error
	SetActive(ctx context.Context, userID int64, active bool) error
}

// ChapterStore is the persistence surface the services need for chapters
type ChapterStore interface {
	Create(ctx context.Context, chapter *models.Chapter) error
	GetByID(ctx context.Context, id int64) (*models.Chapter, error)
	GetByUUID(ctx context.Context, chapterUUID string) (*models.Chapter, error)
	ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error)
	ExistsByCountryCode(ctx context.Context, countryCode string) (bool, error)
	GetAll(ctx context.Context, search, countryCode, chapterType string, isActive *bool, page, pageSize int) ([]*models.Chapter, int64, error)
	GetActiveByCountry(ctx context.Context, countryCode string, chapterType models.ChapterType, city string) ([]*models.Chapter, error)
	GetAvailableByResidence(ctx context.Context, countryCode, city string) ([]*models.Chapter, error)
	Update(ctx context.Context, chapter *models.Chapter) error
	Delete(ctx context.Context, id int64) error
	HasActiveMembers(ctx context.Context, chapterID int64) (bool, error)
	GetMembers(ctx context.Context, chapterID int64, page, pageSize int) ([]*models.ChapterMembership, int64, error)
	GetStatistics(ctx context.Context) (totalChapters, activeChapters, totalMemberships int64, membersByChapter map[string]int64, err error)
}

// MembershipStore is the persistence surface for chapter memberships
type MembershipStore interface {
	GetPrimaryActive(ctx context.Context, userID int64) (*models.ChapterMembership, error)
	HasPrimaryActive(ctx context.Context, userID int64) (bool, error)
	FindByUserAndChapter(ctx context.Context, userID, chapterID int64) (*models.ChapterMembership, error)
	GetAllByUser(ctx context.Context, userID int64) ([]*models.ChapterMembership, error)
	DemoteAllPrimariesTx(ctx context.Context, tx pgx.Tx, userID int64) error
	InsertTx(ctx context.Context, tx pgx.Tx, m *models.ChapterMembership) error
	ReactivateTx(ctx context.Context, tx pgx.Tx, membershipID int64) error
	Deactivate(ctx context.Context, userID, chapterID int64) error
}

// ConfigurationStore is the persistence surface for country configurations
type ConfigurationStore interface {
	GetByCountryCode(ctx context.Context, countryCode string) (*models.CountryChapterConfiguration, error)
	GetByID(ctx context.Context, id int64) (*models.CountryChapterConfiguration, error)
	GetAll(ctx context.Context) ([]*models.CountryChapterConfiguration, error)
	Upsert(ctx context.Context, cfg *models.CountryChapterConfiguration) error
	Delete(ctx context.Context, id int64) error
}

// DonationStore is the persistence surface for donation campaigns
type DonationStore interface {
	Create(ctx context.Context, donation *models.Donation) error
	GetByID(ctx context.Context, id int64) (*models.Donation, error)
	GetByUUID(ctx context.Context, donationUUID string) (*models.Donation, error)
	GetAll(ctx context.Context, search, category string, isActive *bool, page, pageSize int) ([]*models.Donation, int64, error)
	GetFeatured(ctx context.Context, limit int) ([]*models.Donation, error)
	Update(ctx context.Context, donation *models.Donation) error
	Delete(ctx context.Context, id int64) error
	GetStatistics(ctx context.Context) (totalDonations, activeDonations int64, totalRaised float64, completedPayments int64, raisedByCategory map[string]float64, err error)
}

// PaymentStore is the persistence surface for donation payments
type PaymentStore interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByReference(ctx context.Context, reference string) (*models.Payment, error)
	GetByUser(ctx context.Context, userID int64, page, pageSize int) ([]*models.Payment, int64, error)
	UpdateStatus(ctx context.Context, reference string, status models.PaymentStatus, transactionID *string) error
}

// HallStore is the persistence surface for the hall directory
type HallStore interface {
	GetActive(ctx context.Context, search, gender string) ([]*models.Hall, error)
}

// AuthTokenStore keeps single-use auth tokens, satisfied by the Redis
// token store
type AuthTokenStore interface {
	SaveRefreshToken(ctx context.Context, token string, userID int64, ttl time.Duration) error
	ConsumeRefreshToken(ctx context.Context, token string) (int64, error)
	DeleteRefreshToken(ctx context.Context, token string) error
	SaveVerificationToken(ctx context.Context, token string, userID int64, ttl time.Duration) error
	ConsumeVerificationToken(ctx context.Context, token string) (int64, error)
	SavePasswordResetToken(ctx context.Context, token string, userID int64, ttl time.Duration) error
	ConsumePasswordResetToken(ctx context.Context, token string) (int64, error)
}

// TxManager runs a function inside a database transaction
type TxManager interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}
