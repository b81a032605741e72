package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository                 *UserRepository
	ChapterRepository              *ChapterRepository
	MembershipRepository           *MembershipRepository
	CountryConfigurationRepository *CountryConfigurationRepository
	DonationRepository             *DonationRepository
	PaymentRepository              *PaymentRepository
	HallRepository                 *HallRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:                 NewUserRepository(db),
		ChapterRepository:              NewChapterRepository(db),
		MembershipRepository:           NewMembershipRepository(db),
		CountryConfigurationRepository: NewCountryConfigurationRepository(db),
		DonationRepository:             NewDonationRepository(db),
		PaymentRepository:              NewPaymentRepository(db),
		HallRepository:                 NewHallRepository(db),
	}
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique violation error.
func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" // 23505 is unique_violation
}

// duplicateConstraint returns the violated constraint name, if any
func duplicateConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr.ConstraintName
	}
	return ""
}
