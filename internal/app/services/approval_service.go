package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/winrydberg/alumni-backend/internal/app/models"
	"github.com/winrydberg/alumni-backend/internal/app/models/dto"
	"github.com/winrydberg/alumni-backend/internal/pkg/apperrors"
	"github.com/winrydberg/alumni-backend/internal/pkg/auth"
	"github.com/winrydberg/alumni-backend/internal/pkg/email"
	"github.com/winrydberg/alumni-backend/internal/pkg/metrics"
)

// ApprovalService handles the admin review of pending alumni accounts
type ApprovalService interface {
	GetPendingUsers(ctx context.Context, page, pageSize int) ([]*models.User, int64, error)
	GetUsers(ctx context.Context, filter *dto.UserFilterRequest) ([]*models.User, int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ApproveUser(ctx context.Context, userID int64) (*models.User, error)
	ApproveUsers(ctx context.Context, userIDs []int64) (*dto.ApprovalResultResponse, error)
	RejectUser(ctx context.Context, userID int64, reason string) error
	SetAccountActive(ctx context.Context, userID int64, active bool) error
}

// approvalServiceImpl implements the ApprovalService interface
type approvalServiceImpl struct {
	userStore    UserStore
	tx           TxManager
	emailService email.EmailService
	metrics      *metrics.Metrics
	logger       zerolog.Logger
}

// NewApprovalService creates a new approval service instance
func NewApprovalService(userStore UserStore, tx TxManager, emailService email.EmailService, m *metrics.Metrics, logger zerolog.Logger) ApprovalService {
	return &approvalServiceImpl{
		userStore:    userStore,
		tx:           tx,
		emailService: emailService,
		metrics:      m,
		logger:       logger,
	}
}

// GetPendingUsers lists verified alumni accounts awaiting review
func (s *approvalServiceImpl) GetPendingUsers(ctx context.Context, page, pageSize int) ([]*models.User, int64, error) {
	return s.userStore.GetPendingApproval(ctx, page, pageSize)
}

// GetUsers lists accounts for the admin surface with filtering
func (s *approvalServiceImpl) GetUsers(ctx context.Context, filter *dto.UserFilterRequest) ([]*models.User, int64, error) {
	return s.userStore.GetAll(ctx, filter.Search, filter.IsApproved, filter.IsActive, filter.Page, filter.PageSize)
}

// GetUserByID retrieves a single account
func (s *approvalServiceImpl) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.userStore.GetByID(ctx, id)
}

// checkEligible validates that a user can be approved
func checkEligible(user *models.User) error {
	if user.IsApproved {
		return apperrors.ErrAlreadyApproved
	}
	if !user.IsVerified {
		return apperrors.ErrEmailNotVerified
	}
	return nil
}

// preparePassword generates a credential for accounts approved without one.
// Returns the plaintext for the notification email and the hash to store.
func preparePassword(user *models.User) (plaintext string, hash *string, err error) {
	if user.HasPassword() {
		return "", nil, nil
	}

	plaintext, err = auth.GenerateMemorablePassword()
	if err != nil {
		return "", nil, err
	}
	h, err := auth.HashPassword(plaintext)
	if err != nil {
		return "", nil, err
	}
	return plaintext, &h, nil
}

// ApproveUser approves one verified account, generating a password when the
// account registered without one. Email delivery is best-effort: a failed
// notification never rolls back an approval.
func (s *approvalServiceImpl) ApproveUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := checkEligible(user); err != nil {
		return nil, err
	}

	plaintext, hash, err := preparePassword(user)
	if err != nil {
		return nil, err
	}

	approvedAt := time.Now()
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.userStore.ApproveTx(ctx, tx, userID, hash, approvedAt)
	})
	if err != nil {
		return nil, err
	}

	user.IsApproved = true
	user.IsActive = true
	user.ApprovedAt = &approvedAt

	if err := s.emailService.SendApprovalEmail(user.Email, user.FullName(), plaintext); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to send approval email")
	}

	s.metrics.IncUsersApproved()
	s.logger.Info().Int64("userID", userID).Msg("User approved")

	return user, nil
}

// ApproveUsers approves a batch of accounts in one transaction, so either
// every eligible account is approved or none are
func (s *approvalServiceImpl) ApproveUsers(ctx context.Context, userIDs []int64) (*dto.ApprovalResultResponse, error) {
	type approvalEntry struct {
		user      *models.User
		plaintext string
		hash      *string
	}

	entries := make([]approvalEntry, 0, len(userIDs))
	for _, id := range userIDs {
		user, err := s.userStore.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := checkEligible(user); err != nil {
			// Ineligible entries are skipped rather than failing the batch
			s.logger.Warn().Err(err).Int64("userID", id).Msg("Skipping ineligible user in approval batch")
			continue
		}

		plaintext, hash, err := preparePassword(user)
		if err != nil {
			return nil, err
		}
		entries = append(entries, approvalEntry{user: user, plaintext: plaintext, hash: hash})
	}

	if len(entries) == 0 {
		return nil, apperrors.ErrNoEligibleUsers
	}

	approvedAt := time.Now()
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for _, entry := range entries {
			if err := s.userStore.ApproveTx(ctx, tx, entry.user.ID, entry.hash, approvedAt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &dto.ApprovalResultResponse{ApprovedIDs: make([]int64, 0, len(entries))}
	for _, entry := range entries {
		if err := s.emailService.SendApprovalEmail(entry.user.Email, entry.user.FullName(), entry.plaintext); err != nil {
			s.logger.Error().Err(err).Int64("userID", entry.user.ID).Msg("Failed to send approval email")
		}
		s.metrics.IncUsersApproved()
		result.ApprovedIDs = append(result.ApprovedIDs, entry.user.ID)
	}
	result.ApprovedCount = len(result.ApprovedIDs)

	s.logger.Info().Int("approved", result.ApprovedCount).Msg("Approval batch completed")
	return result, nil
}

// RejectUser rejects a pending account with a reason. Approved accounts
// cannot be rejected; they have to be deactivated instead.
func (s *approvalServiceImpl) RejectUser(ctx context.Context, userID int64, reason string) error {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsApproved {
		return apperrors.ErrRejectApproved
	}

	if err := s.userStore.Reject(ctx, userID, reason, time.Now()); err != nil {
		return err
	}

	if err := s.emailService.SendRejectionEmail(user.Email, user.FullName(), reason); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to send rejection email")
	}

	s.metrics.IncUsersRejected()
	s.logger.Info().Int64("userID", userID).Msg("User rejected")

	return nil
}

// SetAccountActive enables or disables an account
func (s *approvalServiceImpl) SetAccountActive(ctx context.Context, userID int64, active bool) error {
	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.userStore.SetActive(ctx, userID, active)
}
