package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/winrydberg/alumni-backend/internal/app/models"
	"github.com/winrydberg/alumni-backend/internal/pkg/apperrors"
	"github.com/winrydberg/alumni-backend/internal/pkg/metrics"
)

// MembershipService defines the interface for chapter membership operations
type MembershipService interface {
	JoinChapter(ctx context.Context, userID, chapterID int64) (*models.ChapterMembership, error)
	AssignPrimaryChapter(ctx context.Context, userID, chapterID int64) (*models.ChapterMembership, error)
	LeaveChapter(ctx context.Context, userID int64) error
	GetMyChapter(ctx context.Context, userID int64) (*models.ChapterMembership, error)
	GetMyMemberships(ctx context.Context, userID int64) ([]*models.ChapterMembership, error)
}

// membershipServiceImpl implements the MembershipService interface
type membershipServiceImpl struct {
	membershipStore MembershipStore
	chapterStore    ChapterStore
	tx              TxManager
	metrics         *metrics.Metrics
	logger          zerolog.Logger
}

// NewMembershipService creates a new membership service instance
func NewMembershipService(membershipStore MembershipStore, chapterStore ChapterStore, tx TxManager, m *metrics.Metrics, logger zerolog.Logger) MembershipService {
	return &membershipServiceImpl{
		membershipStore: membershipStore,
		chapterStore:    chapterStore,
		tx:              tx,
		metrics:         m,
		logger:          logger,
	}
}

// JoinChapter makes the chapter the user's primary one. Users with an
// existing primary membership must leave it first.
func (s *membershipServiceImpl) JoinChapter(ctx context.Context, userID, chapterID int64) (*models.ChapterMembership, error) {
	chapter, err := s.chapterStore.GetByID(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	if !chapter.IsActive {
		return nil, apperrors.ErrChapterInactive
	}

	existing, err := s.membershipStore.FindByUserAndChapter(ctx, userID, chapterID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status == models.MembershipActive {
		return nil, apperrors.ErrAlreadyMember
	}

	hasPrimary, err := s.membershipStore.HasPrimaryActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	if hasPrimary {
		return nil, apperrors.ErrAlreadyHasPrimaryChapter
	}

	membership, err := s.attach(ctx, userID, chapterID, existing)
	if err != nil {
		return nil, err
	}
	membership.Chapter = chapter

	s.metrics.IncMembersJoined()
	s.logger.Info().
		Int64("userID", userID).
		Int64("chapterID", chapterID).
		Msg("User joined chapter")

	return membership, nil
}

// AssignPrimaryChapter attaches a chapter as the user's primary membership,
// demoting any current primary first. Used at registration time and by
// administrative reassignment, where the leave-first rule does not apply.
func (s *membershipServiceImpl) AssignPrimaryChapter(ctx context.Context, userID, chapterID int64) (*models.ChapterMembership, error) {
	chapter, err := s.chapterStore.GetByID(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	if !chapter.IsActive {
		return nil, apperrors.ErrChapterInactive
	}

	existing, err := s.membershipStore.FindByUserAndChapter(ctx, userID, chapterID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status == models.MembershipActive && existing.IsPrimary {
		return nil, apperrors.ErrAlreadyMember
	}

	membership, err := s.attach(ctx, userID, chapterID, existing)
	if err != nil {
		return nil, err
	}
	membership.Chapter = chapter

	s.logger.Info().
		Int64("userID", userID).
		Int64("chapterID", chapterID).
		Msg("User assigned to chapter")

	return membership, nil
}

// attach runs the demote-then-attach sequence in one transaction so the
// at-most-one-active-primary invariant holds under concurrent requests.
// A previous membership row for the pair is reactivated instead of
// inserting a duplicate, since leaving keeps rows around as inactive.
func (s *membershipServiceImpl) attach(ctx context.Context, userID, chapterID int64, existing *models.ChapterMembership) (*models.ChapterMembership, error) {
	membership := existing
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.membershipStore.DemoteAllPrimariesTx(ctx, tx, userID); err != nil {
			return err
		}

		if existing != nil {
			if err := s.membershipStore.ReactivateTx(ctx, tx, existing.ID); err != nil {
				return err
			}
			membership.IsPrimary = true
			membership.Status = models.MembershipActive
			return nil
		}

		membership = &models.ChapterMembership{
			UserID:    userID,
			ChapterID: chapterID,
			IsPrimary: true,
			Status:    models.MembershipActive,
		}
		return s.membershipStore.InsertTx(ctx, tx, membership)
	})
	if err != nil {
		return nil, err
	}

	return membership, nil
}

// LeaveChapter deactivates the user's primary membership. The row is kept
// with an inactive status so the history survives and a later rejoin
// reactivates it.
func (s *membershipServiceImpl) LeaveChapter(ctx context.Context, userID int64) error {
	membership, err := s.membershipStore.GetPrimaryActive(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.membershipStore.Deactivate(ctx, userID, membership.ChapterID); err != nil {
		return err
	}

	s.metrics.IncMembersLeft()
	s.logger.Info().
		Int64("userID", userID).
		Int64("chapterID", membership.ChapterID).
		Msg("User left chapter")

	return nil
}

// GetMyChapter returns the user's primary active membership with its chapter
func (s *membershipServiceImpl) GetMyChapter(ctx context.Context, userID int64) (*models.ChapterMembership, error) {
	return s.membershipStore.GetPrimaryActive(ctx, userID)
}

// GetMyMemberships returns every membership row of the user, current and past
func (s *membershipServiceImpl) GetMyMemberships(ctx context.Context, userID int64) ([]*models.ChapterMembership, error) {
	return s.membershipStore.GetAllByUser(ctx, userID)
}
