package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/winrydberg/alumni-backend/internal/app/models"
	"github.com/winrydberg/alumni-backend/internal/pkg/apperrors"
	"github.com/winrydberg/alumni-backend/internal/pkg/auth"
)

type approvalFixture struct {
	users   *fakeUserStore
	emails  *fakeEmailService
	service ApprovalService
}

func newApprovalFixture() *approvalFixture {
	f := &approvalFixture{
		users:  newFakeUserStore(),
		emails: &fakeEmailService{},
	}
	f.service = NewApprovalService(f.users, &fakeTxManager{}, f.emails, nil, zerolog.Nop())
	return f
}

func (f *approvalFixture) addPending(email string, verified bool, passwordHash *string) *models.User {
	return f.users.add(&models.User{
		Email:      email,
		Password:   passwordHash,
		FirstName:  "Kofi",
		LastName:   "Asante",
		RoleType:   models.RoleAlumni,
		IsVerified: verified,
	})
}

func TestApproveUser(t *testing.T) {
	f := newApprovalFixture()
	hash, err := auth.HashPassword("Secret123!")
	require.NoError(t, err)
	pending := f.addPending("kofi@example.com", true, &hash)

	approved, err := f.service.ApproveUser(context.Background(), pending.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)
	assert.True(t, approved.IsActive)
	assert.NotNil(t, approved.ApprovedAt)

	// Existing credentials survive the approval
	stored, err := f.users.GetByID(context.Background(), pending.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Password)
	assert.True(t, auth.CheckPassword(*stored.Password, "Secret123!"))

	require.Len(t, f.emails.sent, 1)
	assert.Equal(t, "approval", f.emails.sent[0].kind)
	assert.Empty(t, f.emails.sent[0].payload)
}

func TestApproveUserGeneratesPassword(t *testing.T) {
	f := newApprovalFixture()
	pending := f.addPending("ama@example.com", true, nil)

	_, err := f.service.ApproveUser(context.Background(), pending.ID)
	require.NoError(t, err)

	stored, err := f.users.GetByID(context.Background(), pending.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Password)

	// The generated plaintext goes out in the approval email and matches
	// the stored hash
	require.Len(t, f.emails.sent, 1)
	plaintext := f.emails.sent[0].payload
	require.NotEmpty(t, plaintext)
	assert.True(t, auth.CheckPassword(*stored.Password, plaintext))
}

func TestApproveUserEmailFailureDoesNotRollBack(t *testing.T) {
	f := newApprovalFixture()
	f.emails.fail = true
	pending := f.addPending("ama@example.com", true, nil)

	approved, err := f.service.ApproveUser(context.Background(), pending.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)

	stored, err := f.users.GetByID(context.Background(), pending.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsApproved)
}

func TestApproveUserRequiresVerification(t *testing.T) {
	f := newApprovalFixture()
	pending := f.addPending("ama@example.com", false, nil)

	_, err := f.service.ApproveUser(context.Background(), pending.ID)
	assert.ErrorIs(t, err, apperrors.ErrEmailNotVerified)
}

func TestApproveUserAlreadyApproved(t *testing.T) {
	f := newApprovalFixture()
	pending := f.addPending("ama@example.com", true, nil)
	pending.IsApproved = true

	_, err := f.service.ApproveUser(context.Background(), pending.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApproved)
}

func TestApproveUsersSkipsIneligible(t *testing.T) {
	f := newApprovalFixture()
	eligible := f.addPending("eligible@example.com", true, nil)
	unverified := f.addPending("unverified@example.com", false, nil)
	already := f.addPending("approved@example.com", true, nil)
	already.IsApproved = true

	result, err := f.service.ApproveUsers(context.Background(), []int64{eligible.ID, unverified.ID, already.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, result.ApprovedCount)
	assert.Equal(t, []int64{eligible.ID}, result.ApprovedIDs)

	stored, err := f.users.GetByID(context.Background(), unverified.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsApproved)
}

func TestApproveUsersNoneEligible(t *testing.T) {
	f := newApprovalFixture()
	unverified := f.addPending("unverified@example.com", false, nil)

	_, err := f.service.ApproveUsers(context.Background(), []int64{unverified.ID})
	assert.ErrorIs(t, err, apperrors.ErrNoEligibleUsers)
}

func TestRejectUser(t *testing.T) {
	f := newApprovalFixture()
	pending := f.addPending("ama@example.com", true, nil)

	err := f.service.RejectUser(context.Background(), pending.ID, "Not a registered alumnus")
	require.NoError(t, err)

	stored, err := f.users.GetByID(context.Background(), pending.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	require.NotNil(t, stored.RejectionReason)
	assert.Equal(t, "Not a registered alumnus", *stored.RejectionReason)
	assert.NotNil(t, stored.RejectedAt)

	require.Len(t, f.emails.sent, 1)
	assert.Equal(t, "rejection", f.emails.sent[0].kind)
}

func TestRejectApprovedUser(t *testing.T) {
	f := newApprovalFixture()
	pending := f.addPending("ama@example.com", true, nil)
	pending.IsApproved = true

	err := f.service.RejectUser(context.Background(), pending.ID, "too late")
	assert.ErrorIs(t, err, apperrors.ErrRejectApproved)
}

func TestGetPendingUsersExcludesRejected(t *testing.T) {
	f := newApprovalFixture()
	f.addPending("first@example.com", true, nil)
	rejected := f.addPending("second@example.com", true, nil)
	require.NoError(t, f.service.RejectUser(context.Background(), rejected.ID, "duplicate account"))

	users, total, err := f.service.GetPendingUsers(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, "first@example.com", users[0].Email)
}

func TestSetAccountActive(t *testing.T) {
	f := newApprovalFixture()
	pending := f.addPending("ama@example.com", true, nil)
	pending.IsActive = true

	require.NoError(t, f.service.SetAccountActive(context.Background(), pending.ID, false))

	stored, err := f.users.GetByID(context.Background(), pending.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}
