package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/winrydberg/alumni-backend/internal/app/models"
	"github.com/winrydberg/alumni-backend/internal/app/models/dto"
	"github.com/winrydberg/alumni-backend/internal/pkg/apperrors"
	"github.com/winrydberg/alumni-backend/internal/pkg/auth"
)

type authFixture struct {
	users       *fakeUserStore
	tokens      *fakeTokenStore
	emails      *fakeEmailService
	chapters    *fakeChapterStore
	memberships *fakeMembershipStore
	service     AuthService
}

func newAuthFixture() *authFixture {
	memberships := newFakeMembershipStore()
	f := &authFixture{
		users:       newFakeUserStore(),
		tokens:      newFakeTokenStore(),
		emails:      &fakeEmailService{},
		chapters:    newFakeChapterStore(memberships),
		memberships: memberships,
	}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 7 * 24 * time.Hour,
		TokenIssuer:     "alumni-backend-test",
	})
	membershipService := NewMembershipService(memberships, f.chapters, &fakeTxManager{}, nil, zerolog.Nop())
	f.service = NewAuthService(f.users, f.tokens, membershipService, jwtService, f.emails, zerolog.Nop())
	return f
}

func (f *authFixture) addAccount(email, password string, verified, approved, active bool) *models.User {
	hash, _ := auth.HashPassword(password)
	return f.users.add(&models.User{
		Email:      email,
		Password:   &hash,
		FirstName:  "Ama",
		LastName:   "Mensah",
		RoleType:   models.RoleAlumni,
		IsVerified: verified,
		IsApproved: approved,
		IsActive:   active,
	})
}

func registerRequest(email string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:       email,
		FirstName:   "Ama",
		LastName:    "Mensah",
		PhoneNumber: "+233201234567",
	}
}

func TestRegister(t *testing.T) {
	f := newAuthFixture()
	req := registerRequest("Ama@Example.com")
	req.CountryOfResidence = strPtr("gh")

	user, err := f.service.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "ama@example.com", user.Email)
	require.NotNil(t, user.CountryOfResidence)
	assert.Equal(t, "GH", *user.CountryOfResidence)
	assert.False(t, user.IsVerified)
	assert.False(t, user.IsApproved)
	assert.Nil(t, user.Password)

	// A verification token went out by email
	require.Len(t, f.emails.sent, 1)
	assert.Equal(t, "verification", f.emails.sent[0].kind)
	assert.NotEmpty(t, f.emails.sent[0].payload)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newAuthFixture()
	f.addAccount("ama@example.com", "Secret123!", true, true, true)

	_, err := f.service.Register(context.Background(), registerRequest("AMA@example.com"))
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegisterWithPreferredChapter(t *testing.T) {
	f := newAuthFixture()
	chapter := f.chapters.add(&models.Chapter{
		ChapterUUID: "gh-uuid",
		Name:        "Ghana Chapter",
		Code:        "GH",
		Type:        models.ChapterTypeCountry,
		CountryCode: "GH",
		CountryName: "Ghana",
		IsActive:    true,
	})
	req := registerRequest("ama@example.com")
	req.ChapterID = &chapter.ID

	user, err := f.service.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, f.memberships.activePrimaryCount(user.ID))
}

func TestRegisterWithUnknownChapterStillSucceeds(t *testing.T) {
	f := newAuthFixture()
	unknown := int64(42)
	req := registerRequest("ama@example.com")
	req.ChapterID = &unknown

	user, err := f.service.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 0, f.memberships.activePrimaryCount(user.ID))
}

func TestVerifyEmail(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	user, err := f.service.Register(ctx, registerRequest("ama@example.com"))
	require.NoError(t, err)
	token := f.emails.sent[0].payload

	require.NoError(t, f.service.VerifyEmail(ctx, token))

	stored, err := f.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsVerified)

	// Verification tokens are single-use
	err = f.service.VerifyEmail(ctx, token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidEmailToken)
}

func TestResendVerification(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.service.Register(ctx, registerRequest("ama@example.com"))
	require.NoError(t, err)

	require.NoError(t, f.service.ResendVerification(ctx, "ama@example.com"))
	assert.Len(t, f.emails.sent, 2)

	verified := f.addAccount("kofi@example.com", "Secret123!", true, true, true)
	err = f.service.ResendVerification(ctx, verified.Email)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyVerified)
}

func TestLogin(t *testing.T) {
	f := newAuthFixture()
	f.addAccount("ama@example.com", "Secret123!", true, true, true)

	user, tokens, err := f.service.Login(context.Background(), "Ama@Example.com", "Secret123!")
	require.NoError(t, err)
	assert.Equal(t, "ama@example.com", user.Email)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "Bearer", tokens.TokenType)

	stored, err := f.users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLoginAt)
}

func TestLoginGates(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := f.service.Login(ctx, "nobody@example.com", "Secret123!")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		f.addAccount("wrong@example.com", "Secret123!", true, true, true)
		_, _, err := f.service.Login(ctx, "wrong@example.com", "nope")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unverified", func(t *testing.T) {
		f.addAccount("unverified@example.com", "Secret123!", false, false, false)
		_, _, err := f.service.Login(ctx, "unverified@example.com", "Secret123!")
		assert.ErrorIs(t, err, apperrors.ErrEmailNotVerified)
	})

	t.Run("not approved", func(t *testing.T) {
		f.addAccount("pending@example.com", "Secret123!", true, false, false)
		_, _, err := f.service.Login(ctx, "pending@example.com", "Secret123!")
		assert.ErrorIs(t, err, apperrors.ErrAccountNotApproved)
	})

	t.Run("disabled", func(t *testing.T) {
		f.addAccount("disabled@example.com", "Secret123!", true, true, false)
		_, _, err := f.service.Login(ctx, "disabled@example.com", "Secret123!")
		assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
	})
}

func TestRefreshTokenRotation(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.addAccount("ama@example.com", "Secret123!", true, true, true)

	_, tokens, err := f.service.Login(ctx, "ama@example.com", "Secret123!")
	require.NoError(t, err)

	_, rotated, err := f.service.RefreshToken(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)

	// The consumed token cannot be replayed
	_, _, err = f.service.RefreshToken(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestRefreshTokenDisabledAccount(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	user := f.addAccount("ama@example.com", "Secret123!", true, true, true)

	_, tokens, err := f.service.Login(ctx, "ama@example.com", "Secret123!")
	require.NoError(t, err)

	require.NoError(t, f.users.SetActive(ctx, user.ID, false))

	_, _, err = f.service.RefreshToken(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestLogout(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.addAccount("ama@example.com", "Secret123!", true, true, true)

	_, tokens, err := f.service.Login(ctx, "ama@example.com", "Secret123!")
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, tokens.RefreshToken))

	_, _, err = f.service.RefreshToken(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestPasswordResetFlow(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.addAccount("ama@example.com", "OldSecret1!", true, true, true)

	require.NoError(t, f.service.ForgotPassword(ctx, "ama@example.com"))
	require.Len(t, f.emails.sent, 1)
	assert.Equal(t, "reset", f.emails.sent[0].kind)
	token := f.emails.sent[0].payload

	require.NoError(t, f.service.ResetPassword(ctx, token, "NewSecret1!"))

	_, _, err := f.service.Login(ctx, "ama@example.com", "OldSecret1!")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, _, err = f.service.Login(ctx, "ama@example.com", "NewSecret1!")
	assert.NoError(t, err)

	// Reset tokens are single-use
	err = f.service.ResetPassword(ctx, token, "Another1!")
	assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	f := newAuthFixture()

	// Unknown addresses do not error, so the endpoint cannot be used to
	// enumerate registered emails
	require.NoError(t, f.service.ForgotPassword(context.Background(), "nobody@example.com"))
	assert.Empty(t, f.emails.sent)
}

func TestChangePassword(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	user := f.addAccount("ama@example.com", "OldSecret1!", true, true, true)

	err := f.service.ChangePassword(ctx, user.ID, "wrong", "NewSecret1!")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	require.NoError(t, f.service.ChangePassword(ctx, user.ID, "OldSecret1!", "NewSecret1!"))

	_, _, err = f.service.Login(ctx, "ama@example.com", "NewSecret1!")
	assert.NoError(t, err)
}
