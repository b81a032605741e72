package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/winrydberg/alumni-backend/internal/app/models"
	"github.com/winrydberg/alumni-backend/internal/app/models/dto"
	"github.com/winrydberg/alumni-backend/internal/pkg/apperrors"
	"github.com/winrydberg/alumni-backend/internal/pkg/auth"
	"github.com/winrydberg/alumni-backend/internal/pkg/email"
)

// Token lifetimes for the mailed single-use tokens
const (
	verificationTokenTTL  = 24 * time.Hour
	passwordResetTokenTTL = time.Hour
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error)
	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, emailAddr string) error
	Login(ctx context.Context, emailAddr, password string) (*models.User, *dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.User, *dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	ForgotPassword(ctx context.Context, emailAddr string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	userStore    UserStore
	tokenStore   AuthTokenStore
	memberships  MembershipService
	jwtService   *auth.JWTService
	emailService email.EmailService
	logger       zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(userStore UserStore, tokenStore AuthTokenStore, memberships MembershipService, jwtService *auth.JWTService, emailService email.EmailService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		userStore:    userStore,
		tokenStore:   tokenStore,
		memberships:  memberships,
		jwtService:   jwtService,
		emailService: emailService,
		logger:       logger,
	}
}

// Register creates a pending alumni account. The account stays inactive
// until the email is verified and an administrator approves it.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userStore.ExistsByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	user := &models.User{
		Email:              emailAddr,
		Title:              req.Title,
		FirstName:          strings.TrimSpace(req.FirstName),
		LastName:           strings.TrimSpace(req.LastName),
		OtherNames:         req.OtherNames,
		PhoneNumber:        strings.TrimSpace(req.PhoneNumber),
		Nationality:        req.Nationality,
		CountryOfResidence: normalizeCountryCode(req.CountryOfResidence),
		CityOfResidence:    req.CityOfResidence,
		HallOfResidence:    req.HallOfResidence,
		Bio:                req.Bio,
		RoleType:           models.RoleAlumni,
	}

	if req.Password != nil && *req.Password != "" {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = &hash
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, err
	}

	if req.ChapterID != nil {
		if _, err := s.memberships.AssignPrimaryChapter(ctx, user.ID, *req.ChapterID); err != nil {
			// The account is usable without the preferred chapter
			s.logger.Warn().Err(err).
				Int64("userID", user.ID).
				Int64("chapterID", *req.ChapterID).
				Msg("Could not assign preferred chapter at registration")
		}
	}

	if err := s.sendVerification(ctx, user); err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to send verification email")
	}

	s.logger.Info().Int64("userID", user.ID).Msg("User registered, awaiting verification and approval")
	return user, nil
}

func normalizeCountryCode(code *string) *string {
	if code == nil {
		return nil
	}
	normalized := strings.ToUpper(strings.TrimSpace(*code))
	if normalized == "" {
		return nil
	}
	return &normalized
}

func (s *authServiceImpl) sendVerification(ctx context.Context, user *models.User) error {
	token, err := email.GenerateToken()
	if err != nil {
		return err
	}
	if err := s.tokenStore.SaveVerificationToken(ctx, token, user.ID, verificationTokenTTL); err != nil {
		return err
	}
	return s.emailService.SendVerificationEmail(user.Email, user.FullName(), token)
}

// VerifyEmail consumes a verification token and marks the account verified
func (s *authServiceImpl) VerifyEmail(ctx context.Context, token string) error {
	userID, err := s.tokenStore.ConsumeVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			return apperrors.ErrInvalidEmailToken
		}
		return err
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.userStore.SetVerified(ctx, userID); err != nil {
		return err
	}

	if err := s.emailService.SendRegistrationPendingEmail(user.Email, user.FullName()); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to send pending approval email")
	}

	s.logger.Info().Int64("userID", userID).Msg("Email verified, account awaiting approval")
	return nil
}

// ResendVerification issues a fresh verification token for an unverified account
func (s *authServiceImpl) ResendVerification(ctx context.Context, emailAddr string) error {
	user, err := s.userStore.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(emailAddr)))
	if err != nil {
		return err
	}
	if user.IsVerified {
		return apperrors.ErrEmailAlreadyVerified
	}
	return s.sendVerification(ctx, user)
}

// Login authenticates a verified, approved, active account
func (s *authServiceImpl) Login(ctx context.Context, emailAddr, password string) (*models.User, *dto.TokenResponse, error) {
	user, err := s.userStore.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(emailAddr)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !user.HasPassword() || !auth.CheckPassword(*user.Password, password) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, nil, apperrors.ErrEmailNotVerified
	}
	if !user.IsApproved {
		return nil, nil, apperrors.ErrAccountNotApproved
	}
	if !user.IsActive {
		return nil, nil, apperrors.ErrAccountDisabled
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	if err := s.userStore.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to record last login")
	}

	return user, tokens, nil
}

func (s *authServiceImpl) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	if err := s.tokenStore.SaveRefreshToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenTTL()); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:           accessToken,
		TokenType:             "Bearer",
		ExpiresIn:             int64(expiresIn),
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: int64(refreshExpiresIn),
	}, nil
}

// RefreshToken rotates a refresh token into a fresh token pair
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*models.User, *dto.TokenResponse, error) {
	userID, err := s.tokenStore.ConsumeRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			return nil, nil, apperrors.ErrTokenInvalid
		}
		return nil, nil, err
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if !user.IsActive || !user.IsApproved {
		return nil, nil, apperrors.ErrAccountDisabled
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

// Logout invalidates a refresh token
func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	return s.tokenStore.DeleteRefreshToken(ctx, refreshToken)
}

// ForgotPassword starts a reset flow. Succeeds silently for unknown
// addresses so the endpoint does not leak which emails are registered.
func (s *authServiceImpl) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userStore.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(emailAddr)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.logger.Info().Str("email", emailAddr).Msg("Password reset requested for unknown email")
			return nil
		}
		return err
	}

	token, err := email.GenerateToken()
	if err != nil {
		return err
	}
	if err := s.tokenStore.SavePasswordResetToken(ctx, token, user.ID, passwordResetTokenTTL); err != nil {
		return err
	}

	if err := s.emailService.SendPasswordResetEmail(user.Email, user.FullName(), token); err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to send password reset email")
		return err
	}

	return nil
}

// ResetPassword completes a reset flow by consuming the mailed token
func (s *authServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := s.tokenStore.ConsumePasswordResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			return apperrors.ErrInvalidResetToken
		}
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.userStore.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", userID).Msg("Password reset completed")
	return nil
}

// ChangePassword changes the password of an authenticated user
func (s *authServiceImpl) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !user.HasPassword() || !auth.CheckPassword(*user.Password, currentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.userStore.UpdatePassword(ctx, userID, hash)
}
