package dto

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int64  `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn,omitempty"`
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RegisterRequest represents an alumni registration request.
// Password is optional: accounts registered without one are issued a
// generated password when an administrator approves them.
type RegisterRequest struct {
	Email              string  `json:"email" binding:"required,email"`
	Password           *string `json:"password,omitempty" binding:"omitempty,min=8"`
	Title              *string `json:"title,omitempty"`
	FirstName          string  `json:"firstName" binding:"required"`
	LastName           string  `json:"lastName" binding:"required"`
	OtherNames         *string `json:"otherNames,omitempty"`
	PhoneNumber        string  `json:"phoneNumber" binding:"required"`
	Nationality        *string `json:"nationality,omitempty"`
	CountryOfResidence *string `json:"countryOfResidence,omitempty"`
	CityOfResidence    *string `json:"cityOfResidence,omitempty"`
	HallOfResidence    *string `json:"hallOfResidence,omitempty"`
	Bio                *string `json:"bio,omitempty"`
	// ChapterID optionally assigns a primary chapter right at registration
	ChapterID *int64 `json:"chapterId,omitempty" binding:"omitempty,min=1"`
}

// VerifyEmailRequest carries the token mailed after registration
type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

// ResendVerificationRequest asks for a fresh verification email
type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPasswordRequest starts a password reset flow
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest completes a password reset flow
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ChangePasswordRequest changes the password of an authenticated user
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  *UserResponse `json:"user"`
}
