package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrAccountNotApproved = errors.New("account is awaiting approval")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Precondition errors
	ErrResidenceRequired = errors.New("country of residence is required")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrPhoneAlreadyExists = errors.New("phone number already exists")
)

// Chapter errors
var (
	ErrChapterNotFound          = errors.New("chapter not found")
	ErrChapterCodeExists        = errors.New("chapter with this code already exists")
	ErrChapterInactive          = errors.New("chapter is not active")
	ErrChapterHasActiveMembers  = errors.New("chapter has active members and cannot be deleted")
	ErrAlreadyMember            = errors.New("user is already a member of this chapter")
	ErrAlreadyHasPrimaryChapter = errors.New("user already has a primary chapter")
	ErrNotAMember               = errors.New("user is not a member of any chapter")
)

// Country configuration errors
var (
	ErrConfigurationNotFound    = errors.New("country configuration not found")
	ErrConfigurationHasChapters = errors.New("country configuration has chapters and cannot be deleted")
)

// Approval workflow errors
var (
	ErrAlreadyApproved      = errors.New("user is already approved")
	ErrRejectApproved       = errors.New("cannot reject an already approved user")
	ErrEmailNotVerified     = errors.New("user must verify email before approval")
	ErrNoEligibleUsers      = errors.New("no eligible users found for approval")
	ErrInvalidEmailToken    = errors.New("invalid or expired email verification token")
	ErrInvalidResetToken    = errors.New("invalid or expired password reset token")
	ErrEmailAlreadyVerified = errors.New("email already verified")
)

// Donation errors
var (
	ErrDonationNotFound   = errors.New("donation not found")
	ErrDonationClosed     = errors.New("donation is not accepting payments")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrAmountBelowMinimum = errors.New("amount is below the donation minimum")
)

// Hall errors
var (
	ErrHallNotFound   = errors.New("hall not found")
	ErrHallCodeExists = errors.New("hall with this code already exists")
)

// Token format errors
var (
	ErrInvalidFormat = errors.New("invalid token format")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewValidationError creates a new custom error for a failed field validation
func NewValidationError(field, message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
		Details: map[string]interface{}{"field": field},
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
