package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/winrydberg/alumni-backend/internal/app/models/dto"
	"github.com/winrydberg/alumni-backend/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto HTTP responses with stable
// error codes. Controllers funnel every error through here.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	// Validation and bad input
	case errors.Is(err, apperrors.ErrValidationFailed):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err.Error())
	case errors.Is(err, apperrors.ErrBadRequest):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err.Error())

	// Authentication
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid email or password")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrInvalidFormat):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found")
	case errors.Is(err, apperrors.ErrEmailNotVerified):
		respond(c, http.StatusForbidden, dto.ErrorCodeEmailNotVerified, "Email address is not verified")
	case errors.Is(err, apperrors.ErrAccountNotApproved):
		respond(c, http.StatusForbidden, dto.ErrorCodeAccountNotApproved, "Account is awaiting approval")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respond(c, http.StatusForbidden, dto.ErrorCodeAccountDisabled, "Account is disabled")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, dto.ErrorCodeUnauthorized, "Permission denied")

	// Missing resources
	case errors.Is(err, apperrors.ErrUserNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrChapterNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Chapter not found")
	case errors.Is(err, apperrors.ErrConfigurationNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Country configuration not found")
	case errors.Is(err, apperrors.ErrNotAMember):
		respond(c, http.StatusNotFound, dto.ErrorCodeNotAMember, "No active chapter membership")
	case errors.Is(err, apperrors.ErrDonationNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Donation not found")
	case errors.Is(err, apperrors.ErrPaymentNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Payment not found")
	case errors.Is(err, apperrors.ErrHallNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Hall not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found")

	// Conflicts
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already registered")
	case errors.Is(err, apperrors.ErrPhoneAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Phone number already registered")
	case errors.Is(err, apperrors.ErrChapterCodeExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Chapter code already in use")
	case errors.Is(err, apperrors.ErrAlreadyMember):
		respond(c, http.StatusConflict, dto.ErrorCodeAlreadyMember, "Already a member of this chapter")
	case errors.Is(err, apperrors.ErrAlreadyHasPrimaryChapter):
		respond(c, http.StatusConflict, dto.ErrorCodeAlreadyHasPrimary, "Leave the current chapter before joining another")
	case errors.Is(err, apperrors.ErrChapterInactive):
		respond(c, http.StatusConflict, dto.ErrorCodeChapterInactive, "Chapter is not active")
	case errors.Is(err, apperrors.ErrChapterHasActiveMembers):
		respond(c, http.StatusConflict, dto.ErrorCodeChapterHasMembers, "Chapter still has active members")
	case errors.Is(err, apperrors.ErrConfigurationHasChapters):
		respond(c, http.StatusConflict, dto.ErrorCodeConfigHasChapters, "Chapters still reference this country configuration")
	case errors.Is(err, apperrors.ErrAlreadyApproved):
		respond(c, http.StatusConflict, dto.ErrorCodeAlreadyApproved, "User is already approved")
	case errors.Is(err, apperrors.ErrRejectApproved):
		respond(c, http.StatusConflict, dto.ErrorCodeRejectApproved, "Approved users cannot be rejected")
	case errors.Is(err, apperrors.ErrEmailAlreadyVerified):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceConflict, "Email is already verified")
	case errors.Is(err, apperrors.ErrDonationClosed):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceConflict, "Donation is not accepting payments")
	case errors.Is(err, apperrors.ErrHallCodeExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Hall code already in use")
	case errors.Is(err, apperrors.ErrConflict):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceConflict, err.Error())

	// Preconditions
	case errors.Is(err, apperrors.ErrResidenceRequired):
		respond(c, http.StatusPreconditionFailed, dto.ErrorCodeResidenceRequired, "Set your country of residence first")

	// Token flows surfaced as bad requests
	case errors.Is(err, apperrors.ErrInvalidEmailToken):
		respond(c, http.StatusBadRequest, dto.ErrorCodeInvalidToken, "Invalid or expired verification token")
	case errors.Is(err, apperrors.ErrInvalidResetToken):
		respond(c, http.StatusBadRequest, dto.ErrorCodeInvalidToken, "Invalid or expired password reset token")
	case errors.Is(err, apperrors.ErrNoEligibleUsers):
		respond(c, http.StatusBadRequest, dto.ErrorCodeNoEligibleUsers, "No eligible users in the request")
	case errors.Is(err, apperrors.ErrAmountBelowMinimum):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Amount is below the donation minimum")

	default:
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// HandleValidationError returns a 400 with field-level details from a
// binding failure
func HandleValidationError(c *gin.Context, err error) {
	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Request validation failed")
	detail = detail.WithDetails(err.Error())
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
}
