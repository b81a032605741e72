package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/winrydberg/alumni-backend/internal/app/models/dto"
	"github.com/winrydberg/alumni-backend/internal/app/services"
	"github.com/winrydberg/alumni-backend/internal/middleware"
	"github.com/winrydberg/alumni-backend/internal/pkg/helpers"
)

// DonationManagementController handles the admin donation surface
type DonationManagementController struct {
	donationService services.DonationService
	logger          zerolog.Logger
}

// NewDonationManagementController creates a new DonationManagementController
func NewDonationManagementController(donationService services.DonationService, logger zerolog.Logger) *DonationManagementController {
	return &DonationManagementController{
		donationService: donationService,
		logger:          logger,
	}
}

// ListDonations lists campaigns with filtering
// @Summary List donation campaigns
// @Tags admin-donations
// @Security BearerAuth
// @Produce json
// @Param search query string false "Search by title or description"
// @Param category query string false "Filter by category"
// @Param isActive query bool false "Filter by active state"
// @Param page query int false "Page number (1-based)"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.StructuredResponse{data=dto.PaginatedResponse} "Donation campaigns"
// @Router /admin/donations [get]
func (c *DonationManagementController) ListDonations(ctx *gin.Context) {
	var filter dto.DonationFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	filter.Page, filter.PageSize = helpers.NormalizePagination(filter.Page, filter.PageSize)

	donations, total, err := c.donationService.ListAllDonations(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.PaginatedResponse{
		Items:      dto.FromDonations(donations),
		Pagination: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, "Donations retrieved"))
}

// CreateDonation creates a donation campaign
// @Summary Create a donation campaign
// @Tags admin-donations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateDonationRequest true "Campaign to create"
// @Success 201 {object} dto.StructuredResponse{data=dto.DonationResponse} "Created campaign"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Router /admin/donations [post]
func (c *DonationManagementController) CreateDonation(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateDonationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	donation, err := c.donationService.CreateDonation(ctx.Request.Context(), &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.FromDonation(donation), "Donation created"))
}

// UpdateDonation applies a partial update to a campaign
// @Summary Update a donation campaign
// @Tags admin-donations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Donation ID"
// @Param request body dto.UpdateDonationRequest true "Fields to update"
// @Success 200 {object} dto.StructuredResponse{data=dto.DonationResponse} "Updated campaign"
// @Failure 404 {object} dto.ErrorResponse "Donation not found"
// @Router /admin/donations/{id} [put]
func (c *DonationManagementController) UpdateDonation(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateDonationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	donation, err := c.donationService.UpdateDonation(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromDonation(donation), "Donation updated"))
}

// DeleteDonation removes a campaign and its payment history
// @Summary Delete a donation campaign
// @Tags admin-donations
// @Security BearerAuth
// @Produce json
// @Param id path int true "Donation ID"
// @Success 200 {object} dto.StructuredResponse "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Donation not found"
// @Router /admin/donations/{id} [delete]
func (c *DonationManagementController) DeleteDonation(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.donationService.DeleteDonation(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Donation deleted"))
}

// CompletePayment confirms a pending payment
// @Summary Complete a payment
// @Description Marks a pending payment as completed, stamping the paid time and the gateway transaction ID.
// @Tags admin-donations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param reference path string true "Payment reference"
// @Success 200 {object} dto.StructuredResponse{data=dto.PaymentResponse} "Completed payment"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 409 {object} dto.ErrorResponse "Payment is not pending"
// @Router /admin/donations/payments/{reference}/complete [post]
func (c *DonationManagementController) CompletePayment(ctx *gin.Context) {
	// The body is optional; gateways that do not echo a transaction ID post nothing
	var req struct {
		TransactionID *string `json:"transactionId,omitempty"`
	}
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			middleware.HandleValidationError(ctx, err)
			return
		}
	}

	payment, err := c.donationService.CompletePayment(ctx.Request.Context(), ctx.Param("reference"), req.TransactionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromPayment(payment), "Payment completed"))
}

// FailPayment marks a pending payment as failed
// @Summary Fail a payment
// @Tags admin-donations
// @Security BearerAuth
// @Produce json
// @Param reference path string true "Payment reference"
// @Success 200 {object} dto.StructuredResponse{data=dto.PaymentResponse} "Failed payment"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 409 {object} dto.ErrorResponse "Payment is not pending"
// @Router /admin/donations/payments/{reference}/fail [post]
func (c *DonationManagementController) FailPayment(ctx *gin.Context) {
	payment, err := c.donationService.FailPayment(ctx.Request.Context(), ctx.Param("reference"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromPayment(payment), "Payment failed"))
}

// GetStatistics aggregates fundraising totals
// @Summary Donation statistics
// @Tags admin-donations
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.StructuredResponse{data=dto.DonationStatisticsResponse} "Statistics"
// @Router /admin/donations/statistics [get]
func (c *DonationManagementController) GetStatistics(ctx *gin.Context) {
	stats, err := c.donationService.GetStatistics(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(stats, "Statistics retrieved"))
}
