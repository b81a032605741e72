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

// MemberDonationController handles the alumni-facing donation surface:
// browsing campaigns, contributing and the payment history
type MemberDonationController struct {
	donationService services.DonationService
	logger          zerolog.Logger
}

// NewMemberDonationController creates a new MemberDonationController
func NewMemberDonationController(donationService services.DonationService, logger zerolog.Logger) *MemberDonationController {
	return &MemberDonationController{
		donationService: donationService,
		logger:          logger,
	}
}

// ListDonations lists active donation campaigns
// @Summary Browse donation campaigns
// @Tags donations
// @Security BearerAuth
// @Produce json
// @Param search query string false "Search by title or description"
// @Param category query string false "Filter by category"
// @Param page query int false "Page number (1-based)"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.StructuredResponse{data=dto.PaginatedResponse} "Donation campaigns"
// @Router /alumni/donations [get]
func (c *MemberDonationController) ListDonations(ctx *gin.Context) {
	var filter dto.DonationFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	filter.Page, filter.PageSize = helpers.NormalizePagination(filter.Page, filter.PageSize)

	donations, total, err := c.donationService.ListDonations(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.PaginatedResponse{
		Items:      dto.FromDonations(donations),
		Pagination: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, "Donations retrieved"))
}

// ListFeaturedDonations lists the highlighted campaigns
// @Summary List featured campaigns
// @Tags donations
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.StructuredResponse{data=[]dto.DonationResponse} "Featured campaigns"
// @Router /alumni/donations/featured [get]
func (c *MemberDonationController) ListFeaturedDonations(ctx *gin.Context) {
	donations, err := c.donationService.ListFeaturedDonations(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromDonations(donations), "Featured donations retrieved"))
}

// GetCategories lists the campaign category choices
// @Summary List donation categories
// @Tags donations
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.StructuredResponse{data=map[string]string} "Categories"
// @Router /alumni/donations/categories [get]
func (c *MemberDonationController) GetCategories(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(c.donationService.GetCategories(), "Categories retrieved"))
}

// GetDonation returns a single campaign by its public identifier
// @Summary Get a donation campaign
// @Tags donations
// @Security BearerAuth
// @Produce json
// @Param donationUuid path string true "Donation UUID"
// @Success 200 {object} dto.StructuredResponse{data=dto.DonationResponse} "Donation campaign"
// @Failure 404 {object} dto.ErrorResponse "Donation not found"
// @Router /alumni/donations/{donationUuid} [get]
func (c *MemberDonationController) GetDonation(ctx *gin.Context) {
	donation, err := c.donationService.GetDonation(ctx.Request.Context(), ctx.Param("donationUuid"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromDonation(donation), "Donation retrieved"))
}

// MakePayment records a contribution toward a campaign
// @Summary Contribute to a campaign
// @Description Records a pending payment toward the campaign. The payment completes once the payment gateway confirms it.
// @Tags donations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param donationUuid path string true "Donation UUID"
// @Param request body dto.MakePaymentRequest true "Payment details"
// @Success 201 {object} dto.StructuredResponse{data=dto.PaymentResponse} "Payment recorded"
// @Failure 400 {object} dto.ErrorResponse "Amount below the campaign minimum"
// @Failure 404 {object} dto.ErrorResponse "Donation not found"
// @Failure 409 {object} dto.ErrorResponse "Campaign not accepting payments"
// @Router /alumni/donations/{donationUuid}/payments [post]
func (c *MemberDonationController) MakePayment(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.MakePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	payment, err := c.donationService.MakePayment(ctx.Request.Context(), userID, ctx.Param("donationUuid"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.FromPayment(payment), "Payment recorded"))
}

// GetMyPayments lists the user's own contributions
// @Summary Get my payment history
// @Tags donations
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.StructuredResponse{data=dto.PaginatedResponse} "Payment history"
// @Router /alumni/donations/payments/mine [get]
func (c *MemberDonationController) GetMyPayments(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	page, pageSize := helpers.ParsePaginationParams(ctx)

	payments, total, err := c.donationService.GetUserPayments(ctx.Request.Context(), userID, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.PaginatedResponse{
		Items:      dto.FromPayments(payments),
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}, "Payments retrieved"))
}
