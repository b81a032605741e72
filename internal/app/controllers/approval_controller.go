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

// ApprovalController handles the admin account review surface
type ApprovalController struct {
	approvalService   services.ApprovalService
	membershipService services.MembershipService
	logger            zerolog.Logger
}

// NewApprovalController creates a new ApprovalController
func NewApprovalController(approvalService services.ApprovalService, membershipService services.MembershipService, logger zerolog.Logger) *ApprovalController {
	return &ApprovalController{
		approvalService:   approvalService,
		membershipService: membershipService,
		logger:            logger,
	}
}

// GetPendingUsers lists verified accounts awaiting review
// @Summary List pending accounts
// @Tags admin-users
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.StructuredResponse{data=dto.PaginatedResponse} "Pending accounts"
// @Router /admin/users/pending [get]
func (c *ApprovalController) GetPendingUsers(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)

	users, total, err := c.approvalService.GetPendingUsers(ctx.Request.Context(), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.FromUser(u))
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.PaginatedResponse{
		Items:      out,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}, "Pending accounts retrieved"))
}

// ListUsers lists accounts with filtering
// @Summary List accounts
// @Tags admin-users
// @Security BearerAuth
// @Produce json
// @Param search query string false "Search by email, name or phone"
// @Param isApproved query bool false "Filter by approval state"
// @Param isActive query bool false "Filter by active state"
// @Param page query int false "Page number (1-based)"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.StructuredResponse{data=dto.PaginatedResponse} "Accounts"
// @Router /admin/users [get]
func (c *ApprovalController) ListUsers(ctx *gin.Context) {
	var filter dto.UserFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	filter.Page, filter.PageSize = helpers.NormalizePagination(filter.Page, filter.PageSize)

	users, total, err := c.approvalService.GetUsers(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.FromUser(u))
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.PaginatedResponse{
		Items:      out,
		Pagination: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, "Accounts retrieved"))
}

// GetUser retrieves one account
// @Summary Get an account
// @Tags admin-users
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.UserResponse} "Account"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id} [get]
func (c *ApprovalController) GetUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	user, err := c.approvalService.GetUserByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromUser(user), "Account retrieved"))
}

// ApproveUser approves one pending account
// @Summary Approve an account
// @Description Approves a verified pending account. Accounts registered without a password receive a generated one by email.
// @Tags admin-users
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.UserResponse} "Account approved"
// @Failure 403 {object} dto.ErrorResponse "Account not yet verified"
// @Failure 409 {object} dto.ErrorResponse "Already approved"
// @Router /admin/users/{id}/approve [post]
func (c *ApprovalController) ApproveUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	user, err := c.approvalService.ApproveUser(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromUser(user), "Account approved"))
}

// ApproveUsers approves a batch of pending accounts
// @Summary Approve accounts in batch
// @Description Approves every eligible account in the list inside one transaction. Ineligible entries are skipped.
// @Tags admin-users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ApproveUsersRequest true "User IDs to approve"
// @Success 200 {object} dto.StructuredResponse{data=dto.ApprovalResultResponse} "Batch result"
// @Failure 400 {object} dto.ErrorResponse "No eligible users in the request"
// @Router /admin/users/approve [post]
func (c *ApprovalController) ApproveUsers(ctx *gin.Context) {
	var req dto.ApproveUsersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	result, err := c.approvalService.ApproveUsers(ctx.Request.Context(), req.UserIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(result, "Approval batch completed"))
}

// RejectUser rejects a pending account
// @Summary Reject an account
// @Tags admin-users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body dto.RejectUserRequest true "Rejection reason"
// @Success 200 {object} dto.StructuredResponse "Account rejected"
// @Failure 409 {object} dto.ErrorResponse "Approved accounts cannot be rejected"
// @Router /admin/users/{id}/reject [post]
func (c *ApprovalController) RejectUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RejectUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.approvalService.RejectUser(ctx.Request.Context(), id, req.Reason); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Account rejected"))
}

// SetAccountActive enables or disables an account
// @Summary Enable or disable an account
// @Tags admin-users
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Param active query bool true "New active state"
// @Success 200 {object} dto.StructuredResponse "Account state changed"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id}/active [put]
func (c *ApprovalController) SetAccountActive(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	active := ctx.Query("active") == "true"
	if err := c.approvalService.SetAccountActive(ctx.Request.Context(), id, active); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Account state changed"))
}

// AssignChapter reassigns a user's primary chapter
// @Summary Assign a user's primary chapter
// @Description Attaches the chapter as the user's primary membership, demoting any current primary. The leave-first rule does not apply to administrative reassignment.
// @Tags admin-users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body dto.JoinChapterRequest true "Chapter to assign"
// @Success 200 {object} dto.StructuredResponse{data=dto.MembershipResponse} "Chapter assigned"
// @Failure 404 {object} dto.ErrorResponse "Chapter not found"
// @Failure 409 {object} dto.ErrorResponse "Chapter inactive or already the user's primary chapter"
// @Router /admin/users/{id}/chapter [put]
func (c *ApprovalController) AssignChapter(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.JoinChapterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	membership, err := c.membershipService.AssignPrimaryChapter(ctx.Request.Context(), id, req.ChapterID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromMembership(membership), "Chapter assigned"))
}
