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

// MemberChapterController handles the alumni-facing chapter surface:
// suggestion, discovery and the join/leave lifecycle
type MemberChapterController struct {
	chapterService    services.ChapterService
	membershipService services.MembershipService
	logger            zerolog.Logger
}

// NewMemberChapterController creates a new MemberChapterController
func NewMemberChapterController(chapterService services.ChapterService, membershipService services.MembershipService, logger zerolog.Logger) *MemberChapterController {
	return &MemberChapterController{
		chapterService:    chapterService,
		membershipService: membershipService,
		logger:            logger,
	}
}

func requireUserID(ctx *gin.Context) (int64, bool) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
	}
	return userID, ok
}

// GetSuggestedChapter resolves a chapter suggestion from the user's residence
// @Summary Suggest a chapter
// @Description Suggests the chapter matching the user's residence and the country's chapter configuration. Returns a null chapter with a reason when no suggestion can be made.
// @Tags chapters
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.StructuredResponse{data=dto.SuggestedChapterResponse} "Suggestion result"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /alumni/chapters/suggested [get]
func (c *MemberChapterController) GetSuggestedChapter(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	chapter, reason, err := c.chapterService.GetSuggestedChapter(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.SuggestedChapterResponse{
		Chapter: dto.FromChapter(chapter),
		Reason:  reason,
	}, "Chapter suggestion resolved"))
}

// GetAvailableChapters lists the chapters joinable from the user's residence
// @Summary List available chapters
// @Description Lists active chapters in the user's country of residence. Country-wide chapters are always included; city chapters only when they match the user's city of residence.
// @Tags chapters
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.StructuredResponse{data=dto.AvailableChaptersResponse} "Available chapters"
// @Failure 412 {object} dto.ErrorResponse "Country of residence not set"
// @Router /alumni/chapters/available [get]
func (c *MemberChapterController) GetAvailableChapters(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	countryCode, chapters, err := c.chapterService.GetAvailableChapters(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.AvailableChaptersResponse{
		CountryCode: countryCode,
		Chapters:    dto.FromChapters(chapters),
	}, "Available chapters retrieved"))
}

// BrowseChapters lists active chapters in the public directory
// @Summary Browse chapters
// @Tags chapters
// @Security BearerAuth
// @Produce json
// @Param search query string false "Search by name, code, country or city"
// @Param countryCode query string false "Filter by country code"
// @Param page query int false "Page number (1-based)"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.StructuredResponse{data=dto.PaginatedResponse} "Chapter directory"
// @Router /alumni/chapters [get]
func (c *MemberChapterController) BrowseChapters(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)

	chapters, total, err := c.chapterService.BrowseChapters(ctx.Request.Context(), ctx.Query("search"), ctx.Query("countryCode"), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.PaginatedResponse{
		Items:      dto.FromChapters(chapters),
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}, "Chapters retrieved"))
}

// GetChapter returns a single chapter by its public identifier
// @Summary Get a chapter
// @Tags chapters
// @Security BearerAuth
// @Produce json
// @Param chapterUuid path string true "Chapter UUID"
// @Success 200 {object} dto.StructuredResponse{data=dto.ChapterResponse} "Chapter"
// @Failure 404 {object} dto.ErrorResponse "Chapter not found"
// @Router /alumni/chapters/{chapterUuid} [get]
func (c *MemberChapterController) GetChapter(ctx *gin.Context) {
	chapter, err := c.chapterService.GetChapterByUUID(ctx.Request.Context(), ctx.Param("chapterUuid"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromChapter(chapter), "Chapter retrieved"))
}

// JoinChapter joins a chapter as the user's primary membership
// @Summary Join a chapter
// @Description Joins the chapter as the primary membership. Users with an existing primary chapter must leave it first.
// @Tags chapters
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.JoinChapterRequest true "Chapter to join"
// @Success 201 {object} dto.StructuredResponse{data=dto.MembershipResponse} "Joined"
// @Failure 404 {object} dto.ErrorResponse "Chapter not found"
// @Failure 409 {object} dto.ErrorResponse "Already a member, already has a primary chapter, or chapter inactive"
// @Router /alumni/chapters/join [post]
func (c *MemberChapterController) JoinChapter(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.JoinChapterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	membership, err := c.membershipService.JoinChapter(ctx.Request.Context(), userID, req.ChapterID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.FromMembership(membership), "Joined chapter"))
}

// LeaveChapter leaves the user's primary chapter
// @Summary Leave my chapter
// @Description Deactivates the primary membership. The membership history is kept; rejoining the same chapter later reactivates it.
// @Tags chapters
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.StructuredResponse "Left chapter"
// @Failure 404 {object} dto.ErrorResponse "No active membership"
// @Router /alumni/chapters/leave [post]
func (c *MemberChapterController) LeaveChapter(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	if err := c.membershipService.LeaveChapter(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Left chapter"))
}

// GetMyChapter returns the user's primary chapter membership
// @Summary Get my chapter
// @Tags chapters
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.StructuredResponse{data=dto.MembershipResponse} "Primary membership"
// @Failure 404 {object} dto.ErrorResponse "No active membership"
// @Router /alumni/chapters/mine [get]
func (c *MemberChapterController) GetMyChapter(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	membership, err := c.membershipService.GetMyChapter(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromMembership(membership), "Primary membership retrieved"))
}

// GetMyMemberships returns every membership row of the user
// @Summary Get my membership history
// @Tags chapters
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.StructuredResponse{data=[]dto.MembershipResponse} "Membership history"
// @Router /alumni/chapters/memberships [get]
func (c *MemberChapterController) GetMyMemberships(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	memberships, err := c.membershipService.GetMyMemberships(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := make([]*dto.MembershipResponse, 0, len(memberships))
	for _, m := range memberships {
		out = append(out, dto.FromMembership(m))
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(out, "Memberships retrieved"))
}
