package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/winrydberg/alumni-backend/internal/app/models/dto"
	"github.com/winrydberg/alumni-backend/internal/app/services"
	"github.com/winrydberg/alumni-backend/internal/middleware"
	"github.com/winrydberg/alumni-backend/internal/pkg/helpers"
)

// ChapterManagementController handles the admin chapter surface
type ChapterManagementController struct {
	chapterService services.ChapterService
	logger         zerolog.Logger
}

// NewChapterManagementController creates a new ChapterManagementController
func NewChapterManagementController(chapterService services.ChapterService, logger zerolog.Logger) *ChapterManagementController {
	return &ChapterManagementController{
		chapterService: chapterService,
		logger:         logger,
	}
}

func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid ID parameter")
		detail = detail.WithField(name)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return 0, false
	}
	return id, true
}

// ListChapters lists chapters with filtering
// @Summary List chapters
// @Tags admin-chapters
// @Security BearerAuth
// @Produce json
// @Param search query string false "Search by name, code, country or city"
// @Param countryCode query string false "Filter by country code"
// @Param type query string false "Filter by chapter type (country or city)"
// @Param isActive query bool false "Filter by active state"
// @Param page query int false "Page number (1-based)"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.StructuredResponse{data=dto.PaginatedResponse} "Chapters"
// @Router /admin/chapters [get]
func (c *ChapterManagementController) ListChapters(ctx *gin.Context) {
	var filter dto.ChapterFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	filter.Page, filter.PageSize = helpers.NormalizePagination(filter.Page, filter.PageSize)

	chapters, total, err := c.chapterService.ListChapters(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.PaginatedResponse{
		Items:      dto.FromChapters(chapters),
		Pagination: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, "Chapters retrieved"))
}

// GetChapter retrieves one chapter
// @Summary Get a chapter
// @Tags admin-chapters
// @Security BearerAuth
// @Produce json
// @Param id path int true "Chapter ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.ChapterResponse} "Chapter"
// @Failure 404 {object} dto.ErrorResponse "Chapter not found"
// @Router /admin/chapters/{id} [get]
func (c *ChapterManagementController) GetChapter(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	chapter, err := c.chapterService.GetChapterByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromChapter(chapter), "Chapter retrieved"))
}

// CreateChapter creates a chapter
// @Summary Create a chapter
// @Description Creates a chapter. City chapters require city and stateProvince; chapter codes are unique.
// @Tags admin-chapters
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateChapterRequest true "Chapter definition"
// @Success 201 {object} dto.StructuredResponse{data=dto.ChapterResponse} "Chapter created"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Chapter code already in use"
// @Router /admin/chapters [post]
func (c *ChapterManagementController) CreateChapter(ctx *gin.Context) {
	var req dto.CreateChapterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	chapter, err := c.chapterService.CreateChapter(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.FromChapter(chapter), "Chapter created"))
}

// UpdateChapter applies a partial update to a chapter
// @Summary Update a chapter
// @Tags admin-chapters
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Chapter ID"
// @Param request body dto.UpdateChapterRequest true "Fields to change"
// @Success 200 {object} dto.StructuredResponse{data=dto.ChapterResponse} "Chapter updated"
// @Failure 404 {object} dto.ErrorResponse "Chapter not found"
// @Failure 409 {object} dto.ErrorResponse "Chapter code already in use"
// @Router /admin/chapters/{id} [put]
func (c *ChapterManagementController) UpdateChapter(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateChapterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	chapter, err := c.chapterService.UpdateChapter(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromChapter(chapter), "Chapter updated"))
}

// DeleteChapter removes a chapter without active members
// @Summary Delete a chapter
// @Description Deletes a chapter. Fails while active memberships still reference it; inactive membership history does not block deletion.
// @Tags admin-chapters
// @Security BearerAuth
// @Produce json
// @Param id path int true "Chapter ID"
// @Success 200 {object} dto.StructuredResponse "Chapter deleted"
// @Failure 404 {object} dto.ErrorResponse "Chapter not found"
// @Failure 409 {object} dto.ErrorResponse "Chapter still has active members"
// @Router /admin/chapters/{id} [delete]
func (c *ChapterManagementController) DeleteChapter(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.chapterService.DeleteChapter(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Chapter deleted"))
}

// GetChapterMembers lists the members of a chapter
// @Summary List chapter members
// @Tags admin-chapters
// @Security BearerAuth
// @Produce json
// @Param id path int true "Chapter ID"
// @Param page query int false "Page number (1-based)"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.StructuredResponse{data=dto.PaginatedResponse} "Chapter members"
// @Failure 404 {object} dto.ErrorResponse "Chapter not found"
// @Router /admin/chapters/{id}/members [get]
func (c *ChapterManagementController) GetChapterMembers(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	page, pageSize := helpers.ParsePaginationParams(ctx)

	members, total, err := c.chapterService.GetChapterMembers(ctx.Request.Context(), id, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := make([]*dto.ChapterMemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, &dto.ChapterMemberResponse{
			User:      dto.FromUser(m.User),
			IsPrimary: m.IsPrimary,
			Status:    string(m.Status),
			JoinedAt:  m.JoinedAt,
		})
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.PaginatedResponse{
		Items:      out,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}, "Chapter members retrieved"))
}

// GetStatistics aggregates chapter counts
// @Summary Chapter statistics
// @Tags admin-chapters
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.StructuredResponse{data=dto.ChapterStatisticsResponse} "Statistics"
// @Router /admin/chapters/statistics [get]
func (c *ChapterManagementController) GetStatistics(ctx *gin.Context) {
	stats, err := c.chapterService.GetStatistics(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(stats, "Statistics retrieved"))
}
