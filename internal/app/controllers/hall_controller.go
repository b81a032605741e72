package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/winrydberg/alumni-backend/internal/app/models/dto"
	"github.com/winrydberg/alumni-backend/internal/app/services"
	"github.com/winrydberg/alumni-backend/internal/middleware"
)

// HallController serves the public hall of residence directory, used by
// the registration form
type HallController struct {
	hallService services.HallService
}

// NewHallController creates a new HallController
func NewHallController(hallService services.HallService) *HallController {
	return &HallController{hallService: hallService}
}

// ListHalls lists active halls of residence
// @Summary List halls of residence
// @Tags halls
// @Produce json
// @Param search query string false "Search by name or code"
// @Param gender query string false "Filter by gender (male, female or mixed)"
// @Success 200 {object} dto.StructuredResponse{data=[]dto.HallResponse} "Halls"
// @Router /public/halls [get]
func (c *HallController) ListHalls(ctx *gin.Context) {
	var filter dto.HallFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	halls, err := c.hallService.ListHalls(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromHalls(halls), "Halls retrieved"))
}
