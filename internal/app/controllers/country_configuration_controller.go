package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/winrydberg/alumni-backend/internal/app/models/dto"
	"github.com/winrydberg/alumni-backend/internal/app/services"
	"github.com/winrydberg/alumni-backend/internal/middleware"
)

// CountryConfigurationController handles the admin country policy surface
type CountryConfigurationController struct {
	configService services.CountryConfigurationService
	logger        zerolog.Logger
}

// NewCountryConfigurationController creates a new CountryConfigurationController
func NewCountryConfigurationController(configService services.CountryConfigurationService, logger zerolog.Logger) *CountryConfigurationController {
	return &CountryConfigurationController{
		configService: configService,
		logger:        logger,
	}
}

// ListConfigurations lists every country configuration
// @Summary List country configurations
// @Tags admin-configurations
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.StructuredResponse{data=[]dto.CountryConfigurationResponse} "Configurations"
// @Router /admin/country-configurations [get]
func (c *CountryConfigurationController) ListConfigurations(ctx *gin.Context) {
	configs, err := c.configService.GetConfigurations(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromCountryConfigurations(configs), "Configurations retrieved"))
}

// GetConfiguration retrieves one configuration
// @Summary Get a country configuration
// @Tags admin-configurations
// @Security BearerAuth
// @Produce json
// @Param id path int true "Configuration ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.CountryConfigurationResponse} "Configuration"
// @Failure 404 {object} dto.ErrorResponse "Configuration not found"
// @Router /admin/country-configurations/{id} [get]
func (c *CountryConfigurationController) GetConfiguration(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	cfg, err := c.configService.GetConfigurationByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromCountryConfiguration(cfg), "Configuration retrieved"))
}

// GetConfigurationByCountry retrieves the active configuration of a country
// @Summary Get the configuration for a country code
// @Tags admin-configurations
// @Security BearerAuth
// @Produce json
// @Param countryCode path string true "Two-letter ISO country code"
// @Success 200 {object} dto.StructuredResponse{data=dto.CountryConfigurationResponse} "Configuration"
// @Failure 404 {object} dto.ErrorResponse "Configuration not found"
// @Router /admin/country-configurations/country/{countryCode} [get]
func (c *CountryConfigurationController) GetConfigurationByCountry(ctx *gin.Context) {
	cfg, err := c.configService.GetConfigurationByCountry(ctx.Request.Context(), ctx.Param("countryCode"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromCountryConfiguration(cfg), "Configuration retrieved"))
}

// UpsertConfiguration creates or replaces the configuration for a country
// @Summary Create or replace a country configuration
// @Description Saves the chapter policy for a country, keyed by its country code. An existing configuration for the same country is replaced.
// @Tags admin-configurations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpsertCountryConfigurationRequest true "Configuration"
// @Success 200 {object} dto.StructuredResponse{data=dto.CountryConfigurationResponse} "Configuration saved"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Router /admin/country-configurations [put]
func (c *CountryConfigurationController) UpsertConfiguration(ctx *gin.Context) {
	var req dto.UpsertCountryConfigurationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	cfg, err := c.configService.UpsertConfiguration(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromCountryConfiguration(cfg), "Configuration saved"))
}

// DeleteConfiguration removes a configuration
// @Summary Delete a country configuration
// @Description Deletes a configuration. Fails while chapters still exist for its country.
// @Tags admin-configurations
// @Security BearerAuth
// @Produce json
// @Param id path int true "Configuration ID"
// @Success 200 {object} dto.StructuredResponse "Configuration deleted"
// @Failure 404 {object} dto.ErrorResponse "Configuration not found"
// @Failure 409 {object} dto.ErrorResponse "Chapters still reference this country"
// @Router /admin/country-configurations/{id} [delete]
func (c *CountryConfigurationController) DeleteConfiguration(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.configService.DeleteConfiguration(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Configuration deleted"))
}
