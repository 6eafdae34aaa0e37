package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tinkerlab/labtrack/internal/app/models"
	"github.com/tinkerlab/labtrack/internal/app/models/dto"
	"github.com/tinkerlab/labtrack/internal/app/services"
	"github.com/tinkerlab/labtrack/internal/middleware"
)

// UsageController handles checkout and check-in records
type UsageController struct {
	usageService services.UsageService
}

// NewUsageController creates a new UsageController
func NewUsageController(usageService services.UsageService) *UsageController {
	return &UsageController{
		usageService: usageService,
	}
}

// RecordUsage opens a usage log
// @Summary Record usage
// @Description Records a checkout against a reservation for the caller
// @Tags usage-logs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateUsageLogRequest true "Usage log"
// @Success 201 {object} models.UsageLog "Usage recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Reservation or equipment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /usage-logs [post]
func (c *UsageController) RecordUsage(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}

	var req dto.CreateUsageLogRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	log, err := c.usageService.Record(ctx.Request.Context(), principal, &models.UsageLog{
		ReservationID: req.ReservationID,
		EquipmentID:   req.EquipmentID,
		CheckedOutAt:  req.CheckedOutAt,
		Notes:         req.Notes,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, log)
}

// CheckIn closes a usage log
// @Summary Check in
// @Description Stamps the check-in time and stores the usage duration in minutes
// @Tags usage-logs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Usage log ID"
// @Param request body dto.CheckInRequest false "Check-in details"
// @Success 200 {object} models.UsageLog "Usage log closed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Usage log not found"
// @Failure 409 {object} dto.ErrorResponse "Already checked in"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /usage-logs/{id}/checkin [patch]
func (c *UsageController) CheckIn(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.CheckInRequest
	if ctx.Request.ContentLength != 0 && !middleware.BindJSON(ctx, &req) {
		return
	}

	log, err := c.usageService.CheckIn(ctx.Request.Context(), principal, id, req.CheckedInAt, req.Notes)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, log)
}

// ListUsageLogs lists the usage history of one item
// @Summary List usage history
// @Description Lists usage logs of an equipment item with the user who checked it out
// @Tags usage-logs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Equipment ID"
// @Success 200 {array} models.UsageLog "Usage logs"
// @Failure 400 {object} dto.ErrorResponse "Invalid equipment ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Equipment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /equipment/{id}/usage-logs [get]
func (c *UsageController) ListUsageLogs(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	list, err := c.usageService.ListByEquipment(ctx.Request.Context(), principal, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, list)
}
