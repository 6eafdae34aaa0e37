package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tinkerlab/labtrack/internal/app/models/dto"
	"github.com/tinkerlab/labtrack/internal/app/services"
	"github.com/tinkerlab/labtrack/internal/middleware"
)

// MaintenanceController handles maintenance history
type MaintenanceController struct {
	maintenanceService services.MaintenanceService
}

// NewMaintenanceController creates a new MaintenanceController
func NewMaintenanceController(maintenanceService services.MaintenanceService) *MaintenanceController {
	return &MaintenanceController{
		maintenanceService: maintenanceService,
	}
}

// LogMaintenance records maintenance work
// @Summary Log maintenance
// @Description Records maintenance performed by the caller. Not available to students.
// @Tags maintenance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateMaintenanceRequest true "Maintenance record"
// @Success 201 {object} models.MaintenanceRecord "Maintenance logged"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Equipment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /maintenance [post]
func (c *MaintenanceController) LogMaintenance(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}

	var req dto.CreateMaintenanceRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	record, err := c.maintenanceService.Log(ctx.Request.Context(), principal, req.ToModel(principal.UserID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, record)
}

// ListMaintenance lists the maintenance history of one item
// @Summary List maintenance history
// @Description Lists maintenance records of an equipment item, newest first
// @Tags maintenance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Equipment ID"
// @Success 200 {array} models.MaintenanceRecord "Maintenance records"
// @Failure 400 {object} dto.ErrorResponse "Invalid equipment ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Equipment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /equipment/{id}/maintenance [get]
func (c *MaintenanceController) ListMaintenance(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	list, err := c.maintenanceService.ListByEquipment(ctx.Request.Context(), principal, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, list)
}
