package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tinkerlab/labtrack/internal/app/services"
	"github.com/tinkerlab/labtrack/internal/middleware"
)

// AnalyticsController serves dashboard aggregates
type AnalyticsController struct {
	analyticsService services.AnalyticsService
}

// NewAnalyticsController creates a new AnalyticsController
func NewAnalyticsController(analyticsService services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{
		analyticsService: analyticsService,
	}
}

// GetDashboard returns the dashboard aggregates
// @Summary Dashboard
// @Description Equipment and reservation counts plus the four most reserved items
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Dashboard "Dashboard"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /analytics/dashboard [get]
func (c *AnalyticsController) GetDashboard(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}

	dashboard, err := c.analyticsService.Dashboard(ctx.Request.Context(), principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dashboard)
}

// GetEquipmentUtilization returns per-item utilization
// @Summary Equipment utilization
// @Description Reservation count and usage totals per equipment item
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.EquipmentUtilization "Utilization"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /analytics/equipment-utilization [get]
func (c *AnalyticsController) GetEquipmentUtilization(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}

	rows, err := c.analyticsService.Utilization(ctx.Request.Context(), principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, rows)
}

// GetReservationStats returns reservation totals
// @Summary Reservation stats
// @Description Reservation totals across all users
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ReservationStats "Reservation stats"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /analytics/reservations [get]
func (c *AnalyticsController) GetReservationStats(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}

	stats, err := c.analyticsService.ReservationStats(ctx.Request.Context(), principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
