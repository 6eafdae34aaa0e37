package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tinkerlab/labtrack/internal/app/models/dto"
	"github.com/tinkerlab/labtrack/internal/app/services"
	"github.com/tinkerlab/labtrack/internal/middleware"
)

// EquipmentController handles equipment catalog operations
type EquipmentController struct {
	equipmentService services.EquipmentService
}

// NewEquipmentController creates a new EquipmentController
func NewEquipmentController(equipmentService services.EquipmentService) *EquipmentController {
	return &EquipmentController{
		equipmentService: equipmentService,
	}
}

// ListEquipment lists active equipment
// @Summary List equipment
// @Description Lists active equipment ordered by name
// @Tags equipment
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Equipment "Active equipment"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /equipment [get]
func (c *EquipmentController) ListEquipment(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}

	list, err := c.equipmentService.List(ctx.Request.Context(), principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, list)
}

// GetEquipment retrieves one equipment item
// @Summary Get equipment by ID
// @Description Retrieves one equipment item, including retired ones
// @Tags equipment
// @Produce json
// @Security BearerAuth
// @Param id path int true "Equipment ID"
// @Success 200 {object} models.Equipment "Equipment"
// @Failure 400 {object} dto.ErrorResponse "Invalid equipment ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Equipment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /equipment/{id} [get]
func (c *EquipmentController) GetEquipment(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	equipment, err := c.equipmentService.Get(ctx.Request.Context(), principal, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, equipment)
}

// CreateEquipment adds an item to the catalog
// @Summary Create equipment
// @Description Adds a new equipment item. Restricted to admin and faculty.
// @Tags equipment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEquipmentRequest true "Equipment information"
// @Success 201 {object} models.Equipment "Equipment created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /equipment [post]
func (c *EquipmentController) CreateEquipment(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}

	var req dto.CreateEquipmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	created, err := c.equipmentService.Create(ctx.Request.Context(), principal, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// UpdateEquipment applies a partial update
// @Summary Update equipment
// @Description Updates descriptive fields of an equipment item. Restricted to admin and faculty.
// @Tags equipment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Equipment ID"
// @Param request body dto.UpdateEquipmentRequest true "Fields to change"
// @Success 200 {object} models.Equipment "Equipment updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Equipment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /equipment/{id} [put]
func (c *EquipmentController) UpdateEquipment(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateEquipmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	updated, err := c.equipmentService.Update(ctx.Request.Context(), principal, id, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// DeleteEquipment retires an item
// @Summary Retire equipment
// @Description Soft deletes an equipment item. Restricted to admin and faculty.
// @Tags equipment
// @Produce json
// @Security BearerAuth
// @Param id path int true "Equipment ID"
// @Success 204 "Equipment retired"
// @Failure 400 {object} dto.ErrorResponse "Invalid equipment ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Equipment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /equipment/{id} [delete]
func (c *EquipmentController) DeleteEquipment(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.equipmentService.Retire(ctx.Request.Context(), principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// UpdateEquipmentStatus sets the operational status
// @Summary Set equipment status
// @Description Sets the operational status of an equipment item
// @Tags equipment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Equipment ID"
// @Param request body dto.UpdateEquipmentStatusRequest true "New status"
// @Success 200 {object} models.Equipment "Equipment updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Equipment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /equipment/{id}/status [patch]
func (c *EquipmentController) UpdateEquipmentStatus(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateEquipmentStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	updated, err := c.equipmentService.UpdateStatus(ctx.Request.Context(), principal, id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}
