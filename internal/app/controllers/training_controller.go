package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tinkerlab/labtrack/internal/app/models/dto"
	"github.com/tinkerlab/labtrack/internal/app/services"
	"github.com/tinkerlab/labtrack/internal/middleware"
)

// TrainingController handles training certifications
type TrainingController struct {
	trainingService services.TrainingService
}

// NewTrainingController creates a new TrainingController
func NewTrainingController(trainingService services.TrainingService) *TrainingController {
	return &TrainingController{
		trainingService: trainingService,
	}
}

// CertifyTraining records a training certification
// @Summary Certify training
// @Description Records that a user completed training on an equipment item. Not available to students.
// @Tags training
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTrainingRecordRequest true "Training record"
// @Success 201 {object} models.TrainingRecord "Training recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "User or equipment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /training-records [post]
func (c *TrainingController) CertifyTraining(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}

	var req dto.CreateTrainingRecordRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	record, err := c.trainingService.Certify(ctx.Request.Context(), principal, req.ToModel(principal.UserID, time.Now().UTC()))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, record)
}

// ListTraining lists the caller's certifications
// @Summary List my training records
// @Description Lists the caller's training records, most recent completion first
// @Tags training
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.TrainingRecord "Training records"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /training-records [get]
func (c *TrainingController) ListTraining(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}

	list, err := c.trainingService.ListForCaller(ctx.Request.Context(), principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, list)
}
