package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tinkerlab/labtrack/internal/app/models/dto"
	"github.com/tinkerlab/labtrack/internal/app/services"
	"github.com/tinkerlab/labtrack/internal/middleware"
)

// ReservationController handles the reservation workflow endpoints
type ReservationController struct {
	reservationService services.ReservationService
}

// NewReservationController creates a new ReservationController
func NewReservationController(reservationService services.ReservationService) *ReservationController {
	return &ReservationController{
		reservationService: reservationService,
	}
}

// ListReservations lists reservations visible to the caller
// @Summary List reservations
// @Description Students see their own reservations; staff see all. Newest first.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Reservation "Reservations"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reservations [get]
func (c *ReservationController) ListReservations(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}

	list, err := c.reservationService.ListForCaller(ctx.Request.Context(), principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, list)
}

// CreateReservation submits a reservation request
// @Summary Submit reservation
// @Description Creates a pending reservation for the caller and notifies the approver
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} models.Reservation "Reservation submitted"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Equipment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reservations [post]
func (c *ReservationController) CreateReservation(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}

	var req dto.CreateReservationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	reservation, err := c.reservationService.Submit(ctx.Request.Context(), principal, req.ToModel(principal.UserID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, reservation)
}

// DecideReservation approves or rejects a reservation
// @Summary Decide reservation
// @Description Records an approval or rejection and notifies the requester. Not available to students.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Param request body dto.DecideReservationRequest true "Decision"
// @Success 200 {object} models.Reservation "Reservation decided"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Reservation not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reservations/{id}/approve [patch]
func (c *ReservationController) DecideReservation(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.DecideReservationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	reservation, err := c.reservationService.Decide(ctx.Request.Context(), principal, id, req.Status, req.Notes)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, reservation)
}

// ListPendingReservations lists the decision queue
// @Summary List pending reservations
// @Description Lists pending reservations oldest first with requester and equipment. Not available to students.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Reservation "Pending reservations"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reservations/pending [get]
func (c *ReservationController) ListPendingReservations(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}

	list, err := c.reservationService.ListPending(ctx.Request.Context(), principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, list)
}
