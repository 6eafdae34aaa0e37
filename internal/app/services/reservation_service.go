package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tinkerlab/labtrack/internal/app/auth"
	"github.com/tinkerlab/labtrack/internal/app/models"
	"github.com/tinkerlab/labtrack/internal/app/repositories"
	"github.com/tinkerlab/labtrack/internal/pkg/apperrors"
	"github.com/tinkerlab/labtrack/internal/pkg/logger"
	"github.com/tinkerlab/labtrack/internal/pkg/metrics"
)

// MinPurposeLength is the minimum number of characters in a reservation purpose
const MinPurposeLength = 10

// ReservationService defines the reservation workflow
type ReservationService interface {
	Submit(ctx context.Context, principal models.Principal, req models.NewReservation) (*models.Reservation, error)
	Decide(ctx context.Context, principal models.Principal, id int64, status models.ReservationStatus, notes *string) (*models.Reservation, error)
	ListForCaller(ctx context.Context, principal models.Principal) ([]*models.Reservation, error)
	ListPending(ctx context.Context, principal models.Principal) ([]*models.Reservation, error)
}

type reservationServiceImpl struct {
	reservationRepo repositories.IReservationRepository
	equipmentRepo   repositories.IEquipmentRepository
	notifications   NotificationService
	authz           *auth.AuthorizationService
	config          WorkflowConfig
}

// NewReservationService creates a new reservation service instance
func NewReservationService(
	reservationRepo repositories.IReservationRepository,
	equipmentRepo repositories.IEquipmentRepository,
	notifications NotificationService,
	authz *auth.AuthorizationService,
	config WorkflowConfig,
) ReservationService {
	return &reservationServiceImpl{
		reservationRepo: reservationRepo,
		equipmentRepo:   equipmentRepo,
		notifications:   notifications,
		authz:           authz,
		config:          config,
	}
}

func validateSubmission(req models.NewReservation) error {
	verr := &apperrors.ValidationError{}

	if req.EquipmentID <= 0 {
		verr.Add("equipmentId", "equipment is required")
	}
	if utf8.RuneCountInString(strings.TrimSpace(req.Purpose)) < MinPurposeLength {
		verr.Add("purpose", fmt.Sprintf("purpose must be at least %d characters", MinPurposeLength))
	}
	if req.StartTime.IsZero() {
		verr.Add("startTime", "start time is required")
	}
	if req.EndTime.IsZero() {
		verr.Add("endTime", "end time is required")
	} else if !req.EndTime.After(req.StartTime) {
		verr.Add("endTime", "end time must be after start time")
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

// Submit creates a pending reservation for the caller and notifies the
// approver. Availability and overlapping windows are left to the approver.
func (s *reservationServiceImpl) Submit(ctx context.Context, principal models.Principal, req models.NewReservation) (*models.Reservation, error) {
	if err := s.authz.Authorize(principal, auth.OpSubmitReservation); err != nil {
		return nil, err
	}

	req.UserID = principal.UserID
	req.Purpose = strings.TrimSpace(req.Purpose)
	if err := validateSubmission(req); err != nil {
		return nil, err
	}

	equipment, err := s.equipmentRepo.GetByID(ctx, req.EquipmentID)
	if err != nil {
		return nil, err
	}

	reservation, err := s.reservationRepo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("error creating reservation: %w", err)
	}
	metrics.ReservationSubmitted()

	s.notify(ctx, "submit", models.NewNotification{
		UserID:  s.config.ApprovalRecipient,
		Title:   "New Reservation Request",
		Message: fmt.Sprintf("A new reservation request has been submitted for %s", equipment.Name),
		Type:    models.NotificationInfo,
		Related: models.RefTo(models.EntityReservation, reservation.ID),
	})

	return reservation, nil
}

// Decide records an approval or rejection. The current status is not
// checked, so a later decision overwrites an earlier one.
func (s *reservationServiceImpl) Decide(ctx context.Context, principal models.Principal, id int64, status models.ReservationStatus, notes *string) (*models.Reservation, error) {
	if err := s.authz.Authorize(principal, auth.OpDecideReservation); err != nil {
		return nil, err
	}

	if !status.IsDecision() {
		return nil, apperrors.NewValidationError("status", "status must be approved or rejected")
	}
	if id <= 0 {
		return nil, apperrors.NewValidationError("id", "invalid reservation ID")
	}

	if status == models.ReservationRejected && (notes == nil || strings.TrimSpace(*notes) == "") {
		defaultNote := s.config.RejectionDefaultNote
		notes = &defaultNote
	}

	if err := s.reservationRepo.UpdateStatus(ctx, id, status, principal.UserID, notes); err != nil {
		return nil, err
	}
	metrics.ReservationDecided(string(status))

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	equipmentName := fmt.Sprintf("equipment #%d", reservation.EquipmentID)
	if reservation.Equipment != nil && reservation.Equipment.Name != "" {
		equipmentName = reservation.Equipment.Name
	}

	notificationType := models.NotificationWarning
	if status == models.ReservationApproved {
		notificationType = models.NotificationSuccess
	}

	s.notify(ctx, "decide", models.NewNotification{
		UserID:  reservation.UserID,
		Title:   fmt.Sprintf("Reservation %s", status),
		Message: fmt.Sprintf("Your reservation for %s has been %s", equipmentName, status),
		Type:    notificationType,
		Related: models.RefTo(models.EntityReservation, reservation.ID),
	})

	return reservation, nil
}

// ListForCaller returns the caller's own reservations, or all of them for
// roles that may see every reservation
func (s *reservationServiceImpl) ListForCaller(ctx context.Context, principal models.Principal) ([]*models.Reservation, error) {
	var (
		list []*models.Reservation
		err  error
	)
	if s.authz.Allowed(principal.Role, auth.OpViewAllReservations) {
		list, err = s.reservationRepo.ListAll(ctx)
	} else {
		list, err = s.reservationRepo.ListByUser(ctx, principal.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving reservations: %w", err)
	}
	return list, nil
}

// ListPending returns the decision queue, oldest first
func (s *reservationServiceImpl) ListPending(ctx context.Context, principal models.Principal) ([]*models.Reservation, error) {
	if err := s.authz.Authorize(principal, auth.OpListPendingReservations); err != nil {
		return nil, err
	}

	list, err := s.reservationRepo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving pending reservations: %w", err)
	}
	return list, nil
}

// notify stores a side-effect notification. A failure here never undoes the
// write that triggered it.
func (s *reservationServiceImpl) notify(ctx context.Context, trigger string, n models.NewNotification) {
	if _, err := s.notifications.Notify(ctx, n); err != nil {
		metrics.NotificationFailed(trigger)
		logger.Error().Err(err).
			Str("trigger", trigger).
			Str("recipient", n.UserID).
			Msg("Failed to create reservation notification")
	}
}
