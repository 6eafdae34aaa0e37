package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/tinkerlab/labtrack/internal/app/auth"
	"github.com/tinkerlab/labtrack/internal/app/models"
	"github.com/tinkerlab/labtrack/internal/app/repositories"
	"github.com/tinkerlab/labtrack/internal/pkg/apperrors"
)

// CheckInClockSkew is how far past the server clock a client-supplied
// check-in time may be
const CheckInClockSkew = 5 * time.Minute

// UsageService defines the interface for checkout and check-in records
type UsageService interface {
	Record(ctx context.Context, principal models.Principal, log *models.UsageLog) (*models.UsageLog, error)
	CheckIn(ctx context.Context, principal models.Principal, id int64, checkedInAt *time.Time, notes *string) (*models.UsageLog, error)
	ListByEquipment(ctx context.Context, principal models.Principal, equipmentID int64) ([]*models.UsageLog, error)
}

type usageServiceImpl struct {
	usageRepo     repositories.IUsageLogRepository
	equipmentRepo repositories.IEquipmentRepository
	authz         *auth.AuthorizationService
	now           func() time.Time
}

// NewUsageService creates a new usage service instance
func NewUsageService(usageRepo repositories.IUsageLogRepository, equipmentRepo repositories.IEquipmentRepository, authz *auth.AuthorizationService) UsageService {
	return &usageServiceImpl{
		usageRepo:     usageRepo,
		equipmentRepo: equipmentRepo,
		authz:         authz,
		now:           time.Now,
	}
}

// Record opens a usage log for the caller. Checkout time defaults to now.
func (s *usageServiceImpl) Record(ctx context.Context, principal models.Principal, log *models.UsageLog) (*models.UsageLog, error) {
	if err := s.authz.Authorize(principal, auth.OpRecordUsage); err != nil {
		return nil, err
	}

	verr := &apperrors.ValidationError{}
	if log.ReservationID <= 0 {
		verr.Add("reservationId", "reservation is required")
	}
	if log.EquipmentID <= 0 {
		verr.Add("equipmentId", "equipment is required")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	log.UserID = principal.UserID
	if log.CheckedOutAt == nil {
		now := s.now().UTC()
		log.CheckedOutAt = &now
	}
	log.CheckedInAt = nil
	log.ActualUsageDuration = nil

	created, err := s.usageRepo.Create(ctx, log)
	if err != nil {
		return nil, fmt.Errorf("error recording usage: %w", err)
	}
	return created, nil
}

// CheckIn closes an open usage log and stores the duration in whole minutes
func (s *usageServiceImpl) CheckIn(ctx context.Context, principal models.Principal, id int64, checkedInAt *time.Time, notes *string) (*models.UsageLog, error) {
	if err := s.authz.Authorize(principal, auth.OpRecordUsage); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, apperrors.NewValidationError("id", "invalid usage log ID")
	}

	existing, err := s.usageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.UserID != principal.UserID && !s.authz.Allowed(principal.Role, auth.OpViewAllReservations) {
		return nil, apperrors.NewForbiddenError("insufficient permissions")
	}
	if existing.CheckedInAt != nil {
		return nil, fmt.Errorf("%w: usage log %d is already checked in", apperrors.ErrConflict, id)
	}
	if existing.CheckedOutAt == nil {
		return nil, apperrors.NewValidationError("checkedOutAt", "usage log has no checkout time")
	}

	now := s.now().UTC()
	in := now
	if checkedInAt != nil {
		in = *checkedInAt
	}
	if in.After(now.Add(CheckInClockSkew)) {
		return nil, apperrors.NewValidationError("checkedInAt", "check-in cannot be in the future")
	}
	if in.Before(*existing.CheckedOutAt) {
		return nil, apperrors.NewValidationError("checkedInAt", "check-in cannot precede checkout")
	}

	elapsed := in.Sub(*existing.CheckedOutAt) / time.Minute
	if elapsed > math.MaxInt32 {
		return nil, apperrors.NewValidationError("checkedInAt", "usage duration is out of range")
	}
	minutes := int32(elapsed)
	if notes == nil {
		notes = existing.Notes
	}

	return s.usageRepo.CheckIn(ctx, id, in, minutes, notes)
}

// ListByEquipment returns the usage history of one item
func (s *usageServiceImpl) ListByEquipment(ctx context.Context, principal models.Principal, equipmentID int64) ([]*models.UsageLog, error) {
	if err := s.authz.Authorize(principal, auth.OpViewEquipment); err != nil {
		return nil, err
	}
	if _, err := s.equipmentRepo.GetByID(ctx, equipmentID); err != nil {
		return nil, err
	}

	list, err := s.usageRepo.ListByEquipment(ctx, equipmentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving usage logs: %w", err)
	}
	return list, nil
}
