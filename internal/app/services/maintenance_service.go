package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/tinkerlab/labtrack/internal/app/auth"
	"github.com/tinkerlab/labtrack/internal/app/models"
	"github.com/tinkerlab/labtrack/internal/app/repositories"
	"github.com/tinkerlab/labtrack/internal/pkg/apperrors"
)

// MaintenanceService defines the interface for maintenance history
type MaintenanceService interface {
	Log(ctx context.Context, principal models.Principal, record *models.MaintenanceRecord) (*models.MaintenanceRecord, error)
	ListByEquipment(ctx context.Context, principal models.Principal, equipmentID int64) ([]*models.MaintenanceRecord, error)
}

type maintenanceServiceImpl struct {
	maintenanceRepo repositories.IMaintenanceRepository
	equipmentRepo   repositories.IEquipmentRepository
	authz           *auth.AuthorizationService
}

// NewMaintenanceService creates a new maintenance service instance
func NewMaintenanceService(maintenanceRepo repositories.IMaintenanceRepository, equipmentRepo repositories.IEquipmentRepository, authz *auth.AuthorizationService) MaintenanceService {
	return &maintenanceServiceImpl{
		maintenanceRepo: maintenanceRepo,
		equipmentRepo:   equipmentRepo,
		authz:           authz,
	}
}

// Log records maintenance work performed by the caller
func (s *maintenanceServiceImpl) Log(ctx context.Context, principal models.Principal, record *models.MaintenanceRecord) (*models.MaintenanceRecord, error) {
	if err := s.authz.Authorize(principal, auth.OpLogMaintenance); err != nil {
		return nil, err
	}

	record.Description = strings.TrimSpace(record.Description)
	verr := &apperrors.ValidationError{}
	if record.EquipmentID <= 0 {
		verr.Add("equipmentId", "equipment is required")
	}
	if record.Description == "" {
		verr.Add("description", "description is required")
	}
	if record.Cost != nil && *record.Cost < 0 {
		verr.Add("cost", "cost cannot be negative")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	record.PerformedBy = principal.UserID
	created, err := s.maintenanceRepo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("error logging maintenance: %w", err)
	}
	return created, nil
}

// ListByEquipment returns the maintenance history of one item, newest first
func (s *maintenanceServiceImpl) ListByEquipment(ctx context.Context, principal models.Principal, equipmentID int64) ([]*models.MaintenanceRecord, error) {
	if err := s.authz.Authorize(principal, auth.OpViewEquipment); err != nil {
		return nil, err
	}
	if _, err := s.equipmentRepo.GetByID(ctx, equipmentID); err != nil {
		return nil, err
	}

	list, err := s.maintenanceRepo.ListByEquipment(ctx, equipmentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving maintenance records: %w", err)
	}
	return list, nil
}
