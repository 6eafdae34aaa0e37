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

// EquipmentService defines the interface for equipment catalog operations
type EquipmentService interface {
	List(ctx context.Context, principal models.Principal) ([]*models.Equipment, error)
	Get(ctx context.Context, principal models.Principal, id int64) (*models.Equipment, error)
	Create(ctx context.Context, principal models.Principal, equipment *models.Equipment) (*models.Equipment, error)
	Update(ctx context.Context, principal models.Principal, id int64, update models.EquipmentUpdate) (*models.Equipment, error)
	UpdateStatus(ctx context.Context, principal models.Principal, id int64, status models.EquipmentStatus) (*models.Equipment, error)
	Retire(ctx context.Context, principal models.Principal, id int64) error
}

type equipmentServiceImpl struct {
	equipmentRepo repositories.IEquipmentRepository
	authz         *auth.AuthorizationService
}

// NewEquipmentService creates a new equipment service instance
func NewEquipmentService(equipmentRepo repositories.IEquipmentRepository, authz *auth.AuthorizationService) EquipmentService {
	return &equipmentServiceImpl{
		equipmentRepo: equipmentRepo,
		authz:         authz,
	}
}

func validEquipmentStatus(status models.EquipmentStatus) bool {
	for _, s := range models.EquipmentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func validEquipmentCategory(category models.EquipmentCategory) bool {
	for _, c := range models.EquipmentCategories {
		if c == category {
			return true
		}
	}
	return false
}

// List returns active equipment ordered by name
func (s *equipmentServiceImpl) List(ctx context.Context, principal models.Principal) ([]*models.Equipment, error) {
	if err := s.authz.Authorize(principal, auth.OpViewEquipment); err != nil {
		return nil, err
	}

	list, err := s.equipmentRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving equipment: %w", err)
	}
	return list, nil
}

// Get returns a single item, including retired ones
func (s *equipmentServiceImpl) Get(ctx context.Context, principal models.Principal, id int64) (*models.Equipment, error) {
	if err := s.authz.Authorize(principal, auth.OpViewEquipment); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, apperrors.NewValidationError("id", "invalid equipment ID")
	}
	return s.equipmentRepo.GetByID(ctx, id)
}

// Create adds a new item to the catalog
func (s *equipmentServiceImpl) Create(ctx context.Context, principal models.Principal, equipment *models.Equipment) (*models.Equipment, error) {
	if err := s.authz.Authorize(principal, auth.OpCreateEquipment); err != nil {
		return nil, err
	}

	equipment.Name = strings.TrimSpace(equipment.Name)
	equipment.Location = strings.TrimSpace(equipment.Location)
	if equipment.Status == "" {
		equipment.Status = models.EquipmentAvailable
	}
	equipment.IsActive = true

	verr := &apperrors.ValidationError{}
	if equipment.Name == "" {
		verr.Add("name", "name is required")
	}
	if equipment.Location == "" {
		verr.Add("location", "location is required")
	}
	if !validEquipmentCategory(equipment.Category) {
		verr.Add("category", "unknown equipment category")
	}
	if !validEquipmentStatus(equipment.Status) {
		verr.Add("status", "unknown equipment status")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	created, err := s.equipmentRepo.Create(ctx, equipment)
	if err != nil {
		return nil, fmt.Errorf("error creating equipment: %w", err)
	}
	return created, nil
}

// Update applies a partial update to descriptive fields
func (s *equipmentServiceImpl) Update(ctx context.Context, principal models.Principal, id int64, update models.EquipmentUpdate) (*models.Equipment, error) {
	if err := s.authz.Authorize(principal, auth.OpUpdateEquipment); err != nil {
		return nil, err
	}

	verr := &apperrors.ValidationError{}
	if id <= 0 {
		verr.Add("id", "invalid equipment ID")
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		verr.Add("name", "name cannot be empty")
	}
	if update.Location != nil && strings.TrimSpace(*update.Location) == "" {
		verr.Add("location", "location cannot be empty")
	}
	if update.Category != nil && !validEquipmentCategory(*update.Category) {
		verr.Add("category", "unknown equipment category")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	return s.equipmentRepo.Update(ctx, id, update)
}

// UpdateStatus sets the operational status of an item
func (s *equipmentServiceImpl) UpdateStatus(ctx context.Context, principal models.Principal, id int64, status models.EquipmentStatus) (*models.Equipment, error) {
	if err := s.authz.Authorize(principal, auth.OpUpdateEquipmentStatus); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, apperrors.NewValidationError("id", "invalid equipment ID")
	}
	if !validEquipmentStatus(status) {
		return nil, apperrors.NewValidationError("status", "unknown equipment status")
	}

	return s.equipmentRepo.UpdateStatus(ctx, id, status)
}

// Retire soft deletes an item; it disappears from List but stays readable by id
func (s *equipmentServiceImpl) Retire(ctx context.Context, principal models.Principal, id int64) error {
	if err := s.authz.Authorize(principal, auth.OpRetireEquipment); err != nil {
		return err
	}
	if id <= 0 {
		return apperrors.NewValidationError("id", "invalid equipment ID")
	}
	return s.equipmentRepo.Deactivate(ctx, id)
}
