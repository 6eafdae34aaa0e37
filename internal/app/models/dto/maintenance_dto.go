package dto

import (
	"time"

	"github.com/tinkerlab/labtrack/internal/app/models"
)

// CreateMaintenanceRequest logs maintenance work; the caller is the performer
type CreateMaintenanceRequest struct {
	EquipmentID   int64      `json:"equipmentId" binding:"required,gt=0" example:"7"`
	Description   string     `json:"description" binding:"required" example:"Spindle bearing replacement"`
	ScheduledDate *time.Time `json:"scheduledDate"`
	CompletedDate *time.Time `json:"completedDate"`
	Cost          *int32     `json:"cost" binding:"omitempty,gte=0" example:"12500"`
	Notes         *string    `json:"notes"`
}

// ToModel converts the request into a record performed by performer
func (r *CreateMaintenanceRequest) ToModel(performer string) *models.MaintenanceRecord {
	return &models.MaintenanceRecord{
		EquipmentID:   r.EquipmentID,
		PerformedBy:   performer,
		Description:   r.Description,
		ScheduledDate: r.ScheduledDate,
		CompletedDate: r.CompletedDate,
		Cost:          r.Cost,
		Notes:         r.Notes,
	}
}
