package models

import "time"

// MaintenanceRecord logs scheduled or completed work on equipment
type MaintenanceRecord struct {
	ID            int64      `json:"id"`
	EquipmentID   int64      `json:"equipmentId"`
	PerformedBy   string     `json:"performedBy"`
	Description   string     `json:"description"`
	ScheduledDate *time.Time `json:"scheduledDate"`
	CompletedDate *time.Time `json:"completedDate"`
	Cost          *int32     `json:"cost"` // cents
	Notes         *string    `json:"notes"`
	CreatedAt     time.Time  `json:"createdAt"`
}
