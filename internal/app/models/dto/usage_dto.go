package dto

import "time"

// CreateUsageLogRequest records a checkout against a reservation
type CreateUsageLogRequest struct {
	ReservationID int64      `json:"reservationId" binding:"required,gt=0" example:"1"`
	EquipmentID   int64      `json:"equipmentId" binding:"required,gt=0" example:"7"`
	CheckedOutAt  *time.Time `json:"checkedOutAt" example:"2025-01-10T09:05:00Z"`
	Notes         *string    `json:"notes"`
}

// CheckInRequest closes an open usage log
type CheckInRequest struct {
	CheckedInAt *time.Time `json:"checkedInAt" example:"2025-01-10T10:50:00Z"`
	Notes       *string    `json:"notes"`
}
