package dto

import (
	"time"

	"github.com/tinkerlab/labtrack/internal/app/models"
)

// CreateReservationRequest is the submission body. The requester is always
// the authenticated caller.
type CreateReservationRequest struct {
	EquipmentID int64     `json:"equipmentId" binding:"required,gt=0" example:"7"`
	Purpose     string    `json:"purpose" binding:"required" example:"Testing the new CNC calibration"`
	StartTime   time.Time `json:"startTime" binding:"required" example:"2025-01-10T09:00:00Z"`
	EndTime     time.Time `json:"endTime" binding:"required" example:"2025-01-10T11:00:00Z"`
}

// ToModel converts the request into an insert for the given requester
func (r *CreateReservationRequest) ToModel(userID string) models.NewReservation {
	return models.NewReservation{
		UserID:      userID,
		EquipmentID: r.EquipmentID,
		Purpose:     r.Purpose,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
	}
}

// DecideReservationRequest records an approval or rejection
type DecideReservationRequest struct {
	Status models.ReservationStatus `json:"status" binding:"required,decision_status" example:"approved"`
	Notes  *string                  `json:"notes" example:"Bring safety glasses"`
}
