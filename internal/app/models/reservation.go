package models

import "time"

// ReservationStatus is the lifecycle state of a reservation
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationApproved  ReservationStatus = "approved"
	ReservationRejected  ReservationStatus = "rejected"
	ReservationActive    ReservationStatus = "active"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// IsDecision reports whether s is a status a supervisor may record.
func (s ReservationStatus) IsDecision() bool {
	return s == ReservationApproved || s == ReservationRejected
}

// Reservation is a time-bounded request to use one equipment item.
// User and Equipment are only populated by joined reads.
type Reservation struct {
	ID            int64             `json:"id" example:"1"`
	UserID        string            `json:"userId" example:"u1"`
	EquipmentID   int64             `json:"equipmentId" example:"7"`
	Purpose       string            `json:"purpose" example:"Testing the new CNC calibration"`
	StartTime     time.Time         `json:"startTime" example:"2025-01-10T09:00:00Z"`
	EndTime       time.Time         `json:"endTime" example:"2025-01-10T11:00:00Z"`
	Status        ReservationStatus `json:"status" example:"pending"`
	ApprovedBy    *string           `json:"approvedBy"`
	ApprovalNotes *string           `json:"approvalNotes"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
	User          *UserSummary      `json:"user,omitempty"`
	Equipment     *EquipmentSummary `json:"equipment,omitempty"`
}

// NewReservation is the insert shape; status and decision fields are never
// caller supplied.
type NewReservation struct {
	UserID      string
	EquipmentID int64
	Purpose     string
	StartTime   time.Time
	EndTime     time.Time
}
