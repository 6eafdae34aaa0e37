package models

import "time"

// UsageLog records an actual checkout/check-in against a reservation
type UsageLog struct {
	ID                  int64        `json:"id"`
	ReservationID       int64        `json:"reservationId"`
	UserID              string       `json:"userId"`
	EquipmentID         int64        `json:"equipmentId"`
	CheckedOutAt        *time.Time   `json:"checkedOutAt"`
	CheckedInAt         *time.Time   `json:"checkedInAt"`
	ActualUsageDuration *int32       `json:"actualUsageDuration"` // minutes
	Notes               *string      `json:"notes"`
	CreatedAt           time.Time    `json:"createdAt"`
	User                *UserSummary `json:"user,omitempty"`
}
