package models

import "time"

// TrainingRecord certifies a user on one equipment item
type TrainingRecord struct {
	ID          int64      `json:"id"`
	UserID      string     `json:"userId"`
	EquipmentID int64      `json:"equipmentId"`
	CompletedAt time.Time  `json:"completedAt"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	CertifiedBy string     `json:"certifiedBy"`
	Score       *int32     `json:"score"`
	Notes       *string    `json:"notes"`
	CreatedAt   time.Time  `json:"createdAt"`
}
