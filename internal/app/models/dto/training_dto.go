package dto

import (
	"time"

	"github.com/tinkerlab/labtrack/internal/app/models"
)

// CreateTrainingRecordRequest certifies a user; the caller is the certifier
type CreateTrainingRecordRequest struct {
	UserID      string     `json:"userId" binding:"required" example:"jane@lab.edu"`
	EquipmentID int64      `json:"equipmentId" binding:"required,gt=0" example:"7"`
	CompletedAt *time.Time `json:"completedAt"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	Score       *int32     `json:"score" binding:"omitempty,gte=0,lte=100" example:"92"`
	Notes       *string    `json:"notes"`
}

// ToModel converts the request into a record certified by certifier
func (r *CreateTrainingRecordRequest) ToModel(certifier string, now time.Time) *models.TrainingRecord {
	completed := now
	if r.CompletedAt != nil {
		completed = *r.CompletedAt
	}
	return &models.TrainingRecord{
		UserID:      r.UserID,
		EquipmentID: r.EquipmentID,
		CompletedAt: completed,
		ExpiresAt:   r.ExpiresAt,
		CertifiedBy: certifier,
		Score:       r.Score,
		Notes:       r.Notes,
	}
}
