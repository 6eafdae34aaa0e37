package dto

import "github.com/tinkerlab/labtrack/internal/app/models"

// CreateEquipmentRequest represents the request body for adding equipment
type CreateEquipmentRequest struct {
	Name               string                   `json:"name" binding:"required,max=200" example:"CNC Mill"`
	Description        *string                  `json:"description" example:"3-axis benchtop mill"`
	Category           models.EquipmentCategory `json:"category" binding:"required,equipment_category" example:"machining"`
	Location           string                   `json:"location" binding:"required,max=200" example:"Bay 2"`
	Status             models.EquipmentStatus   `json:"status" binding:"omitempty,equipment_status" example:"available"`
	ImageURL           *string                  `json:"imageUrl" binding:"omitempty,url"`
	Specifications     map[string]interface{}   `json:"specifications"`
	SafetyRequirements *string                  `json:"safetyRequirements"`
	MaxUsageDuration   *int32                   `json:"maxUsageDuration" binding:"omitempty,gt=0" example:"4"`
	RequiresTraining   bool                     `json:"requiresTraining" example:"true"`
}

// ToModel converts the request into a new equipment row
func (r *CreateEquipmentRequest) ToModel() *models.Equipment {
	status := r.Status
	if status == "" {
		status = models.EquipmentAvailable
	}
	return &models.Equipment{
		Name:               r.Name,
		Description:        r.Description,
		Category:           r.Category,
		Location:           r.Location,
		Status:             status,
		ImageURL:           r.ImageURL,
		Specifications:     r.Specifications,
		SafetyRequirements: r.SafetyRequirements,
		MaxUsageDuration:   r.MaxUsageDuration,
		RequiresTraining:   r.RequiresTraining,
		IsActive:           true,
	}
}

// UpdateEquipmentRequest is a partial update; omitted fields are unchanged
type UpdateEquipmentRequest struct {
	Name               *string                   `json:"name" binding:"omitempty,min=1,max=200"`
	Description        *string                   `json:"description"`
	Category           *models.EquipmentCategory `json:"category" binding:"omitempty,equipment_category"`
	Location           *string                   `json:"location" binding:"omitempty,min=1,max=200"`
	ImageURL           *string                   `json:"imageUrl" binding:"omitempty,url"`
	Specifications     map[string]interface{}    `json:"specifications"`
	SafetyRequirements *string                   `json:"safetyRequirements"`
	MaxUsageDuration   *int32                    `json:"maxUsageDuration" binding:"omitempty,gt=0"`
	RequiresTraining   *bool                     `json:"requiresTraining"`
}

// ToModel converts the request into an update set
func (r *UpdateEquipmentRequest) ToModel() models.EquipmentUpdate {
	return models.EquipmentUpdate{
		Name:               r.Name,
		Description:        r.Description,
		Category:           r.Category,
		Location:           r.Location,
		ImageURL:           r.ImageURL,
		Specifications:     r.Specifications,
		SafetyRequirements: r.SafetyRequirements,
		MaxUsageDuration:   r.MaxUsageDuration,
		RequiresTraining:   r.RequiresTraining,
	}
}

// UpdateEquipmentStatusRequest sets the operational status
type UpdateEquipmentStatusRequest struct {
	Status models.EquipmentStatus `json:"status" binding:"required,equipment_status" example:"maintenance"`
}
