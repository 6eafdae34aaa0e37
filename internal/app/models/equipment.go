package models

import "time"

// EquipmentCategory groups equipment for browsing
type EquipmentCategory string

const (
	CategoryMechanical  EquipmentCategory = "mechanical"
	CategoryElectronics EquipmentCategory = "electronics"
	CategoryTesting     EquipmentCategory = "testing"
	CategoryPrinting    EquipmentCategory = "printing"
	CategoryMachining   EquipmentCategory = "machining"
)

// EquipmentStatus is the operational state of an asset
type EquipmentStatus string

const (
	EquipmentAvailable   EquipmentStatus = "available"
	EquipmentInUse       EquipmentStatus = "in_use"
	EquipmentMaintenance EquipmentStatus = "maintenance"
	EquipmentOutOfOrder  EquipmentStatus = "out_of_order"
)

// EquipmentCategories and EquipmentStatuses back the request validators
var (
	EquipmentCategories = []EquipmentCategory{CategoryMechanical, CategoryElectronics, CategoryTesting, CategoryPrinting, CategoryMachining}
	EquipmentStatuses   = []EquipmentStatus{EquipmentAvailable, EquipmentInUse, EquipmentMaintenance, EquipmentOutOfOrder}
)

// Equipment is a reservable asset. IsActive=false is a soft delete.
type Equipment struct {
	ID                 int64                  `json:"id" example:"7"`
	Name               string                 `json:"name" example:"CNC Mill"`
	Description        *string                `json:"description"`
	Category           EquipmentCategory      `json:"category" example:"machining"`
	Location           string                 `json:"location" example:"Bay 2"`
	Status             EquipmentStatus        `json:"status" example:"available"`
	ImageURL           *string                `json:"imageUrl"`
	Specifications     map[string]interface{} `json:"specifications"`
	SafetyRequirements *string                `json:"safetyRequirements"`
	MaxUsageDuration   *int32                 `json:"maxUsageDuration"`
	RequiresTraining   bool                   `json:"requiresTraining"`
	IsActive           bool                   `json:"isActive"`
	CreatedAt          time.Time              `json:"createdAt"`
	UpdatedAt          time.Time              `json:"updatedAt"`
}

// EquipmentSummary is the hydrated equipment shown on joined reads
type EquipmentSummary struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// EquipmentUpdate holds the fields of a partial update; nil means unchanged.
type EquipmentUpdate struct {
	Name               *string
	Description        *string
	Category           *EquipmentCategory
	Location           *string
	ImageURL           *string
	Specifications     map[string]interface{}
	SafetyRequirements *string
	MaxUsageDuration   *int32
	RequiresTraining   *bool
}
