package models

import "time"

// NotificationType drives how the client renders a notification
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
	NotificationSuccess NotificationType = "success"
)

// EntityType names the kind of entity a notification points at
type EntityType string

const (
	EntityReservation EntityType = "reservation"
	EntityEquipment   EntityType = "equipment"
	EntityMaintenance EntityType = "maintenance"
	EntityUsageLog    EntityType = "usage_log"
)

// EntityRef is a typed reference to the entity that triggered a notification.
type EntityRef struct {
	Type EntityType `json:"type"`
	ID   int64      `json:"id"`
}

// RefTo builds an EntityRef.
func RefTo(t EntityType, id int64) *EntityRef {
	return &EntityRef{Type: t, ID: id}
}

// Notification is a user-addressed message
type Notification struct {
	ID        int64            `json:"id"`
	UserID    string           `json:"userId"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	IsRead    bool             `json:"isRead"`
	Related   *EntityRef       `json:"related"`
	CreatedAt time.Time        `json:"createdAt"`
}

// NewNotification is the insert shape
type NewNotification struct {
	UserID  string
	Title   string
	Message string
	Type    NotificationType
	Related *EntityRef
}
