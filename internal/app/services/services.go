package services

import (
	"context"

	"github.com/tinkerlab/labtrack/internal/app/models"
)

// Services defined in this package:
// - ReservationService: reservation submission, decisions and listings
// - NotificationService: storing, pushing and reading user notifications
// - EquipmentService: equipment catalog and status changes
// - UsageService: checkout and check-in records
// - MaintenanceService: maintenance history
// - TrainingService: training certifications
// - AnalyticsService: dashboard aggregates
// - AuthService: token issuing, logout and caller profile

// NotificationPublisher delivers a stored notification to connected clients.
// Delivery is best effort.
type NotificationPublisher interface {
	PublishNotification(ctx context.Context, n *models.Notification)
}

// NoopPublisher discards every notification
type NoopPublisher struct{}

// PublishNotification implements NotificationPublisher
func (NoopPublisher) PublishNotification(context.Context, *models.Notification) {}

// WorkflowConfig holds the reservation workflow settings
type WorkflowConfig struct {
	// ApprovalRecipient is the user id that receives new-request notifications
	ApprovalRecipient string
	// RejectionDefaultNote is stored when a rejection carries no notes
	RejectionDefaultNote string
}
