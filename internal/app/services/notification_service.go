package services

import (
	"context"
	"fmt"

	"github.com/tinkerlab/labtrack/internal/app/models"
	"github.com/tinkerlab/labtrack/internal/app/repositories"
	"github.com/tinkerlab/labtrack/internal/pkg/apperrors"
)

// NotificationService defines the interface for notification operations
type NotificationService interface {
	Notify(ctx context.Context, n models.NewNotification) (*models.Notification, error)
	ListForUser(ctx context.Context, principal models.Principal) ([]*models.Notification, error)
	MarkRead(ctx context.Context, principal models.Principal, id int64) (*models.Notification, error)
}

type notificationServiceImpl struct {
	notificationRepo repositories.INotificationRepository
	publisher        NotificationPublisher
}

// NewNotificationService creates a new notification service instance
func NewNotificationService(notificationRepo repositories.INotificationRepository, publisher NotificationPublisher) NotificationService {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
		publisher:        publisher,
	}
}

// Notify stores a notification and pushes it to the addressee
func (s *notificationServiceImpl) Notify(ctx context.Context, n models.NewNotification) (*models.Notification, error) {
	if n.UserID == "" {
		return nil, apperrors.NewValidationError("userId", "recipient is required")
	}

	stored, err := s.notificationRepo.Create(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("error creating notification: %w", err)
	}

	s.publisher.PublishNotification(ctx, stored)
	return stored, nil
}

// ListForUser returns the caller's notifications, newest first
func (s *notificationServiceImpl) ListForUser(ctx context.Context, principal models.Principal) ([]*models.Notification, error) {
	list, err := s.notificationRepo.ListByUser(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving notifications: %w", err)
	}
	return list, nil
}

// MarkRead flips is_read on one of the caller's notifications
func (s *notificationServiceImpl) MarkRead(ctx context.Context, principal models.Principal, id int64) (*models.Notification, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("id", "invalid notification ID")
	}

	n, err := s.notificationRepo.MarkRead(ctx, id, principal.UserID)
	if err != nil {
		return nil, err
	}
	return n, nil
}
