package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/tinkerlab/labtrack/internal/app/models"
	"github.com/tinkerlab/labtrack/internal/db"
	"github.com/tinkerlab/labtrack/internal/pkg/apperrors"
	"github.com/tinkerlab/labtrack/internal/pkg/logger"
)

var notificationColumns = []string{
	"id", "user_id", "title", "message", "type", "is_read",
	"related_entity_type", "related_entity_id", "created_at",
}

const notificationReturning = "RETURNING id, user_id, title, message, type, is_read, " +
	"related_entity_type, related_entity_id, created_at"

// INotificationRepository defines the interface for notification database operations
type INotificationRepository interface {
	Create(ctx context.Context, n models.NewNotification) (*models.Notification, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id int64, userID string) (*models.Notification, error)
}

// NotificationRepository handles notification database operations
type NotificationRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(conn db.DBTX) *NotificationRepository {
	return &NotificationRepository{
		db: conn,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// scanNotification folds the two related_entity columns into an EntityRef.
// A row with only one of them set is treated as having no reference.
func scanNotification(row rowScanner) (*models.Notification, error) {
	n := &models.Notification{}
	var (
		relatedType *string
		relatedID   *int64
	)
	err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.IsRead,
		&relatedType, &relatedID, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	if relatedType != nil && relatedID != nil {
		n.Related = models.RefTo(models.EntityType(*relatedType), *relatedID)
	}
	return n, nil
}

// Create inserts a notification
func (r *NotificationRepository) Create(ctx context.Context, n models.NewNotification) (*models.Notification, error) {
	var (
		relatedType *string
		relatedID   *int64
	)
	if n.Related != nil {
		t := string(n.Related.Type)
		id := n.Related.ID
		relatedType, relatedID = &t, &id
	}

	sql, args, err := r.sb.Insert("notifications").
		Columns("user_id", "title", "message", "type", "is_read", "related_entity_type", "related_entity_id").
		Values(n.UserID, n.Title, n.Message, n.Type, false, relatedType, relatedID).
		Suffix(notificationReturning).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create notification SQL")
		return nil, fmt.Errorf("failed to build create notification query: %w", err)
	}

	created, err := scanNotification(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		logger.Error().Err(err).Str("userID", n.UserID).Msg("Error executing create notification query")
		return nil, fmt.Errorf("error creating notification: %w", err)
	}
	return created, nil
}

// ListByUser returns the notifications addressed to userID, newest first
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	sql, args, err := r.sb.Select(notificationColumns...).
		From("notifications").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list notifications SQL")
		return nil, fmt.Errorf("failed to build list notifications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("userID", userID).Msg("Error executing list notifications query")
		return nil, fmt.Errorf("error querying notifications: %w", err)
	}
	defer rows.Close()

	notifications := []*models.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning notification row: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notification rows: %w", err)
	}
	return notifications, nil
}

// MarkRead flips is_read on a notification owned by userID
func (r *NotificationRepository) MarkRead(ctx context.Context, id int64, userID string) (*models.Notification, error) {
	sql, args, err := r.sb.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		Suffix(notificationReturning).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building mark notification read SQL")
		return nil, fmt.Errorf("failed to build mark notification read query: %w", err)
	}

	n, err := scanNotification(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotificationNotFound
		}
		logger.Error().Err(err).Int64("notificationID", id).Msg("Error executing mark notification read query")
		return nil, fmt.Errorf("error marking notification read: %w", err)
	}
	return n, nil
}
