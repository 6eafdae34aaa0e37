package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/tinkerlab/labtrack/internal/app/models"
	"github.com/tinkerlab/labtrack/internal/db"
	"github.com/tinkerlab/labtrack/internal/pkg/apperrors"
	"github.com/tinkerlab/labtrack/internal/pkg/dberrors"
	"github.com/tinkerlab/labtrack/internal/pkg/logger"
)

var usageLogColumns = []string{
	"id", "reservation_id", "user_id", "equipment_id", "checked_out_at",
	"checked_in_at", "actual_usage_duration", "notes", "created_at",
}

const usageLogReturning = "RETURNING id, reservation_id, user_id, equipment_id, checked_out_at, " +
	"checked_in_at, actual_usage_duration, notes, created_at"

// IUsageLogRepository defines the interface for usage log database operations
type IUsageLogRepository interface {
	Create(ctx context.Context, log *models.UsageLog) (*models.UsageLog, error)
	GetByID(ctx context.Context, id int64) (*models.UsageLog, error)
	ListByEquipment(ctx context.Context, equipmentID int64) ([]*models.UsageLog, error)
	CheckIn(ctx context.Context, id int64, checkedInAt time.Time, minutes int32, notes *string) (*models.UsageLog, error)
}

// UsageLogRepository handles usage log database operations
type UsageLogRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewUsageLogRepository creates a new UsageLogRepository
func NewUsageLogRepository(conn db.DBTX) *UsageLogRepository {
	return &UsageLogRepository{
		db: conn,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUsageLog(row rowScanner) (*models.UsageLog, error) {
	l := &models.UsageLog{}
	err := row.Scan(&l.ID, &l.ReservationID, &l.UserID, &l.EquipmentID, &l.CheckedOutAt,
		&l.CheckedInAt, &l.ActualUsageDuration, &l.Notes, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Create inserts a usage log
func (r *UsageLogRepository) Create(ctx context.Context, log *models.UsageLog) (*models.UsageLog, error) {
	sql, args, err := r.sb.Insert("usage_logs").
		Columns("reservation_id", "user_id", "equipment_id", "checked_out_at", "notes").
		Values(log.ReservationID, log.UserID, log.EquipmentID, log.CheckedOutAt, log.Notes).
		Suffix(usageLogReturning).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create usage log SQL")
		return nil, fmt.Errorf("failed to build create usage log query: %w", err)
	}

	created, err := scanUsageLog(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		switch dberrors.ForeignKeyConstraint(err) {
		case "usage_logs_reservation_id_fkey":
			return nil, apperrors.ErrReservationNotFound
		case "usage_logs_equipment_id_fkey":
			return nil, apperrors.ErrEquipmentNotFound
		case "usage_logs_user_id_fkey":
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("reservationID", log.ReservationID).Msg("Error executing create usage log query")
		return nil, fmt.Errorf("error creating usage log: %w", err)
	}
	return created, nil
}

// GetByID retrieves a usage log by ID
func (r *UsageLogRepository) GetByID(ctx context.Context, id int64) (*models.UsageLog, error) {
	sql, args, err := r.sb.Select(usageLogColumns...).
		From("usage_logs").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get usage log query: %w", err)
	}

	l, err := scanUsageLog(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUsageLogNotFound
		}
		logger.Error().Err(err).Int64("usageLogID", id).Msg("Error scanning usage log row")
		return nil, fmt.Errorf("error getting usage log by ID: %w", err)
	}
	return l, nil
}

// ListByEquipment returns the usage history of an equipment item with the
// user summary, most recent checkout first
func (r *UsageLogRepository) ListByEquipment(ctx context.Context, equipmentID int64) ([]*models.UsageLog, error) {
	sql, args, err := r.sb.Select(
		"l.id", "l.reservation_id", "l.user_id", "l.equipment_id", "l.checked_out_at",
		"l.checked_in_at", "l.actual_usage_duration", "l.notes", "l.created_at",
		"u.id", "u.first_name", "u.last_name", "u.email",
	).
		From("usage_logs l").
		LeftJoin("users u ON u.id = l.user_id").
		Where(squirrel.Eq{"l.equipment_id": equipmentID}).
		OrderBy("l.checked_out_at DESC NULLS LAST", "l.created_at DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list usage logs SQL")
		return nil, fmt.Errorf("failed to build list usage logs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("equipmentID", equipmentID).Msg("Error executing list usage logs query")
		return nil, fmt.Errorf("error querying usage logs: %w", err)
	}
	defer rows.Close()

	logs := []*models.UsageLog{}
	for rows.Next() {
		l := &models.UsageLog{}
		var userID, firstName, lastName, email *string
		if err := rows.Scan(&l.ID, &l.ReservationID, &l.UserID, &l.EquipmentID, &l.CheckedOutAt,
			&l.CheckedInAt, &l.ActualUsageDuration, &l.Notes, &l.CreatedAt,
			&userID, &firstName, &lastName, &email); err != nil {
			return nil, fmt.Errorf("error scanning usage log row: %w", err)
		}
		if userID != nil {
			l.User = &models.UserSummary{ID: *userID, FirstName: firstName, LastName: lastName, Email: email}
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating usage log rows: %w", err)
	}
	return logs, nil
}

// CheckIn stamps the check-in time and usage duration. Notes are only
// replaced when provided.
func (r *UsageLogRepository) CheckIn(ctx context.Context, id int64, checkedInAt time.Time, minutes int32, notes *string) (*models.UsageLog, error) {
	q := r.sb.Update("usage_logs").
		Set("checked_in_at", checkedInAt).
		Set("actual_usage_duration", minutes)
	if notes != nil {
		q = q.Set("notes", *notes)
	}

	sql, args, err := q.Where(squirrel.Eq{"id": id}).Suffix(usageLogReturning).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building check-in SQL")
		return nil, fmt.Errorf("failed to build check-in query: %w", err)
	}

	l, err := scanUsageLog(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUsageLogNotFound
		}
		logger.Error().Err(err).Int64("usageLogID", id).Msg("Error executing check-in query")
		return nil, fmt.Errorf("error checking in usage log: %w", err)
	}
	return l, nil
}
