package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/tinkerlab/labtrack/internal/app/models"
	"github.com/tinkerlab/labtrack/internal/db"
	"github.com/tinkerlab/labtrack/internal/pkg/apperrors"
	"github.com/tinkerlab/labtrack/internal/pkg/dberrors"
	"github.com/tinkerlab/labtrack/internal/pkg/logger"
)

var trainingColumns = []string{
	"id", "user_id", "equipment_id", "completed_at", "expires_at",
	"certified_by", "score", "notes", "created_at",
}

// ITrainingRecordRepository defines the interface for training record database operations
type ITrainingRecordRepository interface {
	Create(ctx context.Context, record *models.TrainingRecord) (*models.TrainingRecord, error)
	ListByUser(ctx context.Context, userID string) ([]*models.TrainingRecord, error)
}

// TrainingRecordRepository handles training record database operations
type TrainingRecordRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewTrainingRecordRepository creates a new TrainingRecordRepository
func NewTrainingRecordRepository(conn db.DBTX) *TrainingRecordRepository {
	return &TrainingRecordRepository{
		db: conn,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanTrainingRecord(row rowScanner) (*models.TrainingRecord, error) {
	t := &models.TrainingRecord{}
	if err := row.Scan(&t.ID, &t.UserID, &t.EquipmentID, &t.CompletedAt, &t.ExpiresAt,
		&t.CertifiedBy, &t.Score, &t.Notes, &t.CreatedAt); err != nil {
		return nil, err
	}
	return t, nil
}

// Create inserts a training record
func (r *TrainingRecordRepository) Create(ctx context.Context, record *models.TrainingRecord) (*models.TrainingRecord, error) {
	sql, args, err := r.sb.Insert("training_records").
		Columns("user_id", "equipment_id", "completed_at", "expires_at", "certified_by", "score", "notes").
		Values(record.UserID, record.EquipmentID, record.CompletedAt, record.ExpiresAt,
			record.CertifiedBy, record.Score, record.Notes).
		Suffix("RETURNING id, user_id, equipment_id, completed_at, expires_at, certified_by, score, notes, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create training record SQL")
		return nil, fmt.Errorf("failed to build create training record query: %w", err)
	}

	created, err := scanTrainingRecord(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		switch dberrors.ForeignKeyConstraint(err) {
		case "training_records_equipment_id_fkey":
			return nil, apperrors.ErrEquipmentNotFound
		case "training_records_user_id_fkey", "training_records_certified_by_fkey":
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("userID", record.UserID).Msg("Error executing create training record query")
		return nil, fmt.Errorf("error creating training record: %w", err)
	}
	return created, nil
}

// ListByUser returns the training records of userID, most recent first
func (r *TrainingRecordRepository) ListByUser(ctx context.Context, userID string) ([]*models.TrainingRecord, error) {
	sql, args, err := r.sb.Select(trainingColumns...).
		From("training_records").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("completed_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list training records query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("userID", userID).Msg("Error executing list training records query")
		return nil, fmt.Errorf("error querying training records: %w", err)
	}
	defer rows.Close()

	records := []*models.TrainingRecord{}
	for rows.Next() {
		t, err := scanTrainingRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning training record row: %w", err)
		}
		records = append(records, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating training record rows: %w", err)
	}
	return records, nil
}
