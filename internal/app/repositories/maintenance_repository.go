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

var maintenanceColumns = []string{
	"id", "equipment_id", "performed_by", "description", "scheduled_date",
	"completed_date", "cost", "notes", "created_at",
}

// IMaintenanceRepository defines the interface for maintenance record database operations
type IMaintenanceRepository interface {
	Create(ctx context.Context, record *models.MaintenanceRecord) (*models.MaintenanceRecord, error)
	ListByEquipment(ctx context.Context, equipmentID int64) ([]*models.MaintenanceRecord, error)
}

// MaintenanceRepository handles maintenance record database operations
type MaintenanceRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewMaintenanceRepository creates a new MaintenanceRepository
func NewMaintenanceRepository(conn db.DBTX) *MaintenanceRepository {
	return &MaintenanceRepository{
		db: conn,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanMaintenance(row rowScanner) (*models.MaintenanceRecord, error) {
	m := &models.MaintenanceRecord{}
	if err := row.Scan(&m.ID, &m.EquipmentID, &m.PerformedBy, &m.Description, &m.ScheduledDate,
		&m.CompletedDate, &m.Cost, &m.Notes, &m.CreatedAt); err != nil {
		return nil, err
	}
	return m, nil
}

// Create inserts a maintenance record
func (r *MaintenanceRepository) Create(ctx context.Context, record *models.MaintenanceRecord) (*models.MaintenanceRecord, error) {
	sql, args, err := r.sb.Insert("maintenance_records").
		Columns("equipment_id", "performed_by", "description", "scheduled_date", "completed_date", "cost", "notes").
		Values(record.EquipmentID, record.PerformedBy, record.Description, record.ScheduledDate,
			record.CompletedDate, record.Cost, record.Notes).
		Suffix("RETURNING id, equipment_id, performed_by, description, scheduled_date, completed_date, cost, notes, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create maintenance record SQL")
		return nil, fmt.Errorf("failed to build create maintenance record query: %w", err)
	}

	created, err := scanMaintenance(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.ForeignKeyConstraint(err) == "maintenance_records_equipment_id_fkey" {
			return nil, apperrors.ErrEquipmentNotFound
		}
		logger.Error().Err(err).Int64("equipmentID", record.EquipmentID).Msg("Error executing create maintenance record query")
		return nil, fmt.Errorf("error creating maintenance record: %w", err)
	}
	return created, nil
}

// ListByEquipment returns the maintenance history of an equipment item, newest first
func (r *MaintenanceRepository) ListByEquipment(ctx context.Context, equipmentID int64) ([]*models.MaintenanceRecord, error) {
	sql, args, err := r.sb.Select(maintenanceColumns...).
		From("maintenance_records").
		Where(squirrel.Eq{"equipment_id": equipmentID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list maintenance records query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("equipmentID", equipmentID).Msg("Error executing list maintenance records query")
		return nil, fmt.Errorf("error querying maintenance records: %w", err)
	}
	defer rows.Close()

	records := []*models.MaintenanceRecord{}
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning maintenance record row: %w", err)
		}
		records = append(records, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating maintenance record rows: %w", err)
	}
	return records, nil
}
