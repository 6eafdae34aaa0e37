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

var equipmentColumns = []string{
	"id", "name", "description", "category", "location", "status", "image_url",
	"specifications", "safety_requirements", "max_usage_duration",
	"requires_training", "is_active", "created_at", "updated_at",
}

const equipmentReturning = "RETURNING id, name, description, category, location, status, image_url, " +
	"specifications, safety_requirements, max_usage_duration, requires_training, is_active, created_at, updated_at"

// IEquipmentRepository defines the interface for equipment database operations
type IEquipmentRepository interface {
	Create(ctx context.Context, equipment *models.Equipment) (*models.Equipment, error)
	GetByID(ctx context.Context, id int64) (*models.Equipment, error)
	ListActive(ctx context.Context) ([]*models.Equipment, error)
	Update(ctx context.Context, id int64, update models.EquipmentUpdate) (*models.Equipment, error)
	UpdateStatus(ctx context.Context, id int64, status models.EquipmentStatus) (*models.Equipment, error)
	Deactivate(ctx context.Context, id int64) error
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// EquipmentRepository handles equipment database operations
type EquipmentRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewEquipmentRepository creates a new EquipmentRepository
func NewEquipmentRepository(conn db.DBTX) *EquipmentRepository {
	return &EquipmentRepository{
		db: conn,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanEquipment(row rowScanner) (*models.Equipment, error) {
	e := &models.Equipment{}
	err := row.Scan(
		&e.ID, &e.Name, &e.Description, &e.Category, &e.Location, &e.Status, &e.ImageURL,
		&e.Specifications, &e.SafetyRequirements, &e.MaxUsageDuration,
		&e.RequiresTraining, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Create inserts a new equipment item
func (r *EquipmentRepository) Create(ctx context.Context, equipment *models.Equipment) (*models.Equipment, error) {
	sql, args, err := r.sb.Insert("equipment").
		Columns("name", "description", "category", "location", "status", "image_url",
			"specifications", "safety_requirements", "max_usage_duration", "requires_training", "is_active").
		Values(equipment.Name, equipment.Description, equipment.Category, equipment.Location, equipment.Status,
			equipment.ImageURL, equipment.Specifications, equipment.SafetyRequirements, equipment.MaxUsageDuration,
			equipment.RequiresTraining, true).
		Suffix(equipmentReturning).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create equipment SQL")
		return nil, fmt.Errorf("failed to build create equipment query: %w", err)
	}

	created, err := scanEquipment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		logger.Error().Err(err).Str("name", equipment.Name).Msg("Error executing create equipment query")
		return nil, fmt.Errorf("error creating equipment: %w", err)
	}
	return created, nil
}

// GetByID retrieves an equipment item by ID, including retired ones
func (r *EquipmentRepository) GetByID(ctx context.Context, id int64) (*models.Equipment, error) {
	sql, args, err := r.sb.Select(equipmentColumns...).
		From("equipment").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get equipment by ID SQL")
		return nil, fmt.Errorf("failed to build get equipment query: %w", err)
	}

	e, err := scanEquipment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEquipmentNotFound
		}
		logger.Error().Err(err).Int64("equipmentID", id).Msg("Error scanning equipment row")
		return nil, fmt.Errorf("error getting equipment by ID: %w", err)
	}
	return e, nil
}

// ListActive returns every active equipment item ordered by name
func (r *EquipmentRepository) ListActive(ctx context.Context) ([]*models.Equipment, error) {
	sql, args, err := r.sb.Select(equipmentColumns...).
		From("equipment").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list equipment SQL")
		return nil, fmt.Errorf("failed to build list equipment query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list equipment query")
		return nil, fmt.Errorf("error querying equipment: %w", err)
	}
	defer rows.Close()

	items := []*models.Equipment{}
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning equipment row during list")
			return nil, fmt.Errorf("error scanning equipment row: %w", err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating equipment rows")
		return nil, fmt.Errorf("error iterating equipment rows: %w", err)
	}
	return items, nil
}

// Update applies the non-nil fields of update and returns the stored row
func (r *EquipmentRepository) Update(ctx context.Context, id int64, update models.EquipmentUpdate) (*models.Equipment, error) {
	set := map[string]interface{}{"updated_at": squirrel.Expr("NOW()")}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.Location != nil {
		set["location"] = *update.Location
	}
	if update.ImageURL != nil {
		set["image_url"] = *update.ImageURL
	}
	if update.Specifications != nil {
		set["specifications"] = update.Specifications
	}
	if update.SafetyRequirements != nil {
		set["safety_requirements"] = *update.SafetyRequirements
	}
	if update.MaxUsageDuration != nil {
		set["max_usage_duration"] = *update.MaxUsageDuration
	}
	if update.RequiresTraining != nil {
		set["requires_training"] = *update.RequiresTraining
	}

	return r.updateReturning(ctx, id, set)
}

// UpdateStatus sets the operational status of an equipment item
func (r *EquipmentRepository) UpdateStatus(ctx context.Context, id int64, status models.EquipmentStatus) (*models.Equipment, error) {
	return r.updateReturning(ctx, id, map[string]interface{}{
		"status":     status,
		"updated_at": squirrel.Expr("NOW()"),
	})
}

func (r *EquipmentRepository) updateReturning(ctx context.Context, id int64, set map[string]interface{}) (*models.Equipment, error) {
	sql, args, err := r.sb.Update("equipment").
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		Suffix(equipmentReturning).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update equipment SQL")
		return nil, fmt.Errorf("failed to build update equipment query: %w", err)
	}

	e, err := scanEquipment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEquipmentNotFound
		}
		logger.Error().Err(err).Int64("equipmentID", id).Msg("Error executing update equipment query")
		return nil, fmt.Errorf("error updating equipment: %w", err)
	}
	return e, nil
}

// Deactivate soft deletes an equipment item
func (r *EquipmentRepository) Deactivate(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("equipment").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building deactivate equipment SQL")
		return fmt.Errorf("failed to build deactivate equipment query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("equipmentID", id).Msg("Error executing deactivate equipment query")
		return fmt.Errorf("error deactivating equipment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEquipmentNotFound
	}
	return nil
}

// ExistsByName reports whether an equipment item with this name exists
func (r *EquipmentRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("equipment").
		Where(squirrel.Eq{"name": name}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build equipment exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Str("name", name).Msg("Error checking equipment existence")
		return false, fmt.Errorf("error checking equipment existence: %w", err)
	}
	return exists, nil
}
