package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/tinkerlab/labtrack/internal/app/models"
	"github.com/tinkerlab/labtrack/internal/db"
	"github.com/tinkerlab/labtrack/internal/pkg/logger"
)

// PopularEquipmentLimit is the size of the dashboard ranking
const PopularEquipmentLimit = 4

// IAnalyticsRepository defines the interface for aggregate queries
type IAnalyticsRepository interface {
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
	PopularEquipment(ctx context.Context, limit uint64) ([]*models.PopularEquipment, error)
	EquipmentUtilization(ctx context.Context) ([]*models.EquipmentUtilization, error)
	ReservationStats(ctx context.Context) (*models.ReservationStats, error)
}

// AnalyticsRepository runs the dashboard aggregate queries
type AnalyticsRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewAnalyticsRepository creates a new AnalyticsRepository
func NewAnalyticsRepository(conn db.DBTX) *AnalyticsRepository {
	return &AnalyticsRepository{
		db: conn,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// DashboardStats counts equipment and reservations by status, one
// conditional count per bucket in a single scan of each table.
func (r *AnalyticsRepository) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	equipmentSQL, equipmentArgs, err := r.sb.Select(
		"COUNT(*)",
		"COUNT(CASE WHEN status = 'available' THEN 1 END)",
		"COUNT(CASE WHEN status = 'in_use' THEN 1 END)",
		"COUNT(CASE WHEN status = 'maintenance' THEN 1 END)",
	).
		From("equipment").
		Where(squirrel.Eq{"is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build equipment stats query: %w", err)
	}

	stats := &models.DashboardStats{}
	if err := r.db.QueryRow(ctx, equipmentSQL, equipmentArgs...).Scan(
		&stats.Equipment.Total, &stats.Equipment.Available,
		&stats.Equipment.InUse, &stats.Equipment.Maintenance,
	); err != nil {
		logger.Error().Err(err).Msg("Error executing equipment stats query")
		return nil, fmt.Errorf("error querying equipment stats: %w", err)
	}

	reservationSQL, reservationArgs, err := r.sb.Select(
		"COUNT(CASE WHEN status = 'pending' THEN 1 END)",
		"COUNT(CASE WHEN status = 'active' THEN 1 END)",
		"COUNT(CASE WHEN status = 'completed' THEN 1 END)",
	).
		From("reservations").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build reservation stats query: %w", err)
	}

	if err := r.db.QueryRow(ctx, reservationSQL, reservationArgs...).Scan(
		&stats.Reservations.Pending, &stats.Reservations.Active, &stats.Reservations.Completed,
	); err != nil {
		logger.Error().Err(err).Msg("Error executing reservation stats query")
		return nil, fmt.Errorf("error querying reservation stats: %w", err)
	}

	return stats, nil
}

// PopularEquipment ranks active equipment by reservation count
func (r *AnalyticsRepository) PopularEquipment(ctx context.Context, limit uint64) ([]*models.PopularEquipment, error) {
	sql, args, err := r.sb.Select(
		"e.id", "e.name", "e.image_url", "e.location", "e.status", "e.category",
		"COUNT(r.id) AS reservation_count",
	).
		From("equipment e").
		LeftJoin("reservations r ON r.equipment_id = e.id").
		Where(squirrel.Eq{"e.is_active": true}).
		GroupBy("e.id", "e.name", "e.image_url", "e.location", "e.status", "e.category").
		OrderBy("reservation_count DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build popular equipment query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing popular equipment query")
		return nil, fmt.Errorf("error querying popular equipment: %w", err)
	}
	defer rows.Close()

	ranking := []*models.PopularEquipment{}
	for rows.Next() {
		p := &models.PopularEquipment{}
		if err := rows.Scan(&p.EquipmentID, &p.Name, &p.ImageURL, &p.Location,
			&p.Status, &p.Category, &p.ReservationCount); err != nil {
			return nil, fmt.Errorf("error scanning popular equipment row: %w", err)
		}
		ranking = append(ranking, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating popular equipment rows: %w", err)
	}
	return ranking, nil
}

// EquipmentUtilization aggregates reservations and usage per active item.
// Reservations and usage logs are joined to equipment independently, so the
// reservation count and the usage totals are not tied to the same reservation
// and both fan out when an item has rows in the two tables.
func (r *AnalyticsRepository) EquipmentUtilization(ctx context.Context) ([]*models.EquipmentUtilization, error) {
	sql, args, err := r.sb.Select(
		"e.id", "e.name", "e.category",
		"COUNT(r.id) AS total_reservations",
		"SUM(ul.actual_usage_duration)::bigint AS total_usage_minutes",
		"AVG(ul.actual_usage_duration)::float8 AS avg_usage_duration",
	).
		From("equipment e").
		LeftJoin("reservations r ON r.equipment_id = e.id").
		LeftJoin("usage_logs ul ON ul.equipment_id = e.id").
		Where(squirrel.Eq{"e.is_active": true}).
		GroupBy("e.id", "e.name", "e.category").
		OrderBy("e.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build utilization query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing utilization query")
		return nil, fmt.Errorf("error querying utilization: %w", err)
	}
	defer rows.Close()

	result := []*models.EquipmentUtilization{}
	for rows.Next() {
		u := &models.EquipmentUtilization{}
		if err := rows.Scan(&u.EquipmentID, &u.Name, &u.Category, &u.TotalReservations,
			&u.TotalUsageMinutes, &u.AvgUsageDuration); err != nil {
			return nil, fmt.Errorf("error scanning utilization row: %w", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating utilization rows: %w", err)
	}
	return result, nil
}

// ReservationStats counts reservations across all users
func (r *AnalyticsRepository) ReservationStats(ctx context.Context) (*models.ReservationStats, error) {
	sql, args, err := r.sb.Select(
		"COUNT(*)",
		"COUNT(CASE WHEN status = 'pending' THEN 1 END)",
		"COUNT(CASE WHEN status = 'approved' THEN 1 END)",
		"COUNT(CASE WHEN status = 'active' THEN 1 END)",
	).
		From("reservations").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build reservation totals query: %w", err)
	}

	stats := &models.ReservationStats{}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&stats.Total, &stats.Pending, &stats.Approved, &stats.Active); err != nil {
		logger.Error().Err(err).Msg("Error executing reservation totals query")
		return nil, fmt.Errorf("error querying reservation totals: %w", err)
	}
	return stats, nil
}
