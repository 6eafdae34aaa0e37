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
	"github.com/tinkerlab/labtrack/internal/pkg/dberrors"
	"github.com/tinkerlab/labtrack/internal/pkg/logger"
)

const reservationReturning = "RETURNING id, user_id, equipment_id, purpose, start_time, end_time, " +
	"status, approved_by, approval_notes, created_at, updated_at"

var reservationJoinedColumns = []string{
	"r.id", "r.user_id", "r.equipment_id", "r.purpose", "r.start_time", "r.end_time",
	"r.status", "r.approved_by", "r.approval_notes", "r.created_at", "r.updated_at",
	"u.id", "u.first_name", "u.last_name", "u.email",
	"e.id", "e.name", "e.location",
}

// IReservationRepository defines the interface for reservation database operations
type IReservationRepository interface {
	Create(ctx context.Context, reservation models.NewReservation) (*models.Reservation, error)
	GetByID(ctx context.Context, id int64) (*models.Reservation, error)
	ListAll(ctx context.Context) ([]*models.Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Reservation, error)
	ListPending(ctx context.Context) ([]*models.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status models.ReservationStatus, approvedBy string, notes *string) error
}

// ReservationRepository handles reservation database operations
type ReservationRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewReservationRepository creates a new ReservationRepository
func NewReservationRepository(conn db.DBTX) *ReservationRepository {
	return &ReservationRepository{
		db: conn,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanReservation(row rowScanner) (*models.Reservation, error) {
	res := &models.Reservation{}
	err := row.Scan(
		&res.ID, &res.UserID, &res.EquipmentID, &res.Purpose, &res.StartTime, &res.EndTime,
		&res.Status, &res.ApprovedBy, &res.ApprovalNotes, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// scanJoinedReservation scans a reservation row left joined with its
// requester and equipment. Missing joins leave the summaries nil.
func scanJoinedReservation(row rowScanner) (*models.Reservation, error) {
	res := &models.Reservation{}
	var (
		userID                     *string
		firstName, lastName, email *string
		equipmentID                *int64
		equipmentName, location    *string
	)
	err := row.Scan(
		&res.ID, &res.UserID, &res.EquipmentID, &res.Purpose, &res.StartTime, &res.EndTime,
		&res.Status, &res.ApprovedBy, &res.ApprovalNotes, &res.CreatedAt, &res.UpdatedAt,
		&userID, &firstName, &lastName, &email,
		&equipmentID, &equipmentName, &location,
	)
	if err != nil {
		return nil, err
	}

	if userID != nil {
		res.User = &models.UserSummary{ID: *userID, FirstName: firstName, LastName: lastName, Email: email}
	}
	if equipmentID != nil {
		summary := &models.EquipmentSummary{ID: *equipmentID}
		if equipmentName != nil {
			summary.Name = *equipmentName
		}
		if location != nil {
			summary.Location = *location
		}
		res.Equipment = summary
	}
	return res, nil
}

func (r *ReservationRepository) joinedSelect() squirrel.SelectBuilder {
	return r.sb.Select(reservationJoinedColumns...).
		From("reservations r").
		LeftJoin("users u ON u.id = r.user_id").
		LeftJoin("equipment e ON e.id = r.equipment_id")
}

// Create inserts a reservation in the pending state with no decision recorded
func (r *ReservationRepository) Create(ctx context.Context, reservation models.NewReservation) (*models.Reservation, error) {
	sql, args, err := r.sb.Insert("reservations").
		Columns("user_id", "equipment_id", "purpose", "start_time", "end_time", "status", "approved_by", "approval_notes").
		Values(reservation.UserID, reservation.EquipmentID, reservation.Purpose,
			reservation.StartTime, reservation.EndTime, models.ReservationPending, nil, nil).
		Suffix(reservationReturning).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create reservation SQL")
		return nil, fmt.Errorf("failed to build create reservation query: %w", err)
	}

	created, err := scanReservation(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		switch dberrors.ForeignKeyConstraint(err) {
		case "reservations_equipment_id_fkey":
			return nil, apperrors.ErrEquipmentNotFound
		case "reservations_user_id_fkey":
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).
			Str("userID", reservation.UserID).
			Int64("equipmentID", reservation.EquipmentID).
			Msg("Error executing create reservation query")
		return nil, fmt.Errorf("error creating reservation: %w", err)
	}
	return created, nil
}

// GetByID retrieves a reservation hydrated with requester and equipment
func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*models.Reservation, error) {
	sql, args, err := r.joinedSelect().
		Where(squirrel.Eq{"r.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get reservation by ID SQL")
		return nil, fmt.Errorf("failed to build get reservation query: %w", err)
	}

	res, err := scanJoinedReservation(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReservationNotFound
		}
		logger.Error().Err(err).Int64("reservationID", id).Msg("Error scanning reservation row")
		return nil, fmt.Errorf("error getting reservation by ID: %w", err)
	}
	return res, nil
}

// ListAll returns every reservation, newest first
func (r *ReservationRepository) ListAll(ctx context.Context) ([]*models.Reservation, error) {
	return r.list(ctx, r.joinedSelect().OrderBy("r.created_at DESC"))
}

// ListByUser returns the reservations owned by userID, newest first
func (r *ReservationRepository) ListByUser(ctx context.Context, userID string) ([]*models.Reservation, error) {
	return r.list(ctx, r.joinedSelect().
		Where(squirrel.Eq{"r.user_id": userID}).
		OrderBy("r.created_at DESC"))
}

// ListPending returns pending reservations, oldest first
func (r *ReservationRepository) ListPending(ctx context.Context) ([]*models.Reservation, error) {
	return r.list(ctx, r.joinedSelect().
		Where(squirrel.Eq{"r.status": models.ReservationPending}).
		OrderBy("r.created_at ASC"))
}

func (r *ReservationRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Reservation, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list reservations SQL")
		return nil, fmt.Errorf("failed to build list reservations query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list reservations query")
		return nil, fmt.Errorf("error querying reservations: %w", err)
	}
	defer rows.Close()

	reservations := []*models.Reservation{}
	for rows.Next() {
		res, err := scanJoinedReservation(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning reservation row during list")
			return nil, fmt.Errorf("error scanning reservation row: %w", err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating reservation rows")
		return nil, fmt.Errorf("error iterating reservation rows: %w", err)
	}
	return reservations, nil
}

// UpdateStatus records a decision. It does not look at the current status.
func (r *ReservationRepository) UpdateStatus(ctx context.Context, id int64, status models.ReservationStatus, approvedBy string, notes *string) error {
	sql, args, err := r.sb.Update("reservations").
		Set("status", status).
		Set("approved_by", approvedBy).
		Set("approval_notes", notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update reservation status SQL")
		return fmt.Errorf("failed to build update reservation status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("reservationID", id).Msg("Error executing update reservation status query")
		return fmt.Errorf("error updating reservation status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrReservationNotFound
	}
	return nil
}
