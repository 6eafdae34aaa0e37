package repositories

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinkerlab/labtrack/internal/app/models"
	"github.com/tinkerlab/labtrack/internal/pkg/apperrors"
)

// insertArgs matches the seven values every record insert binds
func insertArgs() []any {
	args := make([]any, 7)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

var (
	maintenanceCols = []string{
		"id", "equipment_id", "performed_by", "description", "scheduled_date",
		"completed_date", "cost", "notes", "created_at",
	}
	trainingCols = []string{
		"id", "user_id", "equipment_id", "completed_at", "expires_at",
		"certified_by", "score", "notes", "created_at",
	}
)

func TestMaintenanceRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewMaintenanceRepository(mock)
	cost := int32(12500)

	mock.ExpectQuery(`INSERT INTO maintenance_records`).
		WithArgs(insertArgs()...).
		WillReturnRows(pgxmock.NewRows(maintenanceCols).
			AddRow(int64(3), int64(7), "tech", "Spindle bearings replaced", nil, &t1, &cost, nil, t1))

	rec, err := repo.Create(context.Background(), &models.MaintenanceRecord{
		EquipmentID: 7, PerformedBy: "tech", Description: "Spindle bearings replaced", CompletedDate: &t1, Cost: &cost,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), rec.ID)
	assert.Equal(t, int32(12500), *rec.Cost)
}

func TestMaintenanceRepository_CreateUnknownEquipment(t *testing.T) {
	mock := newMock(t)
	repo := NewMaintenanceRepository(mock)

	mock.ExpectQuery(`INSERT INTO maintenance_records`).
		WithArgs(insertArgs()...).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "maintenance_records_equipment_id_fkey"})

	_, err := repo.Create(context.Background(), &models.MaintenanceRecord{EquipmentID: 99, PerformedBy: "tech", Description: "x"})
	assert.ErrorIs(t, err, apperrors.ErrEquipmentNotFound)
}

func TestMaintenanceRepository_ListByEquipment(t *testing.T) {
	mock := newMock(t)
	repo := NewMaintenanceRepository(mock)

	mock.ExpectQuery(`FROM maintenance_records WHERE equipment_id = \$1 ORDER BY created_at DESC`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(maintenanceCols))

	records, err := repo.ListByEquipment(context.Background(), 7)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestTrainingRecordRepository_CreateMapsForeignKeys(t *testing.T) {
	tests := []struct {
		constraint string
		want       error
	}{
		{"training_records_equipment_id_fkey", apperrors.ErrEquipmentNotFound},
		{"training_records_user_id_fkey", apperrors.ErrUserNotFound},
		{"training_records_certified_by_fkey", apperrors.ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			mock := newMock(t)
			repo := NewTrainingRecordRepository(mock)

			mock.ExpectQuery(`INSERT INTO training_records`).
				WithArgs(insertArgs()...).
				WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: tt.constraint})

			_, err := repo.Create(context.Background(), &models.TrainingRecord{UserID: "u1", EquipmentID: 7, CompletedAt: t0, CertifiedBy: "u2"})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestTrainingRecordRepository_ListByUser(t *testing.T) {
	mock := newMock(t)
	repo := NewTrainingRecordRepository(mock)
	score := int32(92)

	mock.ExpectQuery(`FROM training_records WHERE user_id = \$1 ORDER BY completed_at DESC`).
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows(trainingCols).
			AddRow(int64(1), "u1", int64(7), t1, nil, "u2", &score, nil, t1).
			AddRow(int64(2), "u1", int64(8), t0, nil, "u2", nil, nil, t0))

	records, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int32(92), *records[0].Score)
	assert.Nil(t, records[1].Score)
}
