package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinkerlab/labtrack/internal/app/auth"
	"github.com/tinkerlab/labtrack/internal/app/models"
	"github.com/tinkerlab/labtrack/internal/pkg/apperrors"
)

type maintenanceRepoStub struct {
	created []*models.MaintenanceRecord
}

func (s *maintenanceRepoStub) Create(_ context.Context, r *models.MaintenanceRecord) (*models.MaintenanceRecord, error) {
	cp := *r
	cp.ID = int64(len(s.created) + 1)
	s.created = append(s.created, &cp)
	return &cp, nil
}

func (s *maintenanceRepoStub) ListByEquipment(_ context.Context, equipmentID int64) ([]*models.MaintenanceRecord, error) {
	var out []*models.MaintenanceRecord
	for _, r := range s.created {
		if r.EquipmentID == equipmentID {
			out = append(out, r)
		}
	}
	return out, nil
}

type trainingRepoStub struct {
	created []*models.TrainingRecord
}

func (s *trainingRepoStub) Create(_ context.Context, r *models.TrainingRecord) (*models.TrainingRecord, error) {
	cp := *r
	cp.ID = int64(len(s.created) + 1)
	s.created = append(s.created, &cp)
	return &cp, nil
}

func (s *trainingRepoStub) ListByUser(_ context.Context, userID string) ([]*models.TrainingRecord, error) {
	var out []*models.TrainingRecord
	for _, r := range s.created {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func TestMaintenanceService_Log(t *testing.T) {
	repo := &maintenanceRepoStub{}
	equipment := newEquipmentRepoStub(&models.Equipment{ID: 7, Name: "CNC Mill", IsActive: true})
	svc := NewMaintenanceService(repo, equipment, auth.NewAuthorizationService(nil))
	ctx := context.Background()

	_, err := svc.Log(ctx, student, &models.MaintenanceRecord{EquipmentID: 7, Description: "oil"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.Log(ctx, faculty, &models.MaintenanceRecord{EquipmentID: 7, Description: "  "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	rec, err := svc.Log(ctx, faculty, &models.MaintenanceRecord{EquipmentID: 7, Description: "Spindle bearing replacement", PerformedBy: "spoofed"})
	require.NoError(t, err)
	assert.Equal(t, "u2", rec.PerformedBy)

	list, err := svc.ListByEquipment(ctx, student, 7)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestTrainingService_Certify(t *testing.T) {
	repo := &trainingRepoStub{}
	svc := NewTrainingService(repo, auth.NewAuthorizationService(nil))
	ctx := context.Background()
	score := int32(92)

	_, err := svc.Certify(ctx, student, &models.TrainingRecord{UserID: "u1", EquipmentID: 7, CompletedAt: t0})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	expired := t0.Add(-time.Hour)
	_, err = svc.Certify(ctx, faculty, &models.TrainingRecord{UserID: "u1", EquipmentID: 7, CompletedAt: t0, ExpiresAt: &expired})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	rec, err := svc.Certify(ctx, faculty, &models.TrainingRecord{UserID: "u1", EquipmentID: 7, CompletedAt: t0, Score: &score})
	require.NoError(t, err)
	assert.Equal(t, "u2", rec.CertifiedBy)

	mine, err := svc.ListForCaller(ctx, student)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
