package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/tinkerlab/labtrack/internal/app/auth"
	"github.com/tinkerlab/labtrack/internal/app/models"
	"github.com/tinkerlab/labtrack/internal/app/repositories"
	"github.com/tinkerlab/labtrack/internal/pkg/apperrors"
)

// TrainingService defines the interface for training certifications
type TrainingService interface {
	Certify(ctx context.Context, principal models.Principal, record *models.TrainingRecord) (*models.TrainingRecord, error)
	ListForCaller(ctx context.Context, principal models.Principal) ([]*models.TrainingRecord, error)
}

type trainingServiceImpl struct {
	trainingRepo repositories.ITrainingRecordRepository
	authz        *auth.AuthorizationService
}

// NewTrainingService creates a new training service instance
func NewTrainingService(trainingRepo repositories.ITrainingRecordRepository, authz *auth.AuthorizationService) TrainingService {
	return &trainingServiceImpl{
		trainingRepo: trainingRepo,
		authz:        authz,
	}
}

// Certify records that a user completed training, certified by the caller
func (s *trainingServiceImpl) Certify(ctx context.Context, principal models.Principal, record *models.TrainingRecord) (*models.TrainingRecord, error) {
	if err := s.authz.Authorize(principal, auth.OpCertifyTraining); err != nil {
		return nil, err
	}

	record.UserID = strings.TrimSpace(record.UserID)
	verr := &apperrors.ValidationError{}
	if record.UserID == "" {
		verr.Add("userId", "trainee is required")
	}
	if record.EquipmentID <= 0 {
		verr.Add("equipmentId", "equipment is required")
	}
	if record.Score != nil && (*record.Score < 0 || *record.Score > 100) {
		verr.Add("score", "score must be between 0 and 100")
	}
	if record.ExpiresAt != nil && !record.ExpiresAt.After(record.CompletedAt) {
		verr.Add("expiresAt", "expiry must be after completion")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	record.CertifiedBy = principal.UserID
	created, err := s.trainingRepo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("error recording training: %w", err)
	}
	return created, nil
}

// ListForCaller returns the caller's own certifications
func (s *trainingServiceImpl) ListForCaller(ctx context.Context, principal models.Principal) ([]*models.TrainingRecord, error) {
	list, err := s.trainingRepo.ListByUser(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving training records: %w", err)
	}
	return list, nil
}
