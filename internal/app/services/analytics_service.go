package services

import (
	"context"
	"fmt"

	"github.com/tinkerlab/labtrack/internal/app/auth"
	"github.com/tinkerlab/labtrack/internal/app/models"
	"github.com/tinkerlab/labtrack/internal/app/repositories"
)

// AnalyticsService defines the interface for dashboard aggregates
type AnalyticsService interface {
	Dashboard(ctx context.Context, principal models.Principal) (*models.Dashboard, error)
	Utilization(ctx context.Context, principal models.Principal) ([]*models.EquipmentUtilization, error)
	ReservationStats(ctx context.Context, principal models.Principal) (*models.ReservationStats, error)
}

type analyticsServiceImpl struct {
	analyticsRepo repositories.IAnalyticsRepository
	authz         *auth.AuthorizationService
}

// NewAnalyticsService creates a new analytics service instance
func NewAnalyticsService(analyticsRepo repositories.IAnalyticsRepository, authz *auth.AuthorizationService) AnalyticsService {
	return &analyticsServiceImpl{
		analyticsRepo: analyticsRepo,
		authz:         authz,
	}
}

// Dashboard returns the stats block plus the most reserved equipment
func (s *analyticsServiceImpl) Dashboard(ctx context.Context, principal models.Principal) (*models.Dashboard, error) {
	if err := s.authz.Authorize(principal, auth.OpViewAnalytics); err != nil {
		return nil, err
	}

	stats, err := s.analyticsRepo.DashboardStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("error computing dashboard stats: %w", err)
	}

	popular, err := s.analyticsRepo.PopularEquipment(ctx, repositories.PopularEquipmentLimit)
	if err != nil {
		return nil, fmt.Errorf("error computing popular equipment: %w", err)
	}
	if popular == nil {
		popular = []*models.PopularEquipment{}
	}

	return &models.Dashboard{Stats: *stats, PopularEquipment: popular}, nil
}

// Utilization returns per-item reservation and usage aggregates
func (s *analyticsServiceImpl) Utilization(ctx context.Context, principal models.Principal) ([]*models.EquipmentUtilization, error) {
	if err := s.authz.Authorize(principal, auth.OpViewAnalytics); err != nil {
		return nil, err
	}

	rows, err := s.analyticsRepo.EquipmentUtilization(ctx)
	if err != nil {
		return nil, fmt.Errorf("error computing utilization: %w", err)
	}
	return rows, nil
}

// ReservationStats returns reservation totals across all users
func (s *analyticsServiceImpl) ReservationStats(ctx context.Context, principal models.Principal) (*models.ReservationStats, error) {
	if err := s.authz.Authorize(principal, auth.OpViewAnalytics); err != nil {
		return nil, err
	}

	stats, err := s.analyticsRepo.ReservationStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("error computing reservation stats: %w", err)
	}
	return stats, nil
}
