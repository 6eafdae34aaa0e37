package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinkerlab/labtrack/internal/app/auth"
	"github.com/tinkerlab/labtrack/internal/app/models"
)

func TestAnalyticsService_Dashboard(t *testing.T) {
	repo := &analyticsRepoStub{
		stats: &models.DashboardStats{
			Equipment:    models.EquipmentStats{Total: 24, Available: 16, InUse: 6, Maintenance: 2},
			Reservations: models.ReservationCounts{Pending: 3},
		},
	}
	svc := NewAnalyticsService(repo, auth.NewAuthorizationService(nil))

	dash, err := svc.Dashboard(context.Background(), student)
	require.NoError(t, err)
	assert.Equal(t, int64(24), dash.Stats.Equipment.Total)
	assert.Equal(t, int64(3), dash.Stats.Reservations.Pending)
	assert.NotNil(t, dash.PopularEquipment)
	assert.Empty(t, dash.PopularEquipment)
	assert.Equal(t, uint64(4), repo.limit)
}

func TestAnalyticsService_UtilizationAndStats(t *testing.T) {
	svc := NewAnalyticsService(&analyticsRepoStub{}, auth.NewAuthorizationService(nil))
	ctx := context.Background()

	rows, err := svc.Utilization(ctx, faculty)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(3), rows[0].TotalReservations)

	stats, err := svc.ReservationStats(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.Total)
}
