package repositories

import (
	"github.com/tinkerlab/labtrack/internal/db"
)

// rowScanner is satisfied by both pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	EquipmentRepository    *EquipmentRepository
	ReservationRepository  *ReservationRepository
	UsageLogRepository     *UsageLogRepository
	TrainingRepository     *TrainingRecordRepository
	NotificationRepository *NotificationRepository
	MaintenanceRepository  *MaintenanceRepository
	AnalyticsRepository    *AnalyticsRepository
}

// NewRepositories initializes all repositories
func NewRepositories(conn db.DBTX) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(conn),
		EquipmentRepository:    NewEquipmentRepository(conn),
		ReservationRepository:  NewReservationRepository(conn),
		UsageLogRepository:     NewUsageLogRepository(conn),
		TrainingRepository:     NewTrainingRecordRepository(conn),
		NotificationRepository: NewNotificationRepository(conn),
		MaintenanceRepository:  NewMaintenanceRepository(conn),
		AnalyticsRepository:    NewAnalyticsRepository(conn),
	}
}
