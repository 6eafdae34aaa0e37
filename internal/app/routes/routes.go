package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tinkerlab/labtrack/internal/app/auth"
	"github.com/tinkerlab/labtrack/internal/app/controllers"
	"github.com/tinkerlab/labtrack/internal/middleware"
	"github.com/tinkerlab/labtrack/internal/pkg/websocket"
)

// Controllers groups the HTTP handlers mounted by SetupRouter
type Controllers struct {
	Auth         *controllers.AuthController
	Equipment    *controllers.EquipmentController
	Reservation  *controllers.ReservationController
	Usage        *controllers.UsageController
	Maintenance  *controllers.MaintenanceController
	Training     *controllers.TrainingController
	Notification *controllers.NotificationController
	Analytics    *controllers.AnalyticsController
	WebSocket    *websocket.Handler
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group("/api")

	// --- Public routes ---
	api.GET("/health", controllers.Health)
	api.POST("/auth/login", c.Auth.Login)

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	authenticated.GET("/auth/user", c.Auth.GetCurrentUser)
	authenticated.POST("/auth/logout", c.Auth.Logout)

	equipment := authenticated.Group("/equipment")
	{
		equipment.GET("", c.Equipment.ListEquipment)
		equipment.GET("/:id", c.Equipment.GetEquipment)
		equipment.PATCH("/:id/status", c.Equipment.UpdateEquipmentStatus)
		equipment.GET("/:id/usage-logs", c.Usage.ListUsageLogs)
		equipment.GET("/:id/maintenance", c.Maintenance.ListMaintenance)

		equipment.POST("", authMiddleware.RequirePermission(auth.OpCreateEquipment), c.Equipment.CreateEquipment)
		equipment.PUT("/:id", authMiddleware.RequirePermission(auth.OpUpdateEquipment), c.Equipment.UpdateEquipment)
		equipment.DELETE("/:id", authMiddleware.RequirePermission(auth.OpRetireEquipment), c.Equipment.DeleteEquipment)
	}

	reservations := authenticated.Group("/reservations")
	{
		reservations.GET("", c.Reservation.ListReservations)
		reservations.POST("", c.Reservation.CreateReservation)
		reservations.GET("/pending", authMiddleware.RequirePermission(auth.OpListPendingReservations), c.Reservation.ListPendingReservations)
		reservations.PATCH("/:id/approve", authMiddleware.RequirePermission(auth.OpDecideReservation), c.Reservation.DecideReservation)
	}

	usageLogs := authenticated.Group("/usage-logs")
	{
		usageLogs.POST("", c.Usage.RecordUsage)
		usageLogs.PATCH("/:id/checkin", c.Usage.CheckIn)
	}

	authenticated.POST("/maintenance", authMiddleware.RequirePermission(auth.OpLogMaintenance), c.Maintenance.LogMaintenance)

	training := authenticated.Group("/training-records")
	{
		training.GET("", c.Training.ListTraining)
		training.POST("", authMiddleware.RequirePermission(auth.OpCertifyTraining), c.Training.CertifyTraining)
	}

	notifications := authenticated.Group("/notifications")
	{
		notifications.GET("", c.Notification.ListNotifications)
		notifications.PATCH("/:id/read", c.Notification.MarkNotificationRead)
	}

	analytics := authenticated.Group("/analytics")
	{
		analytics.GET("/dashboard", c.Analytics.GetDashboard)
		analytics.GET("/equipment-utilization", c.Analytics.GetEquipmentUtilization)
		analytics.GET("/reservations", c.Analytics.GetReservationStats)
	}

	// WebSocket endpoint, authenticated with the same bearer token
	if c.WebSocket != nil {
		router.GET("/ws", authMiddleware.JWTAuth(), c.WebSocket.HandleConnection)
	}
}
