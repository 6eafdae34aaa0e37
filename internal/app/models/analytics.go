package models

// EquipmentStats counts active equipment by status
type EquipmentStats struct {
	Total       int64 `json:"total" example:"24"`
	Available   int64 `json:"available" example:"16"`
	InUse       int64 `json:"inUse" example:"6"`
	Maintenance int64 `json:"maintenance" example:"2"`
}

// ReservationCounts counts reservations by dashboard-relevant status
type ReservationCounts struct {
	Pending   int64 `json:"pending"`
	Active    int64 `json:"active"`
	Completed int64 `json:"completed"`
}

// DashboardStats is the stats block of the dashboard
type DashboardStats struct {
	Equipment    EquipmentStats    `json:"equipment"`
	Reservations ReservationCounts `json:"reservations"`
}

// PopularEquipment is one row of the top-4 ranking
type PopularEquipment struct {
	EquipmentID      int64             `json:"equipmentId"`
	Name             string            `json:"name"`
	ImageURL         *string           `json:"imageUrl"`
	Location         string            `json:"location"`
	Status           EquipmentStatus   `json:"status"`
	Category         EquipmentCategory `json:"category"`
	ReservationCount int64             `json:"reservationCount"`
}

// EquipmentUtilization aggregates reservations and usage per item. The two
// aggregates come from independent joins and are not correlated per reservation.
type EquipmentUtilization struct {
	EquipmentID       int64             `json:"equipmentId"`
	Name              string            `json:"name"`
	Category          EquipmentCategory `json:"category"`
	TotalReservations int64             `json:"totalReservations"`
	TotalUsageMinutes *int64            `json:"totalUsageMinutes"`
	AvgUsageDuration  *float64          `json:"avgUsageDuration"`
}

// ReservationStats are reservation totals across all users
type ReservationStats struct {
	Total    int64 `json:"totalReservations"`
	Pending  int64 `json:"pendingReservations"`
	Approved int64 `json:"approvedReservations"`
	Active   int64 `json:"activeReservations"`
}

// Dashboard is the analytics landing payload
type Dashboard struct {
	Stats            DashboardStats      `json:"stats"`
	PopularEquipment []*PopularEquipment `json:"popularEquipment"`
}
