package dto

import "time"

// HealthResponse is the liveness payload
type HealthResponse struct {
	Status    string    `json:"status" example:"ok"`
	Timestamp time.Time `json:"timestamp"`
}
