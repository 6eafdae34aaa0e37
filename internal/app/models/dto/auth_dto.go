package dto

import "github.com/tinkerlab/labtrack/internal/app/models"

// LoginRequest accepts any credentials; the email becomes the user id
type LoginRequest struct {
	Email     string  `json:"email" binding:"required,email" example:"jane@lab.edu"`
	Password  string  `json:"password" example:"anything"`
	FirstName *string `json:"firstName,omitempty" example:"Jane"`
	LastName  *string `json:"lastName,omitempty" example:"Doe"`
}

// LoginResponse carries the issued bearer token
type LoginResponse struct {
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
	Message string       `json:"message" example:"Login successful"`
}

// MessageResponse is a bare acknowledgement
type MessageResponse struct {
	Message string `json:"message" example:"Logged out"`
}
