package dto

import (
	"time"

	"github.com/tinkerlab/labtrack/internal/pkg/apperrors"
)

// ErrorCode represents standardized error codes
type ErrorCode string

// Standard error codes for the application
const (
	// Authentication errors
	ErrorCodeUnauthorized ErrorCode = "AUTH_001"
	ErrorCodeInvalidToken ErrorCode = "AUTH_002"
	ErrorCodeExpiredToken ErrorCode = "AUTH_003"
	ErrorCodeRevokedToken ErrorCode = "AUTH_004"
	ErrorCodeForbidden    ErrorCode = "AUTH_005"

	// Resource errors
	ErrorCodeResourceNotFound ErrorCode = "RES_001"
	ErrorCodeConflict         ErrorCode = "RES_002"

	// Validation errors
	ErrorCodeValidationFailed ErrorCode = "VAL_001"

	// Server errors
	ErrorCodeInternalServer ErrorCode = "SRV_001"
)

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Message   string                 `json:"message" example:"insufficient permissions"`
	Code      ErrorCode              `json:"code,omitempty" example:"AUTH_005"`
	Errors    []apperrors.FieldError `json:"errors,omitempty"`
	Timestamp time.Time              `json:"timestamp" example:"2025-01-10T09:00:00Z"`
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(code ErrorCode, message string) *ErrorResponse {
	return &ErrorResponse{
		Message:   message,
		Code:      code,
		Timestamp: time.Now().UTC(),
	}
}

// WithFieldErrors attaches field level validation detail
func (e *ErrorResponse) WithFieldErrors(fields []apperrors.FieldError) *ErrorResponse {
	e.Errors = fields
	return e
}
