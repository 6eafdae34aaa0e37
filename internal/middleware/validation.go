package middleware

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/tinkerlab/labtrack/internal/pkg/apperrors"
	"github.com/tinkerlab/labtrack/internal/pkg/validation"
)

// BindJSON binds the request body into obj. On failure it writes a 400 and
// returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		HandleAPIError(c, BindingError(err))
		return false
	}
	return true
}

// BindingError converts a gin binding failure into a ValidationError with one
// entry per rejected field
func BindingError(err error) *apperrors.ValidationError {
	verr := &apperrors.ValidationError{}

	var fieldErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.As(err, &fieldErrs):
		for _, fe := range fieldErrs {
			verr.Add(fe.Field(), validation.Message(fe))
		}
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		verr.Add(field, "must be of type "+typeErr.Type.String())
	case errors.As(err, &syntaxErr):
		verr.Add("body", "malformed JSON")
	default:
		verr.Add("body", "invalid request body")
	}
	return verr
}
