package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/tinkerlab/labtrack/internal/app/models"
)

// Custom binding tags
const (
	TagEquipmentStatus   = "equipment_status"
	TagEquipmentCategory = "equipment_category"
	TagDecisionStatus    = "decision_status"
	TagNotificationType  = "notification_type"
)

var notificationTypes = []models.NotificationType{
	models.NotificationInfo, models.NotificationWarning, models.NotificationError, models.NotificationSuccess,
}

// RegisterRules installs the custom tags on v and reports field names by
// their json tag
func RegisterRules(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)

	rules := map[string]validator.Func{
		TagEquipmentStatus: func(fl validator.FieldLevel) bool {
			return oneOf(fl.Field().String(), models.EquipmentStatuses)
		},
		TagEquipmentCategory: func(fl validator.FieldLevel) bool {
			return oneOf(fl.Field().String(), models.EquipmentCategories)
		},
		TagDecisionStatus: func(fl validator.FieldLevel) bool {
			return models.ReservationStatus(fl.Field().String()).IsDecision()
		},
		TagNotificationType: func(fl validator.FieldLevel) bool {
			return oneOf(fl.Field().String(), notificationTypes)
		},
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %s rule: %w", tag, err)
		}
	}
	return nil
}

// RegisterGinRules installs the rules on gin's default binding validator
func RegisterGinRules() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	return RegisterRules(v)
}

func oneOf[T ~string](value string, allowed []T) bool {
	for _, a := range allowed {
		if string(a) == value {
			return true
		}
	}
	return false
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// Message renders a validator failure as a client readable sentence
func Message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "gte":
		return e.Field() + " must be at least " + e.Param()
	case "lte":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "url":
		return e.Field() + " must be a valid URL"
	case TagEquipmentStatus:
		return e.Field() + " must be one of: available, in_use, maintenance, out_of_order"
	case TagEquipmentCategory:
		return e.Field() + " must be one of: mechanical, electronics, testing, printing, machining"
	case TagDecisionStatus:
		return e.Field() + " must be approved or rejected"
	case TagNotificationType:
		return e.Field() + " must be one of: info, warning, error, success"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
