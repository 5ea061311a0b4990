package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hourglass-gg/hourglass/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	// Custom rules for the scheduling domain
	_ = v.RegisterValidation("weekday", validateWeekday)
	_ = v.RegisterValidation("hhmm", validateHHMM)
	_ = v.RegisterValidation("timezone_name", validateTimezoneName)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map.
// This prevents leaking internal struct names.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "weekday":
			errs[field] = "Must be one of mon, tue, wed, thu, fri, sat, sun"
		case "hhmm":
			errs[field] = "Must be a 24-hour HH:MM time"
		case "timezone_name":
			errs[field] = "Must be a valid IANA timezone name"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "gt":
			errs[field] = fmt.Sprintf("Must be greater than %s", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

func validateWeekday(fl validator.FieldLevel) bool {
	_, err := domain.ParseWeekday(fl.Field().String())
	return err == nil
}

func validateHHMM(fl validator.FieldLevel) bool {
	return domain.ValidateTime(fl.Field().String())
}

func validateTimezoneName(fl validator.FieldLevel) bool {
	return domain.ValidateTimezone(fl.Field().String())
}
