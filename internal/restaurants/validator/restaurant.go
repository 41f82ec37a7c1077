package validator

import (
	"errors"
	"fmt"

	"mizdooni/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	return fmt.Sprintf("validation failed: %d error(s)", len(v))
}

type RestaurantValidator struct {
	validate *validator.Validate
}

func NewRestaurantValidator() *RestaurantValidator {
	v := validator.New()
	_ = v.RegisterValidation("time_of_day", validateTimeOfDay)

	return &RestaurantValidator{
		validate: v,
	}
}

func validateTimeOfDay(fl validator.FieldLevel) bool {
	_, err := model.ParseTimeOfDay(fl.Field().String())
	return err == nil
}

func (v *RestaurantValidator) ValidateCreate(req *model.RestaurantCreate) error {
	if err := v.validateStruct(req); err != nil {
		return err
	}
	return validateHours(req.Opening, req.Closing)
}

func (v *RestaurantValidator) ValidateHours(req *model.HoursUpdate) error {
	if err := v.validateStruct(req); err != nil {
		return err
	}
	return validateHours(req.Opening, req.Closing)
}

func (v *RestaurantValidator) ValidateTable(req *model.TableCreate) error {
	return v.validateStruct(req)
}

func (v *RestaurantValidator) validateStruct(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func validateHours(openingRaw, closingRaw string) error {
	opening, _ := model.ParseTimeOfDay(openingRaw)
	closing, _ := model.ParseTimeOfDay(closingRaw)
	if !opening.Before(closing) {
		return ValidationErrors{{
			Field:   "closing_time",
			Message: "closing_time must be after opening_time",
		}}
	}
	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message(err),
		})
	}

	return validationErrors
}

func message(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
	case "time_of_day":
		return fmt.Sprintf("%s must be a time of day in HH:MM format", err.Field())
	default:
		return fmt.Sprintf("%s failed on the '%s' rule", err.Field(), err.Tag())
	}
}
