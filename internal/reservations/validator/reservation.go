package validator

import (
	"errors"
	"fmt"
	"regexp"

	"mizdooni/pkg/model"

	"github.com/go-playground/validator/v10"
)

var reUserID = regexp.MustCompile(`^[A-Za-z0-9._@-]{1,64}$`)

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

type ReservationValidator struct {
	validate *validator.Validate
}

func NewReservationValidator() *ReservationValidator {
	v := validator.New()
	_ = v.RegisterValidation("user_id", func(fl validator.FieldLevel) bool {
		return reUserID.MatchString(fl.Field().String())
	})

	return &ReservationValidator{
		validate: v,
	}
}

// ValidateUserID checks the caller identity taken from the X-User-ID header.
func (v *ReservationValidator) ValidateUserID(userID string) error {
	if err := v.validate.Var(userID, "required,user_id"); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return ValidationErrors{{
				Field:   "user_id",
				Message: userIDMessage(validationErrs[0].Tag()),
			}}
		}
		return err
	}
	return nil
}

func (v *ReservationValidator) ValidateRequest(req *model.ReservationRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
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
	case "datetime":
		return fmt.Sprintf("%s must use the format %s", err.Field(), err.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
	default:
		return fmt.Sprintf("%s failed on the '%s' rule", err.Field(), err.Tag())
	}
}

func userIDMessage(tag string) string {
	if tag == "required" {
		return "X-User-ID header is required"
	}
	return "user id may only contain letters, digits and . _ @ - (at most 64 characters)"
}
