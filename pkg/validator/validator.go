package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var DigitsRegex = regexp.MustCompile("^[0-9]+$")

// MessageTag is the struct tag that overrides the generated message of a field error.
const MessageTag = "msg"

// Validator is a validator that validates the given struct.
type Validator interface {
	// Validate validates the given struct. Every failing field is reported,
	// as FieldErrors, in a single pass.
	Validate(s any) error
}

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is the set of invalid fields found while validating one value.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type DefaultValidator struct {
	v *validator.Validate
}

// NewDefaultValidator creates a new default validator.
// It returns a new DefaultValidator and an error if the validator registration fails.
func NewDefaultValidator() (*DefaultValidator, error) {
	v := validator.New()

	// Report fields by their wire name.
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return sf.Name
		}
		return name
	})

	if err := v.RegisterValidation("intstr", validateIntStr); err != nil {
		return nil, fmt.Errorf("register intstr validator: %w", err)
	}

	return &DefaultValidator{v: v}, nil
}

func (v DefaultValidator) Validate(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("validate struct: %w", err)
	}

	return toFieldErrors(s, validationErrs)
}

// IsValidationError checks if the given error is a validation error
func IsValidationError(err error) bool {
	var fieldErrs FieldErrors
	return errors.As(err, &fieldErrs)
}

func toFieldErrors(s any, validationErrs validator.ValidationErrors) FieldErrors {
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	fieldErrs := make(FieldErrors, 0, len(validationErrs))
	for _, fe := range validationErrs {
		msg := ValidationErrorMessage(fe)
		if sf, ok := t.FieldByName(fe.StructField()); ok {
			if override := sf.Tag.Get(MessageTag); override != "" {
				msg = override
			}
		}

		fieldErrs = append(fieldErrs, FieldError{
			Field:   fe.Field(),
			Message: msg,
		})
	}

	return fieldErrs
}

func ValidationErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "uuid":
		return "must be a valid UUID"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "intstr":
		return "must be an integer"
	default:
		return "is invalid"
	}
}

// validateIntStr accepts strings of ASCII digits that fit in an int64.
func validateIntStr(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if !DigitsRegex.MatchString(s) {
		return false
	}
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}
