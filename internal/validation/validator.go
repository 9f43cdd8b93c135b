// Package validation checks form input before it is sent to the backend,
// using a shared go-playground/validator instance.
//
// Form structs carry `validate` tags; user-facing messages are looked up by
// struct, field and failing tag so each form keeps its own wording.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single failed rule.
type FieldError struct {
	field   string
	tag     string
	param   string
	message string
}

// Field returns the struct field name that failed validation.
func (e FieldError) Field() string {
	return e.field
}

// Tag returns the validation tag that failed.
func (e FieldError) Tag() string {
	return e.tag
}

// Param returns the tag parameter, such as "6" for "min=6".
func (e FieldError) Param() string {
	return e.param
}

// Message returns the user-facing message.
func (e FieldError) Message() string {
	return e.message
}

// Error lists every failed rule in field order. Its message is the first
// failure, which is what forms display.
type Error struct {
	fields []FieldError
}

// Fields returns every failed rule.
func (e *Error) Fields() []FieldError {
	return e.fields
}

// First returns the first failed rule.
func (e *Error) First() FieldError {
	if len(e.fields) == 0 {
		return FieldError{message: "validation failed"}
	}
	return e.fields[0]
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.First().message
}

// AsError extracts an *Error from err.
func AsError(err error) (*Error, bool) {
	var vErr *Error
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

// GetValidator returns the singleton validator instance. It panics if the
// custom tags fail to register, since every form would then fail to validate.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		v, err := newValidator()
		if err != nil {
			panic(err)
		}
		validate = v
	})
	return validate
}

func newValidator() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		return nil, fmt.Errorf("register notblank: %w", err)
	}
	return v, nil
}

// notBlank fails for strings that are empty after trimming whitespace.
func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(field.String()) != ""
}

// Validate checks s and returns nil or an *Error.
func Validate(s any) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &Error{fields: []FieldError{{field: "unknown", tag: "unknown", message: err.Error()}}}
	}

	fields := make([]FieldError, len(validationErrs))
	for i, fe := range validationErrs {
		fields[i] = FieldError{
			field:   fe.Field(),
			tag:     fe.Tag(),
			param:   fe.Param(),
			message: translateError(fe),
		}
	}
	return &Error{fields: fields}
}

// translateError returns the form-specific message for fe, falling back to a
// generic one.
func translateError(fe validator.FieldError) string {
	if msg, ok := messages[fe.StructNamespace()+"."+fe.Tag()]; ok {
		return msg
	}

	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "Invalid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s must match %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
