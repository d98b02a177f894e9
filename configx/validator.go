package configx

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidatorOption configures the validator.
type ValidatorOption func(*validator.Validate)

// NewValidator creates a new validator instance that reports yaml field names.
func NewValidator(opts ...ValidatorOption) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// fieldName prefers the yaml tag, then the env tag, then the Go field name.
func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"yaml", "env"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// ValidateStruct validates a struct using validator tags.
func ValidateStruct(v *validator.Validate, target any) error {
	if v == nil {
		v = NewValidator()
	}

	if err := v.Struct(target); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// FieldError is a flattened validation failure.
type FieldError struct {
	Field   string // field name as reported by the tag name func
	Path    string // dotted path below the root struct, e.g. "classes[1].name"
	Rule    string // failing validation tag, e.g. "min"
	Param   string // tag parameter, e.g. "1"
	Message string
}

// FieldErrors flattens a ValidateStruct error into per-field failures.
// Errors that did not come from the validator yield nil.
func FieldErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg := fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("%s failed %q validation (%s)", fe.Field(), fe.Tag(), fe.Param())
		}
		path := fe.Namespace()
		if i := strings.IndexByte(path, '.'); i >= 0 {
			path = path[i+1:]
		}
		out = append(out, FieldError{
			Field:   fe.Field(),
			Path:    path,
			Rule:    fe.Tag(),
			Param:   fe.Param(),
			Message: msg,
		})
	}
	return out
}
