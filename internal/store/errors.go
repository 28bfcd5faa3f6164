package store

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports a rejected mutation input, naming the
// offending field. The reference behavior for bad inputs was a silent
// no-op; here every invalid input is an explicit error.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// invalidField builds a ValidationError for one field.
func invalidField(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// fromValidator converts the first tag failure reported by the
// validator into a ValidationError keyed on the JSON field name.
func fromValidator(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	return &ValidationError{Field: fe.Field(), Reason: "failed " + fe.Tag() + " check"}
}
