package validator

import (
	"errors"
	"strings"
)

// ErrInvalidTarget is returned when Struct is called with a non-struct value.
var ErrInvalidTarget = errors.New("validator: target must be a struct or a pointer to a struct")

// ValidationError describes one failed field.
type ValidationError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationErrors is the list of failed fields of one value.
type ValidationErrors []ValidationError

// Error joins the field messages.
func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether field failed validation.
func (e ValidationErrors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// IsValidationError reports whether err carries ValidationErrors.
func IsValidationError(err error) bool {
	_, ok := ExtractValidationErrors(err)
	return ok
}

// ExtractValidationErrors returns the ValidationErrors in err's chain.
func ExtractValidationErrors(err error) (ValidationErrors, bool) {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
