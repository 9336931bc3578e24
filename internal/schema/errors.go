package schema

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"institute-events/internal/status"
)

// Error carries per-field validation messages keyed by the form field name.
type Error struct {
	Fields validation.Errors
}

func (e *Error) Error() string {
	return "validation: " + e.Fields.Error()
}

func (e *Error) Unwrap() error {
	return status.ErrValidation
}

// Messages flattens the field errors into plain strings for JSON responses.
func (e *Error) Messages() map[string]any {
	out := make(map[string]any, len(e.Fields))
	for field, err := range e.Fields {
		if nested, ok := err.(validation.Errors); ok {
			out[field] = (&Error{Fields: nested}).Messages()
			continue
		}
		out[field] = err.Error()
	}
	return out
}

func fieldError(field string, err error) *Error {
	return &Error{Fields: validation.Errors{field: err}}
}
