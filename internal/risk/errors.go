package risk

import (
	"errors"
	"strings"

	"medipred/internal/model"
)

// ErrUnknownCondition is returned for a condition no scorer is registered for
var ErrUnknownCondition = errors.New("unknown condition type")

// FieldError describes one rejected questionnaire field
type FieldError struct {
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
}

// ValidationError reports a questionnaire rejected before scoring ran
type ValidationError struct {
	Condition model.ConditionType `json:"condition"`
	Fields    []FieldError        `json:"fields"`

	cause error
}

// Unwrap exposes the underlying cause, if any
func (e *ValidationError) Unwrap() error {
	return e.cause
}

// NewValidationError builds a ValidationError for the given fields
func NewValidationError(condition model.ConditionType, fields ...FieldError) *ValidationError {
	return &ValidationError{Condition: condition, Fields: fields}
}

func (e *ValidationError) add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

func (e *ValidationError) empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Field == "" {
			parts = append(parts, f.Reason)
			continue
		}
		parts = append(parts, f.Field+" "+f.Reason)
	}
	return "invalid " + string(e.Condition) + " questionnaire: " + strings.Join(parts, "; ")
}

// IsValidationError reports whether err is or wraps a *ValidationError
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
