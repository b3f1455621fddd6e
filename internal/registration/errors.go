package registration

import (
	"errors"
	"fmt"
	"strings"
)

// Validation error kinds. A FieldError unwraps to exactly one of these.
var (
	ErrRequired         = errors.New("field is required")
	ErrMalformedEmail   = errors.New("malformed email address")
	ErrPasswordTooShort = errors.New("password too short")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrNameTokens       = errors.New("full name needs at least two words")
)

// Lifecycle errors returned by Form.
var (
	ErrSubmitInProgress = errors.New("a submission is already in progress")
	ErrNotMaskable      = errors.New("field has no visibility toggle")
)

// FieldError is a validation failure scoped to exactly one field. The message
// is kept as a format key plus arguments so it can be localized later.
type FieldError struct {
	Field Field
	Kind  error
	Key   string
	Args  []any
}

func newFieldError(f Field, kind error, key string, args ...any) *FieldError {
	return &FieldError{Field: f, Kind: kind, Key: key, Args: args}
}

// Message renders the default (English) message.
func (e *FieldError) Message() string {
	if len(e.Args) == 0 {
		return e.Key
	}
	return fmt.Sprintf(e.Key, e.Args...)
}

func (e *FieldError) Error() string {
	return string(e.Field) + ": " + e.Message()
}

func (e *FieldError) Unwrap() error {
	return e.Kind
}

// Errors maps each failing field to its error. A valid input yields an empty
// map.
type Errors map[Field]*FieldError

// Empty reports whether no rule failed.
func (e Errors) Empty() bool {
	return len(e) == 0
}

// Has reports whether the field failed validation.
func (e Errors) Has(f Field) bool {
	_, ok := e[f]
	return ok
}

// Message returns the field's message, or "" when the field is valid.
func (e Errors) Message(f Field) string {
	if fe, ok := e[f]; ok {
		return fe.Message()
	}
	return ""
}

// Messages flattens the errors into a field name → message map.
func (e Errors) Messages() map[string]string {
	out := make(map[string]string, len(e))
	for f, fe := range e {
		out[string(f)] = fe.Message()
	}
	return out
}

// Error joins the messages in form order so Errors can travel as an error.
func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range Fields {
		if fe, ok := e[f]; ok {
			parts = append(parts, fe.Error())
		}
	}
	return strings.Join(parts, "; ")
}
