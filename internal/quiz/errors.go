package quiz

import (
	"fmt"
	"strings"
)

// ErrInvalidParameters is returned when quiz parameters fail validation.
type ErrInvalidParameters struct {
	Field  string
	Reason string
}

func (e *ErrInvalidParameters) Error() string {
	return fmt.Sprintf("invalid quiz parameters: %s %s", e.Field, e.Reason)
}

// ErrMalformedResponse is returned when no quiz document can be parsed out
// of a model reply.
type ErrMalformedResponse struct {
	Reason string
	Err    error
}

func (e *ErrMalformedResponse) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed model response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed model response: %s", e.Reason)
}

func (e *ErrMalformedResponse) Unwrap() error { return e.Err }

// ErrInvalidDocument is returned by Validate when a parsed document breaks
// the per-question shape rules.
type ErrInvalidDocument struct {
	Violations []string
	Err        error
}

func (e *ErrInvalidDocument) Error() string {
	if len(e.Violations) == 0 && e.Err != nil {
		return fmt.Sprintf("invalid quiz document: %v", e.Err)
	}
	return "invalid quiz document: " + strings.Join(e.Violations, "; ")
}

func (e *ErrInvalidDocument) Unwrap() error { return e.Err }
