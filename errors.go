package memsim

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrValidation is matched by every ValidationError via errors.Is
var ErrValidation error = errors.New("invalid allocation request")

const (
	// ReasonCountMismatch indicates that the declared process count disagrees with the
	// number of process sizes provided
	ReasonCountMismatch = "count mismatch"
	// ReasonParseFailure indicates that a field held a token that is not a positive integer
	ReasonParseFailure = "parse failure"
	// ReasonOutOfRange indicates that every field parsed, but together they describe a memory
	// larger than the simulator supports
	ReasonOutOfRange = "out of range"
)

// ValidationError is returned when a raw request cannot be turned into an allocation request.
// No allocation is attempted for a request that produced a ValidationError; the caller may
// correct the offending field and resubmit.
type ValidationError struct {
	// Reason is one of the Reason* constants
	Reason string
	// Field names the request field that failed, if the failure can be pinned to one field
	Field string

	cause error
}

// NewValidationError builds a ValidationError for the provided reason and field. cause may be nil.
func NewValidationError(reason, field string, cause error) *ValidationError {
	return &ValidationError{
		Reason: reason,
		Field:  field,
		cause:  cause,
	}
}

func (e *ValidationError) Error() string {
	msg := e.Reason
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Reason, e.Field)
	}
	if e.cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.cause)
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.cause
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
