package extraction

import (
	"errors"
	"fmt"
)

// InvalidInputError indicates empty or missing required input.
// It is never retried and is surfaced to the caller verbatim.
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}

// SchemaValidationError indicates the model response did not match the
// expected structure. It is retried once with a repair prompt, then escalated.
type SchemaValidationError struct {
	Provider string
	Reason   string
	Cause    error
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("schema validation failed (provider %s): %s", e.Provider, e.Reason)
}

func (e *SchemaValidationError) Unwrap() error {
	return e.Cause
}

// TimeoutError indicates a capability call exceeded its deadline.
// It feeds the same fallback path as SchemaValidationError.
type TimeoutError struct {
	Provider string
	Cause    error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("capability call timed out (provider %s)", e.Provider)
}

func (e *TimeoutError) Unwrap() error {
	return e.Cause
}

// CapabilityError indicates the underlying model call failed outright.
type CapabilityError struct {
	Provider string
	Cause    error
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("capability call failed (provider %s): %v", e.Provider, e.Cause)
}

func (e *CapabilityError) Unwrap() error {
	return e.Cause
}

// ExtractionFailedError indicates all providers and retries were exhausted
// for one document.
type ExtractionFailedError struct {
	Document string
	Attempts int
	Cause    error
}

func (e *ExtractionFailedError) Error() string {
	return fmt.Sprintf("%s extraction failed after %d attempts: %v", e.Document, e.Attempts, e.Cause)
}

func (e *ExtractionFailedError) Unwrap() error {
	return e.Cause
}

// IsTransient reports whether the error may be resolved by another attempt
// against a different provider. Invalid input is never transient.
func IsTransient(err error) bool {
	var schemaErr *SchemaValidationError
	var timeoutErr *TimeoutError
	var capErr *CapabilityError
	return errors.As(err, &schemaErr) || errors.As(err, &timeoutErr) || errors.As(err, &capErr)
}
