package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Fatal error taxonomy. Each sentinel terminates exactly one stage of the
// pipeline; validation findings are never represented as errors.
var (
	// ErrNoTextExtracted means the document produced no usable text.
	// Nothing downstream of extraction can run.
	ErrNoTextExtracted = errors.New("no text could be extracted from the document")

	// ErrInvalidInput means a calculation attempt received inputs that
	// cannot be priced (non-positive principal, negative rate, inverted
	// dates). The caller must re-supply valid data.
	ErrInvalidInput = errors.New("invalid calculation input")

	// ErrMissingData means reconciliation was attempted without a
	// calculated amount or a notice amount to compare.
	ErrMissingData = errors.New("missing data for reconciliation")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
