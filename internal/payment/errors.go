package payment

import "fmt"

// ProcessorError carries the payment processor's own error message so the
// checkout endpoint can surface it to the client. The wrapped error keeps
// the full detail for logs.
type ProcessorError struct {
	Message string
	Err     error
}

// Error implements the error interface for ProcessorError.
func (e *ProcessorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payment processor error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("payment processor error: %s", e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ProcessorError) Unwrap() error {
	return e.Err
}

// NewProcessorError creates a ProcessorError with the given user-facing
// message and wrapped cause.
func NewProcessorError(message string, err error) *ProcessorError {
	return &ProcessorError{Message: message, Err: err}
}
