package service

import "fmt"

// EmployeeServiceError is a custom error type for employee service errors.
// It records the failing operation while wrapping the underlying cause so
// callers can still classify it with errors.Is.
type EmployeeServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for EmployeeServiceError.
func (e *EmployeeServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("employee service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("employee service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *EmployeeServiceError) Unwrap() error {
	return e.Err
}

// NewEmployeeServiceError creates a new EmployeeServiceError.
func NewEmployeeServiceError(operation, message string, err error) *EmployeeServiceError {
	return &EmployeeServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
