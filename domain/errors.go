package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across the store and handlers.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// Validationf wraps ErrValidation with a human-readable message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}

// AIServiceError is returned when a call to the external AI service fails
// or times out. Operation is the endpoint name (parse-resume, match, ...).
type AIServiceError struct {
	Operation string
	Message   string
}

func (e *AIServiceError) Error() string {
	return fmt.Sprintf("AI service error (%s): %s", e.Operation, e.Message)
}

// DeliveryError is returned when an email notification could not be sent.
// Callers treat it as non-fatal: the interview record is kept and only
// notificationSent stays false.
type DeliveryError struct {
	Recipient string
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to deliver notification to %s: %v", e.Recipient, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }
