package service

import "errors"

// Sentinel errors shared by the services. Handlers translate these to HTTP
// status codes; anything else is a 500.
var (
	ErrIDRequired         = errors.New("id is required")
	ErrNotFound           = errors.New("record not found")
	ErrAccountExists      = errors.New("email or phone already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAlreadyApplied     = errors.New("already applied to this job")
	ErrJobClosed          = errors.New("job is not open for applications")
	ErrQuotaExhausted     = errors.New("resume view quota exhausted")
	ErrInvalidStatus      = errors.New("invalid status value")
	ErrInvalidKind        = errors.New("invalid lookup kind")
	ErrPaymentFailed      = errors.New("payment verification failed")
)
