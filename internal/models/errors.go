package models

import "errors"

var (
	// Upstream provider failures.
	ErrLocationNotFound    = errors.New("location not found")
	ErrUpstreamAuth        = errors.New("upstream rejected the API credential")
	ErrUpstreamUnavailable = errors.New("upstream weather provider unavailable")

	// History store failures.
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("weather record not found")

	// Export failures.
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrNoData            = errors.New("no data available for export")
)

// ValidationError carries the human-readable reason a request was rejected.
// It matches ErrValidation under errors.Is so handlers can branch on the kind
// while echoing the exact reason back to the client.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func NewValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}
