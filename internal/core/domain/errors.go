package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthRequired signals an operation was attempted without a valid
	// session. Callers redirect to authentication instead of retrying.
	ErrAuthRequired = errors.New("authentication required")

	// ErrInvalidCredentials is returned by login/registration when the
	// server rejects the supplied credentials.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrItemBusy is returned when a mutation is issued against a cart line
	// that already has a remote call in flight.
	ErrItemBusy = errors.New("cart item mutation already in flight")
)

// ValidationError reports a local precondition failure detected before any
// network call was made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with the given message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// RemoteError is a non-2xx response from the backend. Message carries the
// server-supplied human-readable text and is surfaced to the user verbatim.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// NetworkError is a transport failure: the request never produced a
// response (connection refused, timeout, DNS failure).
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
