package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failure classes the media service adapter
// translates raw service errors into. Retry decisions switch on the kind, so
// substring inspection of service responses happens once, at the edge.
type ErrorKind string

const (
	// KindRateLimited covers 429 / RESOURCE_EXHAUSTED responses.
	KindRateLimited ErrorKind = "rate_limited"
	// KindOverloaded covers 500 / 503 responses.
	KindOverloaded ErrorKind = "overloaded"
	// KindUnauthorized covers invalid or expired credentials, including the
	// "Requested entity was not found" answer the service gives when the
	// caller's credential state changed mid-poll.
	KindUnauthorized ErrorKind = "unauthorized"
	// KindInvalidInput covers local validation failures, raised before any
	// network call.
	KindInvalidInput ErrorKind = "invalid_input"
	// KindTimeout is raised when a poll exceeds its configured maximum wait.
	KindTimeout ErrorKind = "timeout"
	// KindRemoteFailed covers a remote job that finished unsuccessfully.
	KindRemoteFailed ErrorKind = "remote_failed"
)

type ServiceError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Transient reports whether retrying after a delay can succeed.
func (e *ServiceError) Transient() bool {
	return e.Kind == KindRateLimited || e.Kind == KindOverloaded
}

func NewServiceError(kind ErrorKind, message string, err error) *ServiceError {
	return &ServiceError{Kind: kind, Message: message, Err: err}
}

func NewValidationError(message string) *ServiceError {
	return &ServiceError{Kind: KindInvalidInput, Message: message}
}

// KindOf extracts the error kind, or KindRemoteFailed when err carries none.
func KindOf(err error) ErrorKind {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindRemoteFailed
}

// IsTransient reports whether err is a rate-limit or overload failure.
// Anything else, including errors with no ServiceError in their chain, is
// fatal: retrying will not fix bad credentials or bad input.
func IsTransient(err error) bool {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Transient()
	}
	return false
}
