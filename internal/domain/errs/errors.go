package errs

import (
	"errors"
	"fmt"
)

// ValidationError signals malformed caller input. It is rejected before any
// remote call is made and is never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError creates a ValidationError naming the violated constraint.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// NotFoundError signals a normal, expected miss: an address with no geocode
// match, a pair of points with no drivable route, or an untracked entity key.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s not found", e.Resource) }

// NewNotFoundError creates a NotFoundError for the given resource description.
func NewNotFoundError(resource string) error {
	return &NotFoundError{Resource: resource}
}

// UnavailableError signals that an upstream service kept failing after the
// retry budget was exhausted.
type UnavailableError struct {
	Service string
	Err     error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Service, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// NewUnavailableError wraps an upstream failure for the named service.
func NewUnavailableError(service string, err error) error {
	return &UnavailableError{Service: service, Err: err}
}

// DecodingError signals malformed data received from an upstream provider,
// such as a truncated polyline. It is a contract violation on their side and
// is surfaced as a service error rather than swallowed.
type DecodingError struct {
	Message string
}

func (e *DecodingError) Error() string { return e.Message }

// NewDecodingError creates a DecodingError with the given message.
func NewDecodingError(message string) error {
	return &DecodingError{Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// IsUnavailable reports whether err is an UnavailableError.
func IsUnavailable(err error) bool {
	var ue *UnavailableError
	return errors.As(err, &ue)
}

// IsDecoding reports whether err is a DecodingError.
func IsDecoding(err error) bool {
	var de *DecodingError
	return errors.As(err, &de)
}
