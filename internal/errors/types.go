// Package errors defines the failure shapes returned by the request layer.
//
// Two kinds exist: an APIError means the server answered with a non-2xx
// status, a TransportError means the request never completed. Both carry an
// ErrorCategory so callers can decide whether trying again makes sense; the
// request layer itself never retries.
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
)

// ErrorCategory tells callers whether repeating the same call could succeed.
type ErrorCategory int

const (
	// Recoverable failures may succeed when repeated.
	// Examples: 500 Internal Server Error, 429, connection refused, timeouts.
	Recoverable ErrorCategory = iota

	// Irrecoverable failures will fail again with the same input.
	// Examples: 400 Bad Request, 401 Unauthorized, 403 Forbidden, 404 Not Found.
	Irrecoverable
)

// String returns a human-readable representation of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// APIError is returned when the server responded with a status outside 2xx.
// Message is taken from the response body, see MessageFromBody.
type APIError struct {
	Message  string
	Status   int
	Category ErrorCategory
}

// Error returns the server supplied message unchanged so it can be shown to
// end users as is.
func (e *APIError) Error() string {
	return e.Message
}

// TransportError is returned when the request never produced a response
// (DNS failure, connection refused, timeout, cancelled context).
type TransportError struct {
	Method     string
	URL        string
	Underlying error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Underlying)
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *TransportError) Unwrap() error {
	return e.Underlying
}

// Category reports transport failures as recoverable, except for a context
// the caller cancelled on purpose.
func (e *TransportError) Category() ErrorCategory {
	if stderrors.Is(e.Underlying, context.Canceled) {
		return Irrecoverable
	}
	return Recoverable
}

// IsIrrecoverable returns true if repeating the call cannot help.
func IsIrrecoverable(err error) bool {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.Category == Irrecoverable
	}
	var tErr *TransportError
	if stderrors.As(err, &tErr) {
		return tErr.Category() == Irrecoverable
	}
	return false
}
