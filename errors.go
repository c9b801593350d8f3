package client

import (
	"errors"
	"net/http"

	sdkerrors "github.com/revesshop/revesshop-client/internal/errors"
	"github.com/revesshop/revesshop-client/internal/supersede"
	"github.com/revesshop/revesshop-client/internal/types"
)

// Re-exported error types so callers only import the client package.
type (
	APIError       = sdkerrors.APIError
	TransportError = sdkerrors.TransportError
	ErrorCategory  = sdkerrors.ErrorCategory
)

const (
	Recoverable   = sdkerrors.Recoverable
	Irrecoverable = sdkerrors.Irrecoverable
)

var (
	// ErrSuperseded is returned by Latest when a newer call replaced this one.
	ErrSuperseded = supersede.ErrSuperseded

	// ErrEmptyID is returned before any request when a product id is blank.
	ErrEmptyID = types.ErrEmptyID

	// ErrCredentialUnavailable wraps failures of the CredentialProvider.
	ErrCredentialUnavailable = errors.New("credential unavailable")
)

// IsAPIError reports whether err is a server response with a non-2xx status.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// IsTransportError reports whether err means the request never completed.
func IsTransportError(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}

// IsStatus reports whether err is an APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// IsUnauthorized reports a 401 response, typically an expired or revoked token.
func IsUnauthorized(err error) bool { return IsStatus(err, http.StatusUnauthorized) }

// IsForbidden reports a 403 response, e.g. a non-admin calling catalog writes.
func IsForbidden(err error) bool { return IsStatus(err, http.StatusForbidden) }

// IsNotFound reports a 404 response.
func IsNotFound(err error) bool { return IsStatus(err, http.StatusNotFound) }

// IsIrrecoverable reports whether repeating the call cannot succeed.
func IsIrrecoverable(err error) bool { return sdkerrors.IsIrrecoverable(err) }
