package client

import (
	"fmt"
	"net/http"
	"time"
)

// Option configures a Client during construction in New.
//
// Options are applied before the transport stack is assembled, so the order
// in which they are passed does not change where debug logging, metrics or
// the credential injector end up.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// It bounds a whole request including reading the response. Per-call
// deadlines belong on the context. The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithHTTPClient uses a copy of hc as the underlying http.Client. Its
// Transport becomes the innermost layer of the stack; hc is left untouched.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client cannot be nil")
		}
		cp := *hc
		c.http = &cp
		return nil
	}
}

// WithCredentials sets where the bearer token is read from. The provider is
// consulted on every request; an empty token means no Authorization header.
func WithCredentials(p CredentialProvider) Option {
	return func(c *Client) error {
		c.creds = p
		return nil
	}
}

// WithDebugLogging dumps each request/response through zerolog at debug
// level when enabled is true.
//
// Do not enable this option in production environments: dumps include the
// Authorization header and request bodies such as passwords.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			c.debug = true
		}
		return nil
	}
}
