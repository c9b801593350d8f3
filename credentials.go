package client

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

// CredentialProvider supplies the bearer token for outgoing requests. The
// client only reads it; obtaining, refreshing and clearing the token belong
// to whoever implements the provider.
type CredentialProvider interface {
	Token(ctx context.Context) (string, error)
}

// CredentialFunc adapts a function to CredentialProvider.
type CredentialFunc func(ctx context.Context) (string, error)

// Token implements CredentialProvider.
func (f CredentialFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// StaticCredential is a fixed token. The empty string sends no header.
type StaticCredential string

// Token implements CredentialProvider.
func (s StaticCredential) Token(context.Context) (string, error) { return string(s), nil }

// TokenSourceCredential reads tokens from an oauth2.TokenSource. A nil token
// is treated as absent.
func TokenSourceCredential(ts oauth2.TokenSource) CredentialProvider {
	return CredentialFunc(func(context.Context) (string, error) {
		tok, err := ts.Token()
		if err != nil {
			return "", err
		}
		if tok == nil {
			return "", nil
		}
		return tok.AccessToken, nil
	})
}

// credentialTransport wraps an http.RoundTripper and sets the Authorization
// header from the provider at send time.
type credentialTransport struct {
	base  http.RoundTripper
	creds CredentialProvider
}

func (t *credentialTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.creds.Token(req.Context())
	if err != nil {
		if req.Body != nil {
			_ = req.Body.Close()
		}
		return nil, fmt.Errorf("%w: %w", ErrCredentialUnavailable, err)
	}
	if token == "" {
		return t.base.RoundTrip(req)
	}
	// RoundTrippers must not modify the caller's request.
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+token)
	return t.base.RoundTrip(cloned)
}
