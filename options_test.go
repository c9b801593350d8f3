package client

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithHTTPTimeoutAndDebugLogging(t *testing.T) {
	// timeout option sets http timeout
	c := &Client{http: &http.Client{}}
	require.NoError(t, WithHTTPTimeout(5*time.Second)(c))
	assert.Equal(t, 5*time.Second, c.http.Timeout)

	// debug logging still reaches the base transport
	var called bool
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		called = true
		return &http.Response{StatusCode: 200, Body: http.NoBody, Header: make(http.Header)}, nil
	})
	c2, err := New("http://example.com",
		WithHTTPClient(&http.Client{Transport: rt}),
		WithHTTPTimeout(2*time.Second),
		WithDebugLogging(true),
	)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, c2.http.Timeout)

	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example.com", strings.NewReader(""))
	_, err = c2.http.Do(req)
	require.NoError(t, err)
	assert.True(t, called, "base transport not invoked")
}

func TestWithCredentials_InstallsInjector(t *testing.T) {
	c, err := New("http://example.com", WithCredentials(StaticCredential("tok")))
	require.NoError(t, err)
	_, ok := c.http.Transport.(*credentialTransport)
	assert.True(t, ok, "credential transport must be outermost")

	c, err = New("http://example.com")
	require.NoError(t, err)
	_, ok = c.http.Transport.(*credentialTransport)
	assert.False(t, ok)
}
