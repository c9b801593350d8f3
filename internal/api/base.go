package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/revesshop/revesshop-client/internal/errors"
)

// HTTPClient interface for dependency injection
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Doer is the single request function every facade routes through.
type Doer interface {
	Do(ctx context.Context, path string, opts RequestOptions) (json.RawMessage, error)
}

// RequestOptions describes one call. Body must already be JSON text.
type RequestOptions struct {
	Method  string
	Headers map[string]string
	Body    []byte
}

// emptyObject stands in for bodies that are missing or not JSON.
var emptyObject = json.RawMessage(`{}`)

// Requester performs calls against the storefront API. The bearer credential
// is not handled here; it is attached by the transport of the injected
// HTTPClient so it is read at send time.
type Requester struct {
	baseURL string
	http    HTTPClient
}

// NewRequester returns a Requester for baseURL. An empty baseURL is accepted:
// every call then fails with a transport error instead of panicking.
func NewRequester(baseURL string, httpClient HTTPClient) *Requester {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Requester{baseURL: baseURL, http: httpClient}
}

// BaseURL returns the endpoint paths are appended to.
func (r *Requester) BaseURL() string { return r.baseURL }

// Do sends one request and returns the raw JSON body.
//
//   - 204 No Content returns (nil, nil) without touching the body.
//   - A body that is empty or not JSON is replaced by {}.
//   - Non-2xx returns *errors.APIError.
//   - A request that never got a response returns *errors.TransportError.
func (r *Requester) Do(ctx context.Context, path string, opts RequestOptions) (json.RawMessage, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	target := r.baseURL + path

	var body io.Reader
	if opts.Body != nil {
		body = bytes.NewReader(opts.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, errors.NewTransportError(method, target, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range opts.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := r.http.Do(httpReq)
	if err != nil {
		return nil, errors.NewTransportError(method, target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	data := parseBody(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewAPIError(resp.StatusCode, data)
	}
	return data, nil
}

// parseBody reads the whole body and keeps it only if it is valid JSON.
func parseBody(rc io.Reader) json.RawMessage {
	raw, err := io.ReadAll(rc)
	if err != nil {
		return emptyObject
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || !json.Valid(raw) {
		return emptyObject
	}
	return json.RawMessage(raw)
}

// withQuery appends params to path, dropping empty values. Keys are emitted
// once each, sorted and URL-encoded.
func withQuery(path string, params map[string]string) string {
	q := url.Values{}
	for k, v := range params {
		if v == "" {
			continue
		}
		q.Set(k, v)
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
