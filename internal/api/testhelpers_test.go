package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// errRT is an http.RoundTripper that always returns an error (simulates network failure).
type errRT struct{}

func (e *errRT) RoundTrip(*http.Request) (*http.Response, error) { return nil, fmt.Errorf("boom") }

type recordedCall struct {
	path string
	opts RequestOptions
}

// recordingDoer implements Doer, records every call and replies with resp.
type recordingDoer struct {
	mu    sync.Mutex
	calls []recordedCall
	resp  json.RawMessage
	err   error
}

func (r *recordingDoer) Do(_ context.Context, path string, opts RequestOptions) (json.RawMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, recordedCall{path: path, opts: opts})
	return r.resp, r.err
}

func (r *recordingDoer) only() recordedCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) != 1 {
		panic(fmt.Sprintf("expected exactly one call, got %d", len(r.calls)))
	}
	return r.calls[0]
}
