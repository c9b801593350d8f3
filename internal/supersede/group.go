// Package supersede runs calls with latest-wins semantics per key.
//
// Starting a call under a key cancels the call still running under the same
// key. The older call's result is dropped and it reports ErrSuperseded, even
// when it managed to finish before noticing the cancellation. Calls under
// different keys never affect each other.
package supersede

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrSuperseded is returned by a call that a newer call with the same key replaced.
var ErrSuperseded = errors.New("superseded by a newer call")

type tokenKey struct{}

// TokenFrom returns the generation token Do attached to ctx.
func TokenFrom(ctx context.Context) (uuid.UUID, bool) {
	tok, ok := ctx.Value(tokenKey{}).(uuid.UUID)
	return tok, ok
}

type inflight struct {
	token  uuid.UUID
	cancel context.CancelCauseFunc
}

// Group tracks the newest call per key. The zero value is ready to use.
type Group struct {
	mu    sync.Mutex
	calls map[string]inflight

	// OnSupersede, when set, is called with the key of every replaced call.
	OnSupersede func(key string)
}

// Do runs fn under key. fn receives a context that is cancelled with cause
// ErrSuperseded as soon as a newer Do for the same key starts.
func (g *Group) Do(ctx context.Context, key string, fn func(context.Context) error) error {
	token := uuid.New()
	callCtx, cancel := context.WithCancelCause(context.WithValue(ctx, tokenKey{}, token))
	defer cancel(nil)

	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]inflight)
	}
	prev, replaced := g.calls[key]
	g.calls[key] = inflight{token: token, cancel: cancel}
	g.mu.Unlock()

	if replaced {
		prev.cancel(ErrSuperseded)
		if g.OnSupersede != nil {
			g.OnSupersede(key)
		}
	}

	err := fn(callCtx)

	g.mu.Lock()
	cur, ok := g.calls[key]
	latest := ok && cur.token == token
	if latest {
		delete(g.calls, key)
	}
	g.mu.Unlock()

	if !latest {
		return ErrSuperseded
	}
	return err
}

// Pending returns how many keys currently have a call in flight.
func (g *Group) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}
