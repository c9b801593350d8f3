package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	sdkerrors "github.com/revesshop/revesshop-client/internal/errors"
	"github.com/revesshop/revesshop-client/internal/types"
)

// ErrNotAuthenticated is returned when an operation needs a signed-in user.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrNoToken is returned when the backend accepted a login but sent no token.
var ErrNoToken = errors.New("auth response carried no token")

// AuthAPI is the part of the client the provider needs.
type AuthAPI interface {
	Login(ctx context.Context, req types.LoginRequest) (*types.AuthResponse, error)
	Register(ctx context.Context, req types.RegisterRequest) (*types.AuthResponse, error)
	Profile(ctx context.Context) (*types.User, error)
}

// Provider tracks whether someone is signed in and as whom. It is the only
// writer of the stored token.
type Provider struct {
	api   AuthAPI
	store Storage

	mu   sync.RWMutex
	user *types.User
}

// NewProvider returns a Provider. The API client must read its credential
// from store so calls made after Login carry the new token.
func NewProvider(api AuthAPI, store Storage) *Provider {
	return &Provider{api: api, store: store}
}

// Login authenticates, stores the token and returns the signed-in user.
func (p *Provider) Login(ctx context.Context, email, password string) (*types.User, error) {
	res, err := p.api.Login(ctx, types.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return p.establish(ctx, res)
}

// Register creates the account. When the backend answers with a token the
// new user is signed in right away; otherwise the session is left untouched
// and the returned user may be nil.
func (p *Provider) Register(ctx context.Context, nombre, email, password string) (*types.User, error) {
	res, err := p.api.Register(ctx, types.RegisterRequest{Nombre: nombre, Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if res.Token == "" {
		return res.User, nil
	}
	return p.establish(ctx, res)
}

// establish stores the token from res and resolves the user, asking the
// profile endpoint when the response did not include one.
func (p *Provider) establish(ctx context.Context, res *types.AuthResponse) (*types.User, error) {
	if res.Token == "" {
		return nil, ErrNoToken
	}
	if err := p.store.Save(res.Token, res.User); err != nil {
		return nil, err
	}
	user := res.User
	if user == nil {
		u, err := p.api.Profile(ctx)
		if err != nil {
			_ = p.store.Clear()
			return nil, fmt.Errorf("load profile: %w", err)
		}
		user = u
		if err := p.store.Save(res.Token, user); err != nil {
			return nil, err
		}
	}
	p.setUser(user)
	return user, nil
}

// Restore resumes a stored session by fetching the profile with the stored
// token. A token the backend rejects with 401 is cleared.
func (p *Provider) Restore(ctx context.Context) (*types.User, error) {
	token, err := p.store.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		p.setUser(nil)
		return nil, ErrNotAuthenticated
	}
	user, err := p.api.Profile(ctx)
	if err != nil {
		var apiErr *sdkerrors.APIError
		if errors.As(err, &apiErr) && apiErr.Status == 401 {
			_ = p.store.Clear()
			p.setUser(nil)
			return nil, fmt.Errorf("%w: %s", ErrNotAuthenticated, apiErr.Message)
		}
		return nil, err
	}
	if err := p.store.Save(token, user); err != nil {
		return nil, err
	}
	p.setUser(user)
	return user, nil
}

// Logout forgets the token and the user.
func (p *Provider) Logout() error {
	p.setUser(nil)
	return p.store.Clear()
}

// User returns the signed-in user, falling back to the cached copy in the
// store, or nil.
func (p *Provider) User() *types.User {
	p.mu.RLock()
	u := p.user
	p.mu.RUnlock()
	if u != nil {
		return u
	}
	cached, err := p.store.User()
	if err != nil {
		return nil
	}
	return cached
}

// IsAuthenticated reports whether a token is stored.
func (p *Provider) IsAuthenticated(ctx context.Context) bool {
	tok, err := p.store.Token(ctx)
	return err == nil && tok != ""
}

// IsAdmin reports whether the signed-in user has the admin role.
func (p *Provider) IsAdmin() bool {
	return p.User().IsAdmin()
}

func (p *Provider) setUser(u *types.User) {
	p.mu.Lock()
	p.user = u
	p.mu.Unlock()
}
