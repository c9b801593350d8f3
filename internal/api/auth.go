package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// Register creates an account via POST /auth/registro.
func Register(ctx context.Context, d Doer, body any) (json.RawMessage, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return d.Do(ctx, "/auth/registro", RequestOptions{Method: http.MethodPost, Body: b})
}

// Login exchanges email and password for a token via POST /auth/login.
func Login(ctx context.Context, d Doer, body any) (json.RawMessage, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return d.Do(ctx, "/auth/login", RequestOptions{Method: http.MethodPost, Body: b})
}

// Profile returns the account the current credential belongs to.
func Profile(ctx context.Context, d Doer) (json.RawMessage, error) {
	return d.Do(ctx, "/auth/perfil", RequestOptions{Method: http.MethodGet})
}
