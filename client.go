package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/revesshop/revesshop-client/internal/api"
	"github.com/revesshop/revesshop-client/internal/supersede"
	"github.com/revesshop/revesshop-client/internal/types"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client talks to the Revesshop storefront API. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	creds   CredentialProvider
	debug   bool
	limiter *rate.Limiter
	wire    http.RoundTripper // innermost transport, owner of the connections

	req    *api.Requester
	latest supersede.Group

	closedOnce uint32 // ensures Close is idempotent
}

var missingBaseURLOnce sync.Once

// New constructs a Client for baseURL. An empty baseURL is not an error: a
// warning is logged once per process and every call fails with a
// TransportError, so code paths that never touch the network keep working.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		missingBaseURLOnce.Do(func() {
			log.Warn().Msg("revesshop client: API base URL is not set; requests will fail")
		})
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	c.buildTransport()
	c.req = api.NewRequester(c.baseURL, c.http)
	c.latest.OnSupersede = func(key string) {
		supersededTotal.WithLabelValues(key).Inc()
	}
	return c, nil
}

// buildTransport stacks, from the wire outwards: the base transport, the
// debug dump, request metrics, the optional rate limiter and the credential
// injector.
func (c *Client) buildTransport() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.wire = base
	if c.debug {
		base = &debugTransport{base: base}
	}
	base = instrumentTransport(base)
	if c.limiter != nil {
		base = &rateLimitTransport{base: base, limiter: c.limiter}
	}
	if c.creds != nil {
		base = &credentialTransport{base: base, creds: c.creds}
	}
	c.http.Transport = base
}

// BaseURL returns the endpoint every path is appended to.
func (c *Client) BaseURL() string { return c.baseURL }

// Close releases idle connections of the underlying transport. The wrappers
// stacked by New do not forward CloseIdleConnections, so the innermost
// transport is closed directly. Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	if ci, ok := c.wire.(interface{ CloseIdleConnections() }); ok {
		ci.CloseIdleConnections()
	}
	return nil
}

// Do sends a request through the shared transport. Most callers want the
// resource methods below instead.
func (c *Client) Do(ctx context.Context, path string, opts RequestOptions) (json.RawMessage, error) {
	return c.req.Do(ctx, path, opts)
}

// Latest runs fn with latest-wins semantics for key: starting another Latest
// with the same key cancels fn's context, and fn's outcome is replaced by
// ErrSuperseded. Use it for calls driven by user input such as filters and
// pagination, storing results only when Latest returns nil.
func (c *Client) Latest(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	return c.latest.Do(ctx, key, fn)
}

// decode unmarshals a raw payload into T.
func decode[T any](op string, raw json.RawMessage) (*T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}
	return &v, nil
}

// --------------------------------------------------------------------
// Auth operations - delegated to internal/api
// --------------------------------------------------------------------

// RegisterRaw creates an account and returns the backend payload unchanged.
func (c *Client) RegisterRaw(ctx context.Context, body any) (json.RawMessage, error) {
	return api.Register(ctx, c.req, body)
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	raw, err := api.Register(ctx, c.req, req)
	if err != nil {
		return nil, err
	}
	return decode[AuthResponse]("register", raw)
}

// LoginRaw authenticates and returns the backend payload unchanged.
func (c *Client) LoginRaw(ctx context.Context, body any) (json.RawMessage, error) {
	return api.Login(ctx, c.req, body)
}

// Login exchanges email and password for a token. Storing the token is the
// caller's job; see internal/session.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	raw, err := api.Login(ctx, c.req, req)
	if err != nil {
		return nil, err
	}
	return decode[AuthResponse]("login", raw)
}

// ProfileRaw returns the current account payload unchanged.
func (c *Client) ProfileRaw(ctx context.Context) (json.RawMessage, error) {
	return api.Profile(ctx, c.req)
}

// Profile returns the account the configured credential belongs to.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	raw, err := api.Profile(ctx, c.req)
	if err != nil {
		return nil, err
	}
	return decode[User]("profile", raw)
}

// --------------------------------------------------------------------
// Catalog operations - delegated to internal/api
// --------------------------------------------------------------------

// ListProductsRaw lists the catalog with free-form query params.
func (c *Client) ListProductsRaw(ctx context.Context, params map[string]string) (json.RawMessage, error) {
	return api.ListProducts(ctx, c.req, params)
}

// ListProducts returns one page of the catalog.
func (c *Client) ListProducts(ctx context.Context, params ListProductsParams) (*ProductList, error) {
	raw, err := api.ListProducts(ctx, c.req, params.Query())
	if err != nil {
		return nil, err
	}
	return decode[ProductList]("list products", raw)
}

// GetProductRaw fetches one product payload unchanged.
func (c *Client) GetProductRaw(ctx context.Context, id string) (json.RawMessage, error) {
	return api.GetProduct(ctx, c.req, id)
}

// GetProduct fetches one product.
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	if err := types.ValidateIDPresent(id, "productId"); err != nil {
		return nil, err
	}
	raw, err := api.GetProduct(ctx, c.req, id)
	if err != nil {
		return nil, err
	}
	return decode[Product]("get product", raw)
}

// CreateProductRaw posts body as the new product. Requires an admin credential.
func (c *Client) CreateProductRaw(ctx context.Context, body any) (json.RawMessage, error) {
	return api.CreateProduct(ctx, c.req, body)
}

// CreateProduct adds a product to the catalog. Requires an admin credential.
func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*Product, error) {
	raw, err := api.CreateProduct(ctx, c.req, in)
	if err != nil {
		return nil, err
	}
	return decode[Product]("create product", raw)
}

// UpdateProductRaw sends body as the product update.
func (c *Client) UpdateProductRaw(ctx context.Context, id string, body any) (json.RawMessage, error) {
	return api.UpdateProduct(ctx, c.req, id, body)
}

// UpdateProduct changes the non-nil fields of in.
func (c *Client) UpdateProduct(ctx context.Context, id string, in ProductInput) (*Product, error) {
	if err := types.ValidateIDPresent(id, "productId"); err != nil {
		return nil, err
	}
	raw, err := api.UpdateProduct(ctx, c.req, id, in)
	if err != nil {
		return nil, err
	}
	return decode[Product]("update product", raw)
}

// DeleteProductRaw deletes a product and returns whatever the backend sent
// (nil for 204).
func (c *Client) DeleteProductRaw(ctx context.Context, id string) (json.RawMessage, error) {
	return api.DeleteProduct(ctx, c.req, id)
}

// DeleteProduct deletes a product. Backend returns 204 No Content on success.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	if err := types.ValidateIDPresent(id, "productId"); err != nil {
		return err
	}
	_, err := api.DeleteProduct(ctx, c.req, id)
	return err
}

// --------------------------------------------------------------------
// Currency operations - delegated to internal/api
// --------------------------------------------------------------------

// RatesRaw returns the exchange rate payload unchanged.
func (c *Client) RatesRaw(ctx context.Context) (json.RawMessage, error) {
	return api.Rates(ctx, c.req)
}

// Rates returns the exchange rate table.
func (c *Client) Rates(ctx context.Context) (*Rates, error) {
	raw, err := api.Rates(ctx, c.req)
	if err != nil {
		return nil, err
	}
	return decode[Rates]("rates", raw)
}

// ConvertRaw converts amount and returns the backend payload unchanged,
// whatever its shape. Empty from/to default to MXN and USD.
func (c *Client) ConvertRaw(ctx context.Context, amount float64, from, to string) (json.RawMessage, error) {
	return api.Convert(ctx, c.req, amount, from, to)
}

// Convert converts amount between currencies. The response must be the
// object {"resultado": n}; any other shape is reported as a decode error.
// Empty from/to default to MXN and USD.
func (c *Client) Convert(ctx context.Context, amount float64, from, to string) (*ConversionResult, error) {
	from, err := types.NormalizeCurrency(from)
	if err != nil {
		return nil, err
	}
	to, err = types.NormalizeCurrency(to)
	if err != nil {
		return nil, err
	}
	raw, err := api.Convert(ctx, c.req, amount, from, to)
	if err != nil {
		return nil, err
	}
	return decode[ConversionResult]("convert", raw)
}

// ConvertPrice converts a catalog price, which is always in PriceCurrency.
func (c *Client) ConvertPrice(ctx context.Context, price float64, to string) (*ConversionResult, error) {
	return c.Convert(ctx, price, PriceCurrency, to)
}
