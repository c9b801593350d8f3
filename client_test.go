package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newTestClient(t *testing.T, h http.Handler, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, append([]Option{WithHTTPClient(srv.Client())}, opts...)...)
	require.NoError(t, err)
	return c
}

func TestAuthorizationHeader(t *testing.T) {
	t.Parallel()
	var (
		mu   sync.Mutex
		seen []string
	)
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Header.Get("Authorization"))
		mu.Unlock()
		_, _ = io.WriteString(w, `{}`)
	})

	var token string
	var tokenMu sync.Mutex
	provider := CredentialFunc(func(context.Context) (string, error) {
		tokenMu.Lock()
		defer tokenMu.Unlock()
		return token, nil
	})
	c := newTestClient(t, h, WithCredentials(provider))
	ctx := context.Background()

	_, err := c.ProfileRaw(ctx)
	require.NoError(t, err)

	tokenMu.Lock()
	token = "eyJhbGciOi.abc"
	tokenMu.Unlock()
	_, err = c.ProfileRaw(ctx)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"", "Bearer eyJhbGciOi.abc"}, seen)
}

func TestAuthorizationHeader_NoProvider(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["Authorization"]
		assert.False(t, present)
		_, _ = io.WriteString(w, `{}`)
	}))
	_, err := c.RatesRaw(context.Background())
	require.NoError(t, err)
}

func TestAuthorizationHeader_ProviderError(t *testing.T) {
	t.Parallel()
	called := false
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}), WithCredentials(CredentialFunc(func(context.Context) (string, error) {
		return "", errors.New("keyring locked")
	})))

	_, err := c.ProfileRaw(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCredentialUnavailable)
	assert.True(t, IsTransportError(err))
	assert.False(t, called)
}

func TestTokenSourceCredential(t *testing.T) {
	t.Parallel()
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "oauth-tok"})
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer oauth-tok", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"id":"u1","nombre":"Ana","email":"ana@x.com","rol":"admin"}`)
	}), WithCredentials(TokenSourceCredential(ts)))

	u, err := c.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Nombre)
	assert.True(t, u.IsAdmin())
}

func TestLogin_APIErrorMessage(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":"Credenciales incorrectas"}`)
	}))

	_, err := c.Login(context.Background(), LoginRequest{Email: "a@b.c", Password: "x"})
	require.Error(t, err)
	assert.Equal(t, "Credenciales incorrectas", err.Error())
	assert.True(t, IsUnauthorized(err))
	assert.True(t, IsIrrecoverable(err))
}

func TestRegister_Decodes(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Ana", body.Nombre)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"token":"t1","usuario":{"id":"u1","nombre":"Ana","email":"ana@x.com","rol":"cliente"}}`)
	}))

	res, err := c.Register(context.Background(), RegisterRequest{Nombre: "Ana", Email: "ana@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "t1", res.Token)
	require.NotNil(t, res.User)
	assert.False(t, res.User.IsAdmin())
}

func TestListProducts_Typed(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "limit=12&page=1&search=bullpadel", r.URL.RawQuery)
		_, _ = io.WriteString(w, `{"productos":[{"id":"p1","nombre":"Vertex","precio":189.9,"stock":4,"categoria":"palas"}],"total":13}`)
	}))

	list, err := c.ListProducts(context.Background(), ListProductsParams{Page: 1, Limit: 12, Search: "bullpadel"})
	require.NoError(t, err)
	require.Len(t, list.Productos, 1)
	assert.Equal(t, "p1", list.Productos[0].ID)
	assert.True(t, list.Productos[0].InStock())
	assert.Equal(t, 2, list.TotalPages(12))
}

func TestProductCRUD_Typed(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/productos", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		b, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"nombre":"Pala X","precio":100,"stock":5,"categoria":"palas"}`, string(b))
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"n1","nombre":"Pala X","precio":100,"stock":5,"categoria":"palas"}`)
	})
	mux.HandleFunc("/productos/n1", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = io.WriteString(w, `{"id":"n1","nombre":"Pala X","precio":100,"stock":5,"categoria":"palas"}`)
		case http.MethodPut:
			b, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"stock":0}`, string(b))
			_, _ = io.WriteString(w, `{"id":"n1","nombre":"Pala X","precio":100,"stock":0,"categoria":"palas"}`)
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	})
	c := newTestClient(t, mux)
	ctx := context.Background()

	p, err := c.CreateProduct(ctx, ProductInput{
		Nombre: String("Pala X"), Precio: Float64(100), Stock: Int(5), Categoria: String("palas"),
	})
	require.NoError(t, err)
	assert.Equal(t, "n1", p.ID)

	p, err = c.GetProduct(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock)

	p, err = c.UpdateProduct(ctx, "n1", ProductInput{Stock: Int(0)})
	require.NoError(t, err)
	assert.False(t, p.InStock())

	require.NoError(t, c.DeleteProduct(ctx, "n1"))

	raw, err := c.DeleteProductRaw(ctx, "n1")
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestProductByID_EmptyID(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected, got %s %s", r.Method, r.URL.Path)
	}))
	ctx := context.Background()
	_, err := c.GetProduct(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyID)
	_, err = c.UpdateProduct(ctx, " ", ProductInput{})
	assert.ErrorIs(t, err, ErrEmptyID)
	assert.ErrorIs(t, c.DeleteProduct(ctx, ""), ErrEmptyID)
}

func TestConvert_CanonicalObject(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "USD", q.Get("de"))
		assert.Equal(t, "EUR", q.Get("a"))
		_, _ = io.WriteString(w, `{"resultado":92.5}`)
	}))

	res, err := c.ConvertPrice(context.Background(), 100, "eur")
	require.NoError(t, err)
	assert.InDelta(t, 92.5, res.Resultado, 1e-9)

	_, err = c.Convert(context.Background(), 100, "euros", "USD")
	require.Error(t, err)
}

func TestConvert_BareNumber(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `17.5`)
	}))

	raw, err := c.ConvertRaw(context.Background(), 1, "USD", "MXN")
	require.NoError(t, err)
	assert.Equal(t, "17.5", string(raw))

	_, err = c.Convert(context.Background(), 1, "USD", "MXN")
	require.Error(t, err, "typed Convert only accepts the object form")
	assert.False(t, IsAPIError(err))
}

func TestRates_Typed(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"base":"USD","tasas":{"MXN":17.2,"EUR":0.92}}`)
	}))
	rates, err := c.Rates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "USD", rates.Base)
	assert.InDelta(t, 17.2, rates.Tasas["MXN"], 1e-9)
}

func TestLatest_SupersededListIsDiscarded(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	arrived := make(chan struct{})
	var arrivedOnce sync.Once
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			arrivedOnce.Do(func() { close(arrived) })
			select {
			case <-release:
			case <-r.Context().Done():
				return
			}
		}
		_, _ = io.WriteString(w, `{"productos":[],"total":`+r.URL.Query().Get("page")+`}`)
	}))
	defer close(release)
	ctx := context.Background()
	before := testutil.ToFloat64(supersededTotal.WithLabelValues("catalog"))

	firstDone := make(chan error, 1)
	var firstResult *ProductList
	go func() {
		firstDone <- c.Latest(ctx, "catalog", func(ctx context.Context) error {
			l, err := c.ListProducts(ctx, ListProductsParams{Page: 1})
			firstResult = l
			return err
		})
	}()

	<-arrived

	var second *ProductList
	err := c.Latest(ctx, "catalog", func(ctx context.Context) error {
		l, err := c.ListProducts(ctx, ListProductsParams{Page: 2})
		second = l
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Total)

	select {
	case err := <-firstDone:
		assert.ErrorIs(t, err, ErrSuperseded)
		assert.Nil(t, firstResult)
	case <-time.After(5 * time.Second):
		t.Fatal("first call not cancelled")
	}
	assert.GreaterOrEqual(t, testutil.ToFloat64(supersededTotal.WithLabelValues("catalog"))-before, 1.0)
}

func TestMetrics_CountsRequests(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	counter := requestsTotal.WithLabelValues("get", "418")
	before := testutil.ToFloat64(counter)

	_, err := c.RatesRaw(context.Background())
	require.True(t, IsStatus(err, http.StatusTeapot))
	assert.Equal(t, "Error 418", err.Error())
	assert.GreaterOrEqual(t, testutil.ToFloat64(counter)-before, 1.0)
}
