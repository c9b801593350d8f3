package api

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRates(t *testing.T) {
	t.Parallel()
	d := &recordingDoer{resp: json.RawMessage(`{"base":"USD","tasas":{"MXN":17.1}}`)}
	got, err := Rates(context.Background(), d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"base":"USD","tasas":{"MXN":17.1}}`, string(got))
	assert.Equal(t, "/divisas/tasas", d.only().path)
}

func TestConvert_Path(t *testing.T) {
	t.Parallel()
	d := &recordingDoer{resp: json.RawMessage(`{"resultado":5.85}`)}
	_, err := Convert(context.Background(), d, 100, "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "/divisas/convertir?monto=100&de=USD&a=EUR", d.only().path)

	d = &recordingDoer{resp: json.RawMessage(`{"resultado":5.85}`)}
	_, err = Convert(context.Background(), d, 99.5, "", "")
	require.NoError(t, err)
	assert.Equal(t, "/divisas/convertir?monto=99.5&de=MXN&a=USD", d.only().path)
}

func TestConvert_AmountIsQueryEscaped(t *testing.T) {
	t.Parallel()
	d := &recordingDoer{resp: json.RawMessage(`{"resultado":0}`)}
	_, err := Convert(context.Background(), d, math.Inf(1), "", "")
	require.NoError(t, err)
	assert.Equal(t, "/divisas/convertir?monto=%2BInf&de=MXN&a=USD", d.only().path)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "+Inf", r.URL.Query().Get("monto"))
		assert.Equal(t, "MXN", r.URL.Query().Get("de"))
		_, _ = io.WriteString(w, `{"resultado":0}`)
	}))
	defer srv.Close()
	_, err = Convert(context.Background(), NewRequester(srv.URL, srv.Client()), math.Inf(1), "", "")
	require.NoError(t, err)
}

func TestConvert_BareNumberIsNotWrapped(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("monto"))
		_, _ = io.WriteString(w, `17.5`)
	}))
	defer srv.Close()

	got, err := Convert(context.Background(), NewRequester(srv.URL, srv.Client()), 100, "USD", "MXN")
	require.NoError(t, err)
	assert.Equal(t, "17.5", string(got))
}
