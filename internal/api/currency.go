package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

// Default currencies of the convert endpoint when the caller leaves them out.
const (
	DefaultFromCurrency = "MXN"
	DefaultToCurrency   = "USD"
)

// Rates returns the exchange rate table.
func Rates(ctx context.Context, d Doer) (json.RawMessage, error) {
	return d.Do(ctx, "/divisas/tasas", RequestOptions{Method: http.MethodGet})
}

// Convert asks the backend to convert amount between currencies. The payload
// is returned untouched; see client.Convert for the decoded form.
func Convert(ctx context.Context, d Doer, amount float64, from, to string) (json.RawMessage, error) {
	if from == "" {
		from = DefaultFromCurrency
	}
	if to == "" {
		to = DefaultToCurrency
	}
	path := "/divisas/convertir?monto=" + url.QueryEscape(strconv.FormatFloat(amount, 'f', -1, 64)) +
		"&de=" + url.QueryEscape(from) +
		"&a=" + url.QueryEscape(to)
	return d.Do(ctx, path, RequestOptions{Method: http.MethodGet})
}
