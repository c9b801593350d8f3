package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

const productsPath = "/productos"

// ListProducts returns a page of the catalog. Recognised params are page,
// limit, categoria, search and marca; empty values are not sent.
func ListProducts(ctx context.Context, d Doer, params map[string]string) (json.RawMessage, error) {
	return d.Do(ctx, withQuery(productsPath, params), RequestOptions{Method: http.MethodGet})
}

// GetProduct fetches one product by id.
func GetProduct(ctx context.Context, d Doer, id string) (json.RawMessage, error) {
	return d.Do(ctx, productPath(id), RequestOptions{Method: http.MethodGet})
}

// CreateProduct adds a product. Requires an admin credential.
func CreateProduct(ctx context.Context, d Doer, body any) (json.RawMessage, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return d.Do(ctx, productsPath, RequestOptions{Method: http.MethodPost, Body: b})
}

// UpdateProduct replaces the given fields of a product.
func UpdateProduct(ctx context.Context, d Doer, id string, body any) (json.RawMessage, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return d.Do(ctx, productPath(id), RequestOptions{Method: http.MethodPut, Body: b})
}

// DeleteProduct removes a product. Backend returns 204 No Content on success.
func DeleteProduct(ctx context.Context, d Doer, id string) (json.RawMessage, error) {
	return d.Do(ctx, productPath(id), RequestOptions{Method: http.MethodDelete})
}

func productPath(id string) string {
	return productsPath + "/" + url.PathEscape(id)
}
