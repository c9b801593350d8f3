package client

import (
	"github.com/revesshop/revesshop-client/internal/api"
	"github.com/revesshop/revesshop-client/internal/types"
)

// Public type aliases so SDK consumers can import only the client package.
type (
	// Requests
	RegisterRequest    = types.RegisterRequest
	LoginRequest       = types.LoginRequest
	ProductInput       = types.ProductInput
	ListProductsParams = types.ListProductsParams
	RequestOptions     = api.RequestOptions

	// Domain entities
	User    = types.User
	Product = types.Product

	// Responses
	AuthResponse     = types.AuthResponse
	ProductList      = types.ProductList
	Rates            = types.Rates
	ConversionResult = types.ConversionResult
)

const (
	// PriceCurrency is the currency catalog prices are stored in.
	PriceCurrency = types.PriceCurrency
	// RoleAdmin grants catalog write access.
	RoleAdmin = types.RoleAdmin
)

// Categories lists the catalog categories.
func Categories() []string {
	return append([]string(nil), types.Categories...)
}

// String returns a pointer to s, for building ProductInput.
func String(s string) *string { return &s }

// Float64 returns a pointer to f, for building ProductInput.
func Float64(f float64) *float64 { return &f }

// Int returns a pointer to i, for building ProductInput.
func Int(i int) *int { return &i }
