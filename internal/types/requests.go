package types

import "strconv"

// ------------------------------
// Request Types
// ------------------------------

// RegisterRequest holds parameters for a new account
type RegisterRequest struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest holds credentials for /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProductInput holds the writable product fields. Pointer fields are left
// out of the body when nil so updates can be partial.
type ProductInput struct {
	Nombre      *string  `json:"nombre,omitempty"`
	Marca       *string  `json:"marca,omitempty"`
	Precio      *float64 `json:"precio,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	Categoria   *string  `json:"categoria,omitempty"`
	Descripcion *string  `json:"descripcion,omitempty"`
	ImagenURL   *string  `json:"imagen_url,omitempty"`
}

// ListProductsParams filters and paginates /productos. Zero values are not
// sent.
type ListProductsParams struct {
	Page      int
	Limit     int
	Categoria string
	Search    string
	Marca     string
}

// Query renders the params as the query mapping understood by the catalog.
func (p ListProductsParams) Query() map[string]string {
	q := map[string]string{
		"categoria": p.Categoria,
		"search":    p.Search,
		"marca":     p.Marca,
	}
	if p.Page > 0 {
		q["page"] = strconv.Itoa(p.Page)
	}
	if p.Limit > 0 {
		q["limit"] = strconv.Itoa(p.Limit)
	}
	return q
}
