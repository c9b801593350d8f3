package types

// ------------------------------
// Response Types
// ------------------------------

// AuthResponse is returned by /auth/login and /auth/registro
type AuthResponse struct {
	Token   string `json:"token"`
	User    *User  `json:"usuario,omitempty"`
	Mensaje string `json:"mensaje,omitempty"`
}

// ProductList wraps the /productos listing
type ProductList struct {
	Productos []Product `json:"productos"`
	Total     int       `json:"total"`
	Page      int       `json:"page,omitempty"`
	Pages     int       `json:"pages,omitempty"`
}

// TotalPages returns how many pages of size limit the listing spans.
func (l ProductList) TotalPages(limit int) int {
	if limit <= 0 {
		return 0
	}
	return (l.Total + limit - 1) / limit
}

// Rates is the /divisas/tasas document
type Rates struct {
	Base  string             `json:"base,omitempty"`
	Tasas map[string]float64 `json:"tasas"`
}

// ConversionResult is the canonical /divisas/convertir response.
type ConversionResult struct {
	Resultado float64 `json:"resultado"`
	Monto     float64 `json:"monto,omitempty"`
	De        string  `json:"de,omitempty"`
	A         string  `json:"a,omitempty"`
	Tasa      float64 `json:"tasa,omitempty"`
}
