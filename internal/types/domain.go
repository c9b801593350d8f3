package types

import "time"

// ------------------------------
// Core Domain Entities
// ------------------------------

// PriceCurrency is the currency product prices are stored and listed in.
// Price conversions always start from it.
const PriceCurrency = "USD"

// RoleAdmin is the role value that grants catalog write access.
const RoleAdmin = "admin"

// Categories accepted by the catalog.
var Categories = []string{"palas", "pelotas", "ropa", "calzado", "accesorios"}

// User represents an authenticated account as returned by /auth/perfil
type User struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	Email     string    `json:"email"`
	Rol       string    `json:"rol,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Rol == RoleAdmin
}

// Product represents a catalog item
type Product struct {
	ID          string    `json:"id"`
	Nombre      string    `json:"nombre"`
	Marca       string    `json:"marca,omitempty"`
	Precio      float64   `json:"precio"`
	Stock       int       `json:"stock"`
	Categoria   string    `json:"categoria"`
	Descripcion string    `json:"descripcion,omitempty"`
	ImagenURL   string    `json:"imagen_url,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool { return p.Stock > 0 }
