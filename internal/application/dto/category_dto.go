package dto

import "time"

// CrearCategoriaRequest body para POST /api/categorias.
type CrearCategoriaRequest struct {
	Nombre      string `json:"nombre" validate:"required"`
	Descripcion string `json:"descripcion,omitempty"`
	Color       string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// EditarCategoriaRequest body para PUT /api/categorias/:id.
type EditarCategoriaRequest struct {
	Nombre      *string `json:"nombre,omitempty"`
	Descripcion *string `json:"descripcion,omitempty"`
	Color       *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Activo      *bool   `json:"activo,omitempty"`
}

// CategoriaResponse categoría con conteo de productos.
type CategoriaResponse struct {
	ID             string    `json:"id"`
	Nombre         string    `json:"nombre"`
	Descripcion    string    `json:"descripcion,omitempty"`
	Color          string    `json:"color"`
	Activo         bool      `json:"activo"`
	TotalProductos int       `json:"total_productos"`
	CreatedAt      time.Time `json:"created_at"`
}
