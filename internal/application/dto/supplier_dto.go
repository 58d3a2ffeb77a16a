package dto

import "time"

// CrearProveedorRequest body para POST /api/proveedores.
type CrearProveedorRequest struct {
	Nombre    string `json:"nombre" validate:"required"`
	Contacto  string `json:"contacto,omitempty"`
	Telefono  string `json:"telefono,omitempty"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Direccion string `json:"direccion,omitempty"`
	Notas     string `json:"notas,omitempty"`
}

// EditarProveedorRequest body para PUT /api/proveedores/:id.
type EditarProveedorRequest struct {
	Nombre    *string `json:"nombre,omitempty"`
	Contacto  *string `json:"contacto,omitempty"`
	Telefono  *string `json:"telefono,omitempty"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Direccion *string `json:"direccion,omitempty"`
	Notas     *string `json:"notas,omitempty"`
	Activo    *bool   `json:"activo,omitempty"`
}

// ProveedorResponse proveedor para respuestas.
type ProveedorResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	Contacto  string    `json:"contacto,omitempty"`
	Telefono  string    `json:"telefono,omitempty"`
	Email     string    `json:"email,omitempty"`
	Direccion string    `json:"direccion,omitempty"`
	Notas     string    `json:"notas,omitempty"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
}
