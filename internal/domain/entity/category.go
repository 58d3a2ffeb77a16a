package entity

import "time"

// Category representa una categoría de productos del kiosco.
// Al registrar un usuario se crea un juego de categorías por defecto.
type Category struct {
	ID          string
	UserID      string
	Name        string
	Description string
	Color       string // hex, ej. "#3B82F6", para la UI
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
