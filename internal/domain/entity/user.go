package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleUsuario = "usuario"
)

// User representa la cuenta dueña de un kiosco. Todas las demás entidades
// (productos, categorías, proveedores, movimientos) se particionan por UserID.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, usuario
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
