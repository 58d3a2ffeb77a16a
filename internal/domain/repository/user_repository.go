package repository

import "github.com/tu-usuario/stock-kiosco/internal/domain/entity"

// UserRepository puerto de persistencia para User.
type UserRepository interface {
	Create(u *entity.User) error
	// FindByEmail devuelve nil, nil si el email no existe.
	FindByEmail(email string) (*entity.User, error)
	GetByID(id string) (*entity.User, error)
}
