package repository

import "github.com/tu-usuario/stock-kiosco/internal/domain/entity"

// CategoryWithCount categoría con el número de productos activos que agrupa.
type CategoryWithCount struct {
	entity.Category
	ProductCount int
}

// CategoryRepository puerto de persistencia para Category.
type CategoryRepository interface {
	Create(c *entity.Category) error
	GetByID(id, userID string) (*entity.Category, error)
	Update(c *entity.Category) error
	Deactivate(id, userID string) error
	ListWithCounts(userID string) ([]CategoryWithCount, error)
	NameExists(userID, name, excludeID string) (bool, error)
}
