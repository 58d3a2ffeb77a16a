package repository

import "github.com/tu-usuario/stock-kiosco/internal/domain/entity"

// SupplierRepository puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(s *entity.Supplier) error
	GetByID(id, userID string) (*entity.Supplier, error)
	// GetActive devuelve el proveedor solo si está activo y es del usuario; nil si no.
	GetActive(id, userID string) (*entity.Supplier, error)
	Update(s *entity.Supplier) error
	Deactivate(id, userID string) error
	List(userID string, includeInactive bool) ([]*entity.Supplier, error)
	NameExists(userID, name, excludeID string) (bool, error)
}
