package repository

import (
	"time"

	"github.com/tu-usuario/stock-kiosco/internal/domain/entity"
)

// MovementFilter filtros del listado de movimientos.
type MovementFilter struct {
	Type string // entrada | salida | ajuste, vacío = todos
	From *time.Time
	To   *time.Time
}

// MovementListItem movimiento con los nombres de sus referencias, para listados.
type MovementListItem struct {
	entity.Movement
	ProductName    string
	ProductBarcode string
	SupplierName   string
	UserName       string
}

// MovementRepository puerto de persistencia para el libro de movimientos.
// El libro es append-only: no hay Update ni Delete.
type MovementRepository interface {
	Create(m *entity.Movement) error
	ListByProduct(productID string, limit, offset int) ([]MovementListItem, error)
	CountByProduct(productID string) (int, error)
	List(userID string, f MovementFilter, limit, offset int) ([]MovementListItem, error)
	Count(userID string, f MovementFilter) (int, error)
	// LedgerByProduct devuelve todos los movimientos de un producto en orden
	// cronológico ascendente, para verificar la continuidad del libro.
	LedgerByProduct(productID string) ([]*entity.Movement, error)
}
