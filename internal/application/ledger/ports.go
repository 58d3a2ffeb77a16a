package ledger

import (
	"context"

	"github.com/tu-usuario/stock-kiosco/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa transacción. Garantiza atomicidad para el libro
// de movimientos: o se insertan asiento y nuevo stock juntos, o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		movements repository.MovementRepository,
		suppliers repository.SupplierRepository,
	) error) error
}
