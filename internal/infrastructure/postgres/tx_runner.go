package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/stock-kiosco/internal/application/auth"
	"github.com/tu-usuario/stock-kiosco/internal/application/ledger"
	"github.com/tu-usuario/stock-kiosco/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)
var _ auth.TxRunner = (*AuthTxRunner)(nil)

// TxRunner ejecuta los callbacks del ledger dentro de una transacción
// PostgreSQL. El SELECT FOR UPDATE de GetForUpdate retiene el lock hasta el
// Commit o Rollback de esta transacción.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	products repository.ProductRepository,
	movements repository.MovementRepository,
	suppliers repository.SupplierRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	products := NewProductRepository(tx)
	movements := NewMovementRepository(tx)
	suppliers := NewSupplierRepository(tx)

	if err := fn(products, movements, suppliers); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// AuthTxRunner transacción del registro: usuario y categorías por defecto
// se insertan juntos o no se inserta nada.
type AuthTxRunner struct {
	pool *pgxpool.Pool
}

// NewAuthTxRunner construye el runner con el pool.
func NewAuthTxRunner(pool *pgxpool.Pool) *AuthTxRunner {
	return &AuthTxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *AuthTxRunner) Run(ctx context.Context, fn func(
	users repository.UserRepository,
	categories repository.CategoryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUserRepository(tx), NewCategoryRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
