package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/stock-kiosco/internal/domain/entity"
	"github.com/tu-usuario/stock-kiosco/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL.
// El libro es append-only: este adaptador no tiene UPDATE ni DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de persistencia para movimientos. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta un asiento en el libro.
func (r *MovementRepo) Create(m *entity.Movement) error {
	query := `
		INSERT INTO movimientos (id, producto_id, usuario_id, tipo_movimiento, cantidad, motivo, precio_unitario,
			stock_anterior, stock_posterior, proveedor_id, numero_factura, notas, fecha_movimiento)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductID, m.UserID, m.Type, m.Quantity, m.Reason, m.UnitPrice,
		m.StockBefore, m.StockAfter, m.SupplierID, m.InvoiceNumber, m.Notes, m.Date,
	)
	if err != nil {
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

const movementListSelect = `
	SELECT m.id, m.producto_id, m.usuario_id, m.tipo_movimiento, m.cantidad, m.motivo, m.precio_unitario,
		m.stock_anterior, m.stock_posterior, COALESCE(m.proveedor_id, ''), m.numero_factura, m.notas, m.fecha_movimiento,
		p.nombre, p.codigo_barras, COALESCE(pr.nombre, ''), COALESCE(u.nombre, '')
	FROM movimientos m
	JOIN productos p ON p.id = m.producto_id
	LEFT JOIN proveedores pr ON pr.id = m.proveedor_id
	LEFT JOIN usuarios u ON u.id = m.usuario_id`

// ListByProduct devuelve el historial de un producto, del más reciente al más viejo.
func (r *MovementRepo) ListByProduct(productID string, limit, offset int) ([]repository.MovementListItem, error) {
	query := movementListSelect + `
	WHERE m.producto_id = $1
	ORDER BY m.fecha_movimiento DESC
	LIMIT $2 OFFSET $3`
	return r.queryList(query, productID, limit, offset)
}

// CountByProduct cuenta los movimientos de un producto.
func (r *MovementRepo) CountByProduct(productID string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM movimientos WHERE producto_id = $1`, productID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count movimientos: %w", err)
	}
	return total, nil
}

// List devuelve los movimientos del usuario con filtros, del más reciente al más viejo.
func (r *MovementRepo) List(userID string, f repository.MovementFilter, limit, offset int) ([]repository.MovementListItem, error) {
	where, args := movementWhere(userID, f)
	query := movementListSelect + where +
		fmt.Sprintf(` ORDER BY m.fecha_movimiento DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	return r.queryList(query, args...)
}

// Count cuenta los movimientos del usuario que matchean el filtro.
func (r *MovementRepo) Count(userID string, f repository.MovementFilter) (int, error) {
	where, args := movementWhere(userID, f)
	var total int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM movimientos m `+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count movimientos: %w", err)
	}
	return total, nil
}

// LedgerByProduct devuelve todos los movimientos de un producto en orden
// cronológico ascendente, para verificar la continuidad del libro.
func (r *MovementRepo) LedgerByProduct(productID string) ([]*entity.Movement, error) {
	query := `
		SELECT id, producto_id, usuario_id, tipo_movimiento, cantidad, motivo, precio_unitario,
			stock_anterior, stock_posterior, COALESCE(proveedor_id, ''), numero_factura, notas, fecha_movimiento
		FROM movimientos
		WHERE producto_id = $1
		ORDER BY fecha_movimiento ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("ledger movimientos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.UserID, &m.Type, &m.Quantity, &m.Reason, &m.UnitPrice,
			&m.StockBefore, &m.StockAfter, &m.SupplierID, &m.InvoiceNumber, &m.Notes, &m.Date,
		); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func (r *MovementRepo) queryList(query string, args ...any) ([]repository.MovementListItem, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()
	var list []repository.MovementListItem
	for rows.Next() {
		var it repository.MovementListItem
		m := &it.Movement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.UserID, &m.Type, &m.Quantity, &m.Reason, &m.UnitPrice,
			&m.StockBefore, &m.StockAfter, &m.SupplierID, &m.InvoiceNumber, &m.Notes, &m.Date,
			&it.ProductName, &it.ProductBarcode, &it.SupplierName, &it.UserName,
		); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

func movementWhere(userID string, f repository.MovementFilter) (string, []any) {
	where := ` WHERE m.usuario_id = $1`
	args := []any{userID}
	if f.Type != "" {
		args = append(args, f.Type)
		where += fmt.Sprintf(` AND m.tipo_movimiento = $%d`, len(args))
	}
	if f.From != nil {
		args = append(args, *f.From)
		where += fmt.Sprintf(` AND m.fecha_movimiento >= $%d`, len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		where += fmt.Sprintf(` AND m.fecha_movimiento <= $%d`, len(args))
	}
	return where, args
}
