package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/stock-kiosco/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo consultas de solo lectura para las alertas. Los niveles se
// calculan en SQL para que listados y resúmenes usen el mismo criterio.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador de consultas de alertas.
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

// nivel de stock bajo: CRÍTICO sin stock, URGENTE a mitad del mínimo o menos.
const lowStockLevel = `
	CASE
		WHEN p.stock_actual = 0 THEN 'CRÍTICO'
		WHEN p.stock_actual <= p.stock_minimo / 2.0 THEN 'URGENTE'
		ELSE 'ADVERTENCIA'
	END`

// LowStock lista los productos activos con stock en o por debajo del mínimo.
func (r *AlertRepo) LowStock(ctx context.Context, userID string) ([]repository.LowStockItem, error) {
	query := `
		SELECT p.id, p.nombre, p.codigo_barras, p.stock_actual, p.stock_minimo, p.precio_compra, p.precio_venta,
			COALESCE(c.nombre, ''), COALESCE(pr.nombre, ''), COALESCE(pr.telefono, ''),
			p.stock_minimo - p.stock_actual,
			` + lowStockLevel + `
		FROM productos p
		LEFT JOIN categorias c ON c.id = p.categoria_id
		LEFT JOIN proveedores pr ON pr.id = p.proveedor_id
		WHERE p.usuario_id = $1 AND NOT p.eliminado AND p.activo
			AND p.stock_actual <= p.stock_minimo AND p.stock_minimo > 0
		ORDER BY p.stock_actual::float / p.stock_minimo ASC, p.nombre ASC`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("alertas stock bajo: %w", err)
	}
	defer rows.Close()
	var list []repository.LowStockItem
	for rows.Next() {
		var it repository.LowStockItem
		if err := rows.Scan(
			&it.ProductID, &it.Name, &it.Barcode, &it.CurrentStock, &it.MinStock, &it.PurchasePrice, &it.SalePrice,
			&it.CategoryName, &it.SupplierName, &it.SupplierPhone, &it.Missing, &it.Level,
		); err != nil {
			return nil, fmt.Errorf("scan stock bajo: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Expiring lista productos con vencimiento dentro de la ventana, incluidos
// los ya vencidos, mientras tengan stock.
func (r *AlertRepo) Expiring(ctx context.Context, userID string, days int) ([]repository.ExpiringItem, error) {
	query := `
		SELECT p.id, p.nombre, p.codigo_barras, p.stock_actual, p.fecha_vencimiento,
			p.precio_compra, p.precio_venta, COALESCE(c.nombre, ''),
			p.stock_actual * p.precio_compra,
			(p.fecha_vencimiento - CURRENT_DATE),
			CASE
				WHEN p.fecha_vencimiento < CURRENT_DATE THEN 'VENCIDO'
				WHEN p.fecha_vencimiento - CURRENT_DATE <= 7 THEN 'CRÍTICO'
				WHEN p.fecha_vencimiento - CURRENT_DATE <= 15 THEN 'URGENTE'
				ELSE 'ADVERTENCIA'
			END
		FROM productos p
		LEFT JOIN categorias c ON c.id = p.categoria_id
		WHERE p.usuario_id = $1 AND NOT p.eliminado AND p.activo
			AND p.stock_actual > 0
			AND p.fecha_vencimiento IS NOT NULL
			AND p.fecha_vencimiento <= CURRENT_DATE + $2::int
		ORDER BY p.fecha_vencimiento ASC`
	rows, err := r.q.Query(ctx, query, userID, days)
	if err != nil {
		return nil, fmt.Errorf("alertas vencimientos: %w", err)
	}
	defer rows.Close()
	var list []repository.ExpiringItem
	for rows.Next() {
		var it repository.ExpiringItem
		if err := rows.Scan(
			&it.ProductID, &it.Name, &it.Barcode, &it.CurrentStock, &it.ExpiryDate,
			&it.PurchasePrice, &it.SalePrice, &it.CategoryName,
			&it.StockValue, &it.DaysToExpiry, &it.Level,
		); err != nil {
			return nil, fmt.Errorf("scan vencimiento: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// criterio de producto dormido: el último movimiento de cualquier tipo quedó
// fuera de la ventana. Sin movimientos cuenta la fecha de alta, así un
// producto recién cargado no figura como dormido.
const idleProductsQuery = `
	SELECT COUNT(*), COALESCE(SUM(p.stock_actual * p.precio_compra), 0)
	FROM productos p
	WHERE p.usuario_id = $1 AND NOT p.eliminado AND p.activo AND p.stock_actual > 0
		AND COALESCE(
			(SELECT MAX(m.fecha_movimiento) FROM movimientos m WHERE m.producto_id = p.id),
			p.created_at
		) < now() - ($2::int * INTERVAL '1 day')`

// Idle resume los productos con stock sin actividad en el libro dentro de la ventana.
func (r *AlertRepo) Idle(ctx context.Context, userID string, days int) (repository.IdleSummary, error) {
	var s repository.IdleSummary
	if err := r.q.QueryRow(ctx, idleProductsQuery, userID, days).Scan(&s.Total, &s.IdleCapital); err != nil {
		return repository.IdleSummary{}, fmt.Errorf("alertas sin movimiento: %w", err)
	}
	return s, nil
}

// LowStockSummary conteos de stock bajo para el dashboard de alertas.
func (r *AlertRepo) LowStockSummary(ctx context.Context, userID string) (repository.LowStockSummary, error) {
	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE p.stock_actual = 0),
			COUNT(*) FILTER (WHERE p.stock_actual > 0 AND p.stock_actual <= p.stock_minimo / 2.0)
		FROM productos p
		WHERE p.usuario_id = $1 AND NOT p.eliminado AND p.activo
			AND p.stock_actual <= p.stock_minimo AND p.stock_minimo > 0`
	var s repository.LowStockSummary
	if err := r.q.QueryRow(ctx, query, userID).Scan(&s.Total, &s.Critical, &s.Urgent); err != nil {
		return repository.LowStockSummary{}, fmt.Errorf("resumen stock bajo: %w", err)
	}
	return s, nil
}

// ExpirySummary conteos y valor en riesgo para el dashboard de alertas.
func (r *AlertRepo) ExpirySummary(ctx context.Context, userID string, days int) (repository.ExpirySummary, error) {
	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE p.fecha_vencimiento < CURRENT_DATE),
			COUNT(*) FILTER (WHERE p.fecha_vencimiento >= CURRENT_DATE AND p.fecha_vencimiento - CURRENT_DATE <= 7),
			COALESCE(SUM(p.stock_actual * p.precio_compra), 0)
		FROM productos p
		WHERE p.usuario_id = $1 AND NOT p.eliminado AND p.activo
			AND p.stock_actual > 0
			AND p.fecha_vencimiento IS NOT NULL
			AND p.fecha_vencimiento <= CURRENT_DATE + $2::int`
	var s repository.ExpirySummary
	if err := r.q.QueryRow(ctx, query, userID, days).Scan(&s.Total, &s.Expired, &s.Critical, &s.ValueAtRisk); err != nil {
		return repository.ExpirySummary{}, fmt.Errorf("resumen vencimientos: %w", err)
	}
	return s, nil
}
