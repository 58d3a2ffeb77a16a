package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/stock-kiosco/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportes. Las ventas se derivan
// del libro de movimientos: cada salida es una venta con su precio unitario.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de consultas de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// TopSellers ranking de productos más vendidos por unidades en el período.
func (r *ReportRepo) TopSellers(ctx context.Context, userID string, from, to *time.Time, limit int) ([]repository.TopProduct, error) {
	query := `
		SELECT p.id, p.nombre, p.codigo_barras, p.stock_actual, p.precio_compra, p.precio_venta,
			COALESCE(c.nombre, ''),
			COUNT(m.id),
			COALESCE(SUM(m.cantidad), 0),
			COALESCE(SUM(m.cantidad * COALESCE(m.precio_unitario, p.precio_venta)), 0) AS ingresos,
			COALESCE(SUM(m.cantidad * p.precio_compra), 0) AS costos
		FROM movimientos m
		JOIN productos p ON p.id = m.producto_id
		LEFT JOIN categorias c ON c.id = p.categoria_id
		WHERE m.usuario_id = $1 AND m.tipo_movimiento = 'salida'
			AND ($2::timestamptz IS NULL OR m.fecha_movimiento >= $2)
			AND ($3::timestamptz IS NULL OR m.fecha_movimiento <= $3)
		GROUP BY p.id, c.nombre
		ORDER BY SUM(m.cantidad) DESC
		LIMIT $4`
	rows, err := r.q.Query(ctx, query, userID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("reporte mas vendidos: %w", err)
	}
	defer rows.Close()
	var list []repository.TopProduct
	for rows.Next() {
		var t repository.TopProduct
		if err := rows.Scan(
			&t.ProductID, &t.Name, &t.Barcode, &t.CurrentStock, &t.PurchasePrice, &t.SalePrice,
			&t.CategoryName, &t.Movements, &t.UnitsSold, &t.Revenue, &t.Cost,
		); err != nil {
			return nil, fmt.Errorf("scan mas vendido: %w", err)
		}
		t.Profit = t.Revenue.Sub(t.Cost)
		if t.Revenue.IsPositive() {
			t.MarginPct = t.Profit.Div(t.Revenue).Mul(hundred)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// LeastSold productos con menos salidas en el período, incluidos los que no
// vendieron nada desde que existen.
func (r *ReportRepo) LeastSold(ctx context.Context, userID string, from, to *time.Time, limit int) ([]repository.LeastSoldProduct, error) {
	query := `
		SELECT p.id, p.nombre, p.codigo_barras, p.stock_actual, p.precio_compra, p.precio_venta,
			COALESCE(c.nombre, ''),
			COALESCE(SUM(m.cantidad), 0),
			COALESCE(SUM(m.cantidad * COALESCE(m.precio_unitario, p.precio_venta)), 0),
			p.stock_actual * p.precio_compra
		FROM productos p
		LEFT JOIN categorias c ON c.id = p.categoria_id
		LEFT JOIN movimientos m ON m.producto_id = p.id AND m.tipo_movimiento = 'salida'
			AND ($2::timestamptz IS NULL OR m.fecha_movimiento >= $2)
			AND ($3::timestamptz IS NULL OR m.fecha_movimiento <= $3)
		WHERE p.usuario_id = $1 AND NOT p.eliminado AND p.activo
		GROUP BY p.id, c.nombre
		ORDER BY COALESCE(SUM(m.cantidad), 0) ASC, p.stock_actual * p.precio_compra DESC
		LIMIT $4`
	rows, err := r.q.Query(ctx, query, userID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("reporte menos vendidos: %w", err)
	}
	defer rows.Close()
	var list []repository.LeastSoldProduct
	for rows.Next() {
		var t repository.LeastSoldProduct
		if err := rows.Scan(
			&t.ProductID, &t.Name, &t.Barcode, &t.CurrentStock, &t.PurchasePrice, &t.SalePrice,
			&t.CategoryName, &t.UnitsSold, &t.Revenue, &t.IdleCapital,
		); err != nil {
			return nil, fmt.Errorf("scan menos vendido: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Profitability márgenes por producto: unitario a precios actuales, histórico
// sobre unidades vendidas y potencial sobre el stock en mano.
func (r *ReportRepo) Profitability(ctx context.Context, userID string) ([]repository.ProfitabilityRow, error) {
	query := `
		SELECT p.id, p.nombre, p.codigo_barras, p.stock_actual, p.precio_compra, p.precio_venta,
			COALESCE(c.nombre, ''),
			COALESCE(SUM(m.cantidad), 0)
		FROM productos p
		LEFT JOIN categorias c ON c.id = p.categoria_id
		LEFT JOIN movimientos m ON m.producto_id = p.id AND m.tipo_movimiento = 'salida'
		WHERE p.usuario_id = $1 AND NOT p.eliminado AND p.activo
		GROUP BY p.id, c.nombre
		ORDER BY (p.precio_venta - p.precio_compra) DESC`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("reporte rentabilidad: %w", err)
	}
	defer rows.Close()
	var list []repository.ProfitabilityRow
	for rows.Next() {
		var t repository.ProfitabilityRow
		if err := rows.Scan(
			&t.ProductID, &t.Name, &t.Barcode, &t.CurrentStock, &t.PurchasePrice, &t.SalePrice,
			&t.CategoryName, &t.UnitsSold,
		); err != nil {
			return nil, fmt.Errorf("scan rentabilidad: %w", err)
		}
		t.UnitProfit = t.SalePrice.Sub(t.PurchasePrice)
		if t.SalePrice.IsPositive() {
			t.MarginPct = t.UnitProfit.Div(t.SalePrice).Mul(hundred)
		}
		t.HistoricProfit = t.UnitProfit.Mul(intDec(t.UnitsSold))
		t.InvestedCapital = t.PurchasePrice.Mul(intDec(t.CurrentStock))
		t.PotentialSale = t.SalePrice.Mul(intDec(t.CurrentStock))
		t.PotentialProfit = t.PotentialSale.Sub(t.InvestedCapital)
		list = append(list, t)
	}
	return list, rows.Err()
}

// SalesByCategory ventas agregadas por categoría en el período. Los productos
// sin categoría se agrupan bajo "Sin categoría".
func (r *ReportRepo) SalesByCategory(ctx context.Context, userID string, from, to *time.Time) ([]repository.CategorySales, error) {
	query := `
		SELECT COALESCE(c.id, ''), COALESCE(c.nombre, 'Sin categoría'),
			COUNT(DISTINCT p.id),
			COALESCE(SUM(m.cantidad), 0),
			COALESCE(SUM(m.cantidad * COALESCE(m.precio_unitario, p.precio_venta)), 0) AS ingresos,
			COALESCE(SUM(m.cantidad * p.precio_compra), 0) AS costos
		FROM movimientos m
		JOIN productos p ON p.id = m.producto_id
		LEFT JOIN categorias c ON c.id = p.categoria_id
		WHERE m.usuario_id = $1 AND m.tipo_movimiento = 'salida'
			AND ($2::timestamptz IS NULL OR m.fecha_movimiento >= $2)
			AND ($3::timestamptz IS NULL OR m.fecha_movimiento <= $3)
		GROUP BY c.id, c.nombre
		ORDER BY ingresos DESC`
	rows, err := r.q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("reporte por categoria: %w", err)
	}
	defer rows.Close()
	var list []repository.CategorySales
	for rows.Next() {
		var t repository.CategorySales
		if err := rows.Scan(
			&t.CategoryID, &t.CategoryName, &t.Products, &t.UnitsSold, &t.Revenue, &t.Cost,
		); err != nil {
			return nil, fmt.Errorf("scan categoria: %w", err)
		}
		t.Profit = t.Revenue.Sub(t.Cost)
		if t.Revenue.IsPositive() {
			t.AvgMarginPct = t.Profit.Div(t.Revenue).Mul(hundred)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// ProductCounts conteo de productos vivos para el dashboard general.
func (r *ReportRepo) ProductCounts(ctx context.Context, userID string) (repository.ProductCounts, error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE activo), COUNT(*) FILTER (WHERE NOT activo)
		FROM productos WHERE usuario_id = $1 AND NOT eliminado`
	var c repository.ProductCounts
	if err := r.q.QueryRow(ctx, query, userID).Scan(&c.Total, &c.Active, &c.Inactive); err != nil {
		return repository.ProductCounts{}, fmt.Errorf("conteo productos: %w", err)
	}
	return c, nil
}

// InventoryValue valorización del inventario a precio de compra y de venta.
func (r *ReportRepo) InventoryValue(ctx context.Context, userID string) (repository.InventoryValue, error) {
	query := `
		SELECT COALESCE(SUM(stock_actual * precio_compra), 0), COALESCE(SUM(stock_actual * precio_venta), 0)
		FROM productos WHERE usuario_id = $1 AND NOT eliminado AND activo`
	var v repository.InventoryValue
	if err := r.q.QueryRow(ctx, query, userID).Scan(&v.PurchaseValue, &v.SaleValue); err != nil {
		return repository.InventoryValue{}, fmt.Errorf("valor inventario: %w", err)
	}
	v.PotentialProfit = v.SaleValue.Sub(v.PurchaseValue)
	return v, nil
}

// SalesBetween agregado de ventas en un rango cerrado de fechas.
func (r *ReportRepo) SalesBetween(ctx context.Context, userID string, from, to time.Time) (repository.SalesPeriod, error) {
	query := `
		SELECT COUNT(m.id),
			COALESCE(SUM(m.cantidad), 0),
			COALESCE(SUM(m.cantidad * COALESCE(m.precio_unitario, p.precio_venta)), 0),
			COALESCE(SUM(m.cantidad * p.precio_compra), 0)
		FROM movimientos m
		JOIN productos p ON p.id = m.producto_id
		WHERE m.usuario_id = $1 AND m.tipo_movimiento = 'salida'
			AND m.fecha_movimiento >= $2 AND m.fecha_movimiento <= $3`
	var s repository.SalesPeriod
	if err := r.q.QueryRow(ctx, query, userID, from, to).Scan(&s.Transactions, &s.UnitsSold, &s.Revenue, &s.Cost); err != nil {
		return repository.SalesPeriod{}, fmt.Errorf("ventas del periodo: %w", err)
	}
	s.Profit = s.Revenue.Sub(s.Cost)
	return s, nil
}
