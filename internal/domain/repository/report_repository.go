package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TopProduct fila del reporte de productos más vendidos.
type TopProduct struct {
	ProductID     string
	Name          string
	Barcode       string
	CurrentStock  int
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	CategoryName  string
	Movements     int
	UnitsSold     int
	Revenue       decimal.Decimal
	Cost          decimal.Decimal
	Profit        decimal.Decimal
	MarginPct     decimal.Decimal
}

// LeastSoldProduct fila del reporte de productos menos vendidos.
type LeastSoldProduct struct {
	ProductID     string
	Name          string
	Barcode       string
	CurrentStock  int
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	CategoryName  string
	UnitsSold     int
	Revenue       decimal.Decimal
	IdleCapital   decimal.Decimal // stock_actual × precio_compra
}

// ProfitabilityRow fila del reporte de rentabilidad por producto.
type ProfitabilityRow struct {
	ProductID       string
	Name            string
	Barcode         string
	CurrentStock    int
	PurchasePrice   decimal.Decimal
	SalePrice       decimal.Decimal
	CategoryName    string
	UnitProfit      decimal.Decimal
	MarginPct       decimal.Decimal
	UnitsSold       int
	HistoricProfit  decimal.Decimal
	InvestedCapital decimal.Decimal // stock_actual × precio_compra
	PotentialSale   decimal.Decimal // stock_actual × precio_venta
	PotentialProfit decimal.Decimal
}

// CategorySales fila del reporte de ventas por categoría.
type CategorySales struct {
	CategoryID   string
	CategoryName string
	Products     int
	UnitsSold    int
	Revenue      decimal.Decimal
	Cost         decimal.Decimal
	Profit       decimal.Decimal
	AvgMarginPct decimal.Decimal
}

// SalesPeriod agregado de ventas (salidas) en un rango de fechas.
type SalesPeriod struct {
	Transactions int
	UnitsSold    int
	Revenue      decimal.Decimal
	Cost         decimal.Decimal
	Profit       decimal.Decimal
}

// ProductCounts conteo de productos para el dashboard general.
type ProductCounts struct {
	Total    int
	Active   int
	Inactive int
}

// InventoryValue valorización del inventario a precio de compra y de venta.
type InventoryValue struct {
	PurchaseValue   decimal.Decimal
	SaleValue       decimal.Decimal
	PotentialProfit decimal.Decimal
}

// ReportRepository consultas de solo lectura para reportes de ventas y
// rentabilidad. Las ventas se derivan de los movimientos de tipo salida.
type ReportRepository interface {
	TopSellers(ctx context.Context, userID string, from, to *time.Time, limit int) ([]TopProduct, error)
	LeastSold(ctx context.Context, userID string, from, to *time.Time, limit int) ([]LeastSoldProduct, error)
	Profitability(ctx context.Context, userID string) ([]ProfitabilityRow, error)
	SalesByCategory(ctx context.Context, userID string, from, to *time.Time) ([]CategorySales, error)
	ProductCounts(ctx context.Context, userID string) (ProductCounts, error)
	InventoryValue(ctx context.Context, userID string) (InventoryValue, error)
	SalesBetween(ctx context.Context, userID string, from, to time.Time) (SalesPeriod, error)
}
