package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Niveles de alerta, del más al menos urgente.
const (
	AlertLevelExpired  = "VENCIDO"
	AlertLevelCritical = "CRÍTICO"
	AlertLevelUrgent   = "URGENTE"
	AlertLevelWarning  = "ADVERTENCIA"
)

// LowStockItem producto con stock en o por debajo del mínimo.
type LowStockItem struct {
	ProductID     string
	Name          string
	Barcode       string
	CurrentStock  int
	MinStock      int
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	CategoryName  string
	SupplierName  string
	SupplierPhone string
	Missing       int    // stock_minimo - stock_actual
	Level         string // CRÍTICO (stock 0), URGENTE (<= 50% del mínimo), ADVERTENCIA
}

// ExpiringItem producto con fecha de vencimiento dentro de la ventana consultada.
type ExpiringItem struct {
	ProductID     string
	Name          string
	Barcode       string
	CurrentStock  int
	ExpiryDate    time.Time
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	CategoryName  string
	StockValue    decimal.Decimal // stock_actual × precio_compra
	DaysToExpiry  int             // negativo si ya venció
	Level         string
}

// IdleSummary resumen de productos sin movimientos recientes.
type IdleSummary struct {
	Total       int
	IdleCapital decimal.Decimal // stock_actual × precio_compra acumulado
}

// LowStockSummary conteos para el dashboard de alertas.
type LowStockSummary struct {
	Total    int
	Critical int
	Urgent   int
}

// ExpirySummary conteos y valor en riesgo para el dashboard de alertas.
type ExpirySummary struct {
	Total       int
	Expired     int
	Critical    int
	ValueAtRisk decimal.Decimal
}

// AlertRepository consultas de solo lectura para las alertas del kiosco.
type AlertRepository interface {
	LowStock(ctx context.Context, userID string) ([]LowStockItem, error)
	Expiring(ctx context.Context, userID string, days int) ([]ExpiringItem, error)
	Idle(ctx context.Context, userID string, days int) (IdleSummary, error)
	LowStockSummary(ctx context.Context, userID string) (LowStockSummary, error)
	ExpirySummary(ctx context.Context, userID string, days int) (ExpirySummary, error)
}
