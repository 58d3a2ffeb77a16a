package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeEntry      = "entrada"
	MovementTypeExit       = "salida"
	MovementTypeAdjustment = "ajuste"
)

// Motivos fijos para entradas y salidas.
const (
	ReasonPurchase = "compra"
	ReasonSale     = "venta"
)

// AdjustmentReasons es el conjunto cerrado de motivos válidos para un ajuste.
var AdjustmentReasons = []string{"merma", "rotura", "vencimiento", "inventario", "otro"}

// ValidAdjustmentReason indica si motivo pertenece al conjunto permitido.
func ValidAdjustmentReason(motivo string) bool {
	for _, r := range AdjustmentReasons {
		if r == motivo {
			return true
		}
	}
	return false
}

// Movement es un asiento inmutable del libro de stock: registra cada cambio
// con foto del stock antes y después. Nunca se actualiza ni se borra.
//
// Quantity se guarda siempre positivo, también en ajustes negativos; el signo
// del efecto queda capturado por StockBefore/StockAfter. Código de reportes
// aguas abajo depende de esa representación.
type Movement struct {
	ID            string
	ProductID     string
	UserID        string
	Type          string // entrada | salida | ajuste
	Quantity      int    // magnitud, siempre > 0
	Reason        string // compra, venta, merma, rotura, vencimiento, inventario, otro
	UnitPrice     *decimal.Decimal
	StockBefore   int
	StockAfter    int
	SupplierID    string // solo entradas, vacío si no aplica
	InvoiceNumber string
	Notes         string
	Date          time.Time
}
