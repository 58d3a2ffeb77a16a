package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del kiosco.
//
// CurrentStock lo muta únicamente el libro de movimientos (ledger); ningún
// otro camino del código escribe sobre él después de la creación. Las
// cantidades son enteros no negativos; los precios van en decimal.
type Product struct {
	ID            string
	UserID        string
	CategoryID    string // vacío si no tiene categoría
	SupplierID    string // proveedor habitual, vacío si no tiene
	Name          string
	Description   string
	Barcode       string // único por usuario cuando no está vacío
	SKU           string
	CurrentStock  int
	MinStock      int
	UnitMeasure   string // unidad, kg, litro, pack
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	ExpiryDate    *time.Time
	Batch         string
	Location      string
	Active        bool
	Deleted       bool // borrado lógico; el producto conserva su historial
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
