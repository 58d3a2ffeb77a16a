package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/stock-kiosco/internal/domain/entity"
)

// ProductFilter filtros del listado de productos.
type ProductFilter struct {
	Search     string // nombre o código de barras
	CategoryID string
	Order      string // nombre_asc, nombre_desc, precio_asc, precio_desc, stock_asc, stock_desc, reciente
}

// ProductListItem producto con los nombres de sus referencias, para listados.
type ProductListItem struct {
	entity.Product
	CategoryName  string
	CategoryColor string
	SupplierName  string
}

// ProductRepository puerto de persistencia para Product.
//
// UpdateStock y UpdatePurchasePrice solo deben invocarse desde el ledger,
// dentro de la transacción que insertó el movimiento correspondiente.
type ProductRepository interface {
	Create(p *entity.Product) error
	// GetByID devuelve el producto activo (no borrado) del usuario, o nil si no existe.
	GetByID(id, userID string) (*entity.Product, error)
	// GetForUpdate devuelve el producto y bloquea su fila (SELECT FOR UPDATE)
	// hasta el fin de la transacción. Nil si no existe, está borrado o no es del usuario.
	GetForUpdate(id, userID string) (*entity.Product, error)
	Update(p *entity.Product) error
	UpdateStock(id string, stock int) error
	UpdatePurchasePrice(id string, price decimal.Decimal) error
	SoftDelete(id, userID string) error
	List(userID string, f ProductFilter, limit, offset int) ([]ProductListItem, error)
	Count(userID string, f ProductFilter) (int, error)
	// BarcodeExists verifica duplicados de código de barras dentro del usuario,
	// excluyendo opcionalmente un producto (para ediciones).
	BarcodeExists(userID, barcode, excludeID string) (bool, error)
}
