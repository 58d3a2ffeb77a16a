package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CrearProductoRequest body para POST /api/productos.
// StockActual solo se acepta en la creación; después el stock se mueve
// exclusivamente por /api/movimientos.
type CrearProductoRequest struct {
	Nombre           string           `json:"nombre" validate:"required"`
	Descripcion      string           `json:"descripcion,omitempty"`
	CodigoBarras     string           `json:"codigo_barras,omitempty"`
	SKU              string           `json:"sku,omitempty"`
	CategoriaID      string           `json:"categoria_id,omitempty"`
	ProveedorID      string           `json:"proveedor_id,omitempty"`
	StockActual      int              `json:"stock_actual" validate:"min=0"`
	StockMinimo      int              `json:"stock_minimo" validate:"min=0"`
	UnidadMedida     string           `json:"unidad_medida,omitempty"`
	PrecioCompra     decimal.Decimal  `json:"precio_compra"`
	PrecioVenta      decimal.Decimal  `json:"precio_venta" validate:"required"`
	FechaVencimiento *time.Time       `json:"fecha_vencimiento,omitempty"`
	Lote             string           `json:"lote,omitempty"`
	Ubicacion        string           `json:"ubicacion,omitempty"`
}

// EditarProductoRequest body para PUT /api/productos/:id. Campos nil no se tocan.
type EditarProductoRequest struct {
	Nombre           *string          `json:"nombre,omitempty"`
	Descripcion      *string          `json:"descripcion,omitempty"`
	CodigoBarras     *string          `json:"codigo_barras,omitempty"`
	SKU              *string          `json:"sku,omitempty"`
	CategoriaID      *string          `json:"categoria_id,omitempty"`
	ProveedorID      *string          `json:"proveedor_id,omitempty"`
	StockMinimo      *int             `json:"stock_minimo,omitempty"`
	UnidadMedida     *string          `json:"unidad_medida,omitempty"`
	PrecioCompra     *decimal.Decimal `json:"precio_compra,omitempty"`
	PrecioVenta      *decimal.Decimal `json:"precio_venta,omitempty"`
	FechaVencimiento *time.Time       `json:"fecha_vencimiento,omitempty"`
	Lote             *string          `json:"lote,omitempty"`
	Ubicacion        *string          `json:"ubicacion,omitempty"`
	Activo           *bool            `json:"activo,omitempty"`
}

// ListarProductosRequest query params de GET /api/productos.
type ListarProductosRequest struct {
	PageRequest
	Buscar      string `query:"buscar"`
	CategoriaID string `query:"categoria_id"`
	Orden       string `query:"orden"` // nombre_asc, nombre_desc, precio_asc, precio_desc, stock_asc, stock_desc, reciente
}

// ProductoResponse producto para respuestas.
type ProductoResponse struct {
	ID               string          `json:"id"`
	Nombre           string          `json:"nombre"`
	Descripcion      string          `json:"descripcion,omitempty"`
	CodigoBarras     string          `json:"codigo_barras,omitempty"`
	SKU              string          `json:"sku,omitempty"`
	CategoriaID      string          `json:"categoria_id,omitempty"`
	CategoriaNombre  string          `json:"categoria_nombre,omitempty"`
	CategoriaColor   string          `json:"categoria_color,omitempty"`
	ProveedorID      string          `json:"proveedor_id,omitempty"`
	ProveedorNombre  string          `json:"proveedor_nombre,omitempty"`
	StockActual      int             `json:"stock_actual"`
	StockMinimo      int             `json:"stock_minimo"`
	UnidadMedida     string          `json:"unidad_medida"`
	PrecioCompra     decimal.Decimal `json:"precio_compra"`
	PrecioVenta      decimal.Decimal `json:"precio_venta"`
	FechaVencimiento *time.Time      `json:"fecha_vencimiento,omitempty"`
	Lote             string          `json:"lote,omitempty"`
	Ubicacion        string          `json:"ubicacion,omitempty"`
	Activo           bool            `json:"activo"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ListaProductosResponse listado paginado de productos.
type ListaProductosResponse struct {
	Productos  []ProductoResponse `json:"productos"`
	Paginacion Paginacion         `json:"paginacion"`
}
