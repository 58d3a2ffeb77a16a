package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-kiosco/internal/application/ledger"
	"github.com/tu-usuario/stock-kiosco/internal/domain/repository"
)

// EntradaRequest body para POST /api/movimientos/entrada.
type EntradaRequest struct {
	ProductoID     string           `json:"producto_id" validate:"required"`
	Cantidad       int              `json:"cantidad" validate:"required"`
	PrecioUnitario *decimal.Decimal `json:"precio_unitario,omitempty"`
	ProveedorID    string           `json:"proveedor_id,omitempty"`
	NumeroFactura  string           `json:"numero_factura,omitempty"`
	Notas          string           `json:"notas,omitempty"`
}

// SalidaRequest body para POST /api/movimientos/salida.
type SalidaRequest struct {
	ProductoID     string           `json:"producto_id" validate:"required"`
	Cantidad       int              `json:"cantidad" validate:"required"`
	PrecioUnitario *decimal.Decimal `json:"precio_unitario,omitempty"`
	Notas          string           `json:"notas,omitempty"`
}

// AjusteRequest body para POST /api/movimientos/ajuste. Cantidad lleva signo.
type AjusteRequest struct {
	ProductoID string `json:"producto_id" validate:"required"`
	Cantidad   int    `json:"cantidad" validate:"required"`
	Motivo     string `json:"motivo" validate:"required"`
	Notas      string `json:"notas,omitempty"`
}

// ListarMovimientosRequest query params de GET /api/movimientos.
type ListarMovimientosRequest struct {
	PageRequest
	TipoMovimiento string `query:"tipo_movimiento"`
	FechaDesde     string `query:"fecha_desde"` // YYYY-MM-DD
	FechaHasta     string `query:"fecha_hasta"`
}

// MovimientoDTO asiento del libro para respuestas.
type MovimientoDTO struct {
	ID              string           `json:"id"`
	ProductoID      string           `json:"producto_id"`
	ProductoNombre  string           `json:"producto_nombre,omitempty"`
	ProductoCodigo  string           `json:"producto_codigo,omitempty"`
	TipoMovimiento  string           `json:"tipo_movimiento"`
	Cantidad        int              `json:"cantidad"`
	Motivo          string           `json:"motivo"`
	PrecioUnitario  *decimal.Decimal `json:"precio_unitario,omitempty"`
	StockAnterior   int              `json:"stock_anterior"`
	StockPosterior  int              `json:"stock_posterior"`
	ProveedorID     string           `json:"proveedor_id,omitempty"`
	ProveedorNombre string           `json:"proveedor_nombre,omitempty"`
	NumeroFactura   string           `json:"numero_factura,omitempty"`
	UsuarioNombre   string           `json:"usuario_nombre,omitempty"`
	Notas           string           `json:"notas,omitempty"`
	Fecha           time.Time        `json:"fecha_movimiento"`
}

// MovimientoProductoDTO foto del producto afectado por el movimiento.
type MovimientoProductoDTO struct {
	ID            string `json:"id"`
	Nombre        string `json:"nombre"`
	StockAnterior int    `json:"stock_anterior"`
	StockActual   int    `json:"stock_actual"`
	Diferencia    *int   `json:"diferencia,omitempty"` // solo ajustes
}

// RegistrarMovimientoResponse respuesta de entrada/salida/ajuste.
type RegistrarMovimientoResponse struct {
	Movimiento MovimientoDTO         `json:"movimiento"`
	Producto   MovimientoProductoDTO `json:"producto"`
}

// ListaMovimientosResponse listado paginado de movimientos.
type ListaMovimientosResponse struct {
	Movimientos []MovimientoDTO `json:"movimientos"`
	Paginacion  Paginacion      `json:"paginacion"`
}

// HistorialProductoResponse historial de un producto.
type HistorialProductoResponse struct {
	Producto    MovimientoProductoDTO `json:"producto"`
	Movimientos []MovimientoDTO       `json:"movimientos"`
	Paginacion  Paginacion            `json:"paginacion"`
}

// FromMovementResult arma la respuesta de registro a partir del resultado del ledger.
func FromMovementResult(r *ledger.MovementResult) RegistrarMovimientoResponse {
	m := r.Movement
	out := RegistrarMovimientoResponse{
		Movimiento: MovimientoDTO{
			ID:             m.ID,
			ProductoID:     m.ProductID,
			TipoMovimiento: m.Type,
			Cantidad:       m.Quantity,
			Motivo:         m.Reason,
			PrecioUnitario: m.UnitPrice,
			StockAnterior:  m.StockBefore,
			StockPosterior: m.StockAfter,
			ProveedorID:    m.SupplierID,
			NumeroFactura:  m.InvoiceNumber,
			Notas:          m.Notes,
			Fecha:          m.Date,
		},
		Producto: MovimientoProductoDTO{
			ID:            r.Product.ID,
			Nombre:        r.Product.Name,
			StockAnterior: r.Product.StockBefore,
			StockActual:   r.Product.CurrentStock,
		},
	}
	if m.Type == "ajuste" {
		diff := r.Product.Difference
		out.Producto.Diferencia = &diff
	}
	return out
}

// FromMovementListItem convierte un item de listado del repositorio.
func FromMovementListItem(it repository.MovementListItem) MovimientoDTO {
	return MovimientoDTO{
		ID:              it.ID,
		ProductoID:      it.ProductID,
		ProductoNombre:  it.ProductName,
		ProductoCodigo:  it.ProductBarcode,
		TipoMovimiento:  it.Type,
		Cantidad:        it.Quantity,
		Motivo:          it.Reason,
		PrecioUnitario:  it.UnitPrice,
		StockAnterior:   it.StockBefore,
		StockPosterior:  it.StockAfter,
		ProveedorID:     it.SupplierID,
		ProveedorNombre: it.SupplierName,
		NumeroFactura:   it.InvoiceNumber,
		UsuarioNombre:   it.UserName,
		Notas:           it.Notes,
		Fecha:           it.Date,
	}
}
