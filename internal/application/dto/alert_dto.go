package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBajoDTO producto con stock en o por debajo del mínimo.
type StockBajoDTO struct {
	ID                string          `json:"id"`
	Nombre            string          `json:"nombre"`
	CodigoBarras      string          `json:"codigo_barras,omitempty"`
	StockActual       int             `json:"stock_actual"`
	StockMinimo       int             `json:"stock_minimo"`
	PrecioCompra      decimal.Decimal `json:"precio_compra"`
	PrecioVenta       decimal.Decimal `json:"precio_venta"`
	Categoria         string          `json:"categoria,omitempty"`
	Proveedor         string          `json:"proveedor,omitempty"`
	TelefonoProveedor string          `json:"telefono_proveedor,omitempty"`
	CantidadFaltante  int             `json:"cantidad_faltante"`
	NivelAlerta       string          `json:"nivel_alerta"`
}

// VencimientoDTO producto próximo a vencer o vencido.
type VencimientoDTO struct {
	ID               string          `json:"id"`
	Nombre           string          `json:"nombre"`
	CodigoBarras     string          `json:"codigo_barras,omitempty"`
	StockActual      int             `json:"stock_actual"`
	FechaVencimiento time.Time       `json:"fecha_vencimiento"`
	PrecioCompra     decimal.Decimal `json:"precio_compra"`
	PrecioVenta      decimal.Decimal `json:"precio_venta"`
	Categoria        string          `json:"categoria,omitempty"`
	ValorStock       decimal.Decimal `json:"valor_stock"`
	DiasParaVencer   int             `json:"dias_para_vencer"`
	NivelAlerta      string          `json:"nivel_alerta"`
}

// VencimientosResponse listado de vencimientos con el valor total en riesgo.
type VencimientosResponse struct {
	Productos        []VencimientoDTO `json:"productos"`
	Total            int              `json:"total"`
	ValorTotalRiesgo decimal.Decimal  `json:"valor_total_riesgo"`
}

// SinMovimientoResponse resumen de productos sin actividad reciente.
type SinMovimientoResponse struct {
	Total               int             `json:"total"`
	CapitalInmovilizado decimal.Decimal `json:"capital_inmovilizado"`
}

// DashboardAlertasResponse resumen general de alertas.
type DashboardAlertasResponse struct {
	StockBajo struct {
		Total    int `json:"total"`
		Criticos int `json:"criticos"`
		Urgentes int `json:"urgentes"`
	} `json:"stock_bajo"`
	ProximosVencer struct {
		Total       int             `json:"total"`
		Vencidos    int             `json:"vencidos"`
		Criticos    int             `json:"criticos"`
		ValorRiesgo decimal.Decimal `json:"valor_riesgo"`
	} `json:"proximos_vencer"`
	SinMovimiento struct {
		Total               int             `json:"total"`
		CapitalInmovilizado decimal.Decimal `json:"capital_inmovilizado"`
	} `json:"sin_movimiento"`
	AlertasTotales int `json:"alertas_totales"`
}
