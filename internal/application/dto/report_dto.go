package dto

import (
	"github.com/shopspring/decimal"
)

// ProductoVendidoDTO fila del ranking de más vendidos.
type ProductoVendidoDTO struct {
	ID               string          `json:"id"`
	Nombre           string          `json:"nombre"`
	CodigoBarras     string          `json:"codigo_barras,omitempty"`
	Categoria        string          `json:"categoria,omitempty"`
	StockActual      int             `json:"stock_actual"`
	UnidadesVendidas int             `json:"unidades_vendidas"`
	NumeroVentas     int             `json:"numero_ventas"`
	TotalVentas      decimal.Decimal `json:"total_ventas"`
	Ganancia         decimal.Decimal `json:"ganancia"`
	MargenPorcentaje decimal.Decimal `json:"margen_porcentaje"`
}

// ProductoMenosVendidoDTO fila del ranking de menos vendidos.
type ProductoMenosVendidoDTO struct {
	ID                 string          `json:"id"`
	Nombre             string          `json:"nombre"`
	CodigoBarras       string          `json:"codigo_barras,omitempty"`
	Categoria          string          `json:"categoria,omitempty"`
	StockActual        int             `json:"stock_actual"`
	UnidadesVendidas   int             `json:"unidades_vendidas"`
	TotalVentas        decimal.Decimal `json:"total_ventas"`
	CapitalInmovilizado decimal.Decimal `json:"capital_inmovilizado"`
}

// RentabilidadDTO margen por producto, histórico y potencial.
type RentabilidadDTO struct {
	ID                string          `json:"id"`
	Nombre            string          `json:"nombre"`
	Categoria         string          `json:"categoria,omitempty"`
	StockActual       int             `json:"stock_actual"`
	PrecioCompra      decimal.Decimal `json:"precio_compra"`
	PrecioVenta       decimal.Decimal `json:"precio_venta"`
	GananciaUnitaria  decimal.Decimal `json:"ganancia_unitaria"`
	MargenPorcentaje  decimal.Decimal `json:"margen_porcentaje"`
	UnidadesVendidas  int             `json:"unidades_vendidas"`
	GananciaHistorica decimal.Decimal `json:"ganancia_historica"`
	CapitalInvertido  decimal.Decimal `json:"capital_invertido"`
	VentaPotencial    decimal.Decimal `json:"venta_potencial"`
	GananciaPotencial decimal.Decimal `json:"ganancia_potencial"`
}

// VentasCategoriaDTO ventas agregadas por categoría.
type VentasCategoriaDTO struct {
	CategoriaID      string          `json:"categoria_id,omitempty"`
	Categoria        string          `json:"categoria"`
	Productos        int             `json:"productos"`
	UnidadesVendidas int             `json:"unidades_vendidas"`
	TotalVentas      decimal.Decimal `json:"total_ventas"`
	Costos           decimal.Decimal `json:"costos"`
	Ganancia         decimal.Decimal `json:"ganancia"`
	MargenPromedio   decimal.Decimal `json:"margen_promedio"`
}

// PeriodoVentasDTO total de ventas dentro de un rango de fechas.
type PeriodoVentasDTO struct {
	NumeroVentas int             `json:"numero_ventas"`
	Unidades     int             `json:"unidades"`
	TotalVentas  decimal.Decimal `json:"total_ventas"`
	Ganancia     decimal.Decimal `json:"ganancia"`
}

// ReporteGeneralResponse el dashboard combinado de reportes.
type ReporteGeneralResponse struct {
	Productos struct {
		Total     int `json:"total"`
		Activos   int `json:"activos"`
		Inactivos int `json:"inactivos"`
	} `json:"productos"`
	Inventario struct {
		ValorCompra       decimal.Decimal `json:"valor_compra"`
		ValorVenta        decimal.Decimal `json:"valor_venta"`
		GananciaPotencial decimal.Decimal `json:"ganancia_potencial"`
	} `json:"inventario"`
	Alertas struct {
		StockBajo      int `json:"stock_bajo"`
		ProximosVencer int `json:"proximos_vencer"`
		TotalAlertas   int `json:"total_alertas"`
	} `json:"alertas"`
	VentasHoy    PeriodoVentasDTO     `json:"ventas_hoy"`
	VentasSemana PeriodoVentasDTO     `json:"ventas_semana"`
	VentasMes    PeriodoVentasDTO     `json:"ventas_mes"`
	MasVendidos  []ProductoVendidoDTO `json:"mas_vendidos"`
}
