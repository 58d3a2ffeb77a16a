package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/stock-kiosco/internal/application/dto"
	"github.com/tu-usuario/stock-kiosco/internal/domain/repository"
)

const (
	defaultTopN = 10
	maxTopN     = 100

	// ventana de vencimientos que cuenta el dashboard
	dashboardExpiryDays = 7
)

// UseCase reportes de ventas y rentabilidad. Todas las cifras salen del
// libro de movimientos: las ventas son los movimientos de tipo salida.
type UseCase struct {
	repo   repository.ReportRepository
	alerts repository.AlertRepository
}

// NewUseCase construye el caso de uso. El repositorio de alertas aporta los
// conteos de stock bajo y vencimientos que muestra el dashboard general.
func NewUseCase(repo repository.ReportRepository, alerts repository.AlertRepository) *UseCase {
	return &UseCase{repo: repo, alerts: alerts}
}

// TopSellers ranking de productos más vendidos en el período. Fechas nil
// significan sin límite por ese extremo.
func (uc *UseCase) TopSellers(ctx context.Context, userID string, from, to *time.Time, limit int) ([]dto.ProductoVendidoDTO, error) {
	limit = clampLimit(limit)
	rows, err := uc.repo.TopSellers(ctx, userID, from, to, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductoVendidoDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, toProductoVendido(r))
	}
	return out, nil
}

// LeastSold productos con menos salidas en el período, incluidos los que no
// vendieron nada, con el capital que inmovilizan.
func (uc *UseCase) LeastSold(ctx context.Context, userID string, from, to *time.Time, limit int) ([]dto.ProductoMenosVendidoDTO, error) {
	limit = clampLimit(limit)
	rows, err := uc.repo.LeastSold(ctx, userID, from, to, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductoMenosVendidoDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ProductoMenosVendidoDTO{
			ID:                  r.ProductID,
			Nombre:              r.Name,
			CodigoBarras:        r.Barcode,
			Categoria:           r.CategoryName,
			StockActual:         r.CurrentStock,
			UnidadesVendidas:    r.UnitsSold,
			TotalVentas:         r.Revenue.Round(2),
			CapitalInmovilizado: r.IdleCapital.Round(2),
		})
	}
	return out, nil
}

// Profitability margen por producto: unitario, histórico y potencial.
func (uc *UseCase) Profitability(ctx context.Context, userID string) ([]dto.RentabilidadDTO, error) {
	rows, err := uc.repo.Profitability(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RentabilidadDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.RentabilidadDTO{
			ID:                r.ProductID,
			Nombre:            r.Name,
			Categoria:         r.CategoryName,
			StockActual:       r.CurrentStock,
			PrecioCompra:      r.PurchasePrice,
			PrecioVenta:       r.SalePrice,
			GananciaUnitaria:  r.UnitProfit.Round(2),
			MargenPorcentaje:  r.MarginPct.Round(2),
			UnidadesVendidas:  r.UnitsSold,
			GananciaHistorica: r.HistoricProfit.Round(2),
			CapitalInvertido:  r.InvestedCapital.Round(2),
			VentaPotencial:    r.PotentialSale.Round(2),
			GananciaPotencial: r.PotentialProfit.Round(2),
		})
	}
	return out, nil
}

// SalesByCategory ventas agregadas por categoría en el período.
func (uc *UseCase) SalesByCategory(ctx context.Context, userID string, from, to *time.Time) ([]dto.VentasCategoriaDTO, error) {
	rows, err := uc.repo.SalesByCategory(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VentasCategoriaDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.VentasCategoriaDTO{
			CategoriaID:      r.CategoryID,
			Categoria:        r.CategoryName,
			Productos:        r.Products,
			UnidadesVendidas: r.UnitsSold,
			TotalVentas:      r.Revenue.Round(2),
			Costos:           r.Cost.Round(2),
			Ganancia:         r.Profit.Round(2),
			MargenPromedio:   r.AvgMarginPct.Round(2),
		})
	}
	return out, nil
}

// General arma el dashboard: conteos de productos, valorización del
// inventario, conteos de alertas, ventas de hoy, de la semana y del mes y
// el top de vendidos. Las consultas son independientes y van en paralelo.
func (uc *UseCase) General(ctx context.Context, userID string) (*dto.ReporteGeneralResponse, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := todayStart.AddDate(0, 0, -7)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type countsRes struct {
		v   repository.ProductCounts
		err error
	}
	type valueRes struct {
		v   repository.InventoryValue
		err error
	}
	type salesRes struct {
		v   repository.SalesPeriod
		err error
	}
	type topRes struct {
		v   []repository.TopProduct
		err error
	}
	type lowRes struct {
		v   repository.LowStockSummary
		err error
	}
	type expiryRes struct {
		v   repository.ExpirySummary
		err error
	}

	countsCh := make(chan countsRes, 1)
	valueCh := make(chan valueRes, 1)
	todayCh := make(chan salesRes, 1)
	weekCh := make(chan salesRes, 1)
	monthCh := make(chan salesRes, 1)
	topCh := make(chan topRes, 1)
	lowCh := make(chan lowRes, 1)
	expiryCh := make(chan expiryRes, 1)

	go func() {
		v, err := uc.repo.ProductCounts(ctx, userID)
		countsCh <- countsRes{v, err}
	}()
	go func() {
		v, err := uc.repo.InventoryValue(ctx, userID)
		valueCh <- valueRes{v, err}
	}()
	go func() {
		v, err := uc.repo.SalesBetween(ctx, userID, todayStart, now)
		todayCh <- salesRes{v, err}
	}()
	go func() {
		v, err := uc.repo.SalesBetween(ctx, userID, weekStart, now)
		weekCh <- salesRes{v, err}
	}()
	go func() {
		v, err := uc.repo.SalesBetween(ctx, userID, monthStart, now)
		monthCh <- salesRes{v, err}
	}()
	go func() {
		v, err := uc.repo.TopSellers(ctx, userID, &monthStart, nil, 5)
		topCh <- topRes{v, err}
	}()
	go func() {
		v, err := uc.alerts.LowStockSummary(ctx, userID)
		lowCh <- lowRes{v, err}
	}()
	go func() {
		v, err := uc.alerts.ExpirySummary(ctx, userID, dashboardExpiryDays)
		expiryCh <- expiryRes{v, err}
	}()

	counts := <-countsCh
	value := <-valueCh
	today := <-todayCh
	week := <-weekCh
	month := <-monthCh
	top := <-topCh
	low := <-lowCh
	expiry := <-expiryCh

	if counts.err != nil {
		return nil, fmt.Errorf("reporte general: productos: %w", counts.err)
	}
	if value.err != nil {
		return nil, fmt.Errorf("reporte general: inventario: %w", value.err)
	}
	if today.err != nil {
		return nil, fmt.Errorf("reporte general: ventas de hoy: %w", today.err)
	}
	if week.err != nil {
		return nil, fmt.Errorf("reporte general: ventas de la semana: %w", week.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("reporte general: ventas del mes: %w", month.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("reporte general: más vendidos: %w", top.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("reporte general: stock bajo: %w", low.err)
	}
	if expiry.err != nil {
		return nil, fmt.Errorf("reporte general: vencimientos: %w", expiry.err)
	}

	masVendidos := make([]dto.ProductoVendidoDTO, 0, len(top.v))
	for _, r := range top.v {
		masVendidos = append(masVendidos, toProductoVendido(r))
	}

	var resp dto.ReporteGeneralResponse
	resp.Productos.Total = counts.v.Total
	resp.Productos.Activos = counts.v.Active
	resp.Productos.Inactivos = counts.v.Inactive
	resp.Inventario.ValorCompra = value.v.PurchaseValue.Round(2)
	resp.Inventario.ValorVenta = value.v.SaleValue.Round(2)
	resp.Inventario.GananciaPotencial = value.v.PotentialProfit.Round(2)
	resp.Alertas.StockBajo = low.v.Total
	resp.Alertas.ProximosVencer = expiry.v.Total
	resp.Alertas.TotalAlertas = low.v.Total + expiry.v.Total
	resp.VentasHoy = toPeriodoVentas(today.v)
	resp.VentasSemana = toPeriodoVentas(week.v)
	resp.VentasMes = toPeriodoVentas(month.v)
	resp.MasVendidos = masVendidos
	return &resp, nil
}

// ParsePeriod convierte las fechas "2006-01-02" de la query en time.Time.
// Strings vacíos quedan en nil (sin límite). El extremo final es inclusivo
// hasta el fin del día.
func ParsePeriod(fromStr, toStr string) (from, to *time.Time, err error) {
	loc := time.Now().Location()
	if fromStr != "" {
		t, err := time.ParseInLocation("2006-01-02", fromStr, loc)
		if err != nil {
			return nil, nil, fmt.Errorf("desde inválido: %w", err)
		}
		from = &t
	}
	if toStr != "" {
		t, err := time.ParseInLocation("2006-01-02", toStr, loc)
		if err != nil {
			return nil, nil, fmt.Errorf("hasta inválido: %w", err)
		}
		t = t.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		to = &t
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, fmt.Errorf("desde no puede ser posterior a hasta")
	}
	return from, to, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultTopN
	}
	if limit > maxTopN {
		return maxTopN
	}
	return limit
}

func toProductoVendido(r repository.TopProduct) dto.ProductoVendidoDTO {
	return dto.ProductoVendidoDTO{
		ID:               r.ProductID,
		Nombre:           r.Name,
		CodigoBarras:     r.Barcode,
		Categoria:        r.CategoryName,
		StockActual:      r.CurrentStock,
		UnidadesVendidas: r.UnitsSold,
		NumeroVentas:     r.Movements,
		TotalVentas:      r.Revenue.Round(2),
		Ganancia:         r.Profit.Round(2),
		MargenPorcentaje: r.MarginPct.Round(2),
	}
}

func toPeriodoVentas(s repository.SalesPeriod) dto.PeriodoVentasDTO {
	return dto.PeriodoVentasDTO{
		NumeroVentas: s.Transactions,
		Unidades:     s.UnitsSold,
		TotalVentas:  s.Revenue.Round(2),
		Ganancia:     s.Profit.Round(2),
	}
}
