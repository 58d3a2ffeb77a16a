package alerts

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/stock-kiosco/internal/application/dto"
	"github.com/tu-usuario/stock-kiosco/internal/domain/repository"
)

const (
	defaultExpiryWindow = 7   // días
	maxExpiryWindow     = 365 // días
	defaultIdleWindow   = 30  // días
)

// PDFGenerator arma el PDF de la lista de compras sugerida a partir de los
// productos con stock bajo.
type PDFGenerator interface {
	PurchaseList(items []repository.LowStockItem) ([]byte, error)
}

// UseCase alertas operativas del kiosco: stock bajo, vencimientos y
// productos sin rotación.
type UseCase struct {
	repo repository.AlertRepository
	pdf  PDFGenerator
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.AlertRepository, pdf PDFGenerator) *UseCase {
	return &UseCase{repo: repo, pdf: pdf}
}

// LowStock lista los productos activos con stock en o por debajo del mínimo,
// con el dato de contacto del proveedor habitual para reponer.
func (uc *UseCase) LowStock(ctx context.Context, userID string) ([]dto.StockBajoDTO, error) {
	items, err := uc.repo.LowStock(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockBajoDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.StockBajoDTO{
			ID:                it.ProductID,
			Nombre:            it.Name,
			CodigoBarras:      it.Barcode,
			StockActual:       it.CurrentStock,
			StockMinimo:       it.MinStock,
			PrecioCompra:      it.PurchasePrice,
			PrecioVenta:       it.SalePrice,
			Categoria:         it.CategoryName,
			Proveedor:         it.SupplierName,
			TelefonoProveedor: it.SupplierPhone,
			CantidadFaltante:  it.Missing,
			NivelAlerta:       it.Level,
		})
	}
	return out, nil
}

// Expiring lista los productos con vencimiento dentro de la ventana de días,
// incluidos los ya vencidos, junto con el valor de stock en riesgo.
func (uc *UseCase) Expiring(ctx context.Context, userID string, days int) (*dto.VencimientosResponse, error) {
	if days <= 0 {
		days = defaultExpiryWindow
	}
	if days > maxExpiryWindow {
		days = maxExpiryWindow
	}
	items, err := uc.repo.Expiring(ctx, userID, days)
	if err != nil {
		return nil, err
	}
	productos := make([]dto.VencimientoDTO, 0, len(items))
	total := decimal.Zero
	for _, it := range items {
		productos = append(productos, dto.VencimientoDTO{
			ID:               it.ProductID,
			Nombre:           it.Name,
			CodigoBarras:     it.Barcode,
			StockActual:      it.CurrentStock,
			FechaVencimiento: it.ExpiryDate,
			PrecioCompra:     it.PurchasePrice,
			PrecioVenta:      it.SalePrice,
			Categoria:        it.CategoryName,
			ValorStock:       it.StockValue,
			DiasParaVencer:   it.DaysToExpiry,
			NivelAlerta:      it.Level,
		})
		total = total.Add(it.StockValue)
	}
	return &dto.VencimientosResponse{
		Productos:        productos,
		Total:            len(productos),
		ValorTotalRiesgo: total.Round(2),
	}, nil
}

// Idle resume los productos con stock que no registran salidas en la ventana
// de días y el capital inmovilizado en ellos.
func (uc *UseCase) Idle(ctx context.Context, userID string, days int) (*dto.SinMovimientoResponse, error) {
	if days <= 0 {
		days = defaultIdleWindow
	}
	summary, err := uc.repo.Idle(ctx, userID, days)
	if err != nil {
		return nil, err
	}
	return &dto.SinMovimientoResponse{
		Total:               summary.Total,
		CapitalInmovilizado: summary.IdleCapital.Round(2),
	}, nil
}

// Dashboard combina los resúmenes de las tres alertas. Las consultas son
// independientes y van en paralelo.
func (uc *UseCase) Dashboard(ctx context.Context, userID string) (*dto.DashboardAlertasResponse, error) {
	type lowRes struct {
		s   repository.LowStockSummary
		err error
	}
	type expRes struct {
		s   repository.ExpirySummary
		err error
	}
	type idleRes struct {
		s   repository.IdleSummary
		err error
	}

	lowCh := make(chan lowRes, 1)
	expCh := make(chan expRes, 1)
	idleCh := make(chan idleRes, 1)

	go func() {
		s, err := uc.repo.LowStockSummary(ctx, userID)
		lowCh <- lowRes{s, err}
	}()
	go func() {
		s, err := uc.repo.ExpirySummary(ctx, userID, defaultExpiryWindow)
		expCh <- expRes{s, err}
	}()
	go func() {
		s, err := uc.repo.Idle(ctx, userID, defaultIdleWindow)
		idleCh <- idleRes{s, err}
	}()

	low := <-lowCh
	exp := <-expCh
	idle := <-idleCh

	if low.err != nil {
		return nil, fmt.Errorf("alertas: stock bajo: %w", low.err)
	}
	if exp.err != nil {
		return nil, fmt.Errorf("alertas: vencimientos: %w", exp.err)
	}
	if idle.err != nil {
		return nil, fmt.Errorf("alertas: sin movimiento: %w", idle.err)
	}

	var resp dto.DashboardAlertasResponse
	resp.StockBajo.Total = low.s.Total
	resp.StockBajo.Criticos = low.s.Critical
	resp.StockBajo.Urgentes = low.s.Urgent
	resp.ProximosVencer.Total = exp.s.Total
	resp.ProximosVencer.Vencidos = exp.s.Expired
	resp.ProximosVencer.Criticos = exp.s.Critical
	resp.ProximosVencer.ValorRiesgo = exp.s.ValueAtRisk.Round(2)
	resp.SinMovimiento.Total = idle.s.Total
	resp.SinMovimiento.CapitalInmovilizado = idle.s.IdleCapital.Round(2)
	resp.AlertasTotales = low.s.Total + exp.s.Total + idle.s.Total
	return &resp, nil
}

// PurchaseListPDF genera el PDF de la lista de compras con los productos en
// stock bajo, agrupados por proveedor.
func (uc *UseCase) PurchaseListPDF(ctx context.Context, userID string) ([]byte, error) {
	items, err := uc.repo.LowStock(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.pdf.PurchaseList(items)
}
