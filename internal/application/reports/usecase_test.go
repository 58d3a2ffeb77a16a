package reports_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-kiosco/internal/application/reports"
	"github.com/tu-usuario/stock-kiosco/internal/domain/repository"
)

const testUserID = "00000000-0000-0000-0000-0000000000aa"

// ──────────────────────────────────────────────────────────────────────────────
// Fake
// ──────────────────────────────────────────────────────────────────────────────

type fakeReportRepo struct {
	mu        sync.Mutex
	top       []repository.TopProduct
	least     []repository.LeastSoldProduct
	profit    []repository.ProfitabilityRow
	byCat     []repository.CategorySales
	counts    repository.ProductCounts
	inventory repository.InventoryValue
	sales     repository.SalesPeriod

	topLimit   int // captura el límite pedido
	salesCalls []time.Time
}

func (r *fakeReportRepo) TopSellers(ctx context.Context, userID string, from, to *time.Time, limit int) ([]repository.TopProduct, error) {
	r.topLimit = limit
	return r.top, nil
}

func (r *fakeReportRepo) LeastSold(ctx context.Context, userID string, from, to *time.Time, limit int) ([]repository.LeastSoldProduct, error) {
	return r.least, nil
}

func (r *fakeReportRepo) Profitability(ctx context.Context, userID string) ([]repository.ProfitabilityRow, error) {
	return r.profit, nil
}

func (r *fakeReportRepo) SalesByCategory(ctx context.Context, userID string, from, to *time.Time) ([]repository.CategorySales, error) {
	return r.byCat, nil
}

func (r *fakeReportRepo) ProductCounts(ctx context.Context, userID string) (repository.ProductCounts, error) {
	return r.counts, nil
}

func (r *fakeReportRepo) InventoryValue(ctx context.Context, userID string) (repository.InventoryValue, error) {
	return r.inventory, nil
}

func (r *fakeReportRepo) SalesBetween(ctx context.Context, userID string, from, to time.Time) (repository.SalesPeriod, error) {
	r.mu.Lock()
	r.salesCalls = append(r.salesCalls, from)
	r.mu.Unlock()
	return r.sales, nil
}

// fakeAlertSummaries provee los conteos de alertas que consume el dashboard.
// Los listados no se usan desde reportes y devuelven vacío.
type fakeAlertSummaries struct {
	low        repository.LowStockSummary
	expiry     repository.ExpirySummary
	expiryDays int // captura la ventana pedida
	failLow    bool
}

func (a *fakeAlertSummaries) LowStock(ctx context.Context, userID string) ([]repository.LowStockItem, error) {
	return nil, nil
}

func (a *fakeAlertSummaries) Expiring(ctx context.Context, userID string, days int) ([]repository.ExpiringItem, error) {
	return nil, nil
}

func (a *fakeAlertSummaries) Idle(ctx context.Context, userID string, days int) (repository.IdleSummary, error) {
	return repository.IdleSummary{}, nil
}

func (a *fakeAlertSummaries) LowStockSummary(ctx context.Context, userID string) (repository.LowStockSummary, error) {
	if a.failLow {
		return repository.LowStockSummary{}, assert.AnError
	}
	return a.low, nil
}

func (a *fakeAlertSummaries) ExpirySummary(ctx context.Context, userID string, days int) (repository.ExpirySummary, error) {
	a.expiryDays = days
	return a.expiry, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestTopSellers_RedondeaYMapea(t *testing.T) {
	repo := &fakeReportRepo{top: []repository.TopProduct{
		{
			ProductID: "p1",
			Name:      "Coca Cola 500ml",
			UnitsSold: 42,
			Movements: 30,
			Revenue:   decimal.RequireFromString("50400.005"),
			Profit:    decimal.RequireFromString("16800.004"),
			MarginPct: decimal.RequireFromString("33.3333"),
		},
	}}
	uc := reports.NewUseCase(repo, &fakeAlertSummaries{})

	out, err := uc.TopSellers(context.Background(), testUserID, nil, nil, 0)
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, 10, repo.topLimit, "sin límite explícito se piden 10")
	assert.Equal(t, 42, out[0].UnidadesVendidas)
	assert.Equal(t, "50400.01", out[0].TotalVentas.String())
	assert.Equal(t, "33.33", out[0].MargenPorcentaje.String())
}

func TestTopSellers_LimiteAcotado(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := reports.NewUseCase(repo, &fakeAlertSummaries{})

	_, err := uc.TopSellers(context.Background(), testUserID, nil, nil, 5000)
	require.NoError(t, err)
	assert.Equal(t, 100, repo.topLimit)
}

func TestLeastSold_IncluyeCapitalInmovilizado(t *testing.T) {
	repo := &fakeReportRepo{least: []repository.LeastSoldProduct{
		{ProductID: "p9", Name: "Encendedor", UnitsSold: 0, Revenue: decimal.Zero, IdleCapital: decimal.NewFromInt(4500)},
	}}
	uc := reports.NewUseCase(repo, &fakeAlertSummaries{})

	out, err := uc.LeastSold(context.Background(), testUserID, nil, nil, 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 0, out[0].UnidadesVendidas, "los que nunca vendieron también aparecen")
	assert.True(t, decimal.NewFromInt(4500).Equal(out[0].CapitalInmovilizado))
}

func TestProfitability_Mapea(t *testing.T) {
	repo := &fakeReportRepo{profit: []repository.ProfitabilityRow{
		{
			ProductID:       "p1",
			Name:            "Coca Cola 500ml",
			CurrentStock:    10,
			PurchasePrice:   decimal.NewFromInt(800),
			SalePrice:       decimal.NewFromInt(1200),
			UnitProfit:      decimal.NewFromInt(400),
			MarginPct:       decimal.RequireFromString("33.333"),
			UnitsSold:       42,
			HistoricProfit:  decimal.NewFromInt(16800),
			InvestedCapital: decimal.NewFromInt(8000),
			PotentialSale:   decimal.NewFromInt(12000),
			PotentialProfit: decimal.NewFromInt(4000),
		},
	}}
	uc := reports.NewUseCase(repo, &fakeAlertSummaries{})

	out, err := uc.Profitability(context.Background(), testUserID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "33.33", out[0].MargenPorcentaje.String())
	assert.True(t, decimal.NewFromInt(16800).Equal(out[0].GananciaHistorica))
	assert.True(t, decimal.NewFromInt(4000).Equal(out[0].GananciaPotencial))
}

func TestGeneral_CombinaLasConsultas(t *testing.T) {
	repo := &fakeReportRepo{
		counts:    repository.ProductCounts{Total: 20, Active: 18, Inactive: 2},
		inventory: repository.InventoryValue{PurchaseValue: decimal.NewFromInt(100000), SaleValue: decimal.NewFromInt(150000), PotentialProfit: decimal.NewFromInt(50000)},
		sales:     repository.SalesPeriod{Transactions: 7, UnitsSold: 15, Revenue: decimal.NewFromInt(18000), Profit: decimal.NewFromInt(6000)},
		top:       []repository.TopProduct{{ProductID: "p1", Name: "Coca Cola 500ml", Revenue: decimal.NewFromInt(9000)}},
	}
	alerts := &fakeAlertSummaries{
		low:    repository.LowStockSummary{Total: 4, Critical: 1, Urgent: 2},
		expiry: repository.ExpirySummary{Total: 3, Expired: 1},
	}
	uc := reports.NewUseCase(repo, alerts)

	resp, err := uc.General(context.Background(), testUserID)
	require.NoError(t, err)

	assert.Equal(t, 20, resp.Productos.Total)
	assert.Equal(t, 18, resp.Productos.Activos)
	assert.True(t, decimal.NewFromInt(150000).Equal(resp.Inventario.ValorVenta))
	assert.Equal(t, 7, resp.VentasHoy.NumeroVentas)
	assert.Equal(t, 15, resp.VentasSemana.Unidades)
	assert.Equal(t, 15, resp.VentasMes.Unidades)
	require.Len(t, resp.MasVendidos, 1)
	assert.Equal(t, 5, repo.topLimit, "el dashboard pide el top 5 del mes")

	// Conteos de alertas: stock bajo más próximos a vencer, ventana de 7 días
	assert.Equal(t, 4, resp.Alertas.StockBajo)
	assert.Equal(t, 3, resp.Alertas.ProximosVencer)
	assert.Equal(t, 7, resp.Alertas.TotalAlertas)
	assert.Equal(t, 7, alerts.expiryDays)

	// Tres rangos de ventas: hoy desde las 00:00, la semana 7 días atrás y
	// el mes desde el día 1
	require.Len(t, repo.salesCalls, 3)
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var sawToday, sawWeek, sawMonth bool
	for _, from := range repo.salesCalls {
		if from.Equal(dayStart) {
			sawToday = true
		}
		if from.Equal(dayStart.AddDate(0, 0, -7)) {
			sawWeek = true
		}
		if from.Equal(monthStart) {
			sawMonth = true
		}
	}
	assert.True(t, sawToday, "debe consultar ventas desde el inicio del día")
	assert.True(t, sawWeek, "debe consultar ventas de los últimos 7 días")
	assert.True(t, sawMonth, "debe consultar ventas desde el inicio del mes")
}

func TestGeneral_PropagaErrorDeAlertas(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := reports.NewUseCase(repo, &fakeAlertSummaries{failLow: true})

	_, err := uc.General(context.Background(), testUserID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stock bajo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ParsePeriod
// ──────────────────────────────────────────────────────────────────────────────

func TestParsePeriod_RangoCompleto(t *testing.T) {
	from, to, err := reports.ParsePeriod("2026-08-01", "2026-08-15")
	require.NoError(t, err)
	require.NotNil(t, from)
	require.NotNil(t, to)

	assert.Equal(t, 1, from.Day())
	// El extremo final incluye todo el día
	assert.Equal(t, 15, to.Day())
	assert.Equal(t, 23, to.Hour())
	assert.Equal(t, 59, to.Minute())
}

func TestParsePeriod_VaciosQuedanNil(t *testing.T) {
	from, to, err := reports.ParsePeriod("", "")
	require.NoError(t, err)
	assert.Nil(t, from)
	assert.Nil(t, to)
}

func TestParsePeriod_FechaInvalida(t *testing.T) {
	_, _, err := reports.ParsePeriod("15-08-2026", "")
	assert.Error(t, err)
}

func TestParsePeriod_DesdePosteriorAHasta(t *testing.T) {
	_, _, err := reports.ParsePeriod("2026-08-20", "2026-08-01")
	assert.Error(t, err)
}
