package alerts_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-kiosco/internal/application/alerts"
	"github.com/tu-usuario/stock-kiosco/internal/domain/repository"
)

const testUserID = "00000000-0000-0000-0000-0000000000aa"

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeAlertRepo struct {
	lowStock []repository.LowStockItem
	expiring []repository.ExpiringItem
	idle     repository.IdleSummary
	lowSum   repository.LowStockSummary
	expSum   repository.ExpirySummary

	expiringDays int // captura la ventana pedida
	idleDays     int

	failLowSum bool
}

func (r *fakeAlertRepo) LowStock(ctx context.Context, userID string) ([]repository.LowStockItem, error) {
	return r.lowStock, nil
}

func (r *fakeAlertRepo) Expiring(ctx context.Context, userID string, days int) ([]repository.ExpiringItem, error) {
	r.expiringDays = days
	return r.expiring, nil
}

func (r *fakeAlertRepo) Idle(ctx context.Context, userID string, days int) (repository.IdleSummary, error) {
	r.idleDays = days
	return r.idle, nil
}

func (r *fakeAlertRepo) LowStockSummary(ctx context.Context, userID string) (repository.LowStockSummary, error) {
	if r.failLowSum {
		return repository.LowStockSummary{}, errors.New("db caída")
	}
	return r.lowSum, nil
}

func (r *fakeAlertRepo) ExpirySummary(ctx context.Context, userID string, days int) (repository.ExpirySummary, error) {
	return r.expSum, nil
}

type fakePDF struct {
	items []repository.LowStockItem
}

func (p *fakePDF) PurchaseList(items []repository.LowStockItem) ([]byte, error) {
	p.items = items
	return []byte("%PDF-1.7 fake"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestLowStock_MapeaItems(t *testing.T) {
	repo := &fakeAlertRepo{lowStock: []repository.LowStockItem{
		{
			ProductID:     "p1",
			Name:          "Coca Cola 500ml",
			CurrentStock:  0,
			MinStock:      6,
			PurchasePrice: decimal.NewFromInt(800),
			SupplierName:  "Distribuidora Sur",
			SupplierPhone: "11-5555-0001",
			Missing:       6,
			Level:         repository.AlertLevelCritical,
		},
	}}
	uc := alerts.NewUseCase(repo, &fakePDF{})

	out, err := uc.LowStock(context.Background(), testUserID)
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, "Coca Cola 500ml", out[0].Nombre)
	assert.Equal(t, 6, out[0].CantidadFaltante)
	assert.Equal(t, "CRÍTICO", out[0].NivelAlerta)
	assert.Equal(t, "11-5555-0001", out[0].TelefonoProveedor,
		"el teléfono del proveedor viaja en la alerta para reponer rápido")
}

func TestExpiring_SumaValorEnRiesgo(t *testing.T) {
	now := time.Now()
	repo := &fakeAlertRepo{expiring: []repository.ExpiringItem{
		{ProductID: "p1", Name: "Yogur", ExpiryDate: now.AddDate(0, 0, -2), StockValue: decimal.NewFromInt(3000), DaysToExpiry: -2, Level: repository.AlertLevelExpired},
		{ProductID: "p2", Name: "Leche", ExpiryDate: now.AddDate(0, 0, 5), StockValue: decimal.NewFromInt(1500), DaysToExpiry: 5, Level: repository.AlertLevelCritical},
	}}
	uc := alerts.NewUseCase(repo, &fakePDF{})

	resp, err := uc.Expiring(context.Background(), testUserID, 0)
	require.NoError(t, err)

	assert.Equal(t, 7, repo.expiringDays, "sin ventana explícita se usan 7 días")
	assert.Equal(t, 2, resp.Total)
	assert.True(t, decimal.NewFromInt(4500).Equal(resp.ValorTotalRiesgo))
	assert.Equal(t, "VENCIDO", resp.Productos[0].NivelAlerta)
	assert.Equal(t, -2, resp.Productos[0].DiasParaVencer)
}

func TestExpiring_VentanaAcotada(t *testing.T) {
	repo := &fakeAlertRepo{}
	uc := alerts.NewUseCase(repo, &fakePDF{})

	_, err := uc.Expiring(context.Background(), testUserID, 9999)
	require.NoError(t, err)
	assert.Equal(t, 365, repo.expiringDays, "la ventana se recorta a un año")
}

func TestIdle_VentanaPorDefecto(t *testing.T) {
	repo := &fakeAlertRepo{idle: repository.IdleSummary{Total: 3, IdleCapital: decimal.NewFromInt(12500)}}
	uc := alerts.NewUseCase(repo, &fakePDF{})

	resp, err := uc.Idle(context.Background(), testUserID, -1)
	require.NoError(t, err)

	assert.Equal(t, 30, repo.idleDays)
	assert.Equal(t, 3, resp.Total)
	assert.True(t, decimal.NewFromInt(12500).Equal(resp.CapitalInmovilizado))
}

func TestDashboard_CombinaResResumenes(t *testing.T) {
	repo := &fakeAlertRepo{
		lowSum: repository.LowStockSummary{Total: 4, Critical: 1, Urgent: 2},
		expSum: repository.ExpirySummary{Total: 3, Expired: 1, Critical: 1, ValueAtRisk: decimal.NewFromInt(9000)},
		idle:   repository.IdleSummary{Total: 2, IdleCapital: decimal.NewFromInt(5000)},
	}
	uc := alerts.NewUseCase(repo, &fakePDF{})

	resp, err := uc.Dashboard(context.Background(), testUserID)
	require.NoError(t, err)

	assert.Equal(t, 4, resp.StockBajo.Total)
	assert.Equal(t, 1, resp.StockBajo.Criticos)
	assert.Equal(t, 2, resp.StockBajo.Urgentes)
	assert.Equal(t, 3, resp.ProximosVencer.Total)
	assert.Equal(t, 1, resp.ProximosVencer.Vencidos)
	assert.True(t, decimal.NewFromInt(9000).Equal(resp.ProximosVencer.ValorRiesgo))
	assert.Equal(t, 2, resp.SinMovimiento.Total)
	assert.Equal(t, 9, resp.AlertasTotales, "suma de las tres alertas")
}

func TestDashboard_PropagaErrores(t *testing.T) {
	repo := &fakeAlertRepo{failLowSum: true}
	uc := alerts.NewUseCase(repo, &fakePDF{})

	_, err := uc.Dashboard(context.Background(), testUserID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stock bajo")
}

func TestPurchaseListPDF_PasaLosItemsAlGenerador(t *testing.T) {
	repo := &fakeAlertRepo{lowStock: []repository.LowStockItem{
		{ProductID: "p1", Name: "Coca Cola 500ml", MinStock: 6, Missing: 4},
	}}
	pdf := &fakePDF{}
	uc := alerts.NewUseCase(repo, pdf)

	out, err := uc.PurchaseListPDF(context.Background(), testUserID)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	require.Len(t, pdf.items, 1)
	assert.Equal(t, "Coca Cola 500ml", pdf.items[0].Name)
}
