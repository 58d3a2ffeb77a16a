// Package pdf genera la lista de compras sugerida en PDF: los productos con
// stock bajo agrupados por proveedor, con cantidades y costos estimados para
// salir a reponer.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Lista de Compras + fecha de generación              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROVEEDOR: Nombre + teléfono                                │
//	│  TABLA: Producto | Stock | Mín. | Sugerido | Est.            │
//	│  Subtotal proveedor                                          │
//	│  (se repite por proveedor; sin proveedor va al final)        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL ESTIMADO GENERAL                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"sort"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-kiosco/internal/application/alerts"
	"github.com/tu-usuario/stock-kiosco/internal/domain/repository"
)

var _ alerts.PDFGenerator = (*PurchaseListGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 16, Green: 120, Blue: 80}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 190, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// PurchaseListGenerator implementa alerts.PDFGenerator usando Maroto v2.
type PurchaseListGenerator struct{}

// NewPurchaseListGenerator construye el generador.
func NewPurchaseListGenerator() *PurchaseListGenerator { return &PurchaseListGenerator{} }

// PurchaseList genera el PDF y devuelve sus bytes.
func (g *PurchaseListGenerator) PurchaseList(items []repository.LowStockItem) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Lista de Compras", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(len(items)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	groups, order := groupBySupplier(items)
	grandTotal := decimal.Zero
	for _, supplier := range order {
		group := groups[supplier]
		m.AddRows(supplierRow(supplier, group))
		m.AddRows(tableHeaderRow())
		subtotal := decimal.Zero
		for _, it := range group {
			qty := suggestedQuantity(it)
			estimate := it.PurchasePrice.Mul(decimal.NewFromInt(int64(qty)))
			subtotal = subtotal.Add(estimate)
			m.AddRows(itemRow(it, qty, estimate))
		}
		m.AddRows(subtotalRow(subtotal))
		m.AddRows(line.NewRow(2))
		grandTotal = grandTotal.Add(subtotal)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(grandTotal))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar lista de compras: %w", err)
	}
	return doc.GetBytes(), nil
}

// suggestedQuantity cuánto comprar: lo que falta para el mínimo más un
// colchón de un mínimo entero, nunca menos que el mínimo.
func suggestedQuantity(it repository.LowStockItem) int {
	missing := it.MinStock - it.CurrentStock
	if missing < it.MinStock {
		return it.MinStock
	}
	return missing
}

// groupBySupplier agrupa por nombre de proveedor; los productos sin proveedor
// quedan al final bajo "Sin proveedor".
func groupBySupplier(items []repository.LowStockItem) (map[string][]repository.LowStockItem, []string) {
	const noSupplier = "Sin proveedor"
	groups := make(map[string][]repository.LowStockItem)
	for _, it := range items {
		key := it.SupplierName
		if key == "" {
			key = noSupplier
		}
		groups[key] = append(groups[key], it)
	}
	var order []string
	for k := range groups {
		if k != noSupplier {
			order = append(order, k)
		}
	}
	sort.Strings(order)
	if _, ok := groups[noSupplier]; ok {
		order = append(order, noSupplier)
	}
	return groups, order
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(total int) core.Row {
	fecha := time.Now().Format("02/01/2006")
	return row.New(16).Add(
		col.New(8).Add(
			text.New("LISTA DE COMPRAS SUGERIDA", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d productos por debajo del stock mínimo", total), props.Text{
				Size: 9, Top: 10, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generada: "+fecha, props.Text{
				Size: 9, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func supplierRow(supplier string, group []repository.LowStockItem) core.Row {
	contact := ""
	for _, it := range group {
		if it.SupplierPhone != "" {
			contact = "Tel: " + it.SupplierPhone
			break
		}
	}
	return row.New(10).Add(
		col.New(8).Add(
			text.New(supplier, props.Text{
				Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New(contact, props.Text{Size: 8, Align: align.Right, Top: 4, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("Producto", 5, align.Left),
		h("Stock", 1, align.Center),
		h("Mín.", 1, align.Center),
		h("Sugerido", 2, align.Center),
		h("Est. compra", 3, align.Right),
	)
}

func itemRow(it repository.LowStockItem, qty int, estimate decimal.Decimal) core.Row {
	stockColor := colorGray
	if it.Level == repository.AlertLevelCritical {
		stockColor = colorAlert
	}
	return row.New(6).Add(
		col.New(5).Add(text.New(it.Name, props.Text{Size: 8, Top: 1})),
		col.New(1).Add(text.New(fmt.Sprintf("%d", it.CurrentStock), props.Text{
			Size: 8, Align: align.Center, Top: 1, Color: stockColor,
		})),
		col.New(1).Add(text.New(fmt.Sprintf("%d", it.MinStock), props.Text{
			Size: 8, Align: align.Center, Top: 1,
		})),
		col.New(2).Add(text.New(fmt.Sprintf("%d", qty), props.Text{
			Size: 8, Align: align.Center, Top: 1, Style: fontstyle.Bold,
		})),
		col.New(3).Add(text.New("$"+estimate.StringFixed(2), props.Text{
			Size: 8, Align: align.Right, Top: 1,
		})),
	)
}

func subtotalRow(subtotal decimal.Decimal) core.Row {
	return row.New(6).Add(
		col.New(9).Add(text.New("Subtotal proveedor:", props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1,
		})),
		col.New(3).Add(text.New("$"+subtotal.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1,
		})),
	)
}

func totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(9).Add(text.New("TOTAL ESTIMADO:", props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right,
			Color: colorPrimary, Top: 2,
		})),
		col.New(3).Add(text.New("$"+total.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right,
			Color: colorPrimary, Top: 2,
		})),
	)
}
