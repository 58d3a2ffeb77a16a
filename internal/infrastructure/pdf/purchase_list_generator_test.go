package pdf

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-kiosco/internal/domain/repository"
)

func TestSuggestedQuantity(t *testing.T) {
	cases := []struct {
		nombre  string
		current int
		min     int
		want    int
	}{
		{"stock en cero compra lo que falta", 0, 6, 6},
		{"faltante chico se redondea al mínimo", 4, 6, 6},
		{"faltante mayor al mínimo se respeta", 0, 6, 6},
		{"mínimo alto con poco stock", 2, 10, 10},
	}
	for _, tc := range cases {
		got := suggestedQuantity(repository.LowStockItem{CurrentStock: tc.current, MinStock: tc.min})
		assert.Equal(t, tc.want, got, tc.nombre)
	}
}

func TestGroupBySupplier_SinProveedorAlFinal(t *testing.T) {
	items := []repository.LowStockItem{
		{Name: "Papas fritas", SupplierName: "Zeta Snacks"},
		{Name: "Encendedor", SupplierName: ""},
		{Name: "Coca Cola 500ml", SupplierName: "Distribuidora Sur"},
		{Name: "Fanta 500ml", SupplierName: "Distribuidora Sur"},
	}

	groups, order := groupBySupplier(items)

	require.Equal(t, []string{"Distribuidora Sur", "Zeta Snacks", "Sin proveedor"}, order,
		"proveedores en orden alfabético y sin proveedor al final")
	assert.Len(t, groups["Distribuidora Sur"], 2)
	assert.Len(t, groups["Sin proveedor"], 1)
}

func TestPurchaseList_GeneraPDF(t *testing.T) {
	gen := NewPurchaseListGenerator()

	out, err := gen.PurchaseList([]repository.LowStockItem{
		{
			Name:          "Coca Cola 500ml",
			CurrentStock:  0,
			MinStock:      6,
			PurchasePrice: decimal.NewFromInt(800),
			SupplierName:  "Distribuidora Sur",
			SupplierPhone: "11-5555-0001",
			Missing:       6,
			Level:         repository.AlertLevelCritical,
		},
		{
			Name:          "Alfajor triple",
			CurrentStock:  3,
			MinStock:      10,
			PurchasePrice: decimal.NewFromInt(450),
			Level:         repository.AlertLevelWarning,
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]), "debe empezar con la firma PDF")
}

func TestPurchaseList_SinItems(t *testing.T) {
	gen := NewPurchaseListGenerator()

	out, err := gen.PurchaseList(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out, "la lista vacía igual genera un documento con encabezado")
}
