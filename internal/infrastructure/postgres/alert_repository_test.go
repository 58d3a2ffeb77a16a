package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// El criterio de producto dormido mira el último movimiento de cualquier
// tipo, con la fecha de alta como respaldo para productos sin movimientos.
// Se fija el texto de la consulta porque no hay base de datos en los tests
// unitarios.
func TestIdleQuery_UltimoMovimientoConFechaDeAlta(t *testing.T) {
	assert.Contains(t, idleProductsQuery, "MAX(m.fecha_movimiento)")
	assert.Contains(t, idleProductsQuery, "p.created_at")
	assert.NotContains(t, idleProductsQuery, "tipo_movimiento",
		"una compra también cuenta como actividad")
}

func TestIdleQuery_SoloProductosConStock(t *testing.T) {
	assert.True(t, strings.Contains(idleProductsQuery, "p.stock_actual > 0"))
}
