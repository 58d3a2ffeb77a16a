package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-kiosco/internal/application/dto"
	"github.com/tu-usuario/stock-kiosco/internal/domain"
)

// respondWith monta una ruta que siempre responde el error dado y devuelve
// status y body decodificado.
func respondWith(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		return respondDomainError(c, err)
	})
	resp, reqErr := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
	require.NoError(t, reqErr)
	defer resp.Body.Close()

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestRespondDomainError_StockInsuficienteTipado(t *testing.T) {
	status, body := respondWith(t, &domain.InsufficientStockError{Disponible: 3, Solicitado: 10})

	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Contains(t, body.Message, "disponible 3")
	assert.Contains(t, body.Message, "solicitado 10")
}

func TestRespondDomainError_StockNegativoTipado(t *testing.T) {
	status, body := respondWith(t, &domain.NegativeStockError{StockActual: 2, Ajuste: -5})

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "NEGATIVE_STOCK", body.Code)
	assert.Contains(t, body.Message, "-3", "el mensaje muestra el stock resultante")
}

func TestRespondDomainError_MotivoInvalido(t *testing.T) {
	status, body := respondWith(t, &domain.InvalidReasonError{
		Motivo:     "robo",
		Permitidos: []string{"merma", "rotura", "vencimiento", "inventario", "otro"},
	})

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_REASON", body.Code)
	assert.Contains(t, body.Message, "robo")
	assert.Contains(t, body.Message, "merma")
}

// Un error tipado envuelto con fmt.Errorf sigue mapeando por errors.As.
func TestRespondDomainError_ErrorEnvuelto(t *testing.T) {
	wrapped := fmt.Errorf("registrar salida: %w", &domain.InsufficientStockError{Disponible: 1, Solicitado: 2})
	status, body := respondWith(t, wrapped)

	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
}

func TestRespondDomainError_Sentinelas(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrProductNotFound, http.StatusNotFound, "PRODUCT_NOT_FOUND"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrReferenceNotFound, http.StatusBadRequest, "INVALID_REFERENCE"},
		{domain.ErrInvalidQuantity, http.StatusBadRequest, "INVALID_QUANTITY"},
		{domain.ErrDuplicate, http.StatusConflict, "DUPLICATE"},
		{domain.ErrEmailAlreadyExists, http.StatusConflict, "EMAIL_EXISTS"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
	}
	for _, tc := range cases {
		status, body := respondWith(t, tc.err)
		assert.Equal(t, tc.status, status, "error %v", tc.err)
		assert.Equal(t, tc.code, body.Code, "error %v", tc.err)
	}
}

func TestRespondDomainError_DesconocidoEs500(t *testing.T) {
	status, body := respondWith(t, errors.New("se cayó la base"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL", body.Code)
}
