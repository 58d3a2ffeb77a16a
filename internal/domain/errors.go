package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrReferenceNotFound  = errors.New("referencia no encontrada")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidQuantity    = errors.New("cantidad inválida")
	ErrInvalidReason      = errors.New("motivo de ajuste inválido")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrNegativeStock      = errors.New("el ajuste resultaría en stock negativo")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)

// InsufficientStockError indica que una salida pide más unidades de las
// disponibles. Transporta ambos valores para armar el mensaje al usuario.
// errors.Is(err, ErrInsufficientStock) devuelve true.
type InsufficientStockError struct {
	Disponible int
	Solicitado int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %d, solicitado %d", e.Disponible, e.Solicitado)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// NegativeStockError indica que un ajuste dejaría el stock por debajo de cero.
type NegativeStockError struct {
	StockActual int
	Ajuste      int
}

func (e *NegativeStockError) Error() string {
	return fmt.Sprintf("el ajuste resultaría en stock negativo: stock actual %d, ajuste %d", e.StockActual, e.Ajuste)
}

func (e *NegativeStockError) Is(target error) bool { return target == ErrNegativeStock }

// InvalidReasonError indica un motivo de ajuste fuera del conjunto permitido.
type InvalidReasonError struct {
	Motivo     string
	Permitidos []string
}

func (e *InvalidReasonError) Error() string {
	return fmt.Sprintf("motivo %q inválido: debe ser uno de %s", e.Motivo, strings.Join(e.Permitidos, ", "))
}

func (e *InvalidReasonError) Is(target error) bool { return target == ErrInvalidReason }
