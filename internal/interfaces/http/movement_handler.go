package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stock-kiosco/internal/application/dto"
	"github.com/tu-usuario/stock-kiosco/internal/application/ledger"
	"github.com/tu-usuario/stock-kiosco/internal/domain/entity"
	"github.com/tu-usuario/stock-kiosco/internal/domain/repository"
)

// MovementHandler maneja el libro de movimientos (protegido). Todo cambio de
// stock pasa por acá: entrada, salida o ajuste.
type MovementHandler struct {
	uc *ledger.UseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *ledger.UseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// RecordEntry godoc
// @Summary      Registrar entrada de stock
// @Description  Suma unidades al producto. Si viene precio_unitario actualiza el precio de compra.
// @Tags         movimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EntradaRequest  true  "producto_id, cantidad, precio_unitario, proveedor_id, numero_factura, notas"
// @Success      201   {object}  dto.RegistrarMovimientoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movimientos/entrada [post]
func (h *MovementHandler) RecordEntry(c *fiber.Ctx) error {
	var in dto.EntradaRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.RecordEntry(c.Context(), GetUserID(c), ledger.EntryInput{
		ProductID:     in.ProductoID,
		Quantity:      in.Cantidad,
		UnitPrice:     in.PrecioUnitario,
		SupplierID:    in.ProveedorID,
		InvoiceNumber: in.NumeroFactura,
		Notes:         in.Notas,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromMovementResult(out))
}

// RecordExit godoc
// @Summary      Registrar salida de stock (venta)
// @Description  Descuenta unidades. Falla con 409 si no hay stock suficiente.
// @Tags         movimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SalidaRequest  true  "producto_id, cantidad, precio_unitario, notas"
// @Success      201   {object}  dto.RegistrarMovimientoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movimientos/salida [post]
func (h *MovementHandler) RecordExit(c *fiber.Ctx) error {
	var in dto.SalidaRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.RecordExit(c.Context(), GetUserID(c), ledger.ExitInput{
		ProductID: in.ProductoID,
		Quantity:  in.Cantidad,
		UnitPrice: in.PrecioUnitario,
		Notes:     in.Notas,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromMovementResult(out))
}

// RecordAdjustment godoc
// @Summary      Registrar ajuste de inventario
// @Description  Cantidad con signo: negativa descuenta, positiva suma. Motivo obligatorio del conjunto permitido.
// @Tags         movimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AjusteRequest  true  "producto_id, cantidad (con signo), motivo, notas"
// @Success      201   {object}  dto.RegistrarMovimientoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movimientos/ajuste [post]
func (h *MovementHandler) RecordAdjustment(c *fiber.Ctx) error {
	var in dto.AjusteRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.RecordAdjustment(c.Context(), GetUserID(c), ledger.AdjustmentInput{
		ProductID: in.ProductoID,
		Quantity:  in.Cantidad,
		Reason:    in.Motivo,
		Notes:     in.Notas,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromMovementResult(out))
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        tipo_movimiento  query  string  false  "entrada|salida|ajuste"
// @Param        fecha_desde      query  string  false  "YYYY-MM-DD"
// @Param        fecha_hasta      query  string  false  "YYYY-MM-DD"
// @Param        page             query  int     false  "Página"  default(1)
// @Param        limit            query  int     false  "Límite"  default(20)
// @Success      200  {object}  dto.ListaMovimientosResponse
// @Router       /api/movimientos [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var in dto.ListarMovimientosRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	in.DefaultPage()
	filter, err := movementFilter(in)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}
	res, err := h.uc.List(c.Context(), GetUserID(c), filter, in.Limit, in.Offset())
	if err != nil {
		return respondDomainError(c, err)
	}
	movimientos := make([]dto.MovimientoDTO, 0, len(res.Movements))
	for _, it := range res.Movements {
		movimientos = append(movimientos, dto.FromMovementListItem(it))
	}
	return c.JSON(dto.ListaMovimientosResponse{
		Movimientos: movimientos,
		Paginacion:  dto.NewPaginacion(res.Total, in.PageRequest),
	})
}

// History godoc
// @Summary      Historial de movimientos de un producto
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del producto"
// @Param        page   query  int     false  "Página"  default(1)
// @Param        limit  query  int     false  "Límite"  default(20)
// @Success      200  {object}  dto.HistorialProductoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movimientos/producto/{id} [get]
func (h *MovementHandler) History(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	res, err := h.uc.History(c.Context(), GetUserID(c), c.Params("id"), page.Limit, page.Offset())
	if err != nil {
		return respondDomainError(c, err)
	}
	movimientos := make([]dto.MovimientoDTO, 0, len(res.Movements))
	for _, it := range res.Movements {
		movimientos = append(movimientos, dto.FromMovementListItem(it))
	}
	return c.JSON(dto.HistorialProductoResponse{
		Producto: dto.MovimientoProductoDTO{
			ID:          res.Product.ID,
			Nombre:      res.Product.Name,
			StockActual: res.Product.CurrentStock,
		},
		Movimientos: movimientos,
		Paginacion:  dto.NewPaginacion(res.Total, page),
	})
}

// VerifyContinuity godoc
// @Summary      Verificar continuidad del libro de un producto
// @Description  Repasa los asientos en orden y reporta discrepancias de encadenamiento o contra el stock actual.
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movimientos/producto/{id}/verificar [get]
func (h *MovementHandler) VerifyContinuity(c *fiber.Ctx) error {
	discrepancies, err := h.uc.VerifyContinuity(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	detalles := make([]string, 0, len(discrepancies))
	for _, d := range discrepancies {
		detalles = append(detalles, d.Description)
	}
	return c.JSON(fiber.Map{
		"consistente":   len(detalles) == 0,
		"discrepancias": detalles,
	})
}

func movementFilter(in dto.ListarMovimientosRequest) (repository.MovementFilter, error) {
	var f repository.MovementFilter
	switch in.TipoMovimiento {
	case "", entity.MovementTypeEntry, entity.MovementTypeExit, entity.MovementTypeAdjustment:
		f.Type = in.TipoMovimiento
	default:
		return f, fiber.NewError(fiber.StatusBadRequest, "tipo_movimiento inválido")
	}
	loc := time.Now().Location()
	if in.FechaDesde != "" {
		t, err := time.ParseInLocation("2006-01-02", in.FechaDesde, loc)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "fecha_desde inválida")
		}
		f.From = &t
	}
	if in.FechaHasta != "" {
		t, err := time.ParseInLocation("2006-01-02", in.FechaHasta, loc)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "fecha_hasta inválida")
		}
		t = t.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		f.To = &t
	}
	return f, nil
}
