package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stock-kiosco/internal/application/alerts"
)

// AlertHandler maneja las alertas operativas (protegido).
type AlertHandler struct {
	uc *alerts.UseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *alerts.UseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Tags         alertas
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockBajoDTO
// @Router       /api/alertas/stock-bajo [get]
func (h *AlertHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.Context(), GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Expiring godoc
// @Summary      Productos próximos a vencer
// @Tags         alertas
// @Security     Bearer
// @Produce      json
// @Param        dias  query  int  false  "Ventana en días"  default(7)
// @Success      200   {object}  dto.VencimientosResponse
// @Router       /api/alertas/proximos-vencer [get]
func (h *AlertHandler) Expiring(c *fiber.Ctx) error {
	out, err := h.uc.Expiring(c.Context(), GetUserID(c), c.QueryInt("dias", 7))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Idle godoc
// @Summary      Productos sin movimiento reciente
// @Tags         alertas
// @Security     Bearer
// @Produce      json
// @Param        dias  query  int  false  "Ventana en días"  default(30)
// @Success      200   {object}  dto.SinMovimientoResponse
// @Router       /api/alertas/sin-movimiento [get]
func (h *AlertHandler) Idle(c *fiber.Ctx) error {
	out, err := h.uc.Idle(c.Context(), GetUserID(c), c.QueryInt("dias", 30))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      Resumen de alertas
// @Tags         alertas
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardAlertasResponse
// @Router       /api/alertas/dashboard [get]
func (h *AlertHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context(), GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// PurchaseListPDF godoc
// @Summary      Lista de compras sugerida en PDF
// @Description  Productos con stock bajo agrupados por proveedor, con cantidades y costos estimados.
// @Tags         alertas
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/proveedores/lista-compras [get]
func (h *AlertHandler) PurchaseListPDF(c *fiber.Ctx) error {
	pdf, err := h.uc.PurchaseListPDF(c.Context(), GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	filename := fmt.Sprintf("lista-compras-%s.pdf", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
