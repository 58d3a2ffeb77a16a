package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stock-kiosco/internal/application/dto"
	"github.com/tu-usuario/stock-kiosco/internal/application/reports"
)

// ReportHandler maneja los reportes de ventas y rentabilidad (protegido).
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// TopSellers godoc
// @Summary      Productos más vendidos
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        desde  query  string  false  "YYYY-MM-DD"
// @Param        hasta  query  string  false  "YYYY-MM-DD"
// @Param        limit  query  int     false  "Límite"  default(10)
// @Success      200  {array}  dto.ProductoVendidoDTO
// @Router       /api/reportes/mas-vendidos [get]
func (h *ReportHandler) TopSellers(c *fiber.Ctx) error {
	from, to, err := reports.ParsePeriod(c.Query("desde"), c.Query("hasta"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}
	out, err := h.uc.TopSellers(c.Context(), GetUserID(c), from, to, c.QueryInt("limit", 10))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// LeastSold godoc
// @Summary      Productos menos vendidos
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        desde  query  string  false  "YYYY-MM-DD"
// @Param        hasta  query  string  false  "YYYY-MM-DD"
// @Param        limit  query  int     false  "Límite"  default(10)
// @Success      200  {array}  dto.ProductoMenosVendidoDTO
// @Router       /api/reportes/menos-vendidos [get]
func (h *ReportHandler) LeastSold(c *fiber.Ctx) error {
	from, to, err := reports.ParsePeriod(c.Query("desde"), c.Query("hasta"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}
	out, err := h.uc.LeastSold(c.Context(), GetUserID(c), from, to, c.QueryInt("limit", 10))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Profitability godoc
// @Summary      Rentabilidad por producto
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RentabilidadDTO
// @Router       /api/reportes/rentabilidad [get]
func (h *ReportHandler) Profitability(c *fiber.Ctx) error {
	out, err := h.uc.Profitability(c.Context(), GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// SalesByCategory godoc
// @Summary      Ventas por categoría
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        desde  query  string  false  "YYYY-MM-DD"
// @Param        hasta  query  string  false  "YYYY-MM-DD"
// @Success      200  {array}  dto.VentasCategoriaDTO
// @Router       /api/reportes/ventas-categoria [get]
func (h *ReportHandler) SalesByCategory(c *fiber.Ctx) error {
	from, to, err := reports.ParsePeriod(c.Query("desde"), c.Query("hasta"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}
	out, err := h.uc.SalesByCategory(c.Context(), GetUserID(c), from, to)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// General godoc
// @Summary      Reporte general del negocio
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReporteGeneralResponse
// @Router       /api/reportes/dashboard [get]
func (h *ReportHandler) General(c *fiber.Ctx) error {
	out, err := h.uc.General(c.Context(), GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
