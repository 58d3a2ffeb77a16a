package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stock-kiosco/internal/application/alerts"
	"github.com/tu-usuario/stock-kiosco/internal/application/auth"
	"github.com/tu-usuario/stock-kiosco/internal/application/ledger"
	"github.com/tu-usuario/stock-kiosco/internal/application/reports"
	"github.com/tu-usuario/stock-kiosco/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	ProductUC  *usecase.ProductUseCase
	CategoryUC *usecase.CategoryUseCase
	SupplierUC *usecase.SupplierUseCase
	LedgerUC   *ledger.UseCase
	AlertsUC   *alerts.UseCase
	ReportsUC  *reports.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/registro", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/perfil", authHandler.Me)

	// Productos
	products := protected.Group("/productos")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Categorías
	categories := protected.Group("/categorias")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", categoryHandler.Create)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Proveedores
	suppliers := protected.Group("/proveedores")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	alertHandler := NewAlertHandler(deps.AlertsUC)
	suppliers.Get("/", supplierHandler.List)
	// lista-compras se registra antes de /:id para que no lo capture el parámetro
	suppliers.Get("/lista-compras", alertHandler.PurchaseListPDF)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Movimientos: el único camino para cambiar stock
	movements := protected.Group("/movimientos")
	movementHandler := NewMovementHandler(deps.LedgerUC)
	movements.Get("/", movementHandler.List)
	movements.Post("/entrada", movementHandler.RecordEntry)
	movements.Post("/salida", movementHandler.RecordExit)
	movements.Post("/ajuste", movementHandler.RecordAdjustment)
	movements.Get("/producto/:id", movementHandler.History)
	movements.Get("/producto/:id/verificar", movementHandler.VerifyContinuity)

	// Alertas
	alertsGroup := protected.Group("/alertas")
	alertsGroup.Get("/stock-bajo", alertHandler.LowStock)
	alertsGroup.Get("/proximos-vencer", alertHandler.Expiring)
	alertsGroup.Get("/sin-movimiento", alertHandler.Idle)
	alertsGroup.Get("/dashboard", alertHandler.Dashboard)

	// Reportes
	reportsGroup := protected.Group("/reportes")
	reportHandler := NewReportHandler(deps.ReportsUC)
	reportsGroup.Get("/mas-vendidos", reportHandler.TopSellers)
	reportsGroup.Get("/menos-vendidos", reportHandler.LeastSold)
	reportsGroup.Get("/rentabilidad", reportHandler.Profitability)
	reportsGroup.Get("/ventas-categoria", reportHandler.SalesByCategory)
	reportsGroup.Get("/dashboard", reportHandler.General)
}
