package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/PuntoVenta-api/internal/application/auth"
	"github.com/jhoicas/PuntoVenta-api/internal/application/cashregister"
	"github.com/jhoicas/PuntoVenta-api/internal/application/catalog"
	"github.com/jhoicas/PuntoVenta-api/internal/application/inventory"
	"github.com/jhoicas/PuntoVenta-api/internal/application/sales"
	"github.com/jhoicas/PuntoVenta-api/internal/application/usecase"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	CatalogUC   *catalog.UseCase
	WarehouseUC *usecase.WarehouseUseCase
	InventoryUC *inventory.UseCase
	CreateSale  *sales.CreateSaleUseCase
	CancelSale  *sales.CancelSaleUseCase
	CashUC      *cashregister.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (protegido, solo admin)
	protected.Post("/users", RequireRole(entity.RoleAdmin), authHandler.RegisterUser)

	// Products y recetas (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/:id/components", productHandler.AddComponent)
	products.Get("/:id/components", productHandler.ListComponents)
	products.Delete("/:id/components/:linkId", productHandler.RemoveComponent)

	// Warehouses y stock (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Get("/:id/stock", inventoryHandler.ListStock)

	// Ajustes manuales de inventario (protegido)
	protected.Post("/inventory/adjustments", inventoryHandler.Adjust)

	// Sales (protegido)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.CreateSale, deps.CancelSale)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/:id/cancel", saleHandler.Cancel)

	// Cash register sessions (protegido)
	cashGroup := protected.Group("/cash-sessions")
	cashHandler := NewCashSessionHandler(deps.CashUC)
	cashGroup.Post("/", cashHandler.Open)
	cashGroup.Get("/closures", cashHandler.ListClosures)
	cashGroup.Post("/:id/close", cashHandler.Close)
	cashGroup.Post("/:id/transactions", cashHandler.RegisterTransaction)
	cashGroup.Get("/:id/summary", cashHandler.Summary)
}
