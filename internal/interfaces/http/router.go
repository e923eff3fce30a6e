package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/editorial-api/internal/application/auth"
	"github.com/jhoicas/editorial-api/internal/application/catalog"
	"github.com/jhoicas/editorial-api/internal/application/inventory"
	"github.com/jhoicas/editorial-api/internal/application/printing"
	"github.com/jhoicas/editorial-api/internal/application/procurement"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	MaterialUC      *catalog.MaterialUseCase
	SupplierUC      *catalog.SupplierUseCase
	LinkUC          *catalog.LinkUseCase
	BookUC          *catalog.BookUseCase
	EmployeeUC      *catalog.EmployeeUseCase
	StockUC         *inventory.StockUseCase
	InventoryQuery  *inventory.QueryUseCase
	AlertsUC        *inventory.AlertsUseCase
	SubmitTaskUC    *printing.SubmitTaskUseCase
	TaskStatusUC    *printing.TaskStatusUseCase
	TaskQueryUC     *printing.TaskQueryUseCase
	PurchaseUC      *procurement.PurchaseUseCase
	PurchaseQueryUC *procurement.PurchaseQueryUseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
// El orden importa: las rutas estáticas (all, overdue, versions) van antes
// que las paramétricas (:id) porque fiber resuelve en orden de registro.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público; el resto exige token
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), RequireRole("admin"), authHandler.Register)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)
	authGroup.Put("/password", AuthMiddleware(deps.JWTSecret), authHandler.ChangePassword)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Materials (protegido)
	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC, deps.StockUC, deps.InventoryQuery)
	linkHandler := NewLinkHandler(deps.LinkUC)
	materials.Post("/", materialHandler.Create)
	materials.Get("/", materialHandler.Page)
	materials.Get("/all", materialHandler.List)
	materials.Get("/:id", materialHandler.Get)
	materials.Put("/:id", materialHandler.Update)
	materials.Get("/:id/logs", materialHandler.Logs)
	materials.Put("/:id/safety-stock", materialHandler.SetSafetyStock)
	materials.Put("/:id/price", materialHandler.SetUnitPrice)
	materials.Get("/:id/links", linkHandler.ListByMaterial)

	// Inventory: variaciones de stock, libro y alertas (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.StockUC, deps.InventoryQuery, deps.AlertsUC)
	invGroup.Post("/changes", inventoryHandler.ApplyChanges)
	invGroup.Post("/change", inventoryHandler.UpdateLevel)
	invGroup.Get("/logs", inventoryHandler.SearchLogs)
	invGroup.Get("/alerts", inventoryHandler.Alerts)
	invGroup.Get("/report", inventoryHandler.Report)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.Page)
	suppliers.Get("/all", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.Get)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Put("/:id/status", supplierHandler.UpdateStatus)

	// Material-supplier links (protegido; eliminar es solo admin)
	links := protected.Group("/links")
	links.Post("/", linkHandler.Create)
	links.Get("/", linkHandler.ListAll)
	links.Put("/:id", linkHandler.Update)
	links.Delete("/:id", RequireRole("admin"), linkHandler.Delete)

	// Books (protegido)
	books := protected.Group("/books")
	bookHandler := NewBookHandler(deps.BookUC)
	books.Post("/", bookHandler.Create)
	books.Get("/", bookHandler.List)
	books.Get("/versions", bookHandler.ListAllVersions)
	books.Post("/import", bookHandler.ImportFeed)
	books.Get("/:id", bookHandler.Get)
	books.Post("/:id/versions", bookHandler.CreateVersion)
	books.Get("/:id/versions", bookHandler.ListVersions)

	// Employees (protegido; eliminar es solo admin)
	employees := protected.Group("/employees")
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Post("/", employeeHandler.Create)
	employees.Get("/", employeeHandler.Page)
	employees.Get("/:id", employeeHandler.Get)
	employees.Put("/:id", employeeHandler.Update)
	employees.Put("/:id/status", employeeHandler.UpdateStatus)
	employees.Delete("/:id", RequireRole("admin"), employeeHandler.Delete)

	// Printing tasks (protegido)
	tasks := protected.Group("/tasks")
	taskHandler := NewTaskHandler(deps.SubmitTaskUC, deps.TaskStatusUC, deps.TaskQueryUC, deps.PurchaseQueryUC)
	tasks.Post("/", taskHandler.Submit)
	tasks.Get("/", taskHandler.Page)
	tasks.Get("/overdue", taskHandler.Overdue)
	tasks.Get("/:id", taskHandler.Get)
	tasks.Get("/:id/requirements", taskHandler.Requirements)
	tasks.Get("/:id/purchases", taskHandler.Purchases)
	tasks.Put("/:id/status", taskHandler.UpdateStatus)
	tasks.Post("/:id/complete", taskHandler.Complete)

	// Purchase orders (protegido)
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC, deps.PurchaseQueryUC)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.Page)
	purchases.Get("/:id", purchaseHandler.Get)
	purchases.Put("/:id/status", purchaseHandler.UpdateStatus)
	purchases.Post("/:id/receive", purchaseHandler.Receive)
}
