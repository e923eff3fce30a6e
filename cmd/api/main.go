package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/editorial-api/docs"
	"github.com/jhoicas/editorial-api/internal/application/auth"
	"github.com/jhoicas/editorial-api/internal/application/catalog"
	"github.com/jhoicas/editorial-api/internal/application/inventory"
	appprinting "github.com/jhoicas/editorial-api/internal/application/printing"
	"github.com/jhoicas/editorial-api/internal/application/procurement"
	"github.com/jhoicas/editorial-api/internal/domain/printing"
	"github.com/jhoicas/editorial-api/internal/infrastructure/onix"
	"github.com/jhoicas/editorial-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/editorial-api/internal/interfaces/http"
	"github.com/jhoicas/editorial-api/pkg/config"
	"github.com/jhoicas/editorial-api/pkg/logger"
)

// @title Editorial API
// @version 1.0
// @description Inventario, compras y tareas de impresión de una editorial.
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Escribe "Bearer" seguido de un espacio y el token JWT.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	logRepo := postgres.NewStockLogRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	linkRepo := postgres.NewMaterialSupplierRepository(pool)
	bookRepo := postgres.NewBookRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	taskRepo := postgres.NewPrintingTaskRepository(pool)
	purchaseRepo := postgres.NewPurchaseOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Motor de stock: toda variación de existencia pasa por aquí,
	// también las que disparan tareas y recepciones de compra.
	stockUC := inventory.NewStockUseCase(txRunner, materialRepo)
	inventoryQueryUC := inventory.NewQueryUseCase(materialRepo, logRepo)
	alertsUC := inventory.NewAlertsUseCase(materialRepo)

	materialUC := catalog.NewMaterialUseCase(materialRepo)
	supplierUC := catalog.NewSupplierUseCase(supplierRepo)
	linkUC := catalog.NewLinkUseCase(linkRepo, materialRepo, supplierRepo)
	bookUC := catalog.NewBookUseCase(bookRepo, onix.NewReader(), log.Component("onix"))
	employeeUC := catalog.NewEmployeeUseCase(employeeRepo)

	factorTable := printing.NewFixedFactorTable()
	submitTaskUC := appprinting.NewSubmitTaskUseCase(txRunner, factorTable, employeeRepo, bookRepo, log.Component("printing"))
	taskStatusUC := appprinting.NewTaskStatusUseCase(txRunner, stockUC, factorTable, taskRepo, materialRepo, log.Component("printing"))
	taskQueryUC := appprinting.NewTaskQueryUseCase(taskRepo, purchaseRepo, materialRepo, factorTable)

	purchaseUC := procurement.NewPurchaseUseCase(txRunner, stockUC, purchaseRepo, linkRepo, taskRepo, log.Component("procurement"))
	purchaseQueryUC := procurement.NewPurchaseQueryUseCase(purchaseRepo)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Editorial API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		MaterialUC:      materialUC,
		SupplierUC:      supplierUC,
		LinkUC:          linkUC,
		BookUC:          bookUC,
		EmployeeUC:      employeeUC,
		StockUC:         stockUC,
		InventoryQuery:  inventoryQueryUC,
		AlertsUC:        alertsUC,
		SubmitTaskUC:    submitTaskUC,
		TaskStatusUC:    taskStatusUC,
		TaskQueryUC:     taskQueryUC,
		PurchaseUC:      purchaseUC,
		PurchaseQueryUC: purchaseQueryUC,
		JWTSecret:       cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
