package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-ledger/internal/application/report"
	"github.com/jhoicas/inventory-ledger/internal/application/usecase"
	"github.com/jhoicas/inventory-ledger/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	LocationUC  *usecase.LocationUseCase
	MovementUC  *usecase.MovementUseCase
	ReportUC    *report.BalanceReportUseCase
	Log         *logger.Logger
	RateLimiter *RateLimiter // nil desactiva el límite
	AppName     string
	// HealthCheck opcional (p. ej. ping a la base de datos).
	HealthCheck func(ctx context.Context) error
}

// FiberConfig configuración del servidor. UnescapePath decodifica los IDs de la ruta
// (p. ej. /api/products/P%201 -> "P 1").
func FiberConfig(appName string) fiber.Config {
	return fiber.Config{
		AppName:      appName,
		UnescapePath: true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	}
}

// Router registra middleware y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	app.Use(RequestID())
	app.Use(RequestLogger(log.Component("http")))

	health := NewHealthHandler(deps.AppName, deps.HealthCheck)
	app.Get("/health", health.Check)

	api := app.Group("/api")
	if deps.RateLimiter != nil {
		api.Use(deps.RateLimiter.Handler())
	}

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/movements", productHandler.Movements)

	locations := api.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", locationHandler.Update)
	locations.Delete("/:id", locationHandler.Delete)
	locations.Get("/:id/movements", locationHandler.Movements)

	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Post("/", movementHandler.Create)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Put("/:id", movementHandler.Update)
	movements.Delete("/:id", movementHandler.Delete)

	reportHandler := NewReportHandler(deps.ReportUC)
	api.Get("/report/balances", reportHandler.Balances)
}
