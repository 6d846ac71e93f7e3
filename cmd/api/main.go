package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/inventory-ledger/docs"
	"github.com/jhoicas/inventory-ledger/internal/bootstrap"
	httpRouter "github.com/jhoicas/inventory-ledger/internal/interfaces/http"
	"github.com/jhoicas/inventory-ledger/pkg/config"
	"github.com/jhoicas/inventory-ledger/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// @title        Inventory Ledger API
// @version      1.0
// @description  Libro de movimientos de inventario y saldos por producto y ubicación.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, log)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("aplicación finalizada con error")
		os.Exit(1)
	}
	log.Info().Msg("aplicación detenida")
}

// run arma las dependencias y sirve HTTP hasta que ctx termine. Las conexiones se cierran
// siempre antes de volver, también cuando falla el arranque.
func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	deps, err := bootstrap.Open(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("inicializar dependencias: %w", err)
	}
	defer deps.Close()

	if cfg.App.SeedSample {
		loaded, err := deps.Seed(ctx, time.Now())
		if err != nil {
			return fmt.Errorf("cargar datos de ejemplo: %w", err)
		}
		log.Info().Bool("loaded", loaded).Msg("datos de ejemplo")
	}

	var limiter *httpRouter.RateLimiter
	if cfg.RateLimit.RPS > 0 {
		limiter = httpRouter.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		go limiter.Cleanup(ctx, time.Minute)
	}

	app := fiber.New(httpRouter.FiberConfig(cfg.App.Name))
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Inventory Ledger API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado; /docs no se registra")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   deps.Products,
		LocationUC:  deps.Locations,
		MovementUC:  deps.Movements,
		ReportUC:    deps.Report,
		Log:         log,
		RateLimiter: limiter,
		AppName:     cfg.App.Name,
		HealthCheck: deps.Health,
	})

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(cfg.HTTP.Addr())
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("servidor HTTP: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("apagado del servidor: %w", err)
	}
	return nil
}
