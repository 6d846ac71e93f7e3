// Package bootstrap arma las dependencias de la aplicación a partir de la configuración:
// almacenamiento, caché de saldos, generador de PDF y casos de uso.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventory-ledger/internal/application/report"
	"github.com/jhoicas/inventory-ledger/internal/application/seed"
	"github.com/jhoicas/inventory-ledger/internal/application/usecase"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger/internal/infrastructure/cache"
	"github.com/jhoicas/inventory-ledger/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/inventory-ledger/internal/infrastructure/pdf"
	"github.com/jhoicas/inventory-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-ledger/pkg/config"
	"github.com/jhoicas/inventory-ledger/pkg/logger"
)

// Components dependencias listas para usar. Close libera conexiones.
type Components struct {
	Tx        repository.TxRunner
	Cache     repository.BalanceCache
	Products  *usecase.ProductUseCase
	Locations *usecase.LocationUseCase
	Movements *usecase.MovementUseCase
	Report    *report.BalanceReportUseCase
	// Health verifica los backends externos; nil con almacenamiento en memoria.
	Health func(ctx context.Context) error

	closers []func()
}

// Open conecta el almacenamiento configurado (aplicando migraciones si corresponde),
// la caché de saldos y construye los casos de uso.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Components, error) {
	c := &Components{}

	switch cfg.App.Storage {
	case config.StorageMemory:
		c.Tx = memory.NewTxRunner(memory.NewDB())
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		if cfg.DB.MigrateOnStart {
			if err := postgres.Migrate(cfg.DB.ConnectionString(), log.Component("migrate")); err != nil {
				return nil, err
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		c.closers = append(c.closers, pool.Close)
		c.Tx = postgres.NewTxRunner(pool)
		c.Health = pool.Ping
	}

	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.closers = append(c.closers, func() { _ = rdb.Close() })
		c.Cache = cache.NewRedisBalanceCache(rdb, cfg.App.Name, cfg.Report.CacheTTL)
		health := c.Health
		c.Health = func(ctx context.Context) error {
			if health != nil {
				if err := health(ctx); err != nil {
					return err
				}
			}
			return rdb.Ping(ctx).Err()
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de saldos en Redis")
	} else {
		c.Cache = cache.NewMemoryBalanceCache()
	}

	c.Products = usecase.NewProductUseCase(c.Tx, c.Cache, log.Component("products"))
	c.Locations = usecase.NewLocationUseCase(c.Tx, c.Cache, log.Component("locations"))
	c.Movements = usecase.NewMovementUseCase(c.Tx, c.Cache, log.Component("movements"))
	c.Report = report.NewBalanceReportUseCase(
		c.Tx, c.Cache, infrapdf.NewMarotoPDFGenerator(cfg.App.Name), log.Component("report"),
	)
	return c, nil
}

// Seed carga los datos de ejemplo si el catálogo está vacío.
func (c *Components) Seed(ctx context.Context, now time.Time) (bool, error) {
	return seed.Load(ctx, c.Tx, c.Cache, now)
}

// Close cierra las conexiones en orden inverso de apertura.
func (c *Components) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
