package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventory-ledger/internal/bootstrap"
	"github.com/jhoicas/inventory-ledger/pkg/config"
	"github.com/jhoicas/inventory-ledger/pkg/logger"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Administración del libro de movimientos de inventario",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newMigrateCmd(), newSeedCmd(), newReportCmd())
	return rootCmd
}

// env contexto común de los subcomandos.
type env struct {
	cfg *config.Config
	log *logger.Logger
}

// loadEnv lee la configuración; los logs van a stderr para no mezclarse con la salida del reporte.
func loadEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		Out:   cmd.ErrOrStderr(),
	})
	return &env{cfg: cfg, log: log}, nil
}

// open conecta las dependencias y carga los datos de ejemplo si SEED_SAMPLE_DATA está activo.
func (e *env) open(ctx context.Context) (*bootstrap.Components, error) {
	deps, err := bootstrap.Open(ctx, e.cfg, e.log)
	if err != nil {
		return nil, err
	}
	if e.cfg.App.SeedSample {
		if _, err := deps.Seed(ctx, time.Now()); err != nil {
			deps.Close()
			return nil, err
		}
	}
	return deps, nil
}
