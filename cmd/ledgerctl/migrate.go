package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventory-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-ledger/pkg/config"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones pendientes en PostgreSQL.",
		Long:  `Usa DATABASE_URL o las variables DB_*. Sin migraciones pendientes no hace nada.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			if e.cfg.App.Storage != config.StoragePostgres {
				return errors.New("migrate requiere STORAGE_DRIVER=postgres")
			}
			return postgres.Migrate(e.cfg.DB.ConnectionString(), e.log.Component("migrate"))
		},
	}
}
