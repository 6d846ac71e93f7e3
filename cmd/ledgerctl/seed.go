package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Carga el catálogo y los movimientos de ejemplo si la base está vacía.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			e.cfg.App.SeedSample = false
			deps, err := e.open(cmd.Context())
			if err != nil {
				return err
			}
			defer deps.Close()

			loaded, err := deps.Seed(cmd.Context(), time.Now())
			if err != nil {
				return fmt.Errorf("cargar datos de ejemplo: %w", err)
			}
			if loaded {
				fmt.Fprintln(cmd.OutOrStdout(), "datos de ejemplo cargados")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "ya existen productos; no se cargó nada")
			}
			return nil
		},
	}
}
