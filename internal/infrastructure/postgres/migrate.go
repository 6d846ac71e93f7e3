package postgres

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // registra el esquema pgx5://
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/jhoicas/inventory-ledger/pkg/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate aplica las migraciones embebidas pendientes. Sin cambios no es error.
func Migrate(dsn string, log *logger.Logger) error {
	log.Info().Msg("aplicando migraciones de base de datos")

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("migraciones embebidas: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, migrateURL(dsn))
	if err != nil {
		return fmt.Errorf("iniciar migrate: %w", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Warn().AnErr("source", srcErr).AnErr("database", dbErr).Msg("cerrar migrate")
		}
	}()
	m.Log = &migrateLogger{log: log}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Msg("migraciones: sin cambios")
			return nil
		}
		return fmt.Errorf("migrate up: %w", err)
	}
	version, dirty, _ := m.Version()
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("migraciones aplicadas")
	return nil
}

// migrateURL cambia el esquema postgres:// por pgx5://, que es el que registra el driver pgx/v5.
func migrateURL(dsn string) string {
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(dsn, prefix) {
			return "pgx5://" + strings.TrimPrefix(dsn, prefix)
		}
	}
	return dsn
}

// migrateLogger adapta el logger de la app a migrate.Logger.
type migrateLogger struct {
	log *logger.Logger
}

func (l *migrateLogger) Printf(format string, v ...any) {
	l.log.Debug().Msgf("migrate: "+strings.TrimRight(format, "\n"), v...)
}

func (l *migrateLogger) Verbose() bool { return false }
