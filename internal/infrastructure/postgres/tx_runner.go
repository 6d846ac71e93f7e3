package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// El Rollback diferido también cubre un panic dentro de fn.
func (r *TxRunner) Run(ctx context.Context, fn func(s repository.Stores) error) error {
	return r.run(ctx, pgx.TxOptions{}, fn)
}

// RunReadOnly ejecuta fn en una transacción REPEATABLE READ de solo lectura: todas las consultas
// ven el mismo snapshot.
func (r *TxRunner) RunReadOnly(ctx context.Context, fn func(s repository.Stores) error) error {
	return r.run(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, fn)
}

func (r *TxRunner) run(ctx context.Context, opts pgx.TxOptions, fn func(s repository.Stores) error) error {
	tx, err := r.pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(Stores(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Stores arma los repositorios sobre un Querier (pool o tx).
func Stores(q Querier) repository.Stores {
	return repository.Stores{
		Products:  NewProductRepository(q),
		Locations: NewLocationRepository(q),
		Movements: NewMovementRepository(q),
	}
}
