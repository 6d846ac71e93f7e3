package usecase

import (
	"context"

	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger/pkg/logger"
)

// writer agrupa la transacción y la invalidación de la caché de saldos que comparten
// los casos de uso con escrituras.
type writer struct {
	tx    repository.TxRunner
	cache repository.BalanceCache
	log   *logger.Logger
}

func newWriter(tx repository.TxRunner, cache repository.BalanceCache, log *logger.Logger) writer {
	if log == nil {
		log = logger.Nop()
	}
	return writer{tx: tx, cache: cache, log: log}
}

// run ejecuta fn en una transacción de escritura. La caché se invalida antes del commit (si falla,
// no se escribe nada) y otra vez después, para descartar lo que un lector haya guardado con el
// snapshot anterior mientras la transacción seguía abierta.
func (w writer) run(ctx context.Context, fn func(s repository.Stores) error) error {
	err := w.tx.Run(ctx, func(s repository.Stores) error {
		if err := fn(s); err != nil {
			return err
		}
		if w.cache == nil {
			return nil
		}
		return w.cache.Invalidate(ctx)
	})
	if err != nil {
		return err
	}
	if w.cache != nil {
		if err := w.cache.Invalidate(ctx); err != nil {
			w.log.Warn().Err(err).Msg("no se pudo invalidar la caché de saldos tras el commit")
		}
	}
	return nil
}

// read ejecuta fn sobre un snapshot de solo lectura.
func (w writer) read(ctx context.Context, fn func(s repository.Stores) error) error {
	return w.tx.RunReadOnly(ctx, fn)
}
