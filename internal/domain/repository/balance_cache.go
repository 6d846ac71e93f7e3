package repository

import (
	"context"

	"github.com/jhoicas/inventory-ledger/internal/domain/inventory"
)

// BalanceCache guarda el último resultado completo del agregador de saldos, asociado a la
// generación de escrituras vigente al leer. Nunca mantiene saldos incrementales.
//
// Protocolo: el lector llama Get antes de abrir su snapshot y, si falla, guarda con Put usando la
// generación devuelta por Get. Toda escritura llama Invalidate, que avanza la generación.
type BalanceCache interface {
	// Get devuelve la generación actual y, si existe, el resultado guardado para ella.
	Get(ctx context.Context) (rows []inventory.BalanceRow, generation int64, ok bool, err error)
	Put(ctx context.Context, generation int64, rows []inventory.BalanceRow) error
	Invalidate(ctx context.Context) error
}
