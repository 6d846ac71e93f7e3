package cache

import (
	"context"
	"sync"

	"github.com/jhoicas/inventory-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// MemoryBalanceCache caché en proceso, para cuando no hay Redis configurado.
type MemoryBalanceCache struct {
	mu         sync.Mutex
	generation int64
	stored     int64
	rows       []inventory.BalanceRow
	ok         bool
}

var _ repository.BalanceCache = (*MemoryBalanceCache)(nil)

// NewMemoryBalanceCache crea una caché vacía.
func NewMemoryBalanceCache() *MemoryBalanceCache {
	return &MemoryBalanceCache{}
}

func (c *MemoryBalanceCache) Get(_ context.Context) ([]inventory.BalanceRow, int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ok || c.stored != c.generation {
		return nil, c.generation, false, nil
	}
	return append([]inventory.BalanceRow(nil), c.rows...), c.generation, true, nil
}

// Put descarta resultados calculados con una generación ya superada.
func (c *MemoryBalanceCache) Put(_ context.Context, generation int64, rows []inventory.BalanceRow) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		return nil
	}
	c.rows = append([]inventory.BalanceRow(nil), rows...)
	c.stored = generation
	c.ok = true
	return nil
}

func (c *MemoryBalanceCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.ok = false
	c.rows = nil
	return nil
}
