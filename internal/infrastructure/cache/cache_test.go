package cache_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger/internal/infrastructure/cache"
	"github.com/jhoicas/inventory-ledger/pkg/config"
)

var sample = []inventory.BalanceRow{
	{ProductID: "P1", ProductName: "Laptop", LocationID: "A", LocationName: "Bodega A", Balance: 35},
	{ProductID: "P1", ProductName: "Laptop", LocationID: "B", LocationName: "Bodega B", Balance: -4},
}

// exercise recorre el protocolo Get -> Put -> Invalidate común a ambas implementaciones.
func exercise(t *testing.T, c repository.BalanceCache) {
	ctx := context.Background()

	_, gen, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, gen, sample))
	rows, gen2, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, gen, gen2)
	assert.Equal(t, sample, rows)

	require.NoError(t, c.Invalidate(ctx))
	_, gen3, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "una escritura invalida el resultado")
	assert.NotEqual(t, gen, gen3)

	// Un lector que leyó la generación vieja no debe volver a poblar la nueva.
	require.NoError(t, c.Put(ctx, gen, sample))
	_, _, ok, err = c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryBalanceCache(t *testing.T) {
	exercise(t, cache.NewMemoryBalanceCache())
}

func TestMemoryBalanceCache_CopiaDefensiva(t *testing.T) {
	c := cache.NewMemoryBalanceCache()
	ctx := context.Background()
	rows := append([]inventory.BalanceRow(nil), sample...)
	require.NoError(t, c.Put(ctx, 0, rows))

	rows[0].Balance = 999
	got, _, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(35), got[0].Balance)
}

// Requiere un Redis real: REDIS_ADDR=localhost:6379 go test ./...
func TestRedisBalanceCache(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR no definido")
	}
	ctx := context.Background()
	rdb, err := cache.NewRedisClient(ctx, config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	defer rdb.Close()

	prefix := fmt.Sprintf("ledger-test-%d", time.Now().UnixNano())
	defer rdb.Del(ctx, prefix+":balances:generation")

	exercise(t, cache.NewRedisBalanceCache(rdb, prefix, time.Minute))
}
