package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventory-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger/pkg/config"
)

// NewRedisClient crea el cliente y verifica la conexión con PING.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

// RedisBalanceCache guarda el reporte de saldos bajo una clave que incluye la generación de
// escrituras. Invalidate hace INCR de la generación; las entradas viejas expiran por TTL.
type RedisBalanceCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

var _ repository.BalanceCache = (*RedisBalanceCache)(nil)

// NewRedisBalanceCache construye la caché. prefix separa instancias que comparten Redis.
func NewRedisBalanceCache(rdb *redis.Client, prefix string, ttl time.Duration) *RedisBalanceCache {
	if prefix == "" {
		prefix = "ledger"
	}
	return &RedisBalanceCache{rdb: rdb, ttl: ttl, prefix: prefix}
}

func (c *RedisBalanceCache) generationKey() string {
	return c.prefix + ":balances:generation"
}

func (c *RedisBalanceCache) rowsKey(generation int64) string {
	return c.prefix + ":balances:" + strconv.FormatInt(generation, 10)
}

func (c *RedisBalanceCache) Get(ctx context.Context) ([]inventory.BalanceRow, int64, bool, error) {
	generation, err := c.rdb.Get(ctx, c.generationKey()).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, false, fmt.Errorf("redis: leer generación: %w", err)
	}

	data, err := c.rdb.Get(ctx, c.rowsKey(generation)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, generation, false, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("redis: leer saldos: %w", err)
	}

	var rows []inventory.BalanceRow
	if err := json.Unmarshal(data, &rows); err != nil {
		// Entrada corrupta: se trata como ausente y se reescribe.
		return nil, generation, false, nil
	}
	return rows, generation, true, nil
}

func (c *RedisBalanceCache) Put(ctx context.Context, generation int64, rows []inventory.BalanceRow) error {
	if rows == nil {
		rows = []inventory.BalanceRow{}
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.rowsKey(generation), data, c.ttl).Err()
}

func (c *RedisBalanceCache) Invalidate(ctx context.Context) error {
	return c.rdb.Incr(ctx, c.generationKey()).Err()
}
