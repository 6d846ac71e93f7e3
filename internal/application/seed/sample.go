package seed

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// Products catálogo de ejemplo.
var Products = []entity.Product{
	{ProductID: "P001", Name: "Laptop", Description: "Dell Latitude 15 pulgadas"},
	{ProductID: "P002", Name: "Mouse", Description: "Mouse óptico inalámbrico"},
	{ProductID: "P003", Name: "Teclado", Description: "Teclado mecánico"},
	{ProductID: "P004", Name: "Monitor", Description: "Monitor LED 24 pulgadas"},
}

// Locations ubicaciones de ejemplo.
var Locations = []entity.Location{
	{LocationID: "WH-A", Name: "Bodega A"},
	{LocationID: "WH-B", Name: "Bodega B"},
	{LocationID: "WH-C", Name: "Bodega C"},
	{LocationID: "STORE", Name: "Tienda"},
}

type sampleMovement struct {
	product, from, to string
	qty               int64
}

var movements = []sampleMovement{
	{"P001", "", "WH-A", 50},
	{"P002", "", "WH-A", 100},
	{"P003", "", "WH-B", 75},
	{"P004", "", "WH-C", 30},
	{"P001", "WH-A", "WH-B", 15},
	{"P002", "WH-A", "STORE", 30},
	{"P003", "WH-B", "WH-A", 20},
	{"P004", "WH-C", "STORE", 10},
	{"P001", "", "WH-C", 25},
	{"P002", "", "WH-B", 50},
	{"P003", "WH-A", "STORE", 15},
	{"P004", "", "WH-A", 20},
	{"P001", "WH-B", "STORE", 10},
	{"P002", "STORE", "WH-C", 5},
	{"P003", "", "WH-C", 40},
	{"P004", "WH-A", "WH-B", 8},
	{"P001", "WH-C", "", 5},
	{"P002", "WH-B", "WH-A", 15},
	{"P003", "WH-C", "WH-B", 10},
	{"P004", "", "STORE", 15},
	{"P001", "STORE", "", 3},
	{"P002", "", "WH-C", 20},
}

// Movements devuelve los movimientos de ejemplo, un segundo entre cada uno y el último en now.
func Movements(now time.Time) []entity.Movement {
	out := make([]entity.Movement, 0, len(movements))
	start := now.UTC().Truncate(time.Second).Add(-time.Duration(len(movements)-1) * time.Second)
	for i, m := range movements {
		out = append(out, entity.Movement{
			Timestamp:    start.Add(time.Duration(i) * time.Second),
			ProductID:    m.product,
			FromLocation: entity.LocationRef(m.from),
			ToLocation:   entity.LocationRef(m.to),
			Qty:          m.qty,
		})
	}
	return out
}

// Load carga los datos de ejemplo en una sola transacción, solo si no hay productos.
// Devuelve false si ya había datos. cache puede ser nil.
func Load(ctx context.Context, tx repository.TxRunner, cache repository.BalanceCache, now time.Time) (bool, error) {
	loaded := false
	err := tx.Run(ctx, func(s repository.Stores) error {
		n, err := s.Products.Count(ctx)
		if err != nil || n > 0 {
			return err
		}
		for i := range Products {
			p := Products[i]
			if err := s.Products.Create(ctx, &p); err != nil {
				return err
			}
		}
		for i := range Locations {
			l := Locations[i]
			if err := s.Locations.Create(ctx, &l); err != nil {
				return err
			}
		}
		for _, m := range Movements(now) {
			m := m
			if err := s.Movements.Create(ctx, &m); err != nil {
				return err
			}
		}
		loaded = true
		return nil
	})
	if err != nil || !loaded {
		return false, err
	}
	if cache != nil {
		if err := cache.Invalidate(ctx); err != nil {
			return true, err
		}
	}
	return true, nil
}
