package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var base = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func seeded(t *testing.T) *memory.TxRunner {
	t.Helper()
	tx := memory.NewTxRunner(memory.NewDB())
	err := tx.Run(context.Background(), func(s repository.Stores) error {
		ctx := context.Background()
		require.NoError(t, s.Products.Create(ctx, &entity.Product{ProductID: "P1", Name: "Laptop"}))
		require.NoError(t, s.Products.Create(ctx, &entity.Product{ProductID: "P2", Name: "Mouse"}))
		require.NoError(t, s.Locations.Create(ctx, &entity.Location{LocationID: "A", Name: "Bodega A"}))
		require.NoError(t, s.Locations.Create(ctx, &entity.Location{LocationID: "B", Name: "Bodega B"}))
		require.NoError(t, s.Locations.Create(ctx, &entity.Location{LocationID: "C", Name: "Bodega C"}))
		for i, m := range []entity.Movement{
			{ProductID: "P1", ToLocation: entity.LocationRef("A"), Qty: 50},
			{ProductID: "P2", ToLocation: entity.LocationRef("B"), Qty: 10},
			{ProductID: "P1", FromLocation: entity.LocationRef("A"), ToLocation: entity.LocationRef("B"), Qty: 15},
		} {
			m.Timestamp = base.Add(time.Duration(i) * time.Minute)
			require.NoError(t, s.Movements.Create(ctx, &m))
		}
		return nil
	})
	require.NoError(t, err)
	return tx
}

func read(t *testing.T, tx *memory.TxRunner, fn func(ctx context.Context, s repository.Stores)) {
	t.Helper()
	require.NoError(t, tx.RunReadOnly(context.Background(), func(s repository.Stores) error {
		fn(context.Background(), s)
		return nil
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Transacciones
// ──────────────────────────────────────────────────────────────────────────────

func TestRun_RollbackAnteError(t *testing.T) {
	tx := seeded(t)
	boom := errors.New("boom")

	err := tx.Run(context.Background(), func(s repository.Stores) error {
		require.NoError(t, s.Products.Create(context.Background(), &entity.Product{ProductID: "P9", Name: "Tmp"}))
		require.NoError(t, s.Movements.Delete(context.Background(), 1))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	read(t, tx, func(ctx context.Context, s repository.Stores) {
		p, err := s.Products.GetByID(ctx, "P9")
		require.NoError(t, err)
		assert.Nil(t, p)
		m, err := s.Movements.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.NotNil(t, m, "el borrado se revierte")
	})
}

func TestRun_RollbackAntePanic(t *testing.T) {
	tx := seeded(t)

	assert.Panics(t, func() {
		_ = tx.Run(context.Background(), func(s repository.Stores) error {
			_ = s.Products.Delete(context.Background(), "P1")
			panic("fallo inesperado")
		})
	})

	read(t, tx, func(ctx context.Context, s repository.Stores) {
		p, _ := s.Products.GetByID(ctx, "P1")
		assert.NotNil(t, p)
		n, _ := s.Movements.Count(ctx, repository.MovementFilter{})
		assert.Equal(t, 3, n)
	})
}

func TestRunReadOnly_RechazaEscrituras(t *testing.T) {
	tx := seeded(t)
	err := tx.RunReadOnly(context.Background(), func(s repository.Stores) error {
		return s.Products.Create(context.Background(), &entity.Product{ProductID: "P3", Name: "X"})
	})
	assert.ErrorIs(t, err, memory.ErrReadOnly)
}

func TestRun_ContextoCancelado(t *testing.T) {
	tx := seeded(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := tx.Run(ctx, func(repository.Stores) error { called = true; return nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios
// ──────────────────────────────────────────────────────────────────────────────

func TestProductDelete_CascadaAMovimientos(t *testing.T) {
	tx := seeded(t)
	require.NoError(t, tx.Run(context.Background(), func(s repository.Stores) error {
		return s.Products.Delete(context.Background(), "P1")
	}))

	read(t, tx, func(ctx context.Context, s repository.Stores) {
		all, err := s.Movements.All(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "P2", all[0].ProductID)
	})
}

func TestLocationDelete_Restrict(t *testing.T) {
	tx := seeded(t)
	err := tx.Run(context.Background(), func(s repository.Stores) error {
		return s.Locations.Delete(context.Background(), "A")
	})
	assert.ErrorIs(t, err, domain.ErrLocationInUse)
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, tx.Run(context.Background(), func(s repository.Stores) error {
		return s.Locations.Delete(context.Background(), "C")
	}))
}

func TestCreate_Duplicados(t *testing.T) {
	tx := seeded(t)
	err := tx.Run(context.Background(), func(s repository.Stores) error {
		return s.Products.Create(context.Background(), &entity.Product{ProductID: "P1", Name: "Otro"})
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	err = tx.Run(context.Background(), func(s repository.Stores) error {
		return s.Locations.Create(context.Background(), &entity.Location{LocationID: "A", Name: "Otra"})
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestMovementCreate_IDsSecuencialesYReferencias(t *testing.T) {
	tx := seeded(t)
	var created entity.Movement
	require.NoError(t, tx.Run(context.Background(), func(s repository.Stores) error {
		created = entity.Movement{ProductID: "P2", FromLocation: entity.LocationRef("B"), Qty: 1, Timestamp: base}
		return s.Movements.Create(context.Background(), &created)
	}))
	assert.Equal(t, int64(4), created.ID)

	err := tx.Run(context.Background(), func(s repository.Stores) error {
		return s.Movements.Create(context.Background(), &entity.Movement{ProductID: "P1", ToLocation: entity.LocationRef("ZZ"), Qty: 1})
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMovementUpdate_ConservaTimestamp(t *testing.T) {
	tx := seeded(t)
	require.NoError(t, tx.Run(context.Background(), func(s repository.Stores) error {
		m := &entity.Movement{ID: 1, ProductID: "P2", ToLocation: entity.LocationRef("C"), Qty: 7, Timestamp: base.Add(time.Hour)}
		return s.Movements.Update(context.Background(), m)
	}))

	read(t, tx, func(ctx context.Context, s repository.Stores) {
		m, err := s.Movements.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, base, m.Timestamp)
		assert.Equal(t, "P2", m.ProductID)
		assert.Equal(t, int64(7), m.Qty)
	})
}

func TestMovementList_OrdenYFiltros(t *testing.T) {
	tx := seeded(t)
	read(t, tx, func(ctx context.Context, s repository.Stores) {
		all, err := s.Movements.List(ctx, repository.MovementFilter{})
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []int64{3, 2, 1}, []int64{all[0].ID, all[1].ID, all[2].ID})

		byLocation, err := s.Movements.List(ctx, repository.MovementFilter{LocationID: "A"})
		require.NoError(t, err)
		assert.Len(t, byLocation, 2, "A aparece como destino y como origen")

		since := base.Add(time.Minute)
		recent, err := s.Movements.List(ctx, repository.MovementFilter{ProductID: "P1", Since: &since})
		require.NoError(t, err)
		require.Len(t, recent, 1)
		assert.Equal(t, int64(3), recent[0].ID)

		paged, err := s.Movements.List(ctx, repository.MovementFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, paged, 1)
		assert.Equal(t, int64(2), paged[0].ID)

		n, err := s.Movements.CountByLocation(ctx, "B")
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})
}

func TestProductList_OrdenadoYPaginado(t *testing.T) {
	tx := seeded(t)
	read(t, tx, func(ctx context.Context, s repository.Stores) {
		list, err := s.Products.List(ctx, 1, 1)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "P2", list[0].ProductID)

		list, err = s.Products.List(ctx, 10, 5)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}
