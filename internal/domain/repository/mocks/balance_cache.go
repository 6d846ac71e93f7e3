package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/inventory-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.BalanceCache = (*MockBalanceCache)(nil)

type MockBalanceCache struct {
	mock.Mock
}

func (m *MockBalanceCache) Get(ctx context.Context) ([]inventory.BalanceRow, int64, bool, error) {
	args := m.Called(ctx)
	var rows []inventory.BalanceRow
	if r := args.Get(0); r != nil {
		rows = r.([]inventory.BalanceRow)
	}
	return rows, args.Get(1).(int64), args.Bool(2), args.Error(3)
}

func (m *MockBalanceCache) Put(ctx context.Context, generation int64, rows []inventory.BalanceRow) error {
	args := m.Called(ctx, generation, rows)
	return args.Error(0)
}

func (m *MockBalanceCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
