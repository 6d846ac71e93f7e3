package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.TxRunner = (*MockTxRunner)(nil)

// MockTxRunner registra la llamada y, si se configura Stores, ejecuta fn con ellos.
type MockTxRunner struct {
	mock.Mock
	Stores repository.Stores
}

func (m *MockTxRunner) Run(ctx context.Context, fn func(s repository.Stores) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m.Stores)
}

func (m *MockTxRunner) RunReadOnly(ctx context.Context, fn func(s repository.Stores) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m.Stores)
}
