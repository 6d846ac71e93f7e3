package repository

import (
	"context"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	// Create inserta el producto; devuelve domain.ErrDuplicate si el ProductID ya existe.
	Create(ctx context.Context, product *entity.Product) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, productID string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// Delete borra el producto y, en cascada, sus movimientos.
	Delete(ctx context.Context, productID string) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Count(ctx context.Context) (int, error)
	// All devuelve todos los productos (para el reporte de saldos).
	All(ctx context.Context) ([]entity.Product, error)
}
