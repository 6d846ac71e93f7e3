package repository

import (
	"context"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para Location (DIP).
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, locationID string) (*entity.Location, error)
	Update(ctx context.Context, location *entity.Location) error
	// Delete devuelve domain.ErrLocationInUse si algún movimiento la referencia.
	Delete(ctx context.Context, locationID string) error
	List(ctx context.Context, limit, offset int) ([]*entity.Location, error)
	Count(ctx context.Context) (int, error)
	All(ctx context.Context) ([]entity.Location, error)
}
