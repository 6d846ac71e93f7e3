package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// MovementFilter criterios de listado. LocationID coincide con origen o destino.
// Limit <= 0 significa sin límite.
type MovementFilter struct {
	ProductID  string
	LocationID string
	Since      *time.Time
	Until      *time.Time
	Limit      int
	Offset     int
}

// MovementRepository define el puerto de persistencia para movimientos.
type MovementRepository interface {
	// Create asigna ID secuencial al movimiento.
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id int64) (*entity.Movement, error)
	// Update reemplaza producto, ubicaciones y cantidad; el timestamp no cambia.
	Update(ctx context.Context, movement *entity.Movement) error
	Delete(ctx context.Context, id int64) error
	// List ordena por timestamp descendente (más recientes primero) y luego por ID descendente.
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
	Count(ctx context.Context, filter MovementFilter) (int, error)
	// All devuelve el historial completo en orden de inserción.
	All(ctx context.Context) ([]entity.Movement, error)
	// CountByLocation cuenta movimientos con la ubicación como origen o destino.
	CountByLocation(ctx context.Context, locationID string) (int, error)
}
