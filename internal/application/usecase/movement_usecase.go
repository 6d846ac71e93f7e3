package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger/pkg/logger"
)

// MovementUseCase registra, edita y consulta movimientos del libro de inventario.
// Los saldos no se tocan aquí: se derivan del historial en el reporte.
type MovementUseCase struct {
	w   writer
	now func() time.Time
}

// NewMovementUseCase construye el caso de uso. cache puede ser nil.
func NewMovementUseCase(tx repository.TxRunner, cache repository.BalanceCache, log *logger.Logger) *MovementUseCase {
	return &MovementUseCase{w: newWriter(tx, cache, log), now: time.Now}
}

// WithClock reemplaza el reloj usado para el timestamp de creación.
func (uc *MovementUseCase) WithClock(now func() time.Time) *MovementUseCase {
	uc.now = now
	return uc
}

// Create registra un movimiento con timestamp UTC actual e ID secuencial.
func (uc *MovementUseCase) Create(ctx context.Context, in dto.MovementRequest) (*dto.MovementResponse, error) {
	movement := normalizeMovement(in)
	if err := validateMovement(movement); err != nil {
		return nil, err
	}
	// Postgres guarda microsegundos; truncar evita diferencias entre lo devuelto y lo leído después.
	movement.Timestamp = uc.now().UTC().Truncate(time.Microsecond)

	err := uc.w.run(ctx, func(s repository.Stores) error {
		if err := checkReferences(ctx, s, movement); err != nil {
			return err
		}
		return s.Movements.Create(ctx, movement)
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(movement), nil
}

// GetByID obtiene un movimiento por ID.
func (uc *MovementUseCase) GetByID(ctx context.Context, id int64) (*dto.MovementResponse, error) {
	var movement *entity.Movement
	err := uc.w.read(ctx, func(s repository.Stores) error {
		var err error
		movement, err = s.Movements.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if movement == nil {
		return nil, notFound("movimiento", formatID(id))
	}
	return toMovementResponse(movement), nil
}

// Update reemplaza producto, ubicaciones y cantidad. El timestamp original se conserva.
func (uc *MovementUseCase) Update(ctx context.Context, id int64, in dto.MovementRequest) (*dto.MovementResponse, error) {
	changes := normalizeMovement(in)
	if err := validateMovement(changes); err != nil {
		return nil, err
	}

	var movement *entity.Movement
	err := uc.w.run(ctx, func(s repository.Stores) error {
		var err error
		movement, err = s.Movements.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if movement == nil {
			return notFound("movimiento", formatID(id))
		}
		if err := checkReferences(ctx, s, changes); err != nil {
			return err
		}
		movement.ProductID = changes.ProductID
		movement.FromLocation = changes.FromLocation
		movement.ToLocation = changes.ToLocation
		movement.Qty = changes.Qty
		return s.Movements.Update(ctx, movement)
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(movement), nil
}

// Delete elimina un movimiento; el siguiente reporte recalcula los saldos sin él.
func (uc *MovementUseCase) Delete(ctx context.Context, id int64) error {
	return uc.w.run(ctx, func(s repository.Stores) error {
		movement, err := s.Movements.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if movement == nil {
			return notFound("movimiento", formatID(id))
		}
		return s.Movements.Delete(ctx, id)
	})
}

// List lista movimientos filtrados, más recientes primero.
func (uc *MovementUseCase) List(ctx context.Context, in dto.MovementFilterRequest) (*dto.MovementListResponse, error) {
	filter, err := parseMovementFilter(in)
	if err != nil {
		return nil, err
	}
	var out *dto.MovementListResponse
	err = uc.w.read(ctx, func(s repository.Stores) error {
		var err error
		out, err = listMovements(ctx, s, filter)
		return err
	})
	return out, err
}

func normalizeMovement(in dto.MovementRequest) *entity.Movement {
	return &entity.Movement{
		ProductID:    strings.TrimSpace(in.ProductID),
		FromLocation: optionalRef(in.FromLocation),
		ToLocation:   optionalRef(in.ToLocation),
		Qty:          in.Qty,
	}
}

func optionalRef(s *string) *string {
	if s == nil {
		return nil
	}
	return entity.LocationRef(strings.TrimSpace(*s))
}

// validateMovement reglas que no requieren consultar el almacenamiento.
func validateMovement(m *entity.Movement) error {
	var errs fieldErrors
	if m.ProductID == "" {
		errs.add("product_id", "es obligatorio")
	}
	if m.Qty < 1 {
		errs.add("qty", "debe ser un entero mayor o igual a 1")
	}
	from, hasFrom := m.Source()
	to, hasTo := m.Destination()
	switch {
	case !hasFrom && !hasTo:
		errs.add("from_location", "debe indicar ubicación de origen o de destino")
	case hasFrom && hasTo && from == to:
		errs.add("to_location", "el destino debe ser distinto del origen")
	}
	return errs.err()
}

// checkReferences verifica que el producto y las ubicaciones existan.
func checkReferences(ctx context.Context, s repository.Stores, m *entity.Movement) error {
	var errs fieldErrors
	product, err := s.Products.GetByID(ctx, m.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		errs.add("product_id", "el producto no existe")
	}
	if from, ok := m.Source(); ok {
		loc, err := s.Locations.GetByID(ctx, from)
		if err != nil {
			return err
		}
		if loc == nil {
			errs.add("from_location", "la ubicación no existe")
		}
	}
	if to, ok := m.Destination(); ok {
		loc, err := s.Locations.GetByID(ctx, to)
		if err != nil {
			return err
		}
		if loc == nil {
			errs.add("to_location", "la ubicación no existe")
		}
	}
	return errs.err()
}

func parseMovementFilter(in dto.MovementFilterRequest) (repository.MovementFilter, error) {
	page := dto.PageRequest{Limit: in.Limit, Offset: in.Offset}
	page.DefaultPage()
	filter := repository.MovementFilter{
		ProductID:  strings.TrimSpace(in.ProductID),
		LocationID: strings.TrimSpace(in.LocationID),
		Limit:      page.Limit,
		Offset:     page.Offset,
	}

	var errs fieldErrors
	if in.Since != "" {
		t, err := time.Parse(time.RFC3339, in.Since)
		if err != nil {
			errs.add("since", "formato RFC3339 esperado")
		} else {
			t = t.UTC()
			filter.Since = &t
		}
	}
	if in.Until != "" {
		t, err := time.Parse(time.RFC3339, in.Until)
		if err != nil {
			errs.add("until", "formato RFC3339 esperado")
		} else {
			t = t.UTC()
			filter.Until = &t
		}
	}
	if filter.Since != nil && filter.Until != nil && filter.Until.Before(*filter.Since) {
		errs.add("until", "debe ser posterior a since")
	}
	return filter, errs.err()
}

func listMovements(ctx context.Context, s repository.Stores, filter repository.MovementFilter) (*dto.MovementListResponse, error) {
	list, err := s.Movements.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.Movements.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset, Total: total},
	}, nil
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		MovementID:   m.ID,
		Timestamp:    m.Timestamp,
		ProductID:    m.ProductID,
		FromLocation: m.FromLocation,
		ToLocation:   m.ToLocation,
		Qty:          m.Qty,
		Type:         string(m.Kind()),
	}
}
