package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger/pkg/logger"
)

// LocationUseCase casos de uso CRUD para ubicaciones.
type LocationUseCase struct {
	w writer
}

// NewLocationUseCase construye el caso de uso. cache puede ser nil.
func NewLocationUseCase(tx repository.TxRunner, cache repository.BalanceCache, log *logger.Logger) *LocationUseCase {
	return &LocationUseCase{w: newWriter(tx, cache, log)}
}

// Create crea una ubicación. Devuelve domain.ErrDuplicate si el LocationID ya existe.
func (uc *LocationUseCase) Create(ctx context.Context, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	location := &entity.Location{
		LocationID: strings.TrimSpace(in.LocationID),
		Name:       strings.TrimSpace(in.Name),
	}
	var errs fieldErrors
	errs.length("location_id", location.LocationID, maxIDLen)
	errs.length("location_name", location.Name, maxNameLen)
	if err := errs.err(); err != nil {
		return nil, err
	}

	err := uc.w.run(ctx, func(s repository.Stores) error {
		existing, err := s.Locations.GetByID(ctx, location.LocationID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: ubicación %q", domain.ErrDuplicate, location.LocationID)
		}
		return s.Locations.Create(ctx, location)
	})
	if err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// GetByID obtiene una ubicación por ID.
func (uc *LocationUseCase) GetByID(ctx context.Context, locationID string) (*dto.LocationResponse, error) {
	var location *entity.Location
	err := uc.w.read(ctx, func(s repository.Stores) error {
		var err error
		location, err = s.Locations.GetByID(ctx, locationID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, notFound("ubicación", locationID)
	}
	return toLocationResponse(location), nil
}

// Update renombra la ubicación.
func (uc *LocationUseCase) Update(ctx context.Context, locationID string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	var errs fieldErrors
	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		in.Name = &trimmed
		errs.length("location_name", trimmed, maxNameLen)
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	var location *entity.Location
	err := uc.w.run(ctx, func(s repository.Stores) error {
		var err error
		location, err = s.Locations.GetByID(ctx, locationID)
		if err != nil {
			return err
		}
		if location == nil {
			return notFound("ubicación", locationID)
		}
		if in.Name != nil {
			location.Name = *in.Name
		}
		return s.Locations.Update(ctx, location)
	})
	if err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// Delete elimina la ubicación. Si algún movimiento la referencia devuelve domain.ErrLocationInUse
// y no cambia nada.
func (uc *LocationUseCase) Delete(ctx context.Context, locationID string) error {
	return uc.w.run(ctx, func(s repository.Stores) error {
		location, err := s.Locations.GetByID(ctx, locationID)
		if err != nil {
			return err
		}
		if location == nil {
			return notFound("ubicación", locationID)
		}
		n, err := s.Movements.CountByLocation(ctx, locationID)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w (%d movimientos)", domain.ErrLocationInUse, n)
		}
		return s.Locations.Delete(ctx, locationID)
	})
}

// List lista ubicaciones con paginación, ordenadas por LocationID.
func (uc *LocationUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.LocationListResponse, error) {
	page.DefaultPage()
	var (
		list  []*entity.Location
		total int
	)
	err := uc.w.read(ctx, func(s repository.Stores) error {
		var err error
		if list, err = s.Locations.List(ctx, page.Limit, page.Offset); err != nil {
			return err
		}
		total, err = s.Locations.Count(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return &dto.LocationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Movements lista los movimientos que entran o salen de la ubicación, más recientes primero.
func (uc *LocationUseCase) Movements(ctx context.Context, locationID string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	filter := repository.MovementFilter{LocationID: locationID, Limit: page.Limit, Offset: page.Offset}
	var out *dto.MovementListResponse
	err := uc.w.read(ctx, func(s repository.Stores) error {
		location, err := s.Locations.GetByID(ctx, locationID)
		if err != nil {
			return err
		}
		if location == nil {
			return notFound("ubicación", locationID)
		}
		out, err = listMovements(ctx, s, filter)
		return err
	})
	return out, err
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	if l == nil {
		return nil
	}
	return &dto.LocationResponse{LocationID: l.LocationID, Name: l.Name}
}
