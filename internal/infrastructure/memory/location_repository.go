package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// LocationRepo implementa repository.LocationRepository en memoria.
type LocationRepo struct {
	st       *state
	readOnly bool
}

var _ repository.LocationRepository = (*LocationRepo)(nil)

func (r *LocationRepo) Create(_ context.Context, l *entity.Location) error {
	if r.readOnly {
		return ErrReadOnly
	}
	if _, ok := r.st.locations[l.LocationID]; ok {
		return fmt.Errorf("%w: ubicación %q", domain.ErrDuplicate, l.LocationID)
	}
	r.st.locations[l.LocationID] = *l
	return nil
}

func (r *LocationRepo) GetByID(_ context.Context, locationID string) (*entity.Location, error) {
	l, ok := r.st.locations[locationID]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *LocationRepo) Update(_ context.Context, l *entity.Location) error {
	if r.readOnly {
		return ErrReadOnly
	}
	if _, ok := r.st.locations[l.LocationID]; !ok {
		return domain.ErrNotFound
	}
	r.st.locations[l.LocationID] = *l
	return nil
}

// Delete falla con domain.ErrLocationInUse si algún movimiento la referencia.
func (r *LocationRepo) Delete(_ context.Context, locationID string) error {
	if r.readOnly {
		return ErrReadOnly
	}
	if _, ok := r.st.locations[locationID]; !ok {
		return domain.ErrNotFound
	}
	for _, m := range r.st.movements {
		if touches(m, locationID) {
			return domain.ErrLocationInUse
		}
	}
	delete(r.st.locations, locationID)
	return nil
}

func (r *LocationRepo) List(_ context.Context, limit, offset int) ([]*entity.Location, error) {
	all := r.sorted()
	from, to := page(len(all), limit, offset)
	out := make([]*entity.Location, 0, to-from)
	for i := from; i < to; i++ {
		l := all[i]
		out = append(out, &l)
	}
	return out, nil
}

func (r *LocationRepo) Count(_ context.Context) (int, error) {
	return len(r.st.locations), nil
}

func (r *LocationRepo) All(_ context.Context) ([]entity.Location, error) {
	return r.sorted(), nil
}

func (r *LocationRepo) sorted() []entity.Location {
	out := make([]entity.Location, 0, len(r.st.locations))
	for _, l := range r.st.locations {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LocationID < out[j].LocationID })
	return out
}
