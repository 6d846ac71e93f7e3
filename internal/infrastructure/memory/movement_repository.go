package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// MovementRepo implementa repository.MovementRepository en memoria.
type MovementRepo struct {
	st       *state
	readOnly bool
}

var _ repository.MovementRepository = (*MovementRepo)(nil)

// Create asigna el siguiente ID. Producto y ubicaciones deben existir (como las FK en Postgres).
func (r *MovementRepo) Create(_ context.Context, m *entity.Movement) error {
	if r.readOnly {
		return ErrReadOnly
	}
	if err := r.checkRefs(m); err != nil {
		return err
	}
	m.ID = r.st.nextID
	r.st.nextID++
	r.st.movements = append(r.st.movements, copyMovement(*m))
	return nil
}

func (r *MovementRepo) GetByID(_ context.Context, id int64) (*entity.Movement, error) {
	i := r.index(id)
	if i < 0 {
		return nil, nil
	}
	m := copyMovement(r.st.movements[i])
	return &m, nil
}

// Update reemplaza producto, ubicaciones y cantidad; conserva el timestamp guardado.
func (r *MovementRepo) Update(_ context.Context, m *entity.Movement) error {
	if r.readOnly {
		return ErrReadOnly
	}
	i := r.index(m.ID)
	if i < 0 {
		return domain.ErrNotFound
	}
	if err := r.checkRefs(m); err != nil {
		return err
	}
	updated := copyMovement(*m)
	updated.Timestamp = r.st.movements[i].Timestamp
	r.st.movements[i] = updated
	m.Timestamp = updated.Timestamp
	return nil
}

func (r *MovementRepo) Delete(_ context.Context, id int64) error {
	if r.readOnly {
		return ErrReadOnly
	}
	i := r.index(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.st.movements = append(r.st.movements[:i], r.st.movements[i+1:]...)
	return nil
}

// List filtra y ordena por timestamp descendente, luego ID descendente.
func (r *MovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	matched := r.match(f)
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Timestamp.Equal(matched[j].Timestamp) {
			return matched[i].Timestamp.After(matched[j].Timestamp)
		}
		return matched[i].ID > matched[j].ID
	})
	from, to := page(len(matched), f.Limit, f.Offset)
	out := make([]*entity.Movement, 0, to-from)
	for i := from; i < to; i++ {
		m := matched[i]
		out = append(out, &m)
	}
	return out, nil
}

func (r *MovementRepo) Count(_ context.Context, f repository.MovementFilter) (int, error) {
	return len(r.match(f)), nil
}

func (r *MovementRepo) All(_ context.Context) ([]entity.Movement, error) {
	out := make([]entity.Movement, len(r.st.movements))
	for i, m := range r.st.movements {
		out[i] = copyMovement(m)
	}
	return out, nil
}

func (r *MovementRepo) CountByLocation(_ context.Context, locationID string) (int, error) {
	n := 0
	for _, m := range r.st.movements {
		if touches(m, locationID) {
			n++
		}
	}
	return n, nil
}

func (r *MovementRepo) match(f repository.MovementFilter) []entity.Movement {
	out := make([]entity.Movement, 0)
	for _, m := range r.st.movements {
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.LocationID != "" && !touches(m, f.LocationID) {
			continue
		}
		if f.Since != nil && m.Timestamp.Before(*f.Since) {
			continue
		}
		if f.Until != nil && m.Timestamp.After(*f.Until) {
			continue
		}
		out = append(out, copyMovement(m))
	}
	return out
}

func (r *MovementRepo) index(id int64) int {
	for i, m := range r.st.movements {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func (r *MovementRepo) checkRefs(m *entity.Movement) error {
	if _, ok := r.st.products[m.ProductID]; !ok {
		return fmt.Errorf("%w: producto %q inexistente", domain.ErrInvalidInput, m.ProductID)
	}
	for _, ref := range []*string{m.FromLocation, m.ToLocation} {
		if ref == nil || *ref == "" {
			continue
		}
		if _, ok := r.st.locations[*ref]; !ok {
			return fmt.Errorf("%w: ubicación %q inexistente", domain.ErrInvalidInput, *ref)
		}
	}
	return nil
}

func touches(m entity.Movement, locationID string) bool {
	if from, ok := m.Source(); ok && from == locationID {
		return true
	}
	to, ok := m.Destination()
	return ok && to == locationID
}
