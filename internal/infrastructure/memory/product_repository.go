package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// ProductRepo implementa repository.ProductRepository en memoria.
type ProductRepo struct {
	st       *state
	readOnly bool
}

var _ repository.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	if r.readOnly {
		return ErrReadOnly
	}
	if _, ok := r.st.products[p.ProductID]; ok {
		return fmt.Errorf("%w: producto %q", domain.ErrDuplicate, p.ProductID)
	}
	r.st.products[p.ProductID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, productID string) (*entity.Product, error) {
	p, ok := r.st.products[productID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	if r.readOnly {
		return ErrReadOnly
	}
	if _, ok := r.st.products[p.ProductID]; !ok {
		return domain.ErrNotFound
	}
	r.st.products[p.ProductID] = *p
	return nil
}

// Delete borra el producto y sus movimientos.
func (r *ProductRepo) Delete(_ context.Context, productID string) error {
	if r.readOnly {
		return ErrReadOnly
	}
	if _, ok := r.st.products[productID]; !ok {
		return domain.ErrNotFound
	}
	delete(r.st.products, productID)
	kept := r.st.movements[:0]
	for _, m := range r.st.movements {
		if m.ProductID != productID {
			kept = append(kept, m)
		}
	}
	r.st.movements = kept
	return nil
}

func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	all := r.sorted()
	from, to := page(len(all), limit, offset)
	out := make([]*entity.Product, 0, to-from)
	for i := from; i < to; i++ {
		p := all[i]
		out = append(out, &p)
	}
	return out, nil
}

func (r *ProductRepo) Count(_ context.Context) (int, error) {
	return len(r.st.products), nil
}

func (r *ProductRepo) All(_ context.Context) ([]entity.Product, error) {
	return r.sorted(), nil
}

func (r *ProductRepo) sorted() []entity.Product {
	out := make([]entity.Product, 0, len(r.st.products))
	for _, p := range r.st.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}
