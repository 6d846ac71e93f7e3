package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// ErrReadOnly se devuelve al intentar escribir dentro de RunReadOnly.
var ErrReadOnly = errors.New("memory: transacción de solo lectura")

// DB almacenamiento en memoria. Una sola transacción de escritura a la vez.
type DB struct {
	mu   sync.RWMutex
	data state
}

type state struct {
	products  map[string]entity.Product
	locations map[string]entity.Location
	movements []entity.Movement // orden de inserción
	nextID    int64
}

// NewDB crea un almacenamiento vacío.
func NewDB() *DB {
	return &DB{data: state{
		products:  make(map[string]entity.Product),
		locations: make(map[string]entity.Location),
		nextID:    1,
	}}
}

func (s *state) clone() state {
	out := state{
		products:  make(map[string]entity.Product, len(s.products)),
		locations: make(map[string]entity.Location, len(s.locations)),
		movements: make([]entity.Movement, len(s.movements)),
		nextID:    s.nextID,
	}
	for k, v := range s.products {
		out.products[k] = v
	}
	for k, v := range s.locations {
		out.locations[k] = v
	}
	for i, m := range s.movements {
		out.movements[i] = copyMovement(m)
	}
	return out
}

func copyMovement(m entity.Movement) entity.Movement {
	m.FromLocation = copyRef(m.FromLocation)
	m.ToLocation = copyRef(m.ToLocation)
	return m
}

func copyRef(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// TxRunner implementa repository.TxRunner sobre DB: cada Run trabaja sobre el estado vivo y lo
// restaura desde una copia si fn devuelve error o hace panic.
type TxRunner struct {
	db *DB
}

var _ repository.TxRunner = (*TxRunner)(nil)

// NewTxRunner construye el runner.
func NewTxRunner(db *DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run ejecuta fn en exclusión mutua; rollback ante error o panic.
func (r *TxRunner) Run(ctx context.Context, fn func(s repository.Stores) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	snapshot := r.db.data.clone()
	defer func() {
		if p := recover(); p != nil {
			r.db.data = snapshot
			panic(p)
		}
		if err != nil {
			r.db.data = snapshot
		}
	}()
	return fn(stores(&r.db.data, false))
}

// RunReadOnly ejecuta fn sobre una copia del estado; las escrituras devuelven ErrReadOnly.
func (r *TxRunner) RunReadOnly(ctx context.Context, fn func(s repository.Stores) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.RLock()
	view := r.db.data.clone()
	r.db.mu.RUnlock()
	return fn(stores(&view, true))
}

func stores(st *state, readOnly bool) repository.Stores {
	return repository.Stores{
		Products:  &ProductRepo{st: st, readOnly: readOnly},
		Locations: &LocationRepo{st: st, readOnly: readOnly},
		Movements: &MovementRepo{st: st, readOnly: readOnly},
	}
}

// page aplica limit/offset sobre n elementos; limit <= 0 = sin límite.
func page(n, limit, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	end := n
	if limit > 0 && offset+limit < n {
		end = offset + limit
	}
	return offset, end
}
