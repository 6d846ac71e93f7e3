package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // registra el dialecto "postgres"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

var dialect = goqu.Dialect("postgres")

var movementColumns = []any{"movement_id", "created_at", "product_id", "from_location", "to_location", "qty"}

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL.
// Los listados filtrados se arman con goqu (filtros opcionales combinables).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta el movimiento y asigna ID desde la secuencia.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO product_movements (created_at, product_id, from_location, to_location, qty)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING movement_id`
	err := r.q.QueryRow(ctx, query, m.Timestamp, m.ProductID, m.FromLocation, m.ToLocation, m.Qty).Scan(&m.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto o ubicación inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

func (r *MovementRepo) GetByID(ctx context.Context, id int64) (*entity.Movement, error) {
	sql, args, err := dialect.From("product_movements").
		Select(movementColumns...).
		Where(goqu.C("movement_id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build movement query: %w", err)
	}
	m, err := scanMovement(r.q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// Update reemplaza producto, ubicaciones y cantidad; created_at no se toca y se devuelve en m.
func (r *MovementRepo) Update(ctx context.Context, m *entity.Movement) error {
	query := `
		UPDATE product_movements
		SET product_id = $2, from_location = $3, to_location = $4, qty = $5
		WHERE movement_id = $1
		RETURNING created_at`
	err := r.q.QueryRow(ctx, query, m.ID, m.ProductID, m.FromLocation, m.ToLocation, m.Qty).Scan(&m.Timestamp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto o ubicación inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update movement: %w", err)
	}
	m.Timestamp = m.Timestamp.UTC()
	return nil
}

func (r *MovementRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM product_movements WHERE movement_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List más recientes primero; empate por ID descendente.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	ds := filtered(f).
		Select(movementColumns...).
		Order(goqu.C("created_at").Desc(), goqu.C("movement_id").Desc())
	if f.Limit > 0 {
		ds = ds.Limit(uint(f.Limit))
	}
	if f.Offset > 0 {
		ds = ds.Offset(uint(f.Offset))
	}
	sql, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build movement query: %w", err)
	}

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func (r *MovementRepo) Count(ctx context.Context, f repository.MovementFilter) (int, error) {
	sql, args, err := filtered(f).Select(goqu.COUNT("*")).Prepared(true).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build movement count: %w", err)
	}
	var n int
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

// All historial completo en orden de inserción.
func (r *MovementRepo) All(ctx context.Context) ([]entity.Movement, error) {
	sql, args, err := dialect.From("product_movements").
		Select(movementColumns...).
		Order(goqu.C("movement_id").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build movement query: %w", err)
	}
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("all movements: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Movement, error) {
		return scanMovement(row)
	})
}

func (r *MovementRepo) CountByLocation(ctx context.Context, locationID string) (int, error) {
	return r.Count(ctx, repository.MovementFilter{LocationID: locationID})
}

// filtered aplica los filtros opcionales. Since y Until son inclusivos.
func filtered(f repository.MovementFilter) *goqu.SelectDataset {
	ds := dialect.From("product_movements")
	if f.ProductID != "" {
		ds = ds.Where(goqu.C("product_id").Eq(f.ProductID))
	}
	if f.LocationID != "" {
		ds = ds.Where(goqu.Or(
			goqu.C("from_location").Eq(f.LocationID),
			goqu.C("to_location").Eq(f.LocationID),
		))
	}
	if f.Since != nil {
		ds = ds.Where(goqu.C("created_at").Gte(*f.Since))
	}
	if f.Until != nil {
		ds = ds.Where(goqu.C("created_at").Lte(*f.Until))
	}
	return ds
}

func scanMovement(row pgx.Row) (entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(&m.ID, &m.Timestamp, &m.ProductID, &m.FromLocation, &m.ToLocation, &m.Qty)
	m.Timestamp = m.Timestamp.UTC()
	return m, err
}
