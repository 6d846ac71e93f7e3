package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación del puerto LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

func (r *LocationRepo) Create(ctx context.Context, location *entity.Location) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO locations (location_id, location_name) VALUES ($1, $2)`,
		location.LocationID, location.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ubicación %q", domain.ErrDuplicate, location.LocationID)
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

func (r *LocationRepo) GetByID(ctx context.Context, locationID string) (*entity.Location, error) {
	var l entity.Location
	err := r.q.QueryRow(ctx,
		`SELECT location_id, location_name FROM locations WHERE location_id = $1`, locationID,
	).Scan(&l.LocationID, &l.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

func (r *LocationRepo) Update(ctx context.Context, location *entity.Location) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE locations SET location_name = $2 WHERE location_id = $1`,
		location.LocationID, location.Name)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la ubicación. Las FK de product_movements son RESTRICT: si hay movimientos
// que la referencian devuelve domain.ErrLocationInUse.
func (r *LocationRepo) Delete(ctx context.Context, locationID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM locations WHERE location_id = $1`, locationID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrLocationInUse
		}
		return fmt.Errorf("delete location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LocationRepo) List(ctx context.Context, limit, offset int) ([]*entity.Location, error) {
	rows, err := r.q.Query(ctx, `
		SELECT location_id, location_name FROM locations
		ORDER BY location_id COLLATE "C"
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.LocationID, &l.Name); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

func (r *LocationRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM locations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count locations: %w", err)
	}
	return n, nil
}

func (r *LocationRepo) All(ctx context.Context) ([]entity.Location, error) {
	rows, err := r.q.Query(ctx, `SELECT location_id, location_name FROM locations ORDER BY location_id COLLATE "C"`)
	if err != nil {
		return nil, fmt.Errorf("all locations: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Location, error) {
		var l entity.Location
		err := row.Scan(&l.LocationID, &l.Name)
		return l, err
	})
}
