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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `INSERT INTO products (product_id, product_name, description) VALUES ($1, $2, $3)`
	_, err := r.q.Exec(ctx, query, product.ProductID, product.Name, product.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: producto %q", domain.ErrDuplicate, product.ProductID)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, productID string) (*entity.Product, error) {
	query := `SELECT product_id, product_name, description FROM products WHERE product_id = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, productID).Scan(&p.ProductID, &p.Name, &p.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza nombre y descripción.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `UPDATE products SET product_name = $2, description = $3 WHERE product_id = $1`
	tag, err := r.q.Exec(ctx, query, product.ProductID, product.Name, product.Description)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el producto; la FK ON DELETE CASCADE borra sus movimientos.
func (r *ProductRepo) Delete(ctx context.Context, productID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos ordenados por ID.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT product_id, product_name, description FROM products
		ORDER BY product_id COLLATE "C"
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Description); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Count total de productos.
func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// All devuelve todos los productos.
func (r *ProductRepo) All(ctx context.Context) ([]entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT product_id, product_name, description FROM products ORDER BY product_id COLLATE "C"`)
	if err != nil {
		return nil, fmt.Errorf("all products: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Product, error) {
		var p entity.Product
		err := row.Scan(&p.ProductID, &p.Name, &p.Description)
		return p, err
	})
}
