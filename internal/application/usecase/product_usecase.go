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

// ProductUseCase casos de uso CRUD para productos.
type ProductUseCase struct {
	w writer
}

// NewProductUseCase construye el caso de uso. cache puede ser nil.
func NewProductUseCase(tx repository.TxRunner, cache repository.BalanceCache, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{w: newWriter(tx, cache, log)}
}

// Create crea un producto. Devuelve domain.ErrDuplicate si el ProductID ya existe.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	product := &entity.Product{
		ProductID:   strings.TrimSpace(in.ProductID),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
	}
	var errs fieldErrors
	errs.length("product_id", product.ProductID, maxIDLen)
	errs.length("product_name", product.Name, maxNameLen)
	if err := errs.err(); err != nil {
		return nil, err
	}

	err := uc.w.run(ctx, func(s repository.Stores) error {
		existing, err := s.Products.GetByID(ctx, product.ProductID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: producto %q", domain.ErrDuplicate, product.ProductID)
		}
		return s.Products.Create(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, productID string) (*dto.ProductResponse, error) {
	var product *entity.Product
	err := uc.w.read(ctx, func(s repository.Stores) error {
		var err error
		product, err = s.Products.GetByID(ctx, productID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, notFound("producto", productID)
	}
	return toProductResponse(product), nil
}

// Update actualiza nombre y/o descripción. El ProductID no cambia.
func (uc *ProductUseCase) Update(ctx context.Context, productID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var errs fieldErrors
	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		in.Name = &trimmed
		errs.length("product_name", trimmed, maxNameLen)
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	var product *entity.Product
	err := uc.w.run(ctx, func(s repository.Stores) error {
		var err error
		product, err = s.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return notFound("producto", productID)
		}
		if in.Name != nil {
			product.Name = *in.Name
		}
		if in.Description != nil {
			product.Description = *in.Description
		}
		return s.Products.Update(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina el producto junto con todos sus movimientos.
func (uc *ProductUseCase) Delete(ctx context.Context, productID string) error {
	return uc.w.run(ctx, func(s repository.Stores) error {
		product, err := s.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return notFound("producto", productID)
		}
		return s.Products.Delete(ctx, productID)
	})
}

// List lista productos con paginación, ordenados por ProductID.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	var (
		list  []*entity.Product
		total int
	)
	err := uc.w.read(ctx, func(s repository.Stores) error {
		var err error
		if list, err = s.Products.List(ctx, page.Limit, page.Offset); err != nil {
			return err
		}
		total, err = s.Products.Count(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Movements lista los movimientos del producto, más recientes primero.
func (uc *ProductUseCase) Movements(ctx context.Context, productID string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	filter := repository.MovementFilter{ProductID: productID, Limit: page.Limit, Offset: page.Offset}
	var out *dto.MovementListResponse
	err := uc.w.read(ctx, func(s repository.Stores) error {
		product, err := s.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return notFound("producto", productID)
		}
		out, err = listMovements(ctx, s, filter)
		return err
	})
	return out, err
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ProductID:   p.ProductID,
		Name:        p.Name,
		Description: p.Description,
	}
}
