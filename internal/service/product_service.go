package service

import (
	"context"

	"github.com/opscore/helpdesk-api/internal/domain"
	"github.com/opscore/helpdesk-api/internal/repository"
	apperrors "github.com/opscore/helpdesk-api/pkg/util"
)

// ProductService is pure pass-through persistence; products have no
// validation rules beyond primary-key existence.
type ProductService struct {
	products repository.ProductRepository
}

// NewProductService constructs the service.
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{products: repo}
}

func (s *ProductService) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := s.products.Insert(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Replace overwrites an existing product. The body ID must match the target.
func (s *ProductService) Replace(ctx context.Context, id int64, product *domain.Product) error {
	if product.ID != id {
		return apperrors.NewIDMismatch("body id does not match route id")
	}
	if err := s.products.Update(ctx, product); err != nil {
		return mapStoreError(err, "product")
	}
	return nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return mapStoreError(err, "product")
	}
	return nil
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "product")
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}
