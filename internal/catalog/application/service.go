package application

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nouressalam/storefront/internal/catalog/domain"
)

var ErrMissingProductID = errors.New("product id is required")

// CatalogService 商品目录应用服务
type CatalogService struct {
	repo domain.CatalogRepository
}

func NewCatalogService(repo domain.CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.Get(ctx, id)
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product.ID == "" {
		return nil, ErrMissingProductID
	}
	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now
	if product.Status == "" {
		product.Status = domain.StatusActive
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// ProductUpdate 部分更新，nil 字段保持不变
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Inventory   *int
	Status      *domain.ProductStatus
	Category    *string
	IsFeatured  *bool
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, upd ProductUpdate) (*domain.Product, error) {
	product, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		product.Name = *upd.Name
	}
	if upd.Description != nil {
		product.Description = *upd.Description
	}
	if upd.Price != nil {
		product.Price = *upd.Price
	}
	if upd.Inventory != nil {
		product.Inventory = *upd.Inventory
	}
	if upd.Status != nil {
		product.Status = *upd.Status
	}
	if upd.Category != nil {
		product.Category = *upd.Category
	}
	if upd.IsFeatured != nil {
		product.IsFeatured = *upd.IsFeatured
	}
	product.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
