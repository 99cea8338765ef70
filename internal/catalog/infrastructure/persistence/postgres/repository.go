package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/nouressalam/storefront/internal/catalog/domain"
)

type catalogRepository struct{ db *gorm.DB }

func NewCatalogRepository(db *gorm.DB) domain.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).Preload("Variants").Order("id asc").Find(&products).Error
	return products, err
}

func (r *catalogRepository) Get(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).Preload("Variants").Where("id = ?", id).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *catalogRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *catalogRepository) Update(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(product).Error
}

func (r *catalogRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&domain.ProductVariant{}, "product_id = ?", id).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&domain.Product{}, "id = ?", id).Error
}
