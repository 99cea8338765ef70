package application

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nouressalam/storefront/internal/catalog/domain"
)

type mockCatalogRepository struct {
	products map[string]*domain.Product
}

func newMockCatalogRepository() *mockCatalogRepository {
	return &mockCatalogRepository{products: make(map[string]*domain.Product)}
}

func (m *mockCatalogRepository) List(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockCatalogRepository) Get(_ context.Context, id string) (*domain.Product, error) {
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, domain.ErrProductNotFound
}

func (m *mockCatalogRepository) Create(_ context.Context, product *domain.Product) error {
	m.products[product.ID] = product
	return nil
}

func (m *mockCatalogRepository) Update(_ context.Context, product *domain.Product) error {
	m.products[product.ID] = product
	return nil
}

func (m *mockCatalogRepository) Delete(_ context.Context, id string) error {
	if _, ok := m.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func sampleProduct() *domain.Product {
	return &domain.Product{
		ID:       "prod-1",
		Name:     "Cordless Drill",
		SKU:      "DRL-100",
		Price:    decimal.RequireFromString("89.99"),
		Category: "power-tools",
		VendorID: "vendor-1",
	}
}

func TestCatalogService_CreateProduct_Defaults(t *testing.T) {
	repo := newMockCatalogRepository()
	svc := NewCatalogService(repo)

	created, err := svc.CreateProduct(context.Background(), sampleProduct())

	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, created.Status)
	assert.False(t, created.CreatedAt.IsZero())
	assert.False(t, created.UpdatedAt.IsZero())
}

func TestCatalogService_CreateProduct_RequiresID(t *testing.T) {
	svc := NewCatalogService(newMockCatalogRepository())

	p := sampleProduct()
	p.ID = ""
	_, err := svc.CreateProduct(context.Background(), p)

	assert.ErrorIs(t, err, ErrMissingProductID)
}

func TestCatalogService_UpdateProduct_PartialFields(t *testing.T) {
	repo := newMockCatalogRepository()
	svc := NewCatalogService(repo)
	_, err := svc.CreateProduct(context.Background(), sampleProduct())
	require.NoError(t, err)

	newPrice := decimal.RequireFromString("79.99")
	inventory := 42
	updated, err := svc.UpdateProduct(context.Background(), "prod-1", ProductUpdate{
		Price:     &newPrice,
		Inventory: &inventory,
	})

	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(newPrice))
	assert.Equal(t, 42, updated.Inventory)
	assert.Equal(t, "Cordless Drill", updated.Name, "untouched fields keep their value")
}

func TestCatalogService_UpdateProduct_NotFound(t *testing.T) {
	svc := NewCatalogService(newMockCatalogRepository())

	_, err := svc.UpdateProduct(context.Background(), "prod-missing", ProductUpdate{})

	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCatalogService_DeleteProduct(t *testing.T) {
	repo := newMockCatalogRepository()
	svc := NewCatalogService(repo)
	_, err := svc.CreateProduct(context.Background(), sampleProduct())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(context.Background(), "prod-1"))
	_, err = svc.GetProduct(context.Background(), "prod-1")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProduct_UnitPrice_VariantOverrides(t *testing.T) {
	p := sampleProduct()
	p.Variants = []domain.ProductVariant{
		{ID: "var-hd", ProductID: "prod-1", Price: decimal.RequireFromString("129.99")},
	}

	base, err := p.UnitPrice("")
	require.NoError(t, err)
	assert.True(t, base.Equal(decimal.RequireFromString("89.99")))

	variant, err := p.UnitPrice("var-hd")
	require.NoError(t, err)
	assert.True(t, variant.Equal(decimal.RequireFromString("129.99")))

	_, err = p.UnitPrice("var-missing")
	assert.ErrorIs(t, err, domain.ErrVariantNotFound)
}

func TestCatalogService_CreateProduct_KeepsProvidedTimestamps(t *testing.T) {
	repo := newMockCatalogRepository()
	svc := NewCatalogService(repo)

	p := sampleProduct()
	created := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	p.CreatedAt = created

	out, err := svc.CreateProduct(context.Background(), p)

	require.NoError(t, err)
	assert.Equal(t, created, out.CreatedAt)
	assert.True(t, out.UpdatedAt.After(created))
}
