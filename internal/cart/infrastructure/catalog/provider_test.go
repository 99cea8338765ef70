package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartapp "github.com/nouressalam/storefront/internal/cart/application"
	catalogapp "github.com/nouressalam/storefront/internal/catalog/application"
	catalogdomain "github.com/nouressalam/storefront/internal/catalog/domain"
)

type stubCatalogRepository struct {
	products map[string]*catalogdomain.Product
}

func (s *stubCatalogRepository) List(_ context.Context) ([]catalogdomain.Product, error) {
	return nil, nil
}

func (s *stubCatalogRepository) Get(_ context.Context, id string) (*catalogdomain.Product, error) {
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, catalogdomain.ErrProductNotFound
}

func (s *stubCatalogRepository) Create(_ context.Context, _ *catalogdomain.Product) error { return nil }
func (s *stubCatalogRepository) Update(_ context.Context, _ *catalogdomain.Product) error { return nil }
func (s *stubCatalogRepository) Delete(_ context.Context, _ string) error                 { return nil }

func newProvider(products ...*catalogdomain.Product) cartapp.ProductProvider {
	repo := &stubCatalogRepository{products: make(map[string]*catalogdomain.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return NewProductProvider(catalogapp.NewCatalogService(repo))
}

func TestProductProvider_Snapshot(t *testing.T) {
	provider := newProvider(&catalogdomain.Product{
		ID:       "prod-1",
		Name:     "Cordless Drill",
		VendorID: "vendor-7",
		Price:    decimal.RequireFromString("89.99"),
	})

	snap, err := provider.Snapshot(context.Background(), "prod-1", "")

	require.NoError(t, err)
	assert.Equal(t, "Cordless Drill", snap.Name)
	assert.Equal(t, "vendor-7", snap.VendorID)
	assert.True(t, snap.UnitPrice.Equal(decimal.RequireFromString("89.99")))
}

func TestProductProvider_Snapshot_VariantPrice(t *testing.T) {
	provider := newProvider(&catalogdomain.Product{
		ID:    "prod-1",
		Name:  "Cordless Drill",
		Price: decimal.RequireFromString("89.99"),
		Variants: []catalogdomain.ProductVariant{
			{ID: "var-hd", ProductID: "prod-1", Price: decimal.RequireFromString("129.99")},
		},
	})

	snap, err := provider.Snapshot(context.Background(), "prod-1", "var-hd")

	require.NoError(t, err)
	assert.Equal(t, "var-hd", snap.VariantID)
	assert.True(t, snap.UnitPrice.Equal(decimal.RequireFromString("129.99")))
}

func TestProductProvider_Snapshot_DefaultVendor(t *testing.T) {
	provider := newProvider(&catalogdomain.Product{
		ID:    "prod-1",
		Name:  "Hammer",
		Price: decimal.RequireFromString("12.50"),
	})

	snap, err := provider.Snapshot(context.Background(), "prod-1", "")

	require.NoError(t, err)
	assert.Equal(t, "vendor-1", snap.VendorID)
}

func TestProductProvider_Snapshot_NotFound(t *testing.T) {
	provider := newProvider()

	_, err := provider.Snapshot(context.Background(), "prod-missing", "")
	assert.ErrorIs(t, err, cartapp.ErrProductNotFound)

	provider = newProvider(&catalogdomain.Product{
		ID:    "prod-1",
		Price: decimal.RequireFromString("12.50"),
	})
	_, err = provider.Snapshot(context.Background(), "prod-1", "var-missing")
	assert.ErrorIs(t, err, cartapp.ErrProductNotFound)
}
