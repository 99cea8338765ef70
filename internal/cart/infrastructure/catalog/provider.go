// Package catalog 将商品目录服务适配为购物车的商品查询接口
package catalog

import (
	"context"
	"errors"

	cartapp "github.com/nouressalam/storefront/internal/cart/application"
	catalogapp "github.com/nouressalam/storefront/internal/catalog/application"
	catalogdomain "github.com/nouressalam/storefront/internal/catalog/domain"
)

// 商品无归属供应商时的默认标记
const defaultVendorID = "vendor-1"

type productProvider struct {
	catalog *catalogapp.CatalogService
}

// NewProductProvider 创建商品快照提供者
func NewProductProvider(svc *catalogapp.CatalogService) cartapp.ProductProvider {
	return &productProvider{catalog: svc}
}

func (p *productProvider) Snapshot(ctx context.Context, productID, variantID string) (*cartapp.ProductSnapshot, error) {
	product, err := p.catalog.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, catalogdomain.ErrProductNotFound) {
			return nil, cartapp.ErrProductNotFound
		}
		return nil, err
	}

	unitPrice, err := product.UnitPrice(variantID)
	if err != nil {
		return nil, cartapp.ErrProductNotFound
	}

	vendorID := product.VendorID
	if vendorID == "" {
		vendorID = defaultVendorID
	}

	return &cartapp.ProductSnapshot{
		ProductID: product.ID,
		VariantID: variantID,
		Name:      product.Name,
		VendorID:  vendorID,
		UnitPrice: unitPrice,
	}, nil
}
