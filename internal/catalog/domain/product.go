package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrVariantNotFound = errors.New("product variant not found")
)

// ProductStatus 商品状态
type ProductStatus string

const (
	StatusActive   ProductStatus = "active"
	StatusDraft    ProductStatus = "draft"
	StatusArchived ProductStatus = "archived"
)

type Product struct {
	ID                string           `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	Name              string           `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Slug              string           `gorm:"column:slug;type:varchar(255);index" json:"slug"`
	Description       string           `gorm:"column:description;type:text" json:"description"`
	SKU               string           `gorm:"column:sku;type:varchar(64);index" json:"sku"`
	Price             decimal.Decimal  `gorm:"column:price;type:decimal(12,2);not null" json:"price"`
	CompareAtPrice    *decimal.Decimal `gorm:"column:compare_at_price;type:decimal(12,2)" json:"compareAtPrice,omitempty"`
	Inventory         int              `gorm:"column:inventory;not null;default:0" json:"inventory"`
	LowStockThreshold int              `gorm:"column:low_stock_threshold;default:5" json:"lowStockThreshold"`
	TrackInventory    bool             `gorm:"column:track_inventory;default:true" json:"trackInventory"`
	Status            ProductStatus    `gorm:"column:status;type:varchar(16);index;default:'active'" json:"status"`
	Category          string           `gorm:"column:category;type:varchar(100);index" json:"categoryId"`
	VendorID          string           `gorm:"column:vendor_id;type:varchar(64);index" json:"vendorId,omitempty"`
	IsFeatured        bool             `gorm:"column:is_featured;default:false" json:"isFeatured"`
	Variants          []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

func (Product) TableName() string { return "products" }

type ProductVariant struct {
	ID        string          `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	ProductID string          `gorm:"column:product_id;type:varchar(64);index;not null" json:"productId"`
	SKU       string          `gorm:"column:sku;type:varchar(64)" json:"sku"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(12,2);not null" json:"price"`
	Inventory int             `gorm:"column:inventory;not null;default:0" json:"inventory"`
	Options   string          `gorm:"column:options;type:text" json:"options,omitempty"`
}

func (ProductVariant) TableName() string { return "product_variants" }

// UnitPrice 返回下单单价，变体价格覆盖商品价格
func (p *Product) UnitPrice(variantID string) (decimal.Decimal, error) {
	if variantID == "" {
		return p.Price, nil
	}
	for _, v := range p.Variants {
		if v.ID == variantID {
			return v.Price, nil
		}
	}
	return decimal.Zero, ErrVariantNotFound
}
