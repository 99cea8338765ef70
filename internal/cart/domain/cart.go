package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// 定价常量
var (
	// TaxRate 税率
	TaxRate = decimal.RequireFromString("0.0825")
	// FreeShippingThreshold 免运费门槛
	FreeShippingThreshold = decimal.RequireFromString("75")
	// FlatShippingRate 固定运费
	FlatShippingRate = decimal.RequireFromString("12.99")
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrItemNotFound    = errors.New("cart item not found")
	ErrInvalidCoupon   = errors.New("invalid coupon code")
)

// LineItem 购物车行项目，价格为加入时的快照
type LineItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	VariantID string          `json:"variantId,omitempty"`
	Name      string          `json:"name"`
	VendorID  string          `json:"vendorId,omitempty"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"total"`
}

// recalcTotal 行总价 = round2(quantity × unitPrice)
func (li *LineItem) recalcTotal() {
	li.LineTotal = li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity))).Round(2)
}

// Totals 聚合金额，全部由 items 与 discount 重新推导
type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

// ComputeTotals 定价引擎：纯函数，无副作用。
// 聚合由已取整的行总价重新推导，不做逐行二次取整。
func ComputeTotals(items []LineItem, discount decimal.Decimal) Totals {
	subtotal := decimal.Zero
	itemCount := 0
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal)
		itemCount += item.Quantity
	}
	subtotal = subtotal.Round(2)

	tax := subtotal.Mul(TaxRate).Round(2)

	shipping := decimal.Zero
	if subtotal.IsPositive() && subtotal.LessThan(FreeShippingThreshold) {
		shipping = FlatShippingRate
	}

	total := subtotal.Add(tax).Add(shipping).Sub(discount).Round(2)

	return Totals{
		Subtotal:  subtotal,
		Tax:       tax,
		Shipping:  shipping,
		Total:     total,
		ItemCount: itemCount,
	}
}

// Cart 购物车聚合根，按用户持有一份
type Cart struct {
	UserID     string          `json:"userId"`
	Items      []LineItem      `json:"items"`
	CouponCode string          `json:"couponCode,omitempty"`
	Discount   decimal.Decimal `json:"discount"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	Shipping   decimal.Decimal `json:"shipping"`
	Total      decimal.Decimal `json:"total"`
	ItemCount  int             `json:"itemCount"`
}

// NewCart 创建空购物车
func NewCart(userID string) *Cart {
	c := &Cart{UserID: userID, Items: []LineItem{}}
	c.Recompute()
	return c
}

// IsEmpty 购物车是否为空
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// AddItem 添加行项目。(productID, variantID) 已存在时合并数量，否则以 id 新建。
func (c *Cart) AddItem(id, productID, variantID, name, vendorID string, unitPrice decimal.Decimal, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].VariantID == variantID {
			c.Items[i].Quantity += quantity
			c.Items[i].recalcTotal()
			c.Recompute()
			return nil
		}
	}
	item := LineItem{
		ID:        id,
		ProductID: productID,
		VariantID: variantID,
		Name:      name,
		VendorID:  vendorID,
		UnitPrice: unitPrice,
		Quantity:  quantity,
	}
	item.recalcTotal()
	c.Items = append(c.Items, item)
	c.Recompute()
	return nil
}

// UpdateQuantity 修改行项目数量。数量低于 1 拒绝，删除须显式走 RemoveItem。
func (c *Cart) UpdateQuantity(itemID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items[i].Quantity = quantity
			c.Items[i].recalcTotal()
			c.Recompute()
			return nil
		}
	}
	return ErrItemNotFound
}

// RemoveItem 删除行项目
func (c *Cart) RemoveItem(itemID string) error {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.Recompute()
			return nil
		}
	}
	return ErrItemNotFound
}

// ApplyCoupon 应用优惠码，未知码拒绝且状态不变
func (c *Cart) ApplyCoupon(code string) error {
	coupon, ok := ResolveCoupon(code)
	if !ok {
		return ErrInvalidCoupon
	}
	c.CouponCode = coupon.Code
	c.Recompute()
	return nil
}

// RemoveCoupon 移除优惠码
func (c *Cart) RemoveCoupon() {
	c.CouponCode = ""
	c.Recompute()
}

// Recompute 重新推导折扣与聚合金额。
// 折扣每次都由当前小计重新计算并收敛到 discount <= subtotal，
// 因此清空购物车后折扣归零，优惠码本身保留直至显式移除。
func (c *Cart) Recompute() {
	subtotal := decimal.Zero
	for _, item := range c.Items {
		subtotal = subtotal.Add(item.LineTotal)
	}
	subtotal = subtotal.Round(2)

	discount := decimal.Zero
	if c.CouponCode != "" {
		if coupon, ok := ResolveCoupon(c.CouponCode); ok {
			discount = coupon.Discount(subtotal)
		}
	}
	c.Discount = discount

	totals := ComputeTotals(c.Items, discount)
	c.Subtotal = totals.Subtotal
	c.Tax = totals.Tax
	c.Shipping = totals.Shipping
	c.Total = totals.Total
	c.ItemCount = totals.ItemCount
}
