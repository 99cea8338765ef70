package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CouponKind 优惠类型
type CouponKind string

const (
	CouponPercentage CouponKind = "percentage"
	CouponFixed      CouponKind = "fixed"
)

// Coupon 优惠码规则
type Coupon struct {
	Code  string
	Kind  CouponKind
	Value decimal.Decimal
}

// 固定优惠码表，不经由本服务编辑
var coupons = map[string]Coupon{
	"WELCOME15":    {Code: "WELCOME15", Kind: CouponPercentage, Value: decimal.RequireFromString("15")},
	"BUILD20":      {Code: "BUILD20", Kind: CouponFixed, Value: decimal.RequireFromString("20")},
	"CONTRACTOR10": {Code: "CONTRACTOR10", Kind: CouponPercentage, Value: decimal.RequireFromString("10")},
}

// ResolveCoupon 按大写归一化查找优惠码
func ResolveCoupon(code string) (Coupon, bool) {
	c, ok := coupons[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// Discount 计算折扣金额，收敛到不超过小计，保留两位小数
func (c Coupon) Discount(subtotal decimal.Decimal) decimal.Decimal {
	var d decimal.Decimal
	if c.Kind == CouponPercentage {
		d = subtotal.Mul(c.Value).Div(decimal.NewFromInt(100))
	} else {
		d = c.Value
	}
	if d.GreaterThan(subtotal) {
		d = subtotal
	}
	return d.Round(2)
}
