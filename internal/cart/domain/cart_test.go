package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeTotals_EmptyCart(t *testing.T) {
	totals := ComputeTotals(nil, decimal.Zero)

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Shipping.IsZero(), "empty cart must not be charged flat shipping")
	assert.True(t, totals.Total.IsZero())
	assert.Equal(t, 0, totals.ItemCount)
}

func TestComputeTotals_BelowFreeShippingThreshold(t *testing.T) {
	items := []LineItem{
		{UnitPrice: dec("74.99"), Quantity: 1, LineTotal: dec("74.99")},
	}
	totals := ComputeTotals(items, decimal.Zero)

	assert.True(t, totals.Subtotal.Equal(dec("74.99")))
	assert.True(t, totals.Tax.Equal(dec("6.19")))
	assert.True(t, totals.Shipping.Equal(FlatShippingRate))
	assert.True(t, totals.Total.Equal(dec("94.17")))
}

func TestComputeTotals_AtFreeShippingThreshold(t *testing.T) {
	items := []LineItem{
		{UnitPrice: dec("75.00"), Quantity: 1, LineTotal: dec("75.00")},
	}
	totals := ComputeTotals(items, decimal.Zero)

	assert.True(t, totals.Shipping.IsZero(), "subtotal of exactly 75 ships free")
}

func TestComputeTotals_Deterministic(t *testing.T) {
	items := []LineItem{
		{UnitPrice: dec("19.99"), Quantity: 3, LineTotal: dec("59.97")},
		{UnitPrice: dec("4.25"), Quantity: 2, LineTotal: dec("8.50")},
	}
	first := ComputeTotals(items, dec("5"))
	second := ComputeTotals(items, dec("5"))

	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.Tax.Equal(second.Tax))
	assert.True(t, first.Shipping.Equal(second.Shipping))
	assert.True(t, first.Total.Equal(second.Total))
	assert.Equal(t, first.ItemCount, second.ItemCount)
}

func TestCart_AddItem_MergesSameVariant(t *testing.T) {
	cart := NewCart("user-1")

	require.NoError(t, cart.AddItem("ci-1", "prod-1", "var-1", "Cordless Drill", "vendor-1", dec("89.99"), 2))
	require.NoError(t, cart.AddItem("ci-2", "prod-1", "var-1", "Cordless Drill", "vendor-1", dec("89.99"), 3))

	require.Len(t, cart.Items, 1)
	assert.Equal(t, "ci-1", cart.Items[0].ID, "merged line keeps the original id")
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.True(t, cart.Items[0].LineTotal.Equal(dec("449.95")))
	assert.Equal(t, 5, cart.ItemCount)
}

func TestCart_AddItem_DifferentVariantsStaySeparate(t *testing.T) {
	cart := NewCart("user-1")

	require.NoError(t, cart.AddItem("ci-1", "prod-1", "var-red", "Tool Chest", "", dec("120.00"), 1))
	require.NoError(t, cart.AddItem("ci-2", "prod-1", "var-blue", "Tool Chest", "", dec("120.00"), 1))

	assert.Len(t, cart.Items, 2)
}

func TestCart_AddItem_RejectsNonPositiveQuantity(t *testing.T) {
	cart := NewCart("user-1")

	err := cart.AddItem("ci-1", "prod-1", "", "Hammer", "", dec("12.50"), 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.True(t, cart.IsEmpty())
}

func TestCart_UpdateQuantity(t *testing.T) {
	cart := NewCart("user-1")
	require.NoError(t, cart.AddItem("ci-1", "prod-1", "", "Hammer", "", dec("12.50"), 2))

	require.NoError(t, cart.UpdateQuantity("ci-1", 4))
	assert.Equal(t, 4, cart.Items[0].Quantity)
	assert.True(t, cart.Items[0].LineTotal.Equal(dec("50.00")))
}

func TestCart_UpdateQuantity_BelowFloorIsRejected(t *testing.T) {
	cart := NewCart("user-1")
	require.NoError(t, cart.AddItem("ci-1", "prod-1", "", "Hammer", "", dec("12.50"), 2))

	err := cart.UpdateQuantity("ci-1", 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, 2, cart.Items[0].Quantity, "rejected update leaves the line untouched")
}

func TestCart_UpdateQuantity_UnknownItem(t *testing.T) {
	cart := NewCart("user-1")

	err := cart.UpdateQuantity("ci-missing", 2)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestCart_RemoveItem_ResetsTotals(t *testing.T) {
	cart := NewCart("user-1")
	require.NoError(t, cart.AddItem("ci-1", "prod-1", "", "Hammer", "", dec("12.50"), 2))

	require.NoError(t, cart.RemoveItem("ci-1"))

	assert.True(t, cart.IsEmpty())
	assert.True(t, cart.Subtotal.IsZero())
	assert.True(t, cart.Tax.IsZero())
	assert.True(t, cart.Shipping.IsZero())
	assert.True(t, cart.Total.IsZero())
	assert.Equal(t, 0, cart.ItemCount)
}

func TestCart_RemoveItem_Unknown(t *testing.T) {
	cart := NewCart("user-1")

	err := cart.RemoveItem("ci-missing")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestCart_ApplyCoupon_EndToEnd(t *testing.T) {
	cart := NewCart("user-1")
	require.NoError(t, cart.AddItem("ci-1", "prod-1", "", "Circular Saw", "", dec("40.00"), 2))

	require.NoError(t, cart.ApplyCoupon("welcome15"))

	assert.Equal(t, "WELCOME15", cart.CouponCode, "code normalized to uppercase")
	assert.True(t, cart.Subtotal.Equal(dec("80.00")))
	assert.True(t, cart.Discount.Equal(dec("12.00")))
	assert.True(t, cart.Tax.Equal(dec("6.60")))
	assert.True(t, cart.Shipping.IsZero())
	assert.True(t, cart.Total.Equal(dec("74.60")))
}

func TestCart_ApplyCoupon_UnknownCodeLeavesStateUntouched(t *testing.T) {
	cart := NewCart("user-1")
	require.NoError(t, cart.AddItem("ci-1", "prod-1", "", "Hammer", "", dec("12.50"), 2))
	totalBefore := cart.Total

	err := cart.ApplyCoupon("NOPE50")

	assert.ErrorIs(t, err, ErrInvalidCoupon)
	assert.Empty(t, cart.CouponCode)
	assert.True(t, cart.Total.Equal(totalBefore))
}

func TestCart_RemoveCoupon(t *testing.T) {
	cart := NewCart("user-1")
	require.NoError(t, cart.AddItem("ci-1", "prod-1", "", "Circular Saw", "", dec("40.00"), 2))
	require.NoError(t, cart.ApplyCoupon("WELCOME15"))

	cart.RemoveCoupon()

	assert.Empty(t, cart.CouponCode)
	assert.True(t, cart.Discount.IsZero())
	assert.True(t, cart.Total.Equal(dec("86.60")))
}

func TestCart_DiscountReclampsWhenItemsRemoved(t *testing.T) {
	cart := NewCart("user-1")
	require.NoError(t, cart.AddItem("ci-1", "prod-1", "", "Circular Saw", "", dec("80.00"), 1))
	require.NoError(t, cart.AddItem("ci-2", "prod-2", "", "Work Gloves", "", dec("15.00"), 1))
	require.NoError(t, cart.ApplyCoupon("BUILD20"))
	require.True(t, cart.Discount.Equal(dec("20.00")))

	// 剩余小计 15.00 低于固定折扣 20，折扣收敛到小计
	require.NoError(t, cart.RemoveItem("ci-1"))
	assert.Equal(t, "BUILD20", cart.CouponCode, "coupon code survives item removal")
	assert.True(t, cart.Discount.Equal(dec("15.00")))
	assert.False(t, cart.Total.IsNegative())

	// 清空后折扣归零，总额归零
	require.NoError(t, cart.RemoveItem("ci-2"))
	assert.Equal(t, "BUILD20", cart.CouponCode)
	assert.True(t, cart.Discount.IsZero())
	assert.True(t, cart.Total.IsZero())
}

func TestCart_JSONRoundTrip(t *testing.T) {
	cart := NewCart("user-1")
	require.NoError(t, cart.AddItem("ci-1", "prod-1", "var-1", "Cordless Drill", "vendor-1", dec("89.99"), 2))
	require.NoError(t, cart.ApplyCoupon("CONTRACTOR10"))

	raw, err := json.Marshal(cart)
	require.NoError(t, err)

	var restored Cart
	require.NoError(t, json.Unmarshal(raw, &restored))
	restored.Recompute()

	assert.Equal(t, cart.UserID, restored.UserID)
	require.Len(t, restored.Items, 1)
	assert.True(t, restored.Items[0].UnitPrice.Equal(cart.Items[0].UnitPrice))
	assert.True(t, restored.Subtotal.Equal(cart.Subtotal))
	assert.True(t, restored.Discount.Equal(cart.Discount))
	assert.True(t, restored.Total.Equal(cart.Total))
}
