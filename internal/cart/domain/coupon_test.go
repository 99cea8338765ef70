package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCoupon_NormalizesCode(t *testing.T) {
	for _, raw := range []string{"welcome15", "WELCOME15", "  Welcome15  "} {
		c, ok := ResolveCoupon(raw)
		require.True(t, ok, "code %q should resolve", raw)
		assert.Equal(t, "WELCOME15", c.Code)
	}
}

func TestResolveCoupon_Unknown(t *testing.T) {
	_, ok := ResolveCoupon("EXPIRED99")
	assert.False(t, ok)
}

func TestCoupon_Discount_Percentage(t *testing.T) {
	c, ok := ResolveCoupon("CONTRACTOR10")
	require.True(t, ok)

	d := c.Discount(dec("249.90"))
	assert.True(t, d.Equal(dec("24.99")))
}

func TestCoupon_Discount_FixedClampedToSubtotal(t *testing.T) {
	c, ok := ResolveCoupon("BUILD20")
	require.True(t, ok)

	assert.True(t, c.Discount(dec("100.00")).Equal(dec("20.00")))
	assert.True(t, c.Discount(dec("15.00")).Equal(dec("15.00")), "discount never exceeds subtotal")
	assert.True(t, c.Discount(decimal.Zero).IsZero())
}
