package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewOrderNumber(t *testing.T) {
	at := time.UnixMilli(1756382123456)
	assert.Equal(t, "NE-123456", NewOrderNumber(at))

	// 低位不足六位时补零
	early := time.UnixMilli(1756382000042)
	assert.Equal(t, "NE-000042", NewOrderNumber(early))
}

func TestOrderStatus_Valid(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled,
	} {
		assert.True(t, s.Valid(), "status %q", s)
	}
	assert.False(t, OrderStatus("returned").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestOrder_AppendTimeline(t *testing.T) {
	o := &Order{ID: "order-1"}
	at := time.Now()

	o.AppendTimeline("ot-1", OrderStatusPending, "Order placed", at)
	o.AppendTimeline("ot-2", OrderStatusShipped, "Order shipped", at.Add(time.Hour))

	assert.Len(t, o.Timeline, 2)
	assert.Equal(t, "order-1", o.Timeline[0].OrderID)
	assert.Equal(t, OrderStatusShipped, o.Timeline[1].Status)
}
