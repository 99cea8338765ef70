package domain

import (
	"time"
)

// OrderPlacedEvent 订单创建事件
type OrderPlacedEvent struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	UserID      string    `json:"user_id"`
	Total       string    `json:"total"`
	ItemCount   int       `json:"item_count"`
	Timestamp   time.Time `json:"timestamp"`
}

// OrderStatusChangedEvent 订单状态变更事件
type OrderStatusChangedEvent struct {
	OrderID     string      `json:"order_id"`
	OrderNumber string      `json:"order_number"`
	UserID      string      `json:"user_id"`
	OldStatus   OrderStatus `json:"old_status"`
	NewStatus   OrderStatus `json:"new_status"`
	Timestamp   time.Time   `json:"timestamp"`
}

// EventPublisher 订单事件发布接口
type EventPublisher interface {
	PublishOrderPlaced(event OrderPlacedEvent)
	PublishOrderStatusChanged(event OrderStatusChangedEvent)
}
