package domain

import "time"

// CartItemAddedEvent 购物车添加商品事件
type CartItemAddedEvent struct {
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	VariantID string    `json:"variant_id,omitempty"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

// CartItemRemovedEvent 购物车移除商品事件
type CartItemRemovedEvent struct {
	UserID    string    `json:"user_id"`
	ItemID    string    `json:"item_id"`
	Timestamp time.Time `json:"timestamp"`
}

// CartClearedEvent 购物车清空事件
type CartClearedEvent struct {
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

// CouponAppliedEvent 优惠码应用事件
type CouponAppliedEvent struct {
	UserID    string    `json:"user_id"`
	Code      string    `json:"code"`
	Discount  string    `json:"discount"`
	Timestamp time.Time `json:"timestamp"`
}

// CouponRemovedEvent 优惠码移除事件
type CouponRemovedEvent struct {
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

// EventPublisher 购物车事件发布接口，驱动用户可见的通知
type EventPublisher interface {
	PublishCartItemAdded(event CartItemAddedEvent)
	PublishCartItemRemoved(event CartItemRemovedEvent)
	PublishCartCleared(event CartClearedEvent)
	PublishCouponApplied(event CouponAppliedEvent)
	PublishCouponRemoved(event CouponRemovedEvent)
}
