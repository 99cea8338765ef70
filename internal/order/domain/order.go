// Package domain 包含订单模块的领域模型
package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus 订单状态
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid 是否为已知状态
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// PaymentStatus 支付状态。本系统不接入支付，订单提交后等待人工确认。
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
	PaymentStatusFailed   PaymentStatus = "failed"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid order status")
)

// Address 收货/账单地址
type Address struct {
	ID      string `gorm:"column:id;type:varchar(64)" json:"id"`
	Label   string `gorm:"column:label;type:varchar(32)" json:"label"`
	Street  string `gorm:"column:street;type:varchar(255)" json:"street"`
	City    string `gorm:"column:city;type:varchar(100)" json:"city"`
	State   string `gorm:"column:state;type:varchar(100)" json:"state"`
	ZipCode string `gorm:"column:zip_code;type:varchar(20)" json:"zipCode"`
	Country string `gorm:"column:country;type:varchar(100)" json:"country"`
}

// OrderItem 订单行项目，下单时从购物车快照复制
type OrderItem struct {
	ID        string          `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	OrderID   string          `gorm:"column:order_id;type:varchar(64);index;not null" json:"-"`
	ProductID string          `gorm:"column:product_id;type:varchar(64);not null" json:"productId"`
	VariantID string          `gorm:"column:variant_id;type:varchar(64)" json:"variantId,omitempty"`
	Name      string          `gorm:"column:name;type:varchar(255)" json:"name"`
	VendorID  string          `gorm:"column:vendor_id;type:varchar(64);index" json:"vendorId"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:decimal(12,2);not null" json:"price"`
	Quantity  int             `gorm:"column:quantity;not null" json:"quantity"`
	LineTotal decimal.Decimal `gorm:"column:line_total;type:decimal(12,2);not null" json:"total"`
}

func (OrderItem) TableName() string { return "order_items" }

// TimelineEvent 状态时间线条目
type TimelineEvent struct {
	ID          string      `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	OrderID     string      `gorm:"column:order_id;type:varchar(64);index;not null" json:"-"`
	Status      OrderStatus `gorm:"column:status;type:varchar(20);not null" json:"status"`
	Description string      `gorm:"column:description;type:varchar(255)" json:"description"`
	Timestamp   time.Time   `gorm:"column:timestamp;not null" json:"timestamp"`
}

func (TimelineEvent) TableName() string { return "order_timeline_events" }

// Order 订单实体
type Order struct {
	ID              string          `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	OrderNumber     string          `gorm:"column:order_number;type:varchar(32);uniqueIndex;not null" json:"orderNumber"`
	UserID          string          `gorm:"column:user_id;type:varchar(64);index;not null" json:"userId"`
	Status          OrderStatus     `gorm:"column:status;type:varchar(20);index;not null" json:"status"`
	PaymentStatus   PaymentStatus   `gorm:"column:payment_status;type:varchar(20);not null" json:"paymentStatus"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	Subtotal        decimal.Decimal `gorm:"column:subtotal;type:decimal(12,2);not null" json:"subtotal"`
	Tax             decimal.Decimal `gorm:"column:tax;type:decimal(12,2);not null" json:"tax"`
	Shipping        decimal.Decimal `gorm:"column:shipping;type:decimal(12,2);not null" json:"shipping"`
	Discount        decimal.Decimal `gorm:"column:discount;type:decimal(12,2);not null" json:"discount"`
	Total           decimal.Decimal `gorm:"column:total;type:decimal(12,2);not null" json:"total"`
	CouponCode      string          `gorm:"column:coupon_code;type:varchar(32)" json:"couponCode,omitempty"`
	ShippingAddress Address         `gorm:"embedded;embeddedPrefix:shipping_" json:"shippingAddress"`
	BillingAddress  Address         `gorm:"embedded;embeddedPrefix:billing_" json:"billingAddress"`
	Notes           string          `gorm:"column:notes;type:text" json:"notes,omitempty"`
	Timeline        []TimelineEvent `gorm:"foreignKey:OrderID" json:"timeline"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func (Order) TableName() string { return "orders" }

// NewOrderNumber 生成对人友好的短订单号，与内部 ID 相互独立
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("NE-%06d", now.UnixMilli()%1_000_000)
}

// AppendTimeline 追加一条状态时间线
func (o *Order) AppendTimeline(eventID string, status OrderStatus, description string, at time.Time) {
	o.Timeline = append(o.Timeline, TimelineEvent{
		ID:          eventID,
		OrderID:     o.ID,
		Status:      status,
		Description: description,
		Timestamp:   at,
	})
}
