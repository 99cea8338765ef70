// Package application 实现订单用例：从购物车装配订单、查询与状态流转。
package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	cartdomain "github.com/nouressalam/storefront/internal/cart/domain"
	"github.com/nouressalam/storefront/internal/order/domain"
	"github.com/nouressalam/storefront/pkg/idgen"
	"github.com/nouressalam/storefront/pkg/logger"
)

var (
	// ErrUnauthenticated 缺少有效身份。不支持游客下单，
	// 提交接口要求 Bearer 凭证，装配阶段同样拒绝无身份请求。
	ErrUnauthenticated = errors.New("user is not authenticated")
	// ErrEmptyCart 购物车为空时拒绝下单
	ErrEmptyCart = errors.New("cart is empty")
	// ErrForbidden 非管理员且非订单归属人
	ErrForbidden = errors.New("not authorized for this order")
)

// RoleAdmin 管理员角色标识
const RoleAdmin = "admin"

// Identity 请求身份，由鉴权中间件提供
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// ShippingInput 结账表单输入
type ShippingInput struct {
	Email     string
	FirstName string
	LastName  string
	Address   string
	City      string
	Phone     string
	Notes     string
}

// CartAccessor 订单模块对购物车的只读+清空访问
type CartAccessor interface {
	GetCart(ctx context.Context, userID string) (*cartdomain.Cart, error)
	ClearCart(ctx context.Context, userID string) (*cartdomain.Cart, error)
}

// OrderService 订单应用服务
type OrderService struct {
	repo   domain.OrderRepository
	carts  CartAccessor
	events domain.EventPublisher
	ids    *idgen.Generator
	now    func() time.Time
}

// NewOrderService 创建订单应用服务
func NewOrderService(repo domain.OrderRepository, carts CartAccessor, events domain.EventPublisher, ids *idgen.Generator) *OrderService {
	return &OrderService{
		repo:   repo,
		carts:  carts,
		events: events,
		ids:    ids,
		now:    time.Now,
	}
}

// PlaceOrder 从当前购物车装配并持久化订单。
// 持久化失败时购物车保持原样以便重试，成功后购物车被清空。
func (s *OrderService) PlaceOrder(ctx context.Context, identity Identity, input ShippingInput) (*domain.Order, error) {
	if identity.UserID == "" {
		return nil, ErrUnauthenticated
	}

	cart, err := s.carts.GetCart(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	order := s.assemble(cart, identity, input)

	if err := s.repo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	if _, err := s.carts.ClearCart(ctx, identity.UserID); err != nil {
		// 订单已落库，清空失败仅记录，不回滚订单
		logger.Warn(ctx, "Failed to clear cart after order", "user_id", identity.UserID, "order_id", order.ID, "error", err)
	}

	s.events.PublishOrderPlaced(domain.OrderPlacedEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		Total:       order.Total.String(),
		ItemCount:   len(order.Items),
		Timestamp:   s.now(),
	})
	logger.Info(ctx, "Order placed", "order_id", order.ID, "order_number", order.OrderNumber, "user_id", identity.UserID)

	return order, nil
}

// assemble 装配订单草稿：地址来自表单（账单地址复用收货地址），
// 行项目与聚合金额逐项复制购物车快照，时间线以 pending 起始。
func (s *OrderService) assemble(cart *cartdomain.Cart, identity Identity, input ShippingInput) *domain.Order {
	now := s.now()
	orderID := "order-" + s.ids.NextString()

	address := domain.Address{
		ID:      "addr-" + s.ids.NextString(),
		Label:   "Shipping",
		Street:  input.Address,
		City:    input.City,
		Country: "Morocco",
	}

	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, li := range cart.Items {
		items = append(items, domain.OrderItem{
			ID:        "oi-" + s.ids.NextString(),
			OrderID:   orderID,
			ProductID: li.ProductID,
			VariantID: li.VariantID,
			Name:      li.Name,
			VendorID:  li.VendorID,
			UnitPrice: li.UnitPrice,
			Quantity:  li.Quantity,
			LineTotal: li.LineTotal,
		})
	}

	order := &domain.Order{
		ID:              orderID,
		OrderNumber:     domain.NewOrderNumber(now),
		UserID:          identity.UserID,
		Status:          domain.OrderStatusPending,
		PaymentStatus:   domain.PaymentStatusPending,
		Items:           items,
		Subtotal:        cart.Subtotal,
		Tax:             cart.Tax,
		Shipping:        cart.Shipping,
		Discount:        cart.Discount,
		Total:           cart.Total,
		CouponCode:      cart.CouponCode,
		ShippingAddress: address,
		BillingAddress:  address,
		Notes:           input.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	order.AppendTimeline("ot-"+s.ids.NextString(), domain.OrderStatusPending, "Order placed", now)

	return order
}

// ListOrders 列出订单，管理员可见全部，其余仅见本人
func (s *OrderService) ListOrders(ctx context.Context, identity Identity) ([]domain.Order, error) {
	if identity.UserID == "" {
		return nil, ErrUnauthenticated
	}
	if identity.Role == RoleAdmin {
		return s.repo.ListAll(ctx)
	}
	return s.repo.ListByUser(ctx, identity.UserID)
}

// GetOrder 获取订单详情，仅管理员或归属人可见
func (s *OrderService) GetOrder(ctx context.Context, identity Identity, orderID string) (*domain.Order, error) {
	if identity.UserID == "" {
		return nil, ErrUnauthenticated
	}
	order, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if identity.Role != RoleAdmin && order.UserID != identity.UserID {
		return nil, ErrForbidden
	}
	return order, nil
}

// UpdateStatus 更新订单状态并追加时间线，仅管理员或归属人可操作
func (s *OrderService) UpdateStatus(ctx context.Context, identity Identity, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	if identity.UserID == "" {
		return nil, ErrUnauthenticated
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	order, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if identity.Role != RoleAdmin && order.UserID != identity.UserID {
		return nil, ErrForbidden
	}

	oldStatus := order.Status
	now := s.now()
	order.Status = status
	order.UpdatedAt = now
	order.AppendTimeline("ot-"+s.ids.NextString(), status, fmt.Sprintf("Order %s", status), now)

	if err := s.repo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	s.events.PublishOrderStatusChanged(domain.OrderStatusChangedEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		OldStatus:   oldStatus,
		NewStatus:   status,
		Timestamp:   now,
	})
	logger.Info(ctx, "Order status updated", "order_id", order.ID, "from", oldStatus, "to", status)

	return order, nil
}
