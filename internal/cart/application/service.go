// Package application 实现购物车用例：增删改、优惠码与快照持久化。
// 每次变更后立即持久化完整快照，读取时重新推导聚合金额而非直接信任快照。
package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nouressalam/storefront/internal/cart/domain"
	"github.com/nouressalam/storefront/pkg/idgen"
	"github.com/nouressalam/storefront/pkg/logger"
)

// ErrProductNotFound 商品不存在
var ErrProductNotFound = errors.New("product not found")

// ProductSnapshot 加入购物车时的商品快照，变体价格优先于商品价格
type ProductSnapshot struct {
	ProductID string
	VariantID string
	Name      string
	VendorID  string
	UnitPrice decimal.Decimal
}

// ProductProvider 商品目录查询接口，由 catalog 模块实现
type ProductProvider interface {
	Snapshot(ctx context.Context, productID, variantID string) (*ProductSnapshot, error)
}

// CartService 购物车应用服务
type CartService struct {
	repo     domain.CartRepository
	products ProductProvider
	events   domain.EventPublisher
	ids      *idgen.Generator

	// 按用户串行化变更，替代浏览器单线程保证
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewCartService 创建购物车应用服务
func NewCartService(repo domain.CartRepository, products ProductProvider, events domain.EventPublisher, ids *idgen.Generator) *CartService {
	return &CartService{
		repo:     repo,
		products: products,
		events:   events,
		ids:      ids,
		locks:    make(map[string]*sync.Mutex),
	}
}

func (s *CartService) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// load 读取购物车快照，缺失时返回空车；金额一律重新推导
func (s *CartService) load(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if cart == nil {
		return domain.NewCart(userID), nil
	}
	cart.Recompute()
	return cart, nil
}

// GetCart 获取当前购物车
func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	return s.load(ctx, userID)
}

// AddItem 加入商品，已有 (product, variant) 行则合并数量
func (s *CartService) AddItem(ctx context.Context, userID, productID, variantID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	snap, err := s.products.Snapshot(ctx, productID, variantID)
	if err != nil {
		return nil, err
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	id := "ci-" + s.ids.NextString()
	if err := cart.AddItem(id, snap.ProductID, snap.VariantID, snap.Name, snap.VendorID, snap.UnitPrice, quantity); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.events.PublishCartItemAdded(domain.CartItemAddedEvent{
		UserID:    userID,
		ProductID: snap.ProductID,
		VariantID: snap.VariantID,
		Name:      snap.Name,
		Quantity:  quantity,
		Timestamp: time.Now(),
	})
	logger.Info(ctx, "Item added to cart", "user_id", userID, "product_id", productID, "quantity", quantity)

	return cart, nil
}

// UpdateQuantity 修改行项目数量，数量低于 1 拒绝且状态不变
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*domain.Cart, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := cart.UpdateQuantity(itemID, quantity); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

// RemoveItem 删除行项目
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) (*domain.Cart, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := cart.RemoveItem(itemID); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.events.PublishCartItemRemoved(domain.CartItemRemovedEvent{
		UserID:    userID,
		ItemID:    itemID,
		Timestamp: time.Now(),
	})
	return cart, nil
}

// ClearCart 清空购物车并删除持久化快照
func (s *CartService) ClearCart(ctx context.Context, userID string) (*domain.Cart, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.repo.Delete(ctx, userID); err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}

	s.events.PublishCartCleared(domain.CartClearedEvent{
		UserID:    userID,
		Timestamp: time.Now(),
	})
	logger.Info(ctx, "Cart cleared", "user_id", userID)

	return domain.NewCart(userID), nil
}

// ApplyCoupon 应用优惠码，未知码拒绝且状态不变
func (s *CartService) ApplyCoupon(ctx context.Context, userID, code string) (*domain.Cart, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := cart.ApplyCoupon(code); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.events.PublishCouponApplied(domain.CouponAppliedEvent{
		UserID:    userID,
		Code:      cart.CouponCode,
		Discount:  cart.Discount.String(),
		Timestamp: time.Now(),
	})
	logger.Info(ctx, "Coupon applied", "user_id", userID, "code", cart.CouponCode)

	return cart, nil
}

// RemoveCoupon 移除优惠码
func (s *CartService) RemoveCoupon(ctx context.Context, userID string) (*domain.Cart, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.RemoveCoupon()

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.events.PublishCouponRemoved(domain.CouponRemovedEvent{
		UserID:    userID,
		Timestamp: time.Now(),
	})
	return cart, nil
}
