// Package redis 实现购物车快照的 Redis 持久化。
// 每用户一个 key，整车 JSON 序列化存储，写入为 last-writer-wins。
package redis

import (
	"context"

	"github.com/nouressalam/storefront/internal/cart/domain"
	"github.com/nouressalam/storefront/pkg/cache"
)

const keyPrefix = "cart:"

type cartRepository struct {
	cache *cache.RedisCache
}

// NewCartRepository 创建 Redis 购物车仓储
func NewCartRepository(c *cache.RedisCache) domain.CartRepository {
	return &cartRepository{cache: c}
}

func (r *cartRepository) GetByUserID(ctx context.Context, userID string) (*domain.Cart, error) {
	var cart domain.Cart
	found, err := r.cache.GetJSON(ctx, keyPrefix+userID, &cart)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &cart, nil
}

func (r *cartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	// 快照不过期，购物车跨会话保留
	return r.cache.SetJSON(ctx, keyPrefix+cart.UserID, cart, 0)
}

func (r *cartRepository) Delete(ctx context.Context, userID string) error {
	return r.cache.Delete(ctx, keyPrefix+userID)
}
