package domain

import "context"

// CartRepository 购物车快照仓储。
// 写入为 last-writer-wins，跨实例并发写同一用户快照时后写覆盖先写（已知限制）。
type CartRepository interface {
	GetByUserID(ctx context.Context, userID string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, userID string) error
}
