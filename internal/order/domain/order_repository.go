package domain

import "context"

// OrderRepository 订单仓储接口
type OrderRepository interface {
	Save(ctx context.Context, order *Order) error
	// Get 按内部 ID 或订单号查找
	Get(ctx context.Context, id string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	Update(ctx context.Context, order *Order) error
}
