// Package messaging 实现购物车事件的 Kafka 发布
package messaging

import (
	"context"
	"time"

	"github.com/nouressalam/storefront/internal/cart/domain"
	"github.com/nouressalam/storefront/pkg/logger"
	"github.com/nouressalam/storefront/pkg/mq"
)

// KafkaEventPublisher 将购物车事件发布到 Kafka，供下游通知消费。
// 发布失败只记录日志，不阻塞购物车操作。
type KafkaEventPublisher struct {
	producer *mq.KafkaProducer
	topic    string
}

// NewKafkaEventPublisher 创建 Kafka 购物车事件发布器
func NewKafkaEventPublisher(producer *mq.KafkaProducer, topic string) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: producer, topic: topic}
}

func (p *KafkaEventPublisher) publish(key string, event interface{}) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := p.producer.SendMessage(ctx, p.topic, key, event); err != nil {
			logger.Error(ctx, "Failed to publish cart event", "key", key, "error", err)
		}
	}()
}

func (p *KafkaEventPublisher) PublishCartItemAdded(event domain.CartItemAddedEvent) {
	p.publish("cart.item_added:"+event.UserID, event)
}

func (p *KafkaEventPublisher) PublishCartItemRemoved(event domain.CartItemRemovedEvent) {
	p.publish("cart.item_removed:"+event.UserID, event)
}

func (p *KafkaEventPublisher) PublishCartCleared(event domain.CartClearedEvent) {
	p.publish("cart.cleared:"+event.UserID, event)
}

func (p *KafkaEventPublisher) PublishCouponApplied(event domain.CouponAppliedEvent) {
	p.publish("cart.coupon_applied:"+event.UserID, event)
}

func (p *KafkaEventPublisher) PublishCouponRemoved(event domain.CouponRemovedEvent) {
	p.publish("cart.coupon_removed:"+event.UserID, event)
}

// NoopEventPublisher 未配置 Kafka 时的空实现
type NoopEventPublisher struct{}

func (NoopEventPublisher) PublishCartItemAdded(domain.CartItemAddedEvent)     {}
func (NoopEventPublisher) PublishCartItemRemoved(domain.CartItemRemovedEvent) {}
func (NoopEventPublisher) PublishCartCleared(domain.CartClearedEvent)         {}
func (NoopEventPublisher) PublishCouponApplied(domain.CouponAppliedEvent)     {}
func (NoopEventPublisher) PublishCouponRemoved(domain.CouponRemovedEvent)     {}
