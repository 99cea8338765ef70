// Package messaging 实现订单事件的 Kafka 发布
package messaging

import (
	"context"
	"time"

	"github.com/nouressalam/storefront/internal/order/domain"
	"github.com/nouressalam/storefront/pkg/logger"
	"github.com/nouressalam/storefront/pkg/mq"
)

// KafkaEventPublisher 将订单事件发布到 Kafka。
// 发布是尽力而为：失败只记录日志，不影响订单主流程。
type KafkaEventPublisher struct {
	producer *mq.KafkaProducer
	topic    string
}

// NewKafkaEventPublisher 创建 Kafka 订单事件发布器
func NewKafkaEventPublisher(producer *mq.KafkaProducer, topic string) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: producer, topic: topic}
}

func (p *KafkaEventPublisher) publish(key string, event interface{}) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := p.producer.SendMessage(ctx, p.topic, key, event); err != nil {
			logger.Error(ctx, "Failed to publish order event", "key", key, "error", err)
		}
	}()
}

// PublishOrderPlaced 发布订单创建事件
func (p *KafkaEventPublisher) PublishOrderPlaced(event domain.OrderPlacedEvent) {
	p.publish("order.placed:"+event.OrderID, event)
}

// PublishOrderStatusChanged 发布订单状态变更事件
func (p *KafkaEventPublisher) PublishOrderStatusChanged(event domain.OrderStatusChangedEvent) {
	p.publish("order.status_changed:"+event.OrderID, event)
}

// NoopEventPublisher 未配置 Kafka 时的空实现
type NoopEventPublisher struct{}

func (NoopEventPublisher) PublishOrderPlaced(domain.OrderPlacedEvent)               {}
func (NoopEventPublisher) PublishOrderStatusChanged(domain.OrderStatusChangedEvent) {}
