package mq

import (
	"context"
	"fmt"
)

// messageSender pkg/kafka.Producer 的最小接口
type messageSender interface {
	Send(ctx context.Context, key, value []byte) error
}

// ActivityPublisher 动态发布
type ActivityPublisher interface {
	PublishActivity(ctx context.Context, msg ActivityMessage) error
}

type kafkaActivityPublisher struct {
	sender messageSender
}

// NewActivityPublisher 基于 Kafka 生产者创建动态发布器
func NewActivityPublisher(sender messageSender) ActivityPublisher {
	return &kafkaActivityPublisher{sender: sender}
}

// PublishActivity 发送一条动态，key 为接收者 uuid
func (p *kafkaActivityPublisher) PublishActivity(ctx context.Context, msg ActivityMessage) error {
	data, err := msg.WithContext(ctx).Encode()
	if err != nil {
		return fmt.Errorf("encode activity message: %w", err)
	}
	return p.sender.Send(ctx, []byte(msg.ReceiverUUID), data)
}

// NopPublisher Kafka 未启用时使用，动态只落库不推送
type NopPublisher struct{}

func (NopPublisher) PublishActivity(context.Context, ActivityMessage) error { return nil }
