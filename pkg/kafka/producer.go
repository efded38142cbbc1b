package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/leyanessantiago/activate-api/config"
	"github.com/leyanessantiago/activate-api/pkg/logger"

	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker"
)

// ErrBreakerOpen 熔断器开启，消息直接丢弃（调用方只记录日志）
var ErrBreakerOpen = errors.New("kafka producer circuit breaker is open")

// messageWriter kafka.Writer 的最小接口，便于单测替换
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer 带熔断的 Kafka 生产者
// Kafka 不可用时快速失败，不拖慢业务请求
type Producer struct {
	writer  messageWriter
	breaker *gobreaker.CircuitBreaker
	topic   string
}

// NewProducer 创建生产者（kafka-go 的 Writer 为懒连接，这里不会访问 broker）
func NewProducer(cfg config.KafkaConfig, topic string) *Producer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           cfg.BatchTimeout,
		WriteTimeout:           cfg.WriteTimeout,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		ErrorLogger:            NewZapLoggerAdapter(logger.L()),
	}
	return newProducer(w, topic)
}

func newProducer(w messageWriter, topic string) *Producer {
	return &Producer{
		writer:  w,
		topic:   topic,
		breaker: newBreaker("kafka-" + topic),
	}
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,                // 半开状态下最多允许 3 个请求尝试
		Interval:    15 * time.Second, // 清除计数的时间间隔
		Timeout:     30 * time.Second, // 熔断器开启后多久尝试进入半开状态
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// 失败率超过 50% 且请求数不少于 5 次时触发熔断
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info(context.Background(), "熔断器状态变化",
				logger.String("name", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()),
			)
		},
	})
}

// Topic 返回生产者绑定的 topic
func (p *Producer) Topic() string { return p.topic }

// Send 发送一条消息，key 决定分区（同一接收者的消息保持有序）
func (p *Producer) Send(ctx context.Context, key, value []byte) error {
	_, err := p.breaker.Execute(func() (any, error) {
		return nil, p.writer.WriteMessages(ctx, kafka.Message{Key: key, Value: value})
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return ErrBreakerOpen
		}
		return fmt.Errorf("write kafka topic %s: %w", p.topic, err)
	}
	return nil
}

// Close 关闭底层 Writer，会先刷出未发送的批次
func (p *Producer) Close() error {
	return p.writer.Close()
}
