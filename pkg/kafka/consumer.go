package kafka

import (
	"github.com/leyanessantiago/activate-api/config"
	"github.com/leyanessantiago/activate-api/pkg/logger"

	"github.com/segmentio/kafka-go"
)

// NewReader 创建消费者组 Reader
func NewReader(cfg config.KafkaConfig, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       topic,
		GroupID:     groupID,
		MinBytes:    1,
		MaxBytes:    1 << 20,
		StartOffset: kafka.LastOffset,
		ErrorLogger: NewZapLoggerAdapter(logger.L()),
	})
}
