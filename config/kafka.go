package config

import "time"

// KafkaConfig 动态消息（Activity）投递配置
type KafkaConfig struct {
	Enabled       bool          `json:"enabled" yaml:"enabled"`             // 关闭时只落库不投递
	Brokers       []string      `json:"brokers" yaml:"brokers"`             // broker 列表
	ActivityTopic string        `json:"activityTopic" yaml:"activityTopic"` // 动态消息 topic
	ConsumerGroup string        `json:"consumerGroup" yaml:"consumerGroup"` // 推送消费者组
	BatchTimeout  time.Duration `json:"batchTimeout" yaml:"batchTimeout"`   // 生产者攒批等待时间
	WriteTimeout  time.Duration `json:"writeTimeout" yaml:"writeTimeout"`   // 单次写超时
}

// DefaultKafkaConfig 返回本地开发的默认配置
func DefaultKafkaConfig() KafkaConfig {
	return KafkaConfig{
		Enabled:       true,
		Brokers:       []string{"kafka:9092"},
		ActivityTopic: "activate.activity",
		ConsumerGroup: "activate-push",
		BatchTimeout:  10 * time.Millisecond,
		WriteTimeout:  3 * time.Second,
	}
}
