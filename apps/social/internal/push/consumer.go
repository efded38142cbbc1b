package push

import (
	"context"
	"errors"
	"time"

	"github.com/leyanessantiago/activate-api/apps/social/mq"
	"github.com/leyanessantiago/activate-api/pkg/logger"
	"github.com/leyanessantiago/activate-api/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

const fetchRetryInterval = time.Second

// messageReader kafka.Reader 的最小接口
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer 消费动态 topic，把消息转发给本实例上接收者的在线连接。
// 接收者不在线时直接提交位点：未读动态已落库，客户端上线后通过列表接口拉取。
type Consumer struct {
	reader  messageReader
	manager *Manager
}

// NewConsumer 创建消费者，reader 通常由 pkg/kafka.NewReader 创建
func NewConsumer(reader messageReader, manager *Manager) *Consumer {
	return &Consumer{reader: reader, manager: manager}
}

// Run 阻塞消费直到 ctx 取消
func (c *Consumer) Run(ctx context.Context) {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return
			}
			logger.Warn(ctx, "拉取动态消息失败", logger.ErrorField("error", err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(fetchRetryInterval):
			}
			continue
		}

		c.deliver(ctx, msg)

		if err := c.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			logger.Warn(ctx, "提交消费位点失败",
				logger.Int64("offset", msg.Offset),
				logger.ErrorField("error", err),
			)
		}
	}
}

// deliver 无法解析的消息记录后跳过
func (c *Consumer) deliver(ctx context.Context, msg kafka.Message) {
	activity, err := mq.DecodeActivityMessage(msg.Value)
	if err != nil {
		metrics.RecordActivity("push", "error")
		logger.Error(ctx, "动态消息格式错误",
			logger.Int64("offset", msg.Offset),
			logger.ErrorField("error", err),
		)
		return
	}

	frame, err := MarshalEnvelope(FrameActivity, activity)
	if err != nil {
		metrics.RecordActivity("push", "error")
		logger.Error(ctx, "动态推送帧序列化失败", logger.ErrorField("error", err))
		return
	}

	if sent := c.manager.SendToUser(activity.ReceiverUUID, frame); sent > 0 {
		metrics.RecordActivity("push", "ok")
		logger.Debug(ctx, "动态已推送",
			logger.String("receiver", activity.ReceiverUUID),
			logger.String("trace_id", activity.TraceID),
			logger.Int("connections", sent),
		)
		return
	}
	metrics.RecordActivity("push", "offline")
}

// Close 关闭底层 reader
func (c *Consumer) Close() error {
	return c.reader.Close()
}
