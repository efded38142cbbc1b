package mq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/leyanessantiago/activate-api/model"
	"github.com/leyanessantiago/activate-api/pkg/ctxmeta"
)

// ActivityMessage 动态推送消息体（Kafka value）
// 以接收者 uuid 作为消息 key，同一接收者的动态落在同一分区内保持有序
type ActivityMessage struct {
	ID           int64     `json:"id,string"`
	Type         int8      `json:"type"`
	CreatorUUID  string    `json:"creator_uuid"`
	ReceiverUUID string    `json:"receiver_uuid"`
	EventUUID    string    `json:"event_uuid,omitempty"`
	CommentUUID  string    `json:"comment_uuid,omitempty"`
	SentAt       time.Time `json:"sent_at"`

	// 元数据
	TraceID string `json:"trace_id,omitempty"`
}

// BuildActivityMessage 由已落库的动态构造消息
func BuildActivityMessage(a *model.Activity) ActivityMessage {
	msg := ActivityMessage{
		ID:           a.Id,
		Type:         a.Type,
		CreatorUUID:  a.CreatorUuid,
		ReceiverUUID: a.ReceiverUuid,
		SentAt:       a.SentAt,
	}
	if a.EventUuid != nil {
		msg.EventUUID = *a.EventUuid
	}
	if a.CommentUuid != nil {
		msg.CommentUUID = *a.CommentUuid
	}
	return msg
}

// WithContext 带上 trace_id，推送端日志可以和请求串起来
func (m ActivityMessage) WithContext(ctx context.Context) ActivityMessage {
	if traceID := ctxmeta.TraceID(ctx); traceID != "" {
		m.TraceID = traceID
	}
	return m
}

// Encode 序列化
func (m ActivityMessage) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// DecodeActivityMessage 反序列化
func DecodeActivityMessage(data []byte) (ActivityMessage, error) {
	var m ActivityMessage
	err := json.Unmarshal(data, &m)
	return m, err
}
