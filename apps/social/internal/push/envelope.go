package push

import "encoding/json"

// 帧类型
const (
	FrameHeartbeat    = "heartbeat"
	FrameHeartbeatAck = "heartbeat_ack"
	FrameActivity     = "activity"
	FrameError        = "error"
)

// ws 帧内的错误码（不是 HTTP 状态码）
const (
	wsInvalidFormatCode = 10001
	wsUnsupportedCode   = 10002
)

// Envelope WebSocket 通用消息包，Data 由 Type 决定如何解析
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// ErrorData type=error 时的 data
type ErrorData struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ParseEnvelope 解析上行帧
func ParseEnvelope(raw []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, err
	}
	return env, nil
}

// MarshalEnvelope 构造下行帧，data 为 nil 时省略
func MarshalEnvelope(frameType string, data any) ([]byte, error) {
	env := Envelope{Type: frameType}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		env.Data = raw
	}
	return json.Marshal(env)
}
