// Package ctxmeta 在 gin.Context、context.Context 与异步任务之间传递请求元信息。
// key 使用与 gin c.Set 相同的字符串，logger 可以直接从任意一种 ctx 中读到 trace_id。
package ctxmeta

import (
	"context"

	"github.com/gin-gonic/gin"
)

const (
	KeyTraceID  = "trace_id"
	KeyUserUUID = "user_uuid"
	KeyClientIP = "client_ip"
)

// FromGin 从 gin.Context 创建包含 trace_id、user_uuid、client_ip 的 context.Context
// 用于把 Gin 上下文中的元信息传到 service 层与日志系统
func FromGin(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	for _, key := range []string{KeyTraceID, KeyUserUUID, KeyClientIP} {
		if v, exists := c.Get(key); exists {
			ctx = context.WithValue(ctx, key, v)
		}
	}
	return ctx
}

// WithUserUUID 写入当前登录用户
func WithUserUUID(ctx context.Context, userUUID string) context.Context {
	return context.WithValue(ctx, KeyUserUUID, userUUID)
}

// UserUUID 读取当前登录用户（viewer）
func UserUUID(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(KeyUserUUID).(string)
	return id, ok && id != ""
}

// TraceID 读取 trace_id，不存在时返回空串
func TraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(KeyTraceID).(string)
	return id
}

// Propagate 只保留需要透传的字段，生成与父 ctx 生命周期无关的新 ctx（供 async.RunSafe 使用）
func Propagate(parent context.Context) context.Context {
	ctx := context.Background()
	if traceID := TraceID(parent); traceID != "" {
		ctx = context.WithValue(ctx, KeyTraceID, traceID)
	}
	if userUUID, ok := UserUUID(parent); ok {
		ctx = WithUserUUID(ctx, userUUID)
	}
	return ctx
}
