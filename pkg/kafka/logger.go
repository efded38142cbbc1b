package kafka

import (
	"fmt"

	"go.uber.org/zap"
)

// ZapLoggerAdapter 把 kafka-go 的 Printf 风格日志转到 zap
type ZapLoggerAdapter struct {
	l *zap.Logger
}

// NewZapLoggerAdapter 创建适配器
func NewZapLoggerAdapter(l *zap.Logger) *ZapLoggerAdapter {
	if l == nil {
		l = zap.NewNop()
	}
	return &ZapLoggerAdapter{l: l.WithOptions(zap.AddCallerSkip(1))}
}

// Printf 实现 kafka.Logger
func (a *ZapLoggerAdapter) Printf(format string, args ...any) {
	a.l.Warn(fmt.Sprintf(format, args...), zap.String("component", "kafka"))
}
