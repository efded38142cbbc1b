package middleware

import (
	"errors"
	"net"
	"net/http/httputil"
	"os"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/leyanessantiago/activate-api/consts"
	"github.com/leyanessantiago/activate-api/pkg/ctxmeta"
	"github.com/leyanessantiago/activate-api/pkg/logger"
	"github.com/leyanessantiago/activate-api/pkg/result"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const slowRequestThreshold = 2 * time.Second

// GinLogger 请求日志，只记录 5xx 与慢请求
func GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		cost := time.Since(start)
		status := c.Writer.Status()
		if status < 500 && cost <= slowRequestThreshold {
			return
		}

		logger.Warn(ctxmeta.FromGin(c), "慢请求或服务端错误",
			logger.Int("status", status),
			logger.String("method", c.Request.Method),
			logger.String("path", path),
			logger.String("query", query),
			logger.String("ip", c.GetString(ctxmeta.KeyClientIP)),
			logger.String("user-agent", c.Request.UserAgent()),
			logger.String("errors", c.Errors.ByType(gin.ErrorTypePrivate).String()),
			logger.Duration("cost", cost),
		)
	}
}

// GinRecovery 捕获 handler panic，记录日志后返回统一的内部错误
// 客户端断开（broken pipe / connection reset）时不再写响应
func GinRecovery(stack bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			ctx := ctxmeta.FromGin(c)
			if isBrokenPipe(r) {
				logger.Warn(ctx, "客户端连接已断开",
					logger.String("path", c.Request.URL.Path),
					logger.Any("error", r),
				)
				c.Abort()
				return
			}

			request, _ := httputil.DumpRequest(c.Request, false)
			fields := []zap.Field{
				logger.Any("panic", r),
				logger.String("request", string(request)),
			}
			if stack {
				fields = append(fields, logger.String("stack", string(debug.Stack())))
			}
			logger.Error(ctx, "请求处理 panic", fields...)
			result.Abort(c, consts.CodeInternalError)
		}()
		c.Next()
	}
}

func isBrokenPipe(r any) bool {
	err, ok := r.(error)
	if !ok {
		return false
	}
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		return false
	}
	var sysErr *os.SyscallError
	if errors.As(opErr.Err, &sysErr) {
		return errors.Is(sysErr.Err, syscall.EPIPE) || errors.Is(sysErr.Err, syscall.ECONNRESET)
	}
	msg := strings.ToLower(opErr.Error())
	return strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer")
}
