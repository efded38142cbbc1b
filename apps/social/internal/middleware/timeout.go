package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/leyanessantiago/activate-api/consts"
	"github.com/leyanessantiago/activate-api/pkg/ctxmeta"
	"github.com/leyanessantiago/activate-api/pkg/logger"
	"github.com/leyanessantiago/activate-api/pkg/result"

	"github.com/gin-gonic/gin"
)

// TimeoutMiddleware 请求超时控制
// 不开启额外 goroutine，依赖下游（gorm / redis）感知 ctx 超时
func TimeoutMiddleware(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		// handler 已经写过响应（例如把超时映射成了业务错误）就不再兜底
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			logger.Warn(ctxmeta.FromGin(c), "请求超时",
				logger.String("path", c.Request.URL.Path),
				logger.Duration("timeout", timeout),
			)
			result.Fail(c, nil, consts.CodeTimeoutError)
		}
	}
}
