package middleware

import (
	"errors"
	"strings"

	"github.com/leyanessantiago/activate-api/consts"
	"github.com/leyanessantiago/activate-api/pkg/ctxmeta"
	"github.com/leyanessantiago/activate-api/pkg/logger"
	"github.com/leyanessantiago/activate-api/pkg/result"
	"github.com/leyanessantiago/activate-api/pkg/util"

	"github.com/gin-gonic/gin"
)

// BearerToken 从 Authorization 头解析 Bearer token，格式不对返回空串
func BearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// JWTAuthMiddleware 校验访问令牌，把 user_uuid 写入上下文
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			result.Abort(c, consts.CodeUnauthorized)
			return
		}

		claims, err := util.ParseToken(token)
		if err != nil {
			logger.Debug(ctxmeta.FromGin(c), "token 校验失败",
				logger.ErrorField("error", err),
			)
			if errors.Is(err, util.ErrTokenExpired) {
				result.Abort(c, consts.CodeTokenExpired)
				return
			}
			result.Abort(c, consts.CodeInvalidToken)
			return
		}

		c.Set(ctxmeta.KeyUserUUID, claims.UserUUID)
		c.Next()
	}
}

// GetUserUUID 读取当前登录用户
func GetUserUUID(c *gin.Context) (string, bool) {
	userUUID := c.GetString(ctxmeta.KeyUserUUID)
	return userUUID, userUUID != ""
}
