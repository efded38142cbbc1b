package result

import (
	"github.com/leyanessantiago/activate-api/consts"

	"github.com/gin-gonic/gin"
)

// Response 响应结构体
type Response struct {
	Code    int32  `json:"code"`
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
	Data    any    `json:"data"`
	TraceId string `json:"trace_id"`
}

// Result 返回响应，HTTP 状态码与错误类别由业务码决定
func Result(c *gin.Context, data any, message string, code int32) {
	traceId := c.GetString("trace_id")
	if message == "" {
		message = consts.GetMessage(code)
	}
	kind, httpStatus := KindOf(code)
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
		Kind:    kind,
		Data:    data,
		TraceId: traceId,
	})
}

// Success 返回成功响应
func Success(c *gin.Context, data any) {
	Result(c, data, "", consts.CodeSuccess)
}

// Fail 返回失败响应
func Fail(c *gin.Context, data any, code int32) {
	Result(c, data, "", code)
}

// SuccessWithMessage 返回成功响应并自定义消息
func SuccessWithMessage(c *gin.Context, data any, message string) {
	Result(c, data, message, consts.CodeSuccess)
}

// FailWithMessage 返回失败响应并自定义消息
func FailWithMessage(c *gin.Context, data any, message string, code int32) {
	Result(c, data, message, code)
}

// Abort 失败响应并中断后续 handler（中间件使用）
func Abort(c *gin.Context, code int32) {
	Fail(c, nil, code)
	c.Abort()
}
