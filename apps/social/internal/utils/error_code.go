package utils

import (
	"context"
	"strconv"

	"github.com/leyanessantiago/activate-api/consts"
	"github.com/leyanessantiago/activate-api/pkg/logger"
	"github.com/leyanessantiago/activate-api/pkg/result"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ExtractErrorCode 提取业务错误码
// service 层约定：status message 为业务码字符串
func ExtractErrorCode(err error) int32 {
	if err == nil {
		return consts.CodeSuccess
	}

	st, ok := status.FromError(err)
	if !ok {
		return consts.CodeInternalError
	}
	if bizCode, parseErr := strconv.Atoi(st.Message()); parseErr == nil {
		return int32(bizCode)
	}
	return grpcCodeToBusinessCode(st.Code())
}

// grpcCodeToBusinessCode message 不是业务码时按 gRPC code 兜底
func grpcCodeToBusinessCode(code codes.Code) int32 {
	switch code {
	case codes.InvalidArgument:
		return consts.CodeParamError
	case codes.NotFound:
		return consts.CodeResourceNotFound
	case codes.Unauthenticated:
		return consts.CodeUnauthorized
	case codes.PermissionDenied:
		return consts.CodePermissionDeny
	case codes.ResourceExhausted:
		return consts.CodeTooManyRequests
	case codes.DeadlineExceeded:
		return consts.CodeTimeoutError
	case codes.Unavailable:
		return consts.CodeServiceUnavailable
	default:
		return consts.CodeInternalError
	}
}

// FailWithServiceError 把 service 错误写成统一响应
// 业务错误直接透传错误码，内部错误记录日志后返回 CodeInternalError
func FailWithServiceError(ctx context.Context, c *gin.Context, err error, logMsg string) {
	code := ExtractErrorCode(err)
	if consts.IsNonServerError(int(code)) {
		result.Fail(c, nil, code)
		return
	}
	if code == consts.CodeTimeoutError || code == consts.CodeServiceUnavailable {
		logger.Warn(ctx, logMsg, logger.ErrorField("error", err))
		result.Fail(c, nil, code)
		return
	}

	logger.Error(ctx, logMsg, logger.ErrorField("error", err))
	result.Fail(c, nil, consts.CodeInternalError)
}
