package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/leyanessantiago/activate-api/apps/social/internal/relation"
	"github.com/leyanessantiago/activate-api/apps/social/internal/repository"
	"github.com/leyanessantiago/activate-api/consts"
	"github.com/leyanessantiago/activate-api/pkg/ctxmeta"
	"github.com/leyanessantiago/activate-api/pkg/logger"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// 错误约定（与 handler 层的 ExtractErrorCode 对应）：
//   - 所有对外错误都是 gRPC status，Message 为 consts 中的业务码
//   - status code 表示错误类别：NotFound / FailedPrecondition(非法迁移) / AlreadyExists(重复关系)
//     InvalidArgument(参数) / Unauthenticated / Internal

func bizError(code codes.Code, bizCode int) error {
	return status.Error(code, strconv.Itoa(bizCode))
}

// internalError 记录原始错误后返回统一的内部错误
func internalError(ctx context.Context, msg string, err error) error {
	logger.Error(ctx, msg, logger.ErrorField("error", err))
	return bizError(codes.Internal, consts.CodeInternalError)
}

// currentUser 从 ctx 中取出当前登录用户（由鉴权中间件写入）
func currentUser(ctx context.Context) (string, error) {
	userUUID, ok := ctxmeta.UserUUID(ctx)
	if !ok {
		return "", bizError(codes.Unauthenticated, consts.CodeUnauthorized)
	}
	return userUUID, nil
}

// edgeCodes 一种关系边对应的业务码
type edgeCodes struct {
	self       int
	duplicate  int
	notFound   int
	invalid    int
	concurrent int
}

var (
	friendCodes = edgeCodes{
		self:       consts.CodeCannotRelateSelf,
		duplicate:  consts.CodeRelationExists,
		notFound:   consts.CodeRelationNotFound,
		invalid:    consts.CodeRelationInvalidOp,
		concurrent: consts.CodeRelationConcurrent,
	}
	followCodes = edgeCodes{
		self:       consts.CodeCannotFollowSelf,
		duplicate:  consts.CodeAlreadyFollowing,
		notFound:   consts.CodeFollowNotFound,
		invalid:    consts.CodeFollowInvalidOp,
		concurrent: consts.CodeRelationConcurrent,
	}
)

// planError 状态机校验失败 -> 对外错误
func planError(err error, c edgeCodes) error {
	switch {
	case errors.Is(err, relation.ErrSelf):
		return bizError(codes.InvalidArgument, c.self)
	case errors.Is(err, relation.ErrDuplicate):
		return bizError(codes.AlreadyExists, c.duplicate)
	case errors.Is(err, relation.ErrNotFound):
		return bizError(codes.NotFound, c.notFound)
	default:
		return bizError(codes.FailedPrecondition, c.invalid)
	}
}

// transitionOutcome 指标上的结果标签
func transitionOutcome(err error) string {
	if err == nil {
		return "ok"
	}
	st, ok := status.FromError(err)
	if !ok {
		return "error"
	}
	switch st.Code() {
	case codes.Internal:
		return "error"
	case codes.Aborted:
		return "conflict"
	default:
		return "rejected"
	}
}

// isNotFound 仓储层未找到
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrRecordNotFound)
}
