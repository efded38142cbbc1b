package service

import (
	"context"
	"errors"

	"github.com/leyanessantiago/activate-api/apps/social/internal/repository"
	"github.com/leyanessantiago/activate-api/consts"
	"github.com/leyanessantiago/activate-api/pkg/logger"
	"github.com/leyanessantiago/activate-api/pkg/metrics"

	"google.golang.org/grpc/codes"
)

// attendanceServiceImpl 活动报名服务实现
type attendanceServiceImpl struct {
	eventRepo repository.IEventRepository
}

// NewAttendanceService 创建报名服务实例
func NewAttendanceService(eventRepo repository.IEventRepository) AttendanceService {
	return &attendanceServiceImpl{eventRepo: eventRepo}
}

func (s *attendanceServiceImpl) ensureEvent(ctx context.Context, eventUUID string) error {
	if _, err := s.eventRepo.GetByUUID(ctx, eventUUID); err != nil {
		if isNotFound(err) {
			return bizError(codes.NotFound, consts.CodeEventNotFound)
		}
		return internalError(ctx, "查询活动失败", err)
	}
	return nil
}

// FollowEvent 报名活动，依赖唯一索引拒绝重复报名
func (s *attendanceServiceImpl) FollowEvent(ctx context.Context, eventUUID string) (err error) {
	defer func() { metrics.RecordTransition("event", "follow", transitionOutcome(err)) }()

	me, err := currentUser(ctx)
	if err != nil {
		return err
	}
	if err := s.ensureEvent(ctx, eventUUID); err != nil {
		return err
	}

	if err := s.eventRepo.CreateFollower(ctx, eventUUID, me); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return bizError(codes.FailedPrecondition, consts.CodeAlreadyGoing)
		}
		return internalError(ctx, "报名活动失败", err)
	}

	logger.Info(ctx, "报名活动", logger.String("event_uuid", eventUUID))
	return nil
}

// UnfollowEvent 取消报名
func (s *attendanceServiceImpl) UnfollowEvent(ctx context.Context, eventUUID string) (err error) {
	defer func() { metrics.RecordTransition("event", "unfollow", transitionOutcome(err)) }()

	me, err := currentUser(ctx)
	if err != nil {
		return err
	}
	if err := s.ensureEvent(ctx, eventUUID); err != nil {
		return err
	}

	if err := s.eventRepo.DeleteFollower(ctx, eventUUID, me); err != nil {
		if isNotFound(err) {
			return bizError(codes.FailedPrecondition, consts.CodeNotGoing)
		}
		return internalError(ctx, "取消报名失败", err)
	}

	logger.Info(ctx, "取消报名活动", logger.String("event_uuid", eventUUID))
	return nil
}
