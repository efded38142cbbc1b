package service

import (
	"context"
	"time"

	"github.com/leyanessantiago/activate-api/apps/social/internal/repository"
	"github.com/leyanessantiago/activate-api/apps/social/mq"
	"github.com/leyanessantiago/activate-api/model"
	"github.com/leyanessantiago/activate-api/pkg/async"
	"github.com/leyanessantiago/activate-api/pkg/logger"
	"github.com/leyanessantiago/activate-api/pkg/metrics"
	"github.com/leyanessantiago/activate-api/pkg/util"
)

// activityServiceImpl 动态服务实现
type activityServiceImpl struct {
	activityRepo repository.IActivityRepository
	userRepo     repository.IUserRepository
	eventRepo    repository.IEventRepository
	graph        *graphLoader
	publisher    mq.ActivityPublisher
	now          func() time.Time
}

// NewActivityService 创建动态服务实例
func NewActivityService(
	activityRepo repository.IActivityRepository,
	userRepo repository.IUserRepository,
	eventRepo repository.IEventRepository,
	relationshipRepo repository.IRelationshipRepository,
	followerRepo repository.IFollowerRepository,
	publisher mq.ActivityPublisher,
) ActivityService {
	if publisher == nil {
		publisher = mq.NopPublisher{}
	}
	return &activityServiceImpl{
		activityRepo: activityRepo,
		userRepo:     userRepo,
		eventRepo:    eventRepo,
		graph:        newGraphLoader(relationshipRepo, followerRepo, nil),
		publisher:    publisher,
		now:          time.Now,
	}
}

// Record 记录一条动态
// 在关系变更成功之后调用，与变更本身不在同一事务：
//  1. 同步落库（失败只记日志，不影响已经成功的变更）
//  2. 异步更新未读数并投递 Kafka，由推送服务转发给在线的接收者
func (s *activityServiceImpl) Record(ctx context.Context, in ActivityInput) {
	activity := &model.Activity{
		Id:           util.NextID(),
		CreatorUuid:  in.Creator,
		ReceiverUuid: in.Receiver,
		Type:         in.Type,
		SentAt:       s.now(),
	}
	if in.EventUUID != "" {
		activity.EventUuid = &in.EventUUID
	}
	if in.CommentUUID != "" {
		activity.CommentUuid = &in.CommentUUID
	}

	if err := s.activityRepo.Create(ctx, activity); err != nil {
		metrics.RecordActivity("store", "error")
		logger.Error(ctx, "写入动态失败",
			logger.String("creator", in.Creator),
			logger.String("receiver", in.Receiver),
			logger.Int("type", int(in.Type)),
			logger.ErrorField("error", err),
		)
		return
	}
	metrics.RecordActivity("store", "ok")

	async.RunSafe(ctx, func(ctx context.Context) {
		if err := s.activityRepo.IncrUnread(ctx, activity.ReceiverUuid); err != nil {
			repository.LogRedisError(ctx, err)
		}

		if err := s.publisher.PublishActivity(ctx, mq.BuildActivityMessage(activity)); err != nil {
			metrics.RecordActivity("publish", "error")
			logger.Warn(ctx, "投递动态消息失败",
				logger.Int64("activity_id", activity.Id),
				logger.ErrorField("error", err),
			)
			return
		}
		metrics.RecordActivity("publish", "ok")
	}, 0)
}

// ListMine 我的未读动态，屏蔽集合中的用户发出的动态不展示
func (s *activityServiceImpl) ListMine(ctx context.Context, limit int) ([]ActivityItem, error) {
	me, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	activities, err := s.activityRepo.ListUnseen(ctx, me, limit)
	if err != nil {
		return nil, internalError(ctx, "查询动态失败", err)
	}
	if len(activities) == 0 {
		return []ActivityItem{}, nil
	}

	v, err := s.graph.load(ctx, me)
	if err != nil {
		return nil, internalError(ctx, "读取社交关系失败", err)
	}

	creatorIDs := make([]string, 0, len(activities))
	eventIDs := make([]string, 0)
	for _, a := range activities {
		creatorIDs = append(creatorIDs, a.CreatorUuid)
		if a.EventUuid != nil {
			eventIDs = append(eventIDs, *a.EventUuid)
		}
	}

	creators, err := usersByUUID(ctx, s.userRepo, creatorIDs)
	if err != nil {
		return nil, internalError(ctx, "查询动态发起人失败", err)
	}
	events, err := s.eventRepo.BatchGetByUUIDs(ctx, eventIDs)
	if err != nil {
		return nil, internalError(ctx, "查询动态关联活动失败", err)
	}
	eventByID := make(map[string]*model.Event, len(events))
	for _, ev := range events {
		eventByID[ev.Uuid] = ev
	}

	items := make([]ActivityItem, 0, len(activities))
	for _, a := range activities {
		creator, ok := creators[a.CreatorUuid]
		if !ok || v.Avoid.Contains(a.CreatorUuid) {
			continue
		}
		item := ActivityItem{Activity: a, Creator: creator}
		if a.EventUuid != nil {
			item.Event = eventByID[*a.EventUuid]
		}
		items = append(items, item)
	}
	return items, nil
}

// UnreadCount 未读动态数
func (s *activityServiceImpl) UnreadCount(ctx context.Context) (int64, error) {
	me, err := currentUser(ctx)
	if err != nil {
		return 0, err
	}
	n, err := s.activityRepo.GetUnread(ctx, me)
	if err != nil {
		return 0, internalError(ctx, "查询未读动态数失败", err)
	}
	return n, nil
}

// MarkAllSeen 全部标记为已读
func (s *activityServiceImpl) MarkAllSeen(ctx context.Context) (int64, error) {
	me, err := currentUser(ctx)
	if err != nil {
		return 0, err
	}

	n, err := s.activityRepo.MarkAllSeen(ctx, me)
	if err != nil {
		return 0, internalError(ctx, "标记动态已读失败", err)
	}
	if err := s.activityRepo.ResetUnread(ctx, me); err != nil {
		repository.LogRedisError(ctx, err)
	}
	return n, nil
}
