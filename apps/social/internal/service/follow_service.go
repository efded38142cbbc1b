package service

import (
	"context"
	"errors"

	"github.com/leyanessantiago/activate-api/apps/social/internal/relation"
	"github.com/leyanessantiago/activate-api/apps/social/internal/repository"
	"github.com/leyanessantiago/activate-api/consts"
	"github.com/leyanessantiago/activate-api/model"
	"github.com/leyanessantiago/activate-api/pkg/logger"
	"github.com/leyanessantiago/activate-api/pkg/metrics"

	"google.golang.org/grpc/codes"
)

// followServiceImpl 关注主办方服务实现
type followServiceImpl struct {
	followerRepo repository.IFollowerRepository
	userRepo     repository.IUserRepository
	recorder     ActivityRecorder
}

// NewFollowService 创建关注服务实例
func NewFollowService(
	followerRepo repository.IFollowerRepository,
	userRepo repository.IUserRepository,
	recorder ActivityRecorder,
) FollowService {
	return &followServiceImpl{
		followerRepo: followerRepo,
		userRepo:     userRepo,
		recorder:     recorder,
	}
}

// Apply 执行关注操作，流程与好友关系一致，关注成功后给主办方发"新关注者"动态
func (s *followServiceImpl) Apply(ctx context.Context, op relation.Op, publisher string) (st relation.FollowerStatus, err error) {
	defer func() { metrics.RecordTransition("follower", op.String(), transitionOutcome(err)) }()

	me, err := currentUser(ctx)
	if err != nil {
		return relation.FollowerUnrelated, err
	}
	if me == publisher {
		return relation.FollowerUnrelated, planError(relation.ErrSelf, followCodes)
	}

	target, err := s.userRepo.GetByUUID(ctx, publisher)
	if err != nil {
		if isNotFound(err) {
			return relation.FollowerUnrelated, bizError(codes.NotFound, consts.CodePublisherNotFound)
		}
		return relation.FollowerUnrelated, internalError(ctx, "查询主办方失败", err)
	}
	if target.Role != model.UserRolePublisher {
		return relation.FollowerUnrelated, bizError(codes.NotFound, consts.CodePublisherNotFound)
	}

	edge, err := s.followerRepo.FindEdge(ctx, me, publisher)
	if err != nil {
		if !isNotFound(err) {
			return relation.FollowerUnrelated, internalError(ctx, "查询关注关系失败", err)
		}
		edge = nil
	}

	plan, err := relation.PlanFollow(op, edge, me, publisher)
	if err != nil {
		if op == relation.OpFollow && errors.Is(err, relation.ErrInvalidTransition) {
			return relation.ViewerFollowerStatus(edge), bizError(codes.FailedPrecondition, consts.CodeAlreadyFollowing)
		}
		return relation.ViewerFollowerStatus(edge), planError(err, followCodes)
	}

	if err := s.write(ctx, edge, plan); err != nil {
		return relation.ViewerFollowerStatus(edge), err
	}

	logger.Info(ctx, "关注关系变更",
		logger.String("op", op.String()),
		logger.String("publisher", publisher),
		logger.String("action", plan.Action.String()),
	)

	if plan.Activity != 0 {
		s.recorder.Record(ctx, ActivityInput{Creator: me, Receiver: publisher, Type: plan.Activity})
	}

	if plan.Action == relation.ActionDelete {
		return relation.FollowerUnrelated, nil
	}
	return relation.ViewerFollowerStatus(&plan.Next), nil
}

func (s *followServiceImpl) write(ctx context.Context, edge *model.Follower, plan relation.FollowPlan) error {
	var err error
	switch plan.Action {
	case relation.ActionCreate:
		next := plan.Next
		err = s.followerRepo.Create(ctx, &next)
	case relation.ActionUpdate:
		err = s.followerRepo.Update(ctx, edge, plan.Next)
	case relation.ActionDelete:
		err = s.followerRepo.Delete(ctx, edge)
	}

	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrDuplicateKey):
		return bizError(codes.FailedPrecondition, consts.CodeAlreadyFollowing)
	case errors.Is(err, repository.ErrStaleEdge):
		return bizError(codes.Aborted, consts.CodeRelationConcurrent)
	default:
		return internalError(ctx, "写入关注关系失败", err)
	}
}

// ListPublishers 我关注的主办方
func (s *followServiceImpl) ListPublishers(ctx context.Context) ([]PublisherItem, error) {
	me, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	edges, err := s.followerRepo.ListByConsumer(ctx, me, model.FollowerFollowing, model.FollowerMuted)
	if err != nil {
		return nil, internalError(ctx, "查询关注列表失败", err)
	}

	ids := make([]string, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.PublisherUuid)
	}
	return s.items(ctx, edges, ids)
}

// ListFollowers 关注我的消费者
func (s *followServiceImpl) ListFollowers(ctx context.Context) ([]PublisherItem, error) {
	me, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	edges, err := s.followerRepo.ListByPublisher(ctx, me, model.FollowerFollowing, model.FollowerMuted)
	if err != nil {
		return nil, internalError(ctx, "查询关注者列表失败", err)
	}

	ids := make([]string, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.ConsumerUuid)
	}
	return s.items(ctx, edges, ids)
}

// items ids[i] 为 edges[i] 另一端的用户
func (s *followServiceImpl) items(ctx context.Context, edges []model.Follower, ids []string) ([]PublisherItem, error) {
	users, err := usersByUUID(ctx, s.userRepo, ids)
	if err != nil {
		return nil, internalError(ctx, "查询用户失败", err)
	}

	items := make([]PublisherItem, 0, len(edges))
	for i := range edges {
		u, ok := users[ids[i]]
		if !ok {
			continue
		}
		items = append(items, PublisherItem{User: u, Status: relation.ViewerFollowerStatus(&edges[i])})
	}
	return items, nil
}
