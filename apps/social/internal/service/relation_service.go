package service

import (
	"context"
	"errors"

	"github.com/leyanessantiago/activate-api/apps/social/internal/feed"
	"github.com/leyanessantiago/activate-api/apps/social/internal/relation"
	"github.com/leyanessantiago/activate-api/apps/social/internal/repository"
	"github.com/leyanessantiago/activate-api/consts"
	"github.com/leyanessantiago/activate-api/model"
	"github.com/leyanessantiago/activate-api/pkg/logger"
	"github.com/leyanessantiago/activate-api/pkg/metrics"

	"google.golang.org/grpc/codes"
)

// relationServiceImpl 好友关系服务实现
type relationServiceImpl struct {
	relationshipRepo repository.IRelationshipRepository
	userRepo         repository.IUserRepository
	graph            *graphLoader
	recorder         ActivityRecorder
}

// NewRelationService 创建好友关系服务实例
func NewRelationService(
	relationshipRepo repository.IRelationshipRepository,
	followerRepo repository.IFollowerRepository,
	userRepo repository.IUserRepository,
	recorder ActivityRecorder,
) RelationService {
	return &relationServiceImpl{
		relationshipRepo: relationshipRepo,
		userRepo:         userRepo,
		graph:            newGraphLoader(relationshipRepo, followerRepo, nil),
		recorder:         recorder,
	}
}

// Apply 执行好友关系操作
// 业务流程：
//  1. 校验对方是存在的消费者
//  2. 读取当前关系边，交给状态机校验并计算写操作
//  3. 按计划写库（条件写，读到的旧行被并发修改时失败）
//  4. 成功后记录动态（send/accept）
//
// 错误码映射：
//   - codes.InvalidArgument: 对自己操作
//   - codes.NotFound: 对方不存在 / 关系不存在
//   - codes.AlreadyExists: 重复发起申请
//   - codes.FailedPrecondition: 当前状态不允许该操作
//   - codes.Aborted: 并发修改
func (s *relationServiceImpl) Apply(ctx context.Context, op relation.Op, other string) (st relation.Status, err error) {
	defer func() { metrics.RecordTransition("friend", op.String(), transitionOutcome(err)) }()

	me, err := currentUser(ctx)
	if err != nil {
		return relation.Unrelated, err
	}
	if me == other {
		return relation.Unrelated, planError(relation.ErrSelf, friendCodes)
	}

	// 1. 对方必须是消费者
	target, err := s.userRepo.GetByUUID(ctx, other)
	if err != nil {
		if isNotFound(err) {
			return relation.Unrelated, bizError(codes.NotFound, consts.CodeUserNotFound)
		}
		return relation.Unrelated, internalError(ctx, "查询用户失败", err)
	}
	if target.Role != model.UserRoleConsumer {
		return relation.Unrelated, bizError(codes.NotFound, consts.CodeUserNotFound)
	}

	// 2. 读取当前关系边
	edge, err := s.relationshipRepo.FindEdge(ctx, me, other)
	if err != nil {
		if !isNotFound(err) {
			return relation.Unrelated, internalError(ctx, "查询好友关系失败", err)
		}
		edge = nil
	}

	plan, err := relation.PlanFriend(op, edge, me, other)
	if err != nil {
		return relation.ViewerStatus(edge, me), planError(err, friendCodes)
	}

	// 3. 写库
	if err := s.write(ctx, edge, plan); err != nil {
		return relation.ViewerStatus(edge, me), err
	}

	logger.Info(ctx, "好友关系变更",
		logger.String("op", op.String()),
		logger.String("other", other),
		logger.String("action", plan.Action.String()),
	)

	// 4. 记录动态
	if plan.Activity != 0 {
		s.recorder.Record(ctx, ActivityInput{Creator: me, Receiver: other, Type: plan.Activity})
	}

	if plan.Action == relation.ActionDelete {
		return relation.Unrelated, nil
	}
	return relation.ViewerStatus(&plan.Next, me), nil
}

func (s *relationServiceImpl) write(ctx context.Context, edge *model.Relationship, plan relation.FriendPlan) error {
	var err error
	switch plan.Action {
	case relation.ActionCreate:
		next := plan.Next
		err = s.relationshipRepo.CreateEdge(ctx, &next)
	case relation.ActionUpdate:
		err = s.relationshipRepo.UpdateEdge(ctx, edge, plan.Next)
	case relation.ActionDelete:
		err = s.relationshipRepo.DeleteEdge(ctx, edge)
	}

	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrDuplicateKey):
		// 并发的另一次发起申请先插入了
		return bizError(codes.AlreadyExists, consts.CodeRelationExists)
	case errors.Is(err, repository.ErrStaleEdge):
		return bizError(codes.Aborted, consts.CodeRelationConcurrent)
	default:
		return internalError(ctx, "写入好友关系失败", err)
	}
}

// ListFriends 我的好友
func (s *relationServiceImpl) ListFriends(ctx context.Context) ([]FriendItem, error) {
	me, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	edges, err := s.relationshipRepo.FindEdgesInvolving(ctx, me, model.RelationshipAccepted, model.RelationshipMuted)
	if err != nil {
		return nil, internalError(ctx, "查询好友列表失败", err)
	}
	return s.itemsFor(ctx, me, edges)
}

// ListPendingRequests 等待我处理的好友申请
func (s *relationServiceImpl) ListPendingRequests(ctx context.Context) ([]FriendItem, error) {
	me, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	edges, err := s.relationshipRepo.FindEdgesInvolving(ctx, me, model.RelationshipPending)
	if err != nil {
		return nil, internalError(ctx, "查询好友申请失败", err)
	}
	received := edges[:0:0]
	for _, e := range edges {
		if e.UpdatedBy != me {
			received = append(received, e)
		}
	}
	return s.itemsFor(ctx, me, received)
}

// FriendsOf 他人的好友列表
// 对方拉黑了我时与直接访问主页一致，返回 NotFound；列表中的状态都是我视角的状态
func (s *relationServiceImpl) FriendsOf(ctx context.Context, userUUID string) ([]FriendItem, error) {
	me, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if userUUID == me {
		return s.ListFriends(ctx)
	}

	if _, err := s.userRepo.GetByUUID(ctx, userUUID); err != nil {
		if isNotFound(err) {
			return nil, bizError(codes.NotFound, consts.CodeUserNotFound)
		}
		return nil, internalError(ctx, "查询用户失败", err)
	}

	edge, err := s.relationshipRepo.FindEdge(ctx, me, userUUID)
	if err != nil && !isNotFound(err) {
		return nil, internalError(ctx, "查询好友关系失败", err)
	}
	if !feed.ProfileVisible(relation.ViewerStatus(edge, me)) {
		return nil, bizError(codes.NotFound, consts.CodeUserNotFound)
	}

	v, err := s.graph.load(ctx, me)
	if err != nil {
		return nil, internalError(ctx, "读取社交关系失败", err)
	}

	theirEdges, err := s.relationshipRepo.FindEdgesInvolving(ctx, userUUID, model.RelationshipAccepted, model.RelationshipMuted)
	if err != nil {
		return nil, internalError(ctx, "查询好友列表失败", err)
	}

	ids := make([]string, 0, len(theirEdges))
	for i := range theirEdges {
		id := theirEdges[i].Counterpart(userUUID)
		if id == me || v.Avoid.Contains(id) {
			continue
		}
		ids = append(ids, id)
	}

	// 列表中每个人与我之间的关系
	mine, err := s.relationshipRepo.FindEdgesBetween(ctx, me, ids)
	if err != nil {
		return nil, internalError(ctx, "查询好友关系失败", err)
	}
	mineByID := make(map[string]*model.Relationship, len(mine))
	for i := range mine {
		mineByID[mine[i].Counterpart(me)] = &mine[i]
	}

	users, err := usersByUUID(ctx, s.userRepo, ids)
	if err != nil {
		return nil, internalError(ctx, "查询用户失败", err)
	}

	items := make([]FriendItem, 0, len(ids))
	for _, id := range ids {
		u, ok := users[id]
		if !ok {
			continue
		}
		items = append(items, FriendItem{User: u, Status: relation.ViewerStatus(mineByID[id], me)})
	}
	return items, nil
}

// itemsFor 把 viewer 的关系边转换为列表项，保持关系边的顺序
func (s *relationServiceImpl) itemsFor(ctx context.Context, me string, edges []model.Relationship) ([]FriendItem, error) {
	ids := make([]string, 0, len(edges))
	for i := range edges {
		ids = append(ids, edges[i].Counterpart(me))
	}

	users, err := usersByUUID(ctx, s.userRepo, ids)
	if err != nil {
		return nil, internalError(ctx, "查询用户失败", err)
	}

	items := make([]FriendItem, 0, len(edges))
	for i := range edges {
		u, ok := users[ids[i]]
		if !ok {
			continue
		}
		items = append(items, FriendItem{User: u, Status: relation.ViewerStatus(&edges[i], me)})
	}
	return items, nil
}
