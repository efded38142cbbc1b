package service

import (
	"context"
	"strings"

	"github.com/leyanessantiago/activate-api/apps/social/internal/feed"
	"github.com/leyanessantiago/activate-api/apps/social/internal/relation"
	"github.com/leyanessantiago/activate-api/apps/social/internal/repository"
	"github.com/leyanessantiago/activate-api/consts"
	"github.com/leyanessantiago/activate-api/model"

	"google.golang.org/grpc/codes"
)

// profileServiceImpl 主页服务实现
type profileServiceImpl struct {
	userRepo         repository.IUserRepository
	relationshipRepo repository.IRelationshipRepository
	followerRepo     repository.IFollowerRepository
}

// NewProfileService 创建主页服务实例
func NewProfileService(
	userRepo repository.IUserRepository,
	relationshipRepo repository.IRelationshipRepository,
	followerRepo repository.IFollowerRepository,
) ProfileService {
	return &profileServiceImpl{
		userRepo:         userRepo,
		relationshipRepo: relationshipRepo,
		followerRepo:     followerRepo,
	}
}

// findUser 先按 uuid 查，查不到再按 handle 查（允许带 @ 前缀）
func (s *profileServiceImpl) findUser(ctx context.Context, idOrHandle string) (*model.User, error) {
	user, err := s.userRepo.GetByUUID(ctx, idOrHandle)
	if err == nil {
		return user, nil
	}
	if !isNotFound(err) {
		return nil, internalError(ctx, "查询用户失败", err)
	}

	user, err = s.userRepo.GetByHandle(ctx, strings.TrimPrefix(idOrHandle, "@"))
	if err != nil {
		if isNotFound(err) {
			return nil, bizError(codes.NotFound, consts.CodeUserNotFound)
		}
		return nil, internalError(ctx, "查询用户失败", err)
	}
	return user, nil
}

// GetProfile 他人主页
// 拉黑不对称：对方拉黑我时主页不可见（NotFound），我拉黑对方时仍可查看
func (s *profileServiceImpl) GetProfile(ctx context.Context, idOrHandle string) (*Profile, error) {
	me, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.findUser(ctx, idOrHandle)
	if err != nil {
		return nil, err
	}
	if user.Uuid == me {
		return &Profile{User: user, Status: relation.Unrelated}, nil
	}

	edge, err := s.relationshipRepo.FindEdge(ctx, me, user.Uuid)
	if err != nil && !isNotFound(err) {
		return nil, internalError(ctx, "查询好友关系失败", err)
	}

	st := relation.ViewerStatus(edge, me)
	if !feed.ProfileVisible(st) {
		return nil, bizError(codes.NotFound, consts.CodeUserNotFound)
	}
	return &Profile{User: user, Status: st}, nil
}

// GetPublisherProfile 主办方主页
func (s *profileServiceImpl) GetPublisherProfile(ctx context.Context, publisher string) (*PublisherProfile, error) {
	me, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUUID(ctx, publisher)
	if err != nil {
		if isNotFound(err) {
			return nil, bizError(codes.NotFound, consts.CodePublisherNotFound)
		}
		return nil, internalError(ctx, "查询主办方失败", err)
	}
	if user.Role != model.UserRolePublisher {
		return nil, bizError(codes.NotFound, consts.CodePublisherNotFound)
	}

	followers, err := s.followerRepo.CountByPublisher(ctx, publisher, model.FollowerFollowing, model.FollowerMuted)
	if err != nil {
		return nil, internalError(ctx, "统计关注者失败", err)
	}

	edge, err := s.followerRepo.FindEdge(ctx, me, publisher)
	if err != nil && !isNotFound(err) {
		return nil, internalError(ctx, "查询关注关系失败", err)
	}

	return &PublisherProfile{
		User:           user,
		FollowersCount: followers,
		Status:         relation.ViewerFollowerStatus(edge),
	}, nil
}

// MyStats 我的好友数（含免打扰）与关注的主办方数（含免打扰）
func (s *profileServiceImpl) MyStats(ctx context.Context) (*Stats, error) {
	me, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	friends, err := s.relationshipRepo.CountEdges(ctx, me, model.RelationshipAccepted, model.RelationshipMuted)
	if err != nil {
		return nil, internalError(ctx, "统计好友数失败", err)
	}
	following, err := s.followerRepo.CountByConsumer(ctx, me, model.FollowerFollowing, model.FollowerMuted)
	if err != nil {
		return nil, internalError(ctx, "统计关注数失败", err)
	}
	return &Stats{Friends: friends, Following: following}, nil
}
