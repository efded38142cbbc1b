package service

import (
	"context"
	"fmt"

	"github.com/leyanessantiago/activate-api/apps/social/internal/feed"
	"github.com/leyanessantiago/activate-api/apps/social/internal/repository"
	"github.com/leyanessantiago/activate-api/model"
)

// graphLoader 每个请求读取一次 viewer 的社交图快照（好友、屏蔽集合、兴趣）
// 屏蔽集合不做缓存：拉黑后下一次请求立即生效
type graphLoader struct {
	relationshipRepo repository.IRelationshipRepository
	followerRepo     repository.IFollowerRepository
	interestRepo     repository.IInterestRepository
}

func newGraphLoader(
	relationshipRepo repository.IRelationshipRepository,
	followerRepo repository.IFollowerRepository,
	interestRepo repository.IInterestRepository,
) *graphLoader {
	return &graphLoader{
		relationshipRepo: relationshipRepo,
		followerRepo:     followerRepo,
		interestRepo:     interestRepo,
	}
}

// load 读取好友与屏蔽集合
func (g *graphLoader) load(ctx context.Context, viewer string) (feed.Viewer, error) {
	edges, err := g.relationshipRepo.FindEdgesInvolving(ctx, viewer,
		model.RelationshipAccepted, model.RelationshipMuted, model.RelationshipBlocked)
	if err != nil {
		return feed.Viewer{}, fmt.Errorf("load relationships: %w", err)
	}

	blockedPublishers, err := g.followerRepo.ListByConsumer(ctx, viewer, model.FollowerBlocked)
	if err != nil {
		return feed.Viewer{}, fmt.Errorf("load blocked publishers: %w", err)
	}

	return feed.Viewer{
		ID:      viewer,
		Friends: feed.BuildFriendSet(viewer, edges),
		Avoid:   feed.BuildAvoidSet(viewer, edges, blockedPublishers),
	}, nil
}

// loadWithInterests 额外读取兴趣权重（推荐流使用）
func (g *graphLoader) loadWithInterests(ctx context.Context, viewer string) (feed.Viewer, error) {
	v, err := g.load(ctx, viewer)
	if err != nil {
		return v, err
	}

	interests, err := g.interestRepo.ListByUser(ctx, viewer)
	if err != nil {
		return v, fmt.Errorf("load interests: %w", err)
	}
	v.Relevance = make(map[int64]float64, len(interests))
	for _, it := range interests {
		v.Relevance[it.CategoryId] = it.Relevance
	}
	return v, nil
}

// usersByUUID 批量查询用户并按 uuid 建索引
func usersByUUID(ctx context.Context, repo repository.IUserRepository, uuids []string) (map[string]*model.User, error) {
	users, err := repo.BatchGetByUUIDs(ctx, uuids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*model.User, len(users))
	for _, u := range users {
		out[u.Uuid] = u
	}
	return out, nil
}
