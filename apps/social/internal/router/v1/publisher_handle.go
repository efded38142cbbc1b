package v1

import (
	"github.com/leyanessantiago/activate-api/apps/social/internal/dto"
	"github.com/leyanessantiago/activate-api/apps/social/internal/feed"
	"github.com/leyanessantiago/activate-api/apps/social/internal/relation"
	"github.com/leyanessantiago/activate-api/apps/social/internal/service"
	"github.com/leyanessantiago/activate-api/apps/social/internal/utils"
	"github.com/leyanessantiago/activate-api/consts"
	"github.com/leyanessantiago/activate-api/pkg/ctxmeta"
	"github.com/leyanessantiago/activate-api/pkg/result"

	"github.com/gin-gonic/gin"
)

var followOps = map[relation.Op]bool{
	relation.OpFollow:  true,
	relation.OpMute:    true,
	relation.OpUnmute:  true,
	relation.OpBlock:   true,
	relation.OpUnblock: true,
	relation.OpRemove:  true,
}

// PublisherHandler 主办方关注处理器
type PublisherHandler struct {
	followService  service.FollowService
	profileService service.ProfileService
	feedService    service.FeedService
	urls           feed.URLResolver
}

// NewPublisherHandler 创建主办方处理器
func NewPublisherHandler(followService service.FollowService, profileService service.ProfileService, feedService service.FeedService, urls feed.URLResolver) *PublisherHandler {
	return &PublisherHandler{
		followService:  followService,
		profileService: profileService,
		feedService:    feedService,
		urls:           urls,
	}
}

// Apply 关注操作
// @Summary 关注操作
// @Description op: follow/mute/unmute/block/unblock/remove
// @Tags 主办方接口
// @Produce json
// @Param uuid path string true "主办方UUID"
// @Param op path string true "操作"
// @Success 200 {object} dto.RelationStatusResponse
// @Router /api/v1/publishers/{uuid}/{op} [post]
func (h *PublisherHandler) Apply(c *gin.Context) {
	ctx := ctxmeta.FromGin(c)

	op, ok := relation.ParseOp(c.Param("op"))
	if !ok || !followOps[op] {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	status, err := h.followService.Apply(ctx, op, c.Param("uuid"))
	if err != nil {
		utils.FailWithServiceError(ctx, c, err, "关注操作失败")
		return
	}

	result.Success(c, &dto.RelationStatusResponse{
		Status:     status.String(),
		StatusCode: int8(status),
	})
}

// ListPublishers 我关注的主办方
// @Router /api/v1/publishers [get]
func (h *PublisherHandler) ListPublishers(c *gin.Context) {
	ctx := ctxmeta.FromGin(c)

	items, err := h.followService.ListPublishers(ctx)
	if err != nil {
		utils.FailWithServiceError(ctx, c, err, "获取关注列表失败")
		return
	}
	result.Success(c, &dto.FollowerListResponse{Items: dto.ConvertFollowerItems(ctx, h.urls, items)})
}

// ListFollowers 关注我的用户（主办方使用）
// @Router /api/v1/followers [get]
func (h *PublisherHandler) ListFollowers(c *gin.Context) {
	ctx := ctxmeta.FromGin(c)

	items, err := h.followService.ListFollowers(ctx)
	if err != nil {
		utils.FailWithServiceError(ctx, c, err, "获取关注者列表失败")
		return
	}
	result.Success(c, &dto.FollowerListResponse{Items: dto.ConvertFollowerItems(ctx, h.urls, items)})
}

// GetProfile 主办方主页
// @Router /api/v1/publishers/{uuid} [get]
func (h *PublisherHandler) GetProfile(c *gin.Context) {
	ctx := ctxmeta.FromGin(c)

	profile, err := h.profileService.GetPublisherProfile(ctx, c.Param("uuid"))
	if err != nil {
		utils.FailWithServiceError(ctx, c, err, "获取主办方主页失败")
		return
	}
	result.Success(c, &dto.PublisherProfileResponse{
		User:           dto.ConvertUser(ctx, h.urls, profile.User),
		FollowersCount: profile.FollowersCount,
		Status:         profile.Status.String(),
		StatusCode:     int8(profile.Status),
	})
}

// ListEvents 主办方尚未开始的活动
// @Router /api/v1/publishers/{uuid}/events [get]
func (h *PublisherHandler) ListEvents(c *gin.Context) {
	ctx := ctxmeta.FromGin(c)

	events, err := h.feedService.PublisherEvents(ctx, c.Param("uuid"))
	if err != nil {
		utils.FailWithServiceError(ctx, c, err, "获取主办方活动失败")
		return
	}
	result.Success(c, &dto.EventListResponse{Items: dto.ConvertEvents(events)})
}
