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

// friendOps 好友关系允许的操作
var friendOps = map[relation.Op]bool{
	relation.OpSend:    true,
	relation.OpAccept:  true,
	relation.OpDecline: true,
	relation.OpMute:    true,
	relation.OpUnmute:  true,
	relation.OpBlock:   true,
	relation.OpUnblock: true,
	relation.OpRemove:  true,
}

// FriendHandler 好友关系处理器
type FriendHandler struct {
	relationService service.RelationService
	urls            feed.URLResolver
}

// NewFriendHandler 创建好友关系处理器
func NewFriendHandler(relationService service.RelationService, urls feed.URLResolver) *FriendHandler {
	return &FriendHandler{
		relationService: relationService,
		urls:            urls,
	}
}

// Apply 好友关系操作
// @Summary 好友关系操作
// @Description op: send/accept/decline/mute/unmute/block/unblock/remove
// @Tags 好友接口
// @Produce json
// @Param uuid path string true "对方UUID"
// @Param op path string true "操作"
// @Success 200 {object} dto.RelationStatusResponse
// @Router /api/v1/friends/{uuid}/{op} [post]
func (h *FriendHandler) Apply(c *gin.Context) {
	ctx := ctxmeta.FromGin(c)

	op, ok := relation.ParseOp(c.Param("op"))
	if !ok || !friendOps[op] {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	status, err := h.relationService.Apply(ctx, op, c.Param("uuid"))
	if err != nil {
		utils.FailWithServiceError(ctx, c, err, "好友关系操作失败")
		return
	}

	result.Success(c, &dto.RelationStatusResponse{
		Status:     status.String(),
		StatusCode: int8(status),
	})
}

// ListFriends 我的好友列表
// @Router /api/v1/friends [get]
func (h *FriendHandler) ListFriends(c *gin.Context) {
	ctx := ctxmeta.FromGin(c)

	items, err := h.relationService.ListFriends(ctx)
	if err != nil {
		utils.FailWithServiceError(ctx, c, err, "获取好友列表失败")
		return
	}
	result.Success(c, &dto.FriendListResponse{Items: dto.ConvertFriendItems(ctx, h.urls, items)})
}

// ListPendingRequests 待我处理的好友申请
// @Router /api/v1/friends/requests [get]
func (h *FriendHandler) ListPendingRequests(c *gin.Context) {
	ctx := ctxmeta.FromGin(c)

	items, err := h.relationService.ListPendingRequests(ctx)
	if err != nil {
		utils.FailWithServiceError(ctx, c, err, "获取好友申请列表失败")
		return
	}
	result.Success(c, &dto.FriendListResponse{Items: dto.ConvertFriendItems(ctx, h.urls, items)})
}

// FriendsOf 他人的好友列表
// @Router /api/v1/users/{id}/friends [get]
func (h *FriendHandler) FriendsOf(c *gin.Context) {
	ctx := ctxmeta.FromGin(c)

	items, err := h.relationService.FriendsOf(ctx, c.Param("id"))
	if err != nil {
		utils.FailWithServiceError(ctx, c, err, "获取他人好友列表失败")
		return
	}
	result.Success(c, &dto.FriendListResponse{Items: dto.ConvertFriendItems(ctx, h.urls, items)})
}
