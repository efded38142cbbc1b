package v1

import (
	"github.com/leyanessantiago/activate-api/apps/social/internal/dto"
	"github.com/leyanessantiago/activate-api/apps/social/internal/feed"
	"github.com/leyanessantiago/activate-api/apps/social/internal/service"
	"github.com/leyanessantiago/activate-api/apps/social/internal/utils"
	"github.com/leyanessantiago/activate-api/consts"
	"github.com/leyanessantiago/activate-api/pkg/ctxmeta"
	"github.com/leyanessantiago/activate-api/pkg/result"

	"github.com/gin-gonic/gin"
)

const defaultActivityLimit = 50

// ActivityHandler 动态处理器
type ActivityHandler struct {
	activityService service.ActivityService
	urls            feed.URLResolver
}

// NewActivityHandler 创建动态处理器
func NewActivityHandler(activityService service.ActivityService, urls feed.URLResolver) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		urls:            urls,
	}
}

// List 我的未读动态
// @Router /api/v1/activities [get]
func (h *ActivityHandler) List(c *gin.Context) {
	ctx := ctxmeta.FromGin(c)

	var req dto.ActivityListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}
	if req.Limit == 0 {
		req.Limit = defaultActivityLimit
	}

	items, err := h.activityService.ListMine(ctx, req.Limit)
	if err != nil {
		utils.FailWithServiceError(ctx, c, err, "获取动态列表失败")
		return
	}
	result.Success(c, &dto.ActivityListResponse{Items: dto.ConvertActivities(ctx, h.urls, items)})
}

// UnreadCount 未读动态数
// @Router /api/v1/activities/unread [get]
func (h *ActivityHandler) UnreadCount(c *gin.Context) {
	ctx := ctxmeta.FromGin(c)

	count, err := h.activityService.UnreadCount(ctx)
	if err != nil {
		utils.FailWithServiceError(ctx, c, err, "获取未读动态数失败")
		return
	}
	result.Success(c, &dto.UnreadCountResponse{Count: count})
}

// MarkAllSeen 全部标为已读
// @Router /api/v1/activities/seen [post]
func (h *ActivityHandler) MarkAllSeen(c *gin.Context) {
	ctx := ctxmeta.FromGin(c)

	marked, err := h.activityService.MarkAllSeen(ctx)
	if err != nil {
		utils.FailWithServiceError(ctx, c, err, "标记动态已读失败")
		return
	}
	result.Success(c, &dto.MarkSeenResponse{Marked: marked})
}
