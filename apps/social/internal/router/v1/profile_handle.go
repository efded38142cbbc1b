package v1

import (
	"github.com/leyanessantiago/activate-api/apps/social/internal/dto"
	"github.com/leyanessantiago/activate-api/apps/social/internal/feed"
	"github.com/leyanessantiago/activate-api/apps/social/internal/service"
	"github.com/leyanessantiago/activate-api/apps/social/internal/utils"
	"github.com/leyanessantiago/activate-api/pkg/ctxmeta"
	"github.com/leyanessantiago/activate-api/pkg/result"

	"github.com/gin-gonic/gin"
)

// ProfileHandler 用户主页处理器
type ProfileHandler struct {
	profileService service.ProfileService
	urls           feed.URLResolver
}

// NewProfileHandler 创建用户主页处理器
func NewProfileHandler(profileService service.ProfileService, urls feed.URLResolver) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		urls:           urls,
	}
}

// GetProfile 他人主页，id 可以是 uuid 或 @handle
// @Summary 他人主页
// @Tags 用户接口
// @Produce json
// @Param id path string true "用户UUID或handle"
// @Success 200 {object} dto.ProfileResponse
// @Router /api/v1/users/{id} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	ctx := ctxmeta.FromGin(c)

	profile, err := h.profileService.GetProfile(ctx, c.Param("id"))
	if err != nil {
		utils.FailWithServiceError(ctx, c, err, "获取用户主页失败")
		return
	}
	result.Success(c, &dto.ProfileResponse{
		User:       dto.ConvertUser(ctx, h.urls, profile.User),
		Status:     profile.Status.String(),
		StatusCode: int8(profile.Status),
	})
}

// MyStats 我的好友数与关注数
// @Router /api/v1/me/stats [get]
func (h *ProfileHandler) MyStats(c *gin.Context) {
	ctx := ctxmeta.FromGin(c)

	stats, err := h.profileService.MyStats(ctx)
	if err != nil {
		utils.FailWithServiceError(ctx, c, err, "获取统计信息失败")
		return
	}
	result.Success(c, &dto.StatsResponse{Friends: stats.Friends, Following: stats.Following})
}
