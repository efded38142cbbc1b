package v1

import (
	"time"

	"github.com/leyanessantiago/activate-api/apps/social/internal/dto"
	"github.com/leyanessantiago/activate-api/apps/social/internal/service"
	"github.com/leyanessantiago/activate-api/apps/social/internal/utils"
	"github.com/leyanessantiago/activate-api/consts"
	"github.com/leyanessantiago/activate-api/pkg/ctxmeta"
	"github.com/leyanessantiago/activate-api/pkg/result"

	"github.com/gin-gonic/gin"
)

// FeedHandler 推荐流处理器
type FeedHandler struct {
	feedService       service.FeedService
	attendanceService service.AttendanceService
}

// NewFeedHandler 创建推荐流处理器
func NewFeedHandler(feedService service.FeedService, attendanceService service.AttendanceService) *FeedHandler {
	return &FeedHandler{
		feedService:       feedService,
		attendanceService: attendanceService,
	}
}

// bindFeedRequest 绑定分页参数并解析日期（本地时区零点），失败时已写响应
func bindFeedRequest(c *gin.Context) (*dto.FeedRequest, *time.Time, bool) {
	var req dto.FeedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		result.Fail(c, nil, consts.CodeParamError)
		return nil, nil, false
	}
	if req.Date == "" {
		return &req, nil, true
	}

	day, err := time.ParseInLocation(dto.DateLayout, req.Date, time.Local)
	if err != nil {
		result.Fail(c, nil, consts.CodeInvalidDate)
		return nil, nil, false
	}
	return &req, &day, true
}

// Upcoming 我参加的活动
// @Summary 我参加的活动
// @Tags 推荐流接口
// @Produce json
// @Param date query string false "只看某一天(YYYY-MM-DD)"
// @Param page query int false "页码(默认1)"
// @Param limit query int false "每页数量(默认20)"
// @Success 200 {object} dto.EventPageResponse
// @Router /api/v1/feed/upcoming [get]
func (h *FeedHandler) Upcoming(c *gin.Context) {
	ctx := ctxmeta.FromGin(c)

	req, day, ok := bindFeedRequest(c)
	if !ok {
		return
	}

	page, err := h.feedService.Upcoming(ctx, day, req.Page, req.Limit)
	if err != nil {
		utils.FailWithServiceError(ctx, c, err, "获取已报名活动失败")
		return
	}
	result.Success(c, dto.ConvertEventPage(page))
}

// Discover 推荐活动
// @Summary 推荐活动
// @Tags 推荐流接口
// @Produce json
// @Param date query string false "起始日期(YYYY-MM-DD)，默认今天"
// @Param page query int false "页码(默认1)"
// @Param limit query int false "每页数量(默认20)"
// @Success 200 {object} dto.EventPageResponse
// @Router /api/v1/feed/discover [get]
func (h *FeedHandler) Discover(c *gin.Context) {
	ctx := ctxmeta.FromGin(c)

	req, from, ok := bindFeedRequest(c)
	if !ok {
		return
	}

	page, err := h.feedService.Discover(ctx, from, req.Page, req.Limit)
	if err != nil {
		utils.FailWithServiceError(ctx, c, err, "获取推荐活动失败")
		return
	}
	result.Success(c, dto.ConvertEventPage(page))
}

// UpcomingDates 我参加的活动所在日期
// @Router /api/v1/feed/upcoming/dates [get]
func (h *FeedHandler) UpcomingDates(c *gin.Context) {
	ctx := ctxmeta.FromGin(c)

	dates, err := h.feedService.UpcomingDates(ctx)
	if err != nil {
		utils.FailWithServiceError(ctx, c, err, "获取活动日期失败")
		return
	}
	result.Success(c, &dto.UpcomingDatesResponse{Dates: dto.ConvertDates(dates)})
}

// Attend 报名活动
// @Router /api/v1/events/{uuid}/attend [post]
func (h *FeedHandler) Attend(c *gin.Context) {
	ctx := ctxmeta.FromGin(c)

	if err := h.attendanceService.FollowEvent(ctx, c.Param("uuid")); err != nil {
		utils.FailWithServiceError(ctx, c, err, "报名活动失败")
		return
	}
	result.Success(c, nil)
}

// Unattend 取消报名
// @Router /api/v1/events/{uuid}/attend [delete]
func (h *FeedHandler) Unattend(c *gin.Context) {
	ctx := ctxmeta.FromGin(c)

	if err := h.attendanceService.UnfollowEvent(ctx, c.Param("uuid")); err != nil {
		utils.FailWithServiceError(ctx, c, err, "取消报名失败")
		return
	}
	result.Success(c, nil)
}
