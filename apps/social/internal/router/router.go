package router

import (
	"net/http"
	"time"

	"github.com/leyanessantiago/activate-api/apps/social/internal/middleware"
	"github.com/leyanessantiago/activate-api/apps/social/internal/push"
	v1 "github.com/leyanessantiago/activate-api/apps/social/internal/router/v1"
	"github.com/leyanessantiago/activate-api/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers 各模块处理器（依赖注入）
type Handlers struct {
	Friend    *v1.FriendHandler
	Publisher *v1.PublisherHandler
	Profile   *v1.ProfileHandler
	Feed      *v1.FeedHandler
	Activity  *v1.ActivityHandler
	Push      *push.Handler
}

// Options 路由级配置
type Options struct {
	ServiceName    string
	RequestTimeout time.Duration
	// IPLimiter 为 nil 时不做 IP 限流与黑名单检查
	IPLimiter    *middleware.RateLimiter
	BlacklistKey string
	// UserLimiter 为 nil 时写接口不做用户级限流
	UserLimiter *middleware.RateLimiter
}

// InitRouter 初始化路由
func InitRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()

	r.Use(middleware.GinRecovery(true))
	// 生成 trace_id
	r.Use(util.TraceLogger())
	r.Use(middleware.ClientIPMiddleware())
	r.Use(middleware.GinLogger())
	r.Use(middleware.PrometheusMiddleware(opts.ServiceName))
	r.Use(middleware.CorsMiddleware())

	// 健康检查（无需认证）
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if opts.IPLimiter != nil {
		r.Use(middleware.IPRateLimitMiddleware(opts.IPLimiter, opts.BlacklistKey))
	}

	// 长连接不套用请求超时，token 由 query 参数携带
	if h.Push != nil {
		r.GET("/ws", h.Push.ServeWS)
	}

	api := r.Group("/api/v1")
	api.Use(middleware.TimeoutMiddleware(opts.RequestTimeout))
	api.Use(middleware.JWTAuthMiddleware())

	write := []gin.HandlerFunc{}
	if opts.UserLimiter != nil {
		write = append(write, middleware.UserRateLimitMiddleware(opts.UserLimiter))
	}
	withLimit := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, write...), handler)
	}

	// 好友关系
	friends := api.Group("/friends")
	{
		friends.GET("", h.Friend.ListFriends)
		friends.GET("/requests", h.Friend.ListPendingRequests)
		friends.POST("/:uuid/:op", withLimit(h.Friend.Apply)...)
	}

	// 用户主页
	users := api.Group("/users")
	{
		users.GET("/:id", h.Profile.GetProfile)
		users.GET("/:id/friends", h.Friend.FriendsOf)
	}
	api.GET("/me/stats", h.Profile.MyStats)

	// 主办方
	publishers := api.Group("/publishers")
	{
		publishers.GET("", h.Publisher.ListPublishers)
		publishers.GET("/:uuid", h.Publisher.GetProfile)
		publishers.GET("/:uuid/events", h.Publisher.ListEvents)
		publishers.POST("/:uuid/:op", withLimit(h.Publisher.Apply)...)
	}
	api.GET("/followers", h.Publisher.ListFollowers)

	// 推荐流
	feedGroup := api.Group("/feed")
	{
		feedGroup.GET("/upcoming", h.Feed.Upcoming)
		feedGroup.GET("/upcoming/dates", h.Feed.UpcomingDates)
		feedGroup.GET("/discover", h.Feed.Discover)
	}

	// 活动报名
	events := api.Group("/events")
	{
		events.POST("/:uuid/attend", withLimit(h.Feed.Attend)...)
		events.DELETE("/:uuid/attend", withLimit(h.Feed.Unattend)...)
	}

	// 动态
	activities := api.Group("/activities")
	{
		activities.GET("", h.Activity.List)
		activities.GET("/unread", h.Activity.UnreadCount)
		activities.POST("/seen", h.Activity.MarkAllSeen)
	}

	return r
}
