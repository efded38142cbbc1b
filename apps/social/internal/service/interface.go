package service

import (
	"context"
	"time"

	"github.com/leyanessantiago/activate-api/apps/social/internal/feed"
	"github.com/leyanessantiago/activate-api/apps/social/internal/relation"
)

// 所有方法的操作人（viewer）都从 ctx 的 user_uuid 中读取

// ==================== 好友关系服务接口 ====================

// RelationService 好友关系服务
// 职责：好友申请与状态迁移、好友列表、待处理申请、他人好友列表
type RelationService interface {
	// Apply 对 other 执行一次好友关系操作，返回操作后 viewer 视角的状态
	// op: send/accept/decline/mute/unmute/block/unblock/remove
	Apply(ctx context.Context, op relation.Op, other string) (relation.Status, error)

	// ListFriends 我的好友（ACCEPTED/MUTED）
	ListFriends(ctx context.Context) ([]FriendItem, error)

	// ListPendingRequests 别人发给我、等待我处理的申请
	ListPendingRequests(ctx context.Context) ([]FriendItem, error)

	// FriendsOf 他人的好友，排除我自己和我的屏蔽集合
	FriendsOf(ctx context.Context, userUUID string) ([]FriendItem, error)
}

// ==================== 关注主办方服务接口 ====================

// FollowService 关注主办方服务
type FollowService interface {
	// Apply 对主办方执行一次关注操作，返回操作后的关注状态
	// op: follow/mute/unmute/block/unblock/remove
	Apply(ctx context.Context, op relation.Op, publisher string) (relation.FollowerStatus, error)

	// ListPublishers 我关注的主办方（不含已拉黑）
	ListPublishers(ctx context.Context) ([]PublisherItem, error)

	// ListFollowers 关注我的消费者（主办方视角，不含拉黑我的）
	ListFollowers(ctx context.Context) ([]PublisherItem, error)
}

// ==================== 主页服务接口 ====================

// ProfileService 主页与统计
type ProfileService interface {
	// GetProfile 按 uuid 或 handle 查询他人主页，被对方拉黑时返回 NotFound
	GetProfile(ctx context.Context, idOrHandle string) (*Profile, error)

	// GetPublisherProfile 主办方主页
	GetPublisherProfile(ctx context.Context, publisher string) (*PublisherProfile, error)

	// MyStats 我的好友数与关注数
	MyStats(ctx context.Context) (*Stats, error)
}

// ==================== 推荐流服务接口 ====================

// FeedService 活动推荐流
type FeedService interface {
	// Upcoming 我参加的、尚未开始的活动，day 非空时只取该自然日
	Upcoming(ctx context.Context, day *time.Time, page, limit int) (*EventPage, error)

	// Discover 按兴趣推荐的活动，from 为空时从今天零点开始
	Discover(ctx context.Context, from *time.Time, page, limit int) (*EventPage, error)

	// UpcomingDates 我参加的活动所在的日期（去重、升序）
	UpcomingDates(ctx context.Context) ([]time.Time, error)

	// PublisherEvents 主办方尚未开始的活动
	PublisherEvents(ctx context.Context, publisher string) ([]feed.EventView, error)
}

// ==================== 报名服务接口 ====================

// AttendanceService 活动报名
type AttendanceService interface {
	// FollowEvent 报名活动，重复报名返回非法迁移
	FollowEvent(ctx context.Context, eventUUID string) error

	// UnfollowEvent 取消报名，未报名返回非法迁移
	UnfollowEvent(ctx context.Context, eventUUID string) error
}

// ==================== 动态服务接口 ====================

// ActivityInput 一条待记录的动态
type ActivityInput struct {
	Creator     string
	Receiver    string
	Type        int8
	EventUUID   string
	CommentUUID string
}

// ActivityRecorder 关系变更成功后记录动态，失败只记日志不回滚变更
type ActivityRecorder interface {
	Record(ctx context.Context, in ActivityInput)
}

// ActivityService 动态服务
type ActivityService interface {
	ActivityRecorder

	// ListMine 我的未读动态
	ListMine(ctx context.Context, limit int) ([]ActivityItem, error)

	// UnreadCount 未读动态数
	UnreadCount(ctx context.Context) (int64, error)

	// MarkAllSeen 全部标为已读，返回标记条数
	MarkAllSeen(ctx context.Context) (int64, error)
}
