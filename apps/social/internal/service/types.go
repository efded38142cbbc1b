package service

import (
	"github.com/leyanessantiago/activate-api/apps/social/internal/feed"
	"github.com/leyanessantiago/activate-api/apps/social/internal/relation"
	"github.com/leyanessantiago/activate-api/model"
)

// FriendItem 好友列表项：用户 + viewer 视角的关系状态
type FriendItem struct {
	User   *model.User
	Status relation.Status
}

// PublisherItem 我关注的主办方 / 关注我的消费者
type PublisherItem struct {
	User   *model.User
	Status relation.FollowerStatus
}

// Profile 他人主页
type Profile struct {
	User   *model.User
	Status relation.Status
}

// PublisherProfile 主办方主页
type PublisherProfile struct {
	User           *model.User
	FollowersCount int64
	Status         relation.FollowerStatus
}

// Stats 我的统计
type Stats struct {
	Friends   int64
	Following int64
}

// EventPage 活动分页
type EventPage struct {
	Items    []feed.EventView
	Total    int
	Page     int // 归一化后的页码
	PageSize int // 归一化后的每页大小
}

// ActivityItem 动态列表项
type ActivityItem struct {
	Activity *model.Activity
	Creator  *model.User
	Event    *model.Event // 与活动无关的动态为 nil
}
