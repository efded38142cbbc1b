package dto

import "time"

// ==================== 通用 ====================

// UserItem 用户信息 DTO
type UserItem struct {
	UUID   string `json:"uuid"`             // 用户UUID
	Name   string `json:"name"`             // 展示名称
	Handle string `json:"handle,omitempty"` // @handle，未设置时为空
	Avatar string `json:"avatar"`           // 头像URL或内置头像名(user1..user4)
	Role   int8   `json:"role"`             // 角色(1:消费者 2:主办方)
}

// PersonItem 活动卡片中的作者/好友
type PersonItem struct {
	UUID   string `json:"uuid"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// PaginationInfo 分页信息 DTO
type PaginationInfo struct {
	Page       int32 `json:"page"`       // 当前页码
	PageSize   int32 `json:"pageSize"`   // 每页大小
	Total      int64 `json:"total"`      // 总记录数
	TotalPages int32 `json:"totalPages"` // 总页数
}

// ==================== 好友关系 ====================

// RelationStatusResponse 关系操作结果
type RelationStatusResponse struct {
	Status     string `json:"status"`     // viewer 视角的状态名，例如 PENDING_YOU
	StatusCode int8   `json:"statusCode"` // 数值状态
}

// FriendItem 好友 / 申请列表项
type FriendItem struct {
	User       *UserItem `json:"user"`
	Status     string    `json:"status"`
	StatusCode int8      `json:"statusCode"`
}

// FriendListResponse 好友列表
type FriendListResponse struct {
	Items []*FriendItem `json:"items"`
}

// ProfileResponse 他人主页
type ProfileResponse struct {
	User       *UserItem `json:"user"`
	Status     string    `json:"status"`
	StatusCode int8      `json:"statusCode"`
}

// StatsResponse 我的统计
type StatsResponse struct {
	Friends   int64 `json:"friends"`   // 好友数
	Following int64 `json:"following"` // 关注的主办方数
}

// ==================== 主办方 ====================

// FollowerItem 关注列表项
type FollowerItem struct {
	User       *UserItem `json:"user"`
	Status     string    `json:"status"`
	StatusCode int8      `json:"statusCode"`
}

// FollowerListResponse 关注列表
type FollowerListResponse struct {
	Items []*FollowerItem `json:"items"`
}

// PublisherProfileResponse 主办方主页
type PublisherProfileResponse struct {
	User           *UserItem `json:"user"`
	FollowersCount int64     `json:"followersCount"`
	Status         string    `json:"status"`
	StatusCode     int8      `json:"statusCode"`
}

// ==================== 活动 / 推荐流 ====================

// FeedRequest 推荐流查询参数
type FeedRequest struct {
	Page  int    `form:"page" binding:"omitempty,min=1"`          // 页码
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"` // 每页大小
	Date  string `form:"date"`                                    // YYYY-MM-DD
}

// EventItem 活动卡片
type EventItem struct {
	UUID           string        `json:"uuid"`
	Name           string        `json:"name"`
	Date           time.Time     `json:"date"`
	Image          string        `json:"image"`
	Address        string        `json:"address"`
	Description    string        `json:"description"`
	Author         *PersonItem   `json:"author"`
	Friends        []*PersonItem `json:"friends"`        // 参加该活动的好友
	FollowersCount int64         `json:"followersCount"` // 除我以外的报名人数
	Going          bool          `json:"going"`          // 我是否已报名
}

// EventPageResponse 活动分页
type EventPageResponse struct {
	Items      []*EventItem    `json:"items"`
	Pagination *PaginationInfo `json:"pagination"`
}

// EventListResponse 活动列表（不分页）
type EventListResponse struct {
	Items []*EventItem `json:"items"`
}

// UpcomingDatesResponse 我参加的活动日期
type UpcomingDatesResponse struct {
	Dates []string `json:"dates"` // YYYY-MM-DD，升序
}

// ==================== 动态 ====================

// ActivityListRequest 动态列表查询参数
type ActivityListRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// EventBrief 动态关联的活动
type EventBrief struct {
	UUID  string    `json:"uuid"`
	Name  string    `json:"name"`
	Date  time.Time `json:"date"`
	Image string    `json:"image"`
}

// ActivityItem 动态
type ActivityItem struct {
	ID      string      `json:"id"` // snowflake id 以字符串返回，避免 JS 精度丢失
	Type    int8        `json:"type"`
	Creator *UserItem   `json:"creator"`
	Event   *EventBrief `json:"event,omitempty"`
	SentAt  time.Time   `json:"sentAt"`
}

// ActivityListResponse 动态列表
type ActivityListResponse struct {
	Items []*ActivityItem `json:"items"`
}

// UnreadCountResponse 未读动态数
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// MarkSeenResponse 标记已读结果
type MarkSeenResponse struct {
	Marked int64 `json:"marked"`
}
