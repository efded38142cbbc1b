package repository

import (
	"context"
	"time"

	"github.com/leyanessantiago/activate-api/model"
)

// ==================== 用户 Repository ====================

// IUserRepository 用户信息只读访问（账号体系由其他服务维护）
type IUserRepository interface {
	// GetByUUID 根据 UUID 查询用户，不存在返回 ErrRecordNotFound
	GetByUUID(ctx context.Context, uuid string) (*model.User, error)

	// GetByHandle 根据 handle 查询用户
	GetByHandle(ctx context.Context, handle string) (*model.User, error)

	// BatchGetByUUIDs 批量查询用户，结果顺序不保证，缺失的 uuid 直接忽略
	BatchGetByUUIDs(ctx context.Context, uuids []string) ([]*model.User, error)
}

// ==================== 好友关系 Repository ====================

// IRelationshipRepository 好友关系边的存储
// 每对用户只有一行，写入前按 (PartyA < PartyB) 归一化。
// 更新与删除都以读到的旧行做条件（status + updated_by），未命中返回 ErrStaleEdge，
// 这样前置条件校验与写入之间不会被同一对用户的并发操作穿插。
type IRelationshipRepository interface {
	// FindEdge 查询两人之间的关系边，参数顺序无关，不存在返回 ErrRecordNotFound
	FindEdge(ctx context.Context, a, b string) (*model.Relationship, error)

	// FindEdgesInvolving 查询 userUUID 参与的所有关系边（party_a 或 party_b），statuses 为空不过滤
	FindEdgesInvolving(ctx context.Context, userUUID string, statuses ...int8) ([]model.Relationship, error)

	// FindEdgesBetween 批量查询 viewer 与 others 之间的关系边
	FindEdgesBetween(ctx context.Context, viewer string, others []string) ([]model.Relationship, error)

	// CountEdges 统计 userUUID 参与的关系边数量
	CountEdges(ctx context.Context, userUUID string, statuses ...int8) (int64, error)

	// CreateEdge 新建关系边，这对用户已有记录时返回 ErrDuplicateKey
	CreateEdge(ctx context.Context, edge *model.Relationship) error

	// UpdateEdge 以 prev 为条件把关系边改为 next 的状态
	UpdateEdge(ctx context.Context, prev *model.Relationship, next model.Relationship) error

	// DeleteEdge 以 prev 为条件物理删除关系边（删除后双方可以重新发起申请）
	DeleteEdge(ctx context.Context, prev *model.Relationship) error
}

// ==================== 关注主办方 Repository ====================

// IFollowerRepository 消费者关注主办方的边，写入规则与好友关系边相同
type IFollowerRepository interface {
	// FindEdge 查询关注边，不存在返回 ErrRecordNotFound
	FindEdge(ctx context.Context, consumer, publisher string) (*model.Follower, error)

	// ListByConsumer 查询消费者的关注边
	ListByConsumer(ctx context.Context, consumer string, statuses ...int8) ([]model.Follower, error)

	// ListByPublisher 查询主办方的关注者，按关注时间倒序
	ListByPublisher(ctx context.Context, publisher string, statuses ...int8) ([]model.Follower, error)

	// CountByConsumer 统计消费者关注的主办方数量
	CountByConsumer(ctx context.Context, consumer string, statuses ...int8) (int64, error)

	// CountByPublisher 统计主办方的关注者数量
	CountByPublisher(ctx context.Context, publisher string, statuses ...int8) (int64, error)

	// Create 新建关注边，已存在返回 ErrDuplicateKey
	Create(ctx context.Context, edge *model.Follower) error

	// Update 条件更新，未命中返回 ErrStaleEdge
	Update(ctx context.Context, prev *model.Follower, next model.Follower) error

	// Delete 条件删除，未命中返回 ErrStaleEdge
	Delete(ctx context.Context, prev *model.Follower) error
}

// ==================== 活动 Repository ====================

// DiscoverQuery 推荐候选活动查询条件
type DiscoverQuery struct {
	Consumer       string    // viewer，按其 user_interest 限定分类并取兴趣权重
	From           time.Time // 只取该时间及之后的活动
	ExcludeAuthors []string  // 屏蔽的主办方
	Friends        []string  // viewer 的好友，用于统计参加的好友数
	Offset         int
	Limit          int
}

// AttendingQuery 我参加的活动查询条件
type AttendingQuery struct {
	Consumer string
	From     time.Time
	To       time.Time // 零值表示不限
}

// IEventRepository 活动与报名记录
type IEventRepository interface {
	// GetByUUID 查询活动，不存在返回 ErrRecordNotFound
	GetByUUID(ctx context.Context, uuid string) (*model.Event, error)

	// BatchGetByUUIDs 批量查询活动，缺失的直接忽略
	BatchGetByUUIDs(ctx context.Context, uuids []string) ([]*model.Event, error)

	// ListDiscover 按推荐排序链查询一页活动
	ListDiscover(ctx context.Context, q DiscoverQuery) ([]*model.Event, error)

	// CountDiscover 推荐候选集总数（与 ListDiscover 条件一致）
	CountDiscover(ctx context.Context, q DiscoverQuery) (int64, error)

	// ListAttending 查询 consumer 报名的活动
	ListAttending(ctx context.Context, q AttendingQuery) ([]*model.Event, error)

	// ListAttendingDates 查询 consumer 报名的、from 之后的活动时间（升序，可能重复）
	ListAttendingDates(ctx context.Context, consumer string, from time.Time) ([]time.Time, error)

	// ListByAuthor 查询主办方 from 之后的活动
	ListByAuthor(ctx context.Context, author string, from time.Time, limit int) ([]*model.Event, error)

	// CountFollowers 批量统计报名人数，没有报名的活动不在结果中
	CountFollowers(ctx context.Context, eventUUIDs []string) (map[string]int64, error)

	// ListAttendees 查询这些活动中、属于 consumers 的报名记录，按报名时间升序
	ListAttendees(ctx context.Context, eventUUIDs, consumers []string) ([]model.EventFollower, error)

	// CreateFollower 报名活动，重复报名返回 ErrDuplicateKey
	CreateFollower(ctx context.Context, eventUUID, consumer string) error

	// DeleteFollower 取消报名，未报名返回 ErrRecordNotFound
	DeleteFollower(ctx context.Context, eventUUID, consumer string) error
}

// ==================== 兴趣 Repository ====================

// IInterestRepository 用户兴趣分类（只读，设置兴趣由资料服务负责）
type IInterestRepository interface {
	// ListByUser 查询用户的全部兴趣分类及权重
	ListByUser(ctx context.Context, userUUID string) ([]model.UserInterest, error)
}

// ==================== 动态 Repository ====================

// IActivityRepository 动态通知：明细落库，未读数缓存在 Redis
type IActivityRepository interface {
	// Create 写入一条动态
	Create(ctx context.Context, activity *model.Activity) error

	// ListUnseen 查询未读动态，按发送时间倒序
	ListUnseen(ctx context.Context, receiver string, limit int) ([]*model.Activity, error)

	// MarkAllSeen 把接收者的未读动态全部标记为已读，返回更新条数
	MarkAllSeen(ctx context.Context, receiver string) (int64, error)

	// IncrUnread 未读数 +1（只在 key 存在时递增，不存在时等下次读取回填）
	IncrUnread(ctx context.Context, receiver string) error

	// GetUnread 读取未读数，缓存未命中时查库并回填
	GetUnread(ctx context.Context, receiver string) (int64, error)

	// ResetUnread 清空未读数
	ResetUnread(ctx context.Context, receiver string) error
}
