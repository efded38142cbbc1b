package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/leyanessantiago/activate-api/consts/redisKey"
	"github.com/leyanessantiago/activate-api/model"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var incrIfExistsScript = redis.NewScript(luaIncrIfExists)

// activityRepositoryImpl 动态通知数据访问层实现
type activityRepositoryImpl struct {
	db          *gorm.DB
	redisClient *redis.Client // 为 nil 时未读数直接查库
}

// NewActivityRepository 创建动态仓储实例
func NewActivityRepository(db *gorm.DB, redisClient *redis.Client) IActivityRepository {
	return &activityRepositoryImpl{db: db, redisClient: redisClient}
}

// Create 写入一条动态
func (r *activityRepositoryImpl) Create(ctx context.Context, activity *model.Activity) error {
	if err := r.db.WithContext(ctx).Create(activity).Error; err != nil {
		return WrapDBError(err)
	}
	return nil
}

// ListUnseen 查询未读动态
func (r *activityRepositoryImpl) ListUnseen(ctx context.Context, receiver string, limit int) ([]*model.Activity, error) {
	_, limit = normalizePage(1, limit)

	var activities []*model.Activity
	err := r.db.WithContext(ctx).
		Where("receiver_uuid = ? AND seen = ?", receiver, false).
		Order("sent_at DESC, id DESC").
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, WrapDBError(err)
	}
	return activities, nil
}

// MarkAllSeen 全部标记为已读
func (r *activityRepositoryImpl) MarkAllSeen(ctx context.Context, receiver string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Activity{}).
		Where("receiver_uuid = ? AND seen = ?", receiver, false).
		Update("seen", true)
	if result.Error != nil {
		return 0, WrapDBError(result.Error)
	}
	return result.RowsAffected, nil
}

// countUnseen 从数据库统计未读数
func (r *activityRepositoryImpl) countUnseen(ctx context.Context, receiver string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Activity{}).
		Where("receiver_uuid = ? AND seen = ?", receiver, false).
		Count(&total).Error
	if err != nil {
		return 0, WrapDBError(err)
	}
	return total, nil
}

// IncrUnread 未读数 +1
// key 不存在时不创建：直接 INCR 会从 0 开始，丢掉库里已有的未读数
func (r *activityRepositoryImpl) IncrUnread(ctx context.Context, receiver string) error {
	if r.redisClient == nil {
		return nil
	}

	ttl := int64(getRandomExpireTime(rediskey.ActivityUnreadTTL).Seconds())
	err := incrIfExistsScript.Run(ctx, r.redisClient, []string{rediskey.ActivityUnreadKey(receiver)}, ttl).Err()
	return WrapRedisError(err)
}

// GetUnread 读取未读数（Cache-Aside）
func (r *activityRepositoryImpl) GetUnread(ctx context.Context, receiver string) (int64, error) {
	if r.redisClient == nil {
		return r.countUnseen(ctx, receiver)
	}

	key := rediskey.ActivityUnreadKey(receiver)

	// 1. 先查缓存
	raw, err := r.redisClient.Get(ctx, key).Result()
	if err == nil {
		if n, convErr := strconv.ParseInt(raw, 10, 64); convErr == nil {
			return n, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		// Redis 故障降级查库
		LogRedisError(ctx, WrapRedisError(err))
		return r.countUnseen(ctx, receiver)
	}

	// 2. 缓存未命中（或脏数据），查库回填
	total, err := r.countUnseen(ctx, receiver)
	if err != nil {
		return 0, err
	}
	if setErr := r.redisClient.Set(ctx, key, total, getRandomExpireTime(rediskey.ActivityUnreadTTL)).Err(); setErr != nil {
		LogRedisError(ctx, WrapRedisError(setErr))
	}
	return total, nil
}

// ResetUnread 清空未读数
func (r *activityRepositoryImpl) ResetUnread(ctx context.Context, receiver string) error {
	if r.redisClient == nil {
		return nil
	}
	err := r.redisClient.Set(ctx, rediskey.ActivityUnreadKey(receiver), 0, getRandomExpireTime(rediskey.ActivityUnreadTTL)).Err()
	return WrapRedisError(err)
}
