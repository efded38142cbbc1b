package repository

import (
	"context"
	"time"

	"github.com/leyanessantiago/activate-api/model"

	"gorm.io/gorm"
)

// followerRepositoryImpl 关注主办方数据访问层实现
type followerRepositoryImpl struct {
	db *gorm.DB
}

// NewFollowerRepository 创建关注仓储实例
func NewFollowerRepository(db *gorm.DB) IFollowerRepository {
	return &followerRepositoryImpl{db: db}
}

// FindEdge 查询关注边
func (r *followerRepositoryImpl) FindEdge(ctx context.Context, consumer, publisher string) (*model.Follower, error) {
	var edge model.Follower
	err := r.db.WithContext(ctx).
		Where("consumer_uuid = ? AND publisher_uuid = ?", consumer, publisher).
		Take(&edge).Error
	if err != nil {
		return nil, WrapDBError(err)
	}
	return &edge, nil
}

// ListByConsumer 查询消费者的关注边
func (r *followerRepositoryImpl) ListByConsumer(ctx context.Context, consumer string, statuses ...int8) ([]model.Follower, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Follower{}).
		Where("consumer_uuid = ?", consumer)

	var edges []model.Follower
	if err := withStatuses(query, statuses).Order("created_at DESC, id DESC").Find(&edges).Error; err != nil {
		return nil, WrapDBError(err)
	}
	return edges, nil
}

// ListByPublisher 查询主办方的关注者
func (r *followerRepositoryImpl) ListByPublisher(ctx context.Context, publisher string, statuses ...int8) ([]model.Follower, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Follower{}).
		Where("publisher_uuid = ?", publisher)

	var edges []model.Follower
	if err := withStatuses(query, statuses).Order("created_at DESC, id DESC").Find(&edges).Error; err != nil {
		return nil, WrapDBError(err)
	}
	return edges, nil
}

// CountByConsumer 统计消费者关注的主办方数量
func (r *followerRepositoryImpl) CountByConsumer(ctx context.Context, consumer string, statuses ...int8) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Follower{}).
		Where("consumer_uuid = ?", consumer)

	var total int64
	if err := withStatuses(query, statuses).Count(&total).Error; err != nil {
		return 0, WrapDBError(err)
	}
	return total, nil
}

// CountByPublisher 统计主办方的关注者数量
func (r *followerRepositoryImpl) CountByPublisher(ctx context.Context, publisher string, statuses ...int8) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Follower{}).
		Where("publisher_uuid = ?", publisher)

	var total int64
	if err := withStatuses(query, statuses).Count(&total).Error; err != nil {
		return 0, WrapDBError(err)
	}
	return total, nil
}

// Create 新建关注边，依赖 uidx_consumer_publisher 拒绝重复关注
func (r *followerRepositoryImpl) Create(ctx context.Context, edge *model.Follower) error {
	if err := r.db.WithContext(ctx).Create(edge).Error; err != nil {
		return WrapDBError(err)
	}
	return nil
}

// Update 条件更新关注边（CAS）
func (r *followerRepositoryImpl) Update(ctx context.Context, prev *model.Follower, next model.Follower) error {
	result := r.db.WithContext(ctx).
		Model(&model.Follower{}).
		Where("consumer_uuid = ? AND publisher_uuid = ? AND status = ? AND updated_by = ?",
			prev.ConsumerUuid, prev.PublisherUuid, prev.Status, prev.UpdatedBy).
		Updates(map[string]any{
			"status":     next.Status,
			"updated_by": next.UpdatedBy,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return WrapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStaleEdge
	}
	return nil
}

// Delete 条件删除关注边
func (r *followerRepositoryImpl) Delete(ctx context.Context, prev *model.Follower) error {
	result := r.db.WithContext(ctx).
		Where("consumer_uuid = ? AND publisher_uuid = ? AND status = ? AND updated_by = ?",
			prev.ConsumerUuid, prev.PublisherUuid, prev.Status, prev.UpdatedBy).
		Delete(&model.Follower{})

	if result.Error != nil {
		return WrapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStaleEdge
	}
	return nil
}
