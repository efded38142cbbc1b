package repository

import (
	"context"
	"time"

	"github.com/leyanessantiago/activate-api/apps/social/internal/relation"
	"github.com/leyanessantiago/activate-api/model"

	"gorm.io/gorm"
)

// relationshipRepositoryImpl 好友关系数据访问层实现
type relationshipRepositoryImpl struct {
	db *gorm.DB
}

// NewRelationshipRepository 创建好友关系仓储实例
func NewRelationshipRepository(db *gorm.DB) IRelationshipRepository {
	return &relationshipRepositoryImpl{db: db}
}

// involving party_a 与 party_b 各有一个索引，OR 两侧都能命中
func (r *relationshipRepositoryImpl) involving(ctx context.Context, userUUID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.Relationship{}).
		Where("(party_a = ? OR party_b = ?)", userUUID, userUUID)
}

// FindEdge 查询两人之间的关系边
func (r *relationshipRepositoryImpl) FindEdge(ctx context.Context, a, b string) (*model.Relationship, error) {
	partyA, partyB := relation.Pair(a, b)

	var edge model.Relationship
	err := r.db.WithContext(ctx).
		Where("party_a = ? AND party_b = ?", partyA, partyB).
		Take(&edge).Error
	if err != nil {
		return nil, WrapDBError(err)
	}
	return &edge, nil
}

// FindEdgesInvolving 查询用户参与的所有关系边
func (r *relationshipRepositoryImpl) FindEdgesInvolving(ctx context.Context, userUUID string, statuses ...int8) ([]model.Relationship, error) {
	var edges []model.Relationship
	err := withStatuses(r.involving(ctx, userUUID), statuses).
		Order("updated_at DESC, id DESC").
		Find(&edges).Error
	if err != nil {
		return nil, WrapDBError(err)
	}
	return edges, nil
}

// FindEdgesBetween 批量查询 viewer 与 others 之间的关系边
func (r *relationshipRepositoryImpl) FindEdgesBetween(ctx context.Context, viewer string, others []string) ([]model.Relationship, error) {
	if len(others) == 0 {
		return []model.Relationship{}, nil
	}

	var edges []model.Relationship
	err := r.db.WithContext(ctx).
		Where("(party_a = ? AND party_b IN ?) OR (party_b = ? AND party_a IN ?)", viewer, others, viewer, others).
		Find(&edges).Error
	if err != nil {
		return nil, WrapDBError(err)
	}
	return edges, nil
}

// CountEdges 统计用户参与的关系边数量
func (r *relationshipRepositoryImpl) CountEdges(ctx context.Context, userUUID string, statuses ...int8) (int64, error) {
	var total int64
	if err := withStatuses(r.involving(ctx, userUUID), statuses).Count(&total).Error; err != nil {
		return 0, WrapDBError(err)
	}
	return total, nil
}

// CreateEdge 新建关系边
// 依赖 uidx_party_pair：并发的两次发起申请只有一次能插入成功，另一次得到 ErrDuplicateKey
func (r *relationshipRepositoryImpl) CreateEdge(ctx context.Context, edge *model.Relationship) error {
	edge.PartyA, edge.PartyB = relation.Pair(edge.PartyA, edge.PartyB)
	if err := r.db.WithContext(ctx).Create(edge).Error; err != nil {
		return WrapDBError(err)
	}
	return nil
}

// UpdateEdge 条件更新关系边（CAS）
func (r *relationshipRepositoryImpl) UpdateEdge(ctx context.Context, prev *model.Relationship, next model.Relationship) error {
	result := r.db.WithContext(ctx).
		Model(&model.Relationship{}).
		Where("party_a = ? AND party_b = ? AND status = ? AND updated_by = ?",
			prev.PartyA, prev.PartyB, prev.Status, prev.UpdatedBy).
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

// DeleteEdge 条件删除关系边（物理删除）
func (r *relationshipRepositoryImpl) DeleteEdge(ctx context.Context, prev *model.Relationship) error {
	result := r.db.WithContext(ctx).
		Where("party_a = ? AND party_b = ? AND status = ? AND updated_by = ?",
			prev.PartyA, prev.PartyB, prev.Status, prev.UpdatedBy).
		Delete(&model.Relationship{})

	if result.Error != nil {
		return WrapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStaleEdge
	}
	return nil
}
