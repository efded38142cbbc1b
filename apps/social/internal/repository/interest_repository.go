package repository

import (
	"context"

	"github.com/leyanessantiago/activate-api/model"

	"gorm.io/gorm"
)

type interestRepositoryImpl struct {
	db *gorm.DB
}

// NewInterestRepository 创建兴趣仓储实例
func NewInterestRepository(db *gorm.DB) IInterestRepository {
	return &interestRepositoryImpl{db: db}
}

func (r *interestRepositoryImpl) ListByUser(ctx context.Context, userUUID string) ([]model.UserInterest, error) {
	var interests []model.UserInterest
	err := r.db.WithContext(ctx).
		Where("user_uuid = ?", userUUID).
		Order("relevance DESC, category_id ASC").
		Find(&interests).Error
	if err != nil {
		return nil, WrapDBError(err)
	}
	return interests, nil
}
