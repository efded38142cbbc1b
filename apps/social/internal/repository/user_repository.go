package repository

import (
	"context"

	"github.com/leyanessantiago/activate-api/model"

	"gorm.io/gorm"
)

// userRepositoryImpl 用户信息数据访问层实现
type userRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository 创建用户信息仓储实例
func NewUserRepository(db *gorm.DB) IUserRepository {
	return &userRepositoryImpl{db: db}
}

// GetByUUID 根据 UUID 查询用户
func (r *userRepositoryImpl) GetByUUID(ctx context.Context, uuid string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("uuid = ?", uuid).Take(&user).Error; err != nil {
		return nil, WrapDBError(err)
	}
	return &user, nil
}

// GetByHandle 根据 handle 查询用户
func (r *userRepositoryImpl) GetByHandle(ctx context.Context, handle string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("handle = ?", handle).Take(&user).Error; err != nil {
		return nil, WrapDBError(err)
	}
	return &user, nil
}

// BatchGetByUUIDs 批量查询用户
func (r *userRepositoryImpl) BatchGetByUUIDs(ctx context.Context, uuids []string) ([]*model.User, error) {
	if len(uuids) == 0 {
		return []*model.User{}, nil
	}

	var users []*model.User
	if err := r.db.WithContext(ctx).Where("uuid IN ?", uuids).Find(&users).Error; err != nil {
		return nil, WrapDBError(err)
	}
	return users, nil
}
