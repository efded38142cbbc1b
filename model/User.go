package model

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表（消费者与主办方共用，按 Role 区分）
// 约束：uuid 全局唯一；handle 允许为空（首次编辑资料时才生成），非空时唯一。
type User struct {
	Id                int64          `gorm:"column:id;primaryKey;autoIncrement;comment:自增id"`
	Uuid              string         `gorm:"column:uuid;type:char(36);not null;uniqueIndex:uidx_user_uuid;comment:用户uuid"`
	Name              string         `gorm:"column:name;type:varchar(64);not null;default:'';comment:展示名称"`
	Handle            *string        `gorm:"column:handle;type:varchar(64);uniqueIndex:uidx_user_handle;comment:用户名(@handle)"`
	Avatar            string         `gorm:"column:avatar;type:varchar(255);not null;default:'';comment:头像引用(对象key或内置头像名)"`
	Role              int8           `gorm:"column:role;not null;default:1;comment:角色 1.消费者 2.主办方"`
	VerificationLevel int8           `gorm:"column:verification_level;not null;default:-1;comment:认证等级"`
	CreatedAt         time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt         gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (User) TableName() string { return "user" }

const (
	// UserRoleConsumer 消费者
	UserRoleConsumer int8 = 1
	// UserRolePublisher 主办方
	UserRolePublisher int8 = 2
)

// 认证等级，数值越大完成度越高
const (
	VerificationUnverified    int8 = -1
	VerificationCodeVerified  int8 = 1
	VerificationUserInfoAdded int8 = 2
	VerificationInterestsSet  int8 = 3
)
