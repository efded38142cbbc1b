package model

import "time"

// Category 活动分类（树形，ParentId 为空表示根节点）
type Category struct {
	Id        int64     `gorm:"column:id;primaryKey;autoIncrement;comment:自增id"`
	Name      string    `gorm:"column:name;type:varchar(64);not null;uniqueIndex:uidx_category_name;comment:分类名称"`
	ParentId  *int64    `gorm:"column:parent_id;index;comment:父分类id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Category) TableName() string { return "category" }

// UserInterest 用户对某个分类的兴趣权重，只用于推荐排序
type UserInterest struct {
	Id         int64     `gorm:"column:id;primaryKey;autoIncrement;comment:自增id"`
	UserUuid   string    `gorm:"column:user_uuid;type:char(36);not null;uniqueIndex:uidx_user_category;comment:用户uuid"`
	CategoryId int64     `gorm:"column:category_id;not null;uniqueIndex:uidx_user_category;comment:分类id"`
	Relevance  float64   `gorm:"column:relevance;not null;default:0;comment:兴趣权重"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (UserInterest) TableName() string { return "user_interest" }
