package model

import (
	"time"

	"gorm.io/gorm"
)

// Event 活动表，由主办方创建
type Event struct {
	Id          int64          `gorm:"column:id;primaryKey;autoIncrement;comment:自增id"`
	Uuid        string         `gorm:"column:uuid;type:char(36);not null;uniqueIndex:uidx_event_uuid;comment:活动uuid"`
	Name        string         `gorm:"column:name;type:varchar(128);not null;comment:活动名称"`
	Date        time.Time      `gorm:"column:date;not null;index:idx_category_date,priority:2;comment:活动时间"`
	Address     string         `gorm:"column:address;type:varchar(255);not null;default:'';comment:地址"`
	Description string         `gorm:"column:description;type:text;comment:描述"`
	Image       string         `gorm:"column:image;type:varchar(255);not null;default:'';comment:封面图对象key"`
	AuthorUuid  string         `gorm:"column:author_uuid;type:char(36);not null;index:idx_author;comment:主办方uuid"`
	CategoryId  int64          `gorm:"column:category_id;not null;index:idx_category_date,priority:1;comment:分类id"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Event) TableName() string { return "event" }

// EventFollower 报名（参加）活动的记录，同一用户对同一活动只能有一行
type EventFollower struct {
	Id           int64     `gorm:"column:id;primaryKey;autoIncrement;comment:自增id"`
	EventUuid    string    `gorm:"column:event_uuid;type:char(36);not null;uniqueIndex:uidx_event_consumer;comment:活动uuid"`
	ConsumerUuid string    `gorm:"column:consumer_uuid;type:char(36);not null;uniqueIndex:uidx_event_consumer;index:idx_consumer;comment:消费者uuid"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (EventFollower) TableName() string { return "event_follower" }
