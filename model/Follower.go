package model

import "time"

// Follower 消费者关注主办方的边（有向，每对 consumer/publisher 一行）
type Follower struct {
	Id            int64     `gorm:"column:id;primaryKey;autoIncrement;comment:自增id"`
	ConsumerUuid  string    `gorm:"column:consumer_uuid;type:char(36);not null;uniqueIndex:uidx_consumer_publisher;comment:消费者uuid"`
	PublisherUuid string    `gorm:"column:publisher_uuid;type:char(36);not null;uniqueIndex:uidx_consumer_publisher;index:idx_publisher;comment:主办方uuid"`
	Status        int8      `gorm:"column:status;not null;comment:关注状态 1.关注 2.免打扰 3.拉黑"`
	UpdatedBy     string    `gorm:"column:updated_by;type:char(36);not null;comment:最后一次修改状态的用户uuid"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Follower) TableName() string { return "follower" }

const (
	FollowerFollowing int8 = 1
	FollowerMuted     int8 = 2
	FollowerBlocked   int8 = 3
)
