package model

import "time"

// Activity 动态通知（好友申请、新关注者等），主键为 snowflake id
type Activity struct {
	Id           int64     `gorm:"column:id;primaryKey;autoIncrement:false;comment:snowflake id"`
	CreatorUuid  string    `gorm:"column:creator_uuid;type:char(36);not null;comment:触发者uuid"`
	ReceiverUuid string    `gorm:"column:receiver_uuid;type:char(36);not null;index:idx_receiver_seen;comment:接收者uuid"`
	Type         int8      `gorm:"column:type;not null;comment:动态类型"`
	EventUuid    *string   `gorm:"column:event_uuid;type:char(36);comment:关联活动uuid"`
	CommentUuid  *string   `gorm:"column:comment_uuid;type:char(36);comment:关联评论uuid"`
	Seen         bool      `gorm:"column:seen;not null;default:false;index:idx_receiver_seen;comment:是否已读"`
	SentAt       time.Time `gorm:"column:sent_at;not null;comment:发送时间"`
}

func (Activity) TableName() string { return "activity" }

const (
	ActivityFriendRequest         int8 = 1
	ActivityFriendRequestAccepted int8 = 2
	ActivityNewFollower           int8 = 3
	ActivityEventUpdated          int8 = 4
	ActivityNewComment            int8 = 5
	ActivityCommentResponded      int8 = 6
	ActivityEventInvite           int8 = 7
)
