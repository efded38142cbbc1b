package model

import "time"

// Relationship 好友关系边，每对用户只存一行。
// 约束：
//   - PartyA < PartyB（按字符串序），由 repository 写入前归一化
//   - uidx_party_pair 保证同一对用户不会出现第二行，(A,B)/(B,A) 不会同时存在
//   - idx_party_b 让 "party_a = ? OR party_b = ?" 两侧都能走索引
//   - 不做软删除：拒绝/删除好友后必须能重新发起申请
type Relationship struct {
	Id        int64     `gorm:"column:id;primaryKey;autoIncrement;comment:自增id"`
	PartyA    string    `gorm:"column:party_a;type:char(36);not null;uniqueIndex:uidx_party_pair;comment:较小的用户uuid"`
	PartyB    string    `gorm:"column:party_b;type:char(36);not null;uniqueIndex:uidx_party_pair;index:idx_party_b;comment:较大的用户uuid"`
	Status    int8      `gorm:"column:status;not null;comment:关系状态 1.待确认 3.好友 4.拉黑 6.免打扰"`
	UpdatedBy string    `gorm:"column:updated_by;type:char(36);not null;comment:最后一次修改状态的用户uuid"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Relationship) TableName() string { return "relationship" }

// 落库的关系状态（取值与对外的视角状态保持一致）
const (
	RelationshipPending  int8 = 1
	RelationshipAccepted int8 = 3
	RelationshipBlocked  int8 = 4
	RelationshipMuted    int8 = 6
)

// Counterpart 返回关系边中 userID 的另一方
func (r *Relationship) Counterpart(userID string) string {
	if r.PartyA == userID {
		return r.PartyB
	}
	return r.PartyA
}
