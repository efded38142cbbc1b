// Package relation 好友关系与关注关系的状态机。
// 纯函数，不访问存储：输入当前边 + 操作人，输出要执行的写操作（Plan），由 service 层负责落库。
package relation

import "github.com/leyanessantiago/activate-api/model"

// Status 以某个用户为视角的好友关系状态
type Status int8

const (
	Unrelated  Status = -1
	Pending    Status = Status(model.RelationshipPending) // 我发出的申请，等待对方处理
	PendingYou Status = 2                                 // 对方发来的申请，等待我处理
	Accepted   Status = Status(model.RelationshipAccepted)
	Blocked    Status = Status(model.RelationshipBlocked) // 我拉黑了对方
	BlockedYou Status = 5                                 // 对方拉黑了我
	Muted      Status = Status(model.RelationshipMuted)
)

func (s Status) String() string {
	switch s {
	case Unrelated:
		return "UNRELATED"
	case Pending:
		return "PENDING"
	case PendingYou:
		return "PENDING_YOU"
	case Accepted:
		return "ACCEPTED"
	case Blocked:
		return "BLOCKED"
	case BlockedYou:
		return "BLOCKED_YOU"
	case Muted:
		return "MUTED"
	default:
		return "UNKNOWN"
	}
}

// ViewerStatus 把存储的关系边投影为 viewer 视角的状态
// 同一行数据对双方呈现不同状态，不为每个视角单独存行
func ViewerStatus(edge *model.Relationship, viewer string) Status {
	if edge == nil {
		return Unrelated
	}
	switch edge.Status {
	case model.RelationshipPending:
		if edge.UpdatedBy != viewer {
			return PendingYou
		}
		return Pending
	case model.RelationshipBlocked:
		if edge.UpdatedBy != viewer {
			return BlockedYou
		}
		return Blocked
	default:
		return Status(edge.Status)
	}
}

// IsFriend ACCEPTED 与 MUTED 都算好友（免打扰只影响通知）
func IsFriend(status int8) bool {
	return status == model.RelationshipAccepted || status == model.RelationshipMuted
}

// FollowerStatus 消费者视角的关注状态
type FollowerStatus int8

const (
	FollowerUnrelated FollowerStatus = -1
	Following         FollowerStatus = FollowerStatus(model.FollowerFollowing)
	FollowerMuted     FollowerStatus = FollowerStatus(model.FollowerMuted)
	FollowerBlocked   FollowerStatus = FollowerStatus(model.FollowerBlocked)
)

func (s FollowerStatus) String() string {
	switch s {
	case FollowerUnrelated:
		return "UNRELATED"
	case Following:
		return "FOLLOWING"
	case FollowerMuted:
		return "MUTED"
	case FollowerBlocked:
		return "BLOCKED"
	default:
		return "UNKNOWN"
	}
}

// ViewerFollowerStatus 关注边没有方向歧义，直接返回存储状态
func ViewerFollowerStatus(edge *model.Follower) FollowerStatus {
	if edge == nil {
		return FollowerUnrelated
	}
	return FollowerStatus(edge.Status)
}

// Pair 返回归一化后的 (partyA, partyB)，保证同一对用户只对应一行
func Pair(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}
