package relation

import "github.com/leyanessantiago/activate-api/model"

// FriendPlan 好友边的迁移结果
type FriendPlan struct {
	Action Action
	// Next 迁移后的行（ActionDelete 时为删除前的行）
	Next model.Relationship
	// Activity 成功后需要发出的动态类型，0 表示不发
	Activity int8
}

// PlanFriend 校验并计算好友关系迁移
//
//	send    无边                          -> PENDING
//	accept  PENDING 且由对方发起           -> ACCEPTED
//	decline PENDING                       -> 删除
//	mute    status != MUTED               -> MUTED
//	unmute  MUTED 且由我设置               -> ACCEPTED
//	block   status != BLOCKED             -> BLOCKED
//	unblock BLOCKED 且由我设置             -> ACCEPTED
//	remove  status != PENDING             -> 删除
//
// 所有更新都把 updatedBy 记为操作人 me
func PlanFriend(op Op, edge *model.Relationship, me, other string) (FriendPlan, error) {
	if me == other {
		return FriendPlan{}, ErrSelf
	}

	if op == OpSend {
		if edge != nil {
			return FriendPlan{}, ErrDuplicate
		}
		a, b := Pair(me, other)
		return FriendPlan{
			Action:   ActionCreate,
			Next:     model.Relationship{PartyA: a, PartyB: b, Status: model.RelationshipPending, UpdatedBy: me},
			Activity: model.ActivityFriendRequest,
		}, nil
	}

	if edge == nil {
		return FriendPlan{}, ErrNotFound
	}

	switch op {
	case OpAccept:
		if edge.Status != model.RelationshipPending || edge.UpdatedBy == me {
			return FriendPlan{}, ErrInvalidTransition
		}
		return update(edge, model.RelationshipAccepted, me, model.ActivityFriendRequestAccepted), nil
	case OpDecline:
		if edge.Status != model.RelationshipPending {
			return FriendPlan{}, ErrInvalidTransition
		}
		return FriendPlan{Action: ActionDelete, Next: *edge}, nil
	case OpMute:
		if edge.Status == model.RelationshipMuted {
			return FriendPlan{}, ErrInvalidTransition
		}
		return update(edge, model.RelationshipMuted, me, 0), nil
	case OpUnmute:
		if edge.Status != model.RelationshipMuted || edge.UpdatedBy != me {
			return FriendPlan{}, ErrInvalidTransition
		}
		return update(edge, model.RelationshipAccepted, me, 0), nil
	case OpBlock:
		if edge.Status == model.RelationshipBlocked {
			return FriendPlan{}, ErrInvalidTransition
		}
		return update(edge, model.RelationshipBlocked, me, 0), nil
	case OpUnblock:
		if edge.Status != model.RelationshipBlocked || edge.UpdatedBy != me {
			return FriendPlan{}, ErrInvalidTransition
		}
		return update(edge, model.RelationshipAccepted, me, 0), nil
	case OpRemove:
		if edge.Status == model.RelationshipPending {
			return FriendPlan{}, ErrInvalidTransition
		}
		return FriendPlan{Action: ActionDelete, Next: *edge}, nil
	default:
		return FriendPlan{}, ErrInvalidTransition
	}
}

func update(edge *model.Relationship, status int8, me string, activity int8) FriendPlan {
	next := *edge
	next.Status = status
	next.UpdatedBy = me
	return FriendPlan{Action: ActionUpdate, Next: next, Activity: activity}
}
