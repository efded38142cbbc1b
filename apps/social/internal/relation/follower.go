package relation

import "github.com/leyanessantiago/activate-api/model"

// FollowPlan 关注边的迁移结果
type FollowPlan struct {
	Action   Action
	Next     model.Follower
	Activity int8
}

// PlanFollow 校验并计算关注关系迁移，规则与好友边一致，但没有待确认阶段：
// 关注立即生效，unmute/unblock 恢复为 FOLLOWING，重复关注视为非法迁移
func PlanFollow(op Op, edge *model.Follower, consumer, publisher string) (FollowPlan, error) {
	if consumer == publisher {
		return FollowPlan{}, ErrSelf
	}

	if op == OpFollow {
		if edge != nil {
			return FollowPlan{}, ErrInvalidTransition
		}
		return FollowPlan{
			Action: ActionCreate,
			Next: model.Follower{
				ConsumerUuid:  consumer,
				PublisherUuid: publisher,
				Status:        model.FollowerFollowing,
				UpdatedBy:     consumer,
			},
			Activity: model.ActivityNewFollower,
		}, nil
	}

	if edge == nil {
		return FollowPlan{}, ErrNotFound
	}

	next := *edge
	next.UpdatedBy = consumer
	switch op {
	case OpMute:
		if edge.Status == model.FollowerMuted {
			return FollowPlan{}, ErrInvalidTransition
		}
		next.Status = model.FollowerMuted
	case OpUnmute:
		if edge.Status != model.FollowerMuted || edge.UpdatedBy != consumer {
			return FollowPlan{}, ErrInvalidTransition
		}
		next.Status = model.FollowerFollowing
	case OpBlock:
		if edge.Status == model.FollowerBlocked {
			return FollowPlan{}, ErrInvalidTransition
		}
		next.Status = model.FollowerBlocked
	case OpUnblock:
		if edge.Status != model.FollowerBlocked || edge.UpdatedBy != consumer {
			return FollowPlan{}, ErrInvalidTransition
		}
		next.Status = model.FollowerFollowing
	case OpRemove:
		return FollowPlan{Action: ActionDelete, Next: *edge}, nil
	default:
		return FollowPlan{}, ErrInvalidTransition
	}
	return FollowPlan{Action: ActionUpdate, Next: next}, nil
}
