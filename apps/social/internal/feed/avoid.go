// Package feed 活动可见性过滤、推荐排序与对外投影。
// 输入是 repository 查出的原始数据与 viewer 的社交图快照，全部为纯函数。
package feed

import (
	"slices"

	"github.com/leyanessantiago/activate-api/apps/social/internal/relation"
	"github.com/leyanessantiago/activate-api/model"
)

// IDSet 用户 id 集合
type IDSet map[string]struct{}

// NewIDSet 创建集合
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add 加入元素
func (s IDSet) Add(id string) { s[id] = struct{}{} }

// Contains nil 集合视为空集
func (s IDSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted 返回升序 id 列表，用于 SQL NOT IN 与日志
func (s IDSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// BuildAvoidSet 计算 viewer 需要屏蔽的 id：
//   - 与 viewer 之间为 BLOCKED 的好友边的另一方（不论谁拉黑谁）
//   - viewer 作为消费者、状态为 BLOCKED 的关注边对应的主办方
//
// 只屏蔽拉黑，关注中或免打扰的主办方不在集合内。
// 结果与输入顺序无关，每个请求都重新计算，不跨请求缓存。
func BuildAvoidSet(viewer string, relationships []model.Relationship, followers []model.Follower) IDSet {
	avoid := make(IDSet)
	for i := range relationships {
		r := &relationships[i]
		if r.Status != model.RelationshipBlocked {
			continue
		}
		if r.PartyA != viewer && r.PartyB != viewer {
			continue
		}
		avoid.Add(r.Counterpart(viewer))
	}
	for _, f := range followers {
		if f.Status == model.FollowerBlocked && f.ConsumerUuid == viewer {
			avoid.Add(f.PublisherUuid)
		}
	}
	return avoid
}

// BuildFriendSet 从 viewer 的关系边中取出好友（ACCEPTED/MUTED）
func BuildFriendSet(viewer string, relationships []model.Relationship) IDSet {
	friends := make(IDSet)
	for i := range relationships {
		r := &relationships[i]
		if r.PartyA != viewer && r.PartyB != viewer {
			continue
		}
		if relation.IsFriend(r.Status) {
			friends.Add(r.Counterpart(viewer))
		}
	}
	return friends
}
