package feed

import (
	"cmp"
	"slices"
)

// rankKey 推荐排序用到的信号，提前算好避免比较时重复计算
type rankKey struct {
	relevance float64
	friends   int
	followers int64
	ev        *RawEvent
}

// compareDiscover 推荐排序：兴趣权重高的在前 -> 参加的好友多的在前 -> 报名总人数多的在前 -> 时间早的在前。
// 最后按 id 兜底，保证同样的输入总是得到同样的顺序
func compareDiscover(a, b rankKey) int {
	if c := cmp.Compare(b.relevance, a.relevance); c != 0 {
		return c
	}
	if c := cmp.Compare(b.friends, a.friends); c != 0 {
		return c
	}
	if c := cmp.Compare(b.followers, a.followers); c != 0 {
		return c
	}
	if c := a.ev.Date.Compare(b.ev.Date); c != 0 {
		return c
	}
	return cmp.Compare(a.ev.ID, b.ev.ID)
}

// RankDiscover 返回排序后的新切片，不修改入参
func RankDiscover(events []RawEvent, v Viewer) []RawEvent {
	keys := make([]rankKey, len(events))
	for i := range events {
		ev := &events[i]
		keys[i] = rankKey{
			relevance: v.RelevanceOf(ev.CategoryID),
			friends:   FriendCount(*ev, v),
			followers: ev.FollowersCount,
			ev:        ev,
		}
	}
	slices.SortStableFunc(keys, compareDiscover)

	out := make([]RawEvent, len(keys))
	for i, k := range keys {
		out[i] = *k.ev
	}
	return out
}

// SortUpcoming 我参加的活动按时间升序，同一时间按 id 升序
func SortUpcoming(events []RawEvent) {
	slices.SortStableFunc(events, func(a, b RawEvent) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// Paginate 取第 page 页（从 1 开始），越界返回空切片
func Paginate[T any](items []T, page, limit int) []T {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		return items
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := min(start+limit, len(items))
	return items[start:end]
}
