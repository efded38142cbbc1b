package feed

import "github.com/leyanessantiago/activate-api/apps/social/internal/relation"

// MaxDisplayedFriends 卡片上最多展示的好友头像数
const MaxDisplayedFriends = 4

// IsGoing 基于未过滤的报名列表判断 viewer 是否参加，拉黑不影响自己的报名状态
func IsGoing(ev RawEvent, viewer string) bool {
	for _, a := range ev.Attendees {
		if a.ID == viewer {
			return true
		}
	}
	return false
}

// FriendCount 参加该活动的 viewer 好友数（排序信号，不做拉黑过滤）
func FriendCount(ev RawEvent, v Viewer) int {
	n := 0
	for _, a := range ev.Attendees {
		if a.ID != v.ID && v.Friends.Contains(a.ID) {
			n++
		}
	}
	return n
}

// DisplayedFriends 卡片上展示的好友：跳过 viewer 本人与屏蔽集合中的人，最多 4 个
func DisplayedFriends(ev RawEvent, v Viewer) []Person {
	out := make([]Person, 0, MaxDisplayedFriends)
	for _, a := range ev.Attendees {
		if len(out) == MaxDisplayedFriends {
			break
		}
		if a.ID == v.ID || v.Avoid.Contains(a.ID) || !v.Friends.Contains(a.ID) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// AuthorVisible 作者在屏蔽集合中的活动不出现在任何推荐流里
func AuthorVisible(ev RawEvent, v Viewer) bool {
	return !v.Avoid.Contains(ev.Author.ID)
}

// FilterVisible 过滤掉作者被屏蔽的活动，保持原有顺序
func FilterVisible(events []RawEvent, v Viewer) []RawEvent {
	out := events[:0:0]
	for _, ev := range events {
		if AuthorVisible(ev, v) {
			out = append(out, ev)
		}
	}
	return out
}

// ProfileVisible 直接访问他人主页时，只有"对方拉黑了我"才隐藏；我拉黑对方仍可查看
func ProfileVisible(status relation.Status) bool {
	return status != relation.BlockedYou
}
