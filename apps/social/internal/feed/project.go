package feed

import (
	"context"
	"time"
)

// URLResolver 把头像/图片引用解析成可访问的 URL（pkg/media.URLBuilder 实现）
type URLResolver interface {
	AvatarURL(ctx context.Context, ref string) string
	ImageURL(ctx context.Context, ref string) string
}

// PersonView 对外展示的用户
type PersonView struct {
	ID     string
	Name   string
	Avatar string
}

// EventView 对外展示的活动卡片
type EventView struct {
	ID          string
	Name        string
	Date        time.Time
	Image       string
	Address     string
	Description string
	Author      PersonView
	Friends     []PersonView
	// FollowersCount 除 viewer 以外的报名人数
	FollowersCount int64
	Going          bool
}

// Projector 把原始活动投影为 EventView
type Projector struct {
	urls URLResolver
}

// NewProjector 创建投影器
func NewProjector(urls URLResolver) *Projector {
	return &Projector{urls: urls}
}

// Project 投影单个活动
func (p *Projector) Project(ctx context.Context, ev RawEvent, v Viewer) EventView {
	going := IsGoing(ev, v.ID)
	followers := ev.FollowersCount
	if going && followers > 0 {
		followers--
	}

	shown := DisplayedFriends(ev, v)
	friends := make([]PersonView, 0, len(shown))
	for _, f := range shown {
		friends = append(friends, PersonView{ID: f.ID, Avatar: p.urls.AvatarURL(ctx, f.Avatar)})
	}

	return EventView{
		ID:          ev.ID,
		Name:        ev.Name,
		Date:        ev.Date,
		Image:       p.urls.ImageURL(ctx, ev.Image),
		Address:     ev.Address,
		Description: ev.Description,
		Author: PersonView{
			ID:     ev.Author.ID,
			Name:   ev.Author.Name,
			Avatar: p.urls.AvatarURL(ctx, ev.Author.Avatar),
		},
		Friends:        friends,
		FollowersCount: followers,
		Going:          going,
	}
}

// ProjectAll 按原有顺序投影一组活动
func (p *Projector) ProjectAll(ctx context.Context, events []RawEvent, v Viewer) []EventView {
	out := make([]EventView, 0, len(events))
	for _, ev := range events {
		out = append(out, p.Project(ctx, ev, v))
	}
	return out
}
