package dto

import (
	"context"
	"strconv"
	"time"

	"github.com/leyanessantiago/activate-api/apps/social/internal/feed"
	"github.com/leyanessantiago/activate-api/apps/social/internal/service"
	"github.com/leyanessantiago/activate-api/model"
)

// DateLayout 日期参数与日期列表的格式
const DateLayout = "2006-01-02"

// ConvertUser 用户转换，头像解析成可访问地址
func ConvertUser(ctx context.Context, urls feed.URLResolver, u *model.User) *UserItem {
	if u == nil {
		return nil
	}
	item := &UserItem{
		UUID:   u.Uuid,
		Name:   u.Name,
		Avatar: urls.AvatarURL(ctx, u.Avatar),
		Role:   u.Role,
	}
	if u.Handle != nil {
		item.Handle = *u.Handle
	}
	return item
}

// ConvertFriendItems 好友列表转换
func ConvertFriendItems(ctx context.Context, urls feed.URLResolver, items []service.FriendItem) []*FriendItem {
	out := make([]*FriendItem, 0, len(items))
	for _, it := range items {
		out = append(out, &FriendItem{
			User:       ConvertUser(ctx, urls, it.User),
			Status:     it.Status.String(),
			StatusCode: int8(it.Status),
		})
	}
	return out
}

// ConvertFollowerItems 关注列表转换
func ConvertFollowerItems(ctx context.Context, urls feed.URLResolver, items []service.PublisherItem) []*FollowerItem {
	out := make([]*FollowerItem, 0, len(items))
	for _, it := range items {
		out = append(out, &FollowerItem{
			User:       ConvertUser(ctx, urls, it.User),
			Status:     it.Status.String(),
			StatusCode: int8(it.Status),
		})
	}
	return out
}

func convertPerson(p feed.PersonView) *PersonItem {
	return &PersonItem{UUID: p.ID, Name: p.Name, Avatar: p.Avatar}
}

// ConvertEvents 活动卡片转换（EventView 中的地址已解析）
func ConvertEvents(views []feed.EventView) []*EventItem {
	out := make([]*EventItem, 0, len(views))
	for _, v := range views {
		friends := make([]*PersonItem, 0, len(v.Friends))
		for _, f := range v.Friends {
			friends = append(friends, convertPerson(f))
		}
		out = append(out, &EventItem{
			UUID:           v.ID,
			Name:           v.Name,
			Date:           v.Date,
			Image:          v.Image,
			Address:        v.Address,
			Description:    v.Description,
			Author:         convertPerson(v.Author),
			Friends:        friends,
			FollowersCount: v.FollowersCount,
			Going:          v.Going,
		})
	}
	return out
}

// ConvertEventPage 分页活动转换
func ConvertEventPage(page *service.EventPage) *EventPageResponse {
	return &EventPageResponse{
		Items:      ConvertEvents(page.Items),
		Pagination: NewPagination(page.Page, page.PageSize, page.Total),
	}
}

// NewPagination 构造分页信息
func NewPagination(page, pageSize, total int) *PaginationInfo {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return &PaginationInfo{
		Page:       int32(page),
		PageSize:   int32(pageSize),
		Total:      int64(total),
		TotalPages: int32(totalPages),
	}
}

// ConvertDates 日期列表按本地时区格式化
func ConvertDates(dates []time.Time) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.In(time.Local).Format(DateLayout))
	}
	return out
}

// ConvertActivities 动态列表转换
func ConvertActivities(ctx context.Context, urls feed.URLResolver, items []service.ActivityItem) []*ActivityItem {
	out := make([]*ActivityItem, 0, len(items))
	for _, it := range items {
		a := it.Activity
		item := &ActivityItem{
			ID:      strconv.FormatInt(a.Id, 10),
			Type:    a.Type,
			Creator: ConvertUser(ctx, urls, it.Creator),
			SentAt:  a.SentAt,
		}
		if it.Event != nil {
			item.Event = &EventBrief{
				UUID:  it.Event.Uuid,
				Name:  it.Event.Name,
				Date:  it.Event.Date,
				Image: urls.ImageURL(ctx, it.Event.Image),
			}
		}
		out = append(out, item)
	}
	return out
}
