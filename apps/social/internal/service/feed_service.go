package service

import (
	"context"
	"time"

	"github.com/leyanessantiago/activate-api/apps/social/internal/feed"
	"github.com/leyanessantiago/activate-api/apps/social/internal/repository"
	"github.com/leyanessantiago/activate-api/config"
	"github.com/leyanessantiago/activate-api/consts"
	"github.com/leyanessantiago/activate-api/model"
	"github.com/leyanessantiago/activate-api/pkg/metrics"

	"google.golang.org/grpc/codes"
)

// feedServiceImpl 推荐流服务实现
// 数据流：社交图快照 -> 候选活动 -> 组装原始记录 -> 屏蔽过滤 -> 排序 -> 分页 -> 投影
type feedServiceImpl struct {
	eventRepo repository.IEventRepository
	userRepo  repository.IUserRepository
	graph     *graphLoader
	projector *feed.Projector
	cfg       config.FeedConfig
	now       func() time.Time
}

// NewFeedService 创建推荐流服务实例
func NewFeedService(
	eventRepo repository.IEventRepository,
	userRepo repository.IUserRepository,
	relationshipRepo repository.IRelationshipRepository,
	followerRepo repository.IFollowerRepository,
	interestRepo repository.IInterestRepository,
	urls feed.URLResolver,
	cfg config.FeedConfig,
) FeedService {
	return &feedServiceImpl{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		graph:     newGraphLoader(relationshipRepo, followerRepo, interestRepo),
		projector: feed.NewProjector(urls),
		cfg:       cfg,
		now:       time.Now,
	}
}

// pageArgs 兜底分页参数
func (s *feedServiceImpl) pageArgs(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = s.cfg.DefaultPageSize
	}
	if s.cfg.MaxPageSize > 0 && limit > s.cfg.MaxPageSize {
		limit = s.cfg.MaxPageSize
	}
	return page, limit
}

// startOfDay 服务器本地时区的零点
func startOfDay(t time.Time) time.Time {
	y, m, d := t.In(time.Local).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// Upcoming 我参加的、尚未开始的活动，按时间升序
// day 非空时只取当天 [00:00:00, 23:59:59.999999999]，且仍不早于当前时间
// 拉黑主办方不隐藏已报名的活动（与 UpcomingDates 一致），屏蔽集合只作用于展示的好友
func (s *feedServiceImpl) Upcoming(ctx context.Context, day *time.Time, page, limit int) (*EventPage, error) {
	begin := s.now()
	me, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	page, limit = s.pageArgs(page, limit)

	v, err := s.graph.load(ctx, me)
	if err != nil {
		return nil, internalError(ctx, "读取社交关系失败", err)
	}

	q := repository.AttendingQuery{Consumer: me, From: begin}
	if day != nil {
		dayBegin := startOfDay(*day)
		q.To = dayBegin.AddDate(0, 0, 1).Add(-time.Nanosecond)
		if dayBegin.After(q.From) {
			q.From = dayBegin
		}
		if q.To.Before(q.From) {
			return &EventPage{Items: []feed.EventView{}, Page: page, PageSize: limit}, nil
		}
	}

	events, err := s.eventRepo.ListAttending(ctx, q)
	if err != nil {
		return nil, internalError(ctx, "查询已报名活动失败", err)
	}

	raws, err := s.assemble(ctx, events, v, false)
	if err != nil {
		return nil, err
	}
	feed.SortUpcoming(raws)

	metrics.ObserveFeed("upcoming", s.now().Sub(begin), len(events))
	return &EventPage{
		Items:    s.projector.ProjectAll(ctx, feed.Paginate(raws, page, limit), v),
		Total:    len(raws),
		Page:     page,
		PageSize: limit,
	}, nil
}

// Discover 按兴趣推荐活动
// 候选集：兴趣分类内、时间不早于 from（缺省为今天零点）、作者不在屏蔽集合内
// 排序与分页下推到 SQL，内存中对当前页按同一排序链复核
func (s *feedServiceImpl) Discover(ctx context.Context, from *time.Time, page, limit int) (*EventPage, error) {
	begin := s.now()
	me, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	page, limit = s.pageArgs(page, limit)

	v, err := s.graph.loadWithInterests(ctx, me)
	if err != nil {
		return nil, internalError(ctx, "读取社交关系失败", err)
	}
	if len(v.Relevance) == 0 {
		return &EventPage{Items: []feed.EventView{}, Page: page, PageSize: limit}, nil
	}

	start := startOfDay(begin)
	if from != nil {
		start = *from
	}

	q := repository.DiscoverQuery{
		Consumer:       me,
		From:           start,
		ExcludeAuthors: v.Avoid.Sorted(),
		Friends:        v.Friends.Sorted(),
		Offset:         (page - 1) * limit,
		Limit:          limit,
	}
	total, err := s.eventRepo.CountDiscover(ctx, q)
	if err != nil {
		return nil, internalError(ctx, "统计推荐候选活动失败", err)
	}
	if int64(q.Offset) >= total {
		return &EventPage{Items: []feed.EventView{}, Total: int(total), Page: page, PageSize: limit}, nil
	}

	events, err := s.eventRepo.ListDiscover(ctx, q)
	if err != nil {
		return nil, internalError(ctx, "查询推荐候选活动失败", err)
	}

	raws, err := s.assemble(ctx, events, v, true)
	if err != nil {
		return nil, err
	}
	ranked := feed.RankDiscover(raws, v)

	metrics.ObserveFeed("discover", s.now().Sub(begin), len(events))
	return &EventPage{
		Items:    s.projector.ProjectAll(ctx, ranked, v),
		Total:    int(total),
		Page:     page,
		PageSize: limit,
	}, nil
}

// UpcomingDates 我参加的活动所在日期（本地时区零点，去重升序）
func (s *feedServiceImpl) UpcomingDates(ctx context.Context) ([]time.Time, error) {
	me, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	dates, err := s.eventRepo.ListAttendingDates(ctx, me, s.now())
	if err != nil {
		return nil, internalError(ctx, "查询已报名活动日期失败", err)
	}

	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := startOfDay(d)
		if n := len(days); n > 0 && days[n-1].Equal(day) {
			continue
		}
		days = append(days, day)
	}
	return days, nil
}

// PublisherEvents 主办方尚未开始的活动
func (s *feedServiceImpl) PublisherEvents(ctx context.Context, publisher string) ([]feed.EventView, error) {
	me, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUUID(ctx, publisher)
	if err != nil {
		if isNotFound(err) {
			return nil, bizError(codes.NotFound, consts.CodePublisherNotFound)
		}
		return nil, internalError(ctx, "查询主办方失败", err)
	}
	if user.Role != model.UserRolePublisher {
		return nil, bizError(codes.NotFound, consts.CodePublisherNotFound)
	}

	v, err := s.graph.load(ctx, me)
	if err != nil {
		return nil, internalError(ctx, "读取社交关系失败", err)
	}

	events, err := s.eventRepo.ListByAuthor(ctx, publisher, s.now(), s.cfg.MaxCandidates)
	if err != nil {
		return nil, internalError(ctx, "查询主办方活动失败", err)
	}

	raws, err := s.assemble(ctx, events, v, true)
	if err != nil {
		return nil, err
	}
	feed.SortUpcoming(raws)
	return s.projector.ProjectAll(ctx, raws, v), nil
}

// assemble 把活动行组装为 RawEvent；hideAvoided 为 true 时去掉作者在屏蔽集合中的活动
// 报名者只取 viewer 本人与 viewer 的好友：足够计算"我是否参加"、好友数与展示的好友头像
func (s *feedServiceImpl) assemble(ctx context.Context, events []*model.Event, v feed.Viewer, hideAvoided bool) ([]feed.RawEvent, error) {
	if len(events) == 0 {
		return []feed.RawEvent{}, nil
	}

	eventIDs := make([]string, 0, len(events))
	userIDs := feed.NewIDSet()
	for _, ev := range events {
		eventIDs = append(eventIDs, ev.Uuid)
		userIDs.Add(ev.AuthorUuid)
	}

	counts, err := s.eventRepo.CountFollowers(ctx, eventIDs)
	if err != nil {
		return nil, internalError(ctx, "统计报名人数失败", err)
	}

	related := append(v.Friends.Sorted(), v.ID)
	rows, err := s.eventRepo.ListAttendees(ctx, eventIDs, related)
	if err != nil {
		return nil, internalError(ctx, "查询报名好友失败", err)
	}
	for _, row := range rows {
		userIDs.Add(row.ConsumerUuid)
	}

	users, err := usersByUUID(ctx, s.userRepo, userIDs.Sorted())
	if err != nil {
		return nil, internalError(ctx, "查询用户失败", err)
	}
	person := func(id string) feed.Person {
		if u, ok := users[id]; ok {
			return feed.Person{ID: u.Uuid, Name: u.Name, Avatar: u.Avatar}
		}
		return feed.Person{ID: id}
	}

	attendees := make(map[string][]feed.Person, len(events))
	for _, row := range rows {
		attendees[row.EventUuid] = append(attendees[row.EventUuid], person(row.ConsumerUuid))
	}

	raws := make([]feed.RawEvent, 0, len(events))
	for _, ev := range events {
		raws = append(raws, feed.RawEvent{
			ID:             ev.Uuid,
			Name:           ev.Name,
			Date:           ev.Date,
			Address:        ev.Address,
			Description:    ev.Description,
			Image:          ev.Image,
			CategoryID:     ev.CategoryId,
			Author:         person(ev.AuthorUuid),
			FollowersCount: counts[ev.Uuid],
			Attendees:      attendees[ev.Uuid],
		})
	}
	if !hideAvoided {
		return raws, nil
	}
	return feed.FilterVisible(raws, v), nil
}
