package repository

import (
	"context"
	"time"

	"github.com/leyanessantiago/activate-api/model"

	"gorm.io/gorm"
)

// eventRepositoryImpl 活动数据访问层实现
type eventRepositoryImpl struct {
	db *gorm.DB
}

// NewEventRepository 创建活动仓储实例
func NewEventRepository(db *gorm.DB) IEventRepository {
	return &eventRepositoryImpl{db: db}
}

// excludeAuthors 屏蔽集合为空时不拼 NOT IN（空列表在部分方言下是语法错误）
func excludeAuthors(query *gorm.DB, authors []string) *gorm.DB {
	if len(authors) == 0 {
		return query
	}
	return query.Where("event.author_uuid NOT IN ?", authors)
}

// GetByUUID 查询活动
func (r *eventRepositoryImpl) GetByUUID(ctx context.Context, uuid string) (*model.Event, error) {
	var ev model.Event
	if err := r.db.WithContext(ctx).Where("uuid = ?", uuid).Take(&ev).Error; err != nil {
		return nil, WrapDBError(err)
	}
	return &ev, nil
}

// BatchGetByUUIDs 批量查询活动
func (r *eventRepositoryImpl) BatchGetByUUIDs(ctx context.Context, uuids []string) ([]*model.Event, error) {
	if len(uuids) == 0 {
		return []*model.Event{}, nil
	}

	var events []*model.Event
	if err := r.db.WithContext(ctx).Where("uuid IN ?", uuids).Find(&events).Error; err != nil {
		return nil, WrapDBError(err)
	}
	return events, nil
}

// discoverBase 推荐候选集：viewer 兴趣分类内、时间不早于 From、作者不在屏蔽集合内
func (r *eventRepositoryImpl) discoverBase(ctx context.Context, q DiscoverQuery) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&model.Event{}).
		Joins("JOIN user_interest ON user_interest.category_id = event.category_id AND user_interest.user_uuid = ?", q.Consumer).
		Where("event.date >= ?", q.From)
	return excludeAuthors(query, q.ExcludeAuthors)
}

// ListDiscover 查询推荐活动的一页
// 完整排序链在 SQL 中完成后再分页：兴趣权重 -> 参加的好友数 -> 报名总人数 -> 时间 -> uuid
func (r *eventRepositoryImpl) ListDiscover(ctx context.Context, q DiscoverQuery) ([]*model.Event, error) {
	query := r.discoverBase(ctx, q)

	// 好友为空时不拼 IN 子查询
	if len(q.Friends) > 0 {
		query = query.Select(
			"event.*, user_interest.relevance AS rank_relevance, "+
				"(SELECT COUNT(*) FROM event_follower WHERE event_follower.event_uuid = event.uuid AND event_follower.consumer_uuid IN ?) AS rank_friends, "+
				"(SELECT COUNT(*) FROM event_follower WHERE event_follower.event_uuid = event.uuid) AS rank_followers",
			q.Friends,
		)
	} else {
		query = query.Select(
			"event.*, user_interest.relevance AS rank_relevance, 0 AS rank_friends, " +
				"(SELECT COUNT(*) FROM event_follower WHERE event_follower.event_uuid = event.uuid) AS rank_followers",
		)
	}

	if q.Offset > 0 {
		query = query.Offset(q.Offset)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	var events []*model.Event
	err := query.
		Order("rank_relevance DESC, rank_friends DESC, rank_followers DESC, event.date ASC, event.uuid ASC").
		Find(&events).Error
	if err != nil {
		return nil, WrapDBError(err)
	}
	return events, nil
}

// CountDiscover 推荐候选集总数
func (r *eventRepositoryImpl) CountDiscover(ctx context.Context, q DiscoverQuery) (int64, error) {
	var total int64
	if err := r.discoverBase(ctx, q).Count(&total).Error; err != nil {
		return 0, WrapDBError(err)
	}
	return total, nil
}

// attending 基础查询：consumer 报名过的活动
func (r *eventRepositoryImpl) attending(ctx context.Context, consumer string) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.Event{}).
		Joins("JOIN event_follower ON event_follower.event_uuid = event.uuid").
		Where("event_follower.consumer_uuid = ?", consumer)
}

// ListAttending 查询 consumer 报名的活动
// 不按屏蔽集合过滤：拉黑主办方不影响自己已报名的活动，与 ListAttendingDates 保持一致
func (r *eventRepositoryImpl) ListAttending(ctx context.Context, q AttendingQuery) ([]*model.Event, error) {
	query := r.attending(ctx, q.Consumer).Where("event.date >= ?", q.From)
	if !q.To.IsZero() {
		query = query.Where("event.date <= ?", q.To)
	}

	var events []*model.Event
	if err := query.Select("event.*").Order("event.date ASC, event.id ASC").Find(&events).Error; err != nil {
		return nil, WrapDBError(err)
	}
	return events, nil
}

// ListAttendingDates 查询 consumer 报名活动的时间
func (r *eventRepositoryImpl) ListAttendingDates(ctx context.Context, consumer string, from time.Time) ([]time.Time, error) {
	var dates []time.Time
	err := r.attending(ctx, consumer).
		Where("event.date >= ?", from).
		Order("event.date ASC").
		Pluck("event.date", &dates).Error
	if err != nil {
		return nil, WrapDBError(err)
	}
	return dates, nil
}

// ListByAuthor 查询主办方的活动
func (r *eventRepositoryImpl) ListByAuthor(ctx context.Context, author string, from time.Time, limit int) ([]*model.Event, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Event{}).
		Where("author_uuid = ? AND date >= ?", author, from)
	if limit > 0 {
		query = query.Limit(limit)
	}

	var events []*model.Event
	if err := query.Order("date ASC, id ASC").Find(&events).Error; err != nil {
		return nil, WrapDBError(err)
	}
	return events, nil
}

// CountFollowers 批量统计报名人数
func (r *eventRepositoryImpl) CountFollowers(ctx context.Context, eventUUIDs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(eventUUIDs))
	if len(eventUUIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		EventUuid string
		Total     int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.EventFollower{}).
		Select("event_uuid, COUNT(*) AS total").
		Where("event_uuid IN ?", eventUUIDs).
		Group("event_uuid").
		Scan(&rows).Error
	if err != nil {
		return nil, WrapDBError(err)
	}

	for _, row := range rows {
		out[row.EventUuid] = row.Total
	}
	return out, nil
}

// ListAttendees 查询指定用户在这些活动中的报名记录
// 只取 viewer 与其好友，避免热门活动把全部报名者读进内存
func (r *eventRepositoryImpl) ListAttendees(ctx context.Context, eventUUIDs, consumers []string) ([]model.EventFollower, error) {
	if len(eventUUIDs) == 0 || len(consumers) == 0 {
		return []model.EventFollower{}, nil
	}

	var rows []model.EventFollower
	err := r.db.WithContext(ctx).
		Where("event_uuid IN ? AND consumer_uuid IN ?", eventUUIDs, consumers).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, WrapDBError(err)
	}
	return rows, nil
}

// CreateFollower 报名活动
func (r *eventRepositoryImpl) CreateFollower(ctx context.Context, eventUUID, consumer string) error {
	row := &model.EventFollower{EventUuid: eventUUID, ConsumerUuid: consumer}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return WrapDBError(err)
	}
	return nil
}

// DeleteFollower 取消报名
func (r *eventRepositoryImpl) DeleteFollower(ctx context.Context, eventUUID, consumer string) error {
	result := r.db.WithContext(ctx).
		Where("event_uuid = ? AND consumer_uuid = ?", eventUUID, consumer).
		Delete(&model.EventFollower{})

	if result.Error != nil {
		return WrapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
