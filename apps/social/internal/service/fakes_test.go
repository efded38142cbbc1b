package service

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/leyanessantiago/activate-api/apps/social/internal/relation"
	"github.com/leyanessantiago/activate-api/apps/social/internal/repository"
	"github.com/leyanessantiago/activate-api/model"
	"github.com/leyanessantiago/activate-api/pkg/ctxmeta"
	"github.com/leyanessantiago/activate-api/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var serviceLoggerOnce sync.Once

func initServiceTestLogger() {
	serviceLoggerOnce.Do(func() {
		logger.ReplaceGlobal(zap.NewNop())
	})
}

func withUser(userUUID string) context.Context {
	return ctxmeta.WithUserUUID(context.Background(), userUUID)
}

func requireStatusCode(t *testing.T, err error, wantGRPC codes.Code, wantBizCode int) {
	t.Helper()
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok)
	require.Equal(t, wantGRPC, st.Code())
	gotCode, convErr := strconv.Atoi(st.Message())
	require.NoError(t, convErr)
	require.Equal(t, wantBizCode, gotCode)
}

// ==================== 用户 ====================

type fakeUserRepo struct {
	users map[string]*model.User
	err   error
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*model.User)}
	for _, u := range users {
		r.users[u.Uuid] = u
	}
	return r
}

func (r *fakeUserRepo) GetByUUID(_ context.Context, uuid string) (*model.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	if u, ok := r.users[uuid]; ok {
		return u, nil
	}
	return nil, repository.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByHandle(_ context.Context, handle string) (*model.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Handle != nil && *u.Handle == handle {
			return u, nil
		}
	}
	return nil, repository.ErrRecordNotFound
}

func (r *fakeUserRepo) BatchGetByUUIDs(_ context.Context, uuids []string) ([]*model.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*model.User, 0, len(uuids))
	for _, id := range uuids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func consumer(id string) *model.User {
	return &model.User{Uuid: id, Name: "name-" + id, Avatar: "user1", Role: model.UserRoleConsumer}
}

func publisher(id string) *model.User {
	return &model.User{Uuid: id, Name: "name-" + id, Avatar: "logo-" + id + ".png", Role: model.UserRolePublisher}
}

// ==================== 好友关系 ====================

// fakeRelationshipRepo 内存实现，写入语义与 MySQL 实现一致：归一化、唯一、条件更新
type fakeRelationshipRepo struct {
	mu     sync.Mutex
	nextID int64
	edges  map[[2]string]*model.Relationship

	// beforeWrite 在条件写之前执行，用于模拟并发修改
	beforeWrite func()
	err         error
}

func newFakeRelationshipRepo() *fakeRelationshipRepo {
	return &fakeRelationshipRepo{edges: make(map[[2]string]*model.Relationship)}
}

func pairKey(a, b string) [2]string {
	a, b = relation.Pair(a, b)
	return [2]string{a, b}
}

// put 直接写入一条边（测试准备数据）
func (r *fakeRelationshipRepo) put(a, b string, st int8, updatedBy string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	pa, pb := relation.Pair(a, b)
	r.edges[pairKey(a, b)] = &model.Relationship{Id: r.nextID, PartyA: pa, PartyB: pb, Status: st, UpdatedBy: updatedBy}
}

func (r *fakeRelationshipRepo) FindEdge(_ context.Context, a, b string) (*model.Relationship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if e, ok := r.edges[pairKey(a, b)]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, repository.ErrRecordNotFound
}

func (r *fakeRelationshipRepo) sorted(keep func(*model.Relationship) bool) []model.Relationship {
	out := make([]model.Relationship, 0)
	for _, e := range r.edges {
		if keep(e) {
			out = append(out, *e)
		}
	}
	slices.SortFunc(out, func(x, y model.Relationship) int { return int(x.Id - y.Id) })
	return out
}

func (r *fakeRelationshipRepo) FindEdgesInvolving(_ context.Context, userUUID string, statuses ...int8) ([]model.Relationship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return r.sorted(func(e *model.Relationship) bool {
		if e.PartyA != userUUID && e.PartyB != userUUID {
			return false
		}
		return len(statuses) == 0 || slices.Contains(statuses, e.Status)
	}), nil
}

func (r *fakeRelationshipRepo) FindEdgesBetween(_ context.Context, viewer string, others []string) ([]model.Relationship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(e *model.Relationship) bool {
		return (e.PartyA == viewer && slices.Contains(others, e.PartyB)) ||
			(e.PartyB == viewer && slices.Contains(others, e.PartyA))
	}), nil
}

func (r *fakeRelationshipRepo) CountEdges(ctx context.Context, userUUID string, statuses ...int8) (int64, error) {
	edges, err := r.FindEdgesInvolving(ctx, userUUID, statuses...)
	return int64(len(edges)), err
}

func (r *fakeRelationshipRepo) CreateEdge(_ context.Context, edge *model.Relationship) error {
	if r.beforeWrite != nil {
		r.beforeWrite()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey(edge.PartyA, edge.PartyB)
	if _, ok := r.edges[key]; ok {
		return repository.ErrDuplicateKey
	}
	r.nextID++
	cp := *edge
	cp.Id = r.nextID
	cp.PartyA, cp.PartyB = key[0], key[1]
	r.edges[key] = &cp
	return nil
}

func (r *fakeRelationshipRepo) matches(prev *model.Relationship) (*model.Relationship, bool) {
	cur, ok := r.edges[pairKey(prev.PartyA, prev.PartyB)]
	if !ok || cur.Status != prev.Status || cur.UpdatedBy != prev.UpdatedBy {
		return nil, false
	}
	return cur, true
}

func (r *fakeRelationshipRepo) UpdateEdge(_ context.Context, prev *model.Relationship, next model.Relationship) error {
	if r.beforeWrite != nil {
		r.beforeWrite()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.matches(prev)
	if !ok {
		return repository.ErrStaleEdge
	}
	cur.Status = next.Status
	cur.UpdatedBy = next.UpdatedBy
	return nil
}

func (r *fakeRelationshipRepo) DeleteEdge(_ context.Context, prev *model.Relationship) error {
	if r.beforeWrite != nil {
		r.beforeWrite()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.matches(prev); !ok {
		return repository.ErrStaleEdge
	}
	delete(r.edges, pairKey(prev.PartyA, prev.PartyB))
	return nil
}

// ==================== 关注主办方 ====================

type fakeFollowerRepo struct {
	mu     sync.Mutex
	nextID int64
	edges  map[[2]string]*model.Follower
}

func newFakeFollowerRepo() *fakeFollowerRepo {
	return &fakeFollowerRepo{edges: make(map[[2]string]*model.Follower)}
}

func (r *fakeFollowerRepo) put(consumer, publisher string, st int8) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.edges[[2]string{consumer, publisher}] = &model.Follower{
		Id: r.nextID, ConsumerUuid: consumer, PublisherUuid: publisher, Status: st, UpdatedBy: consumer,
	}
}

func (r *fakeFollowerRepo) FindEdge(_ context.Context, consumer, publisher string) (*model.Follower, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.edges[[2]string{consumer, publisher}]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, repository.ErrRecordNotFound
}

func (r *fakeFollowerRepo) list(keep func(*model.Follower) bool, statuses []int8) []model.Follower {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Follower, 0)
	for _, e := range r.edges {
		if keep(e) && (len(statuses) == 0 || slices.Contains(statuses, e.Status)) {
			out = append(out, *e)
		}
	}
	slices.SortFunc(out, func(x, y model.Follower) int { return int(x.Id - y.Id) })
	return out
}

func (r *fakeFollowerRepo) ListByConsumer(_ context.Context, consumer string, statuses ...int8) ([]model.Follower, error) {
	return r.list(func(e *model.Follower) bool { return e.ConsumerUuid == consumer }, statuses), nil
}

func (r *fakeFollowerRepo) ListByPublisher(_ context.Context, publisher string, statuses ...int8) ([]model.Follower, error) {
	return r.list(func(e *model.Follower) bool { return e.PublisherUuid == publisher }, statuses), nil
}

func (r *fakeFollowerRepo) CountByConsumer(ctx context.Context, consumer string, statuses ...int8) (int64, error) {
	edges, _ := r.ListByConsumer(ctx, consumer, statuses...)
	return int64(len(edges)), nil
}

func (r *fakeFollowerRepo) CountByPublisher(ctx context.Context, publisher string, statuses ...int8) (int64, error) {
	edges, _ := r.ListByPublisher(ctx, publisher, statuses...)
	return int64(len(edges)), nil
}

func (r *fakeFollowerRepo) Create(_ context.Context, edge *model.Follower) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]string{edge.ConsumerUuid, edge.PublisherUuid}
	if _, ok := r.edges[key]; ok {
		return repository.ErrDuplicateKey
	}
	r.nextID++
	cp := *edge
	cp.Id = r.nextID
	r.edges[key] = &cp
	return nil
}

func (r *fakeFollowerRepo) Update(_ context.Context, prev *model.Follower, next model.Follower) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.edges[[2]string{prev.ConsumerUuid, prev.PublisherUuid}]
	if !ok || cur.Status != prev.Status || cur.UpdatedBy != prev.UpdatedBy {
		return repository.ErrStaleEdge
	}
	cur.Status = next.Status
	cur.UpdatedBy = next.UpdatedBy
	return nil
}

func (r *fakeFollowerRepo) Delete(_ context.Context, prev *model.Follower) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]string{prev.ConsumerUuid, prev.PublisherUuid}
	cur, ok := r.edges[key]
	if !ok || cur.Status != prev.Status || cur.UpdatedBy != prev.UpdatedBy {
		return repository.ErrStaleEdge
	}
	delete(r.edges, key)
	return nil
}

// ==================== 活动 ====================

type fakeEventRepo struct {
	getByUUIDFn          func(context.Context, string) (*model.Event, error)
	batchGetFn           func(context.Context, []string) ([]*model.Event, error)
	listDiscoverFn       func(context.Context, repository.DiscoverQuery) ([]*model.Event, error)
	countDiscoverFn      func(context.Context, repository.DiscoverQuery) (int64, error)
	listAttendingFn      func(context.Context, repository.AttendingQuery) ([]*model.Event, error)
	listAttendingDatesFn func(context.Context, string, time.Time) ([]time.Time, error)
	listByAuthorFn       func(context.Context, string, time.Time, int) ([]*model.Event, error)
	countFollowersFn     func(context.Context, []string) (map[string]int64, error)
	listAttendeesFn      func(context.Context, []string, []string) ([]model.EventFollower, error)
	createFollowerFn     func(context.Context, string, string) error
	deleteFollowerFn     func(context.Context, string, string) error
}

func (f *fakeEventRepo) GetByUUID(ctx context.Context, uuid string) (*model.Event, error) {
	if f.getByUUIDFn == nil {
		return nil, repository.ErrRecordNotFound
	}
	return f.getByUUIDFn(ctx, uuid)
}

func (f *fakeEventRepo) BatchGetByUUIDs(ctx context.Context, uuids []string) ([]*model.Event, error) {
	if f.batchGetFn == nil {
		return nil, nil
	}
	return f.batchGetFn(ctx, uuids)
}

func (f *fakeEventRepo) ListDiscover(ctx context.Context, q repository.DiscoverQuery) ([]*model.Event, error) {
	if f.listDiscoverFn == nil {
		return nil, nil
	}
	return f.listDiscoverFn(ctx, q)
}

func (f *fakeEventRepo) CountDiscover(ctx context.Context, q repository.DiscoverQuery) (int64, error) {
	if f.countDiscoverFn == nil {
		return 0, nil
	}
	return f.countDiscoverFn(ctx, q)
}

func (f *fakeEventRepo) ListAttending(ctx context.Context, q repository.AttendingQuery) ([]*model.Event, error) {
	if f.listAttendingFn == nil {
		return nil, nil
	}
	return f.listAttendingFn(ctx, q)
}

func (f *fakeEventRepo) ListAttendingDates(ctx context.Context, consumer string, from time.Time) ([]time.Time, error) {
	if f.listAttendingDatesFn == nil {
		return nil, nil
	}
	return f.listAttendingDatesFn(ctx, consumer, from)
}

func (f *fakeEventRepo) ListByAuthor(ctx context.Context, author string, from time.Time, limit int) ([]*model.Event, error) {
	if f.listByAuthorFn == nil {
		return nil, nil
	}
	return f.listByAuthorFn(ctx, author, from, limit)
}

func (f *fakeEventRepo) CountFollowers(ctx context.Context, eventUUIDs []string) (map[string]int64, error) {
	if f.countFollowersFn == nil {
		return map[string]int64{}, nil
	}
	return f.countFollowersFn(ctx, eventUUIDs)
}

func (f *fakeEventRepo) ListAttendees(ctx context.Context, eventUUIDs, consumers []string) ([]model.EventFollower, error) {
	if f.listAttendeesFn == nil {
		return nil, nil
	}
	return f.listAttendeesFn(ctx, eventUUIDs, consumers)
}

func (f *fakeEventRepo) CreateFollower(ctx context.Context, eventUUID, consumer string) error {
	if f.createFollowerFn == nil {
		return nil
	}
	return f.createFollowerFn(ctx, eventUUID, consumer)
}

func (f *fakeEventRepo) DeleteFollower(ctx context.Context, eventUUID, consumer string) error {
	if f.deleteFollowerFn == nil {
		return nil
	}
	return f.deleteFollowerFn(ctx, eventUUID, consumer)
}

// ==================== 兴趣 ====================

type fakeInterestRepo struct {
	interests map[string][]model.UserInterest
}

func (f *fakeInterestRepo) ListByUser(_ context.Context, userUUID string) ([]model.UserInterest, error) {
	return f.interests[userUUID], nil
}

// ==================== 动态 ====================

type fakeRecorder struct {
	mu      sync.Mutex
	records []ActivityInput
}

func (f *fakeRecorder) Record(_ context.Context, in ActivityInput) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, in)
}

func (f *fakeRecorder) all() []ActivityInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.records)
}

type fakeActivityRepo struct {
	createFn      func(context.Context, *model.Activity) error
	listUnseenFn  func(context.Context, string, int) ([]*model.Activity, error)
	markAllSeenFn func(context.Context, string) (int64, error)
	incrUnreadFn  func(context.Context, string) error
	getUnreadFn   func(context.Context, string) (int64, error)
	resetUnreadFn func(context.Context, string) error
}

func (f *fakeActivityRepo) Create(ctx context.Context, activity *model.Activity) error {
	if f.createFn == nil {
		return nil
	}
	return f.createFn(ctx, activity)
}

func (f *fakeActivityRepo) ListUnseen(ctx context.Context, receiver string, limit int) ([]*model.Activity, error) {
	if f.listUnseenFn == nil {
		return nil, nil
	}
	return f.listUnseenFn(ctx, receiver, limit)
}

func (f *fakeActivityRepo) MarkAllSeen(ctx context.Context, receiver string) (int64, error) {
	if f.markAllSeenFn == nil {
		return 0, nil
	}
	return f.markAllSeenFn(ctx, receiver)
}

func (f *fakeActivityRepo) IncrUnread(ctx context.Context, receiver string) error {
	if f.incrUnreadFn == nil {
		return nil
	}
	return f.incrUnreadFn(ctx, receiver)
}

func (f *fakeActivityRepo) GetUnread(ctx context.Context, receiver string) (int64, error) {
	if f.getUnreadFn == nil {
		return 0, nil
	}
	return f.getUnreadFn(ctx, receiver)
}

func (f *fakeActivityRepo) ResetUnread(ctx context.Context, receiver string) error {
	if f.resetUnreadFn == nil {
		return nil
	}
	return f.resetUnreadFn(ctx, receiver)
}
