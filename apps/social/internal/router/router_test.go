package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/leyanessantiago/activate-api/apps/social/internal/feed"
	"github.com/leyanessantiago/activate-api/apps/social/internal/middleware"
	"github.com/leyanessantiago/activate-api/apps/social/internal/relation"
	v1 "github.com/leyanessantiago/activate-api/apps/social/internal/router/v1"
	"github.com/leyanessantiago/activate-api/apps/social/internal/service"
	"github.com/leyanessantiago/activate-api/consts"
	"github.com/leyanessantiago/activate-api/model"
	"github.com/leyanessantiago/activate-api/pkg/ctxmeta"
	"github.com/leyanessantiago/activate-api/pkg/logger"
	"github.com/leyanessantiago/activate-api/pkg/result"
	"github.com/leyanessantiago/activate-api/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ==================== fakes ====================

type stubURLs struct{}

func (stubURLs) AvatarURL(_ context.Context, ref string) string { return "avatar:" + ref }
func (stubURLs) ImageURL(_ context.Context, ref string) string  { return "image:" + ref }

type fakeRelationService struct {
	service.RelationService

	applyFn     func(ctx context.Context, op relation.Op, other string) (relation.Status, error)
	listFn      func(ctx context.Context) ([]service.FriendItem, error)
	friendsOfFn func(ctx context.Context, userUUID string) ([]service.FriendItem, error)
}

func (f *fakeRelationService) Apply(ctx context.Context, op relation.Op, other string) (relation.Status, error) {
	return f.applyFn(ctx, op, other)
}

func (f *fakeRelationService) ListFriends(ctx context.Context) ([]service.FriendItem, error) {
	return f.listFn(ctx)
}

func (f *fakeRelationService) FriendsOf(ctx context.Context, userUUID string) ([]service.FriendItem, error) {
	return f.friendsOfFn(ctx, userUUID)
}

type fakeFollowService struct {
	service.FollowService

	applyFn func(ctx context.Context, op relation.Op, publisher string) (relation.FollowerStatus, error)
}

func (f *fakeFollowService) Apply(ctx context.Context, op relation.Op, publisher string) (relation.FollowerStatus, error) {
	return f.applyFn(ctx, op, publisher)
}

type fakeProfileService struct {
	service.ProfileService

	getProfileFn func(ctx context.Context, idOrHandle string) (*service.Profile, error)
	statsFn      func(ctx context.Context) (*service.Stats, error)
}

func (f *fakeProfileService) GetProfile(ctx context.Context, idOrHandle string) (*service.Profile, error) {
	return f.getProfileFn(ctx, idOrHandle)
}

func (f *fakeProfileService) MyStats(ctx context.Context) (*service.Stats, error) {
	return f.statsFn(ctx)
}

type fakeFeedService struct {
	service.FeedService

	upcomingFn func(ctx context.Context, day *time.Time, page, limit int) (*service.EventPage, error)
	discoverFn func(ctx context.Context, from *time.Time, page, limit int) (*service.EventPage, error)
	datesFn    func(ctx context.Context) ([]time.Time, error)
}

func (f *fakeFeedService) Upcoming(ctx context.Context, day *time.Time, page, limit int) (*service.EventPage, error) {
	return f.upcomingFn(ctx, day, page, limit)
}

func (f *fakeFeedService) Discover(ctx context.Context, from *time.Time, page, limit int) (*service.EventPage, error) {
	return f.discoverFn(ctx, from, page, limit)
}

func (f *fakeFeedService) UpcomingDates(ctx context.Context) ([]time.Time, error) {
	return f.datesFn(ctx)
}

type fakeAttendanceService struct {
	followFn func(ctx context.Context, eventUUID string) error
}

func (f *fakeAttendanceService) FollowEvent(ctx context.Context, eventUUID string) error {
	return f.followFn(ctx, eventUUID)
}

func (f *fakeAttendanceService) UnfollowEvent(ctx context.Context, eventUUID string) error {
	return status.Error(codes.FailedPrecondition, strconv.Itoa(consts.CodeNotGoing))
}

type fakeActivityService struct {
	service.ActivityService

	listFn func(ctx context.Context, limit int) ([]service.ActivityItem, error)
}

func (f *fakeActivityService) ListMine(ctx context.Context, limit int) ([]service.ActivityItem, error) {
	return f.listFn(ctx, limit)
}

// ==================== helpers ====================

var routerLoggerOnce sync.Once

func initRouterTestLogger() {
	routerLoggerOnce.Do(func() {
		logger.ReplaceGlobal(zap.NewNop())
		gin.SetMode(gin.TestMode)
	})
}

type routerEnv struct {
	relations  *fakeRelationService
	follows    *fakeFollowService
	profiles   *fakeProfileService
	feeds      *fakeFeedService
	attendance *fakeAttendanceService
	activities *fakeActivityService
	opts       Options
}

func newRouterEnv() *routerEnv {
	return &routerEnv{
		relations:  &fakeRelationService{},
		follows:    &fakeFollowService{},
		profiles:   &fakeProfileService{},
		feeds:      &fakeFeedService{},
		attendance: &fakeAttendanceService{},
		activities: &fakeActivityService{},
		opts:       Options{ServiceName: "social-test", RequestTimeout: time.Second},
	}
}

func (e *routerEnv) engine() *gin.Engine {
	urls := stubURLs{}
	return InitRouter(Handlers{
		Friend:    v1.NewFriendHandler(e.relations, urls),
		Publisher: v1.NewPublisherHandler(e.follows, e.profiles, e.feeds, urls),
		Profile:   v1.NewProfileHandler(e.profiles, urls),
		Feed:      v1.NewFeedHandler(e.feeds, e.attendance),
		Activity:  v1.NewActivityHandler(e.activities, urls),
	}, e.opts)
}

type body struct {
	Code int32           `json:"code"`
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

func do(t *testing.T, r http.Handler, method, target, userUUID string) (*httptest.ResponseRecorder, body) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if userUUID != "" {
		token, err := util.GenerateToken(userUUID)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var b body
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	}
	return w, b
}

func viewer(t *testing.T, ctx context.Context) string {
	t.Helper()
	id, ok := ctxmeta.UserUUID(ctx)
	require.True(t, ok)
	return id
}

// ==================== tests ====================

func TestRouterHealth(t *testing.T) {
	initRouterTestLogger()
	r := newRouterEnv().engine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterUnauthorized(t *testing.T) {
	initRouterTestLogger()
	r := newRouterEnv().engine()

	w, b := do(t, r, http.MethodGet, "/api/v1/friends", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, int32(consts.CodeUnauthorized), b.Code)
	assert.Equal(t, result.KindUnauthenticated, b.Kind)
}

func TestRouterFriendApply(t *testing.T) {
	initRouterTestLogger()
	env := newRouterEnv()
	env.relations.applyFn = func(ctx context.Context, op relation.Op, other string) (relation.Status, error) {
		assert.Equal(t, "alice", viewer(t, ctx))
		assert.Equal(t, "bob", other)
		switch op {
		case relation.OpSend:
			return relation.Pending, nil
		case relation.OpAccept:
			return relation.Unrelated, status.Error(codes.FailedPrecondition, strconv.Itoa(consts.CodeRelationInvalidOp))
		default:
			return relation.Unrelated, status.Error(codes.Internal, strconv.Itoa(consts.CodeInternalError))
		}
	}
	r := env.engine()

	t.Run("send", func(t *testing.T) {
		w, b := do(t, r, http.MethodPost, "/api/v1/friends/bob/send", "alice")
		require.Equal(t, http.StatusOK, w.Code)
		var data struct {
			Status     string `json:"status"`
			StatusCode int8   `json:"statusCode"`
		}
		require.NoError(t, json.Unmarshal(b.Data, &data))
		assert.Equal(t, "PENDING", data.Status)
		assert.Equal(t, int8(1), data.StatusCode)
	})

	t.Run("invalid transition", func(t *testing.T) {
		w, b := do(t, r, http.MethodPost, "/api/v1/friends/bob/accept", "alice")
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, int32(consts.CodeRelationInvalidOp), b.Code)
		assert.Equal(t, result.KindInvalidTransition, b.Kind)
	})

	t.Run("follow is not a friend op", func(t *testing.T) {
		w, b := do(t, r, http.MethodPost, "/api/v1/friends/bob/follow", "alice")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, int32(consts.CodeParamError), b.Code)
	})

	t.Run("unknown op", func(t *testing.T) {
		w, _ := do(t, r, http.MethodPost, "/api/v1/friends/bob/poke", "alice")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRouterFollowApply(t *testing.T) {
	initRouterTestLogger()
	env := newRouterEnv()
	env.follows.applyFn = func(ctx context.Context, op relation.Op, publisher string) (relation.FollowerStatus, error) {
		assert.Equal(t, relation.OpFollow, op)
		assert.Equal(t, "pubA", publisher)
		return relation.Following, nil
	}
	r := env.engine()

	w, b := do(t, r, http.MethodPost, "/api/v1/publishers/pubA/follow", "alice")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(b.Data), `"FOLLOWING"`)

	w, _ = do(t, r, http.MethodPost, "/api/v1/publishers/pubA/accept", "alice")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouterFriendLists(t *testing.T) {
	initRouterTestLogger()
	env := newRouterEnv()
	handle := "bobby"
	env.relations.listFn = func(ctx context.Context) ([]service.FriendItem, error) {
		return []service.FriendItem{
			{User: &model.User{Uuid: "bob", Name: "Bob", Handle: &handle, Avatar: "user2"}, Status: relation.Accepted},
		}, nil
	}
	env.relations.friendsOfFn = func(ctx context.Context, userUUID string) ([]service.FriendItem, error) {
		return nil, status.Error(codes.NotFound, strconv.Itoa(consts.CodeUserNotFound))
	}
	r := env.engine()

	w, b := do(t, r, http.MethodGet, "/api/v1/friends", "alice")
	require.Equal(t, http.StatusOK, w.Code)
	var data struct {
		Items []struct {
			User struct {
				UUID   string `json:"uuid"`
				Handle string `json:"handle"`
				Avatar string `json:"avatar"`
			} `json:"user"`
			Status string `json:"status"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(b.Data, &data))
	require.Len(t, data.Items, 1)
	assert.Equal(t, "bob", data.Items[0].User.UUID)
	assert.Equal(t, "bobby", data.Items[0].User.Handle)
	assert.Equal(t, "avatar:user2", data.Items[0].User.Avatar)
	assert.Equal(t, "ACCEPTED", data.Items[0].Status)

	w, b = do(t, r, http.MethodGet, "/api/v1/users/dave/friends", "alice")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, int32(consts.CodeUserNotFound), b.Code)
}

func TestRouterProfile(t *testing.T) {
	initRouterTestLogger()
	env := newRouterEnv()
	env.profiles.getProfileFn = func(ctx context.Context, idOrHandle string) (*service.Profile, error) {
		assert.Equal(t, "@bob", idOrHandle)
		return &service.Profile{User: &model.User{Uuid: "bob"}, Status: relation.PendingYou}, nil
	}
	env.profiles.statsFn = func(ctx context.Context) (*service.Stats, error) {
		return &service.Stats{Friends: 3, Following: 2}, nil
	}
	r := env.engine()

	w, b := do(t, r, http.MethodGet, "/api/v1/users/@bob", "alice")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(b.Data), `"PENDING_YOU"`)

	w, b = do(t, r, http.MethodGet, "/api/v1/me/stats", "alice")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"friends":3,"following":2}`, string(b.Data))
}

func TestRouterFeed(t *testing.T) {
	initRouterTestLogger()
	env := newRouterEnv()
	eventDate := time.Date(2026, 3, 12, 20, 0, 0, 0, time.Local)
	env.feeds.discoverFn = func(ctx context.Context, from *time.Time, page, limit int) (*service.EventPage, error) {
		require.NotNil(t, from)
		assert.True(t, from.Equal(time.Date(2026, 3, 12, 0, 0, 0, 0, time.Local)))
		assert.Equal(t, 2, page)
		assert.Equal(t, 5, limit)
		return &service.EventPage{
			Items: []feed.EventView{{
				ID:             "e1",
				Date:           eventDate,
				Author:         feed.PersonView{ID: "pubA"},
				Friends:        []feed.PersonView{{ID: "bob"}},
				FollowersCount: 4,
			}},
			Total:    11,
			Page:     page,
			PageSize: limit,
		}, nil
	}
	env.feeds.upcomingFn = func(ctx context.Context, day *time.Time, page, limit int) (*service.EventPage, error) {
		assert.Nil(t, day)
		return &service.EventPage{Items: []feed.EventView{}, Page: 1, PageSize: 20}, nil
	}
	env.feeds.datesFn = func(ctx context.Context) ([]time.Time, error) {
		return []time.Time{eventDate, eventDate.AddDate(0, 0, 3)}, nil
	}
	r := env.engine()

	t.Run("discover with cursor", func(t *testing.T) {
		w, b := do(t, r, http.MethodGet, "/api/v1/feed/discover?date=2026-03-12&page=2&limit=5", "alice")
		require.Equal(t, http.StatusOK, w.Code)
		var data struct {
			Items []struct {
				UUID           string `json:"uuid"`
				FollowersCount int64  `json:"followersCount"`
				Friends        []struct {
					UUID string `json:"uuid"`
				} `json:"friends"`
			} `json:"items"`
			Pagination struct {
				Total      int64 `json:"total"`
				TotalPages int32 `json:"totalPages"`
			} `json:"pagination"`
		}
		require.NoError(t, json.Unmarshal(b.Data, &data))
		require.Len(t, data.Items, 1)
		assert.Equal(t, "e1", data.Items[0].UUID)
		assert.Equal(t, int64(4), data.Items[0].FollowersCount)
		require.Len(t, data.Items[0].Friends, 1)
		assert.Equal(t, int64(11), data.Pagination.Total)
		assert.Equal(t, int32(3), data.Pagination.TotalPages)
	})

	t.Run("invalid date", func(t *testing.T) {
		w, b := do(t, r, http.MethodGet, "/api/v1/feed/upcoming?date=2026-13-01", "alice")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, int32(consts.CodeInvalidDate), b.Code)
	})

	t.Run("limit too large", func(t *testing.T) {
		w, b := do(t, r, http.MethodGet, "/api/v1/feed/upcoming?limit=1000", "alice")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, int32(consts.CodeParamError), b.Code)
	})

	t.Run("upcoming without date", func(t *testing.T) {
		w, b := do(t, r, http.MethodGet, "/api/v1/feed/upcoming", "alice")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(b.Data), `"items":[]`)
	})

	t.Run("dates", func(t *testing.T) {
		w, b := do(t, r, http.MethodGet, "/api/v1/feed/upcoming/dates", "alice")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"dates":["2026-03-12","2026-03-15"]}`, string(b.Data))
	})
}

func TestRouterAttend(t *testing.T) {
	initRouterTestLogger()
	env := newRouterEnv()
	env.attendance.followFn = func(ctx context.Context, eventUUID string) error {
		if eventUUID == "missing" {
			return status.Error(codes.NotFound, strconv.Itoa(consts.CodeEventNotFound))
		}
		return nil
	}
	r := env.engine()

	w, _ := do(t, r, http.MethodPost, "/api/v1/events/e1/attend", "alice")
	assert.Equal(t, http.StatusOK, w.Code)

	w, b := do(t, r, http.MethodPost, "/api/v1/events/missing/attend", "alice")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, int32(consts.CodeEventNotFound), b.Code)

	w, b = do(t, r, http.MethodDelete, "/api/v1/events/e1/attend", "alice")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, int32(consts.CodeNotGoing), b.Code)
}

func TestRouterActivities(t *testing.T) {
	initRouterTestLogger()
	env := newRouterEnv()
	eventUUID := "e1"
	sentAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	env.activities.listFn = func(ctx context.Context, limit int) ([]service.ActivityItem, error) {
		assert.Equal(t, 50, limit)
		return []service.ActivityItem{{
			Activity: &model.Activity{Id: 1234567890123456789, Type: model.ActivityFriendRequest, EventUuid: &eventUUID, SentAt: sentAt},
			Creator:  &model.User{Uuid: "bob", Avatar: "user1"},
			Event:    &model.Event{Uuid: eventUUID, Name: "Jazz", Image: "e1.jpg"},
		}}, nil
	}
	r := env.engine()

	w, b := do(t, r, http.MethodGet, "/api/v1/activities", "alice")
	require.Equal(t, http.StatusOK, w.Code)
	var data struct {
		Items []struct {
			ID    string `json:"id"`
			Event struct {
				Image string `json:"image"`
			} `json:"event"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(b.Data, &data))
	require.Len(t, data.Items, 1)
	assert.Equal(t, "1234567890123456789", data.Items[0].ID)
	assert.Equal(t, "image:e1.jpg", data.Items[0].Event.Image)
}

func TestRouterUserRateLimit(t *testing.T) {
	initRouterTestLogger()
	env := newRouterEnv()
	env.opts.UserLimiter = middleware.NewRateLimiter(nil, 0.001, 1)
	env.relations.applyFn = func(ctx context.Context, op relation.Op, other string) (relation.Status, error) {
		return relation.Pending, nil
	}
	env.relations.listFn = func(ctx context.Context) ([]service.FriendItem, error) {
		return []service.FriendItem{}, nil
	}
	r := env.engine()

	w, _ := do(t, r, http.MethodPost, "/api/v1/friends/bob/send", "alice")
	assert.Equal(t, http.StatusOK, w.Code)
	w, b := do(t, r, http.MethodPost, "/api/v1/friends/carol/send", "alice")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, int32(consts.CodeTooManyRequests), b.Code)

	// 读接口不限流
	w, _ = do(t, r, http.MethodGet, "/api/v1/friends", "alice")
	assert.Equal(t, http.StatusOK, w.Code)
}
