package feed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeURLs struct{}

func (fakeURLs) AvatarURL(_ context.Context, ref string) string { return "avatar:" + ref }
func (fakeURLs) ImageURL(_ context.Context, ref string) string  { return "image:" + ref }

func TestProject(t *testing.T) {
	date := time.Date(2026, 5, 1, 18, 0, 0, 0, time.Local)
	ev := RawEvent{
		ID:             "e1",
		Name:           "Jazz night",
		Date:           date,
		Address:        "Main St 1",
		Description:    "live music",
		Image:          "e1.jpg",
		Author:         Person{ID: "p1", Name: "Club", Avatar: "club.png"},
		FollowersCount: 12,
		Attendees:      people("f1", "v", "f2", "f3", "f4", "f5"),
	}
	v := Viewer{ID: "v", Friends: NewIDSet("f1", "f2", "f3", "f4", "f5"), Avoid: NewIDSet("f3")}

	got := NewProjector(fakeURLs{}).Project(context.Background(), ev, v)

	assert.Equal(t, "e1", got.ID)
	assert.Equal(t, "image:e1.jpg", got.Image)
	assert.Equal(t, PersonView{ID: "p1", Name: "Club", Avatar: "avatar:club.png"}, got.Author)
	assert.True(t, got.Going)
	assert.Equal(t, int64(11), got.FollowersCount, "viewer is not counted in followers")
	assert.Equal(t, []PersonView{
		{ID: "f1", Avatar: "avatar:f1.png"},
		{ID: "f2", Avatar: "avatar:f2.png"},
		{ID: "f4", Avatar: "avatar:f4.png"},
		{ID: "f5", Avatar: "avatar:f5.png"},
	}, got.Friends)
}

func TestProjectNotGoing(t *testing.T) {
	ev := RawEvent{ID: "e1", FollowersCount: 3, Attendees: people("f1")}
	v := Viewer{ID: "v", Friends: NewIDSet("f1")}

	got := NewProjector(fakeURLs{}).Project(context.Background(), ev, v)

	assert.False(t, got.Going)
	assert.Equal(t, int64(3), got.FollowersCount)
	assert.Len(t, got.Friends, 1)
}

func TestProjectAllKeepsOrder(t *testing.T) {
	events := []RawEvent{{ID: "b"}, {ID: "a"}}

	got := NewProjector(fakeURLs{}).ProjectAll(context.Background(), events, Viewer{ID: "v"})

	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
	assert.NotNil(t, got[0].Friends)
}
