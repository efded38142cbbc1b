package relation

import (
	"testing"

	"github.com/leyanessantiago/activate-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func followEdge(status int8, updatedBy string) *model.Follower {
	return &model.Follower{Id: 3, ConsumerUuid: "c", PublisherUuid: "p", Status: status, UpdatedBy: updatedBy}
}

func TestPlanFollow(t *testing.T) {
	tests := []struct {
		name         string
		op           Op
		edge         *model.Follower
		wantErr      error
		wantAction   Action
		wantStatus   int8
		wantActivity int8
	}{
		{"follow", OpFollow, nil, nil, ActionCreate, model.FollowerFollowing, model.ActivityNewFollower},
		{"follow twice", OpFollow, followEdge(model.FollowerFollowing, "c"), ErrInvalidTransition, 0, 0, 0},
		{"follow blocked publisher", OpFollow, followEdge(model.FollowerBlocked, "c"), ErrInvalidTransition, 0, 0, 0},

		{"mute", OpMute, followEdge(model.FollowerFollowing, "c"), nil, ActionUpdate, model.FollowerMuted, 0},
		{"mute muted", OpMute, followEdge(model.FollowerMuted, "c"), ErrInvalidTransition, 0, 0, 0},
		{"mute without edge", OpMute, nil, ErrNotFound, 0, 0, 0},
		{"unmute", OpUnmute, followEdge(model.FollowerMuted, "c"), nil, ActionUpdate, model.FollowerFollowing, 0},
		{"unmute not muted", OpUnmute, followEdge(model.FollowerFollowing, "c"), ErrInvalidTransition, 0, 0, 0},
		{"unmute muted by publisher", OpUnmute, followEdge(model.FollowerMuted, "p"), ErrInvalidTransition, 0, 0, 0},

		{"block", OpBlock, followEdge(model.FollowerMuted, "c"), nil, ActionUpdate, model.FollowerBlocked, 0},
		{"block blocked", OpBlock, followEdge(model.FollowerBlocked, "c"), ErrInvalidTransition, 0, 0, 0},
		{"unblock", OpUnblock, followEdge(model.FollowerBlocked, "c"), nil, ActionUpdate, model.FollowerFollowing, 0},
		{"unblock not blocked", OpUnblock, followEdge(model.FollowerFollowing, "c"), ErrInvalidTransition, 0, 0, 0},

		{"remove", OpRemove, followEdge(model.FollowerBlocked, "c"), nil, ActionDelete, model.FollowerBlocked, 0},
		{"remove without edge", OpRemove, nil, ErrNotFound, 0, 0, 0},
		{"friend-only op", OpAccept, followEdge(model.FollowerFollowing, "c"), ErrInvalidTransition, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := PlanFollow(tt.op, tt.edge, "c", "p")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, plan.Activity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAction, plan.Action)
			assert.Equal(t, tt.wantStatus, plan.Next.Status)
			assert.Equal(t, tt.wantActivity, plan.Activity)
			assert.Equal(t, "c", plan.Next.ConsumerUuid)
			assert.Equal(t, "p", plan.Next.PublisherUuid)
		})
	}
}

func TestPlanFollowSelf(t *testing.T) {
	_, err := PlanFollow(OpFollow, nil, "p", "p")
	assert.ErrorIs(t, err, ErrSelf)
}
