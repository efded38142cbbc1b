package relation

import (
	"testing"

	"github.com/leyanessantiago/activate-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func friendEdge(status int8, updatedBy string) *model.Relationship {
	return &model.Relationship{Id: 7, PartyA: "a", PartyB: "b", Status: status, UpdatedBy: updatedBy}
}

func TestPlanFriend(t *testing.T) {
	tests := []struct {
		name         string
		op           Op
		edge         *model.Relationship
		me, other    string
		wantErr      error
		wantAction   Action
		wantStatus   int8
		wantActivity int8
	}{
		// send
		{"send creates pending", OpSend, nil, "b", "a", nil, ActionCreate, model.RelationshipPending, model.ActivityFriendRequest},
		{"send with existing edge", OpSend, friendEdge(model.RelationshipPending, "a"), "b", "a", ErrDuplicate, 0, 0, 0},
		{"send to accepted friend", OpSend, friendEdge(model.RelationshipAccepted, "a"), "a", "b", ErrDuplicate, 0, 0, 0},
		{"send to self", OpSend, nil, "a", "a", ErrSelf, 0, 0, 0},

		// accept
		{"accept received request", OpAccept, friendEdge(model.RelationshipPending, "a"), "b", "a", nil, ActionUpdate, model.RelationshipAccepted, model.ActivityFriendRequestAccepted},
		{"accept own request", OpAccept, friendEdge(model.RelationshipPending, "a"), "a", "b", ErrInvalidTransition, 0, 0, 0},
		{"accept twice", OpAccept, friendEdge(model.RelationshipAccepted, "b"), "b", "a", ErrInvalidTransition, 0, 0, 0},
		{"accept without edge", OpAccept, nil, "b", "a", ErrNotFound, 0, 0, 0},

		// decline
		{"decline pending", OpDecline, friendEdge(model.RelationshipPending, "a"), "b", "a", nil, ActionDelete, model.RelationshipPending, 0},
		{"requester cancels own request", OpDecline, friendEdge(model.RelationshipPending, "a"), "a", "b", nil, ActionDelete, model.RelationshipPending, 0},
		{"decline accepted", OpDecline, friendEdge(model.RelationshipAccepted, "a"), "b", "a", ErrInvalidTransition, 0, 0, 0},

		// mute / unmute
		{"mute friend", OpMute, friendEdge(model.RelationshipAccepted, "a"), "b", "a", nil, ActionUpdate, model.RelationshipMuted, 0},
		{"mute muted", OpMute, friendEdge(model.RelationshipMuted, "a"), "b", "a", ErrInvalidTransition, 0, 0, 0},
		{"unmute by muter", OpUnmute, friendEdge(model.RelationshipMuted, "a"), "a", "b", nil, ActionUpdate, model.RelationshipAccepted, 0},
		{"unmute by other party", OpUnmute, friendEdge(model.RelationshipMuted, "a"), "b", "a", ErrInvalidTransition, 0, 0, 0},
		{"unmute not muted", OpUnmute, friendEdge(model.RelationshipAccepted, "a"), "a", "b", ErrInvalidTransition, 0, 0, 0},

		// block / unblock
		{"block friend", OpBlock, friendEdge(model.RelationshipAccepted, "a"), "b", "a", nil, ActionUpdate, model.RelationshipBlocked, 0},
		{"block blocked", OpBlock, friendEdge(model.RelationshipBlocked, "a"), "b", "a", ErrInvalidTransition, 0, 0, 0},
		{"block without edge", OpBlock, nil, "b", "a", ErrNotFound, 0, 0, 0},
		{"unblock by blocker", OpUnblock, friendEdge(model.RelationshipBlocked, "a"), "a", "b", nil, ActionUpdate, model.RelationshipAccepted, 0},
		{"unblock by blocked party", OpUnblock, friendEdge(model.RelationshipBlocked, "a"), "b", "a", ErrInvalidTransition, 0, 0, 0},

		// remove
		{"remove friend", OpRemove, friendEdge(model.RelationshipAccepted, "a"), "b", "a", nil, ActionDelete, model.RelationshipAccepted, 0},
		{"remove muted friend", OpRemove, friendEdge(model.RelationshipMuted, "b"), "a", "b", nil, ActionDelete, model.RelationshipMuted, 0},
		{"remove pending", OpRemove, friendEdge(model.RelationshipPending, "a"), "a", "b", ErrInvalidTransition, 0, 0, 0},
		{"remove without edge", OpRemove, nil, "a", "b", ErrNotFound, 0, 0, 0},

		{"follow op on friend edge", OpFollow, friendEdge(model.RelationshipAccepted, "a"), "a", "b", ErrInvalidTransition, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := PlanFriend(tt.op, tt.edge, tt.me, tt.other)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, plan.Activity, "rejected transitions must not emit activity")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAction, plan.Action)
			assert.Equal(t, tt.wantStatus, plan.Next.Status)
			assert.Equal(t, tt.wantActivity, plan.Activity)
			if plan.Action != ActionDelete {
				assert.Equal(t, tt.me, plan.Next.UpdatedBy)
			}
		})
	}
}

func TestPlanFriendSendNormalizesPair(t *testing.T) {
	plan, err := PlanFriend(OpSend, nil, "zed", "amy")
	require.NoError(t, err)

	assert.Equal(t, "amy", plan.Next.PartyA)
	assert.Equal(t, "zed", plan.Next.PartyB)
	assert.Equal(t, "zed", plan.Next.UpdatedBy)
}

func TestPlanFriendUpdateKeepsIdentity(t *testing.T) {
	edge := friendEdge(model.RelationshipPending, "a")
	plan, err := PlanFriend(OpAccept, edge, "b", "a")
	require.NoError(t, err)

	assert.Equal(t, edge.Id, plan.Next.Id)
	assert.Equal(t, edge.PartyA, plan.Next.PartyA)
	assert.Equal(t, edge.PartyB, plan.Next.PartyB)
	// 原边不被修改，CAS 需要用它作为期望值
	assert.Equal(t, model.RelationshipPending, edge.Status)
	assert.Equal(t, "a", edge.UpdatedBy)
}

func TestFriendLifecycle(t *testing.T) {
	// A 发送 -> 双方视角 -> B 接受 -> 双方都是好友
	send, err := PlanFriend(OpSend, nil, "a", "b")
	require.NoError(t, err)
	edge := send.Next
	assert.Equal(t, Pending, ViewerStatus(&edge, "a"))
	assert.Equal(t, PendingYou, ViewerStatus(&edge, "b"))

	accept, err := PlanFriend(OpAccept, &edge, "b", "a")
	require.NoError(t, err)
	edge = accept.Next
	assert.Equal(t, Accepted, ViewerStatus(&edge, "a"))
	assert.Equal(t, Accepted, ViewerStatus(&edge, "b"))

	// A 拉黑 B：A 看到 BLOCKED，B 看到 BLOCKED_YOU
	block, err := PlanFriend(OpBlock, &edge, "a", "b")
	require.NoError(t, err)
	edge = block.Next
	assert.Equal(t, Blocked, ViewerStatus(&edge, "a"))
	assert.Equal(t, BlockedYou, ViewerStatus(&edge, "b"))
}

func TestSendDeclineSend(t *testing.T) {
	send, err := PlanFriend(OpSend, nil, "a", "b")
	require.NoError(t, err)
	edge := send.Next

	decline, err := PlanFriend(OpDecline, &edge, "b", "a")
	require.NoError(t, err)
	require.Equal(t, ActionDelete, decline.Action)

	// 边已删除，可以再次发送
	_, err = PlanFriend(OpSend, nil, "a", "b")
	assert.NoError(t, err)
}
