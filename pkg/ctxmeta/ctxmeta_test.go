package ctxmeta

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestFromGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Set(KeyTraceID, "t-1")
	c.Set(KeyUserUUID, "u-1")

	ctx := FromGin(c)

	assert.Equal(t, "t-1", TraceID(ctx))
	id, ok := UserUUID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "u-1", id)
}

func TestPropagateDetachesCancel(t *testing.T) {
	parent, cancel := context.WithCancel(WithUserUUID(context.Background(), "u-1"))
	cancel()

	ctx := Propagate(parent)

	assert.NoError(t, ctx.Err())
	id, ok := UserUUID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "u-1", id)
	assert.Empty(t, TraceID(ctx))
}

func TestUserUUIDMissing(t *testing.T) {
	_, ok := UserUUID(context.Background())
	assert.False(t, ok)

	_, ok = UserUUID(WithUserUUID(context.Background(), ""))
	assert.False(t, ok)
}
