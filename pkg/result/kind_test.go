package result

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/leyanessantiago/activate-api/consts"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name       string
		code       int32
		wantKind   string
		wantStatus int
	}{
		{"success", consts.CodeSuccess, "", http.StatusOK},
		{"duplicate relation", consts.CodeRelationExists, KindDuplicateRelation, http.StatusConflict},
		{"invalid transition", consts.CodeRelationInvalidOp, KindInvalidTransition, http.StatusConflict},
		{"double follow", consts.CodeAlreadyFollowing, KindInvalidTransition, http.StatusConflict},
		{"hidden profile", consts.CodeUserNotFound, KindNotFound, http.StatusNotFound},
		{"bad date", consts.CodeInvalidDate, KindValidation, http.StatusBadRequest},
		{"unauthenticated", consts.CodeUnauthorized, KindUnauthenticated, http.StatusUnauthorized},
		{"unknown code", 99999, KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, status := KindOf(tt.code)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestFailWritesKindAndStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("trace_id", "trace-1")

	Fail(c, nil, consts.CodeRelationExists)

	require.Equal(t, http.StatusConflict, w.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int32(consts.CodeRelationExists), resp.Code)
	assert.Equal(t, KindDuplicateRelation, resp.Kind)
	assert.Equal(t, consts.GetMessage(consts.CodeRelationExists), resp.Message)
	assert.Equal(t, "trace-1", resp.TraceId)
}
