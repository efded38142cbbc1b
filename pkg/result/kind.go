package result

import (
	"net/http"

	"github.com/leyanessantiago/activate-api/consts"
)

// 机器可读的错误类别，客户端据此分支处理，Message 只用于展示
const (
	KindNotFound          = "NotFound"
	KindInvalidTransition = "InvalidTransition"
	KindDuplicateRelation = "DuplicateRelation"
	KindValidation        = "Validation"
	KindUnauthenticated   = "Unauthenticated"
	KindPermissionDenied  = "PermissionDenied"
	KindRateLimited       = "RateLimited"
	KindInternal          = "Internal"
)

type kindStatus struct {
	kind   string
	status int
}

var codeKinds = map[int32]kindStatus{
	consts.CodeSuccess: {"", http.StatusOK},

	consts.CodeParamError:       {KindValidation, http.StatusBadRequest},
	consts.CodeBodyError:        {KindValidation, http.StatusBadRequest},
	consts.CodeBodyTooLarge:     {KindValidation, http.StatusRequestEntityTooLarge},
	consts.CodeMethodNotAllowed: {KindValidation, http.StatusMethodNotAllowed},
	consts.CodeInvalidDate:      {KindValidation, http.StatusBadRequest},
	consts.CodeCannotRelateSelf: {KindValidation, http.StatusBadRequest},
	consts.CodeCannotFollowSelf: {KindValidation, http.StatusBadRequest},

	consts.CodeResourceNotFound:  {KindNotFound, http.StatusNotFound},
	consts.CodeUserNotFound:      {KindNotFound, http.StatusNotFound},
	consts.CodePublisherNotFound: {KindNotFound, http.StatusNotFound},
	consts.CodeRelationNotFound:  {KindNotFound, http.StatusNotFound},
	consts.CodeFollowNotFound:    {KindNotFound, http.StatusNotFound},
	consts.CodeEventNotFound:     {KindNotFound, http.StatusNotFound},

	consts.CodeRelationInvalidOp:  {KindInvalidTransition, http.StatusConflict},
	consts.CodeRelationConcurrent: {KindInvalidTransition, http.StatusConflict},
	consts.CodeFollowInvalidOp:    {KindInvalidTransition, http.StatusConflict},
	consts.CodeAlreadyFollowing:   {KindInvalidTransition, http.StatusConflict},
	consts.CodeAlreadyGoing:       {KindInvalidTransition, http.StatusConflict},
	consts.CodeNotGoing:           {KindInvalidTransition, http.StatusConflict},

	consts.CodeRelationExists: {KindDuplicateRelation, http.StatusConflict},

	consts.CodeUnauthorized:   {KindUnauthenticated, http.StatusUnauthorized},
	consts.CodeInvalidToken:   {KindUnauthenticated, http.StatusUnauthorized},
	consts.CodeTokenExpired:   {KindUnauthenticated, http.StatusUnauthorized},
	consts.CodePermissionDeny: {KindPermissionDenied, http.StatusForbidden},

	consts.CodeTooManyRequests: {KindRateLimited, http.StatusTooManyRequests},

	consts.CodeInternalError:      {KindInternal, http.StatusInternalServerError},
	consts.CodeServiceUnavailable: {KindInternal, http.StatusServiceUnavailable},
	consts.CodeTimeoutError:       {KindInternal, http.StatusGatewayTimeout},
}

// KindOf 返回业务码对应的错误类别与 HTTP 状态码
func KindOf(code int32) (string, int) {
	if ks, ok := codeKinds[code]; ok {
		return ks.kind, ks.status
	}
	return KindInternal, http.StatusInternalServerError
}
