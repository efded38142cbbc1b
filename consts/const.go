package consts

// 通用错误码
const (
	CodeSuccess = 0 // 成功
)

// 客户端错误 (1xxxx)
const (
	CodeParamError       = 10001 // 参数验证失败
	CodeBodyError        = 10002 // 请求体格式错误
	CodeResourceNotFound = 10003 // 资源不存在
	CodeMethodNotAllowed = 10004 // 请求方法不允许
	CodeTooManyRequests  = 10005 // 请求过于频繁
	CodeBodyTooLarge     = 10006 // 请求体过大
)

// 认证错误 (2xxxx)
const (
	CodeUnauthorized   = 20001 // 未认证
	CodeInvalidToken   = 20002 // Token 无效
	CodeTokenExpired   = 20003 // Token 已过期
	CodePermissionDeny = 20004 // 权限不足
)

// 用户模块错误 (11xxx)
const (
	CodeUserNotFound      = 11001 // 用户不存在（包括被对方拉黑后不可见）
	CodePublisherNotFound = 11002 // 主办方不存在
)

// 好友关系错误 (12xxx)
const (
	CodeRelationExists     = 12001 // 双方已存在关系记录
	CodeRelationNotFound   = 12002 // 双方不存在关系记录
	CodeRelationInvalidOp  = 12003 // 当前关系状态不允许该操作
	CodeCannotRelateSelf   = 12004 // 不能对自己操作
	CodeRelationConcurrent = 12005 // 关系已被并发修改
)

// 关注主办方错误 (13xxx)
const (
	CodeFollowNotFound   = 13001 // 未关注该主办方
	CodeFollowInvalidOp  = 13002 // 当前关注状态不允许该操作
	CodeAlreadyFollowing = 13003 // 已关注
	CodeCannotFollowSelf = 13004 // 不能关注自己
)

// 活动错误 (14xxx)
const (
	CodeEventNotFound = 14001 // 活动不存在
	CodeAlreadyGoing  = 14002 // 已报名该活动
	CodeNotGoing      = 14003 // 未报名该活动
)

// 推荐流错误 (15xxx)
const (
	CodeInvalidDate = 15001 // 日期格式错误
)

// 服务端错误 (3xxxx)
const (
	CodeInternalError      = 30001 // 服务器内部错误
	CodeServiceUnavailable = 30002 // 服务暂不可用
	CodeTimeoutError       = 30003 // 请求超时
)

// 错误消息映射
var CodeMessage = map[int32]string{
	CodeSuccess: "success",

	// 客户端错误
	CodeParamError:       "参数验证失败",
	CodeBodyError:        "请求体格式错误",
	CodeResourceNotFound: "资源不存在",
	CodeMethodNotAllowed: "请求方法不允许",
	CodeTooManyRequests:  "请求过于频繁",
	CodeBodyTooLarge:     "请求体过大",

	// 认证错误
	CodeUnauthorized:   "未认证",
	CodeInvalidToken:   "Token 无效",
	CodeTokenExpired:   "Token 已过期",
	CodePermissionDeny: "权限不足",

	// 用户模块
	CodeUserNotFound:      "用户不存在",
	CodePublisherNotFound: "主办方不存在",

	// 好友关系
	CodeRelationExists:     "已存在好友关系或申请",
	CodeRelationNotFound:   "不存在该好友关系",
	CodeRelationInvalidOp:  "当前关系状态不允许该操作",
	CodeCannotRelateSelf:   "不能对自己进行该操作",
	CodeRelationConcurrent: "关系状态已变化，请刷新后重试",

	// 关注主办方
	CodeFollowNotFound:   "未关注该主办方",
	CodeFollowInvalidOp:  "当前关注状态不允许该操作",
	CodeAlreadyFollowing: "已关注该主办方",
	CodeCannotFollowSelf: "不能关注自己",

	// 活动
	CodeEventNotFound: "活动不存在",
	CodeAlreadyGoing:  "已报名该活动",
	CodeNotGoing:      "未报名该活动",

	// 推荐流
	CodeInvalidDate: "日期格式错误",

	// 服务端错误
	CodeInternalError:      "服务器内部错误",
	CodeServiceUnavailable: "服务暂不可用",
	CodeTimeoutError:       "请求超时",
}

// GetMessage 根据错误码获取错误消息
func GetMessage(code int32) string {
	if msg, ok := CodeMessage[code]; ok {
		return msg
	}
	return "未知错误"
}

// IsNonServerError 判断是否为客户端/业务错误（可以直接把错误码透传给调用方）
func IsNonServerError(code int) bool {
	return code > CodeSuccess && code < CodeInternalError
}
