package rediskey

import (
	"fmt"
	"time"
)

// ==================== TTL 常量 ====================

const (
	// ActivityUnreadTTL 未读动态计数 TTL，超过后按 0 处理
	ActivityUnreadTTL = 30 * 24 * time.Hour
)

// ==================== Key 构造函数 ====================

// ActivityUnreadKey 未读动态计数 Key: activity:unread:{user_id}
func ActivityUnreadKey(userID string) string {
	return fmt.Sprintf("activity:unread:%s", userID)
}

// IPRateLimitKey IP 限流 Key: activate:rate:limit:ip:{ip}
func IPRateLimitKey(ip string) string {
	return fmt.Sprintf("activate:rate:limit:ip:%s", ip)
}

// UserRateLimitKey 用户限流 Key: activate:rate:limit:user:{user_id}
func UserRateLimitKey(userID string) string {
	return fmt.Sprintf("activate:rate:limit:user:%s", userID)
}
