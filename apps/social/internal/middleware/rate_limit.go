package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/leyanessantiago/activate-api/consts"
	"github.com/leyanessantiago/activate-api/consts/redisKey"
	"github.com/leyanessantiago/activate-api/pkg/ctxmeta"
	"github.com/leyanessantiago/activate-api/pkg/logger"
	"github.com/leyanessantiago/activate-api/pkg/result"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// luaTokenBucket Redis 令牌桶
//
//	KEYS[1]: 限流 key
//	ARGV[1]: 当前时间戳 (毫秒)
//	ARGV[2]: 桶容量
//	ARGV[3]: 每秒产生的令牌数
//	ARGV[4]: 本次消耗的令牌数
//
// 返回 1 放行，0 限流
const luaTokenBucket = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local rate = tonumber(ARGV[3])
local requested = tonumber(ARGV[4])

local info = redis.call('HMGET', key, 'tokens', 'last_time')
local current_tokens = tonumber(info[1])
local last_time = tonumber(info[2])

if current_tokens == nil then
    current_tokens = capacity
end
if last_time == nil then
    last_time = now
end

local time_diff = math.max(0, now - last_time)
local new_tokens = math.floor((time_diff * rate) / 1000)

-- 只有产生了新令牌才推进时间，防止精度丢失
if new_tokens > 0 then
    current_tokens = math.min(capacity, current_tokens + new_tokens)
    last_time = now
end

local allowed = 0
if current_tokens >= requested then
    current_tokens = current_tokens - requested
    allowed = 1
end

redis.call('HMSET', key, 'tokens', current_tokens, 'last_time', last_time)

local fill_time = math.ceil(capacity / rate)
local ttl = math.max(60, fill_time * 2)
redis.call('EXPIRE', key, ttl)

return allowed
`

const (
	redisLimitTimeout = 50 * time.Millisecond
	// 本地桶超过该数量时清理长时间未使用的 key
	localLimiterSweepSize = 10000
	localLimiterIdle      = 10 * time.Minute
)

type localLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter 令牌桶限流器
// 优先使用 Redis（多实例共享配额），Redis 未配置或出错时退化为进程内 x/time/rate 限流
type RateLimiter struct {
	client *redis.Client
	rate   float64
	burst  int

	mu    sync.Mutex
	local map[string]*localLimiter
}

// NewRateLimiter client 可以为 nil（Redis 降级）
func NewRateLimiter(client *redis.Client, r float64, burst int) *RateLimiter {
	return &RateLimiter{
		client: client,
		rate:   r,
		burst:  burst,
		local:  make(map[string]*localLimiter),
	}
}

// Allow 判断 key 是否还有令牌
func (l *RateLimiter) Allow(ctx context.Context, key string) bool {
	if l.client == nil {
		return l.allowLocal(key)
	}

	redisCtx, cancel := context.WithTimeout(ctx, redisLimitTimeout)
	defer cancel()

	res, err := l.client.Eval(redisCtx, luaTokenBucket, []string{key}, time.Now().UnixMilli(), l.burst, l.rate, 1).Result()
	if err != nil {
		logger.Warn(ctx, "Redis 限流检查失败，使用本地限流",
			logger.String("key", key),
			logger.ErrorField("error", err),
		)
		return l.allowLocal(key)
	}

	allowed, ok := res.(int64)
	if !ok {
		logger.Warn(ctx, "Redis 限流返回值类型错误，使用本地限流",
			logger.String("key", key),
			logger.Any("result", res),
		)
		return l.allowLocal(key)
	}
	return allowed == 1
}

func (l *RateLimiter) allowLocal(key string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.local) >= localLimiterSweepSize {
		for k, v := range l.local {
			if now.Sub(v.lastSeen) > localLimiterIdle {
				delete(l.local, k)
			}
		}
	}

	entry, ok := l.local[key]
	if !ok {
		entry = &localLimiter{limiter: rate.NewLimiter(rate.Limit(l.rate), l.burst)}
		l.local[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// CheckBlacklist IP 是否在黑名单 Set 中，Redis 不可用时视为不在
func CheckBlacklist(ctx context.Context, client *redis.Client, blacklistKey, ip string) bool {
	if client == nil || blacklistKey == "" {
		return false
	}

	redisCtx, cancel := context.WithTimeout(ctx, redisLimitTimeout)
	defer cancel()

	exists, err := client.SIsMember(redisCtx, blacklistKey, ip).Result()
	if err != nil {
		logger.Warn(ctx, "Redis 黑名单检查失败，降级放行",
			logger.String("ip", ip),
			logger.ErrorField("error", err),
		)
		return false
	}
	return exists
}

// IPRateLimitMiddleware IP 黑名单 + IP 级别限流
func IPRateLimitMiddleware(limiter *RateLimiter, blacklistKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ctxmeta.FromGin(c)

		ip, ok := GetClientIPSafe(c)
		if !ok {
			logger.Warn(ctx, "无法获取客户端 IP，跳过限流检查",
				logger.String("path", c.Request.URL.Path),
			)
			c.Next()
			return
		}

		if CheckBlacklist(ctx, limiter.client, blacklistKey, ip) {
			logger.Warn(ctx, "IP 在黑名单中，拒绝访问",
				logger.String("ip", ip),
				logger.String("path", c.Request.URL.Path),
			)
			result.Abort(c, consts.CodePermissionDeny)
			return
		}

		if !limiter.Allow(ctx, rediskey.IPRateLimitKey(ip)) {
			logger.Warn(ctx, "IP 请求被限流",
				logger.String("ip", ip),
				logger.String("path", c.Request.URL.Path),
				logger.String("method", c.Request.Method),
			)
			result.Abort(c, consts.CodeTooManyRequests)
			return
		}
		c.Next()
	}
}

// UserRateLimitMiddleware 用户级别限流，需放在 JWTAuthMiddleware 之后
func UserRateLimitMiddleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userUUID, ok := GetUserUUID(c)
		if !ok {
			c.Next()
			return
		}

		ctx := ctxmeta.FromGin(c)
		if !limiter.Allow(ctx, rediskey.UserRateLimitKey(userUUID)) {
			logger.Warn(ctx, "用户请求被限流",
				logger.String("user_uuid", userUUID),
				logger.String("path", c.Request.URL.Path),
				logger.String("method", c.Request.Method),
			)
			result.Abort(c, consts.CodeTooManyRequests)
			return
		}
		c.Next()
	}
}
