package repository

const (
	// luaIncrIfExists 计数器递增（仅在 key 存在时）
	// KEYS[1]: 计数器 key
	// ARGV[1]: 过期时间（秒）
	// 返回: 递增后的值，key 不存在返回 -1
	luaIncrIfExists = `
if redis.call('EXISTS', KEYS[1]) == 1 then
	local current = redis.call('INCR', KEYS[1])
	redis.call('EXPIRE', KEYS[1], ARGV[1])
	return current
end
return -1
`
)
