package config

import "time"

// AsyncConfig 协程池配置。
// 只用于请求内派生的后台任务（如动态消息投递），不负责定时调度。
type AsyncConfig struct {
	PoolSize         int           `json:"poolSize" yaml:"poolSize"`                 // 协程池容量
	MaxBlockingTasks int           `json:"maxBlockingTasks" yaml:"maxBlockingTasks"` // 最大阻塞任务数（0 表示不限制）
	ExpiryDuration   time.Duration `json:"expiryDuration" yaml:"expiryDuration"`     // 空闲 worker 过期时间
	Nonblocking      bool          `json:"nonblocking" yaml:"nonblocking"`           // 池满时直接返回错误而不是等待
	ReleaseTimeout   time.Duration `json:"releaseTimeout" yaml:"releaseTimeout"`     // 退出时等待任务完成的时间
	TaskTimeout      time.Duration `json:"taskTimeout" yaml:"taskTimeout"`           // 单个任务默认超时
}

// DefaultAsyncConfig 返回默认配置
func DefaultAsyncConfig() AsyncConfig {
	return AsyncConfig{
		PoolSize:       128,
		ExpiryDuration: 10 * time.Second,
		Nonblocking:    true,
		ReleaseTimeout: 5 * time.Second,
		TaskTimeout:    5 * time.Second,
	}
}
