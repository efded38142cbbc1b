package redis

import (
	"context"
	"fmt"
	"sync"

	"github.com/leyanessantiago/activate-api/config"

	"github.com/redis/go-redis/v9"
)

var (
	global   *redis.Client
	globalMu sync.RWMutex
)

// Client 返回全局 Redis 客户端（未初始化或降级时为 nil）
func Client() *redis.Client {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global
}

// ReplaceGlobal 设置全局 Redis 客户端
func ReplaceGlobal(c *redis.Client) {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = c
}

// Build 创建 Redis 客户端并 Ping 一次，连接失败时返回错误（由调用方决定是否降级）
func Build(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout+cfg.ReadTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// Close 关闭全局客户端
func Close() error {
	globalMu.Lock()
	defer globalMu.Unlock()
	if global == nil {
		return nil
	}
	err := global.Close()
	global = nil
	return err
}
