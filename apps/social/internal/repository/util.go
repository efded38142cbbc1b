package repository

import (
	"math/rand"
	"time"

	"gorm.io/gorm"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
)

// normalizePage 兜底分页参数，返回 offset 与 limit
func normalizePage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = defaultPage
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return (page - 1) * pageSize, pageSize
}

// withStatuses 按状态过滤，statuses 为空表示不过滤
func withStatuses(query *gorm.DB, statuses []int8) *gorm.DB {
	switch len(statuses) {
	case 0:
		return query
	case 1:
		return query.Where("status = ?", statuses[0])
	default:
		return query.Where("status IN ?", statuses)
	}
}

// getRandomExpireTime 生成带随机抖动的过期时间
// 返回: 基础过期时间 ± 10% 的随机时间，避免同一批 key 集中过期
func getRandomExpireTime(baseExpire time.Duration) time.Duration {
	jitterRange := float64(baseExpire) * 0.1
	jitter := time.Duration(rand.Float64()*jitterRange*2 - jitterRange)

	return baseExpire + jitter
}
