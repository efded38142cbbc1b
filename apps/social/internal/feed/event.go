package feed

import (
	"math"
	"time"
)

// Person 活动作者或参与者的最小信息（头像为原始引用，投影时再解析）
type Person struct {
	ID     string
	Name   string
	Avatar string
}

// RawEvent repository 组装好的活动原始记录
type RawEvent struct {
	ID          string
	Name        string
	Date        time.Time
	Address     string
	Description string
	Image       string
	CategoryID  int64
	Author      Person
	// FollowersCount 报名总人数（未经任何过滤）
	FollowersCount int64
	// Attendees 报名者中与 viewer 相关的部分：viewer 本人与 viewer 的好友，按报名时间升序。
	// 不做拉黑过滤，"我是否参加"和排序用的好友数都基于它
	Attendees []Person
}

// Viewer 单个请求内 viewer 的社交图快照
type Viewer struct {
	ID        string
	Friends   IDSet
	Avoid     IDSet
	Relevance map[int64]float64 // 分类 id -> 兴趣权重
}

// RelevanceOf 未评分的分类视为 -Inf，排在所有已评分分类之后
func (v Viewer) RelevanceOf(categoryID int64) float64 {
	if r, ok := v.Relevance[categoryID]; ok {
		return r
	}
	return math.Inf(-1)
}
