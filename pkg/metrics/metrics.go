// Package metrics 业务指标。HTTP 请求指标在 middleware.PrometheusMiddleware 中采集。
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "activate"

var (
	relationTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relation_transitions_total",
			Help:      "Total number of relationship/follower state transitions by result",
		},
		[]string{"edge", "op", "result"},
	)

	feedBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "feed_build_duration_seconds",
			Help:      "Duration of feed assembly in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"feed"},
	)

	feedCandidates = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "feed_candidates",
			Help:      "Number of candidate events loaded per feed request",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		},
		[]string{"feed"},
	)

	activityPublish = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activity_publish_total",
			Help:      "Total number of activity records by stage and result",
		},
		[]string{"stage", "result"},
	)

	pushConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "push_connections",
			Help:      "Number of online websocket connections",
		},
	)
)

// RecordTransition 记录一次状态迁移，edge 为 friend/publisher/event，result 为 ok 或错误类别
func RecordTransition(edge, op, result string) {
	relationTransitions.WithLabelValues(edge, op, result).Inc()
}

// ObserveFeed 记录一次推荐流构建耗时与候选数量
func ObserveFeed(feed string, elapsed time.Duration, candidates int) {
	feedBuildDuration.WithLabelValues(feed).Observe(elapsed.Seconds())
	feedCandidates.WithLabelValues(feed).Observe(float64(candidates))
}

// RecordActivity 记录动态消息在 store/counter/publish 各阶段的结果
func RecordActivity(stage, result string) {
	activityPublish.WithLabelValues(stage, result).Inc()
}

// SetPushConnections 更新在线连接数
func SetPushConnections(n int) {
	pushConnections.Set(float64(n))
}
