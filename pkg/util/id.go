package util

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node     *snowflake.Node
	nodeOnce sync.Once
)

// InitSnowflake 设置 snowflake 节点号，需在生成第一个 id 之前调用
func InitSnowflake(nodeID int64) error {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return err
	}
	nodeOnce.Do(func() {})
	node = n
	return nil
}

// NextID 生成全局递增的 int64 id（动态消息主键）
// 未初始化时使用 1 号节点，方便单测和工具命令
func NextID() int64 {
	nodeOnce.Do(func() {
		node, _ = snowflake.NewNode(1)
	})
	return node.Generate().Int64()
}
