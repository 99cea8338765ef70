// Package idgen 提供进程级雪花 ID 生成器
package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// Generator 雪花 ID 生成器
type Generator struct {
	node *snowflake.Node
}

// New 创建生成器，nodeID 取值 0-1023
func New(nodeID int64) (*Generator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("create snowflake node: %w", err)
	}
	return &Generator{node: node}, nil
}

// Next 生成下一个 ID
func (g *Generator) Next() int64 {
	return g.node.Generate().Int64()
}

// NextString 生成下一个 ID 的 base58 字符串形式
func (g *Generator) NextString() string {
	return g.node.Generate().Base58()
}
