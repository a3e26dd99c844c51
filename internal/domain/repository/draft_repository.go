// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"iris-draft-api/internal/domain/entity"
)

// DraftListResult 草稿列表结果
// Total 为全部草稿数量，与 limit 无关
type DraftListResult struct {
	Items []*entity.DraftSummary
	Total int
}

// DraftRepository 草稿仓储接口
type DraftRepository interface {
	// Create 写入草稿
	Create(ctx context.Context, draft *entity.Draft) error

	// GetByID 根据 ID 获取草稿，不存在时返回 (nil, nil)
	GetByID(ctx context.Context, id string) (*entity.Draft, error)

	// ListRecent 按 ID 倒序列出最近的草稿
	ListRecent(ctx context.Context, limit int) (*DraftListResult, error)
}
