// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"iris-draft-api/internal/domain/entity"
)

// OutlineRepository 大纲仓储接口
type OutlineRepository interface {
	// Create 写入大纲
	Create(ctx context.Context, outline *entity.Outline) error

	// GetByID 根据 ID 获取大纲，不存在时返回 (nil, nil)
	GetByID(ctx context.Context, id string) (*entity.Outline, error)
}
