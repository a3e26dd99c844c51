package filestore

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"iris-draft-api/internal/domain/entity"
)

// OutlineRepository 大纲仓储实现，每个大纲一个 JSON 文件
type OutlineRepository struct {
	client *Client
}

// NewOutlineRepository 创建大纲仓储
func NewOutlineRepository(client *Client) *OutlineRepository {
	return &OutlineRepository{client: client}
}

// Create 写入大纲
func (r *OutlineRepository) Create(ctx context.Context, outline *entity.Outline) error {
	_, span := tracer.Start(ctx, "filestore.OutlineRepository.Create")
	defer span.End()

	if outline == nil {
		return fmt.Errorf("outline is nil")
	}
	span.SetAttributes(attribute.String("outline.id", outline.ID))

	path, ok := pathFor(r.client.outlinesDir, outline.ID)
	if !ok {
		return fmt.Errorf("invalid outline id: %q", outline.ID)
	}
	if err := writeJSON(path, outline); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to save outline: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取大纲
func (r *OutlineRepository) GetByID(ctx context.Context, id string) (*entity.Outline, error) {
	_, span := tracer.Start(ctx, "filestore.OutlineRepository.GetByID")
	defer span.End()
	span.SetAttributes(attribute.String("outline.id", id))

	path, ok := pathFor(r.client.outlinesDir, id)
	if !ok {
		return nil, nil
	}

	var outline entity.Outline
	found, err := readJSON(path, &outline)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get outline: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &outline, nil
}
