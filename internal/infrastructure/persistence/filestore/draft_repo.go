package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"iris-draft-api/internal/domain/entity"
	"iris-draft-api/internal/domain/repository"
)

// DraftRepository 草稿仓储实现，每个草稿一个 JSON 文件
type DraftRepository struct {
	client *Client
}

// NewDraftRepository 创建草稿仓储
func NewDraftRepository(client *Client) *DraftRepository {
	return &DraftRepository{client: client}
}

// Create 写入草稿
func (r *DraftRepository) Create(ctx context.Context, draft *entity.Draft) error {
	_, span := tracer.Start(ctx, "filestore.DraftRepository.Create")
	defer span.End()

	if draft == nil {
		return fmt.Errorf("draft is nil")
	}
	span.SetAttributes(attribute.String("draft.id", draft.ID))

	path, ok := pathFor(r.client.draftsDir, draft.ID)
	if !ok {
		return fmt.Errorf("invalid draft id: %q", draft.ID)
	}
	if err := writeJSON(path, draft); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取草稿
func (r *DraftRepository) GetByID(ctx context.Context, id string) (*entity.Draft, error) {
	_, span := tracer.Start(ctx, "filestore.DraftRepository.GetByID")
	defer span.End()
	span.SetAttributes(attribute.String("draft.id", id))

	path, ok := pathFor(r.client.draftsDir, id)
	if !ok {
		return nil, nil
	}

	var draft entity.Draft
	found, err := readJSON(path, &draft)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &draft, nil
}

// ListRecent 按文件名倒序列出草稿（ID 带时间前缀，即时间倒序）
// created_at 取文件修改时间
func (r *DraftRepository) ListRecent(ctx context.Context, limit int) (*repository.DraftListResult, error) {
	_, span := tracer.Start(ctx, "filestore.DraftRepository.ListRecent")
	defer span.End()

	matches, err := filepath.Glob(filepath.Join(r.client.draftsDir, entity.DraftIDPrefix+"_*"+fileExt))
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(matches)))

	total := len(matches)
	if limit < 0 {
		limit = 0
	}
	if limit < len(matches) {
		matches = matches[:limit]
	}

	items := make([]*entity.DraftSummary, 0, len(matches))
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			// 列举与读取之间文件被移除
			if os.IsNotExist(err) {
				continue
			}
			span.RecordError(err)
			return nil, fmt.Errorf("failed to stat draft: %w", err)
		}
		items = append(items, &entity.DraftSummary{
			ID:        strings.TrimSuffix(filepath.Base(path), fileExt),
			CreatedAt: info.ModTime(),
		})
	}

	span.SetAttributes(
		attribute.Int("drafts.total", total),
		attribute.Int("drafts.returned", len(items)),
	)
	return &repository.DraftListResult{Items: items, Total: total}, nil
}
