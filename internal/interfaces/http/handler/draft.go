package handler

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"iris-draft-api/internal/application/drafting"
	"iris-draft-api/internal/domain/entity"
	"iris-draft-api/internal/domain/repository"
	"iris-draft-api/internal/interfaces/http/dto"
	apperrors "iris-draft-api/pkg/errors"
)

// DraftGenerator 草稿生成能力
type DraftGenerator interface {
	Generate(ctx context.Context, in *drafting.DraftInput) (*entity.Draft, error)
}

// DraftHandler 草稿处理器
type DraftHandler struct {
	generator DraftGenerator
	repo      repository.DraftRepository
}

// NewDraftHandler 创建草稿处理器
func NewDraftHandler(generator DraftGenerator, repo repository.DraftRepository) *DraftHandler {
	return &DraftHandler{
		generator: generator,
		repo:      repo,
	}
}

// CreateDraft 生成草稿
// @Summary 生成草稿
// @Description 可引用已有大纲；大纲不存在时按无大纲生成
// @Tags Drafts
// @Accept json
// @Produce json
// @Param body body dto.DraftRequest true "草稿请求"
// @Success 200 {object} entity.Draft
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/drafts [post]
func (h *DraftHandler) CreateDraft(c *gin.Context) {
	req := dto.NewDraftRequest()
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	draft, err := h.generator.Generate(c.Request.Context(), req.ToInput())
	if err != nil {
		respondAppError(c, err)
		return
	}
	dto.OK(c, draft)
}

// GetDraft 获取草稿
// @Summary 获取草稿
// @Tags Drafts
// @Produce json
// @Param id path string true "草稿 ID"
// @Success 200 {object} entity.Draft
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/drafts/{id} [get]
func (h *DraftHandler) GetDraft(c *gin.Context) {
	id := c.Param("id")

	draft, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondStorageError(c, "draft", err)
		return
	}
	if draft == nil {
		dto.NotFound(c, fmt.Sprintf("Draft %s not found", id), string(apperrors.CodeDraftNotFound))
		return
	}
	dto.OK(c, draft)
}

// ListDrafts 列出最近的草稿
// @Summary 草稿列表
// @Tags Drafts
// @Produce json
// @Param limit query int false "返回条数" default(20)
// @Success 200 {object} dto.DraftListResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /v1/drafts [get]
func (h *DraftHandler) ListDrafts(c *gin.Context) {
	var q dto.DraftListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.repo.ListRecent(c.Request.Context(), q.EffectiveLimit())
	if err != nil {
		respondStorageError(c, "drafts", err)
		return
	}
	dto.OK(c, dto.ToDraftListResponse(result))
}
