// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"iris-draft-api/internal/domain/entity"
	"iris-draft-api/internal/domain/repository"
	"iris-draft-api/internal/interfaces/http/dto"
	apperrors "iris-draft-api/pkg/errors"
)

// OutlineGenerator 大纲生成能力
type OutlineGenerator interface {
	Generate(ctx context.Context, idea *entity.Idea) (*entity.Outline, error)
}

// OutlineHandler 大纲处理器
type OutlineHandler struct {
	generator OutlineGenerator
	repo      repository.OutlineRepository
}

// NewOutlineHandler 创建大纲处理器
func NewOutlineHandler(generator OutlineGenerator, repo repository.OutlineRepository) *OutlineHandler {
	return &OutlineHandler{
		generator: generator,
		repo:      repo,
	}
}

// CreateOutline 根据选题生成大纲
// @Summary 生成大纲
// @Description Define → Contrast → Synthesize → Project 四段式大纲
// @Tags Outlines
// @Accept json
// @Produce json
// @Param body body dto.IdeaRequest true "选题"
// @Success 200 {object} entity.Outline
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/outlines [post]
func (h *OutlineHandler) CreateOutline(c *gin.Context) {
	var req dto.IdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	outline, err := h.generator.Generate(c.Request.Context(), req.ToEntity())
	if err != nil {
		respondAppError(c, err)
		return
	}
	dto.OK(c, outline)
}

// GetOutline 获取大纲
// @Summary 获取大纲
// @Tags Outlines
// @Produce json
// @Param id path string true "大纲 ID"
// @Success 200 {object} entity.Outline
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/outlines/{id} [get]
func (h *OutlineHandler) GetOutline(c *gin.Context) {
	id := c.Param("id")

	outline, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondStorageError(c, "outline", err)
		return
	}
	if outline == nil {
		dto.NotFound(c, fmt.Sprintf("Outline %s not found", id), string(apperrors.CodeOutlineNotFound))
		return
	}
	dto.OK(c, outline)
}
