// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"iris-draft-api/internal/application/drafting"
	"iris-draft-api/internal/domain/entity"
)

// DefaultDraftListLimit 草稿列表默认条数
const DefaultDraftListLimit = 20

// IdeaRequest 选题
type IdeaRequest struct {
	Title     string   `json:"title" binding:"required"`
	Content   string   `json:"content,omitempty"`
	SourceURL string   `json:"source_url,omitempty"`
	URL       string   `json:"url,omitempty"`
	Context   string   `json:"context,omitempty"`
	Score     *float64 `json:"score,omitempty"`
	Source    string   `json:"source,omitempty"`
}

// ToEntity 转换为领域实体
func (r *IdeaRequest) ToEntity() *entity.Idea {
	return &entity.Idea{
		Title:     r.Title,
		Content:   r.Content,
		SourceURL: r.SourceURL,
		URL:       r.URL,
		Context:   r.Context,
		Score:     r.Score,
		Source:    r.Source,
	}
}

// DraftRequest 草稿生成请求
type DraftRequest struct {
	OutlineID       *string      `json:"outline_id,omitempty"`
	Idea            *IdeaRequest `json:"idea" binding:"required"`
	TargetLength    int          `json:"target_length" binding:"gte=400,lte=1300"`
	IncludeHashtags bool         `json:"include_hashtags"`
}

// NewDraftRequest 返回带默认值的请求，供绑定前使用
func NewDraftRequest() DraftRequest {
	return DraftRequest{TargetLength: drafting.DefaultTargetLength}
}

// ToInput 转换为应用层输入
func (r *DraftRequest) ToInput() *drafting.DraftInput {
	return &drafting.DraftInput{
		OutlineID:       r.OutlineID,
		Idea:            *r.Idea.ToEntity(),
		TargetLength:    r.TargetLength,
		IncludeHashtags: r.IncludeHashtags,
	}
}

// DraftListQuery 草稿列表查询参数
type DraftListQuery struct {
	Limit *int `form:"limit" binding:"omitempty,gte=0"`
}

// EffectiveLimit 返回生效的条数
func (q *DraftListQuery) EffectiveLimit() int {
	if q.Limit == nil {
		return DefaultDraftListLimit
	}
	return *q.Limit
}
