package dto

import (
	"iris-draft-api/internal/domain/entity"
	"iris-draft-api/internal/domain/repository"
)

// DraftListResponse 草稿列表响应
type DraftListResponse struct {
	Total    int                    `json:"total"`
	Returned int                    `json:"returned"`
	Drafts   []*entity.DraftSummary `json:"drafts"`
}

// ToDraftListResponse 转换列表结果
func ToDraftListResponse(result *repository.DraftListResult) *DraftListResponse {
	items := result.Items
	if items == nil {
		items = []*entity.DraftSummary{}
	}
	return &DraftListResponse{
		Total:    result.Total,
		Returned: len(items),
		Drafts:   items,
	}
}

// HealthzResponse /healthz 响应
type HealthzResponse struct {
	Status           string `json:"status"`
	Agent            string `json:"agent"`
	Version          string `json:"version"`
	VoicePrintLoaded bool   `json:"voiceprint_loaded"`
}
