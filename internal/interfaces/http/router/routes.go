// Package router 提供 HTTP 路由配置
package router

import (
	"iris-draft-api/internal/interfaces/http/handler"

	"github.com/gin-gonic/gin"
)

// RegisterV1Routes 注册 v1 版本路由。
// generationGuard 只作用于会调用模型的 POST 接口。
func RegisterV1Routes(
	v1 *gin.RouterGroup,
	outlineHandler *handler.OutlineHandler,
	draftHandler *handler.DraftHandler,
	generationGuard gin.HandlerFunc,
) {
	// 大纲
	outlines := v1.Group("/outlines")
	{
		outlines.POST("", generationGuard, outlineHandler.CreateOutline)
		outlines.GET("/:id", outlineHandler.GetOutline)
	}

	// 草稿
	drafts := v1.Group("/drafts")
	{
		drafts.GET("", draftHandler.ListDrafts)
		drafts.POST("", generationGuard, draftHandler.CreateDraft)
		drafts.GET("/:id", draftHandler.GetDraft)
	}
}
