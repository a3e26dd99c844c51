//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"iris-draft-api/internal/application/drafting"
	"iris-draft-api/internal/config"
	"iris-draft-api/internal/domain/repository"
	"iris-draft-api/internal/infrastructure/llm"
	"iris-draft-api/internal/infrastructure/persistence/filestore"
	"iris-draft-api/internal/interfaces/http/handler"
	"iris-draft-api/internal/interfaces/http/router"
	workflowport "iris-draft-api/internal/workflow/port"
)

// InitializeApp 初始化整个应用（带路由器）
// voice 由调用方加载，格式错误时应在启动阶段退出
func InitializeApp(ctx context.Context, cfg *config.Config, voice *drafting.VoicePrint) (*router.Router, func(), error) {
	wire.Build(
		StoreSet,
		RedisSet,
		DraftingSet,
		RouterSet,
	)
	return nil, nil, nil
}

// StoreSet 文件存储提供者集合
var StoreSet = wire.NewSet(
	ProvideFileStore,
	filestore.NewOutlineRepository,
	filestore.NewDraftRepository,
	wire.Bind(new(repository.OutlineRepository), new(*filestore.OutlineRepository)),
	wire.Bind(new(repository.DraftRepository), new(*filestore.DraftRepository)),
)

// RedisSet 可选 Redis（限流）
var RedisSet = wire.NewSet(
	ProvideRedisClientOptional,
	ProvideRateLimiterOptional,
)

// DraftingSet 生成相关提供者集合
var DraftingSet = wire.NewSet(
	llm.NewEinoFactory,
	wire.Bind(new(workflowport.ChatModelFactory), new(*llm.EinoFactory)),
	ProvideOutlineGenerator,
	ProvideDraftGenerator,
	wire.Bind(new(handler.OutlineGenerator), new(*drafting.OutlineGenerator)),
	wire.Bind(new(handler.DraftGenerator), new(*drafting.DraftGenerator)),
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	ProvideHealthHandler,
	handler.NewOutlineHandler,
	handler.NewDraftHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)
