// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"iris-draft-api/internal/application/drafting"
	"iris-draft-api/internal/config"
	"iris-draft-api/internal/infrastructure/persistence/filestore"
	"iris-draft-api/internal/infrastructure/persistence/redis"
	"iris-draft-api/internal/interfaces/http/handler"
	"iris-draft-api/internal/interfaces/http/middleware"
	workflowport "iris-draft-api/internal/workflow/port"
	"iris-draft-api/pkg/logger"
)

// ProvideFileStore 提供数据目录存储，目录不可创建时启动失败
func ProvideFileStore(cfg *config.Config) (*filestore.Client, error) {
	return filestore.NewClient(cfg.Drafting.DataDir)
}

// ProvideOutlineGenerator 提供大纲生成器
func ProvideOutlineGenerator(
	cfg *config.Config,
	factory workflowport.ChatModelFactory,
	repo *filestore.OutlineRepository,
	voice *drafting.VoicePrint,
) *drafting.OutlineGenerator {
	return drafting.NewOutlineGenerator(factory, repo, voice, cfg.Drafting.Outline)
}

// ProvideDraftGenerator 提供草稿生成器
func ProvideDraftGenerator(
	cfg *config.Config,
	factory workflowport.ChatModelFactory,
	outlines *filestore.OutlineRepository,
	drafts *filestore.DraftRepository,
	voice *drafting.VoicePrint,
) *drafting.DraftGenerator {
	return drafting.NewDraftGenerator(factory, outlines, drafts, voice, cfg.Drafting.Draft)
}

// ProvideRedisClientOptional Redis 仅用于限流；未启用或不可达时返回 nil，不阻塞启动
func ProvideRedisClientOptional(ctx context.Context, cfg *config.Config) (*redis.Client, func(), error) {
	if !cfg.Cache.Redis.Enabled {
		return nil, func() {}, nil
	}
	client, err := redis.NewClient(ctx, &cfg.Cache.Redis)
	if err != nil {
		logger.Warn(ctx, "redis not available, rate limiting disabled", "error", err.Error())
		return nil, func() {}, nil
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideRateLimiterOptional 无 Redis 时返回 nil 接口
func ProvideRateLimiterOptional(client *redis.Client) middleware.RateLimiter {
	if client == nil {
		return nil
	}
	return redis.NewRateLimiter(client)
}

// ProvideHealthHandler 提供健康检查处理器
func ProvideHealthHandler(cfg *config.Config, voice *drafting.VoicePrint, store *filestore.Client, client *redis.Client) *handler.HealthHandler {
	var cache handler.HealthChecker
	if client != nil {
		cache = client
	}
	return handler.NewHealthHandler(cfg.App, voice, store, cache)
}
