package drafting

import (
	"context"
	"fmt"

	"iris-draft-api/internal/domain/service"
	"iris-draft-api/pkg/logger"
)

// UsageLogger 将模型用量写入日志
type UsageLogger struct{}

func NewUsageLogger() *UsageLogger { return &UsageLogger{} }

func (UsageLogger) Record(ctx context.Context, in service.LLMUsageInput) error {
	if in.PromptTokens < 0 || in.CompletionTokens < 0 {
		return fmt.Errorf("invalid token usage")
	}
	logger.Info(ctx, "llm usage",
		"workflow", in.Workflow,
		"provider", in.Provider,
		"model", in.Model,
		"prompt_tokens", in.PromptTokens,
		"completion_tokens", in.CompletionTokens,
		"duration_ms", in.DurationMs,
	)
	return nil
}
