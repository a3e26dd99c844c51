package service

import (
	"context"
	"strings"
)

type llmCtxKey string

const (
	llmCtxKeyWorkflow llmCtxKey = "llm_workflow"
	llmCtxKeyProvider llmCtxKey = "llm_provider"
	llmCtxKeyModel    llmCtxKey = "llm_model"

	unknownLabel = "unknown"
)

// LLMCall 标识一次模型调用，用于指标与追踪标签
type LLMCall struct {
	Workflow string
	Provider string
	Model    string
}

// WithLLMCall 在 context 中记录本次调用所属流程、提供商和模型，空值不覆盖已有值
func WithLLMCall(ctx context.Context, call LLMCall) context.Context {
	if ctx == nil {
		return nil
	}
	ctx = withValue(ctx, llmCtxKeyWorkflow, call.Workflow)
	ctx = withValue(ctx, llmCtxKeyProvider, call.Provider)
	return withValue(ctx, llmCtxKeyModel, call.Model)
}

// LLMCallFromContext 读取调用标识，缺失字段为 "unknown"
func LLMCallFromContext(ctx context.Context) LLMCall {
	return LLMCall{
		Workflow: stringValue(ctx, llmCtxKeyWorkflow),
		Provider: stringValue(ctx, llmCtxKeyProvider),
		Model:    stringValue(ctx, llmCtxKeyModel),
	}
}

func withValue(ctx context.Context, key llmCtxKey, value string) context.Context {
	v := strings.TrimSpace(value)
	if v == "" {
		return ctx
	}
	return context.WithValue(ctx, key, v)
}

func stringValue(ctx context.Context, key llmCtxKey) string {
	if ctx == nil {
		return unknownLabel
	}
	s, ok := ctx.Value(key).(string)
	if !ok || strings.TrimSpace(s) == "" {
		return unknownLabel
	}
	return s
}
