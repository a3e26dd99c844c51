package chain

import (
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	wfmodel "iris-draft-api/internal/workflow/model"
	workflowprompt "iris-draft-api/internal/workflow/prompt"
)

var defaultPromptRegistry = workflowprompt.NewRegistry()

func buildModelOptions(o wfmodel.GenerationOptions) []model.Option {
	opts := make([]model.Option, 0, 3)
	if o.Temperature != nil {
		opts = append(opts, model.WithTemperature(*o.Temperature))
	}
	if o.MaxTokens != nil {
		opts = append(opts, model.WithMaxTokens(*o.MaxTokens))
	}
	if m := strings.TrimSpace(o.Model); m != "" {
		opts = append(opts, model.WithModel(m))
	}
	return opts
}

// pickModel 返回本次调用实际使用的模型名
func pickModel(o wfmodel.GenerationOptions, providerDefault string) string {
	if m := strings.TrimSpace(o.Model); m != "" {
		return m
	}
	return providerDefault
}

// usageMeta 提取回复中的 token 用量，provider 未返回时为 0
func usageMeta(provider, modelName string, o wfmodel.GenerationOptions, msg *schema.Message) wfmodel.LLMUsageMeta {
	meta := wfmodel.LLMUsageMeta{
		Provider:    provider,
		Model:       modelName,
		GeneratedAt: time.Now(),
	}
	if o.Temperature != nil {
		meta.Temperature = float64(*o.Temperature)
	}
	if msg != nil && msg.ResponseMeta != nil && msg.ResponseMeta.Usage != nil {
		meta.PromptTokens = msg.ResponseMeta.Usage.PromptTokens
		meta.CompletionTokens = msg.ResponseMeta.Usage.CompletionTokens
	}
	return meta
}
