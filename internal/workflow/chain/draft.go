package chain

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	llmctx "iris-draft-api/internal/domain/service"
	wfmodel "iris-draft-api/internal/workflow/model"
	wfnode "iris-draft-api/internal/workflow/node"
	workflowport "iris-draft-api/internal/workflow/port"
	workflowprompt "iris-draft-api/internal/workflow/prompt"
)

const (
	// SummaryMaxRunes 提示词中摘要的最大字符数
	SummaryMaxRunes = 500

	// NoOutlinePlaceholder 无大纲时写入提示词的占位说明
	NoOutlinePlaceholder = "No outline provided - generate structure as you write"
)

// DraftResult 草稿链输出
type DraftResult struct {
	Content string
	Model   string
	Usage   wfmodel.LLMUsageMeta
}

type DraftChain struct {
	factory workflowport.ChatModelFactory
}

func NewDraftChain(factory workflowport.ChatModelFactory) *DraftChain {
	return &DraftChain{factory: factory}
}

func (c *DraftChain) Invoke(ctx context.Context, in *wfmodel.DraftGenerateInput) (*DraftResult, error) {
	if c == nil || c.factory == nil {
		return nil, fmt.Errorf("llm factory not configured")
	}
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}
	if in.TargetLength <= 0 {
		return nil, fmt.Errorf("target_length is required")
	}

	provider := strings.TrimSpace(in.Provider)
	modelName := pickModel(in.GenerationOptions, c.factory.ModelName(provider))

	ctx = llmctx.WithLLMCall(ctx, llmctx.LLMCall{Workflow: "draft_generate", Provider: provider, Model: modelName})
	chatModel, err := c.factory.Get(ctx, provider)
	if err != nil {
		return nil, err
	}

	msgs, err := formatDraftMessages(ctx, in)
	if err != nil {
		return nil, err
	}

	outMsg, err := chatModel.Generate(ctx, msgs, buildModelOptions(in.GenerationOptions)...)
	if err != nil {
		return nil, err
	}
	if outMsg == nil {
		return nil, fmt.Errorf("empty llm response")
	}
	content := strings.TrimSpace(outMsg.Content)
	if content == "" {
		return nil, fmt.Errorf("empty llm response")
	}
	return &DraftResult{
		Content: content,
		Model:   modelName,
		Usage:   usageMeta(provider, modelName, in.GenerationOptions, outMsg),
	}, nil
}

func formatDraftMessages(ctx context.Context, in *wfmodel.DraftGenerateInput) ([]*schema.Message, error) {
	tpl, err := defaultPromptRegistry.ChatTemplate(workflowprompt.PromptDraftV1)
	if err != nil {
		return nil, err
	}
	vars := map[string]any{
		"voice_prompt":     in.VoicePrompt,
		"title":            in.Title,
		"source":           in.SourceURL,
		"summary":          wfnode.TruncateByRunes(in.Summary, SummaryMaxRunes),
		"outline":          FormatOutlinePlan(in.Outline),
		"target_length":    in.TargetLength,
		"include_hashtags": in.IncludeHashtags,
	}
	return tpl.Format(ctx, vars)
}

// FormatOutlinePlan 将大纲展开为提示词中的要点文本
func FormatOutlinePlan(plan *wfmodel.OutlinePlan) string {
	if plan == nil {
		return NoOutlinePlaceholder
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Hook**: %s\n", plan.Hook)
	for _, s := range plan.Sections {
		fmt.Fprintf(&b, "\n**%s**:\n", s.Heading)
		for _, p := range s.KeyPoints {
			fmt.Fprintf(&b, "- %s\n", p)
		}
	}
	fmt.Fprintf(&b, "\n**Closing**: %s", plan.Closing)
	return b.String()
}
