package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"iris-draft-api/internal/domain/entity"
	llmctx "iris-draft-api/internal/domain/service"
	wfmodel "iris-draft-api/internal/workflow/model"
	wfnode "iris-draft-api/internal/workflow/node"
	workflowport "iris-draft-api/internal/workflow/port"
	workflowprompt "iris-draft-api/internal/workflow/prompt"
)

// OutlineResult 大纲链输出
type OutlineResult struct {
	Plan *wfmodel.OutlinePlan
	// Strategy 命中的 JSON 截取策略
	Strategy string
	Model    string
	Usage    wfmodel.LLMUsageMeta
}

type OutlineChain struct {
	factory workflowport.ChatModelFactory

	chainOnce sync.Once
	chain     compose.Runnable[*wfmodel.OutlineGenerateInput, *OutlineResult]
	chainErr  error
}

func NewOutlineChain(factory workflowport.ChatModelFactory) *OutlineChain {
	return &OutlineChain{factory: factory}
}

func (c *OutlineChain) Invoke(ctx context.Context, in *wfmodel.OutlineGenerateInput) (*OutlineResult, error) {
	if c == nil || c.factory == nil {
		return nil, fmt.Errorf("llm factory not configured")
	}
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}

	chain, err := c.getChain()
	if err != nil {
		return nil, err
	}
	return chain.Invoke(ctx, in)
}

type outlineChainState struct {
	In       *wfmodel.OutlineGenerateInput
	Messages []*schema.Message
	Provider string
	Model    string
	OutMsg   *schema.Message
}

func (c *OutlineChain) getChain() (compose.Runnable[*wfmodel.OutlineGenerateInput, *OutlineResult], error) {
	c.chainOnce.Do(func() {
		c.chain, c.chainErr = c.buildChain(context.Background())
	})
	return c.chain, c.chainErr
}

func (c *OutlineChain) buildChain(ctx context.Context) (compose.Runnable[*wfmodel.OutlineGenerateInput, *OutlineResult], error) {
	chain := compose.NewChain[*wfmodel.OutlineGenerateInput, *OutlineResult]()

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, in *wfmodel.OutlineGenerateInput) (*outlineChainState, error) {
			if in == nil {
				return nil, fmt.Errorf("input is nil")
			}
			return &outlineChainState{In: in}, nil
		}),
		compose.WithNodeName("outline.init"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *outlineChainState) (*outlineChainState, error) {
			msgs, err := formatOutlineMessages(ctx, st.In)
			if err != nil {
				return nil, err
			}
			st.Messages = msgs
			return st, nil
		}),
		compose.WithNodeName("outline.template"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *outlineChainState) (*outlineChainState, error) {
			provider := strings.TrimSpace(st.In.Provider)
			st.Provider = provider
			st.Model = pickModel(st.In.GenerationOptions, c.factory.ModelName(provider))

			ctx = llmctx.WithLLMCall(ctx, llmctx.LLMCall{Workflow: "outline_generate", Provider: provider, Model: st.Model})
			chatModel, err := c.factory.Get(ctx, provider)
			if err != nil {
				return nil, err
			}

			outMsg, err := chatModel.Generate(ctx, st.Messages, buildModelOptions(st.In.GenerationOptions)...)
			if err != nil {
				return nil, err
			}
			if outMsg == nil || strings.TrimSpace(outMsg.Content) == "" {
				return nil, fmt.Errorf("empty llm response")
			}
			st.OutMsg = outMsg
			return st, nil
		}),
		compose.WithNodeName("outline.llm"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, st *outlineChainState) (*OutlineResult, error) {
			plan, strategy, err := ParseOutlinePlan(st.OutMsg.Content)
			if err != nil {
				return nil, err
			}
			return &OutlineResult{
				Plan:     plan,
				Strategy: strategy,
				Model:    st.Model,
				Usage:    usageMeta(st.Provider, st.Model, st.In.GenerationOptions, st.OutMsg),
			}, nil
		}),
		compose.WithNodeName("outline.parse"),
	)

	return chain.Compile(ctx)
}

func formatOutlineMessages(ctx context.Context, in *wfmodel.OutlineGenerateInput) ([]*schema.Message, error) {
	tpl, err := defaultPromptRegistry.ChatTemplate(workflowprompt.PromptOutlineV1)
	if err != nil {
		return nil, err
	}
	vars := map[string]any{
		"voice_prompt":        in.VoicePrompt,
		"title":               in.Title,
		"source":              in.SourceURL,
		"summary":             wfnode.TruncateByRunes(in.Summary, SummaryMaxRunes),
		"word_count_estimate": entity.OutlineWordCountEstimate,
	}
	return tpl.Format(ctx, vars)
}

// rawOutline 用指针区分缺失字段与空值
type rawOutline struct {
	Hook     *string       `json:"hook"`
	Sections *[]rawSection `json:"sections"`
	Closing  *string       `json:"closing"`
}

type rawSection struct {
	Heading   *string   `json:"heading"`
	KeyPoints *[]string `json:"key_points"`
}

// ParseOutlinePlan 从模型回复中截取并解析大纲 JSON。
// hook、sections、closing 以及每节的 heading、key_points 缺一不可，不做修复。
func ParseOutlinePlan(raw string) (*wfmodel.OutlinePlan, string, error) {
	payload, strategy, err := wfnode.ExtractFencedJSON(raw)
	if err != nil {
		return nil, "", err
	}

	var out rawOutline
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		return nil, strategy, fmt.Errorf("decode outline (%s): %w", strategy, err)
	}

	switch {
	case out.Hook == nil:
		return nil, strategy, fmt.Errorf("outline missing required key: hook")
	case out.Sections == nil:
		return nil, strategy, fmt.Errorf("outline missing required key: sections")
	case out.Closing == nil:
		return nil, strategy, fmt.Errorf("outline missing required key: closing")
	}

	plan := &wfmodel.OutlinePlan{
		Hook:     *out.Hook,
		Closing:  *out.Closing,
		Sections: make([]wfmodel.OutlineSectionPlan, 0, len(*out.Sections)),
	}
	for i, s := range *out.Sections {
		if s.Heading == nil {
			return nil, strategy, fmt.Errorf("outline section %d missing required key: heading", i)
		}
		if s.KeyPoints == nil {
			return nil, strategy, fmt.Errorf("outline section %d missing required key: key_points", i)
		}
		plan.Sections = append(plan.Sections, wfmodel.OutlineSectionPlan{
			Heading:   *s.Heading,
			KeyPoints: *s.KeyPoints,
		})
	}
	return plan, strategy, nil
}
