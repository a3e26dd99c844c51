package drafting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"iris-draft-api/internal/config"
	"iris-draft-api/internal/domain/entity"
	"iris-draft-api/internal/domain/repository"
	"iris-draft-api/internal/workflow/chain"
	wfmodel "iris-draft-api/internal/workflow/model"
	workflowport "iris-draft-api/internal/workflow/port"
	apperrors "iris-draft-api/pkg/errors"
	"iris-draft-api/pkg/logger"
	"iris-draft-api/pkg/metrics"
	"iris-draft-api/pkg/tracer"
)

const (
	DefaultTargetLength = 800
	MinTargetLength     = 400
	MaxTargetLength     = 1300
)

// DraftInput 草稿生成请求
type DraftInput struct {
	// OutlineID 可选；对应大纲不存在时按无大纲生成
	OutlineID       *string
	Idea            entity.Idea
	TargetLength    int
	IncludeHashtags bool
}

// DraftGenerator 根据选题和可选大纲生成并保存草稿
type DraftGenerator struct {
	chain    *chain.DraftChain
	outlines repository.OutlineRepository
	drafts   repository.DraftRepository
	voice    *VoicePrint
	opts     wfmodel.GenerationOptions
}

func NewDraftGenerator(
	factory workflowport.ChatModelFactory,
	outlines repository.OutlineRepository,
	drafts repository.DraftRepository,
	voice *VoicePrint,
	cfg config.GenerationConfig,
) *DraftGenerator {
	return &DraftGenerator{
		chain:    chain.NewDraftChain(factory),
		outlines: outlines,
		drafts:   drafts,
		voice:    voice,
		opts:     generationOptions(cfg),
	}
}

// Generate 生成草稿并写入存储
func (g *DraftGenerator) Generate(ctx context.Context, in *DraftInput) (*entity.Draft, error) {
	if in == nil {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "draft input is required")
	}
	if in.TargetLength < MinTargetLength || in.TargetLength > MaxTargetLength {
		return nil, apperrors.New(apperrors.CodeValidationFailed,
			fmt.Sprintf("target_length must be between %d and %d", MinTargetLength, MaxTargetLength))
	}

	ctx, span := tracer.Start(ctx, "drafting.draft.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("idea.title", in.Idea.Title),
		attribute.Int("draft.target_length", in.TargetLength),
	)

	start := time.Now()
	logger.Info(ctx, "generating draft", "title", in.Idea.Title)

	draft, err := g.generate(ctx, in)
	metrics.GenerationDuration.WithLabelValues(kindDraft).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GenerationTotal.WithLabelValues(kindDraft, "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Error(ctx, "error generating draft", err, "title", in.Idea.Title)
		return nil, apperrors.Wrap(err, apperrors.CodeGenerationFailed, msgDraftFailed)
	}

	metrics.GenerationTotal.WithLabelValues(kindDraft, "success").Inc()
	metrics.DraftWordCount.Observe(float64(draft.WordCount))
	span.SetAttributes(attribute.String("draft.id", draft.ID))
	logger.Info(ctx, "created draft",
		"draft_id", draft.ID,
		"word_count", draft.WordCount,
		"voice_score", fmt.Sprintf("%.2f", draft.VoiceScore),
	)
	return draft, nil
}

func (g *DraftGenerator) generate(ctx context.Context, in *DraftInput) (*entity.Draft, error) {
	plan, err := g.loadOutline(ctx, in.OutlineID)
	if err != nil {
		return nil, err
	}

	sourceURL := in.Idea.SourceLink()
	res, err := g.chain.Invoke(ctx, &wfmodel.DraftGenerateInput{
		Title:             in.Idea.Title,
		SourceURL:         sourceURL,
		Summary:           in.Idea.Summary(),
		VoicePrompt:       g.voice.Prompt(),
		Outline:           plan,
		TargetLength:      in.TargetLength,
		IncludeHashtags:   in.IncludeHashtags,
		GenerationOptions: g.opts,
	})
	if err != nil {
		return nil, err
	}
	logger.Debug(ctx, "draft generated",
		"model", res.Model,
		"prompt_tokens", res.Usage.PromptTokens,
		"completion_tokens", res.Usage.CompletionTokens,
	)

	draft := entity.NewDraft(entity.NewDraftID(), in.OutlineID, in.Idea.Title, res.Content, entity.DraftMetadata{
		SourceURL:    sourceURL,
		TargetLength: in.TargetLength,
		Model:        res.Model,
	})
	if err := g.drafts.Create(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// loadOutline 读取引用的大纲；未指定或不存在时返回 nil
func (g *DraftGenerator) loadOutline(ctx context.Context, outlineID *string) (*wfmodel.OutlinePlan, error) {
	if outlineID == nil || strings.TrimSpace(*outlineID) == "" {
		return nil, nil
	}
	outline, err := g.outlines.GetByID(ctx, *outlineID)
	if err != nil {
		return nil, fmt.Errorf("load outline %s: %w", *outlineID, err)
	}
	if outline == nil {
		logger.Debug(ctx, "referenced outline not found, drafting without outline", "outline_id", *outlineID)
		return nil, nil
	}

	plan := &wfmodel.OutlinePlan{
		Hook:     outline.Hook,
		Closing:  outline.Closing,
		Sections: make([]wfmodel.OutlineSectionPlan, 0, len(outline.Sections)),
	}
	for _, s := range outline.Sections {
		plan.Sections = append(plan.Sections, wfmodel.OutlineSectionPlan{Heading: s.Heading, KeyPoints: s.KeyPoints})
	}
	return plan, nil
}
