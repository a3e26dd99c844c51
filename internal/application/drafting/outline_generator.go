package drafting

import (
	"context"
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
	kindOutline = "outline"
	kindDraft   = "draft"

	msgOutlineFailed = "Outline generation failed"
	msgDraftFailed   = "Draft generation failed"
)

// OutlineGenerator 根据选题生成并保存大纲
type OutlineGenerator struct {
	chain *chain.OutlineChain
	repo  repository.OutlineRepository
	voice *VoicePrint
	opts  wfmodel.GenerationOptions
}

func NewOutlineGenerator(factory workflowport.ChatModelFactory, repo repository.OutlineRepository, voice *VoicePrint, cfg config.GenerationConfig) *OutlineGenerator {
	return &OutlineGenerator{
		chain: chain.NewOutlineChain(factory),
		repo:  repo,
		voice: voice,
		opts:  generationOptions(cfg),
	}
}

// Generate 调用模型生成大纲并写入存储。
// 调用、解析或写入失败均返回 CodeGenerationFailed。
func (g *OutlineGenerator) Generate(ctx context.Context, idea *entity.Idea) (*entity.Outline, error) {
	if idea == nil {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "idea is required")
	}

	ctx, span := tracer.Start(ctx, "drafting.outline.generate")
	defer span.End()
	span.SetAttributes(attribute.String("idea.title", idea.Title))

	start := time.Now()
	logger.Info(ctx, "generating outline", "title", idea.Title)

	outline, err := g.generate(ctx, idea)
	metrics.GenerationDuration.WithLabelValues(kindOutline).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GenerationTotal.WithLabelValues(kindOutline, "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Error(ctx, "error generating outline", err, "title", idea.Title)
		return nil, apperrors.Wrap(err, apperrors.CodeGenerationFailed, msgOutlineFailed)
	}

	metrics.GenerationTotal.WithLabelValues(kindOutline, "success").Inc()
	span.SetAttributes(attribute.String("outline.id", outline.ID))
	logger.Info(ctx, "created outline", "outline_id", outline.ID, "sections", len(outline.Sections))
	return outline, nil
}

func (g *OutlineGenerator) generate(ctx context.Context, idea *entity.Idea) (*entity.Outline, error) {
	res, err := g.chain.Invoke(ctx, &wfmodel.OutlineGenerateInput{
		Title:             idea.Title,
		SourceURL:         idea.SourceLink(),
		Summary:           idea.Summary(),
		VoicePrompt:       g.voice.Prompt(),
		GenerationOptions: g.opts,
	})
	if err != nil {
		return nil, err
	}
	logger.Debug(ctx, "outline json extracted",
		"strategy", res.Strategy,
		"model", res.Model,
		"prompt_tokens", res.Usage.PromptTokens,
		"completion_tokens", res.Usage.CompletionTokens,
	)

	sections := make([]entity.OutlineSection, 0, len(res.Plan.Sections))
	for _, s := range res.Plan.Sections {
		sections = append(sections, entity.OutlineSection{Heading: s.Heading, KeyPoints: s.KeyPoints})
	}
	outline := entity.NewOutline(entity.NewOutlineID(), idea.Title, res.Plan.Hook, sections, res.Plan.Closing)

	if err := g.repo.Create(ctx, outline); err != nil {
		return nil, err
	}
	return outline, nil
}
