package model

// GenerationOptions 单次生成调用的模型参数，零值表示使用提供商默认
type GenerationOptions struct {
	Provider string
	Model    string

	Temperature *float32
	MaxTokens   *int
}

// OutlineSectionPlan 大纲中的一节
type OutlineSectionPlan struct {
	Heading   string   `json:"heading"`
	KeyPoints []string `json:"key_points"`
}

// OutlinePlan 模型返回的大纲结构
type OutlinePlan struct {
	Hook     string               `json:"hook"`
	Sections []OutlineSectionPlan `json:"sections"`
	Closing  string               `json:"closing"`
}

type OutlineGenerateInput struct {
	Title       string
	SourceURL   string
	Summary     string
	VoicePrompt string

	GenerationOptions
}

type DraftGenerateInput struct {
	Title       string
	SourceURL   string
	Summary     string
	VoicePrompt string

	// Outline 为空时由模型边写边组织结构
	Outline         *OutlinePlan
	TargetLength    int
	IncludeHashtags bool

	GenerationOptions
}
