package drafting

import (
	"strings"

	"iris-draft-api/internal/config"
	wfmodel "iris-draft-api/internal/workflow/model"
)

func generationOptions(cfg config.GenerationConfig) wfmodel.GenerationOptions {
	temperature := float32(cfg.Temperature)
	opts := wfmodel.GenerationOptions{
		Provider:    strings.TrimSpace(cfg.Provider),
		Model:       strings.TrimSpace(cfg.Model),
		Temperature: &temperature,
	}
	if cfg.MaxTokens > 0 {
		maxTokens := cfg.MaxTokens
		opts.MaxTokens = &maxTokens
	}
	return opts
}
