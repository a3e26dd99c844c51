package prompt

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCachesTemplates(t *testing.T) {
	r := NewRegistry()

	first, err := r.ChatTemplate(PromptOutlineV1)
	require.NoError(t, err)
	second, err := r.ChatTemplate(PromptOutlineV1)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestRegistryUnknownPrompt(t *testing.T) {
	_, err := NewRegistry().ChatTemplate(PromptID("chapter_v9"))
	assert.ErrorContains(t, err, "unknown prompt id")
}

func TestOutlineTemplateFormat(t *testing.T) {
	tpl, err := NewRegistry().ChatTemplate(PromptOutlineV1)
	require.NoError(t, err)

	msgs, err := tpl.Format(context.Background(), map[string]any{
		"voice_prompt":        "# Voice Parameters",
		"title":               "Agents in production",
		"source":              "https://example.com/a",
		"summary":             "summary text",
		"word_count_estimate": 800,
	})
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, schema.User, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "**Title**: Agents in production")
	assert.Contains(t, msgs[0].Content, `{"heading": "Define", "key_points": ["...", "..."]}`)
	assert.Contains(t, msgs[0].Content, "Target: 800 words final draft")
}

func TestDraftTemplateHashtagLine(t *testing.T) {
	tpl, err := NewRegistry().ChatTemplate(PromptDraftV1)
	require.NoError(t, err)

	vars := map[string]any{
		"voice_prompt":     "# Voice Parameters",
		"title":            "t",
		"source":           "",
		"summary":          "",
		"outline":          "No outline provided - generate structure as you write",
		"target_length":    650,
		"include_hashtags": true,
	}
	msgs, err := tpl.Format(context.Background(), vars)
	require.NoError(t, err)
	assert.Contains(t, msgs[0].Content, "- Target length: 650 words")
	assert.Contains(t, msgs[0].Content, "- Include 1-2 relevant hashtags at the end\n- Write in active voice")

	vars["include_hashtags"] = false
	msgs, err = tpl.Format(context.Background(), vars)
	require.NoError(t, err)
	assert.Contains(t, msgs[0].Content, "- Do not include hashtags")
	assert.NotContains(t, msgs[0].Content, "relevant hashtags")
}

func TestTemplateMissingVariable(t *testing.T) {
	tpl, err := NewRegistry().ChatTemplate(PromptDraftV1)
	require.NoError(t, err)

	_, err = tpl.Format(context.Background(), map[string]any{"title": "t"})
	assert.Error(t, err)
}
