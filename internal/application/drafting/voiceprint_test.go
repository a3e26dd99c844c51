package drafting

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVoicePrintMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voiceprint.json")

	vp, err := NewVoicePrint(context.Background(), path)
	require.NoError(t, err)

	assert.True(t, vp.Loaded())
	assert.Equal(t, VoiceSourceDefault, vp.Source())
	assert.Equal(t, path, vp.Path())

	prompt := vp.Prompt()
	assert.Contains(t, prompt, "**Tone**: Analytical (80%), Conversational (65%), Technical (75%)")
	assert.Contains(t, prompt, "**Common Phrases**: \n")
	assert.Contains(t, prompt, "**Structure**: define_contrast_synthesize_project")
	assert.Contains(t, prompt, `- Opening: ""`)
	assert.Contains(t, prompt, `- Closing: ""`)
}

func TestNewVoicePrintMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voiceprint.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"voice_parameters": `), 0o644))

	_, err := NewVoicePrint(context.Background(), path)
	assert.ErrorContains(t, err, "parse voiceprint")
}

func TestNewVoicePrintRejectsNonObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voiceprint.json")
	require.NoError(t, os.WriteFile(path, []byte(`["a", "b"]`), 0o644))

	_, err := NewVoicePrint(context.Background(), path)
	assert.Error(t, err)
}

func TestVoicePrintPromptFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voiceprint.json")
	content := `{
  "voice_parameters": {
    "tone_markers": {"analytical": 0.9, "conversational": "0.5"},
    "common_phrases": ["Here's the thing", "Let's be clear", "In practice", "Bottom line"]
  },
  "structure_preferences": {"body_pattern": "problem_solution"},
  "example_snippets": {"opening": "Most teams get this wrong.", "closing": "What would you try first?"},
  "extra": {"ignored": true}
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	vp, err := NewVoicePrint(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, VoiceSourceFile, vp.Source())

	prompt := vp.Prompt()
	assert.Contains(t, prompt, "Analytical (90%), Conversational (50%), Technical (75%)")
	assert.Contains(t, prompt, "**Common Phrases**: Here's the thing, Let's be clear, In practice\n")
	assert.NotContains(t, prompt, "Bottom line")
	assert.Contains(t, prompt, "**Structure**: problem_solution")
	assert.Contains(t, prompt, `- Opening: "Most teams get this wrong."`)
	assert.Contains(t, prompt, `- Analytical: ""`)
	assert.Contains(t, prompt, `- Closing: "What would you try first?"`)
}

func TestVoicePrintPromptToleratesWrongShapes(t *testing.T) {
	vp := NewVoicePrintFromMap(map[string]any{
		"voice_parameters":      "not a map",
		"structure_preferences": map[string]any{},
		"example_snippets":      []any{"x"},
	})

	prompt := vp.Prompt()
	assert.Contains(t, prompt, "Analytical (80%)")
	assert.Contains(t, prompt, "**Structure**: define_contrast_synthesize_project")
}
