// Package drafting 组合语气配置、生成链与存储，实现大纲与草稿生成
package drafting

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cast"

	"iris-draft-api/pkg/logger"
)

const (
	VoiceSourceFile    = "file"
	VoiceSourceDefault = "default"

	defaultBodyPattern = "define_contrast_synthesize_project"
	maxCommonPhrases   = 3
)

var defaultToneMarkers = []struct {
	key   string
	label string
	value float64
}{
	{"analytical", "Analytical", 0.80},
	{"conversational", "Conversational", 0.65},
	{"technical", "Technical", 0.75},
}

var snippetKinds = []struct {
	key   string
	label string
}{
	{"opening", "Opening"},
	{"analytical", "Analytical"},
	{"conversational", "Conversational"},
	{"closing", "Closing"},
}

// VoicePrint 语气配置。进程启动时加载一次，之后只读。
// 文件内容不做 schema 校验，缺失字段在渲染时取默认值。
type VoicePrint struct {
	path   string
	source string
	params map[string]any
}

// NewVoicePrint 从 path 加载语气配置。
// 文件不存在时使用内置默认值并记录 WARN；内容不是合法 JSON 对象时返回错误。
func NewVoicePrint(ctx context.Context, path string) (*VoicePrint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn(ctx, "voiceprint not found, using defaults", "path", path)
			return &VoicePrint{path: path, source: VoiceSourceDefault, params: defaultVoiceParams()}, nil
		}
		return nil, fmt.Errorf("read voiceprint %s: %w", path, err)
	}

	var params map[string]any
	if err := json.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("parse voiceprint %s: %w", path, err)
	}
	if params == nil {
		return nil, fmt.Errorf("parse voiceprint %s: expected a JSON object", path)
	}
	return &VoicePrint{path: path, source: VoiceSourceFile, params: params}, nil
}

// NewVoicePrintFromMap 用给定参数构造语气配置
func NewVoicePrintFromMap(params map[string]any) *VoicePrint {
	if params == nil {
		params = map[string]any{}
	}
	return &VoicePrint{source: VoiceSourceFile, params: params}
}

func defaultVoiceParams() map[string]any {
	tones := make(map[string]any, len(defaultToneMarkers))
	for _, t := range defaultToneMarkers {
		tones[t.key] = t.value
	}
	return map[string]any{
		"voice_parameters": map[string]any{
			"tone_markers": tones,
		},
		"structure_preferences": map[string]any{
			"body_pattern": defaultBodyPattern,
		},
	}
}

func (v *VoicePrint) Loaded() bool { return v != nil && v.params != nil }

// Source 返回配置来源：file 或 default
func (v *VoicePrint) Source() string { return v.source }

func (v *VoicePrint) Path() string { return v.path }

// Prompt 渲染嵌入每个生成提示词的语气说明
func (v *VoicePrint) Prompt() string {
	vp := cast.ToStringMap(v.params["voice_parameters"])
	sp := cast.ToStringMap(v.params["structure_preferences"])
	examples := cast.ToStringMap(v.params["example_snippets"])
	tones := cast.ToStringMap(vp["tone_markers"])

	toneParts := make([]string, 0, len(defaultToneMarkers))
	for _, t := range defaultToneMarkers {
		toneParts = append(toneParts, fmt.Sprintf("%s (%.0f%%)", t.label, toneValue(tones, t.key, t.value)*100))
	}

	phrases := cast.ToStringSlice(vp["common_phrases"])
	if len(phrases) > maxCommonPhrases {
		phrases = phrases[:maxCommonPhrases]
	}

	bodyPattern := defaultBodyPattern
	if raw, ok := sp["body_pattern"]; ok {
		bodyPattern = cast.ToString(raw)
	}

	var b strings.Builder
	b.WriteString("# Voice Parameters\n\n")
	fmt.Fprintf(&b, "**Tone**: %s\n\n", strings.Join(toneParts, ", "))
	b.WriteString("**Writing Patterns**:\n")
	b.WriteString("- Use specific numbers and concrete examples\n")
	b.WriteString("- Make clear assertions, avoid hedging\n")
	b.WriteString("- Prefer active voice\n")
	b.WriteString("- Mix short punchy sentences with longer analytical ones\n\n")
	fmt.Fprintf(&b, "**Common Phrases**: %s\n\n", strings.Join(phrases, ", "))
	fmt.Fprintf(&b, "**Structure**: %s\n\n", bodyPattern)
	b.WriteString("**Example Snippets**:\n")
	for _, s := range snippetKinds {
		fmt.Fprintf(&b, "- %s: \"%s\"\n", s.label, cast.ToString(examples[s.key]))
	}
	return b.String()
}

// toneValue 读取语气权重，缺失或非数值时取默认值
func toneValue(tones map[string]any, key string, fallback float64) float64 {
	raw, ok := tones[key]
	if !ok {
		return fallback
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return fallback
	}
	return f
}
