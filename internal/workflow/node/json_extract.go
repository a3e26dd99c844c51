package node

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	jsonFencePattern    = regexp.MustCompile("(?s)```json(.*?)```")
	genericFencePattern = regexp.MustCompile("(?s)```[A-Za-z0-9_+-]*(.*?)```")
)

// JSONStrategy 从模型输出中截取 JSON 文本的一种方式
type JSONStrategy struct {
	Name    string
	Extract func(raw string) (string, bool)
}

// FencedJSONStrategies 按优先级排列：```json 代码块 -> 任意代码块 -> 原文
var FencedJSONStrategies = []JSONStrategy{
	{Name: "json_fence", Extract: func(raw string) (string, bool) { return fenceInterior(jsonFencePattern, raw) }},
	{Name: "generic_fence", Extract: func(raw string) (string, bool) { return fenceInterior(genericFencePattern, raw) }},
	{Name: "verbatim", Extract: func(raw string) (string, bool) { return strings.TrimSpace(raw), true }},
}

func fenceInterior(re *regexp.Regexp, raw string) (string, bool) {
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// JSONExtractError 未能得到合法 JSON，Attempts 记录每个已尝试策略的结果
type JSONExtractError struct {
	Attempts []string
}

func (e *JSONExtractError) Error() string {
	if len(e.Attempts) == 0 {
		return "no json found in model output"
	}
	return "no json found in model output: " + strings.Join(e.Attempts, "; ")
}

// ExtractFencedJSON 按优先级选出第一个适用的策略，返回其片段及策略名。
// 适用策略截取的内容即为最终候选：为空或不是合法 JSON 时直接失败，不再尝试后续策略，也不做修复。
func ExtractFencedJSON(raw string) (string, string, error) {
	var attempts []string
	for _, s := range FencedJSONStrategies {
		candidate, ok := s.Extract(raw)
		if !ok {
			attempts = append(attempts, s.Name+": not applicable")
			continue
		}
		if candidate == "" {
			attempts = append(attempts, s.Name+": empty")
			return "", "", &JSONExtractError{Attempts: attempts}
		}
		if !json.Valid([]byte(candidate)) {
			attempts = append(attempts, fmt.Sprintf("%s: invalid json", s.Name))
			return "", "", &JSONExtractError{Attempts: attempts}
		}
		return candidate, s.Name, nil
	}
	return "", "", &JSONExtractError{Attempts: attempts}
}
