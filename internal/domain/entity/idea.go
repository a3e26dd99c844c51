// Package entity 定义领域实体
package entity

// Idea 待成文的选题
// 只作为生成输入使用，不单独持久化
type Idea struct {
	Title     string   `json:"title"`
	Content   string   `json:"content,omitempty"`
	SourceURL string   `json:"source_url,omitempty"`
	URL       string   `json:"url,omitempty"`
	Context   string   `json:"context,omitempty"`
	Score     *float64 `json:"score,omitempty"`
	Source    string   `json:"source,omitempty"`
}

// SourceLink 返回来源链接：url 优先，其次 source_url
func (i Idea) SourceLink() string {
	return firstNonEmpty(i.URL, i.SourceURL)
}

// Summary 返回摘要文本：content 优先，其次 context
func (i Idea) Summary() string {
	return firstNonEmpty(i.Content, i.Context)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
