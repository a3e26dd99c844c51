package entity

import (
	"strings"
	"time"
)

// DraftVoiceScore 草稿的语气契合度
// 占位常量，不根据正文计算
const DraftVoiceScore = 0.85

// DraftMetadata 草稿生成元数据
type DraftMetadata struct {
	SourceURL    string `json:"source_url"`
	TargetLength int    `json:"target_length"`
	Model        string `json:"model"`
}

// Draft 草稿实体，写入后不可修改
type Draft struct {
	ID         string        `json:"draft_id"`
	OutlineID  *string       `json:"outline_id"`
	Title      string        `json:"title"`
	Content    string        `json:"content"`
	WordCount  int           `json:"word_count"`
	VoiceScore float64       `json:"voice_score"`
	CreatedAt  time.Time     `json:"created_at"`
	Metadata   DraftMetadata `json:"metadata"`
}

// NewDraft 创建草稿，字数按空白切分计算
func NewDraft(id string, outlineID *string, title, content string, meta DraftMetadata) *Draft {
	return &Draft{
		ID:         id,
		OutlineID:  outlineID,
		Title:      title,
		Content:    content,
		WordCount:  CountWords(content),
		VoiceScore: DraftVoiceScore,
		CreatedAt:  time.Now(),
		Metadata:   meta,
	}
}

// CountWords 统计空白分隔的词数
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// DraftSummary 草稿列表项
type DraftSummary struct {
	ID        string    `json:"draft_id"`
	CreatedAt time.Time `json:"created_at"`
}
