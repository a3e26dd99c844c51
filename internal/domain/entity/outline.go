package entity

import "time"

// OutlineWordCountEstimate 大纲的预计成文字数
// 占位常量，不根据内容计算
const OutlineWordCountEstimate = 800

// OutlineSection 大纲段落
type OutlineSection struct {
	Heading   string   `json:"heading"`
	KeyPoints []string `json:"key_points"`
}

// Outline 大纲实体，写入后不可修改
type Outline struct {
	ID                string           `json:"outline_id"`
	IdeaTitle         string           `json:"idea_title"`
	Hook              string           `json:"hook"`
	Sections          []OutlineSection `json:"sections"`
	Closing           string           `json:"closing"`
	WordCountEstimate int              `json:"word_count_estimate"`
	CreatedAt         time.Time        `json:"created_at"`
}

// NewOutline 创建大纲
func NewOutline(id, ideaTitle, hook string, sections []OutlineSection, closing string) *Outline {
	if sections == nil {
		sections = []OutlineSection{}
	}
	return &Outline{
		ID:                id,
		IdeaTitle:         ideaTitle,
		Hook:              hook,
		Sections:          sections,
		Closing:           closing,
		WordCountEstimate: OutlineWordCountEstimate,
		CreatedAt:         time.Now(),
	}
}
