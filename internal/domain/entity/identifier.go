package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	OutlineIDPrefix = "outline"
	DraftIDPrefix   = "draft"

	idTimeLayout = "20060102_150405.000000"
)

// NewOutlineID 生成大纲 ID
func NewOutlineID() string {
	return newID(OutlineIDPrefix, time.Now())
}

// NewDraftID 生成草稿 ID
func NewDraftID() string {
	return newID(DraftIDPrefix, time.Now())
}

// newID 生成 <prefix>_<YYYYMMDD_HHMMSS_微秒>_<8位随机十六进制>
// 时间前缀保证按文件名倒序即为时间倒序，随机后缀避免同一微秒内冲突
func newID(prefix string, now time.Time) string {
	ts := strings.Replace(now.Format(idTimeLayout), ".", "_", 1)
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return prefix + "_" + ts + "_" + suffix
}
