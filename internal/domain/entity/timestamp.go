package entity

import (
	"encoding/json"
	"fmt"
	"time"
)

// naiveTimestampLayouts 不带时区的 ISO 8601 时间（如 2025-01-01T12:00:00.123456），按本地时间解析。
// 小数秒在解析时可选。
var naiveTimestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp 解析存储文件中的 created_at，兼容 RFC 3339 与不带时区的 ISO 8601
func ParseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range naiveTimestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid created_at %q", s)
}

// UnmarshalJSON 兼容不带时区的 created_at
func (o *Outline) UnmarshalJSON(data []byte) error {
	type alias Outline
	aux := struct {
		*alias
		CreatedAt string `json:"created_at"`
	}{alias: (*alias)(o)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t, err := ParseTimestamp(aux.CreatedAt)
	if err != nil {
		return err
	}
	o.CreatedAt = t
	return nil
}

// UnmarshalJSON 兼容不带时区的 created_at
func (d *Draft) UnmarshalJSON(data []byte) error {
	type alias Draft
	aux := struct {
		*alias
		CreatedAt string `json:"created_at"`
	}{alias: (*alias)(d)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t, err := ParseTimestamp(aux.CreatedAt)
	if err != nil {
		return err
	}
	d.CreatedAt = t
	return nil
}
