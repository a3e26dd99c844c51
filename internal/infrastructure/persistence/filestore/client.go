// Package filestore 提供基于本地 JSON 文件的 Repository 实现
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("filestore")

const (
	outlinesDirName = "outlines"
	draftsDirName   = "drafts"
	fileExt         = ".json"
)

// validID 限制 ID 字符集，避免路径穿越
var validID = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Client 文件存储客户端，管理 outlines/ 与 drafts/ 两个目录
type Client struct {
	root        string
	outlinesDir string
	draftsDir   string
}

// NewClient 创建文件存储客户端，目录不存在时自动创建
func NewClient(root string) (*Client, error) {
	if root == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	c := &Client{
		root:        root,
		outlinesDir: filepath.Join(root, outlinesDirName),
		draftsDir:   filepath.Join(root, draftsDirName),
	}
	for _, dir := range []string{c.outlinesDir, c.draftsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return c, nil
}

// Root 返回数据根目录
func (c *Client) Root() string {
	return c.root
}

// OutlinesDir 返回大纲目录
func (c *Client) OutlinesDir() string {
	return c.outlinesDir
}

// DraftsDir 返回草稿目录
func (c *Client) DraftsDir() string {
	return c.draftsDir
}

// HealthCheck 检查两个目录均可写
func (c *Client) HealthCheck(ctx context.Context) error {
	_, span := tracer.Start(ctx, "filestore.HealthCheck")
	defer span.End()

	for _, dir := range []string{c.outlinesDir, c.draftsDir} {
		f, err := os.CreateTemp(dir, ".probe-*")
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("directory %s not writable: %w", dir, err)
		}
		name := f.Name()
		_ = f.Close()
		_ = os.Remove(name)
	}
	return nil
}

// pathFor 返回 ID 对应的文件路径；ID 非法时 ok 为 false
func pathFor(dir, id string) (string, bool) {
	if !validID.MatchString(id) {
		return "", false
	}
	return filepath.Join(dir, id+fileExt), true
}

// writeJSON 先写临时文件再重命名，避免读到半个文件
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to persist %s: %w", filepath.Base(path), err)
	}
	return nil
}

// readJSON 读取 JSON 文件；文件不存在时返回 found=false
func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return true, nil
}
