// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"iris-draft-api/internal/config"
	"iris-draft-api/internal/interfaces/http/dto"
)

const readinessTimeout = 2 * time.Second

// HealthChecker 可探测的依赖
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// VoiceStatus 语气配置状态
type VoiceStatus interface {
	Loaded() bool
	Source() string
}

// HealthHandler 健康检查处理器
type HealthHandler struct {
	app   config.AppConfig
	voice VoiceStatus
	store HealthChecker
	cache HealthChecker
}

// NewHealthHandler 创建健康检查处理器，cache 未启用时传 nil
func NewHealthHandler(app config.AppConfig, voice VoiceStatus, store HealthChecker, cache HealthChecker) *HealthHandler {
	return &HealthHandler{
		app:   app,
		voice: voice,
		store: store,
		cache: cache,
	}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type readinessCheck struct {
	Status    string `json:"status"`
	Source    string `json:"source,omitempty"`
	Error     string `json:"error,omitempty"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
}

type readinessResponse struct {
	Status string                     `json:"status"`
	Checks map[string]*readinessCheck `json:"checks,omitempty"`
}

// Healthz 服务状态
// @Summary 服务状态
// @Tags System
// @Produce json
// @Success 200 {object} dto.HealthzResponse
// @Router /healthz [get]
func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthzResponse{
		Status:           "ok",
		Agent:            h.app.Agent,
		Version:          h.app.Version,
		VoicePrintLoaded: h.voice != nil && h.voice.Loaded(),
	})
}

// Ready 就绪检查接口
// @Summary 就绪检查
// @Description 检查数据目录可写；Redis 仅在启用时检查且不影响就绪态
// @Tags System
// @Produce json
// @Success 200 {object} readinessResponse
// @Failure 503 {object} readinessResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	checks := map[string]*readinessCheck{
		"storage":    {Status: "unknown"},
		"voiceprint": {Status: "unknown"},
		"redis":      {Status: "disabled"},
	}
	ready := true

	// 数据目录（必需）
	if h.store == nil {
		checks["storage"].Status = "missing"
		checks["storage"].Error = "file store not configured"
		ready = false
	} else {
		start := time.Now()
		err := h.store.HealthCheck(ctx)
		checks["storage"].LatencyMs = time.Since(start).Milliseconds()
		if err != nil {
			checks["storage"].Status = "error"
			checks["storage"].Error = err.Error()
			ready = false
		} else {
			checks["storage"].Status = "ok"
		}
	}

	if h.voice == nil || !h.voice.Loaded() {
		checks["voiceprint"].Status = "missing"
		ready = false
	} else {
		checks["voiceprint"].Status = "ok"
		checks["voiceprint"].Source = h.voice.Source()
	}

	// Redis（可选，限流器失败时放行）
	if h.cache != nil {
		start := time.Now()
		err := h.cache.HealthCheck(ctx)
		checks["redis"].LatencyMs = time.Since(start).Milliseconds()
		if err != nil {
			checks["redis"].Status = "degraded"
			checks["redis"].Error = err.Error()
		} else {
			checks["redis"].Status = "ok"
		}
	}

	resp := readinessResponse{
		Status: "ok",
		Checks: checks,
	}
	if !ready {
		resp.Status = "not_ready"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Live 存活检查接口
// @Summary 存活检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: h.app.Version,
	})
}
