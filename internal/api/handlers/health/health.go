package health

import (
	"net/http"
	"runtime"
	"time"

	"recipe-assistant/internal/core/ai/queue"
	"recipe-assistant/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StatusSource 提供 AI 隊列與快取狀態
type StatusSource interface {
	QueueStatus() *queue.Status
	CacheStats() map[string]interface{}
}

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Recipes   int                    `json:"recipes"`
	Runtime   map[string]interface{} `json:"runtime"`
	Queue     *queue.Status          `json:"queue,omitempty"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
}

// Handler 健康檢查處理器
type Handler struct {
	version string
	recipes int
	source  StatusSource
}

// NewHandler 創建健康檢查處理器；source 可為 nil
func NewHandler(version string, recipes int, source StatusSource) *Handler {
	return &Handler{version: version, recipes: recipes, source: source}
}

// HealthCheck GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.version,
		Recipes:   h.recipes,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}
	if h.source != nil {
		response.Queue = h.source.QueueStatus()
		response.Cache = h.source.CacheStats()
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck GET /ready，生成隊列關閉後回傳 503
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if h.source != nil {
		if st := h.source.QueueStatus(); st != nil && st.Closed {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "shutting_down"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ready",
		"recipes": h.recipes,
	})
}

// LivenessCheck GET /live
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
