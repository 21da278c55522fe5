package cache

import (
	"context"
	"fmt"

	"recipe-assistant/internal/infrastructure/config"
	"recipe-assistant/internal/pkg/common"
)

// Store AI 回應快取介面
type Store interface {
	// Get 未命中時回傳 common.ErrCacheMiss
	Get(ctx context.Context, prompt, imageData string) (string, error)
	Set(ctx context.Context, prompt, imageData, value string) error
	Stats() map[string]interface{}
	Close() error
}

// NewStore 依設定選擇快取後端；停用時回傳 nil
func NewStore(cfg config.CacheConfig) (Store, error) {
	if !cfg.Enabled {
		common.LogInfo("Cache disabled")
		return nil, nil
	}

	switch cfg.Backend {
	case config.CacheBackendRedis:
		store, err := NewRedisStore(cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.CacheBackendMemory, "":
		return NewManager(cfg), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// Key 生成快取鍵：純文字與含圖片的請求分開
func Key(prompt, imageData string) string {
	if imageData == "" {
		return "text:" + common.HashString(prompt)
	}
	return "multimodal:" + common.HashString(prompt) + ":" + common.HashString(imageData)
}
