package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"recipe-assistant/internal/core/ai/cache"
	"recipe-assistant/internal/core/ai/provider"
	"recipe-assistant/internal/core/ai/queue"
	"recipe-assistant/internal/core/image"
	"recipe-assistant/internal/pkg/common"

	"go.uber.org/zap"
)

// Response AI 回應
type Response struct {
	Content  string
	CacheHit bool
}

// Service AI 服務：圖片前處理、快取、排隊後呼叫 provider
type Service struct {
	provider provider.Provider
	cache    cache.Store
	queue    *queue.Manager
	images   *image.Service
}

// NewService 創建 AI 服務；cache 與 images 可為 nil
func NewService(p provider.Provider, store cache.Store, q *queue.Manager, images *image.Service) *Service {
	return &Service{
		provider: p,
		cache:    store,
		queue:    q,
		images:   images,
	}
}

// ProcessRequest 統一對外方法
func (s *Service) ProcessRequest(ctx context.Context, prompt string, imageData string) (*Response, error) {
	// 統一空白，確保快取 key 一致
	prompt = strings.Join(strings.Fields(prompt), " ")
	if prompt == "" {
		return nil, common.ErrInvalidRequest.Wrap(errors.New("prompt is empty"))
	}

	processedImage := ""
	if imageData != "" {
		if s.images == nil {
			processedImage = imageData
		} else {
			var err error
			processedImage, err = s.images.ProcessImage(ctx, imageData)
			if err != nil {
				return nil, fmt.Errorf("failed to process image: %w", err)
			}
		}
	}

	if s.cache != nil {
		val, err := s.cache.Get(ctx, prompt, processedImage)
		if err == nil && val != "" {
			return &Response{Content: val, CacheHit: true}, nil
		}
		if err != nil && !errors.Is(err, common.ErrCacheMiss) {
			common.LogWarn("cache lookup failed", zap.Error(err))
		}
	}

	content, err := s.generate(ctx, prompt, processedImage)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, prompt, processedImage, content); err != nil {
			common.LogWarn("cache store failed", zap.Error(err))
		}
	}

	return &Response{Content: content}, nil
}

func (s *Service) generate(ctx context.Context, prompt, imageData string) (string, error) {
	call := func(ctx context.Context) (string, error) {
		resp, err := s.provider.Generate(ctx, provider.UserPrompt(prompt, imageData))
		if err != nil {
			return "", err
		}
		content := strings.TrimSpace(resp.Content)
		if content == "" {
			return "", errors.New("empty AI response")
		}
		return content, nil
	}

	kind := "text"
	if imageData != "" {
		kind = "vision"
	}

	start := time.Now()
	var (
		content string
		err     error
	)
	if s.queue != nil {
		content, err = s.queue.Submit(ctx, call)
	} else {
		content, err = call(ctx)
	}
	common.LogAICall(kind, time.Since(start), err, common.RequestIDFromContext(ctx))

	if err != nil {
		var ce *common.CustomError
		switch {
		case errors.As(err, &ce):
			return "", err
		case errors.Is(err, context.DeadlineExceeded):
			return "", common.ErrGatewayTimeout.Wrap(err)
		case errors.Is(err, common.ErrQueueClosed):
			return "", common.ErrUnavailable.Wrap(err)
		default:
			return "", common.ErrAIServiceError.Wrap(err)
		}
	}
	return content, nil
}

// QueueStatus 回傳隊列狀態，未啟用隊列時為 nil
func (s *Service) QueueStatus() *queue.Status {
	if s.queue == nil {
		return nil
	}
	return s.queue.Status()
}

// CacheStats 回傳快取統計，未啟用快取時為 nil
func (s *Service) CacheStats() map[string]interface{} {
	if s.cache == nil {
		return nil
	}
	return s.cache.Stats()
}
