package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"recipe-assistant/internal/core/ai/provider"
	"recipe-assistant/internal/infrastructure/config"
	"recipe-assistant/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// OpenRouterService OpenRouter 服務，實作 provider.Provider
type OpenRouterService struct {
	config config.OpenRouterConfig
	client *resty.Client
}

var _ provider.Provider = (*OpenRouterService)(nil)

type chatContent struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []chatContent `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	Stop        []string      `json:"stop,omitempty"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage provider.Usage `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewOpenRouterService 創建 OpenRouter 服務
func NewOpenRouterService(cfg config.OpenRouterConfig) *OpenRouterService {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(500*time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
		}).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("HTTP-Referer", "https://recipe-assistant.local").
		SetHeader("X-Title", "Recipe Assistant")

	return &OpenRouterService{
		config: cfg,
		client: client,
	}
}

// Generate 生成回應；帶圖片時使用視覺模型
func (s *OpenRouterService) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	body := chatRequest{
		Model:       s.config.Model,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
		Stop:        req.Stop,
	}
	if req.Image != "" && s.config.VisionModel != "" {
		body.Model = s.config.VisionModel
	}
	if req.MaxTokens > 0 {
		body.MaxTokens = req.MaxTokens
	}
	if req.Temperature > 0 {
		body.Temperature = req.Temperature
	}

	for i, msg := range req.Messages {
		content := []chatContent{{Type: "text", Text: strings.TrimSpace(msg.Content)}}
		// 圖片附在最後一則訊息
		if req.Image != "" && i == len(req.Messages)-1 {
			content = append(content, chatContent{Type: "image_url", ImageURL: &imageURL{URL: req.Image}})
		}
		body.Messages = append(body.Messages, chatMessage{Role: msg.Role, Content: content})
	}

	var result chatResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		SetError(&result).
		Post("/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("failed to send request to OpenRouter: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		msg := resp.String()
		if result.Error != nil && result.Error.Message != "" {
			msg = result.Error.Message
		}
		return nil, fmt.Errorf("OpenRouter API returned %d: %s", resp.StatusCode(), msg)
	}

	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("no choices in OpenRouter response")
	}

	common.LogDebug("OpenRouter response",
		zap.String("model", result.Model),
		zap.Int("total_tokens", result.Usage.TotalTokens),
	)

	return &provider.Response{
		Content: result.Choices[0].Message.Content,
		Model:   result.Model,
		Usage:   result.Usage,
	}, nil
}

// GetModel 獲取文字模型名稱
func (s *OpenRouterService) GetModel() string {
	return s.config.Model
}

// GetTimeout 獲取請求超時時間
func (s *OpenRouterService) GetTimeout() time.Duration {
	return s.config.Timeout
}

// Close resty 客戶端無需釋放資源
func (s *OpenRouterService) Close() error {
	return nil
}
