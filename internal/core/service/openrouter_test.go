package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"recipe-assistant/internal/core/ai/provider"
	"recipe-assistant/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) config.OpenRouterConfig {
	return config.OpenRouterConfig{
		Enabled:     true,
		BaseURL:     baseURL,
		APIKey:      "sk-test-key",
		Model:       "text-model",
		VisionModel: "vision-model",
		MaxTokens:   256,
		Temperature: 0.5,
		Timeout:     5 * time.Second,
	}
}

func TestOpenRouterService_Generate(t *testing.T) {
	t.Parallel()

	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"text-model","choices":[{"message":{"content":"Recipe: Soup"}}],"usage":{"total_tokens":42}}`))
	}))
	defer srv.Close()

	svc := NewOpenRouterService(testConfig(srv.URL))
	resp, err := svc.Generate(context.Background(), provider.UserPrompt("  make soup ", ""))
	require.NoError(t, err)

	assert.Equal(t, "Recipe: Soup", resp.Content)
	assert.Equal(t, 42, resp.Usage.TotalTokens)
	assert.Equal(t, "text-model", got.Model)
	assert.Equal(t, 256, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	require.Len(t, got.Messages[0].Content, 1)
	assert.Equal(t, "make soup", got.Messages[0].Content[0].Text)
}

func TestOpenRouterService_GenerateWithImage(t *testing.T) {
	t.Parallel()

	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{}"}}]}`))
	}))
	defer srv.Close()

	svc := NewOpenRouterService(testConfig(srv.URL))
	_, err := svc.Generate(context.Background(), provider.UserPrompt("what is this", "data:image/jpeg;base64,AAAA"))
	require.NoError(t, err)

	assert.Equal(t, "vision-model", got.Model)
	require.Len(t, got.Messages[0].Content, 2)
	assert.Equal(t, "image_url", got.Messages[0].Content[1].Type)
	assert.Equal(t, "data:image/jpeg;base64,AAAA", got.Messages[0].Content[1].ImageURL.URL)
}

func TestOpenRouterService_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		errMsg string
	}{
		{"api error", http.StatusUnauthorized, `{"error":{"message":"invalid key"}}`, "invalid key"},
		{"no choices", http.StatusOK, `{"choices":[]}`, "no choices"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewOpenRouterService(testConfig(srv.URL)).Generate(context.Background(), provider.UserPrompt("hi", ""))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestOpenRouterService_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"error":{"message":"upstream"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.RetryCount = 1
	resp, err := NewOpenRouterService(cfg).Generate(context.Background(), provider.UserPrompt("hi", ""))
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Content)
	assert.Equal(t, int32(2), calls.Load())
}

func TestOpenRouterService_Accessors(t *testing.T) {
	t.Parallel()

	svc := NewOpenRouterService(testConfig("http://localhost"))
	assert.Equal(t, "text-model", svc.GetModel())
	assert.Equal(t, 5*time.Second, svc.GetTimeout())
	assert.NoError(t, svc.Close())
}
