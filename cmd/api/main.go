package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-assistant/internal/api"
	"recipe-assistant/internal/core/ai/cache"
	"recipe-assistant/internal/core/ai/queue"
	aiservice "recipe-assistant/internal/core/ai/service"
	"recipe-assistant/internal/core/image"
	"recipe-assistant/internal/core/recipe"
	"recipe-assistant/internal/core/service"
	"recipe-assistant/internal/infrastructure/config"
	"recipe-assistant/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(common.LoggerOptions{
		Level:   cfg.LogLevel,
		Service: cfg.App.Name,
		File:    cfg.LogFile,
	}); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("starting application",
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env),
		zap.String("openrouter_api_key", config.MaskAPIKey(cfg.OpenRouter.APIKey)),
		zap.String("openrouter_model", cfg.OpenRouter.Model),
	)

	// 食譜庫只在啟動時載入一次，失敗即結束
	index, err := recipe.LoadIndex(cfg.Store.Path)
	if err != nil {
		common.LogFatal("Failed to load recipe store", zap.String("path", cfg.Store.Path), zap.Error(err))
	}
	common.LogInfo("recipe index loaded",
		zap.String("path", cfg.Store.Path),
		zap.Int("recipes", index.Len()),
		zap.Int("dropped", index.Dropped()),
	)

	// 初始化快取
	store, err := cache.NewStore(cfg.Cache)
	if err != nil {
		common.LogFatal("Failed to initialize cache", zap.Error(err))
	}
	if store != nil {
		defer store.Close()
	}

	// 生成隊列
	generationQueue := queue.NewManager(cfg.Queue)

	var (
		aiSvc      *aiservice.Service
		generator  recipe.Generator
		classifier recipe.Classifier
		detector   recipe.Detector
	)
	if cfg.OpenRouter.Enabled {
		provider := service.NewOpenRouterService(cfg.OpenRouter)
		aiSvc = aiservice.NewService(provider, store, generationQueue, image.NewService(cfg.Image.MaxSizeBytes))
		generator = recipe.NewRecipeService(aiSvc)
		classifier = recipe.NewFoodService(aiSvc, cfg.Image.MinConfidence)
		detector = recipe.NewIngredientService(aiSvc)
	} else {
		common.LogWarn("OpenRouter disabled, only local recipes will be served")
	}

	assistant := recipe.NewService(
		recipe.NewResolver(index, cfg.Store.FuzzyThreshold),
		generator, classifier, detector,
	)

	deps := api.Dependencies{
		Assistant: assistant,
		Recipes:   index.Len(),
	}
	if aiSvc != nil {
		deps.Status = aiSvc
	}
	router := api.SetupRouter(cfg, deps)

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		common.LogInfo("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
	}
	generationQueue.Close()

	common.LogInfo("Server exited")
}
