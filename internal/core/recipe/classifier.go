package recipe

import (
	"context"
	"fmt"
	"strings"

	"recipe-assistant/internal/core/image"
	"recipe-assistant/internal/pkg/common"

	"go.uber.org/zap"
)

// FoodService 食物識別服務，實作 Classifier
type FoodService struct {
	ai            AIProcessor
	minConfidence float64
}

// NewFoodService 創建新的食物識別服務；信心低於 minConfidence 的辨識結果視為失敗
func NewFoodService(ai AIProcessor, minConfidence float64) *FoodService {
	return &FoodService{ai: ai, minConfidence: minConfidence}
}

const classifyPrompt = `Identify the dish shown in the image.
Rules:
1. Only name food that is actually visible.
2. Use the common English dish name.
3. If there is no food in the image, return an empty list.
4. All keys and strings must use double quotes.
Return compact JSON only, in this format:
{"recognized_foods":[{"name":"dish name","description":"short description","confidence":0.0}]}`

// Classify 回傳圖片中信心最高的菜名
func (s *FoodService) Classify(ctx context.Context, imageData string) (string, error) {
	common.LogInfo("開始處理食物識別請求",
		zap.String("image_type", image.Kind(imageData)),
	)

	result, err := s.IdentifyFood(ctx, imageData)
	if err != nil {
		return "", err
	}

	best := ""
	bestConfidence := -1.0
	for _, food := range result.RecognizedFoods {
		name := strings.TrimSpace(food.Name)
		if name == "" {
			continue
		}
		if food.Confidence > bestConfidence {
			best, bestConfidence = name, food.Confidence
		}
	}
	if best == "" {
		return "", common.ErrNothingDetected
	}
	if bestConfidence < s.minConfidence {
		return "", common.ErrLowConfidence.Wrap(fmt.Errorf("best guess %q scored %.2f, minimum is %.2f", best, bestConfidence, s.minConfidence))
	}

	common.LogInfo("食物識別成功",
		zap.String("label", best),
		zap.Int("foods_count", len(result.RecognizedFoods)),
	)
	return best, nil
}

// IdentifyFood 識別圖片中的食物
func (s *FoodService) IdentifyFood(ctx context.Context, imageData string) (*common.FoodRecognitionResult, error) {
	response, err := s.ai.ProcessRequest(ctx, classifyPrompt, imageData)
	if err != nil {
		common.LogError("AI 服務請求失敗", zap.Error(err))
		return nil, err
	}

	var result common.FoodRecognitionResult
	if err := common.ParseModelJSON(response.Content, &result); err != nil {
		common.LogError("AI 響應解析失敗", zap.Error(err))
		return nil, common.ErrAIServiceError.Wrap(fmt.Errorf("failed to parse AI response: %w", err))
	}
	return &result, nil
}
