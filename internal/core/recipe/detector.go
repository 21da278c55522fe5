package recipe

import (
	"context"
	"fmt"

	"recipe-assistant/internal/pkg/common"

	"go.uber.org/zap"
)

// IngredientService 食材識別服務，實作 Detector
type IngredientService struct {
	ai AIProcessor
}

// NewIngredientService 創建新的食材識別服務
func NewIngredientService(ai AIProcessor) *IngredientService {
	return &IngredientService{ai: ai}
}

const detectPrompt = `List the raw cooking ingredients visible in the image.
Rules:
1. Only list ingredients that are actually visible.
2. Use short lowercase English names without quantities.
3. All keys and strings must use double quotes.
Return compact JSON only, in this format:
{"ingredients":[{"name":"ingredient name","type":"vegetable|meat|dairy|grain|spice|other"}],"summary":"one sentence"}`

// Detect 回傳圖片中的食材標籤（小寫、去重）
func (s *IngredientService) Detect(ctx context.Context, imageData string) ([]string, error) {
	result, err := s.IdentifyIngredients(ctx, imageData)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(result.Ingredients))
	for _, ing := range result.Ingredients {
		names = append(names, ing.Name)
	}
	labels := common.NormalizeLabels(names)
	if len(labels) == 0 {
		return nil, common.ErrNothingDetected
	}

	common.LogInfo("Successfully identified ingredients",
		zap.Int("ingredients_count", len(labels)),
	)
	return labels, nil
}

// IdentifyIngredients 識別圖片中的食材
func (s *IngredientService) IdentifyIngredients(ctx context.Context, imageData string) (*common.IngredientRecognitionResult, error) {
	response, err := s.ai.ProcessRequest(ctx, detectPrompt, imageData)
	if err != nil {
		return nil, fmt.Errorf("failed to process request: %w", err)
	}

	var result common.IngredientRecognitionResult
	if err := common.ParseModelJSON(response.Content, &result); err != nil {
		return nil, common.ErrAIServiceError.Wrap(fmt.Errorf("failed to parse AI response: %w", err))
	}
	return &result, nil
}
