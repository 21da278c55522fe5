package recipe

import (
	"context"
	"fmt"
	"strings"

	"recipe-assistant/internal/pkg/common"

	"go.uber.org/zap"
)

// RecipeService 以語言模型生成食譜文字，實作 Generator
type RecipeService struct {
	ai AIProcessor
}

// NewRecipeService 創建新的食譜生成服務
func NewRecipeService(ai AIProcessor) *RecipeService {
	return &RecipeService{ai: ai}
}

const generatePrompt = `Write one home-cooking recipe%s.
Reply in plain text using exactly this layout and nothing else:

Recipe: <dish name>
Cuisine: <cuisine>
Prep Time: <prep time>
Cook Time: <cook time>
Servings: <number of servings>

Ingredients:
- <ingredient>

Steps:
1. <step>`

// Generate 依菜名或食材請模型生成食譜，回傳原始文字
func (s *RecipeService) Generate(ctx context.Context, dishName string, ingredients []string) (string, error) {
	prompt := fmt.Sprintf(generatePrompt, describeRequest(dishName, ingredients))

	resp, err := s.ai.ProcessRequest(ctx, prompt, "")
	if err != nil {
		return "", fmt.Errorf("AI service error: %w", err)
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return "", common.ErrAIServiceError.Wrap(fmt.Errorf("empty AI response"))
	}

	common.LogDebug("AI 回應內容 (recipe/generate)",
		zap.Int("ai_response_length", len(resp.Content)),
		zap.Bool("cache_hit", resp.CacheHit),
	)
	return resp.Content, nil
}

func describeRequest(dishName string, ingredients []string) string {
	dishName = strings.TrimSpace(dishName)
	switch {
	case dishName != "" && len(ingredients) > 0:
		return fmt.Sprintf(" for %q using %s", dishName, strings.Join(ingredients, ", "))
	case dishName != "":
		return fmt.Sprintf(" for %q", dishName)
	case len(ingredients) > 0:
		return " that uses " + strings.Join(ingredients, ", ")
	default:
		return ""
	}
}
