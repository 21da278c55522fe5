package common

// FoodRecognitionResult 食物辨識結果（視覺模型輸出）
type FoodRecognitionResult struct {
	RecognizedFoods []RecognizedFood `json:"recognized_foods"`
}

// RecognizedFood 辨識到的食物
type RecognizedFood struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
}

// IngredientRecognitionResult 食材辨識結果（視覺模型輸出）
type IngredientRecognitionResult struct {
	Ingredients []DetectedIngredient `json:"ingredients"`
	Summary     string               `json:"summary"`
}

// DetectedIngredient 辨識到的食材標籤
type DetectedIngredient struct {
	Name string `json:"name"`
	Type string `json:"type"`
}
