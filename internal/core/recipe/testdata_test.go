package recipe

// sampleEntries 測試用食譜庫，順序即索引順序
func sampleEntries() []map[string]any {
	return []map[string]any{
		{
			"dishName":    "Spaghetti",
			"cuisine":     "Italian",
			"ingredients": []any{"Pasta", "Tomato", "Garlic"},
			"steps":       []any{"Boil pasta", "Make sauce"},
		},
		{
			"dishName": "Omelette",
			"recipe": map[string]any{
				"ingredients": []any{"Egg", "Milk", "Butter"},
				"steps":       []any{"Whisk eggs", "Fry"},
			},
		},
		{
			"name":   "Pancakes",
			"recipe": "Recipe: Pancakes\nIngredients:\n- Flour\n- Egg\n- Milk\n\nSteps:\n1. Mix\n2. Fry\n",
		},
	}
}
