package recipe

import "strings"

// UnknownDishName 無菜名時的顯示文字
const UnknownDishName = "Unknown"

// Normalize 將食譜庫條目轉成標準 Record，依條目形式分派
func Normalize(e *Entry) Record {
	if e == nil {
		return Record{DishName: UnknownDishName, Ingredients: []string{}, Steps: []string{}, Source: SourceLocal}
	}

	var rec Record
	switch e.Shape {
	case ShapeStructured:
		// 巢狀欄位優先（不論別名拼法），缺的才取頂層；菜名固定取條目本身
		rec = fillMissing(recordFromFields(e.Nested), recordFromFields(e.Fields))
		rec.DishName = e.Name
	case ShapeProse:
		rec = ParseProse(e.Prose)
		if rec.DishName == "" {
			rec.DishName = e.Name
		}
	default:
		rec = recordFromFields(e.Fields)
		if rec.DishName == "" {
			rec.DishName = e.Name
		}
	}

	rec.Source = SourceLocal
	return finalize(rec)
}

// NormalizeGenerated 將生成模型的輸出轉成 Record；缺菜名時以 fallbackName 補上
func NormalizeGenerated(text, fallbackName string) Record {
	rec := ParseGenerated(text)
	if rec.DishName == "" {
		rec.DishName = strings.TrimSpace(fallbackName)
	}
	rec.Source = SourceGenerated
	return finalize(rec)
}

// fillMissing 以 fallback 補上 rec 的空欄位
func fillMissing(rec, fallback Record) Record {
	if rec.Cuisine == "" {
		rec.Cuisine = fallback.Cuisine
	}
	if rec.PrepTime == "" {
		rec.PrepTime = fallback.PrepTime
	}
	if rec.CookTime == "" {
		rec.CookTime = fallback.CookTime
	}
	if rec.Servings == nil {
		rec.Servings = fallback.Servings
	}
	if len(rec.Ingredients) == 0 {
		rec.Ingredients = fallback.Ingredients
	}
	if len(rec.Steps) == 0 {
		rec.Steps = fallback.Steps
	}
	return rec
}

// finalize 補上預設值，並把所有欄位壓成單行，確保渲染後能被解析回來
func finalize(rec Record) Record {
	rec.DishName = singleLine(rec.DishName)
	rec.Cuisine = singleLine(rec.Cuisine)
	rec.PrepTime = singleLine(rec.PrepTime)
	rec.CookTime = singleLine(rec.CookTime)
	rec.Ingredients = singleLines(rec.Ingredients)
	rec.Steps = singleLines(rec.Steps)
	if rec.Servings != nil && !rec.Servings.Numeric {
		rec.Servings = ParseServings(singleLine(rec.Servings.Raw))
	}

	if rec.DishName == "" {
		rec.DishName = UnknownDishName
	}
	return rec
}
