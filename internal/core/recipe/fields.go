package recipe

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// 食譜庫欄位別名，依序取第一個非空值
var (
	keysDishName = []string{"dishName", "name"}
	keysCuisine  = []string{"cuisine"}
	keysPrepTime = []string{"prepTime", "prep_time"}
	keysCookTime = []string{"cookTime", "cook_time"}
	keysServings = []string{"servings"}
)

const (
	keyIngredients = "ingredients"
	keySteps       = "steps"
	keyRecipe      = "recipe"
)

// scalarString 將 JSON/YAML 解出的純量轉成字串，無法表示時回傳空字串
func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case map[string]any, []any:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

func stringField(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := scalarString(m[k]); s != "" {
			return s
		}
	}
	return ""
}

// stringList 轉換字串陣列；非陣列的字串視為單一元素，空項目略過
func stringList(v any) []string {
	out := []string{}
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if s := scalarString(item); s != "" {
				out = append(out, s)
			}
		}
	case []string:
		for _, item := range t {
			if s := strings.TrimSpace(item); s != "" {
				out = append(out, s)
			}
		}
	case string:
		if s := strings.TrimSpace(t); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func servingsValue(v any) *Servings {
	switch t := v.(type) {
	case nil:
		return nil
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return ServingsCount(int(n))
		}
		return ParseServings(t.String())
	case int:
		return ServingsCount(t)
	case int64:
		return ServingsCount(int(t))
	case float64:
		if t == math.Trunc(t) {
			return ServingsCount(int(t))
		}
		return ParseServings(scalarString(t))
	default:
		return ParseServings(scalarString(t))
	}
}

func servingsField(m map[string]any) *Servings {
	for _, k := range keysServings {
		if s := servingsValue(m[k]); s != nil {
			return s
		}
	}
	return nil
}

// recordFromFields 依別名從扁平欄位組出 Record（不設定 Source）
func recordFromFields(m map[string]any) Record {
	return Record{
		DishName:    stringField(m, keysDishName...),
		Cuisine:     stringField(m, keysCuisine...),
		PrepTime:    stringField(m, keysPrepTime...),
		CookTime:    stringField(m, keysCookTime...),
		Servings:    servingsField(m),
		Ingredients: stringList(m[keyIngredients]),
		Steps:       stringList(m[keySteps]),
	}
}

// singleLine 將內含的換行與連續空白壓成單一空白
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// singleLines 對每個項目套用 singleLine，並略過壓縮後為空的項目
func singleLines(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := singleLine(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
