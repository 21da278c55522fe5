package recipe

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Source 食譜來源標記，只由 Normalizer 設定
type Source string

const (
	SourceLocal     Source = "local"
	SourceGenerated Source = "generated"
)

// Record 標準化後的結構化食譜，三種來源最終都轉成這個形狀
type Record struct {
	DishName            string    `json:"dishName"`
	Cuisine             string    `json:"cuisine,omitempty"`
	PrepTime            string    `json:"prep_time,omitempty"`
	CookTime            string    `json:"cook_time,omitempty"`
	Servings            *Servings `json:"servings,omitempty"`
	Ingredients         []string  `json:"ingredients"`
	Steps               []string  `json:"steps"`
	Source              Source    `json:"source,omitempty"`
	IngredientsDetected []string  `json:"ingredients_detected,omitempty"`
}

// Servings 份量：可解析為整數時保留數值，否則保留原始文字
type Servings struct {
	Count   int
	Raw     string
	Numeric bool
}

// ParseServings 解析份量文字；空字串回傳 nil，非整數時保留原字串而非報錯
func ParseServings(raw string) *Servings {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return &Servings{Count: n, Raw: raw, Numeric: true}
	}
	return &Servings{Raw: raw}
}

// ServingsCount 以整數建立份量
func ServingsCount(n int) *Servings {
	return &Servings{Count: n, Raw: strconv.Itoa(n), Numeric: true}
}

func (s *Servings) String() string {
	if s == nil {
		return ""
	}
	if s.Numeric {
		return strconv.Itoa(s.Count)
	}
	return s.Raw
}

// MarshalJSON 數值份量輸出為 number，其餘輸出為 string
func (s Servings) MarshalJSON() ([]byte, error) {
	if s.Numeric {
		return json.Marshal(s.Count)
	}
	return json.Marshal(s.Raw)
}

// UnmarshalJSON 接受 number 或 string
func (s *Servings) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*s = *ServingsCount(n)
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if parsed := ParseServings(raw); parsed != nil {
		*s = *parsed
	} else {
		*s = Servings{}
	}
	return nil
}

// Shape 食譜庫條目的撰寫形式
type Shape int

const (
	// ShapeFlat 欄位直接放在條目上
	ShapeFlat Shape = iota
	// ShapeStructured 條目帶有巢狀的 recipe 物件
	ShapeStructured
	// ShapeProse 條目帶有純文字的 recipe 字串
	ShapeProse
)

func (s Shape) String() string {
	switch s {
	case ShapeStructured:
		return "structured"
	case ShapeProse:
		return "prose"
	default:
		return "flat"
	}
}

// Entry 食譜庫中的原始條目（tagged union）。建立後唯讀。
type Entry struct {
	Key    string
	Name   string
	Shape  Shape
	Fields map[string]any
	Nested map[string]any // ShapeStructured
	Prose  string         // ShapeProse

	// 只供食材重疊評分使用，已小寫化
	matchIngredients []string
}

// MatchIngredients 回傳評分用的小寫食材清單副本
func (e *Entry) MatchIngredients() []string {
	out := make([]string, len(e.matchIngredients))
	copy(out, e.matchIngredients)
	return out
}

// Strategy 命中方式
type Strategy string

const (
	StrategyExact       Strategy = "exact"
	StrategyFuzzy       Strategy = "fuzzy"
	StrategyIngredients Strategy = "ingredients"
	StrategyGenerated   Strategy = "generated"
)

// Match Resolver 的命中結果
type Match struct {
	Entry    *Entry
	Strategy Strategy
	// Score 模糊比對為相似度，食材比對為重疊數量，精確比對為 1
	Score float64
}
