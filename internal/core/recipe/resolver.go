package recipe

import (
	"unicode/utf8"

	"recipe-assistant/internal/pkg/common"

	"github.com/agnivade/levenshtein"
)

// DefaultFuzzyThreshold 模糊比對的最低相似度
const DefaultFuzzyThreshold = 0.75

// Resolver 依 精確 → 模糊 → 食材重疊 的順序比對查詢
type Resolver struct {
	index     *Index
	threshold float64
}

// NewResolver 創建 Resolver；threshold 不在 (0, 1] 時使用預設值
func NewResolver(index *Index, threshold float64) *Resolver {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultFuzzyThreshold
	}
	if index == nil {
		index = BuildIndex(nil)
	}
	return &Resolver{index: index, threshold: threshold}
}

// Index 回傳底層索引
func (r *Resolver) Index() *Index {
	return r.index
}

// Resolve 找出最符合的條目，找不到時回傳 false
//
// 名稱訊號優先：只要精確或模糊比對成功，就不會被食材重疊覆蓋。
// 空查詢會略過名稱比對，只使用食材。
func (r *Resolver) Resolve(query string, ingredients []string) (Match, bool) {
	if r.index.Len() == 0 {
		return Match{}, false
	}

	q := common.NormalizeLabel(query)
	if q != "" {
		if e, ok := r.index.LookupExact(q); ok {
			return Match{Entry: e, Strategy: StrategyExact, Score: 1}, true
		}
		if m, ok := r.fuzzy(q); ok {
			return m, true
		}
	}

	if len(ingredients) > 0 {
		if m, ok := r.byIngredients(ingredients); ok {
			return m, true
		}
	}

	return Match{}, false
}

func (r *Resolver) fuzzy(q string) (Match, bool) {
	var (
		best      *Entry
		bestScore float64
	)
	for _, e := range r.index.Entries() {
		score := Similarity(q, e.Key)
		if score > bestScore {
			best, bestScore = e, score
		}
	}
	if best == nil || bestScore < r.threshold {
		return Match{}, false
	}
	return Match{Entry: best, Strategy: StrategyFuzzy, Score: bestScore}, true
}

func (r *Resolver) byIngredients(ingredients []string) (Match, bool) {
	want := make(map[string]struct{}, len(ingredients))
	for _, ing := range common.NormalizeLabels(ingredients) {
		want[ing] = struct{}{}
	}
	if len(want) == 0 {
		return Match{}, false
	}

	var (
		best      *Entry
		bestCount int
	)
	for _, e := range r.index.Entries() {
		count := overlap(want, e.matchIngredients)
		if count > bestCount {
			best, bestCount = e, count
		}
	}
	if best == nil {
		return Match{}, false
	}
	return Match{Entry: best, Strategy: StrategyIngredients, Score: float64(bestCount)}, true
}

// overlap 計算交集大小，stored 中重複的食材只算一次
func overlap(want map[string]struct{}, stored []string) int {
	seen := make(map[string]struct{}, len(stored))
	count := 0
	for _, s := range stored {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		if _, ok := want[s]; ok {
			count++
		}
	}
	return count
}

// Similarity 以編輯距離計算 [0, 1] 的相似度：1 - distance / max(len(a), len(b))
func Similarity(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}
