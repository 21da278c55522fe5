package recipe

import (
	"strings"

	"recipe-assistant/internal/pkg/common"

	"go.uber.org/zap"
)

// Index 以小寫菜名為鍵的唯讀食譜索引。建立後不再修改，可供多個請求並行讀取。
type Index struct {
	entries map[string]*Entry
	order   []string
	dropped int
}

// BuildIndex 由原始條目建立索引
//
// 缺少 dishName 與 name 的條目直接略過；鍵重複時後者覆蓋前者，但保留原本的迭代位置。
func BuildIndex(raw []map[string]any) *Index {
	idx := &Index{
		entries: make(map[string]*Entry, len(raw)),
		order:   make([]string, 0, len(raw)),
	}

	for _, fields := range raw {
		entry, ok := newEntry(fields)
		if !ok {
			idx.dropped++
			continue
		}
		if _, exists := idx.entries[entry.Key]; !exists {
			idx.order = append(idx.order, entry.Key)
		}
		idx.entries[entry.Key] = entry
	}

	if idx.dropped > 0 {
		common.LogDebug("dropped store entries without a name",
			zap.Int("dropped", idx.dropped),
		)
	}

	return idx
}

func newEntry(fields map[string]any) (*Entry, bool) {
	if fields == nil {
		return nil, false
	}
	name := stringField(fields, keysDishName...)
	if name == "" {
		return nil, false
	}

	entry := &Entry{
		Key:    strings.ToLower(name),
		Name:   name,
		Shape:  ShapeFlat,
		Fields: fields,
	}

	switch nested := fields[keyRecipe].(type) {
	case map[string]any:
		entry.Shape = ShapeStructured
		entry.Nested = nested
	case string:
		if strings.TrimSpace(nested) != "" {
			entry.Shape = ShapeProse
			entry.Prose = nested
		}
	}

	entry.matchIngredients = scoringIngredients(entry)
	return entry, true
}

// scoringIngredients 取評分用食材，與 Normalize 顯示的清單一致：
// 巢狀物件優先於頂層清單，頂層清單優先於解析巢狀文字
func scoringIngredients(e *Entry) []string {
	var list []string
	if e.Shape == ShapeStructured {
		list = stringList(e.Nested[keyIngredients])
	}
	if len(list) == 0 {
		list = stringList(e.Fields[keyIngredients])
	}
	if len(list) == 0 && e.Shape == ShapeProse {
		list = ParseProse(e.Prose).Ingredients
	}
	out := make([]string, 0, len(list))
	for _, ing := range list {
		if n := common.NormalizeLabel(ing); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// LookupExact 以已正規化的鍵精確查詢
func (i *Index) LookupExact(key string) (*Entry, bool) {
	e, ok := i.entries[key]
	return e, ok
}

// Keys 依插入順序回傳所有鍵
func (i *Index) Keys() []string {
	out := make([]string, len(i.order))
	copy(out, i.order)
	return out
}

// Entries 依插入順序回傳所有條目
func (i *Index) Entries() []*Entry {
	out := make([]*Entry, 0, len(i.order))
	for _, k := range i.order {
		out = append(out, i.entries[k])
	}
	return out
}

// Len 條目數量
func (i *Index) Len() int {
	return len(i.order)
}

// Dropped 建立時被略過的條目數量
func (i *Index) Dropped() int {
	return i.dropped
}
