package recipe

import (
	"regexp"
	"strings"
)

// 生成模型的分隔標記版面：title <TITLE_END> input <INPUT_END> ingredients <INGR_END> instructions <INSTR_END>
const (
	tagTitleEnd = "<TITLE_END>"
	tagInputEnd = "<INPUT_END>"
	tagIngrEnd  = "<INGR_END>"
	tagInstrEnd = "<INSTR_END>"
)

var (
	taggedTitle        = regexp.MustCompile(`(?s)^\s*(.*?)\s*<TITLE_END>`)
	taggedIngredients  = regexp.MustCompile(`(?s)<INPUT_END>\s*(.*?)\s*<INGR_END>`)
	taggedInstructions = regexp.MustCompile(`(?s)<INGR_END>\s*(.*?)\s*<INSTR_END>`)
)

// IsTagged 判斷文字是否為分隔標記版面
func IsTagged(text string) bool {
	return strings.Contains(text, tagTitleEnd) ||
		strings.Contains(text, tagIngrEnd) ||
		strings.Contains(text, tagInstrEnd)
}

// ParseGenerated 解析生成模型的輸出；分隔標記版面以標記切分，其餘交給 ParseProse
func ParseGenerated(text string) Record {
	text = normalizeNewlines(text)
	if !IsTagged(text) {
		return ParseProse(text)
	}

	rec := Record{
		DishName:    taggedTitleLine(taggedTitle, text),
		Ingredients: taggedList(taggedIngredients, text, "-"),
		Steps:       taggedList(taggedInstructions, text, ""),
	}

	// 部分模型在標記內仍輸出編號
	steps := make([]string, 0, len(rec.Steps))
	for _, s := range rec.Steps {
		if m := numberedStep.FindStringSubmatch(s); m != nil {
			s = strings.TrimSpace(m[1])
		}
		if s != "" {
			steps = append(steps, s)
		}
	}
	rec.Steps = steps
	return rec
}

// taggedTitleLine 標題區塊只取最後一行，前面可能是提示文字
func taggedTitleLine(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	lines := splitNonEmpty(m[1])
	if len(lines) == 0 {
		return ""
	}
	title := lines[len(lines)-1]
	for _, tag := range []string{tagTitleEnd, tagInputEnd, tagIngrEnd, tagInstrEnd} {
		title = strings.ReplaceAll(title, tag, "")
	}
	return strings.TrimSpace(title)
}

func taggedList(re *regexp.Regexp, text, bullet string) []string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return []string{}
	}
	out := []string{}
	for _, line := range splitNonEmpty(m[1]) {
		if bullet != "" {
			line = strings.TrimSpace(strings.TrimPrefix(line, bullet))
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func splitNonEmpty(block string) []string {
	out := []string{}
	for _, line := range strings.Split(block, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
