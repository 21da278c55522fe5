package recipe

import (
	"regexp"
	"strings"
)

var (
	dishNamePattern = scalarPattern(`(?:recipe|dish[ \t]*name)`)
	cuisinePattern  = scalarPattern(`cuisine`)
	prepTimePattern = scalarPattern(`prep[ \t]*time`)
	cookTimePattern = scalarPattern(`cook[ \t]*time`)
	servingsPattern = scalarPattern(`servings`)

	ingredientsLabel = regexp.MustCompile(`(?i)^[ \t]*ingredients[ \t]*:[ \t]*$`)
	stepsLabel       = regexp.MustCompile(`(?i)^[ \t]*steps[ \t]*:[ \t]*$`)
	numberedStep     = regexp.MustCompile(`^\s*\d+\.\s*(.*)$`)
)

// scalarPattern 行首的 "<Label>: <值>"，不分大小寫
func scalarPattern(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)^[ \t]*` + label + `[ \t]*:[ \t]*(.*?)[ \t]*$`)
}

// ParseProse 將生成的食譜文字解析成 Record（不設定 Source）
//
// 找不到的欄位一律為空值，不回傳錯誤；最差情況是回傳所有欄位皆空的 Record。
func ParseProse(text string) Record {
	text = normalizeNewlines(text)

	rec := Record{
		DishName: firstCapture(dishNamePattern, text),
		Cuisine:  firstCapture(cuisinePattern, text),
		PrepTime: firstCapture(prepTimePattern, text),
		CookTime: firstCapture(cookTimePattern, text),
		Servings: ParseServings(firstCapture(servingsPattern, text)),
	}

	lines := strings.Split(text, "\n")
	rec.Ingredients = parseIngredients(lines)
	rec.Steps = parseSteps(lines)
	return rec
}

func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

func firstCapture(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// parseIngredients 取 "Ingredients:" 之後到空行（或 Steps:）為止的區塊
func parseIngredients(lines []string) []string {
	out := []string{}
	start := indexOfLabel(lines, ingredientsLabel)
	if start < 0 {
		return out
	}

	i := start + 1
	// 標籤後的空行略過
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || stepsLabel.MatchString(line) {
			break
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "-"))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// parseSteps 取 "Steps:" 之後到結尾；有編號的行優先，否則每個非空行都是一步
func parseSteps(lines []string) []string {
	start := indexOfLabel(lines, stepsLabel)
	if start < 0 {
		return []string{}
	}

	numbered := []string{}
	plain := []string{}
	for _, raw := range lines[start+1:] {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		plain = append(plain, line)
		if m := numberedStep.FindStringSubmatch(line); m != nil {
			if step := strings.TrimSpace(m[1]); step != "" {
				numbered = append(numbered, step)
			}
		}
	}

	if len(numbered) > 0 {
		return numbered
	}
	return plain
}

func indexOfLabel(lines []string, label *regexp.Regexp) int {
	for i, line := range lines {
		if label.MatchString(line) {
			return i
		}
	}
	return -1
}
