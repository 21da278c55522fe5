package recipe

import (
	"strconv"
	"strings"
)

// Render 將 Record 輸出為固定格式的文字，所有來源的回應都使用這個格式
func Render(r Record) string {
	var b strings.Builder

	name := r.DishName
	if name == "" {
		name = UnknownDishName
	}
	b.WriteString("Dish Name: " + name + "\n")

	writeOptional(&b, "Cuisine", r.Cuisine)
	writeOptional(&b, "Prep Time", r.PrepTime)
	writeOptional(&b, "Cook Time", r.CookTime)
	writeOptional(&b, "Servings", r.Servings.String())
	b.WriteString("\n")

	if len(r.Ingredients) == 0 {
		b.WriteString("Ingredients: Not available\n")
	} else {
		b.WriteString("Ingredients:\n")
		for _, ing := range r.Ingredients {
			b.WriteString("- " + ing + "\n")
		}
		b.WriteString("\n")
	}

	if len(r.Steps) == 0 {
		b.WriteString("Steps: Not available\n")
		return b.String()
	}

	b.WriteString("Steps:\n")
	for i, step := range r.Steps {
		b.WriteString(strconv.Itoa(i+1) + ". " + step + "\n")
	}
	return b.String()
}

func writeOptional(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	b.WriteString(label + ": " + value + "\n")
}
