package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGenerated_TaggedLayout(t *testing.T) {
	t.Parallel()

	text := "Tomato Soup <TITLE_END> tomato, onion <INPUT_END> - 4 tomatoes\n- 1 onion <INGR_END> 1. Chop.\n2. Simmer. <INSTR_END>"
	rec := ParseGenerated(text)

	assert.Equal(t, "Tomato Soup", rec.DishName)
	assert.Equal(t, []string{"4 tomatoes", "1 onion"}, rec.Ingredients)
	assert.Equal(t, []string{"Chop.", "Simmer."}, rec.Steps)
}

func TestParseGenerated_TaggedTitleUsesLastLine(t *testing.T) {
	t.Parallel()

	rec := ParseGenerated("Sure, here it is:\nFried Rice <TITLE_END> rice <INPUT_END> rice <INGR_END> fry <INSTR_END>")
	assert.Equal(t, "Fried Rice", rec.DishName)
	assert.Equal(t, []string{"rice"}, rec.Ingredients)
	assert.Equal(t, []string{"fry"}, rec.Steps)
}

func TestParseGenerated_TruncatedTaggedOutput(t *testing.T) {
	t.Parallel()

	rec := ParseGenerated("Stew <TITLE_END> beef <INPUT_END> beef\ncarrot <INGR_END> 1. Brown the beef")
	assert.Equal(t, "Stew", rec.DishName)
	assert.Equal(t, []string{"beef", "carrot"}, rec.Ingredients)
	assert.NotNil(t, rec.Steps)
	assert.Empty(t, rec.Steps)
}

func TestParseGenerated_FallsBackToProse(t *testing.T) {
	t.Parallel()

	text := "Recipe: Pasta\nIngredients:\n- Pasta\n\nSteps:\n1. Boil\n"
	assert.False(t, IsTagged(text))
	assert.Equal(t, ParseProse(text), ParseGenerated(text))
}
