package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractStepsSkipsIngredientEchoes(t *testing.T) {
	text := "2 cups flour. Preheat oven to 350F. Mix flour and sugar."
	got := ExtractSteps(text, []string{"2 cups flour", "sugar"})
	require.Equal(t, []string{"Preheat oven to 350F.", "Mix flour and sugar."}, got)
}

func TestExtractStepsStripsEnumeration(t *testing.T) {
	got := ExtractSteps("1. Panaskan minyak.\n2. Goreng ayam sampai matang.", nil)
	require.Equal(t, []string{"Panaskan minyak.", "Goreng ayam sampai matang."}, got)
}

func TestExtractStepsSkipsLeakedIngredientLines(t *testing.T) {
	got := ExtractSteps("500 g ayam fillet.\nGoreng ayam sampai kecoklatan.", nil)
	require.Equal(t, []string{"Goreng ayam sampai kecoklatan."}, got)
}

func TestExtractStepsKeepsLongSentencesWithUnits(t *testing.T) {
	// the leaked-line check only applies to short sentences
	text := "Add 2 cups flour to the bowl and mix everything until well combined."
	got := ExtractSteps(text, nil)
	require.Equal(t, []string{text}, got)
}

func TestExtractStepsSkipsNutritionLines(t *testing.T) {
	got := ExtractSteps("Protein: 20 g\nSajikan selagi hangat.", nil)
	require.Equal(t, []string{"Sajikan selagi hangat."}, got)
}

func TestExtractStepsDeduplicates(t *testing.T) {
	got := ExtractSteps("Stir well. Stir well. Serve hot.", nil)
	require.Equal(t, []string{"Stir well.", "Serve hot."}, got)
}

func TestExtractStepsSkipsShortFragments(t *testing.T) {
	got := ExtractSteps("Ok. Serve the soup immediately.", nil)
	assert.Equal(t, []string{"Serve the soup immediately."}, got)
}
